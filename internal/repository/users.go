package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"medihealth-backend/internal/models"
)

type UserRepository interface {
	// FindByEmail returns nil when no user carries the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) (string, error)
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id, role string) (int64, error)
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection("users")}
}

func (m *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (m *mongoUserRepository) Create(ctx context.Context, user models.User) (string, error) {
	res, err := m.collection.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return insertedHex(res), nil
}

func (m *mongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	cur, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (m *mongoUserRepository) SetRole(ctx context.Context, id, role string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, fmt.Errorf("failed to set role: %w", err)
	}
	return res.ModifiedCount, nil
}
