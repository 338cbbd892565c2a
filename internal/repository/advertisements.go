package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdvertisementRepository interface {
	List(ctx context.Context) ([]bson.M, error)
	Create(ctx context.Context, doc bson.M) (string, error)
	SetStatus(ctx context.Context, id, status string) (int64, error)
}

type mongoAdvertisementRepository struct {
	collection *mongo.Collection
}

func NewAdvertisementRepository(db *mongo.Database) AdvertisementRepository {
	return &mongoAdvertisementRepository{collection: db.Collection("advertisements")}
}

func (m *mongoAdvertisementRepository) List(ctx context.Context) ([]bson.M, error) {
	cur, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	ads := []bson.M{}
	if err := cur.All(ctx, &ads); err != nil {
		return nil, fmt.Errorf("failed to decode advertisements: %w", err)
	}
	return ads, nil
}

func (m *mongoAdvertisementRepository) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert advertisement: %w", err)
	}
	return insertedHex(res), nil
}

func (m *mongoAdvertisementRepository) SetStatus(ctx context.Context, id, status string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, fmt.Errorf("failed to update advertisement status: %w", err)
	}
	return res.ModifiedCount, nil
}
