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

var ErrCartItemNotFound = errors.New("cart item not found")

// CartAddResult reports how a merge-add landed: either a fresh row was
// inserted or an existing row's quantity was bumped.
type CartAddResult struct {
	InsertedID    string
	ModifiedCount int64
	Merged        bool
}

type CartRepository interface {
	ListForBuyer(ctx context.Context, email string) ([]models.CartItem, error)
	// Add merges on (medicineId, buyerEmail): an existing row gets its
	// quantity incremented by one, otherwise a new row starts at one.
	// Read-then-write, no transaction; a concurrent first add can race.
	Add(ctx context.Context, item models.CartItem) (CartAddResult, error)
	Increase(ctx context.Context, id string) (int64, error)
	// Decrease returns removed=true when the row was at quantity 1 and got
	// deleted instead of decremented. ErrCartItemNotFound for unknown ids.
	Decrease(ctx context.Context, id string) (removed bool, err error)
	Remove(ctx context.Context, id string) (int64, error)
	RemoveMany(ctx context.Context, ids []string) (int64, error)
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) ListForBuyer(ctx context.Context, email string) ([]models.CartItem, error) {
	cur, err := m.collection.Find(ctx, bson.M{"buyerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	items := []models.CartItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (m *mongoCartRepository) Add(ctx context.Context, item models.CartItem) (CartAddResult, error) {
	filter := bson.M{"medicineId": item.MedicineID, "buyerEmail": item.BuyerEmail}

	var existing models.CartItem
	err := m.collection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		res, err := m.collection.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$inc": bson.M{"quantity": 1}})
		if err != nil {
			return CartAddResult{}, fmt.Errorf("failed to merge cart item: %w", err)
		}
		return CartAddResult{ModifiedCount: res.ModifiedCount, Merged: true}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return CartAddResult{}, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	item.ID = primitive.NilObjectID
	item.Quantity = 1
	res, err := m.collection.InsertOne(ctx, item)
	if err != nil {
		return CartAddResult{}, fmt.Errorf("failed to insert cart item: %w", err)
	}
	return CartAddResult{InsertedID: insertedHex(res)}, nil
}

func (m *mongoCartRepository) Increase(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"quantity": 1}})
	if err != nil {
		return 0, fmt.Errorf("failed to increase quantity: %w", err)
	}
	return res.ModifiedCount, nil
}

func (m *mongoCartRepository) Decrease(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrCartItemNotFound
	}
	filter := bson.M{"_id": oid}

	var item models.CartItem
	err = m.collection.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, ErrCartItemNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to load cart item: %w", err)
	}

	if item.Quantity > 1 {
		if _, err := m.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": -1}}); err != nil {
			return false, fmt.Errorf("failed to decrease quantity: %w", err)
		}
		return false, nil
	}

	// Quantity 1: a zero-quantity row is never persisted, drop it instead.
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return true, nil
}

func (m *mongoCartRepository) Remove(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *mongoCartRepository) RemoveMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := m.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep cart items: %w", err)
	}
	return res.DeletedCount, nil
}
