package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// updatableMedicineFields is the fixed set a PATCH may touch; anything else
// in the request body is dropped silently.
var updatableMedicineFields = []string{
	"category", "name", "price", "quantity", "dosage", "image", "short_description",
}

// MedicineRepository wraps the medicine collection. Documents are open: they
// are inserted verbatim and returned verbatim.
type MedicineRepository interface {
	List(ctx context.Context) ([]bson.M, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Create(ctx context.Context, doc bson.M) (string, error)
	Update(ctx context.Context, id string, doc bson.M) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type mongoMedicineRepository struct {
	collection *mongo.Collection
}

func NewMedicineRepository(db *mongo.Database) MedicineRepository {
	return &mongoMedicineRepository{collection: db.Collection("medicine")}
}

func (m *mongoMedicineRepository) List(ctx context.Context) ([]bson.M, error) {
	cur, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	items := []bson.M{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode medicines: %w", err)
	}
	return items, nil
}

// Get returns nil with no error when the id is unknown or malformed; the
// route answers with a null body rather than a distinct error.
func (m *mongoMedicineRepository) Get(ctx context.Context, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc bson.M
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return doc, nil
}

func (m *mongoMedicineRepository) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert medicine: %w", err)
	}
	return insertedHex(res), nil
}

func (m *mongoMedicineRepository) Update(ctx context.Context, id string, doc bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	set := bson.M{}
	for _, field := range updatableMedicineFields {
		if v, ok := doc[field]; ok {
			set[field] = v
		}
	}
	if len(set) == 0 {
		return 0, nil
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("failed to update medicine: %w", err)
	}
	return res.ModifiedCount, nil
}

func (m *mongoMedicineRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete medicine: %w", err)
	}
	return res.DeletedCount, nil
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.InsertedID)
}
