package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"medihealth-backend/internal/models"
)

// PaymentRepository wraps the payments collection and the two read-only
// reports computed over it.
type PaymentRepository interface {
	Create(ctx context.Context, doc bson.M) (string, error)
	ListAll(ctx context.Context) ([]bson.M, error)
	ListForUser(ctx context.Context, email string) ([]bson.M, error)
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
	RevenueTotal(ctx context.Context) (float64, error)
	OrderStatsByCategory(ctx context.Context) ([]models.CategoryStat, error)
}

type mongoPaymentRepository struct {
	payments *mongo.Collection
	medicine *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{
		payments: db.Collection("payments"),
		medicine: db.Collection("medicine"),
	}
}

func (m *mongoPaymentRepository) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := m.payments.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert payment: %w", err)
	}
	return insertedHex(res), nil
}

func (m *mongoPaymentRepository) ListAll(ctx context.Context) ([]bson.M, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoPaymentRepository) ListForUser(ctx context.Context, email string) ([]bson.M, error) {
	return m.find(ctx, bson.M{"email": email})
}

func (m *mongoPaymentRepository) find(ctx context.Context, filter bson.M) ([]bson.M, error) {
	cur, err := m.payments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	payments := []bson.M{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (m *mongoPaymentRepository) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.payments.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", err)
	}
	return res.ModifiedCount, nil
}

// RevenueTotal sums the price field across every payment record. An empty
// collection yields zero.
func (m *mongoPaymentRepository) RevenueTotal(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$price"},
		}}},
	}
	cur, err := m.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}

// OrderStatsByCategory expands every payment's medicineItemIds, joins each
// id against the medicine collection and groups the joined items by
// category. Ids that fail to join contribute nothing (inner-join).
func (m *mongoPaymentRepository) OrderStatsByCategory(ctx context.Context) ([]models.CategoryStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$medicineItemIds"}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"medicineObjectId": bson.M{"$convert": bson.M{
				"input":   "$medicineItemIds",
				"to":      "objectId",
				"onError": nil,
				"onNull":  nil,
			}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         m.medicine.Name(),
			"localField":   "medicineObjectId",
			"foreignField": "_id",
			"as":           "medicineItems",
		}}},
		bson.D{{Key: "$unwind", Value: "$medicineItems"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$medicineItems.category",
			"quantity": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$medicineItems.price"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":      0,
			"category": "$_id",
			"quantity": 1,
			"revenue":  1,
		}}},
	}
	cur, err := m.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}
	stats := []models.CategoryStat{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}
	return stats, nil
}
