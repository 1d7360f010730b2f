package repository

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTireDotRepository implements TireDotRepository using MongoDB.
type MongoTireDotRepository struct {
	collection *mongo.Collection
}

// NewMongoTireDotRepository creates a new MongoDB stock lot repository.
func NewMongoTireDotRepository(db *mongo.Database) ports.TireDotRepository {
	return &MongoTireDotRepository{
		collection: db.Collection("tire_dots"),
	}
}

// ListByTireIDs returns all lots of the given tires in display order.
func (r *MongoTireDotRepository) ListByTireIDs(ctx context.Context, tireIDs []string) ([]*domain.TireDot, error) {
	if len(tireIDs) == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "dot_code", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tire_id": bson.M{"$in": tireIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tire dots: %w", err)
	}
	defer cursor.Close(ctx)

	var dots []*domain.TireDot
	for cursor.Next(ctx) {
		var dot domain.TireDot
		if err := cursor.Decode(&dot); err != nil {
			return nil, fmt.Errorf("failed to decode tire dot: %w", err)
		}
		dots = append(dots, &dot)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return dots, nil
}

// GetByID retrieves a lot by id.
func (r *MongoTireDotRepository) GetByID(ctx context.Context, id string) (*domain.TireDot, error) {
	var dot domain.TireDot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tire dot: %w", err)
	}
	return &dot, nil
}

// AdjustQuantity applies the clamped delta in a single pipeline update
// so concurrent adjustments to the same lot never lose writes. The
// pre-image quantity comes back from the same operation; the resulting
// quantity follows from applying the identical clamp to it.
func (r *MongoTireDotRepository) AdjustQuantity(ctx context.Context, id string, delta int) (int, int, error) {
	update := bson.A{bson.M{"$set": bson.M{
		"quantity":   bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$quantity", delta}}}},
		"updated_at": "$$NOW",
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before domain.TireDot
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&before)
	if err == mongo.ErrNoDocuments {
		return 0, 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to adjust quantity: %w", err)
	}

	return before.Quantity, domain.ClampQuantity(before.Quantity, delta), nil
}
