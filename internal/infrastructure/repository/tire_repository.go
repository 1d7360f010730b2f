package repository

import (
	"context"
	"fmt"
	"regexp"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTireRepository implements TireRepository using MongoDB.
type MongoTireRepository struct {
	collection *mongo.Collection
}

// NewMongoTireRepository creates a new MongoDB tire repository.
func NewMongoTireRepository(db *mongo.Database) ports.TireRepository {
	return &MongoTireRepository{
		collection: db.Collection("tires"),
	}
}

// Search returns tires matching the filter. The fuzzy size pattern and
// the raw-keyword brand/model substrings are OR-ed; the visibility rule
// (own store union shared, or shared only) is AND-ed on top.
func (r *MongoTireRepository) Search(ctx context.Context, filter ports.TireSearchFilter) ([]*domain.Tire, error) {
	var match []bson.M
	if filter.SizePattern != "" {
		match = append(match, bson.M{"size": primitive.Regex{Pattern: filter.SizePattern, Options: "i"}})
	}
	if filter.Keyword != "" {
		keyword := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		match = append(match, bson.M{"brand": keyword}, bson.M{"model": keyword})
	}

	var visibility bson.M
	if filter.StoreID != "" {
		visibility = bson.M{"$or": []bson.M{
			{"store_id": filter.StoreID},
			{"is_shared": true},
		}}
	} else {
		visibility = bson.M{"is_shared": true}
	}

	query := visibility
	if len(match) > 0 {
		query = bson.M{"$and": []bson.M{{"$or": match}, visibility}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search tires: %w", err)
	}
	defer cursor.Close(ctx)

	var tires []*domain.Tire
	for cursor.Next(ctx) {
		var tire domain.Tire
		if err := cursor.Decode(&tire); err != nil {
			return nil, fmt.Errorf("failed to decode tire: %w", err)
		}
		tires = append(tires, &tire)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return tires, nil
}

// GetByID retrieves a tire by id.
func (r *MongoTireRepository) GetByID(ctx context.Context, id string) (*domain.Tire, error) {
	var tire domain.Tire
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tire)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tire: %w", err)
	}
	return &tire, nil
}

// FindShared returns shared tires with the same brand and size,
// excluding the tire the caller is already looking at.
func (r *MongoTireRepository) FindShared(ctx context.Context, brand, size, excludeTireID string, limit int) ([]*domain.Tire, error) {
	query := bson.M{
		"brand":     brand,
		"size":      size,
		"is_shared": true,
		"_id":       bson.M{"$ne": excludeTireID},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find shared tires: %w", err)
	}
	defer cursor.Close(ctx)

	var tires []*domain.Tire
	for cursor.Next(ctx) {
		var tire domain.Tire
		if err := cursor.Decode(&tire); err != nil {
			return nil, fmt.Errorf("failed to decode tire: %w", err)
		}
		tires = append(tires, &tire)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return tires, nil
}
