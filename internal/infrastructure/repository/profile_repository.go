package repository

import (
	"context"
	"fmt"
	"time"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProfileRepository implements ProfileRepository using MongoDB.
type MongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new MongoDB profile repository.
func NewMongoProfileRepository(db *mongo.Database) ports.ProfileRepository {
	return &MongoProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// GetByLineUserID resolves a chat identity to a profile.
func (r *MongoProfileRepository) GetByLineUserID(ctx context.Context, lineUserID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"line_user_id": lineUserID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by line user id: %w", err)
	}
	return &profile, nil
}

// LinkLineUser stores the chat identity on a profile.
func (r *MongoProfileRepository) LinkLineUser(ctx context.Context, userID, lineUserID string) error {
	update := bson.M{"$set": bson.M{
		"line_user_id": lineUserID,
		"updated_at":   time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to link line user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile %s not found", userID)
	}
	return nil
}
