package repository

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMembershipRepository implements MembershipRepository using MongoDB.
type MongoMembershipRepository struct {
	collection *mongo.Collection
}

// NewMongoMembershipRepository creates a new MongoDB membership repository.
func NewMongoMembershipRepository(db *mongo.Database) ports.MembershipRepository {
	return &MongoMembershipRepository{
		collection: db.Collection("store_memberships"),
	}
}

// GetByUserAndStore retrieves the staff record linking a user to a store.
func (r *MongoMembershipRepository) GetByUserAndStore(ctx context.Context, userID, storeID string) (*domain.StoreMembership, error) {
	filter := bson.M{"user_id": userID, "store_id": storeID}

	var membership domain.StoreMembership
	err := r.collection.FindOne(ctx, filter).Decode(&membership)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &membership, nil
}
