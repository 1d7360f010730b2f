package repository

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLinkCodeRepository implements LinkCodeRepository using MongoDB.
// The code itself is the document id, so redemption races resolve to a
// single winner.
type MongoLinkCodeRepository struct {
	collection *mongo.Collection
}

// NewMongoLinkCodeRepository creates a new MongoDB link code repository.
func NewMongoLinkCodeRepository(db *mongo.Database) ports.LinkCodeRepository {
	return &MongoLinkCodeRepository{
		collection: db.Collection("link_codes"),
	}
}

// GetByCode retrieves a link code.
func (r *MongoLinkCodeRepository) GetByCode(ctx context.Context, code string) (*domain.LinkCode, error) {
	var linkCode domain.LinkCode
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&linkCode)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link code: %w", err)
	}
	return &linkCode, nil
}

// Delete consumes a code. Deleting an already consumed code is a no-op.
func (r *MongoLinkCodeRepository) Delete(ctx context.Context, code string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": code}); err != nil {
		return fmt.Errorf("failed to delete link code: %w", err)
	}
	return nil
}
