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

// MongoStoreRepository implements StoreRepository using MongoDB.
type MongoStoreRepository struct {
	collection *mongo.Collection
}

// NewMongoStoreRepository creates a new MongoDB store repository.
func NewMongoStoreRepository(db *mongo.Database) ports.StoreRepository {
	return &MongoStoreRepository{
		collection: db.Collection("stores"),
	}
}

// ListWebhookConfigured returns all stores with a channel secret set.
func (r *MongoStoreRepository) ListWebhookConfigured(ctx context.Context) ([]*domain.Store, error) {
	filter := bson.M{"line_channel_secret": bson.M{"$exists": true, "$ne": ""}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook-configured stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []*domain.Store
	for cursor.Next(ctx) {
		var store domain.Store
		if err := cursor.Decode(&store); err != nil {
			return nil, fmt.Errorf("failed to decode store: %w", err)
		}
		stores = append(stores, &store)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return stores, nil
}

// GetByID retrieves a store by id.
func (r *MongoStoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	var store domain.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

// ListByIDs retrieves stores for a set of ids.
func (r *MongoStoreRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Store, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []*domain.Store
	for cursor.Next(ctx) {
		var store domain.Store
		if err := cursor.Decode(&store); err != nil {
			return nil, fmt.Errorf("failed to decode store: %w", err)
		}
		stores = append(stores, &store)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return stores, nil
}

// GetByOwner retrieves the store owned by a user.
func (r *MongoStoreRepository) GetByOwner(ctx context.Context, userID string) (*domain.Store, error) {
	var store domain.Store
	err := r.collection.FindOne(ctx, bson.M{"owner_user_id": userID}).Decode(&store)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store by owner: %w", err)
	}
	return &store, nil
}

// MarkWebhookVerified flips the verified flag once. Re-verification of
// an already verified store is a no-op.
func (r *MongoStoreRepository) MarkWebhookVerified(ctx context.Context, storeID string) error {
	now := time.Now()
	filter := bson.M{"_id": storeID, "line_webhook_verified": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{
		"line_webhook_verified":    true,
		"line_webhook_verified_at": now,
		"updated_at":               now,
	}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark webhook verified: %w", err)
	}
	return nil
}
