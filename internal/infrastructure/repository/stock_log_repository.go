package repository

import (
	"context"
	"fmt"
	"time"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStockLogRepository implements StockLogRepository using MongoDB.
type MongoStockLogRepository struct {
	collection *mongo.Collection
}

// NewMongoStockLogRepository creates a new MongoDB stock log repository.
func NewMongoStockLogRepository(db *mongo.Database) ports.StockLogRepository {
	return &MongoStockLogRepository{
		collection: db.Collection("stock_logs"),
	}
}

// Create appends one audit row. Rows are insert-only.
func (r *MongoStockLogRepository) Create(ctx context.Context, entry *domain.StockLog) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create stock log: %w", err)
	}
	return nil
}
