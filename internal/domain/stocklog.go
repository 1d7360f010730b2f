package domain

import "time"

// Stock log actions derived from the sign of the applied delta.
const (
	StockActionAdd    = "add"
	StockActionRemove = "remove"
)

// StockLog is an immutable audit record. Exactly one row is written per
// quantity mutation; rows are never updated or deleted.
type StockLog struct {
	ID             string    `json:"id" bson:"_id"`
	TireDotID      string    `json:"tire_dot_id" bson:"tire_dot_id"`
	Action         string    `json:"action" bson:"action"`
	QuantityBefore int       `json:"quantity_before" bson:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after" bson:"quantity_after"`
	QuantityChange int       `json:"quantity_change" bson:"quantity_change"`
	Notes          string    `json:"notes" bson:"notes"`
	// UserID is nil for bot-driven changes: the chat actor is not a web
	// session user, their chat identity goes into Notes instead.
	UserID    *string   `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
