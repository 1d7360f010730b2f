package domain

import "time"

// Tire is a product listing owned by a store. IsShared marks it visible
// to other tenants and to unlinked chat users.
type Tire struct {
	ID        string    `json:"id" bson:"_id"`
	StoreID   string    `json:"store_id" bson:"store_id"`
	Brand     string    `json:"brand" bson:"brand"`
	Model     string    `json:"model" bson:"model"`
	Size      string    `json:"size" bson:"size"`
	Price     float64   `json:"price" bson:"price"`
	IsShared  bool      `json:"is_shared" bson:"is_shared"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TireDot is a stock lot: a batch of one tire identified by its DOT
// (manufacture date) code. Quantity never goes below zero.
type TireDot struct {
	ID        string    `json:"id" bson:"_id"`
	TireID    string    `json:"tire_id" bson:"tire_id"`
	DotCode   string    `json:"dot_code" bson:"dot_code"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Promotion string    `json:"promotion,omitempty" bson:"promotion,omitempty"`
	Position  int       `json:"position" bson:"position"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
