package domain

import "time"

// Profile is an application user account. LineUserID links a LINE
// identity to the account once a link code has been redeemed; empty
// means unlinked.
type Profile struct {
	ID          string    `json:"id" bson:"_id"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	LineUserID  string    `json:"line_user_id,omitempty" bson:"line_user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
