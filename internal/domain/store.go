package domain

import "time"

// Store is a tenant root: one tire shop with its own LINE channel
// credentials. The webhook secret identifies the tenant on inbound
// requests; the access token is only used to reply.
type Store struct {
	ID                    string     `json:"id" bson:"_id"`
	Name                  string     `json:"name" bson:"name"`
	OwnerUserID           string     `json:"owner_user_id" bson:"owner_user_id"`
	LineChannelSecret     string     `json:"-" bson:"line_channel_secret"`
	LineAccessToken       string     `json:"-" bson:"line_access_token"`
	LineEnabled           bool       `json:"line_enabled" bson:"line_enabled"`
	LineWebhookVerified   bool       `json:"line_webhook_verified" bson:"line_webhook_verified"`
	LineWebhookVerifiedAt *time.Time `json:"line_webhook_verified_at" bson:"line_webhook_verified_at"`
	CreatedAt             time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" bson:"updated_at"`
}
