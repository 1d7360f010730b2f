package domain

import (
	"regexp"
	"time"
)

var linkCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// IsLinkCode reports whether an inbound text message should be treated
// as a link-code redemption attempt rather than a search query.
func IsLinkCode(text string) bool {
	return linkCodePattern.MatchString(text)
}

// LinkCode is a short-lived one-time code associating a LINE identity
// with an application account. It is deleted on redemption.
type LinkCode struct {
	Code      string    `json:"code" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the code is past its expiry. An expired code
// must be rejected and treated as consumed.
func (c *LinkCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
