package ports

import (
	"context"

	"tirehub-line-gateway/internal/domain"
)

// StoreRepository defines store (tenant) persistence access. Point
// lookups return (nil, nil) when no row matches.
type StoreRepository interface {
	// ListWebhookConfigured returns all stores carrying a channel secret,
	// the candidate set for inbound signature resolution.
	ListWebhookConfigured(ctx context.Context) ([]*domain.Store, error)

	// GetByID retrieves a store by id.
	GetByID(ctx context.Context, id string) (*domain.Store, error)

	// ListByIDs retrieves stores for a set of ids.
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Store, error)

	// GetByOwner retrieves the store owned by a user, if any.
	GetByOwner(ctx context.Context, userID string) (*domain.Store, error)

	// MarkWebhookVerified flips line_webhook_verified false -> true and
	// stamps the verification time. Idempotent.
	MarkWebhookVerified(ctx context.Context, storeID string) error
}

// TireSearchFilter narrows a tire search. SizePattern is a
// wildcard-interleaved regular expression matched against the size
// field; Keyword is the raw query text substring-matched against brand
// and model. StoreID widens visibility to that store's unshared stock;
// when empty only shared listings match.
type TireSearchFilter struct {
	SizePattern string
	Keyword     string
	StoreID     string
	Offset      int
	Limit       int
}

// TireRepository defines tire listing access.
type TireRepository interface {
	// Search returns tires matching the filter, newest first.
	Search(ctx context.Context, filter TireSearchFilter) ([]*domain.Tire, error)

	// GetByID retrieves a tire by id.
	GetByID(ctx context.Context, id string) (*domain.Tire, error)

	// FindShared returns shared tires with the same brand and size,
	// excluding one tire. Used for the branch-stock check.
	FindShared(ctx context.Context, brand, size, excludeTireID string, limit int) ([]*domain.Tire, error)
}

// TireDotRepository defines stock lot access.
type TireDotRepository interface {
	// ListByTireIDs returns all lots for the given tires, in display order.
	ListByTireIDs(ctx context.Context, tireIDs []string) ([]*domain.TireDot, error)

	// GetByID retrieves a lot by id.
	GetByID(ctx context.Context, id string) (*domain.TireDot, error)

	// AdjustQuantity atomically applies max(0, quantity+delta) at the
	// storage layer and returns the quantities before and after.
	// Returns domain.ErrNotFound when the lot no longer exists.
	AdjustQuantity(ctx context.Context, id string, delta int) (before, after int, err error)
}

// StockLogRepository appends audit rows. Rows are immutable.
type StockLogRepository interface {
	Create(ctx context.Context, entry *domain.StockLog) error
}

// ProfileRepository defines application user access.
type ProfileRepository interface {
	// GetByLineUserID resolves a chat identity to an application account.
	GetByLineUserID(ctx context.Context, lineUserID string) (*domain.Profile, error)

	// LinkLineUser records the chat identity on a profile after a link
	// code has been redeemed.
	LinkLineUser(ctx context.Context, userID, lineUserID string) error
}

// MembershipRepository defines staff record access.
type MembershipRepository interface {
	GetByUserAndStore(ctx context.Context, userID, storeID string) (*domain.StoreMembership, error)
}

// LinkCodeRepository defines one-time link code access.
type LinkCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.LinkCode, error)
	Delete(ctx context.Context, code string) error
}
