package application

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// Tenant is the resolved sender of a webhook request. Store is nil for
// the global fallback configuration; AccessToken is always the token to
// reply with.
type Tenant struct {
	Store       *domain.Store
	AccessToken string
}

// StoreID returns the tenant store id, or empty for the global fallback.
func (t Tenant) StoreID() string {
	if t.Store == nil {
		return ""
	}
	return t.Store.ID
}

// TenantService resolves which store sent a webhook request by
// recomputing the body signature against every configured per-store
// secret, then against the global fallback secret. The signature match
// is what proves tenant identity; the access token is merely the reply
// path, so a missing tenant token degrades to the fallback token.
type TenantService struct {
	stores         ports.StoreRepository
	fallbackSecret string
	fallbackToken  string
	logger         zerolog.Logger
}

// NewTenantService creates a new tenant resolution service.
func NewTenantService(
	stores ports.StoreRepository,
	fallbackSecret string,
	fallbackToken string,
	logger zerolog.Logger,
) *TenantService {
	return &TenantService{
		stores:         stores,
		fallbackSecret: fallbackSecret,
		fallbackToken:  fallbackToken,
		logger:         logger,
	}
}

// Resolve returns the tenant whose secret signed body, or (nil, nil)
// when no secret matches and the request must be rejected. body must be
// the raw wire bytes, untouched by any JSON round trip.
func (s *TenantService) Resolve(ctx context.Context, body []byte, signature string) (*Tenant, error) {
	stores, err := s.stores.ListWebhookConfigured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load webhook-configured stores: %w", err)
	}

	for _, store := range stores {
		if !line.ValidateSignature(store.LineChannelSecret, body, signature) {
			continue
		}

		token := store.LineAccessToken
		if token == "" {
			token = s.fallbackToken
			s.logger.Warn().
				Str("storeId", store.ID).
				Msg("Store has no access token, falling back to global token")
		}
		return &Tenant{Store: store, AccessToken: token}, nil
	}

	if line.ValidateSignature(s.fallbackSecret, body, signature) {
		return &Tenant{AccessToken: s.fallbackToken}, nil
	}

	return nil, nil
}
