package application

import (
	"context"
	"fmt"
	"time"

	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// LinkOutcome is the result of a link-code redemption attempt. Unknown
// and expired are distinguished so the user knows whether to retype or
// regenerate.
type LinkOutcome int

const (
	LinkUnknown LinkOutcome = iota
	LinkExpired
	LinkSuccess
)

// LinkService redeems one-time link codes, attaching a LINE identity
// to an application account.
type LinkService struct {
	codes    ports.LinkCodeRepository
	profiles ports.ProfileRepository
	stores   ports.StoreRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewLinkService creates a new link redemption service.
func NewLinkService(
	codes ports.LinkCodeRepository,
	profiles ports.ProfileRepository,
	stores ports.StoreRepository,
	logger zerolog.Logger,
) *LinkService {
	return &LinkService{
		codes:    codes,
		profiles: profiles,
		stores:   stores,
		logger:   logger,
		now:      time.Now,
	}
}

// Redeem consumes a link code for a chat identity. An expired code is
// deleted and rejected; a consumed code cannot be redeemed again. When
// the redeeming user owns a store, completing the link also marks that
// store's webhook as verified.
func (s *LinkService) Redeem(ctx context.Context, code, lineUserID string) (LinkOutcome, error) {
	linkCode, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		return LinkUnknown, fmt.Errorf("failed to look up link code: %w", err)
	}
	if linkCode == nil {
		return LinkUnknown, nil
	}

	if linkCode.Expired(s.now()) {
		if err := s.codes.Delete(ctx, code); err != nil {
			s.logger.Error().Err(err).Str("code", code).Msg("Failed to delete expired link code")
		}
		return LinkExpired, nil
	}

	if err := s.profiles.LinkLineUser(ctx, linkCode.UserID, lineUserID); err != nil {
		return LinkUnknown, fmt.Errorf("failed to link profile: %w", err)
	}

	if err := s.codes.Delete(ctx, code); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("Failed to consume link code")
	}

	store, err := s.stores.GetByOwner(ctx, linkCode.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("userId", linkCode.UserID).Msg("Failed to load store for link verification")
	} else if store != nil && !store.LineWebhookVerified {
		if err := s.stores.MarkWebhookVerified(ctx, store.ID); err != nil {
			s.logger.Error().Err(err).Str("storeId", store.ID).Msg("Failed to mark webhook verified after linking")
		}
	}

	s.logger.Info().
		Str("userId", linkCode.UserID).
		Str("lineUserId", lineUserID).
		Msg("Link code redeemed")

	return LinkSuccess, nil
}
