package application

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// PermissionService resolves a chat identity to its capabilities
// against a tenant store. Every event re-resolves from scratch:
// permissions may change between a confirmation card being shown and
// its button being pressed.
type PermissionService struct {
	profiles    ports.ProfileRepository
	stores      ports.StoreRepository
	memberships ports.MembershipRepository
	logger      zerolog.Logger
}

// NewPermissionService creates a new permission resolver.
func NewPermissionService(
	profiles ports.ProfileRepository,
	stores ports.StoreRepository,
	memberships ports.MembershipRepository,
	logger zerolog.Logger,
) *PermissionService {
	return &PermissionService{
		profiles:    profiles,
		stores:      stores,
		memberships: memberships,
		logger:      logger,
	}
}

// Resolve builds the permission record for a chat identity. storeID is
// the tenant resolved from the webhook signature and may be empty for
// the global fallback configuration.
func (s *PermissionService) Resolve(ctx context.Context, lineUserID, storeID string) (domain.Permission, error) {
	profile, err := s.profiles.GetByLineUserID(ctx, lineUserID)
	if err != nil {
		return domain.Permission{}, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if profile == nil {
		// Never linked: shared listings only, no writes.
		return domain.AnonymousPermission(), nil
	}

	if storeID == "" {
		// Linked account under the global fallback configuration: there
		// is no tenant to grant adjust rights against.
		return domain.Permission{
			Known:   true,
			UserID:  profile.ID,
			CanView: true,
		}, nil
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return domain.Permission{}, fmt.Errorf("failed to load store: %w", err)
	}
	if store != nil && store.OwnerUserID == profile.ID {
		// Owners are definitionally approved and bypass the stored flags.
		view, adjust := domain.ResolveCapabilities(true, true, domain.LinePermissions{})
		return domain.Permission{
			Known:      true,
			UserID:     profile.ID,
			StoreID:    storeID,
			IsOwner:    true,
			IsApproved: true,
			CanView:    view,
			CanAdjust:  adjust,
		}, nil
	}

	membership, err := s.memberships.GetByUserAndStore(ctx, profile.ID, storeID)
	if err != nil {
		return domain.Permission{}, fmt.Errorf("failed to load membership: %w", err)
	}
	if membership == nil {
		// Linked account that does not belong to this tenant: same
		// visibility as an unaffiliated viewer.
		return domain.Permission{
			Known:   true,
			UserID:  profile.ID,
			CanView: true,
		}, nil
	}

	view, adjust := domain.ResolveCapabilities(false, membership.IsApproved, membership.Permissions.Line)
	perm := domain.Permission{
		Known:      true,
		UserID:     profile.ID,
		IsApproved: membership.IsApproved,
		CanView:    view,
		CanAdjust:  adjust,
	}
	if view {
		perm.StoreID = storeID
	}
	return perm, nil
}
