package application

import (
	"context"
	"testing"

	"tirehub-line-gateway/internal/domain"

	"github.com/rs/zerolog"
)

func newPermissionFixture() (*PermissionService, *fakeMembershipRepo) {
	adjust := true
	memberships := &fakeMembershipRepo{memberships: []*domain.StoreMembership{
		{ID: "m1", UserID: "user-staff", StoreID: "store-a", Role: domain.RoleStaff, IsApproved: true,
			Permissions: domain.PermissionSet{Line: domain.LinePermissions{Adjust: &adjust}}},
		{ID: "m2", UserID: "user-pending", StoreID: "store-a", Role: domain.RoleStaff, IsApproved: false},
	}}
	profiles := &fakeProfileRepo{profiles: []*domain.Profile{
		{ID: "user-owner", LineUserID: "U-owner"},
		{ID: "user-staff", LineUserID: "U-staff"},
		{ID: "user-pending", LineUserID: "U-pending"},
		{ID: "user-outsider", LineUserID: "U-outsider"},
	}}
	stores := &fakeStoreRepo{stores: []*domain.Store{
		{ID: "store-a", Name: "Store A", OwnerUserID: "user-owner"},
	}}
	return NewPermissionService(profiles, stores, memberships, zerolog.Nop()), memberships
}

func TestPermissionResolve(t *testing.T) {
	t.Parallel()

	svc, _ := newPermissionFixture()
	ctx := context.Background()

	tests := []struct {
		name       string
		lineUserID string
		storeID    string
		want       domain.Permission
	}{
		{
			name:       "unlinked identity is anonymous",
			lineUserID: "U-stranger",
			storeID:    "store-a",
			want:       domain.Permission{},
		},
		{
			name:       "owner gets full capabilities",
			lineUserID: "U-owner",
			storeID:    "store-a",
			want: domain.Permission{Known: true, UserID: "user-owner", StoreID: "store-a",
				IsOwner: true, IsApproved: true, CanView: true, CanAdjust: true},
		},
		{
			name:       "approved staff with adjust grant",
			lineUserID: "U-staff",
			storeID:    "store-a",
			want: domain.Permission{Known: true, UserID: "user-staff", StoreID: "store-a",
				IsApproved: true, CanView: true, CanAdjust: true},
		},
		{
			name:       "unapproved staff sees shared stock only",
			lineUserID: "U-pending",
			storeID:    "store-a",
			want:       domain.Permission{Known: true, UserID: "user-pending"},
		},
		{
			name:       "linked non-member views without store scope",
			lineUserID: "U-outsider",
			storeID:    "store-a",
			want:       domain.Permission{Known: true, UserID: "user-outsider", CanView: true},
		},
		{
			name:       "fallback tenant grants view only",
			lineUserID: "U-staff",
			storeID:    "",
			want:       domain.Permission{Known: true, UserID: "user-staff", CanView: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, tt.lineUserID, tt.storeID)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPermissionRevocationTakesEffectOnNextResolve(t *testing.T) {
	t.Parallel()

	svc, memberships := newPermissionFixture()
	ctx := context.Background()

	before, err := svc.Resolve(ctx, "U-staff", "store-a")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !before.CanAdjust {
		t.Fatal("staff should start with adjust capability")
	}

	memberships.memberships[0].IsApproved = false

	after, err := svc.Resolve(ctx, "U-staff", "store-a")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if after.CanAdjust || after.CanView {
		t.Errorf("revoked approval must strip capabilities, got %+v", after)
	}
}
