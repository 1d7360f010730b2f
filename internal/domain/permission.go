package domain

// Permission is the resolved capability record for one chat identity
// against one tenant store. StoreID is the store the caller belongs to
// for visibility purposes; empty means the caller only sees shared
// listings.
type Permission struct {
	Known      bool   `json:"known"`
	UserID     string `json:"user_id,omitempty"`
	StoreID    string `json:"store_id,omitempty"`
	IsOwner    bool   `json:"is_owner"`
	IsApproved bool   `json:"is_approved"`
	CanView    bool   `json:"can_view"`
	CanAdjust  bool   `json:"can_adjust"`
}

// AnonymousPermission is the record for a chat identity that was never
// linked to an application account: shared listings only, no writes.
func AnonymousPermission() Permission {
	return Permission{}
}

// ResolveCapabilities applies the capability defaults for a staff
// record: view fails open (allowed when unset), adjust fails closed
// (denied when unset). Owners bypass this entirely and an unapproved
// staff record grants nothing regardless of the stored flags.
func ResolveCapabilities(isOwner, isApproved bool, perms LinePermissions) (view, adjust bool) {
	if isOwner {
		return true, true
	}
	if !isApproved {
		return false, false
	}
	view = perms.View == nil || *perms.View
	adjust = perms.Adjust != nil && *perms.Adjust
	return view, adjust
}

// SeesOwnStore reports whether search results should include the
// caller's own (unshared) stock in addition to shared listings.
func (p Permission) SeesOwnStore() bool {
	return p.CanView && p.StoreID != ""
}
