package domain

import "time"

// Membership roles as stored by the web CRUD layer.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// LinePermissions is the `line` part of the membership permission
// object. Both flags are optional in the stored JSON; default
// resolution lives in ResolveCapabilities so it is applied consistently
// everywhere permissions are consulted.
type LinePermissions struct {
	View   *bool `json:"view,omitempty" bson:"view,omitempty"`
	Adjust *bool `json:"adjust,omitempty" bson:"adjust,omitempty"`
}

// PermissionSet mirrors the JSON permission object on a staff record.
// The gateway only reads the line section; web permissions belong to
// the web application.
type PermissionSet struct {
	Web  map[string]bool `json:"web,omitempty" bson:"web,omitempty"`
	Line LinePermissions `json:"line,omitempty" bson:"line,omitempty"`
}

// StoreMembership links a profile to a store with a role, an approval
// flag and fine-grained permissions.
type StoreMembership struct {
	ID          string        `json:"id" bson:"_id"`
	UserID      string        `json:"user_id" bson:"user_id"`
	StoreID     string        `json:"store_id" bson:"store_id"`
	Role        string        `json:"role" bson:"role"`
	IsApproved  bool          `json:"is_approved" bson:"is_approved"`
	Permissions PermissionSet `json:"permissions" bson:"permissions"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
