package tenancy

import (
	"github.com/google/uuid"
)

// Role is the coarse-grained role an authenticated principal holds.
// Roles are stable string values stored alongside the principal record,
// which means the role field alone is never trusted for cross-tenant
// power; see AllowList.
type Role string

const (
	// RolePlatformOwner marks a platform operator. The role by itself is
	// not sufficient for cross-tenant visibility; the principal's email
	// must also be present in the platform-owner allow-list.
	RolePlatformOwner Role = "platform_owner"

	// RoleRestaurantOwner owns exactly one restaurant tenant.
	RoleRestaurantOwner Role = "restaurant_owner"

	// RoleManager manages day-to-day operations within one tenant.
	RoleManager Role = "manager"

	// RoleEmployee is a regular staff member within one tenant.
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformOwner, RoleRestaurantOwner, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// Principal is a verified identity resolved by the authentication layer
// before this subsystem runs. All fields are validated and non-malleable
// by the time a Principal reaches NewContext.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`

	// OwningTenant is the restaurant this principal belongs to. Nil for
	// platform operators and for principals that have not completed
	// onboarding yet.
	OwningTenant *uuid.UUID `json:"owning_tenant,omitempty"`
}

// Validate checks the structural invariants of a resolved principal.
func (p Principal) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidPrincipal
	}
	if p.Email == "" {
		return ErrInvalidPrincipal
	}
	if !p.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}
