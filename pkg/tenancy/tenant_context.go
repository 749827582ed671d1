package tenancy

import (
	"time"

	"github.com/google/uuid"
)

// NoAccessTenantID is the sentinel tenant assigned to principals that
// have no restaurant yet (onboarding in progress). It matches no real
// tenant row, so every tenant-scoped query filtered by it returns
// nothing. "No tenant assigned" therefore means deny-all, never
// "no filter".
var NoAccessTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Context is the immutable tenant context derived from a Principal for
// exactly one unit of work. It is the single source of truth for what
// that unit of work may see.
//
// A Context must never be cached, pooled, or reused across principals;
// it is created after principal resolution and discarded when the unit
// of work ends.
type Context struct {
	principalID     uuid.UUID
	principalRole   Role
	effectiveTenant *uuid.UUID
	platformOwner   bool
	createdAt       time.Time
}

// NewContext derives a tenant context from a resolved principal.
//
// The platform-owner decision is made here, once: the principal is a
// platform owner only if its role is RolePlatformOwner and its email is
// allow-listed. A platform owner gets platform-wide visibility
// (EffectiveTenant() == nil). Everyone else is confined to their owning
// tenant, or to the no-access sentinel when onboarding has not assigned
// one yet.
func NewContext(p Principal, allow AllowList) (Context, error) {
	if err := p.Validate(); err != nil {
		return Context{}, err
	}

	owner := p.Role == RolePlatformOwner && allow.Contains(p.Email)

	tc := Context{
		principalID:   p.ID,
		principalRole: p.Role,
		platformOwner: owner,
		createdAt:     time.Now(),
	}

	if owner {
		// Platform-wide visibility: no effective tenant.
		return tc, nil
	}

	if p.OwningTenant != nil && *p.OwningTenant != uuid.Nil {
		t := *p.OwningTenant
		tc.effectiveTenant = &t
		return tc, nil
	}

	// Not yet onboarded (or a tampered platform_owner role that failed
	// the allow-list): confine to the sentinel that matches nothing.
	sentinel := NoAccessTenantID
	tc.effectiveTenant = &sentinel
	return tc, nil
}

// PrincipalID returns the id of the principal this context was derived from.
func (c Context) PrincipalID() uuid.UUID { return c.principalID }

// PrincipalRole returns the principal's role.
func (c Context) PrincipalRole() Role { return c.principalRole }

// EffectiveTenant returns the tenant this context is confined to.
// Nil means platform-wide visibility and only ever occurs together with
// IsPlatformOwner() == true.
func (c Context) EffectiveTenant() *uuid.UUID {
	if c.effectiveTenant == nil {
		return nil
	}
	t := *c.effectiveTenant
	return &t
}

// IsPlatformOwner reports whether this context carries cross-tenant
// visibility. The decision was made at construction time; it is never
// re-derived from the role field.
func (c Context) IsPlatformOwner() bool { return c.platformOwner }

// CreatedAt returns when this context was derived.
func (c Context) CreatedAt() time.Time { return c.createdAt }

// HasTenant reports whether the context is confined to a real tenant
// (not platform-wide and not the no-access sentinel).
func (c Context) HasTenant() bool {
	return c.effectiveTenant != nil && *c.effectiveTenant != NoAccessTenantID
}
