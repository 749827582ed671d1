// Package tenancy defines the identity model for multi-tenant request
// handling: the Principal resolved by the authentication layer, the
// immutable tenant Context derived from it, and the platform-owner
// allow-list that gates cross-tenant visibility.
//
// The tenant Context is the single source of truth for what one unit of
// work may see. It is created once per request (or background job)
// right after principal resolution, threaded explicitly through the
// call chain, and discarded when the unit of work ends. It is never
// cached or reused across principals — that rule is what makes
// connection-pool context bleed-through impossible to reintroduce by
// accident.
//
// # Platform owners
//
// Cross-tenant power requires two independent conditions evaluated at
// Context construction time: the principal's role is RolePlatformOwner,
// and the principal's email is present in the AllowList. A role field
// alone is treated as untrusted input. Principals that fail either
// check are confined to their owning tenant, or to NoAccessTenantID
// when they have none.
//
// # Onboarding
//
// A non-owner principal without an assigned restaurant receives the
// NoAccessTenantID sentinel as its effective tenant. The sentinel
// matches no real tenant row, so such principals see nothing until
// onboarding completes. "No tenant" is deny-all, never "no filter".
//
// # Usage
//
//	allow := tenancy.NewAllowList("root@dinekit.example")
//	tc, err := tenancy.NewContext(principal, allow)
//	if err != nil {
//		return err
//	}
//	ctx = tenancy.WithContext(ctx, tc)
package tenancy
