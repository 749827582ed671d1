package access

import (
	"github.com/google/uuid"

	"github.com/dinekit/dinekit/pkg/tenancy"
)

// IsPlatformOwner reports whether the context carries cross-tenant
// visibility. The underlying decision (role AND allow-list membership)
// was made once at context construction; this accessor never re-derives
// it from the role field.
func IsPlatformOwner(tc tenancy.Context) bool {
	return tc.IsPlatformOwner()
}

// ValidateTenantAccess checks whether the context may touch rows of the
// target tenant for the named operation.
//
// Platform owners always pass. Everyone else passes only when their
// effective tenant equals the target; a principal confined to the
// no-access sentinel fails against every real tenant. Repeated calls
// with the same arguments always yield the same result.
func ValidateTenantAccess(tc tenancy.Context, target uuid.UUID, operation string) error {
	if tc.IsPlatformOwner() {
		return nil
	}

	et := tc.EffectiveTenant()
	if et == nil || *et != target || target == tenancy.NoAccessTenantID {
		return newDenied(operation, target)
	}
	return nil
}

// ValidateCrossTenantOperation checks whether the context may perform an
// operation spanning two tenants, for example moving an order between
// restaurants. Only platform owners may cross tenant boundaries; a
// non-owner is denied even when one of the two tenants is their own,
// so a principal cannot use its own tenant as a pivot.
func ValidateCrossTenantOperation(tc tenancy.Context, source, dest uuid.UUID, operation string) error {
	if tc.IsPlatformOwner() {
		return nil
	}
	if source == dest {
		// Not a cross-tenant operation; same-tenant rules apply.
		return ValidateTenantAccess(tc, source, operation)
	}
	return newDenied(operation, dest)
}
