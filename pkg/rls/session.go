package rls

import (
	"strconv"

	"github.com/dinekit/dinekit/pkg/tenancy"
)

// Session variable names the database row-security policies key off.
// These four names are the entire contract between this subsystem and
// the policy layer: policies must be expressed in terms of them and
// nothing else, and nothing outside the propagator may set them.
const (
	VarPrincipalID     = "app.principal_id"
	VarPrincipalRole   = "app.principal_role"
	VarTenantID        = "app.tenant_id"
	VarIsPlatformOwner = "app.is_platform_owner"
)

// sessionVar is one name/value pair emitted by the propagator.
type sessionVar struct {
	name  string
	value string
}

// sessionVars serializes a tenant context into the four policy
// variables. This is the single serialization boundary: no other code
// builds these values.
func sessionVars(tc tenancy.Context) [4]sessionVar {
	tenant := ""
	if t := tc.EffectiveTenant(); t != nil {
		tenant = t.String()
	}
	return [4]sessionVar{
		{VarPrincipalID, tc.PrincipalID().String()},
		{VarPrincipalRole, tc.PrincipalRole().String()},
		{VarTenantID, tenant},
		{VarIsPlatformOwner, strconv.FormatBool(tc.IsPlatformOwner())},
	}
}

// noAccessVars is the innocuous state Clear resets the session to.
// Empty strings read back as NULL through nullif in the policies,
// which deny by default.
func noAccessVars() [4]sessionVar {
	return [4]sessionVar{
		{VarPrincipalID, ""},
		{VarPrincipalRole, ""},
		{VarTenantID, ""},
		{VarIsPlatformOwner, "false"},
	}
}
