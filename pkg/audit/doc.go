// Package audit records the security trail of the tenant-isolation
// core: denied access, failed context bindings, and connections removed
// from service because their tenant state could not be cleared.
//
// Events are emitted as structured log records rather than stored
// directly; the platform's log pipeline owns retention and querying.
// Context extractors fill tenant and principal ids automatically for
// events raised inside a tenant scope:
//
//	auditLog := audit.NewLogger(log,
//		audit.WithTenantIDExtractor(tenantID),
//		audit.WithPrincipalIDExtractor(principalID),
//	)
//	auditLog.Security(ctx, "rls.clear_failed", err,
//		audit.WithResource("connection"),
//	)
package audit
