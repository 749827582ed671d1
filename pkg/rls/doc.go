// Package rls propagates tenant contexts into pooled Postgres
// connections and guarantees they are gone before a connection is
// reused. It is the authoritative implementation of context binding:
// every call site delegates here instead of setting session variables
// itself.
//
// Two cooperating pieces:
//
//   - Propagator serializes a tenancy.Context into the four session
//     variables the database row-security policies read
//     (app.principal_id, app.principal_role, app.tenant_id,
//     app.is_platform_owner), binding them transaction-locally and
//     clearing them on the way out.
//
//   - Guard wraps the whole lease lifecycle. WithTenantScope is the
//     single sanctioned entry point for tenant-scoped database work:
//
//	guard := rls.NewGuard(rls.NewPgxPool(pool), allowList)
//	err := guard.WithTenantScope(ctx, principal, func(ctx context.Context, tx pgx.Tx) error {
//		// every query on tx runs under the principal's tenant
//		_, err := tx.Exec(ctx, "INSERT INTO orders ...")
//		return err
//	})
//
// # Lifecycle invariant
//
// Per lease the connection moves through: unbound, bound, cleared,
// released. Binding happens exactly once, before the first
// tenant-scoped query; clearing happens before the connection returns
// to availability, on success, error, panic, and cancellation alike.
// If clearing fails the connection is destroyed rather than pooled —
// a connection of uncertain tenant state is worse than a temporarily
// smaller pool. Because the pool only hands out released connections,
// any later lease of the same physical connection observes no residual
// state from the previous one.
//
// Binding uses set_config(..., is_local => true), so the values cannot
// survive the transaction even if every later cleanup step were
// skipped; the explicit session-level Clear is the second, independent
// line of defense.
package rls
