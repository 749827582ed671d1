// Package queryfilter injects tenant predicates into squirrel query
// builders, providing application-level row isolation independent of
// the database's own row-security policies.
//
// The injector works from a closed Registry of resource declarations:
// every table either names its tenant column or is explicitly declared
// exempt. Anything else fails with ErrUnrecognizedResource. The common
// bug class in multi-tenant code is the forgotten filter, and the
// fail-closed lookup makes "forgot to declare" surface as a loud error
// instead of an unfiltered query.
//
// # Usage
//
//	registry := queryfilter.MustNewRegistry(
//		queryfilter.TenantScoped("orders", "restaurant_id"),
//		queryfilter.TenantScoped("menu_items", "restaurant_id"),
//		queryfilter.Exempt("cuisines"),
//	)
//	injector := queryfilter.NewInjector(registry)
//
//	q := sq.Select("id", "total").From("orders").PlaceholderFormat(sq.Dollar)
//	q, err := injector.Select(q, tc, "orders")
//	if err != nil {
//		return err
//	}
//	sql, args, err := q.ToSql()
//
// Platform owners get unfiltered queries unless they narrow the scope
// themselves with WithTenant, in which case the narrowing is enforced.
// Everyone else always gets a predicate on their effective tenant,
// including onboarding principals confined to the no-access sentinel,
// whose queries match nothing.
package queryfilter
