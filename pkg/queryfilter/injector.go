package queryfilter

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dinekit/dinekit/pkg/access"
	"github.com/dinekit/dinekit/pkg/tenancy"
)

// Injector augments query builders with the tenant predicate demanded
// by the context. It is the application-level half of row isolation,
// independent of the database's own row-security policies: either layer
// failing alone must not leak cross-tenant rows.
type Injector struct {
	registry *Registry
}

// NewInjector creates an injector over the given resource registry.
func NewInjector(registry *Registry) *Injector {
	return &Injector{registry: registry}
}

// ScopeOption adjusts how a single query is scoped.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	narrowTo *uuid.UUID
}

// WithTenant narrows a query to one tenant. Platform owners use it to
// voluntarily restrict an otherwise unfiltered query; once requested,
// the narrowing is enforced, not advisory. Non-owners may only narrow
// to their own tenant.
func WithTenant(tenant uuid.UUID) ScopeOption {
	return func(c *scopeConfig) {
		t := tenant
		c.narrowTo = &t
	}
}

// Select returns the builder with the tenant predicate applied.
func (i *Injector) Select(b sq.SelectBuilder, tc tenancy.Context, table string, opts ...ScopeOption) (sq.SelectBuilder, error) {
	pred, apply, err := i.predicate(tc, table, opts)
	if err != nil {
		return b, err
	}
	if !apply {
		return b, nil
	}
	return b.Where(pred), nil
}

// Update returns the builder with the tenant predicate applied.
func (i *Injector) Update(b sq.UpdateBuilder, tc tenancy.Context, table string, opts ...ScopeOption) (sq.UpdateBuilder, error) {
	pred, apply, err := i.predicate(tc, table, opts)
	if err != nil {
		return b, err
	}
	if !apply {
		return b, nil
	}
	return b.Where(pred), nil
}

// Delete returns the builder with the tenant predicate applied.
func (i *Injector) Delete(b sq.DeleteBuilder, tc tenancy.Context, table string, opts ...ScopeOption) (sq.DeleteBuilder, error) {
	pred, apply, err := i.predicate(tc, table, opts)
	if err != nil {
		return b, err
	}
	if !apply {
		return b, nil
	}
	return b.Where(pred), nil
}

// predicate resolves the policy for one query. The decision table:
//
//	unknown table                      -> ErrUnrecognizedResource
//	exempt table, no narrowing         -> no predicate
//	exempt table, narrowing requested  -> ErrNotTenantScoped
//	platform owner, no narrowing       -> no predicate (full visibility)
//	platform owner, narrowed to T      -> tenant_col = T
//	non-owner                          -> tenant_col = effective tenant,
//	                                      narrowing allowed only to their own tenant
//
// A non-owner confined to the no-access sentinel still gets a
// predicate; it simply matches nothing. The filter is never skipped.
func (i *Injector) predicate(tc tenancy.Context, table string, opts []ScopeOption) (sq.Eq, bool, error) {
	res, err := i.registry.Lookup(table)
	if err != nil {
		return nil, false, err
	}

	var cfg scopeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if res.Exempt() {
		if cfg.narrowTo != nil {
			return nil, false, ErrNotTenantScoped
		}
		return nil, false, nil
	}

	if tc.IsPlatformOwner() {
		if cfg.narrowTo == nil {
			return nil, false, nil
		}
		return sq.Eq{res.TenantColumn: *cfg.narrowTo}, true, nil
	}

	if cfg.narrowTo != nil {
		if err := access.ValidateTenantAccess(tc, *cfg.narrowTo, "query:"+table); err != nil {
			return nil, false, err
		}
	}

	et := tc.EffectiveTenant()
	if et == nil {
		// Unreachable for well-formed contexts: non-owners always carry
		// a tenant or the sentinel. Fail closed anyway.
		return sq.Eq{res.TenantColumn: tenancy.NoAccessTenantID}, true, nil
	}
	return sq.Eq{res.TenantColumn: *et}, true, nil
}
