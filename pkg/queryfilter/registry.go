package queryfilter

import (
	"errors"
	"fmt"
)

// Resource is the static per-table filtering policy: which column holds
// the owning tenant, or an explicit statement that the table is exempt
// from row-level filtering (reference data shared by all tenants).
//
// Exemption is always declared, never inferred: a table the registry
// does not know is denied, not passed through.
type Resource struct {
	Table        string
	TenantColumn string
	exempt       bool
}

// TenantScoped declares a table filtered by the given tenant column.
func TenantScoped(table, tenantColumn string) Resource {
	return Resource{Table: table, TenantColumn: tenantColumn}
}

// Exempt declares a table that is deliberately visible to all tenants,
// such as a shared cuisine catalog. The exemption must be enumerated
// here to be honored.
func Exempt(table string) Resource {
	return Resource{Table: table, exempt: true}
}

// Exempt reports whether the resource is excluded from tenant filtering.
func (r Resource) Exempt() bool { return r.exempt }

// Registry is the closed set of tables the injector knows how to
// filter. It is built once at startup and immutable afterwards.
type Registry struct {
	resources map[string]Resource
}

// NewRegistry builds a registry from the declared resources. It rejects
// duplicate tables and tenant-scoped resources without a tenant column,
// so a misdeclared policy fails at startup rather than at query time.
func NewRegistry(resources ...Resource) (*Registry, error) {
	m := make(map[string]Resource, len(resources))
	for _, res := range resources {
		if res.Table == "" {
			return nil, fmt.Errorf("%w: empty table name", ErrInvalidResource)
		}
		if !res.exempt && res.TenantColumn == "" {
			return nil, fmt.Errorf("%w: table %q has no tenant column", ErrInvalidResource, res.Table)
		}
		if _, dup := m[res.Table]; dup {
			return nil, fmt.Errorf("%w: table %q declared twice", ErrInvalidResource, res.Table)
		}
		m[res.Table] = res
	}
	return &Registry{resources: m}, nil
}

// MustNewRegistry is NewRegistry that panics on a misdeclared policy.
// Registries are assembled from static declarations at startup, where
// failing fast is the right behavior.
func MustNewRegistry(resources ...Resource) *Registry {
	r, err := NewRegistry(resources...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the filtering policy for a table. Unknown tables fail
// closed with ErrUnrecognizedResource.
func (r *Registry) Lookup(table string) (Resource, error) {
	res, ok := r.resources[table]
	if !ok {
		return Resource{}, errors.Join(ErrUnrecognizedResource, fmt.Errorf("table %q", table))
	}
	return res, nil
}
