package queryfilter

import "errors"

var (
	// ErrUnrecognizedResource is returned when a query targets a table
	// with no declared filtering policy. Unknown means denied: a
	// forgotten declaration must never resolve to an unfiltered query.
	ErrUnrecognizedResource = errors.New("unrecognized resource type")

	// ErrNotTenantScoped is returned when tenant narrowing is requested
	// on a table declared exempt from tenant filtering.
	ErrNotTenantScoped = errors.New("resource is not tenant scoped")

	// ErrInvalidResource is returned by NewRegistry for a misdeclared
	// resource (duplicate table, missing tenant column).
	ErrInvalidResource = errors.New("invalid resource declaration")
)
