package tenancy

import "errors"

var (
	// ErrInvalidPrincipal is returned when a principal is missing its id or email.
	ErrInvalidPrincipal = errors.New("invalid principal")

	// ErrInvalidRole is returned when a principal carries an unknown role value.
	ErrInvalidRole = errors.New("invalid principal role")

	// ErrNoContext is returned when no tenant context is attached to the
	// request context.
	ErrNoContext = errors.New("no tenant context")
)
