package rls

import "errors"

var (
	// ErrBind is returned when propagating a tenant context onto the
	// connection failed. Fatal for the current unit of work: it aborts
	// before any tenant-scoped query executes.
	ErrBind = errors.New("failed to bind tenant context")

	// ErrAlreadyBound is returned when a different tenant context is
	// bound onto a transaction that already carries one. This is a
	// programming error; the existing binding is never overwritten.
	ErrAlreadyBound = errors.New("transaction already bound to another tenant context")

	// ErrClear is returned when resetting the session variables failed.
	// The affected connection is destroyed instead of pooled; the error
	// degrades pool capacity rather than propagating to the caller.
	ErrClear = errors.New("failed to clear tenant context")

	// ErrAcquireConn is returned when no connection could be leased
	// from the pool.
	ErrAcquireConn = errors.New("failed to acquire connection")

	// ErrBeginTx is returned when the transaction could not be started.
	ErrBeginTx = errors.New("failed to begin transaction")

	// ErrCommitTx is returned when committing the unit of work failed.
	ErrCommitTx = errors.New("failed to commit transaction")
)
