package rls

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/dinekit/dinekit/pkg/audit"
	"github.com/dinekit/dinekit/pkg/tenancy"
)

// Guard wraps the full lifecycle of a tenant-scoped unit of work:
// lease a connection, begin a transaction, bind the tenant context,
// run the caller's function, commit or roll back, clear the context,
// and release the connection.
//
// WithTenantScope is the only sanctioned way application code obtains a
// tenant-scoped transaction. Acquiring a connection from the pool
// directly bypasses binding and clearing and is an architectural
// violation, not a supported path.
type Guard struct {
	pool       Pool
	propagator *Propagator
	allow      tenancy.AllowList
	log        *slog.Logger
	auditLog   *audit.Logger
}

// Option configures the guard.
type Option func(*Guard)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAuditLogger sets the security audit trail.
func WithAuditLogger(l *audit.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.auditLog = l
		}
	}
}

// NewGuard creates a lifecycle guard over the given pool. The allow
// list is the platform-owner source of truth used when deriving tenant
// contexts from principals.
func NewGuard(pool Pool, allow tenancy.AllowList, opts ...Option) *Guard {
	if pool == nil {
		panic("rls: pool cannot be nil")
	}
	g := &Guard{
		pool:       pool,
		propagator: NewPropagator(),
		allow:      allow,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.auditLog == nil {
		g.auditLog = audit.NewLogger(g.log)
	}
	return g
}

// WithTenantScope derives a tenant context from the principal, leases a
// connection, and runs fn inside a transaction bound to that context.
// fn receives a context carrying the tenancy.Context for downstream
// use (query filtering, logging, audit).
//
// Guarantees, on every exit path including panics and cancellation:
// the transaction is committed or rolled back, the session variables
// are cleared, and the connection is either released cleared or
// destroyed. A connection never re-enters the pool bound to a
// previous request's context.
func (g *Guard) WithTenantScope(ctx context.Context, principal tenancy.Principal, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tc, err := tenancy.NewContext(principal, g.allow)
	if err != nil {
		return err
	}
	return g.WithContextScope(ctx, tc, fn)
}

// WithContextScope runs fn inside a transaction bound to an already
// derived tenant context. Background jobs that construct their context
// up front use this entry point; request handling goes through
// WithTenantScope.
func (g *Guard) WithContextScope(ctx context.Context, tc tenancy.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx = tenancy.WithContext(ctx, tc)

	// Acquire may block while the pool is exhausted; it is the only
	// suspension point in this subsystem.
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return errors.Join(ErrAcquireConn, err)
	}

	return g.run(ctx, conn, tc, fn)
}

// run owns the leased connection: exactly one cleanup pass happens on
// every exit path, and the connection re-enters the pool only after
// the session state was cleared.
func (g *Guard) run(ctx context.Context, conn Conn, tc tenancy.Context, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	var tx pgx.Tx
	done := false

	// Panic path: fn (or a pgx call) panicked before the normal cleanup
	// ran. Roll back, clear, release or destroy, then re-panic via the
	// runtime's unwinding.
	defer func() {
		if !done {
			g.finish(ctx, conn, tx)
		}
	}()

	tx, err = conn.Begin(ctx)
	if err != nil {
		done = true
		g.finish(ctx, conn, nil)
		return errors.Join(ErrBeginTx, err)
	}

	if err = g.propagator.Bind(ctx, tx, tc); err != nil {
		g.auditLog.Security(ctx, "rls.bind_failed", err,
			audit.WithResource("connection"),
		)
		done = true
		g.finish(ctx, conn, tx)
		return err
	}

	if err = fn(ctx, tx); err != nil {
		done = true
		g.finish(ctx, conn, tx)
		return err
	}

	if cerr := tx.Commit(ctx); cerr != nil {
		done = true
		g.finish(ctx, conn, tx)
		return errors.Join(ErrCommitTx, cerr)
	}

	done = true
	g.finish(ctx, conn, tx)
	return nil
}

// finish ends the transaction if still open, clears the session
// variables, and returns the connection to the pool. It runs exactly
// once per lease. Cleanup must proceed even when the request context
// was cancelled, so it detaches from ctx's cancellation.
//
// A Clear failure leaves the connection's tenant state uncertain; the
// connection is destroyed instead of released and the failure is
// recorded as a critical security event. That error degrades pool
// capacity rather than propagating to the caller.
func (g *Guard) finish(ctx context.Context, conn Conn, tx pgx.Tx) {
	cleanupCtx := context.WithoutCancel(ctx)

	if tx != nil {
		// No-op after a successful commit.
		if err := tx.Rollback(cleanupCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			g.log.ErrorContext(cleanupCtx, "rollback failed", slog.Any("error", err))
		}
	}

	if err := g.propagator.Clear(cleanupCtx, conn); err != nil {
		g.auditLog.Security(cleanupCtx, "rls.clear_failed", err,
			audit.WithResource("connection"),
		)
		if derr := conn.Destroy(cleanupCtx); derr != nil {
			g.log.ErrorContext(cleanupCtx, "failed to destroy connection", slog.Any("error", derr))
		}
		return
	}

	conn.Release()
}
