package rls

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of a connection pool the lifecycle guard uses.
// The pool's own lease/release synchronization is treated as an opaque,
// already-correct dependency.
type Pool interface {
	// Acquire leases one connection, blocking while the pool is
	// exhausted. The caller owns the connection until it calls Release
	// or Destroy exactly once.
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is one leased connection.
type Conn interface {
	Session

	// Begin starts a transaction on the connection.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Release returns the connection to the pool. Only a connection
	// whose session state was cleared may be released.
	Release()

	// Destroy removes the connection from the pool entirely. Used when
	// the connection's tenant state is uncertain: a smaller pool beats
	// a poisoned one.
	Destroy(ctx context.Context) error
}

// NewPgxPool adapts a *pgxpool.Pool to the Pool interface.
func NewPgxPool(pool *pgxpool.Pool) Pool {
	return &pgxPool{pool: pool}
}

type pgxPool struct {
	pool *pgxpool.Pool
}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxConn{conn: conn}, nil
}

type pgxConn struct {
	conn *pgxpool.Conn
}

func (c *pgxConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *pgxConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

func (c *pgxConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.conn.Begin(ctx)
}

func (c *pgxConn) Release() {
	c.conn.Release()
}

// Destroy hijacks the connection out of the pool and closes it, so the
// pool can never hand it to another request.
func (c *pgxConn) Destroy(ctx context.Context) error {
	return c.conn.Hijack().Close(ctx)
}
