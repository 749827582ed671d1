package rls_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dinekit/dinekit/pkg/rls"
)

// fakeConn simulates one physical connection's session state: a
// session-scoped variable map plus a transaction-local overlay that
// reverts when the transaction ends, mirroring set_config semantics.
// Every state transition is appended to log so tests can assert
// ordering (begin, bind, commit/rollback, clear, release/destroy).
type fakeConn struct {
	mu      sync.Mutex
	session map[string]string
	txLocal map[string]string
	inTx    bool

	log       []string
	released  bool
	destroyed bool

	beginErr     error
	commitErr    error
	bindExecErr  error
	clearExecErr error
	queryErr     error
	destroyErr   error
}

func newFakeConn() *fakeConn {
	return &fakeConn{session: make(map[string]string)}
}

func (c *fakeConn) record(event string) {
	c.log = append(c.log, event)
}

func (c *fakeConn) events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.log))
	copy(out, c.log)
	return out
}

// lookup resolves a session variable the way current_setting does:
// transaction-local value first, session value second, empty otherwise.
func (c *fakeConn) lookup(name string) string {
	if c.inTx {
		if v, ok := c.txLocal[name]; ok {
			return v
		}
	}
	return c.session[name]
}

func (c *fakeConn) sessionValue(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session[name]
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !strings.Contains(sql, "set_config") {
		return pgconn.CommandTag{}, errors.New("unexpected statement: " + sql)
	}

	name, _ := args[0].(string)
	value, _ := args[1].(string)
	local := strings.Contains(sql, "true")

	if local {
		if c.bindExecErr != nil {
			return pgconn.CommandTag{}, c.bindExecErr
		}
		if !c.inTx {
			return pgconn.CommandTag{}, errors.New("set_config is_local outside transaction")
		}
		c.txLocal[name] = value
		c.record("set_local:" + name)
		return pgconn.CommandTag{}, nil
	}

	if c.clearExecErr != nil {
		return pgconn.CommandTag{}, c.clearExecErr
	}
	c.session[name] = value
	c.record("set_session:" + name)
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queryErr != nil {
		return &fakeRow{err: c.queryErr}
	}
	if !strings.Contains(sql, "current_setting") {
		return &fakeRow{err: errors.New("unexpected query: " + sql)}
	}

	vals := make([]string, 0, len(args))
	for _, a := range args {
		name, _ := a.(string)
		vals = append(vals, c.lookup(name))
	}
	return &fakeRow{vals: vals}
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.beginErr != nil {
		return nil, c.beginErr
	}
	c.inTx = true
	c.txLocal = make(map[string]string)
	c.record("begin")
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
	c.record("release")
}

func (c *fakeConn) Destroy(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyErr != nil {
		return c.destroyErr
	}
	c.destroyed = true
	c.record("destroy")
	return nil
}

// endTx reverts the transaction-local overlay, like Postgres does for
// set_config(..., is_local => true) on both commit and rollback.
func (c *fakeConn) endTx(event string) {
	c.inTx = false
	c.txLocal = nil
	c.record(event)
}

type fakeRow struct {
	vals []string
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		p, ok := d.(*string)
		if !ok {
			return errors.New("fakeRow: unsupported scan destination")
		}
		if i < len(r.vals) {
			*p = r.vals[i]
		}
	}
	return nil
}

type fakeTx struct {
	conn  *fakeConn
	ended bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions not supported")
}

func (t *fakeTx) Commit(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	if t.ended {
		return pgx.ErrTxClosed
	}
	if t.conn.commitErr != nil {
		return t.conn.commitErr
	}
	t.ended = true
	t.conn.endTx("commit")
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	if t.ended {
		return pgx.ErrTxClosed
	}
	t.ended = true
	t.conn.endTx("rollback")
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.conn.Exec(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.conn.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func (t *fakeTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) Conn() *pgx.Conn {
	return nil
}

// fakePool hands out the same physical connection on every acquire,
// which is exactly what the bleed-through tests need.
type fakePool struct {
	mu         sync.Mutex
	conn       *fakeConn
	acquireErr error
	acquires   int
}

func newFakePool(conn *fakeConn) *fakePool {
	return &fakePool{conn: conn}
}

func (p *fakePool) Acquire(context.Context) (rls.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquires++
	p.conn.mu.Lock()
	p.conn.released = false
	p.conn.mu.Unlock()
	return p.conn, nil
}
