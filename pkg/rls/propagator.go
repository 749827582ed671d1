package rls

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dinekit/dinekit/pkg/tenancy"
)

// Session is the minimal query surface the propagator needs. Both
// pgx.Tx and *pgxpool.Conn satisfy it, as do the fakes used in tests.
type Session interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Propagator is the single serialization boundary between tenant
// contexts and the database session variables the row-security
// policies read. Every binding of "current tenant" onto a connection
// goes through here; call sites never set the variables themselves.
type Propagator struct{}

// NewPropagator creates a propagator.
func NewPropagator() *Propagator {
	return &Propagator{}
}

// Bind sets the four policy variables as transaction-local state on the
// session, which must be inside an open transaction. Transaction-local
// scope (set_config with is_local = true) means the binding cannot
// outlive the transaction even if every later cleanup step is skipped.
//
// Bind is idempotent for the same context within one transaction.
// Binding a different context onto an already-bound transaction is a
// programming error and fails with ErrAlreadyBound; it never silently
// overwrites.
func (p *Propagator) Bind(ctx context.Context, sess Session, tc tenancy.Context) error {
	var boundPrincipal, boundTenant string
	err := sess.QueryRow(ctx,
		`SELECT COALESCE(current_setting($1, true), ''), COALESCE(current_setting($2, true), '')`,
		VarPrincipalID, VarTenantID,
	).Scan(&boundPrincipal, &boundTenant)
	if err != nil {
		return errors.Join(ErrBind, err)
	}

	if boundPrincipal != "" {
		vars := sessionVars(tc)
		if boundPrincipal == vars[0].value && boundTenant == vars[2].value {
			return nil
		}
		return errors.Join(ErrAlreadyBound,
			fmt.Errorf("transaction already bound to principal %s", boundPrincipal))
	}

	for _, v := range sessionVars(tc) {
		if _, err := sess.Exec(ctx, `SELECT set_config($1, $2, true)`, v.name, v.value); err != nil {
			return errors.Join(ErrBind, err)
		}
	}
	return nil
}

// Clear resets all four policy variables to the no-access state at
// session scope. It runs on every exit path of a unit of work, bound
// or not: the transaction-local binding is already gone once the
// transaction ended, and the session-level reset closes the hole a
// future session-scoped binding would otherwise reopen. A Clear
// failure means the connection's tenant state is uncertain and the
// connection must not return to the pool.
func (p *Propagator) Clear(ctx context.Context, sess Session) error {
	for _, v := range noAccessVars() {
		if _, err := sess.Exec(ctx, `SELECT set_config($1, $2, false)`, v.name, v.value); err != nil {
			return errors.Join(ErrClear, err)
		}
	}
	return nil
}
