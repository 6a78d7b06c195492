package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, letting repository
// methods run either standalone or as part of a caller-managed
// transaction without a separate code path for each.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txContextKey struct{}

// WithTx runs fn with a transaction bound into ctx, so every repository
// call fn makes against the same Connection joins the same transaction —
// required by §5's multi-row locking model (a shared Offer lock plus an
// exclusive PaymentOrder lock held across several repository calls in
// one commit path). It commits on a nil return and rolls back otherwise.
func WithTx(ctx context.Context, c *Connection, fn func(ctx context.Context) error) error {
	db, err := c.GetDB(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// QuerierFromContext returns the transaction bound by WithTx, or falls
// back to conn's plain connection when called outside one.
func QuerierFromContext(ctx context.Context, conn *Connection) (Querier, error) {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx, nil
	}

	db, err := conn.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ErrNoTx reports that no transaction is bound to the context. No
// function in this package returns it: QuerierFromContext falls back to
// the plain connection instead.
var ErrNoTx = errors.New("postgres: no transaction bound to context")
