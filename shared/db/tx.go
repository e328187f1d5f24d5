package db

import (
	"context"
	"database/sql"
	"fmt"
)

// txKey is the context key under which the active transaction is stored
type txKey struct{}

// Executor is the subset of *sql.DB and *sql.Tx used by the repositories
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx returns a new context carrying tx
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTx retrieves the transaction from context if it exists
func GetTx(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// GetExecutor returns the transaction bound to ctx, or conn when there is none.
// Repositories must route every statement through it so that a mutation's
// reads and writes share one transaction.
func GetExecutor(ctx context.Context, conn *sql.DB) Executor {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return conn
}

// RunInTransaction executes fn within a database transaction.
// A transaction already present in ctx is reused and left for the outer
// caller to commit or roll back.
func RunInTransaction(ctx context.Context, conn *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Transactor runs units of work against a single connection pool
type Transactor struct {
	conn *sql.DB
}

func NewTransactor(conn *sql.DB) *Transactor {
	return &Transactor{conn: conn}
}

// RunInTransaction runs fn in a transaction on the transactor's pool
func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return RunInTransaction(ctx, t.conn, fn)
}
