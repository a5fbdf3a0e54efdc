package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"go.uber.org/zap"
)

type txKey struct{}

// TxOption adjusts the options every transaction of a manager starts with
type TxOption func(*sql.TxOptions)

// WithIsolation sets the isolation level
func WithIsolation(level sql.IsolationLevel) TxOption {
	return func(o *sql.TxOptions) { o.Isolation = level }
}

// WithReadOnly starts read-only transactions
func WithReadOnly() TxOption {
	return func(o *sql.TxOptions) { o.ReadOnly = true }
}

// TransactionManager implements repositories.TransactionManager on a DB pool
type TransactionManager struct {
	db     *DB
	opts   sql.TxOptions
	logger *zap.Logger
}

var _ repositories.TransactionManager = (*TransactionManager)(nil)

// NewTransactionManager creates a transaction manager
func NewTransactionManager(db *DB, logger *zap.Logger, opts ...TxOption) *TransactionManager {
	tm := &TransactionManager{db: db, logger: logger}
	for _, opt := range opts {
		opt(&tm.opts)
	}
	return tm
}

// InTransaction commits when fn returns nil and rolls back otherwise.
// A panic in fn rolls back before it propagates.
func (tm *TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	opts := tm.opts
	tx, err := tm.db.BeginTx(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			tm.logger.Error("failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("original_error", err),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// Executor is satisfied by both *sql.DB and *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// executor returns the transaction carried by ctx, or the pool
func (db *DB) executor(ctx context.Context) Executor {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db.DB
}
