package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// TxRunner executes functions inside a database transaction with a bounded
// lock wait. Repositories pick the transaction up from the context, so every
// statement issued by fn runs on the same connection.
type TxRunner struct {
	db          *sqlx.DB
	lockTimeout string
}

// NewTxRunner creates a TxRunner. lockTimeout is a Postgres interval string
// such as "3s"; row lock waits beyond it fail the transaction.
func NewTxRunner(db *sqlx.DB, lockTimeout string) *TxRunner {
	return &TxRunner{db: db, lockTimeout: lockTimeout}
}

// Do runs fn inside a transaction. Any error from fn rolls everything back.
func (r *TxRunner) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if r.lockTimeout != "" {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", r.lockTimeout)); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := fn(setTxToContext(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}
