package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// TransactionWriteRepository handles ledger transaction writes
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Record upserts the transaction row for its idempotency token. The token
// owns at most one row, ever: the first attempt inserts it and later
// attempts update it in place. A row that already reached SUCCESS is never
// displaced; in that case Record reports written=false and returns the
// existing row, which callers treat as an idempotent duplicate.
func (r *TransactionWriteRepository) Record(ctx context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) {
	query := `
		INSERT INTO transactions
			(transaction_id, from_wallet_id, to_wallet_id, amount, type, status, idempotency_token, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (idempotency_token) DO UPDATE
		SET status = EXCLUDED.status,
		    amount = EXCLUDED.amount,
		    failure_reason = EXCLUDED.failure_reason
		WHERE transactions.status <> 'SUCCESS'
		RETURNING transaction_id, from_wallet_id, to_wallet_id, amount, type, status, idempotency_token, failure_reason, created_at
	`
	args := []any{
		txn.TransactionID, txn.FromWalletID, txn.ToWalletID,
		txn.Amount, txn.Type, txn.Status, txn.IdempotencyToken, txn.FailureReason,
	}

	var stored models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &stored, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A SUCCESS row already owns this token.
			existing, getErr := r.getByToken(ctx, txn.IdempotencyToken)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &stored, true, nil
}

func (r *TransactionWriteRepository) getByToken(ctx context.Context, token string) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, from_wallet_id, to_wallet_id, amount, type, status, idempotency_token, failure_reason, created_at
		FROM transactions
		WHERE idempotency_token = $1
	`

	var txn models.TransactionDB
	if err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, token); err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransactionReadRepository handles ledger transaction reads
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

func (r *TransactionReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// GetByToken retrieves the transaction holding an idempotency token.
// Returns nil if no transaction has been recorded under the token.
func (r *TransactionReadRepository) GetByToken(ctx context.Context, token string) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, from_wallet_id, to_wallet_id, amount, type, status, idempotency_token, failure_reason, created_at
		FROM transactions
		WHERE idempotency_token = $1
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, token)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{token},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// ListByWallet returns a page of transactions touching the wallet, newest
// first, along with the total number of matching rows.
func (r *TransactionReadRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, page, limit int) ([]models.TransactionDB, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	const query = `
		SELECT transaction_id, from_wallet_id, to_wallet_id, amount, type, status, idempotency_token, failure_reason, created_at
		FROM transactions
		WHERE from_wallet_id = $1 OR to_wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	const countQuery = `
		SELECT COUNT(*)
		FROM transactions
		WHERE from_wallet_id = $1 OR to_wallet_id = $1
	`

	offset := (page - 1) * limit

	var txns []models.TransactionDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &txns, query, walletID, limit, offset)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, limit, offset},
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := sqlx.GetContext(ctx, r.executor(ctx), &total, countQuery, walletID); err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}
