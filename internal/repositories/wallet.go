package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// WalletWriteRepository handles wallet write operations
type WalletWriteRepository struct {
	db *sqlx.DB
}

func NewWalletWriteRepository(db *sqlx.DB) *WalletWriteRepository {
	return &WalletWriteRepository{db: db}
}

// executor returns the context transaction if one is active, otherwise the pool.
func (r *WalletWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Save inserts a new wallet with a zero balance.
func (r *WalletWriteRepository) Save(ctx context.Context, walletID, userID uuid.UUID) (*models.WalletDB, error) {
	query := `
		INSERT INTO wallets (wallet_id, user_id, balance, created_at, updated_at)
		VALUES ($1, $2, 0, NOW(), NOW())
		RETURNING wallet_id, user_id, balance, created_at, updated_at
	`

	var wallet models.WalletDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &wallet, query, walletID, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateBalance sets the wallet balance. Must run inside the transaction
// that holds the row lock.
func (r *WalletWriteRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = $2, updated_at = NOW()
		WHERE wallet_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, walletID, balance)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, balance},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// WalletReadRepository handles wallet read operations
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

func (r *WalletReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// GetByID retrieves a wallet without locking. Returns nil if absent.
func (r *WalletReadRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, balance, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1
	`

	var wallet models.WalletDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &wallet, query, walletID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

// LockForUpdate retrieves a wallet under an exclusive row lock. It must be
// called inside a context transaction; the lock is held until commit or
// rollback. Returns nil if the wallet does not exist.
func (r *WalletReadRepository) LockForUpdate(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, balance, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1
		FOR UPDATE
	`

	start := time.Now()

	var wallet models.WalletDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &wallet, query, walletID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID},
		"lock_wait", time.Since(start),
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}
