package services

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// errAlreadyApplied aborts the enclosing transaction when a SUCCESS record
// already owns the idempotency token: the freshly computed balance changes
// are rolled back and the existing record is returned instead.
var errAlreadyApplied = errors.New("operation already applied")

// WalletLocker reads wallets under an exclusive row lock.
type WalletLocker interface {
	LockForUpdate(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) // Locks and returns a wallet row
}

// BalanceWriter persists updated wallet balances.
type BalanceWriter interface {
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error // Writes a new balance
}

// TransactionRecorder upserts ledger transaction rows keyed by idempotency token.
type TransactionRecorder interface {
	Record(ctx context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) // Returns stored row and whether it was written
}

// CacheInvalidator drops cached wallet state after a committed mutation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, walletID uuid.UUID) error // Removes wallet cache entries
}

// TxRunner executes a function inside an atomic storage transaction.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error // Commits on nil, rolls back on error
}

// LedgerService executes balance mutations as atomic units. Every operation
// locks the wallets it touches in ascending identifier order, applies
// 2-digit decimal arithmetic, rejects negative results, and writes the
// SUCCESS transaction record inside the same storage transaction so the
// unique token constraint is the final at-most-once arbiter.
type LedgerService struct {
	tx      TxRunner
	wallets WalletLocker
	writer  BalanceWriter
	txns    TransactionRecorder
	cache   CacheInvalidator
}

// NewLedgerService creates a new LedgerService. cache may be nil.
func NewLedgerService(
	tx TxRunner,
	wallets WalletLocker,
	writer BalanceWriter,
	txns TransactionRecorder,
	cache CacheInvalidator,
) *LedgerService {
	return &LedgerService{
		tx:      tx,
		wallets: wallets,
		writer:  writer,
		txns:    txns,
		cache:   cache,
	}
}

// validateAmount rejects non-positive amounts and amounts carrying more
// than two fractional digits.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

// Deposit credits amount to the wallet and records a SUCCESS transaction.
// Re-running with a token that already reached SUCCESS applies nothing and
// returns the existing record.
func (s *LedgerService) Deposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var result *models.TransactionDB
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		wallet, err := s.wallets.LockForUpdate(ctx, walletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return ErrWalletNotFound
		}

		newBalance := wallet.Balance.Add(amount).Round(2)
		if err := s.writer.UpdateBalance(ctx, walletID, newBalance); err != nil {
			return err
		}

		stored, written, err := s.txns.Record(ctx, &models.TransactionDB{
			TransactionID:    uuid.New(),
			ToWalletID:       &walletID,
			Amount:           amount.Round(2),
			Type:             models.TransactionTypeDeposit,
			Status:           models.TransactionStatusSuccess,
			IdempotencyToken: token,
		})
		if err != nil {
			return err
		}
		result = stored
		if !written {
			return errAlreadyApplied
		}
		return nil
	})

	if errors.Is(err, errAlreadyApplied) {
		logger.Log.Infow("deposit already applied", "wallet_id", walletID, "token", token)
		return result, nil
	}
	if err != nil {
		logger.Log.Errorw("deposit failed", "wallet_id", walletID, "amount", amount, "token", token, "error", err)
		return nil, err
	}

	s.invalidate(ctx, walletID)
	return result, nil
}

// Withdraw debits amount from the wallet. Fails with ErrInsufficientFunds
// if the resulting balance would be negative; the wallet is left untouched.
func (s *LedgerService) Withdraw(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var result *models.TransactionDB
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		wallet, err := s.wallets.LockForUpdate(ctx, walletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return ErrWalletNotFound
		}

		newBalance := wallet.Balance.Sub(amount).Round(2)
		if newBalance.IsNegative() {
			return ErrInsufficientFunds
		}
		if err := s.writer.UpdateBalance(ctx, walletID, newBalance); err != nil {
			return err
		}

		stored, written, err := s.txns.Record(ctx, &models.TransactionDB{
			TransactionID:    uuid.New(),
			FromWalletID:     &walletID,
			Amount:           amount.Round(2),
			Type:             models.TransactionTypeWithdrawal,
			Status:           models.TransactionStatusSuccess,
			IdempotencyToken: token,
		})
		if err != nil {
			return err
		}
		result = stored
		if !written {
			return errAlreadyApplied
		}
		return nil
	})

	if errors.Is(err, errAlreadyApplied) {
		logger.Log.Infow("withdrawal already applied", "wallet_id", walletID, "token", token)
		return result, nil
	}
	if err != nil {
		logger.Log.Errorw("withdrawal failed", "wallet_id", walletID, "amount", amount, "token", token, "error", err)
		return nil, err
	}

	s.invalidate(ctx, walletID)
	return result, nil
}

// Transfer moves amount between two wallets atomically. The debit and the
// credit commit together or not at all; a partial transfer is never
// observable. Row locks are taken in ascending wallet identifier order so
// opposite-direction transfers on the same pair cannot deadlock.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, ErrSameWallet
	}

	var result *models.TransactionDB
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		locked := make(map[uuid.UUID]*models.WalletDB, 2)
		for _, id := range lockOrder(fromID, toID) {
			wallet, err := s.wallets.LockForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if wallet == nil {
				return ErrWalletNotFound
			}
			locked[id] = wallet
		}

		from, to := locked[fromID], locked[toID]

		newFromBalance := from.Balance.Sub(amount).Round(2)
		if newFromBalance.IsNegative() {
			return ErrInsufficientFunds
		}
		newToBalance := to.Balance.Add(amount).Round(2)

		if err := s.writer.UpdateBalance(ctx, fromID, newFromBalance); err != nil {
			return err
		}
		if err := s.writer.UpdateBalance(ctx, toID, newToBalance); err != nil {
			return err
		}

		stored, written, err := s.txns.Record(ctx, &models.TransactionDB{
			TransactionID:    uuid.New(),
			FromWalletID:     &fromID,
			ToWalletID:       &toID,
			Amount:           amount.Round(2),
			Type:             models.TransactionTypeTransfer,
			Status:           models.TransactionStatusSuccess,
			IdempotencyToken: token,
		})
		if err != nil {
			return err
		}
		result = stored
		if !written {
			return errAlreadyApplied
		}
		return nil
	})

	if errors.Is(err, errAlreadyApplied) {
		logger.Log.Infow("transfer already applied", "from", fromID, "to", toID, "token", token)
		return result, nil
	}
	if err != nil {
		logger.Log.Errorw("transfer failed", "from", fromID, "to", toID, "amount", amount, "token", token, "error", err)
		return nil, err
	}

	s.invalidate(ctx, fromID, toID)
	return result, nil
}

// lockOrder returns the wallet identifiers in ascending byte order, the
// total order all operations acquire row locks in.
func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}

// invalidate drops cache entries for the touched wallets after commit.
// Cache failures are logged, never surfaced: the cache is best-effort.
func (s *LedgerService) invalidate(ctx context.Context, walletIDs ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, id := range walletIDs {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			logger.Log.Errorw("cache invalidation failed", "wallet_id", id, "error", err)
		}
	}
}
