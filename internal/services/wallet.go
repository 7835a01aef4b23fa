package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/queue"
)

// WalletReader reads wallets without locking.
type WalletReader interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) // Returns nil when absent
}

// WalletCreator persists new wallets.
type WalletCreator interface {
	Save(ctx context.Context, walletID, userID uuid.UUID) (*models.WalletDB, error)
}

// TransactionReader looks up ledger records.
type TransactionReader interface {
	GetByToken(ctx context.Context, token string) (*models.TransactionDB, error)                                         // Returns nil when absent
	ListByWallet(ctx context.Context, walletID uuid.UUID, page, limit int) ([]models.TransactionDB, int, error) // Paginated wallet history
}

// WalletCache is the read-through cache for wallet lookups and first-page
// history listings.
type WalletCache interface {
	Get(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error)
	Set(ctx context.Context, wallet *models.WalletDB) error
	GetTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]models.TransactionDB, int, error)
	SetTransactions(ctx context.Context, walletID uuid.UUID, limit int, records []models.TransactionDB, total int) error
}

// JobQueue is the queue surface the submission path needs.
type JobQueue interface {
	Enqueue(ctx context.Context, jobType, jobID string, payload any) (string, error)
	GetJob(ctx context.Context, jobID string) (*queue.JobView, error)
}

// WalletService is the synchronous request path: it admits operations
// through the idempotency guard, enqueues them as jobs, and answers
// wallet, transaction and job-status reads. All mutation outcomes are
// obtained later by polling job status.
type WalletService struct {
	walletReader  WalletReader
	walletCreator WalletCreator
	txReader      TransactionReader
	cache         WalletCache
	jobs          JobQueue
}

// NewWalletService creates a new WalletService. cache may be nil.
func NewWalletService(
	walletReader WalletReader,
	walletCreator WalletCreator,
	txReader TransactionReader,
	cache WalletCache,
	jobs JobQueue,
) *WalletService {
	return &WalletService{
		walletReader:  walletReader,
		walletCreator: walletCreator,
		txReader:      txReader,
		cache:         cache,
		jobs:          jobs,
	}
}

// admit is the idempotency guard: it rejects tokens that already have a
// ledger record. This is a fast-reject optimization only; the unique
// constraint on the token, enforced when the processor writes the record,
// remains the correctness boundary.
func (s *WalletService) admit(ctx context.Context, token string) (*models.TransactionDB, error) {
	if token == "" {
		return nil, ErrInvalidArgument
	}
	existing, err := s.txReader.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// SubmitDeposit validates and enqueues a deposit, returning the job ID the
// caller polls for the outcome.
func (s *WalletService) SubmitDeposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (string, error) {
	return s.submit(ctx, models.JobTypeDeposit, models.JobPayload{
		ToWalletID:       &walletID,
		Amount:           amount,
		IdempotencyToken: token,
	})
}

// SubmitWithdraw validates and enqueues a withdrawal.
func (s *WalletService) SubmitWithdraw(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (string, error) {
	return s.submit(ctx, models.JobTypeWithdraw, models.JobPayload{
		FromWalletID:     &walletID,
		Amount:           amount,
		IdempotencyToken: token,
	})
}

// SubmitTransfer validates and enqueues a transfer between two wallets.
func (s *WalletService) SubmitTransfer(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal, token string) (string, error) {
	if fromID == toID {
		return "", ErrSameWallet
	}
	return s.submit(ctx, models.JobTypeTransfer, models.JobPayload{
		FromWalletID:     &fromID,
		ToWalletID:       &toID,
		Amount:           amount,
		IdempotencyToken: token,
	})
}

func (s *WalletService) submit(ctx context.Context, jobType string, payload models.JobPayload) (string, error) {
	if err := validateAmount(payload.Amount); err != nil {
		return "", err
	}

	existing, err := s.admit(ctx, payload.IdempotencyToken)
	if err != nil {
		return "", err
	}
	if existing != nil {
		logger.Log.Warnw("duplicate submission rejected",
			"token", payload.IdempotencyToken,
			"transaction_id", existing.TransactionID,
			"status", existing.Status,
		)
		return "", ErrDuplicateToken
	}

	// The token doubles as the job ID, so a concurrent duplicate that slips
	// past the guard collapses onto the same job instead of a second one.
	jobID, err := s.jobs.Enqueue(ctx, jobType, payload.IdempotencyToken, payload)
	if err != nil {
		logger.Log.Errorw("failed to enqueue job", "type", jobType, "token", payload.IdempotencyToken, "error", err)
		return "", err
	}

	logger.Log.Infow("operation submitted", "type", jobType, "job_id", jobID)
	return jobID, nil
}

// SubmitExport enqueues a transaction export for the wallet.
func (s *WalletService) SubmitExport(ctx context.Context, walletID uuid.UUID) (string, error) {
	wallet, err := s.walletReader.GetByID(ctx, walletID)
	if err != nil {
		return "", err
	}
	if wallet == nil {
		return "", ErrWalletNotFound
	}

	jobID, err := s.jobs.Enqueue(ctx, models.JobTypeExport, "", models.JobPayload{
		FromWalletID: &walletID,
	})
	if err != nil {
		logger.Log.Errorw("failed to enqueue export", "wallet_id", walletID, "error", err)
		return "", err
	}
	return jobID, nil
}

// GetJobStatus returns the queue's view of a job.
func (s *WalletService) GetJobStatus(ctx context.Context, jobID string) (*queue.JobView, error) {
	view, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrJobNotFound
	}
	return view, nil
}

// ListTransactions returns one page of a wallet's ledger history. The first
// page is served cache-aside; the ledger invalidates the entry on every
// mutation, so a cached page is never older than the last commit.
func (s *WalletService) ListTransactions(ctx context.Context, walletID uuid.UUID, page, limit int) ([]models.TransactionDB, int, error) {
	if s.cache != nil && page == 1 {
		if records, total, err := s.cache.GetTransactions(ctx, walletID, limit); err == nil && records != nil {
			return records, total, nil
		}
	}

	records, total, err := s.txReader.ListByWallet(ctx, walletID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil && page == 1 {
		if err := s.cache.SetTransactions(ctx, walletID, limit, records, total); err != nil {
			logger.Log.Errorw("failed to cache transactions", "wallet_id", walletID, "error", err)
		}
	}
	return records, total, nil
}

// CreateWallet creates an empty wallet owned by the user.
func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	wallet, err := s.walletCreator.Save(ctx, uuid.New(), userID)
	if err != nil {
		logger.Log.Errorw("failed to create wallet", "user_id", userID, "error", err)
		return nil, err
	}
	return wallet, nil
}

// GetWallet reads a wallet through the cache. A miss falls back to the
// store and repopulates the cache entry.
func (s *WalletService) GetWallet(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, walletID); err == nil && cached != nil {
			return cached, nil
		}
	}

	wallet, err := s.walletReader.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, wallet); err != nil {
			logger.Log.Errorw("failed to cache wallet", "wallet_id", walletID, "error", err)
		}
	}
	return wallet, nil
}
