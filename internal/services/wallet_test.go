package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/queue"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

type walletServiceMocks struct {
	reader  *services.MockWalletReader
	creator *services.MockWalletCreator
	txs     *services.MockTransactionReader
	cache   *services.MockWalletCache
	jobs    *services.MockJobQueue
}

func newWalletService(ctrl *gomock.Controller) (*services.WalletService, walletServiceMocks) {
	m := walletServiceMocks{
		reader:  services.NewMockWalletReader(ctrl),
		creator: services.NewMockWalletCreator(ctrl),
		txs:     services.NewMockTransactionReader(ctrl),
		cache:   services.NewMockWalletCache(ctrl),
		jobs:    services.NewMockJobQueue(ctrl),
	}
	return services.NewWalletService(m.reader, m.creator, m.txs, m.cache, m.jobs), m
}

func TestWalletService_SubmitDeposit(t *testing.T) {
	walletID := uuid.New()
	amount := decimal.RequireFromString("10.00")

	tests := []struct {
		name    string
		token   string
		setup   func(m walletServiceMocks)
		wantJob string
		wantErr error
	}{
		{
			name:  "success",
			token: "tok-d1",
			setup: func(m walletServiceMocks) {
				m.txs.EXPECT().GetByToken(gomock.Any(), "tok-d1").Return(nil, nil)
				m.jobs.EXPECT().
					Enqueue(gomock.Any(), models.JobTypeDeposit, "tok-d1", gomock.Any()).
					Return("tok-d1", nil)
			},
			wantJob: "tok-d1",
		},
		{
			name:  "duplicate token",
			token: "tok-d2",
			setup: func(m walletServiceMocks) {
				m.txs.EXPECT().GetByToken(gomock.Any(), "tok-d2").Return(&models.TransactionDB{
					TransactionID:    uuid.New(),
					IdempotencyToken: "tok-d2",
					Status:           models.TransactionStatusSuccess,
				}, nil)
			},
			wantErr: services.ErrDuplicateToken,
		},
		{
			name:    "empty token",
			token:   "",
			setup:   func(m walletServiceMocks) {},
			wantErr: services.ErrInvalidArgument,
		},
		{
			name:  "enqueue failure",
			token: "tok-d3",
			setup: func(m walletServiceMocks) {
				m.txs.EXPECT().GetByToken(gomock.Any(), "tok-d3").Return(nil, nil)
				m.jobs.EXPECT().
					Enqueue(gomock.Any(), models.JobTypeDeposit, "tok-d3", gomock.Any()).
					Return("", errors.New("redis down"))
			},
			wantErr: errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newWalletService(ctrl)
			tt.setup(m)

			jobID, err := svc.SubmitDeposit(context.Background(), walletID, amount, tt.token)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, jobID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantJob, jobID)
			}
		})
	}
}

func TestWalletService_SubmitWithdraw_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newWalletService(ctrl)

	_, err := svc.SubmitWithdraw(context.Background(), uuid.New(), decimal.RequireFromString("0"), "tok-w1")
	assert.ErrorIs(t, err, services.ErrInvalidAmount)

	_, err = svc.SubmitWithdraw(context.Background(), uuid.New(), decimal.RequireFromString("3.333"), "tok-w2")
	assert.ErrorIs(t, err, services.ErrInvalidAmount)
}

func TestWalletService_SubmitTransfer(t *testing.T) {
	fromID := uuid.New()
	toID := uuid.New()

	t.Run("same wallet rejected before touching the queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newWalletService(ctrl)

		_, err := svc.SubmitTransfer(context.Background(), fromID, fromID, decimal.RequireFromString("5.00"), "tok-t1")
		assert.ErrorIs(t, err, services.ErrSameWallet)
	})

	t.Run("payload carries both wallets and the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.txs.EXPECT().GetByToken(gomock.Any(), "tok-t2").Return(nil, nil)
		m.jobs.EXPECT().
			Enqueue(gomock.Any(), models.JobTypeTransfer, "tok-t2", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, jobID string, payload any) (string, error) {
				p, ok := payload.(models.JobPayload)
				assert.True(t, ok)
				assert.Equal(t, fromID, *p.FromWalletID)
				assert.Equal(t, toID, *p.ToWalletID)
				assert.Equal(t, "tok-t2", p.IdempotencyToken)
				return jobID, nil
			})

		jobID, err := svc.SubmitTransfer(context.Background(), fromID, toID, decimal.RequireFromString("5.00"), "tok-t2")
		assert.NoError(t, err)
		assert.Equal(t, "tok-t2", jobID)
	})
}

func TestWalletService_SubmitExport(t *testing.T) {
	walletID := uuid.New()

	t.Run("unknown wallet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), walletID).Return(nil, nil)

		_, err := svc.SubmitExport(context.Background(), walletID)
		assert.ErrorIs(t, err, services.ErrWalletNotFound)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.reader.EXPECT().GetByID(gomock.Any(), walletID).Return(&models.WalletDB{WalletID: walletID}, nil)
		m.jobs.EXPECT().
			Enqueue(gomock.Any(), models.JobTypeExport, "", gomock.Any()).
			Return("job-42", nil)

		jobID, err := svc.SubmitExport(context.Background(), walletID)
		assert.NoError(t, err)
		assert.Equal(t, "job-42", jobID)
	})
}

func TestWalletService_GetJobStatus(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.jobs.EXPECT().GetJob(gomock.Any(), "missing").Return(nil, nil)

		_, err := svc.GetJobStatus(context.Background(), "missing")
		assert.ErrorIs(t, err, services.ErrJobNotFound)
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.jobs.EXPECT().GetJob(gomock.Any(), "job-1").Return(&queue.JobView{
			ID:    "job-1",
			State: queue.StateCompleted,
		}, nil)

		view, err := svc.GetJobStatus(context.Background(), "job-1")
		assert.NoError(t, err)
		assert.Equal(t, queue.StateCompleted, view.State)
	})
}

func TestWalletService_GetWallet(t *testing.T) {
	walletID := uuid.New()
	wallet := &models.WalletDB{WalletID: walletID, Balance: decimal.RequireFromString("42.00")}

	t.Run("cache hit skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().Get(gomock.Any(), walletID).Return(wallet, nil)

		got, err := svc.GetWallet(context.Background(), walletID)
		assert.NoError(t, err)
		assert.Equal(t, wallet, got)
	})

	t.Run("cache miss falls back and repopulates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().Get(gomock.Any(), walletID).Return(nil, nil)
		m.reader.EXPECT().GetByID(gomock.Any(), walletID).Return(wallet, nil)
		m.cache.EXPECT().Set(gomock.Any(), wallet).Return(nil)

		got, err := svc.GetWallet(context.Background(), walletID)
		assert.NoError(t, err)
		assert.Equal(t, wallet, got)
	})

	t.Run("absent wallet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().Get(gomock.Any(), walletID).Return(nil, nil)
		m.reader.EXPECT().GetByID(gomock.Any(), walletID).Return(nil, nil)

		_, err := svc.GetWallet(context.Background(), walletID)
		assert.ErrorIs(t, err, services.ErrWalletNotFound)
	})
}

func TestWalletService_CreateWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	svc, m := newWalletService(ctrl)
	m.creator.EXPECT().
		Save(gomock.Any(), gomock.Any(), userID).
		DoAndReturn(func(_ context.Context, walletID, owner uuid.UUID) (*models.WalletDB, error) {
			return &models.WalletDB{WalletID: walletID, UserID: owner, Balance: decimal.Zero}, nil
		})

	wallet, err := svc.CreateWallet(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, wallet.UserID)
	assert.True(t, wallet.Balance.IsZero())
}

func TestWalletService_ListTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletID := uuid.New()
	records := []models.TransactionDB{
		{TransactionID: uuid.New(), ToWalletID: &walletID, Amount: decimal.RequireFromString("10.00")},
	}

	t.Run("FirstPageMissGoesToStoreAndCaches", func(t *testing.T) {
		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().GetTransactions(gomock.Any(), walletID, 10).Return(nil, 0, nil)
		m.txs.EXPECT().ListByWallet(gomock.Any(), walletID, 1, 10).Return(records, 1, nil)
		m.cache.EXPECT().SetTransactions(gomock.Any(), walletID, 10, records, 1).Return(nil)

		got, total, err := svc.ListTransactions(context.Background(), walletID, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, records, got)
	})

	t.Run("FirstPageHitSkipsStore", func(t *testing.T) {
		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().GetTransactions(gomock.Any(), walletID, 10).Return(records, 1, nil)

		got, total, err := svc.ListTransactions(context.Background(), walletID, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, records, got)
	})

	t.Run("SecondPageBypassesCache", func(t *testing.T) {
		svc, m := newWalletService(ctrl)
		m.txs.EXPECT().ListByWallet(gomock.Any(), walletID, 2, 10).Return(nil, 1, nil)

		_, total, err := svc.ListTransactions(context.Background(), walletID, 2, 10)
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("CacheErrorFallsThroughToStore", func(t *testing.T) {
		svc, m := newWalletService(ctrl)
		m.cache.EXPECT().GetTransactions(gomock.Any(), walletID, 10).Return(nil, 0, errors.New("redis down"))
		m.txs.EXPECT().ListByWallet(gomock.Any(), walletID, 1, 10).Return(records, 1, nil)
		m.cache.EXPECT().SetTransactions(gomock.Any(), walletID, 10, records, 1).Return(nil)

		got, _, err := svc.ListTransactions(context.Background(), walletID, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, records, got)
	})
}
