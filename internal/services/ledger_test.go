package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

// runTx makes the mock TxRunner execute the closure like a real transaction.
func runTx(mockTx *services.MockTxRunner) {
	mockTx.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func TestLedgerService_Deposit(t *testing.T) {
	walletID := uuid.New()

	tests := []struct {
		name      string
		amount    decimal.Decimal
		setup     func(locker *services.MockWalletLocker, writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator)
		wantErr   error
		wantToken string
	}{
		{
			name:   "success",
			amount: decimal.RequireFromString("25.50"),
			setup: func(locker *services.MockWalletLocker, writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator) {
				locker.EXPECT().
					LockForUpdate(gomock.Any(), walletID).
					Return(&models.WalletDB{WalletID: walletID, Balance: decimal.RequireFromString("100.00")}, nil)
				writer.EXPECT().
					UpdateBalance(gomock.Any(), walletID, decimalEq("125.50")).
					Return(nil)
				txns.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) {
						assert.Equal(t, models.TransactionTypeDeposit, txn.Type)
						assert.Equal(t, models.TransactionStatusSuccess, txn.Status)
						assert.Equal(t, "tok-1", txn.IdempotencyToken)
						assert.Equal(t, walletID, *txn.ToWalletID)
						return txn, true, nil
					})
				cache.EXPECT().Invalidate(gomock.Any(), walletID).Return(nil)
			},
			wantToken: "tok-1",
		},
		{
			name:   "wallet not found",
			amount: decimal.RequireFromString("10.00"),
			setup: func(locker *services.MockWalletLocker, writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator) {
				locker.EXPECT().LockForUpdate(gomock.Any(), walletID).Return(nil, nil)
			},
			wantErr: services.ErrWalletNotFound,
		},
		{
			name:    "negative amount",
			amount:  decimal.RequireFromString("-5.00"),
			setup:   func(_ *services.MockWalletLocker, _ *services.MockBalanceWriter, _ *services.MockTransactionRecorder, _ *services.MockCacheInvalidator) {},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:    "too many fractional digits",
			amount:  decimal.RequireFromString("10.005"),
			setup:   func(_ *services.MockWalletLocker, _ *services.MockBalanceWriter, _ *services.MockTransactionRecorder, _ *services.MockCacheInvalidator) {},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:   "already applied returns existing record",
			amount: decimal.RequireFromString("25.50"),
			setup: func(locker *services.MockWalletLocker, writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator) {
				locker.EXPECT().
					LockForUpdate(gomock.Any(), walletID).
					Return(&models.WalletDB{WalletID: walletID, Balance: decimal.RequireFromString("100.00")}, nil)
				writer.EXPECT().
					UpdateBalance(gomock.Any(), walletID, gomock.Any()).
					Return(nil)
				txns.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Return(&models.TransactionDB{
						IdempotencyToken: "tok-1",
						Status:           models.TransactionStatusSuccess,
					}, false, nil)
				// Cache is not touched: the transaction rolled back.
			},
			wantToken: "tok-1",
		},
		{
			name:   "balance write error",
			amount: decimal.RequireFromString("25.50"),
			setup: func(locker *services.MockWalletLocker, writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator) {
				locker.EXPECT().
					LockForUpdate(gomock.Any(), walletID).
					Return(&models.WalletDB{WalletID: walletID, Balance: decimal.RequireFromString("100.00")}, nil)
				writer.EXPECT().
					UpdateBalance(gomock.Any(), walletID, gomock.Any()).
					Return(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTx := services.NewMockTxRunner(ctrl)
			locker := services.NewMockWalletLocker(ctrl)
			writer := services.NewMockBalanceWriter(ctrl)
			txns := services.NewMockTransactionRecorder(ctrl)
			cache := services.NewMockCacheInvalidator(ctrl)
			runTx(mockTx)
			tt.setup(locker, writer, txns, cache)

			svc := services.NewLedgerService(mockTx, locker, writer, txns, cache)

			txn, err := svc.Deposit(context.Background(), walletID, tt.amount, "tok-1")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, txn)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, txn.IdempotencyToken)
			}
		})
	}
}

func TestLedgerService_Withdraw(t *testing.T) {
	walletID := uuid.New()

	tests := []struct {
		name    string
		balance string
		amount  string
		setup   func(writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator)
		wantErr error
	}{
		{
			name:    "success drains wallet to zero",
			balance: "100.00",
			amount:  "100.00",
			setup: func(writer *services.MockBalanceWriter, txns *services.MockTransactionRecorder, cache *services.MockCacheInvalidator) {
				writer.EXPECT().
					UpdateBalance(gomock.Any(), walletID, decimalEq("0.00")).
					Return(nil)
				txns.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) {
						assert.Equal(t, models.TransactionTypeWithdrawal, txn.Type)
						assert.Equal(t, walletID, *txn.FromWalletID)
						assert.Nil(t, txn.ToWalletID)
						return txn, true, nil
					})
				cache.EXPECT().Invalidate(gomock.Any(), walletID).Return(nil)
			},
		},
		{
			name:    "insufficient funds leaves balance untouched",
			balance: "100.00",
			amount:  "120.00",
			setup:   func(_ *services.MockBalanceWriter, _ *services.MockTransactionRecorder, _ *services.MockCacheInvalidator) {},
			wantErr: services.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTx := services.NewMockTxRunner(ctrl)
			locker := services.NewMockWalletLocker(ctrl)
			writer := services.NewMockBalanceWriter(ctrl)
			txns := services.NewMockTransactionRecorder(ctrl)
			cache := services.NewMockCacheInvalidator(ctrl)
			runTx(mockTx)

			locker.EXPECT().
				LockForUpdate(gomock.Any(), walletID).
				Return(&models.WalletDB{WalletID: walletID, Balance: decimal.RequireFromString(tt.balance)}, nil)
			tt.setup(writer, txns, cache)

			svc := services.NewLedgerService(mockTx, locker, writer, txns, cache)

			txn, err := svc.Withdraw(context.Background(), walletID, decimal.RequireFromString(tt.amount), "tok-w")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, txn)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, txn)
			}
		})
	}
}

func TestLedgerService_Transfer(t *testing.T) {
	fromID := uuid.New()
	toID := uuid.New()

	t.Run("debit and credit move together", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := services.NewMockTxRunner(ctrl)
		locker := services.NewMockWalletLocker(ctrl)
		writer := services.NewMockBalanceWriter(ctrl)
		txns := services.NewMockTransactionRecorder(ctrl)
		cache := services.NewMockCacheInvalidator(ctrl)
		runTx(mockTx)

		locker.EXPECT().
			LockForUpdate(gomock.Any(), fromID).
			Return(&models.WalletDB{WalletID: fromID, Balance: decimal.RequireFromString("100.00")}, nil)
		locker.EXPECT().
			LockForUpdate(gomock.Any(), toID).
			Return(&models.WalletDB{WalletID: toID, Balance: decimal.RequireFromString("50.00")}, nil)

		writer.EXPECT().UpdateBalance(gomock.Any(), fromID, decimalEq("70.00")).Return(nil)
		writer.EXPECT().UpdateBalance(gomock.Any(), toID, decimalEq("80.00")).Return(nil)

		txns.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) {
				assert.Equal(t, models.TransactionTypeTransfer, txn.Type)
				assert.Equal(t, fromID, *txn.FromWalletID)
				assert.Equal(t, toID, *txn.ToWalletID)
				return txn, true, nil
			})

		cache.EXPECT().Invalidate(gomock.Any(), fromID).Return(nil)
		cache.EXPECT().Invalidate(gomock.Any(), toID).Return(nil)

		svc := services.NewLedgerService(mockTx, locker, writer, txns, cache)

		txn, err := svc.Transfer(context.Background(), fromID, toID, decimal.RequireFromString("30.00"), "tok-t")
		assert.NoError(t, err)
		assert.NotNil(t, txn)
	})

	t.Run("locks are taken in ascending identifier order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := services.NewMockTxRunner(ctrl)
		locker := services.NewMockWalletLocker(ctrl)
		writer := services.NewMockBalanceWriter(ctrl)
		txns := services.NewMockTransactionRecorder(ctrl)
		runTx(mockTx)

		lower, higher := fromID, toID
		if bytes.Compare(lower[:], higher[:]) > 0 {
			lower, higher = higher, lower
		}

		gomock.InOrder(
			locker.EXPECT().
				LockForUpdate(gomock.Any(), lower).
				Return(&models.WalletDB{WalletID: lower, Balance: decimal.RequireFromString("100.00")}, nil),
			locker.EXPECT().
				LockForUpdate(gomock.Any(), higher).
				Return(&models.WalletDB{WalletID: higher, Balance: decimal.RequireFromString("100.00")}, nil),
		)
		writer.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		txns.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error) {
				return txn, true, nil
			})

		svc := services.NewLedgerService(mockTx, locker, writer, txns, nil)

		// Submit with the arguments in descending order; the lock order must
		// still be ascending.
		_, err := svc.Transfer(context.Background(), higher, lower, decimal.RequireFromString("1.00"), "tok-o")
		assert.NoError(t, err)
	})

	t.Run("same wallet is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := services.NewMockTxRunner(ctrl)
		svc := services.NewLedgerService(mockTx,
			services.NewMockWalletLocker(ctrl),
			services.NewMockBalanceWriter(ctrl),
			services.NewMockTransactionRecorder(ctrl),
			nil,
		)

		_, err := svc.Transfer(context.Background(), fromID, fromID, decimal.RequireFromString("10.00"), "tok-s")
		assert.ErrorIs(t, err, services.ErrSameWallet)
	})

	t.Run("insufficient funds rolls back both wallets", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := services.NewMockTxRunner(ctrl)
		locker := services.NewMockWalletLocker(ctrl)
		runTx(mockTx)

		locker.EXPECT().
			LockForUpdate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.WalletDB, error) {
				return &models.WalletDB{WalletID: id, Balance: decimal.RequireFromString("5.00")}, nil
			}).
			Times(2)

		svc := services.NewLedgerService(mockTx, locker,
			services.NewMockBalanceWriter(ctrl),
			services.NewMockTransactionRecorder(ctrl),
			nil,
		)

		_, err := svc.Transfer(context.Background(), fromID, toID, decimal.RequireFromString("10.00"), "tok-i")
		assert.ErrorIs(t, err, services.ErrInsufficientFunds)
	})
}

// decimalEq matches a decimal argument by value rather than representation.
func decimalEq(want string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(want)}
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "decimal equal to " + m.want.String()
}
