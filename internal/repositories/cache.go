package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// WalletCacheRepository fronts wallet reads with Redis. It is eventually
// consistent: the ledger invalidates entries after each committed mutation,
// so a cached value is never older than the last invalidation.
type WalletCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached wallets
}

// NewWalletCacheRepository creates a new cache repository with the given TTL.
func NewWalletCacheRepository(client *redis.Client, expiration time.Duration) *WalletCacheRepository {
	return &WalletCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func walletKey(walletID uuid.UUID) string {
	return fmt.Sprintf("wallet:%s", walletID)
}

func walletTransactionsKey(walletID uuid.UUID) string {
	return fmt.Sprintf("wallet_transactions:%s", walletID)
}

// Get fetches a cached wallet. Returns nil on a cache miss.
func (r *WalletCacheRepository) Get(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	key := walletKey(walletID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logger.Log.Errorw("cache get failed", "key", key, "error", err)
		return nil, err
	}

	var wallet models.WalletDB
	if err := json.Unmarshal([]byte(val), &wallet); err != nil {
		logger.Log.Errorw("cache entry corrupted", "key", key, "error", err)
		return nil, err
	}

	return &wallet, nil
}

// Set caches a wallet with the repository TTL.
func (r *WalletCacheRepository) Set(ctx context.Context, wallet *models.WalletDB) error {
	key := walletKey(wallet.WalletID)

	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"error", err,
	)

	return err
}

// transactionPage is the cached form of a wallet's first history page. The
// limit it was read with is stored alongside so a lookup with a different
// page size misses instead of serving the wrong slice.
type transactionPage struct {
	Limit   int                    `json:"limit"`
	Total   int                    `json:"total"`
	Records []models.TransactionDB `json:"records"`
}

// GetTransactions fetches the cached first page of a wallet's history.
// Returns nil records on a miss or a limit mismatch.
func (r *WalletCacheRepository) GetTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]models.TransactionDB, int, error) {
	key := walletTransactionsKey(walletID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, 0, nil
		}
		logger.Log.Errorw("cache get failed", "key", key, "error", err)
		return nil, 0, err
	}

	var page transactionPage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		logger.Log.Errorw("cache entry corrupted", "key", key, "error", err)
		return nil, 0, err
	}
	if page.Limit != limit {
		return nil, 0, nil
	}

	return page.Records, page.Total, nil
}

// SetTransactions caches the first page of a wallet's history with the
// repository TTL.
func (r *WalletCacheRepository) SetTransactions(ctx context.Context, walletID uuid.UUID, limit int, records []models.TransactionDB, total int) error {
	key := walletTransactionsKey(walletID)

	data, err := json.Marshal(transactionPage{Limit: limit, Total: total, Records: records})
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"error", err,
	)

	return err
}

// Invalidate drops the cached wallet and its transaction listings. Called
// by the ledger after every committed mutation touching the wallet.
func (r *WalletCacheRepository) Invalidate(ctx context.Context, walletID uuid.UUID) error {
	keys := []string{walletKey(walletID), walletTransactionsKey(walletID)}

	err := r.client.Del(ctx, keys...).Err()

	logger.Log.Infow("cache invalidated",
		"keys", keys,
		"error", err,
	)

	return err
}
