package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// exportBatchSize is how many rows each page of the export loop reads.
const exportBatchSize = 500

// ExportService writes a wallet's full transaction history to a CSV file,
// page by page. It runs as a queue job; the resulting file path becomes the
// job's result.
type ExportService struct {
	txReader TransactionReader
	dir      string
}

// NewExportService creates an ExportService writing files under dir.
func NewExportService(txReader TransactionReader, dir string) *ExportService {
	return &ExportService{txReader: txReader, dir: dir}
}

// Export streams the wallet's transactions into a new CSV file and returns
// its path.
func (s *ExportService) Export(ctx context.Context, walletID uuid.UUID) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("wallet_%s_%d.csv", walletID, time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"transaction_id", "from_wallet_id", "to_wallet_id", "amount", "type", "status", "idempotency_token", "created_at"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	written := 0
	for page := 1; ; page++ {
		txns, total, err := s.txReader.ListByWallet(ctx, walletID, page, exportBatchSize)
		if err != nil {
			os.Remove(path)
			return "", err
		}

		for _, txn := range txns {
			if err := w.Write(exportRow(&txn)); err != nil {
				os.Remove(path)
				return "", err
			}
		}
		written += len(txns)

		if written >= total || len(txns) == 0 {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		os.Remove(path)
		return "", err
	}

	logger.Log.Infow("export written", "wallet_id", walletID, "path", path, "rows", written)
	return path, nil
}

func exportRow(txn *models.TransactionDB) []string {
	from, to := "", ""
	if txn.FromWalletID != nil {
		from = txn.FromWalletID.String()
	}
	if txn.ToWalletID != nil {
		to = txn.ToWalletID.String()
	}
	return []string{
		txn.TransactionID.String(),
		from,
		to,
		txn.Amount.StringFixed(2),
		txn.Type,
		txn.Status,
		txn.IdempotencyToken,
		txn.CreatedAt.Format(time.RFC3339),
	}
}
