package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/queue"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

// Ledger is the mutation surface the processor dispatches to.
type Ledger interface {
	Deposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error)
	Withdraw(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error)
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal, token string) (*models.TransactionDB, error)
}

// Exporter writes wallet histories to durable files.
type Exporter interface {
	Export(ctx context.Context, walletID uuid.UUID) (string, error)
}

// FailureRecorder persists FAILED transaction rows.
type FailureRecorder interface {
	Record(ctx context.Context, txn *models.TransactionDB) (*models.TransactionDB, bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransferProcessor consumes ledger jobs from the queue. Per delivery it
// dispatches to the matching ledger operation and records the outcome as a
// transaction row. A returned error means the attempt failed and the queue
// applies its retry policy based on the error kind.
type TransferProcessor struct {
	ledger      Ledger
	exporter    Exporter
	txns        FailureRecorder
	kafkaWriter KafkaWriter
}

// NewTransferProcessor creates a new TransferProcessor. kafkaWriter may be nil.
func NewTransferProcessor(ledger Ledger, exporter Exporter, txns FailureRecorder, kafkaWriter KafkaWriter) *TransferProcessor {
	return &TransferProcessor{
		ledger:      ledger,
		exporter:    exporter,
		txns:        txns,
		kafkaWriter: kafkaWriter,
	}
}

// Handle is the queue handler for every job type.
func (p *TransferProcessor) Handle(ctx context.Context, job *queue.Job) (any, error) {
	var payload models.JobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable payload: %v", services.ErrInvalidArgument, err)
	}

	switch job.Type {
	case models.JobTypeDeposit, models.JobTypeWithdraw, models.JobTypeTransfer:
		return p.handleMutation(ctx, job, payload)
	case models.JobTypeExport:
		if payload.FromWalletID == nil {
			return nil, fmt.Errorf("%w: export needs a wallet reference", services.ErrInvalidArgument)
		}
		path, err := p.exporter.Export(ctx, *payload.FromWalletID)
		if err != nil {
			return nil, err
		}
		return map[string]string{"file_path": path}, nil
	default:
		return nil, fmt.Errorf("%w: unknown job type %q", services.ErrInvalidArgument, job.Type)
	}
}

func (p *TransferProcessor) handleMutation(ctx context.Context, job *queue.Job, payload models.JobPayload) (any, error) {
	txn, err := p.dispatch(ctx, job.Type, payload)
	if err != nil {
		p.recordFailure(ctx, job, payload, err)
		return nil, err
	}

	p.publishTransaction(ctx, txn)
	return txn, nil
}

func (p *TransferProcessor) dispatch(ctx context.Context, jobType string, payload models.JobPayload) (*models.TransactionDB, error) {
	switch jobType {
	case models.JobTypeDeposit:
		if payload.ToWalletID == nil {
			return nil, fmt.Errorf("%w: deposit needs a destination wallet", services.ErrInvalidArgument)
		}
		return p.ledger.Deposit(ctx, *payload.ToWalletID, payload.Amount, payload.IdempotencyToken)
	case models.JobTypeWithdraw:
		if payload.FromWalletID == nil {
			return nil, fmt.Errorf("%w: withdrawal needs a source wallet", services.ErrInvalidArgument)
		}
		return p.ledger.Withdraw(ctx, *payload.FromWalletID, payload.Amount, payload.IdempotencyToken)
	default:
		if payload.FromWalletID == nil || payload.ToWalletID == nil {
			return nil, fmt.Errorf("%w: transfer needs both wallets", services.ErrInvalidArgument)
		}
		return p.ledger.Transfer(ctx, *payload.FromWalletID, *payload.ToWalletID, payload.Amount, payload.IdempotencyToken)
	}
}

// recordFailure upserts the FAILED row for this attempt. The upsert never
// displaces a SUCCESS row, so a retry racing a completed attempt degrades
// to a no-op instead of a constraint violation. Amounts that violate the
// data model are never persisted; the job's failure reason is the only
// record of such attempts.
func (p *TransferProcessor) recordFailure(ctx context.Context, job *queue.Job, payload models.JobPayload, cause error) {
	if !payload.Amount.IsPositive() || !payload.Amount.Equal(payload.Amount.Round(2)) {
		logger.Log.Warnw("invalid amount, failure row skipped",
			"job_id", job.ID, "token", payload.IdempotencyToken, "amount", payload.Amount)
		return
	}

	reason := cause.Error()
	_, written, err := p.txns.Record(ctx, &models.TransactionDB{
		TransactionID:    uuid.New(),
		FromWalletID:     payload.FromWalletID,
		ToWalletID:       payload.ToWalletID,
		Amount:           payload.Amount,
		Type:             transactionType(job.Type),
		Status:           models.TransactionStatusFailed,
		IdempotencyToken: payload.IdempotencyToken,
		FailureReason:    &reason,
	})
	if err != nil {
		logger.Log.Errorw("failed to record failed transaction",
			"job_id", job.ID, "token", payload.IdempotencyToken, "error", err)
		return
	}
	if !written {
		logger.Log.Warnw("transaction already succeeded, failure not recorded",
			"job_id", job.ID, "token", payload.IdempotencyToken)
	}
}

func transactionType(jobType string) string {
	switch jobType {
	case models.JobTypeDeposit:
		return models.TransactionTypeDeposit
	case models.JobTypeWithdraw:
		return models.TransactionTypeWithdrawal
	default:
		return models.TransactionTypeTransfer
	}
}

// publishTransaction publishes a committed transaction to Kafka.
func (p *TransferProcessor) publishTransaction(ctx context.Context, txn *models.TransactionDB) {
	if p.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	data, err := json.Marshal(txn)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.IdempotencyToken),
		Value: data,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", txn.TransactionID, "amount", txn.Amount)
	}
}
