package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction statuses
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// Transaction types
const (
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
)

// TransactionDB represents a ledger transaction row in the database.
// Exactly one of FromWalletID/ToWalletID is set for deposits and
// withdrawals; both are set for transfers. The idempotency token is
// unique across all rows: a token maps to at most one transaction.
type TransactionDB struct {
	TransactionID    uuid.UUID       `json:"transaction_id" db:"transaction_id"` // System-generated identifier
	FromWalletID     *uuid.UUID      `json:"from_wallet_id" db:"from_wallet_id"` // Source wallet, nil for deposits
	ToWalletID       *uuid.UUID      `json:"to_wallet_id" db:"to_wallet_id"`     // Destination wallet, nil for withdrawals
	Amount           decimal.Decimal `json:"amount" db:"amount"`                 // Positive amount, 2 fractional digits
	Type             string          `json:"type" db:"type"`                     // DEPOSIT, WITHDRAWAL or TRANSFER
	Status           string          `json:"status" db:"status"`                 // PENDING, SUCCESS or FAILED
	IdempotencyToken string          `json:"idempotency_token" db:"idempotency_token"`
	FailureReason    *string         `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}
