package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job types understood by the transfer processor
const (
	JobTypeDeposit  = "deposit"
	JobTypeWithdraw = "withdraw"
	JobTypeTransfer = "transfer"
	JobTypeExport   = "export"
)

// JobPayload is the JSON body carried by a queued job. Which fields are
// set depends on the job type: deposits use ToWalletID, withdrawals use
// FromWalletID, transfers use both, exports use only FromWalletID.
type JobPayload struct {
	FromWalletID     *uuid.UUID      `json:"from_wallet_id,omitempty"`
	ToWalletID       *uuid.UUID      `json:"to_wallet_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	IdempotencyToken string          `json:"idempotency_token"`
}
