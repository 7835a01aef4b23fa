package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

// DepositSubmitter defines the interface that the service must implement.
type DepositSubmitter interface {
	SubmitDeposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (string, error)
}

// DepositRequest represents the JSON body for depositing funds
// swagger:model DepositRequest
type DepositRequest struct {
	// Amount to deposit, at most 2 fractional digits
	// required: true
	// default: 100.50
	Amount decimal.Decimal `json:"amount"`

	// Client-supplied idempotency token; derived automatically when omitted
	IdempotencyToken string `json:"idempotency_token,omitempty"`
}

// SubmitResponse acknowledges an accepted asynchronous operation
// swagger:model SubmitResponse
type SubmitResponse struct {
	// Identifier to poll for the outcome
	JobID string `json:"job_id"`

	// Acknowledgment message
	// default: queued
	Message string `json:"message"`
}

// SubmitErrorResponse represents an error response for submission endpoints
// swagger:model SubmitErrorResponse
type SubmitErrorResponse struct {
	// Error message
	// default: Invalid amount
	Error string `json:"error"`
}

// NewDepositHandler returns an HTTP handler queueing a deposit.
// @Summary Deposit funds
// @Description Queues a deposit into the wallet and returns a job ID immediately. Poll the job for the outcome.
// @Tags transactions
// @Accept json
// @Produce json
// @Param walletId path string true "Wallet ID"
// @Param request body handlers.DepositRequest true "Deposit Request"
// @Success 202 {object} handlers.SubmitResponse "Deposit queued"
// @Failure 400 {object} handlers.SubmitErrorResponse "Invalid amount"
// @Failure 409 {object} handlers.SubmitErrorResponse "Duplicate idempotency token"
// @Router /wallets/{walletId}/deposit [post]
// @Security BearerAuth
func NewDepositHandler(svc DepositSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := uuid.Parse(chi.URLParam(r, "walletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		var req DepositRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid request body"})
			return
		}

		token := req.IdempotencyToken
		if token == "" {
			token = deriveToken("deposit", req.Amount, walletID)
		}

		jobID, err := svc.SubmitDeposit(r.Context(), walletID, req.Amount, token)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitResponse{JobID: jobID, Message: "queued"})
	}
}

// writeSubmitError maps submission errors onto HTTP statuses.
func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidArgument):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid amount"})
	case errors.Is(err, services.ErrSameWallet):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Source and destination wallets must differ"})
	case errors.Is(err, services.ErrWalletNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Wallet not found"})
	case errors.Is(err, services.ErrDuplicateToken):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Duplicate idempotency token"})
	default:
		logger.Log.Errorw("submission failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Internal server error"})
	}
}
