package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawSubmitter defines the interface that the service must implement.
type WithdrawSubmitter interface {
	SubmitWithdraw(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, token string) (string, error)
}

// WithdrawRequest represents the JSON body for withdrawing funds
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Amount to withdraw, at most 2 fractional digits
	// required: true
	// default: 50.00
	Amount decimal.Decimal `json:"amount"`

	// Client-supplied idempotency token; derived automatically when omitted
	IdempotencyToken string `json:"idempotency_token,omitempty"`
}

// NewWithdrawHandler returns an HTTP handler queueing a withdrawal.
// @Summary Withdraw funds
// @Description Queues a withdrawal from the wallet and returns a job ID immediately. An insufficient balance surfaces as a failed job.
// @Tags transactions
// @Accept json
// @Produce json
// @Param walletId path string true "Wallet ID"
// @Param request body handlers.WithdrawRequest true "Withdraw Request"
// @Success 202 {object} handlers.SubmitResponse "Withdrawal queued"
// @Failure 400 {object} handlers.SubmitErrorResponse "Invalid amount"
// @Failure 409 {object} handlers.SubmitErrorResponse "Duplicate idempotency token"
// @Router /wallets/{walletId}/withdraw [post]
// @Security BearerAuth
func NewWithdrawHandler(svc WithdrawSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := uuid.Parse(chi.URLParam(r, "walletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		var req WithdrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid request body"})
			return
		}

		token := req.IdempotencyToken
		if token == "" {
			token = deriveToken("wtd", req.Amount, walletID)
		}

		jobID, err := svc.SubmitWithdraw(r.Context(), walletID, req.Amount, token)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitResponse{JobID: jobID, Message: "queued"})
	}
}
