package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferSubmitter defines the interface that the service must implement.
type TransferSubmitter interface {
	SubmitTransfer(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal, token string) (string, error)
}

// TransferRequest represents the JSON body for transferring funds
// swagger:model TransferRequest
type TransferRequest struct {
	// Amount to transfer, at most 2 fractional digits
	// required: true
	// default: 30.00
	Amount decimal.Decimal `json:"amount"`

	// Client-supplied idempotency token; derived automatically when omitted
	IdempotencyToken string `json:"idempotency_token,omitempty"`
}

// NewTransferHandler returns an HTTP handler queueing a transfer between wallets.
// @Summary Transfer funds
// @Description Queues a transfer between two wallets and returns a job ID immediately. The debit and credit commit atomically when the job runs.
// @Tags transactions
// @Accept json
// @Produce json
// @Param fromWalletId path string true "Source wallet ID"
// @Param toWalletId path string true "Destination wallet ID"
// @Param request body handlers.TransferRequest true "Transfer Request"
// @Success 202 {object} handlers.SubmitResponse "Transfer queued"
// @Failure 400 {object} handlers.SubmitErrorResponse "Invalid amount or same wallet"
// @Failure 409 {object} handlers.SubmitErrorResponse "Duplicate idempotency token"
// @Router /wallets/{fromWalletId}/transfer/{toWalletId} [post]
// @Security BearerAuth
func NewTransferHandler(svc TransferSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID, err := uuid.Parse(chi.URLParam(r, "fromWalletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}
		toID, err := uuid.Parse(chi.URLParam(r, "toWalletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid request body"})
			return
		}

		token := req.IdempotencyToken
		if token == "" {
			token = deriveToken("txn", req.Amount, fromID, toID)
		}

		jobID, err := svc.SubmitTransfer(r.Context(), fromID, toID, req.Amount, token)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitResponse{JobID: jobID, Message: "queued"})
	}
}
