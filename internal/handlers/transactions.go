package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	ListTransactions(ctx context.Context, walletID uuid.UUID, page, limit int) ([]models.TransactionDB, int, error)
}

// TransactionListResponse represents a page of a wallet's transactions
// swagger:model TransactionListResponse
type TransactionListResponse struct {
	// Transactions in this page, newest first
	Records []models.TransactionDB `json:"records"`

	// Total number of transactions for the wallet
	Total int `json:"total"`

	// Requested page
	Page int `json:"page"`

	// Requested page size
	Limit int `json:"limit"`
}

// NewListTransactionsHandler returns an HTTP handler listing a wallet's transactions.
// @Summary List wallet transactions
// @Description Returns a page of the wallet's ledger history, newest first.
// @Tags transactions
// @Produce json
// @Param walletId path string true "Wallet ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} handlers.TransactionListResponse "Transaction page"
// @Failure 400 {object} handlers.SubmitErrorResponse "Invalid wallet ID"
// @Router /wallets/{walletId}/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := uuid.Parse(chi.URLParam(r, "walletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		records, total, err := svc.ListTransactions(r.Context(), walletID, page, limit)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "wallet_id", walletID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Internal server error"})
			return
		}
		if records == nil {
			records = []models.TransactionDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransactionListResponse{
			Records: records,
			Total:   total,
			Page:    page,
			Limit:   limit,
		})
	}
}
