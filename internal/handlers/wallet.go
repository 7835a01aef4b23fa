package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

// WalletTokener defines only the token methods needed by wallet handlers.
type WalletTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// WalletManager defines the interface that the wallet service must implement.
type WalletManager interface {
	CreateWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error)
}

// WalletResponse represents a wallet in API responses
// swagger:model WalletResponse
type WalletResponse struct {
	// Wallet identifier
	WalletID uuid.UUID `json:"wallet_id"`

	// Owner identifier
	UserID uuid.UUID `json:"user_id"`

	// Current balance with 2 fractional digits
	// default: 100.00
	Balance string `json:"balance"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// WalletErrorResponse represents an error response for wallet endpoints
// swagger:model WalletErrorResponse
type WalletErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

func newWalletResponse(wallet *models.WalletDB) WalletResponse {
	return WalletResponse{
		WalletID:  wallet.WalletID,
		UserID:    wallet.UserID,
		Balance:   wallet.Balance.StringFixed(2),
		CreatedAt: wallet.CreatedAt,
	}
}

// NewCreateWalletHandler returns an HTTP handler creating a wallet for the
// authenticated user.
// @Summary Create wallet
// @Description Creates an empty wallet owned by the authenticated user.
// @Tags wallet
// @Produce json
// @Success 201 {object} handlers.WalletResponse "Wallet created"
// @Failure 401 {object} handlers.WalletErrorResponse "Unauthorized"
// @Router /wallets [post]
// @Security BearerAuth
func NewCreateWalletHandler(svc WalletManager, tokenGetter WalletTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Unauthorized"})
			return
		}
		userID, err := tokenGetter.GetUserID(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Unauthorized"})
			return
		}

		wallet, err := svc.CreateWallet(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to create wallet", "user_id", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newWalletResponse(wallet))
	}
}

// NewGetWalletHandler returns an HTTP handler reading a wallet by ID.
// @Summary Get wallet
// @Description Returns the wallet and its current balance. Reads through the cache.
// @Tags wallet
// @Produce json
// @Param walletId path string true "Wallet ID"
// @Success 200 {object} handlers.WalletResponse "Wallet"
// @Failure 404 {object} handlers.WalletErrorResponse "Wallet not found"
// @Router /wallets/{walletId} [get]
// @Security BearerAuth
func NewGetWalletHandler(svc WalletManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := uuid.Parse(chi.URLParam(r, "walletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		wallet, err := svc.GetWallet(r.Context(), walletID)
		if err != nil {
			if errors.Is(err, services.ErrWalletNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Wallet not found"})
				return
			}
			logger.Log.Errorw("failed to get wallet", "wallet_id", walletID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WalletErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newWalletResponse(wallet))
	}
}

// deriveToken builds a deterministic fallback idempotency token for clients
// that do not supply one: identical submissions inside a 10 second window
// collapse onto the same token.
func deriveToken(op string, amount decimal.Decimal, ids ...uuid.UUID) string {
	token := op
	for _, id := range ids {
		token += "_" + id.String()[:8]
	}
	return fmt.Sprintf("%s_%s_%d", token, amount.StringFixed(2), time.Now().Unix()/10)
}
