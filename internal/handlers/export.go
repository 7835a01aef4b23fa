package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ExportSubmitter defines the interface that the service must implement.
type ExportSubmitter interface {
	SubmitExport(ctx context.Context, walletID uuid.UUID) (string, error)
}

// NewExportHandler returns an HTTP handler queueing a transaction export.
// @Summary Export wallet transactions
// @Description Queues a CSV export of the wallet's full transaction history. The job result carries the file path.
// @Tags transactions
// @Produce json
// @Param walletId path string true "Wallet ID"
// @Success 202 {object} handlers.SubmitResponse "Export queued"
// @Failure 404 {object} handlers.SubmitErrorResponse "Wallet not found"
// @Router /wallets/{walletId}/export [post]
// @Security BearerAuth
func NewExportHandler(svc ExportSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := uuid.Parse(chi.URLParam(r, "walletId"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		jobID, err := svc.SubmitExport(r.Context(), walletID)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(SubmitResponse{JobID: jobID, Message: "queued"})
	}
}
