package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/queue"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/services"
)

// JobStatusGetter defines the interface that the service must implement.
type JobStatusGetter interface {
	GetJobStatus(ctx context.Context, jobID string) (*queue.JobView, error)
}

// JobStatusErrorResponse represents an error response for job status
// swagger:model JobStatusErrorResponse
type JobStatusErrorResponse struct {
	// Error message
	// default: Job not found
	Error string `json:"error"`
}

// NewJobStatusHandler returns an HTTP handler for polling job status.
// @Summary Get job status
// @Description Returns the state of a queued operation: waiting, delayed, active, completed or failed, plus the result or failure reason once terminal.
// @Tags jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} queue.JobView "Job view"
// @Failure 404 {object} handlers.JobStatusErrorResponse "Job not found"
// @Router /jobs/{jobId} [get]
// @Security BearerAuth
func NewJobStatusHandler(svc JobStatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobId")

		view, err := svc.GetJobStatus(r.Context(), jobID)
		if err != nil {
			if errors.Is(err, services.ErrJobNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(JobStatusErrorResponse{Error: "Job not found"})
				return
			}
			logger.Log.Errorw("failed to get job status", "job_id", jobID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(JobStatusErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(view)
	}
}
