// Package http exposes the operational outbox endpoints (spec.md §6): kept
// alongside the push-based drainer so a pull-based dispatcher variant
// remains possible. Network-restricted in deployment, not exposed publicly.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/shared/backoff"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultUnsentMax = 100

type Handlers struct {
	repo    outbox.Repository
	backoff backoff.Strategy
}

func NewHandlers(repo outbox.Repository, strategy backoff.Strategy) *Handlers {
	return &Handlers{repo: repo, backoff: strategy}
}

func (h *Handlers) Mount(router chi.Router) {
	router.Get("/api/outbox/unsent", h.unsent)
	router.Post("/api/outbox/mark-sent/{id}", h.markSent)
	router.Post("/api/outbox/increment-retry/{id}", h.incrementRetry)
}

func (h *Handlers) unsent(w http.ResponseWriter, r *http.Request) {
	max := defaultUnsentMax
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, apperr.NewValidationError("max must be a positive integer"))
			return
		}
		max = parsed
	}

	events, err := h.repo.FindPending(r.Context(), max)
	if err != nil {
		writeError(w, apperr.NewInternalError("failed to fetch unsent events", err))
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *Handlers) markSent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewValidationError("id must be a valid uuid"))
		return
	}

	if err := h.repo.MarkPublished(r.Context(), id.String()); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) incrementRetry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewValidationError("id must be a valid uuid"))
		return
	}

	var body struct {
		ErrorDetails string `json:"errorDetails"`
		RetryCount   int    `json:"retryCount"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	nextRetryAt := time.Now().UTC().Add(h.backoff.Backoff(body.RetryCount))
	if err := h.repo.MarkFailed(r.Context(), id.String(), body.ErrorDetails, nextRetryAt); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindCancelled:
		status = 499
	case apperr.KindTransient:
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
