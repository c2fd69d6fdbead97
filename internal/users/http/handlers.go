// Package http exposes the Users command surface (spec.md §6) as
// hand-written chi routes: request decode → command/query dispatch →
// status mapping, in place of the teacher's oapi-codegen-generated layer
// (see DESIGN.md for why generation has no source document here).
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/users"
	"github.com/architeacher/svc-web-analyzer/internal/users/commands"
	"github.com/architeacher/svc-web-analyzer/internal/users/queries"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handlers struct {
	app *users.Application
}

func NewHandlers(app *users.Application) *Handlers {
	return &Handlers{app: app}
}

func (h *Handlers) Mount(router chi.Router) {
	router.Post("/api/users", h.createUser)
	router.Get("/api/users/{id}", h.getUser)
	router.Patch("/api/users/{id}/status", h.changeUserStatus)
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewValidationError("malformed request body"))
		return
	}

	user, err := h.app.Commands.CreateUserHandler.Handle(r.Context(), commands.CreateUserCommand{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewNotFoundError("user not found"))
		return
	}

	user, err := h.app.Queries.GetUserQueryHandler.Execute(r.Context(), queries.GetUserQuery{UserID: id})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type changeUserStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (h *Handlers) changeUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewNotFoundError("user not found"))
		return
	}

	var req changeUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewValidationError("malformed request body"))
		return
	}

	_, err = h.app.Commands.ChangeUserStatusHandler.Handle(r.Context(), commands.ChangeUserStatusCommand{
		UserID: id,
		Status: req.Status,
		Reason: req.Reason,
	})
	if err != nil {
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

// writeError maps the apperr.Kind taxonomy to the status codes in
// spec.md §6's command-surface table. A context cancellation (the caller
// went away mid-request) always maps to 499, ahead of whatever Kind the
// handler chain happened to attach.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		writeJSON(w, 499, map[string]string{"error": "client closed request"})
		return
	}

	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindCancelled:
		status = 499
	case apperr.KindTransient:
		status = http.StatusServiceUnavailable
	case apperr.KindPermanent, apperr.KindInternal:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
