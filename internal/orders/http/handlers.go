// Package http exposes the Orders command surface (spec.md §6).
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/commands"
	"github.com/architeacher/svc-web-analyzer/internal/orders/queries"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handlers struct {
	app *orders.Application
}

func NewHandlers(app *orders.Application) *Handlers {
	return &Handlers{app: app}
}

func (h *Handlers) Mount(router chi.Router) {
	router.Post("/api/orders", h.createOrder)
	router.Get("/api/orders/{id}", h.getOrder)
	router.Patch("/api/orders/{id}/status", h.updateOrderStatus)
}

type createOrderRequest struct {
	UserID   uuid.UUID `json:"userId"`
	Product  string    `json:"product"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewValidationError("malformed request body"))
		return
	}

	order, err := h.app.Commands.CreateOrderHandler.Handle(r.Context(), commands.CreateOrderCommand{
		UserID:   req.UserID,
		Product:  req.Product,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewNotFoundError("order not found"))
		return
	}

	order, err := h.app.Queries.GetOrderQueryHandler.Execute(r.Context(), queries.GetOrderQuery{OrderID: id})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (h *Handlers) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.NewNotFoundError("order not found"))
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewValidationError("malformed request body"))
		return
	}

	_, err = h.app.Commands.UpdateOrderStatusHandler.Handle(r.Context(), commands.UpdateOrderStatusCommand{
		OrderID: id,
		Status:  req.Status,
		Reason:  req.Reason,
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
