package adapters

import (
	"encoding/json"
	"net/http"

	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/ports"
	"github.com/go-chi/chi/v5"
)

// HealthHandlers exposes CheckLiveness/CheckReadiness/CheckHealth over the
// three conventional Kubernetes probe routes. Shared by every HTTP-serving
// cmd/ process rather than duplicated per service.
type HealthHandlers struct {
	checker ports.HealthChecker
}

func NewHealthHandlers(checker ports.HealthChecker) *HealthHandlers {
	return &HealthHandlers{checker: checker}
}

func (h *HealthHandlers) Mount(router chi.Router) {
	router.Get("/health/live", h.liveness)
	router.Get("/health/ready", h.readiness)
	router.Get("/health", h.health)
}

func (h *HealthHandlers) liveness(w http.ResponseWriter, r *http.Request) {
	result := h.checker.CheckLiveness(r.Context())

	status := http.StatusOK
	if result.OverallStatus == domain.LivenessResponseStatusDead {
		status = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, status, result)
}

func (h *HealthHandlers) readiness(w http.ResponseWriter, r *http.Request) {
	result := h.checker.CheckReadiness(r.Context())

	status := http.StatusOK
	if result.OverallStatus == domain.ReadinessResponseStatusNotReady {
		status = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, status, result)
}

func (h *HealthHandlers) health(w http.ResponseWriter, r *http.Request) {
	result := h.checker.CheckHealth(r.Context())

	status := http.StatusOK
	if result.OverallStatus == domain.HealthResponseStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, status, result)
}

func writeHealthJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
