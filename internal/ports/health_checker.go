package ports

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/domain"
)

// HealthChecker reports process-level liveness/readiness, pinging the
// storage, cache, and queue dependencies a service was wired with.
type HealthChecker interface {
	CheckReadiness(ctx context.Context) *domain.ReadinessResult
	CheckLiveness(ctx context.Context) *domain.LivenessResult
	CheckHealth(ctx context.Context) *domain.HealthResult
}
