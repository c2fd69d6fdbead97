package adapters

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/ports"
)

type (
	storagePinger interface {
		Ping() error
	}

	cachePinger interface {
		Ping(ctx context.Context) error
	}

	queuePinger interface {
		IsConnected() bool
	}
)

// HealthChecker pings each wired dependency directly rather than asking the
// domain services to do it, so liveness/readiness stay cheap and cannot be
// skewed by application-level locking or retries.
type HealthChecker struct {
	startTime time.Time
	storage   storagePinger
	cache     cachePinger
	queue     queuePinger
}

// NewHealthChecker creates a new health checker instance. storage/cache/queue
// may be nil for a process that was never wired with that dependency (e.g. a
// worker without an HTTP cache lookup), in which case the check is skipped
// and reported healthy.
func NewHealthChecker(storage storagePinger, cache cachePinger, queue queuePinger) ports.HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		storage:   storage,
		cache:     cache,
		queue:     queue,
	}
}

func (h *HealthChecker) CheckReadiness(ctx context.Context) *domain.ReadinessResult {
	storageStatus := h.checkStorageHealth(ctx)
	cacheStatus := h.checkCacheHealth(ctx)
	queueStatus := h.checkQueueHealth(ctx)

	overallStatus := domain.ReadinessResponseStatusReady
	if storageStatus.Status == domain.DependencyCheckStatusUnhealthy {
		overallStatus = domain.ReadinessResponseStatusNotReady
	}

	return &domain.ReadinessResult{
		OverallStatus: overallStatus,
		Storage:       storageStatus,
		Cache:         cacheStatus,
		Queue:         queueStatus,
	}
}

func (h *HealthChecker) CheckLiveness(ctx context.Context) *domain.LivenessResult {
	storageStatus := h.checkStorageHealth(ctx)
	cacheStatus := h.checkCacheHealth(ctx)
	queueStatus := h.checkQueueHealth(ctx)

	overallStatus := domain.LivenessResponseStatusAlive
	if storageStatus.Status == domain.DependencyCheckStatusUnhealthy {
		overallStatus = domain.LivenessResponseStatusDead
	}

	return &domain.LivenessResult{
		OverallStatus: overallStatus,
		Storage:       storageStatus,
		Cache:         cacheStatus,
		Queue:         queueStatus,
	}
}

func (h *HealthChecker) CheckHealth(ctx context.Context) *domain.HealthResult {
	storageStatus := h.checkStorageHealth(ctx)
	cacheStatus := h.checkCacheHealth(ctx)
	queueStatus := h.checkQueueHealth(ctx)

	overallStatus := h.calculateOverallHealthStatus(storageStatus, cacheStatus, queueStatus)

	return &domain.HealthResult{
		OverallStatus: overallStatus,
		Storage:       storageStatus,
		Cache:         cacheStatus,
		Queue:         queueStatus,
		Uptime:        float32(time.Since(h.startTime).Seconds()),
	}
}

func (h *HealthChecker) calculateOverallHealthStatus(storage, cache, queue domain.DependencyStatus) domain.HealthResponseStatus {
	if storage.Status == domain.DependencyCheckStatusUnhealthy {
		return domain.HealthResponseStatusUnhealthy
	}

	unhealthyCount := 0
	if cache.Status == domain.DependencyCheckStatusUnhealthy {
		unhealthyCount++
	}
	if queue.Status == domain.DependencyCheckStatusUnhealthy {
		unhealthyCount++
	}

	if unhealthyCount >= 2 {
		return domain.HealthResponseStatusDegraded
	}

	return domain.HealthResponseStatusHealthy
}

func (h *HealthChecker) checkStorageHealth(ctx context.Context) domain.DependencyStatus {
	if h.storage == nil {
		return domain.DependencyStatus{Status: domain.DependencyCheckStatusHealthy, LastChecked: time.Now()}
	}

	start := time.Now()
	err := h.storage.Ping()
	status := domain.DependencyCheckStatusHealthy
	errMsg := ""
	if err != nil {
		status = domain.DependencyCheckStatusUnhealthy
		errMsg = err.Error()
	}

	return domain.DependencyStatus{
		Status:       status,
		ResponseTime: float32(time.Since(start).Milliseconds()),
		LastChecked:  time.Now(),
		Error:        errMsg,
	}
}

func (h *HealthChecker) checkCacheHealth(ctx context.Context) domain.DependencyStatus {
	if h.cache == nil {
		return domain.DependencyStatus{Status: domain.DependencyCheckStatusHealthy, LastChecked: time.Now()}
	}

	start := time.Now()
	err := h.cache.Ping(ctx)
	status := domain.DependencyCheckStatusHealthy
	errMsg := ""
	if err != nil {
		status = domain.DependencyCheckStatusUnhealthy
		errMsg = err.Error()
	}

	return domain.DependencyStatus{
		Status:       status,
		ResponseTime: float32(time.Since(start).Milliseconds()),
		LastChecked:  time.Now(),
		Error:        errMsg,
	}
}

func (h *HealthChecker) checkQueueHealth(ctx context.Context) domain.DependencyStatus {
	if h.queue == nil {
		return domain.DependencyStatus{Status: domain.DependencyCheckStatusHealthy, LastChecked: time.Now()}
	}

	start := time.Now()
	status := domain.DependencyCheckStatusHealthy
	errMsg := ""
	if !h.queue.IsConnected() {
		status = domain.DependencyCheckStatusUnhealthy
		errMsg = "not connected"
	}

	return domain.DependencyStatus{
		Status:       status,
		ResponseTime: float32(time.Since(start).Milliseconds()),
		LastChecked:  time.Now(),
		Error:        errMsg,
	}
}
