package infrastructure

import (
	"context"
	"net/http"
	"time"
)

type (
	// NoOp is a single-method decorator.MetricsClient used by usecases
	// decorators, distinct from the richer NoOpMetrics below.
	NoOp struct{}

	NoOpMetrics struct{}
)

func (NoOp) Inc(_ string, _ int) {
}

func (n *NoOpMetrics) RecordHTTPRequest(_ context.Context, _, _ string, _ int, _ time.Duration) {
}

func (n *NoOpMetrics) RecordOutboxEvent(_ context.Context, _ bool, _ string) {
}

func (n *NoOpMetrics) RecordConsumedEvent(_ context.Context, _ bool, _ string) {
}

func (n *NoOpMetrics) RecordScanCycle(_ context.Context, _ int) {
}

func (n *NoOpMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (n *NoOpMetrics) Shutdown(_ context.Context) error {
	return nil
}
