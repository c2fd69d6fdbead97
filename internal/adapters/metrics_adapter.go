package adapters

import (
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
)

// MetricsAdapter implements the usecases-layer decorator.MetricsClient (a
// single Inc(name, value) call) as an in-process counter map; it does not
// forward to infrastructure.Metrics. It counts decorator invocations only;
// per-domain-event counters are recorded via infrastructure.Metrics by the
// outbox publisher only (the consumer and expiry scanner record none).
type MetricsAdapter struct {
	counts map[string]int
}

func NewMetricsAdapter() decorator.MetricsClient {
	return &MetricsAdapter{counts: make(map[string]int)}
}

func (m *MetricsAdapter) Inc(key string, value int) {
	m.counts[key] += value
}
