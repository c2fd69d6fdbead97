package outbox

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
)

// Publisher is the EventBus adapter used by the C3 drainer. Unlike the
// upstream reference implementation it is based on (which attempts the
// publish first and only checks the retry cap on failure, wasting one
// last delivery attempt and one broker round-trip against an event
// already known to be exhausted), Publisher pre-checks retryCount
// against maxRetries before ever touching the transport: an event at
// its cap is routed straight to the dead-letter topic.
type Publisher struct {
	queue       infrastructure.Queue
	queueCfg    config.QueueConfig
	deadLetter  string
	metrics     infrastructure.Metrics
	logger      infrastructure.Logger
}

func NewPublisher(queue infrastructure.Queue, queueCfg config.QueueConfig, deadLetterTopic string, metrics infrastructure.Metrics, logger infrastructure.Logger) *Publisher {
	return &Publisher{
		queue:      queue,
		queueCfg:   queueCfg,
		deadLetter: deadLetterTopic,
		metrics:    metrics,
		logger:     logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) (published bool, deadLettered bool, err error) {
	if event.IsRetryExhausted() {
		envelope := domain.NewDeadLetterEnvelope(event)
		if pubErr := p.queue.Publish(ctx, p.queueCfg.ExchangeName, p.deadLetter, envelope); pubErr != nil {
			p.metrics.RecordOutboxEvent(ctx, false, string(event.EventType))

			return false, false, fmt.Errorf("failed to route exhausted event to dead-letter topic: %w", pubErr)
		}

		p.metrics.RecordOutboxEvent(ctx, false, string(event.EventType))
		p.logger.Warn().
			Str("event_id", event.ID.String()).
			Int("retry_count", event.RetryCount).
			Msg("event retries exhausted, routed to dead-letter topic")

		return false, true, nil
	}

	routingKey := string(event.EventType)
	if err := p.queue.Publish(ctx, p.queueCfg.ExchangeName, routingKey, event.Payload); err != nil {
		p.metrics.RecordOutboxEvent(ctx, false, string(event.EventType))

		return false, false, err
	}

	p.metrics.RecordOutboxEvent(ctx, true, string(event.EventType))
	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.EventType)).
		Msg("successfully published outbox event")

	return true, false, nil
}
