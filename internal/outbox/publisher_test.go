package outbox

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQueue embeds infrastructure.Queue by value so the zero-value fake
// satisfies the interface (its unexported option types make writing a full
// explicit implementation in an external test package impossible); only
// Publish is overridden here.
type fakeQueue struct {
	infrastructure.Queue

	publishErr error
	exchange   string
	routingKey string
	payload    any
	calls      int
}

func (f *fakeQueue) Publish(_ context.Context, exchange, routingKey string, payload any) error {
	f.calls++
	f.exchange = exchange
	f.routingKey = routingKey
	f.payload = payload

	return f.publishErr
}

func testLogger() infrastructure.Logger {
	return infrastructure.Logger{Logger: zerolog.New(io.Discard)}
}

func testQueueCfg() config.QueueConfig {
	return config.QueueConfig{ExchangeName: "commerce", DeadLetterTopic: "dead-letter"}
}

func TestPublisher_Publish_Success(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	p := NewPublisher(q, testQueueCfg(), "dead-letter", &infrastructure.NoOpMetrics{}, testLogger())

	event := &domain.OutboxEvent{
		ID:         uuid.New(),
		EventType:  domain.EventOrderCreated,
		RetryCount: 0,
		MaxRetries: 5,
		Payload:    map[string]any{"id": "abc"},
	}

	published, deadLettered, err := p.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.True(t, published)
	assert.False(t, deadLettered)
	assert.Equal(t, "commerce", q.exchange)
	assert.Equal(t, string(domain.EventOrderCreated), q.routingKey)
	assert.Equal(t, event.Payload, q.payload)
}

func TestPublisher_Publish_TransientFailure(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{publishErr: errors.New("broker unreachable")}
	p := NewPublisher(q, testQueueCfg(), "dead-letter", &infrastructure.NoOpMetrics{}, testLogger())

	event := &domain.OutboxEvent{
		ID:         uuid.New(),
		EventType:  domain.EventOrderCreated,
		RetryCount: 1,
		MaxRetries: 5,
		Payload:    map[string]any{"id": "abc"},
	}

	published, deadLettered, err := p.Publish(context.Background(), event)

	require.Error(t, err)
	assert.False(t, published)
	assert.False(t, deadLettered)
}

// TestPublisher_Publish_RoutesDeadLetterEnvelope is the regression test for
// the bug where an exhausted event's bare payload was forwarded to the
// dead-letter topic instead of the wrapping envelope.
func TestPublisher_Publish_RoutesDeadLetterEnvelope(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	p := NewPublisher(q, testQueueCfg(), "dead-letter", &infrastructure.NoOpMetrics{}, testLogger())

	eventID := uuid.New()
	createdAt := time.Now().UTC()
	event := &domain.OutboxEvent{
		ID:         eventID,
		EventType:  domain.EventOrderCreated,
		RetryCount: 5,
		MaxRetries: 5,
		Payload:    map[string]any{"id": "abc"},
		CreatedAt:  createdAt,
	}

	published, deadLettered, err := p.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.False(t, published)
	assert.True(t, deadLettered)
	assert.Equal(t, "dead-letter", q.routingKey)

	envelope, ok := q.payload.(domain.DeadLetterEnvelope)
	require.True(t, ok, "payload routed to the dead-letter topic must be a DeadLetterEnvelope, got %T", q.payload)
	assert.Equal(t, eventID, envelope.ID)
	assert.Equal(t, event.Payload, envelope.Payload)
	assert.Equal(t, 5, envelope.RetryCount)
	assert.Equal(t, "MaxRetriesExceeded", envelope.Reason)
}

func TestPublisher_Publish_DeadLetterTransportFailure(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{publishErr: errors.New("dead-letter exchange unavailable")}
	p := NewPublisher(q, testQueueCfg(), "dead-letter", &infrastructure.NoOpMetrics{}, testLogger())

	event := &domain.OutboxEvent{
		ID:         uuid.New(),
		EventType:  domain.EventOrderCreated,
		RetryCount: 5,
		MaxRetries: 5,
		Payload:    map[string]any{"id": "abc"},
	}

	published, deadLettered, err := p.Publish(context.Background(), event)

	require.Error(t, err)
	assert.False(t, published)
	assert.False(t, deadLettered)
}
