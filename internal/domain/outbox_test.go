package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxEvent_IsRetryExhausted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		retryCount int
		maxRetries int
		want       bool
	}{
		{"below cap", 1, 5, false},
		{"at cap", 5, 5, true},
		{"past cap", 6, 5, true},
		{"zero cap, first attempt", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			event := &OutboxEvent{RetryCount: tc.retryCount, MaxRetries: tc.maxRetries}
			assert.Equal(t, tc.want, event.IsRetryExhausted())
		})
	}
}

func TestOutboxEvent_MarkFailed_IncrementsRetryCount(t *testing.T) {
	t.Parallel()

	event := &OutboxEvent{Status: OutboxStatusProcessing, RetryCount: 1}
	now := time.Now().UTC()
	nextRetry := now.Add(time.Minute)

	event.MarkFailed(now, "broker unreachable", nextRetry)

	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.Equal(t, 2, event.RetryCount)
	require.NotNil(t, event.ErrorDetails)
	assert.Equal(t, "broker unreachable", *event.ErrorDetails)
	require.NotNil(t, event.NextRetryAt)
	assert.WithinDuration(t, nextRetry, *event.NextRetryAt, 0)
	assert.Nil(t, event.LockedUntil)
	assert.Nil(t, event.LockedBy)
}

func TestNewDeadLetterEnvelope(t *testing.T) {
	t.Parallel()

	eventID := uuid.New()
	createdAt := time.Now().UTC().Add(-time.Hour)
	payload := map[string]any{"id": "abc"}

	event := &OutboxEvent{
		ID:         eventID,
		EventType:  EventOrderCreated,
		RetryCount: 5,
		MaxRetries: 5,
		Payload:    payload,
		CreatedAt:  createdAt,
	}

	envelope := NewDeadLetterEnvelope(event)

	assert.Equal(t, eventID, envelope.ID)
	assert.Equal(t, EventOrderCreated, envelope.EventType)
	assert.Equal(t, payload, envelope.Payload)
	assert.Equal(t, 5, envelope.RetryCount)
	assert.Equal(t, createdAt, envelope.OccurredAt)
	assert.Equal(t, "MaxRetriesExceeded", envelope.Reason)
}
