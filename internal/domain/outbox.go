package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	OutboxStatus    string
	OutboxEventType string
	AggregateType   string
)

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusPublished  OutboxStatus = "published"
	OutboxStatusFailed     OutboxStatus = "failed"
)

const (
	AggregateTypeUser  AggregateType = "user"
	AggregateTypeOrder AggregateType = "order"
)

const (
	EventUserCreated        OutboxEventType = "users.created"
	EventUserStatusChanged  OutboxEventType = "users.status-changed"
	EventOrderCreated       OutboxEventType = "orders.created"
	EventOrderStatusChanged OutboxEventType = "orders.status-changed"
	EventOrderCancelled     OutboxEventType = "orders.cancelled"
)

// OutboxEvent is the durable record written in the same transaction as the
// domain-state change it describes (C1). A drainer (C3) later claims it,
// hands it to an EventBus publisher (C2), and marks it published or
// dead-lettered after exhausting retries.
type (
	OutboxEvent struct {
		ID            uuid.UUID       `json:"id"`
		AggregateID   uuid.UUID       `json:"aggregate_id"`
		AggregateType AggregateType   `json:"aggregate_type"`
		EventType     OutboxEventType `json:"event_type"`
		RetryCount    int             `json:"retry_count"`
		MaxRetries    int             `json:"max_retries"`
		Status        OutboxStatus    `json:"status"`
		Payload       any             `json:"payload"`
		ErrorDetails  *string         `json:"error_details,omitempty"`
		CreatedAt     time.Time       `json:"created_at"`
		StartedAt     *time.Time      `json:"started_at,omitempty"`
		PublishedAt   *time.Time      `json:"published_at,omitempty"`
		NextRetryAt   *time.Time      `json:"next_retry_at,omitempty"`
		LockedUntil   *time.Time      `json:"locked_until,omitempty"`
		LockedBy      *string         `json:"locked_by,omitempty"`
	}

	// UserStatusChangedPayload is published whenever a user transitions
	// between Active/Inactive (spec.md §4.4). EventID doubles as the
	// cross-service idempotency key C5's consumer dedups on.
	UserStatusChangedPayload struct {
		EventID    uuid.UUID `json:"eventId"`
		OccurredAt time.Time `json:"occurredAt"`
		UserID     uuid.UUID `json:"userId"`
		Email      string    `json:"email"`
		OldStatus  string    `json:"oldStatus"`
		NewStatus  string    `json:"newStatus"`
		Reason     string    `json:"reason,omitempty"`
	}

	// OrderStatusChangedPayload is published for every order lifecycle
	// transition, including system-driven ones (cancellation-on-inactive,
	// expiry) as well as explicit Update-Order-Status calls (spec.md §4.4,
	// §4.6, §4.7).
	OrderStatusChangedPayload struct {
		EventID    uuid.UUID `json:"eventId"`
		OccurredAt time.Time `json:"occurredAt"`
		OrderID    uuid.UUID `json:"orderId"`
		UserID     uuid.UUID `json:"userId"`
		OldStatus  string    `json:"oldStatus"`
		NewStatus  string    `json:"newStatus"`
		Reason     string    `json:"reason,omitempty"`
	}

	// DeadLetterEnvelope wraps an OutboxEvent whose retry count has reached
	// its cap before it is routed to the dead-letter topic (spec.md §6,
	// §9/S6).
	DeadLetterEnvelope struct {
		ID         uuid.UUID       `json:"id"`
		EventType  OutboxEventType `json:"eventType"`
		Payload    any             `json:"payload"`
		RetryCount int             `json:"retryCount"`
		OccurredAt time.Time       `json:"occurredAt"`
		Reason     string          `json:"reason"`
	}
)

// NewDeadLetterEnvelope builds the dead-letter envelope for an event that
// has exhausted its retry budget.
func NewDeadLetterEnvelope(e *OutboxEvent) DeadLetterEnvelope {
	return DeadLetterEnvelope{
		ID:         e.ID,
		EventType:  e.EventType,
		Payload:    e.Payload,
		RetryCount: e.RetryCount,
		OccurredAt: e.CreatedAt,
		Reason:     "MaxRetriesExceeded",
	}
}

func (e *OutboxEvent) IsRetryExhausted() bool {
	return e.RetryCount >= e.MaxRetries
}

func (e *OutboxEvent) MarkStarted(now time.Time) {
	e.Status = OutboxStatusProcessing
	e.StartedAt = &now
}

func (e *OutboxEvent) MarkPublished(now time.Time) {
	e.Status = OutboxStatusPublished
	e.PublishedAt = &now
	e.LockedUntil = nil
	e.LockedBy = nil
}

func (e *OutboxEvent) MarkFailed(now time.Time, errorDetails string, nextRetryAt time.Time) {
	e.Status = OutboxStatusPending
	e.RetryCount++
	e.ErrorDetails = &errorDetails
	e.NextRetryAt = &nextRetryAt
	e.LockedUntil = nil
	e.LockedBy = nil
}

func (e *OutboxEvent) MarkDeadLettered(now time.Time, errorDetails string) {
	e.Status = OutboxStatusFailed
	e.ErrorDetails = &errorDetails
	e.LockedUntil = nil
	e.LockedBy = nil
}
