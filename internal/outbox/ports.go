package outbox

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/jmoiron/sqlx"
)

type (
	// Repository persists outbox rows for one service's schema (C1/C3).
	Repository interface {
		// SaveInTx writes a new outbox row in the same transaction as the
		// domain-state change it describes.
		SaveInTx(ctx context.Context, tx *sqlx.Tx, event *domain.OutboxEvent) error

		// FindPending finds never-attempted events ordered by age.
		FindPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)

		// FindRetryable finds failed events whose backoff window has elapsed.
		FindRetryable(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)

		// ClaimForProcessing atomically locks an event for this worker,
		// per §9's locked_until/locked_by pessimistic-lock scheme.
		ClaimForProcessing(ctx context.Context, eventID string, lockedBy string, lockDuration time.Duration) (*domain.OutboxEvent, error)

		// MarkPublished marks an event as successfully delivered.
		MarkPublished(ctx context.Context, eventID string) error

		// MarkFailed records a failed publish attempt and schedules a retry.
		MarkFailed(ctx context.Context, eventID string, errorDetails string, nextRetryAt time.Time) error

		// MarkDeadLettered marks an event as permanently failed; the
		// publisher has already routed it to the dead-letter topic.
		MarkDeadLettered(ctx context.Context, eventID string, errorDetails string) error
	}

	// EventBus publishes a claimed outbox event to the transport, routing
	// to the dead-letter topic instead when retries are exhausted (C2).
	EventBus interface {
		Publish(ctx context.Context, event *domain.OutboxEvent) (published bool, deadLettered bool, err error)
	}
)
