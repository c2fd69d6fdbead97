package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/svc-web-analyzer/internal/adapters/repos"
	"github.com/architeacher/svc-web-analyzer/internal/domain"
	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// namespace is mixed into deterministic outbox-event ids so retried
// SaveInTx calls (e.g. a re-delivered command) are naturally idempotent.
var namespace = repos.OutboxNamespace

type (
	// PostgresRepository is an outbox.Repository over a single service's
	// outbox table, guarded by a locked_until/locked_by column
	// pair so multiple C3 drainer replicas never double-claim a row
	// (spec.md §9, locking option (a)).
	PostgresRepository struct {
		conn  *sqlx.DB
		table string
	}

	outboxEventRow struct {
		ID            string     `db:"id"`
		AggregateID   string     `db:"aggregate_id"`
		AggregateType string     `db:"aggregate_type"`
		EventType     string     `db:"event_type"`
		RetryCount    int        `db:"retry_count"`
		MaxRetries    int        `db:"max_retries"`
		Status        string     `db:"status"`
		Payload       []byte     `db:"payload"`
		ErrorDetails  *string    `db:"error_details"`
		CreatedAt     time.Time  `db:"created_at"`
		StartedAt     *time.Time `db:"started_at"`
		PublishedAt   *time.Time `db:"published_at"`
		NextRetryAt   *time.Time `db:"next_retry_at"`
		LockedUntil   *time.Time `db:"locked_until"`
		LockedBy      *string    `db:"locked_by"`
	}
)

// NewPostgresRepository builds a repository over "table", e.g.
// "users_outbox" in the users-service schema or "orders_outbox" in the
// orders-service one.
// Each service owns its own table in its own database per spec.md §1's
// per-service persistence boundary.
func NewPostgresRepository(db *sqlx.DB, table string) *PostgresRepository {
	return &PostgresRepository{conn: db, table: table}
}

func (r *PostgresRepository) SaveInTx(ctx context.Context, tx *sqlx.Tx, event *domain.OutboxEvent) error {
	if event.ID == uuid.Nil {
		eventName := fmt.Sprintf("%s::%s::%d", event.AggregateID.String(), event.EventType, event.CreatedAt.UnixNano())
		event.ID = uuid.NewSHA1(namespace, []byte(eventName))
	}

	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query, args, err := psql.Insert(r.table).
		Columns("id", "aggregate_id", "aggregate_type", "event_type",
			"retry_count", "max_retries", "status", "payload", "created_at").
		Values(event.ID, event.AggregateID, event.AggregateType, event.EventType,
			event.RetryCount, event.MaxRetries, event.Status, payloadJSON, event.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save outbox event: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	return r.findByCriteria(ctx, sq.And{
		sq.Eq{"status": string(domain.OutboxStatusPending)},
		sq.Eq{"next_retry_at": nil},
	}, []string{"created_at ASC"}, limit)
}

func (r *PostgresRepository) FindRetryable(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	return r.findByCriteria(ctx, sq.And{
		sq.Eq{"status": string(domain.OutboxStatusPending)},
		sq.NotEq{"next_retry_at": nil},
		sq.Expr("next_retry_at <= NOW()"),
	}, []string{"next_retry_at ASC"}, limit)
}

func (r *PostgresRepository) findByCriteria(ctx context.Context, criteria sq.Sqlizer, orderBy []string, limit int) ([]*domain.OutboxEvent, error) {
	query, args, err := psql.Select(
		"id", "aggregate_id", "aggregate_type", "event_type",
		"retry_count", "max_retries", "status", "payload", "error_details",
		"created_at", "started_at", "published_at", "next_retry_at", "locked_until", "locked_by",
	).
		From(r.table).
		Where(sq.And{criteria, sq.Or{sq.Eq{"locked_until": nil}, sq.Expr("locked_until <= NOW()")}}).
		OrderBy(orderBy...).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []outboxEventRow
	if err := r.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query outbox events: %w", err)
	}

	events := make([]*domain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		event, err := convertRowToEvent(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *PostgresRepository) ClaimForProcessing(ctx context.Context, eventID string, lockedBy string, lockDuration time.Duration) (*domain.OutboxEvent, error) {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	lockedUntil := time.Now().Add(lockDuration)

	query, args, err := psql.Update(r.table).
		Set("status", string(domain.OutboxStatusProcessing)).
		Set("started_at", sq.Expr("NOW()")).
		Set("locked_until", lockedUntil).
		Set("locked_by", lockedBy).
		Where(sq.And{
			sq.Eq{"id": eventID},
			sq.Eq{"status": string(domain.OutboxStatusPending)},
			sq.Or{sq.Eq{"locked_until": nil}, sq.Expr("locked_until <= NOW()")},
		}).
		Suffix("RETURNING id, aggregate_id, aggregate_type, event_type, retry_count, max_retries, status, payload, error_details, created_at, started_at, published_at, next_retry_at, locked_until, locked_by").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var row outboxEventRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event not found or already claimed")
		}

		return nil, fmt.Errorf("failed to claim event: %w", err)
	}

	event, err := convertRowToEvent(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, nil
}

func (r *PostgresRepository) MarkPublished(ctx context.Context, eventID string) error {
	query, args, err := psql.Update(r.table).
		Set("status", string(domain.OutboxStatusPublished)).
		Set("published_at", sq.Expr("NOW()")).
		Set("locked_until", nil).
		Set("locked_by", nil).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	return r.execOne(ctx, query, args, eventID)
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, eventID string, errorDetails string, nextRetryAt time.Time) error {
	query, args, err := psql.Update(r.table).
		Set("status", string(domain.OutboxStatusPending)).
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("error_details", errorDetails).
		Set("next_retry_at", nextRetryAt).
		Set("locked_until", nil).
		Set("locked_by", nil).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	return r.execOne(ctx, query, args, eventID)
}

func (r *PostgresRepository) MarkDeadLettered(ctx context.Context, eventID string, errorDetails string) error {
	query, args, err := psql.Update(r.table).
		Set("status", string(domain.OutboxStatusFailed)).
		Set("error_details", errorDetails).
		Set("next_retry_at", nil).
		Set("locked_until", nil).
		Set("locked_by", nil).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	return r.execOne(ctx, query, args, eventID)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args []any, eventID string) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.NewNotFoundError(fmt.Sprintf("outbox event %s not found", eventID))
	}

	return nil
}

func convertRowToEvent(row outboxEventRow) (*domain.OutboxEvent, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse id: %w", err)
	}

	aggregateID, err := uuid.Parse(row.AggregateID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse aggregate_id: %w", err)
	}

	var payload any
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &domain.OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateType(row.AggregateType),
		EventType:     domain.OutboxEventType(row.EventType),
		RetryCount:    row.RetryCount,
		MaxRetries:    row.MaxRetries,
		Status:        domain.OutboxStatus(row.Status),
		Payload:       payload,
		ErrorDetails:  row.ErrorDetails,
		CreatedAt:     row.CreatedAt,
		StartedAt:     row.StartedAt,
		PublishedAt:   row.PublishedAt,
		NextRetryAt:   row.NextRetryAt,
		LockedUntil:   row.LockedUntil,
		LockedBy:      row.LockedBy,
	}, nil
}
