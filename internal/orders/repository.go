package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const ordersTable = "orders"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresRepository struct {
	conn *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{conn: db}
}

func (r *PostgresRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.conn.BeginTxx(ctx, nil)
}

var orderColumns = []string{"id", "user_id", "product", "quantity", "price", "status", "created_at", "expires_at", "cancelled_at"}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query, args, err := psql.Select(orderColumns...).From(ordersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var order domain.Order
	if err := r.conn.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFoundError(fmt.Sprintf("order %s not found", id))
		}

		return nil, fmt.Errorf("failed to query order by id: %w", err)
	}

	return &order, nil
}

func (r *PostgresRepository) CreateInTx(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query, args, err := psql.Insert(ordersTable).
		Columns(orderColumns...).
		Values(order.ID, order.UserID, order.Product, order.Quantity, order.Price, order.Status, order.CreatedAt, order.ExpiresAt, order.CancelledAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateInTx(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query, args, err := psql.Update(ordersTable).
		Set("status", order.Status).
		Set("expires_at", order.ExpiresAt).
		Set("cancelled_at", order.CancelledAt).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.NewNotFoundError(fmt.Sprintf("order %s not found", order.ID))
	}

	return nil
}

func (r *PostgresRepository) FindByUserAndStatusesInTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, statuses []domain.Status) ([]*domain.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"user_id": userID, "status": statuses}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var orderList []*domain.Order
	if err := tx.SelectContext(ctx, &orderList, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query orders by user and status: %w", err)
	}

	return orderList, nil
}

func (r *PostgresRepository) FindExpirableInTx(ctx context.Context, tx *sqlx.Tx, before time.Time, limit int) ([]*domain.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"status": []domain.Status{domain.StatusPendingPayment, domain.StatusReady}}).
		Where(sq.Lt{"expires_at": before}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var orderList []*domain.Order
	if err := tx.SelectContext(ctx, &orderList, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query expirable orders: %w", err)
	}

	return orderList, nil
}
