package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const usersTable = "users"

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

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := psql.Select("id", "name", "email", "status", "created_at", "updated_at").
		From(usersTable).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var user domain.User
	if err := r.conn.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := psql.Select("id", "name", "email", "status", "created_at", "updated_at").
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var user domain.User
	if err := r.conn.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFoundError(fmt.Sprintf("user %s not found", id))
		}

		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) CreateInTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	query, args, err := psql.Insert(usersTable).
		Columns("id", "name", "email", "status", "created_at", "updated_at").
		Values(user.ID, user.Name, user.Email, user.Status, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateStatusInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.Status) error {
	query, args, err := psql.Update(usersTable).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}

	return nil
}
