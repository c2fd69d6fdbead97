package users

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type (
	// Repository persists the Users aggregate. CreateInTx/UpdateStatusInTx
	// are called from inside a transaction shared with the matching
	// outbox.Repository.SaveInTx call, so the domain row and the outbox
	// row commit or roll back together (spec.md §4.4 atomicity rule).
	Repository interface {
		BeginTx(ctx context.Context) (*sqlx.Tx, error)

		FindByEmail(ctx context.Context, email string) (*domain.User, error)
		FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

		CreateInTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error
		UpdateStatusInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.Status) error
	}
)
