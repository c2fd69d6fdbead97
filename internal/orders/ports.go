package orders

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type (
	// Repository persists the Orders aggregate. The *InTx methods are
	// called from inside a transaction shared with outbox.Repository.SaveInTx
	// so the domain row and the outbox row commit together.
	Repository interface {
		BeginTx(ctx context.Context) (*sqlx.Tx, error)

		FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

		CreateInTx(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error
		UpdateInTx(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error

		// FindByUserAndStatusesInTx is used by C6 to load every order for a
		// user that is still in a cancellable state, re-checked under the
		// transaction to stay idempotent under event replay.
		FindByUserAndStatusesInTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, statuses []domain.Status) ([]*domain.Order, error)

		// FindExpirableInTx is used by C7 to fetch a batch of orders whose
		// deadline has passed, in {PendingPayment, Ready}, locked for update
		// so two scanner replicas cannot double-process the same order.
		FindExpirableInTx(ctx context.Context, tx *sqlx.Tx, before time.Time, limit int) ([]*domain.Order, error)
	}

	// PeerUserProbe validates that an order's owning user exists and is
	// Active, synchronously, before Create-Order commits (spec.md §4.4).
	PeerUserProbe interface {
		CheckUserActive(ctx context.Context, userID uuid.UUID) error
	}
)
