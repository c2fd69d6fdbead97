// Package reaction implements C6's domain reaction handler: it is a pure
// function of (event, transaction-local re-check) so handling the same
// event twice leaves the system in the same end state (spec.md §4.6).
package reaction

import (
	"context"
	"fmt"
	"time"

	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/google/uuid"
)

const reasonUserInactivated = "user_inactivated"

// cancellableStatuses is Pending plus the payment-capable variant's
// PendingPayment/Ready, per spec.md §4.6.
var cancellableStatuses = []domain.Status{domain.StatusPending, domain.StatusPendingPayment, domain.StatusReady}

type Service struct {
	orders orders.Repository
	outbox outbox.Repository
}

func NewService(ordersRepo orders.Repository, outboxRepo outbox.Repository) *Service {
	return &Service{orders: ordersRepo, outbox: outboxRepo}
}

// HandleUserStatusChanged is the canonical reaction: on newStatus=Inactive,
// cancel every eligible order belonging to the user, emitting one
// orders.cancelled event per order. Events where newStatus != Inactive are
// ignored (spec.md §4.6).
func (s *Service) HandleUserStatusChanged(ctx context.Context, event sharedDomain.UserStatusChangedPayload) error {
	if event.NewStatus != "inactive" {
		return nil
	}

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	eligibleOrders, err := s.orders.FindByUserAndStatusesInTx(ctx, tx, event.UserID, cancellableStatuses)
	if err != nil {
		return fmt.Errorf("failed to load user's orders: %w", err)
	}

	now := time.Now().UTC()
	for _, order := range eligibleOrders {
		oldStatus := order.Status
		if !order.Cancel(now) {
			continue
		}

		if err := s.orders.UpdateInTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to cancel order %s: %w", order.ID, err)
		}

		outboxEvent := &sharedDomain.OutboxEvent{
			AggregateID:   order.ID,
			AggregateType: sharedDomain.AggregateTypeOrder,
			EventType:     sharedDomain.EventOrderCancelled,
			MaxRetries:    defaultMaxRetries,
			Status:        sharedDomain.OutboxStatusPending,
			Payload: sharedDomain.OrderStatusChangedPayload{
				EventID:    uuid.NewSHA1(reactionNamespace, []byte(order.ID.String()+event.EventID.String())),
				OccurredAt: now,
				OrderID:    order.ID,
				UserID:     order.UserID,
				OldStatus:  string(oldStatus),
				NewStatus:  string(domain.StatusCancelled),
				Reason:     reasonUserInactivated,
			},
			CreatedAt: now,
		}

		if err := s.outbox.SaveInTx(ctx, tx, outboxEvent); err != nil {
			return fmt.Errorf("failed to append cancellation outbox event: %w", err)
		}
	}

	return tx.Commit()
}

const defaultMaxRetries = 5

var reactionNamespace = uuid.MustParse("e3f4a5b6-7c8d-5e9f-0a1b-2c3d4e5f6a7b")
