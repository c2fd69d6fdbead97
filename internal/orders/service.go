package orders

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/adapters/repos"
	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/google/uuid"
)

type (
	CreateOrderInput struct {
		UserID   uuid.UUID
		Product  string
		Quantity int
		Price    float64
	}

	UpdateOrderStatusInput struct {
		OrderID uuid.UUID
		Status  string
		Reason  string
	}

	// Service implements C4's Create-Order and Update-Order-Status.
	Service struct {
		orders     Repository
		outbox     outbox.Repository
		peerProbe  PeerUserProbe
		defaultTTL time.Duration
	}
)

func NewService(ordersRepo Repository, outboxRepo outbox.Repository, peerProbe PeerUserProbe, defaultExpiry time.Duration) *Service {
	return &Service{orders: ordersRepo, outbox: outboxRepo, peerProbe: peerProbe, defaultTTL: defaultExpiry}
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.Product == "" {
		return nil, apperr.NewValidationError("product must not be empty")
	}
	if in.Quantity < 1 {
		return nil, apperr.NewValidationError("quantity must be at least 1")
	}
	if in.Price <= 0 {
		return nil, apperr.NewValidationError("price must be positive")
	}

	if s.peerProbe != nil {
		if err := s.peerProbe.CheckUserActive(ctx, in.UserID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.defaultTTL)
	order := &domain.Order{
		ID:        uuid.NewSHA1(repos.OrderNamespace, []byte(in.UserID.String()+in.Product+now.String())),
		UserID:    in.UserID,
		Product:   in.Product,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Status:    domain.StatusPending,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), txWatchdogTimeout)
	defer cancel()

	tx, err := s.orders.BeginTx(txCtx)
	if err != nil {
		return nil, apperr.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.orders.CreateInTx(txCtx, tx, order); err != nil {
		return nil, apperr.NewInternalError("failed to create order", err)
	}

	event := &sharedDomain.OutboxEvent{
		AggregateID:   order.ID,
		AggregateType: sharedDomain.AggregateTypeOrder,
		EventType:     sharedDomain.EventOrderCreated,
		MaxRetries:    defaultMaxRetries,
		Status:        sharedDomain.OutboxStatusPending,
		Payload: map[string]any{
			"id":       order.ID,
			"userId":   order.UserID,
			"product":  order.Product,
			"quantity": order.Quantity,
			"price":    order.Price,
			"status":   order.Status,
		},
		CreatedAt: now,
	}

	if err := s.outbox.SaveInTx(txCtx, tx, event); err != nil {
		return nil, apperr.NewInternalError("failed to append outbox event", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.NewInternalError("failed to commit transaction", err)
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, in UpdateOrderStatusInput) error {
	newStatus, ok := domain.ParseStatus(in.Status)
	if !ok {
		return apperr.NewValidationError("unknown status: " + in.Status)
	}

	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return err
	}

	if order.Status == newStatus {
		return nil
	}

	oldStatus := order.Status
	now := time.Now().UTC()

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), txWatchdogTimeout)
	defer cancel()

	tx, err := s.orders.BeginTx(txCtx)
	if err != nil {
		return apperr.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	order.Status = newStatus
	if newStatus == domain.StatusCancelled {
		order.CancelledAt = &now
	} else {
		order.CancelledAt = nil
	}

	if err := s.orders.UpdateInTx(txCtx, tx, order); err != nil {
		return err
	}

	event := &sharedDomain.OutboxEvent{
		AggregateID:   order.ID,
		AggregateType: sharedDomain.AggregateTypeOrder,
		EventType:     sharedDomain.EventOrderStatusChanged,
		MaxRetries:    defaultMaxRetries,
		Status:        sharedDomain.OutboxStatusPending,
		Payload: sharedDomain.OrderStatusChangedPayload{
			EventID:    uuid.NewSHA1(repos.OrderNamespace, []byte(order.ID.String()+string(newStatus)+now.String())),
			OccurredAt: now,
			OrderID:    order.ID,
			UserID:     order.UserID,
			OldStatus:  string(oldStatus),
			NewStatus:  string(newStatus),
			Reason:     in.Reason,
		},
		CreatedAt: now,
	}

	if err := s.outbox.SaveInTx(txCtx, tx, event); err != nil {
		return apperr.NewInternalError("failed to append outbox event", err)
	}

	return tx.Commit()
}

const defaultMaxRetries = 5

// txWatchdogTimeout bounds the domain-write+outbox transaction independently
// of the inbound request context, so a client disconnect can't abort a
// transaction mid-commit (spec.md §5, §9).
const txWatchdogTimeout = 15 * time.Second

