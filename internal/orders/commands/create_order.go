package commands

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/google/uuid"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	CreateOrderCommand struct {
		UserID   uuid.UUID
		Product  string
		Quantity int
		Price    float64
	}

	CreateOrderHandler decorator.CommandHandler[CreateOrderCommand, *domain.Order]

	createOrderHandler struct {
		ordersService *orders.Service
	}
)

func NewCreateOrderHandler(
	ordersService *orders.Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) CreateOrderHandler {
	return decorator.ApplyCommandDecorators[CreateOrderCommand, *domain.Order](
		createOrderHandler{ordersService: ordersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h createOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	return h.ordersService.CreateOrder(ctx, orders.CreateOrderInput{
		UserID:   cmd.UserID,
		Product:  cmd.Product,
		Quantity: cmd.Quantity,
		Price:    cmd.Price,
	})
}
