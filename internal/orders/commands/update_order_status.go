package commands

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/google/uuid"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	UpdateOrderStatusCommand struct {
		OrderID uuid.UUID
		Status  string
		Reason  string
	}

	UpdateOrderStatusHandler decorator.CommandHandler[UpdateOrderStatusCommand, struct{}]

	updateOrderStatusHandler struct {
		ordersService *orders.Service
	}
)

func NewUpdateOrderStatusHandler(
	ordersService *orders.Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) UpdateOrderStatusHandler {
	return decorator.ApplyCommandDecorators[UpdateOrderStatusCommand, struct{}](
		updateOrderStatusHandler{ordersService: ordersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h updateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (struct{}, error) {
	err := h.ordersService.UpdateOrderStatus(ctx, orders.UpdateOrderStatusInput{
		OrderID: cmd.OrderID,
		Status:  cmd.Status,
		Reason:  cmd.Reason,
	})

	return struct{}{}, err
}
