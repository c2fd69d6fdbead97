package queries

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type (
	GetOrderQuery struct {
		OrderID uuid.UUID
	}

	GetOrderQueryHandler decorator.QueryHandler[GetOrderQuery, *domain.Order]

	getOrderQueryHandler struct {
		ordersService *orders.Service
	}
)

func NewGetOrderQueryHandler(
	ordersService *orders.Service,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) GetOrderQueryHandler {
	return decorator.ApplyQueryDecorators[GetOrderQuery, *domain.Order](
		getOrderQueryHandler{ordersService: ordersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h getOrderQueryHandler) Execute(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	return h.ordersService.GetOrder(ctx, query.OrderID)
}
