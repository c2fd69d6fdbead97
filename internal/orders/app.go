package orders

import (
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/orders/commands"
	"github.com/architeacher/svc-web-analyzer/internal/orders/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Application struct {
		Commands Commands
		Queries  Queries
	}

	Commands struct {
		CreateOrderHandler       commands.CreateOrderHandler
		UpdateOrderStatusHandler commands.UpdateOrderStatusHandler
	}

	Queries struct {
		GetOrderQueryHandler queries.GetOrderQueryHandler
	}
)

func NewApplication(
	ordersService *Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *Application {
	return &Application{
		Commands: Commands{
			CreateOrderHandler: commands.NewCreateOrderHandler(
				ordersService,
				logger,
				tracerProvider,
				metricsClient,
			),
			UpdateOrderStatusHandler: commands.NewUpdateOrderStatusHandler(
				ordersService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
		Queries: Queries{
			GetOrderQueryHandler: queries.NewGetOrderQueryHandler(
				ordersService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
	}
}
