package queries

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/users"
	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type (
	GetUserQuery struct {
		UserID uuid.UUID
	}

	GetUserQueryHandler decorator.QueryHandler[GetUserQuery, *domain.User]

	getUserQueryHandler struct {
		usersService *users.Service
	}
)

func NewGetUserQueryHandler(
	usersService *users.Service,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) GetUserQueryHandler {
	return decorator.ApplyQueryDecorators[GetUserQuery, *domain.User](
		getUserQueryHandler{usersService: usersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h getUserQueryHandler) Execute(ctx context.Context, query GetUserQuery) (*domain.User, error) {
	return h.usersService.GetUser(ctx, query.UserID)
}
