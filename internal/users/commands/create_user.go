package commands

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/users"
	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	CreateUserCommand struct {
		Name  string
		Email string
	}

	CreateUserHandler decorator.CommandHandler[CreateUserCommand, *domain.User]

	createUserHandler struct {
		usersService *users.Service
	}
)

func NewCreateUserHandler(
	usersService *users.Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) CreateUserHandler {
	return decorator.ApplyCommandDecorators[CreateUserCommand, *domain.User](
		createUserHandler{usersService: usersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h createUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	return h.usersService.CreateUser(ctx, users.CreateUserInput{
		Name:  cmd.Name,
		Email: cmd.Email,
	})
}
