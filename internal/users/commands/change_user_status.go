package commands

import (
	"context"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/users"
	"github.com/google/uuid"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ChangeUserStatusCommand struct {
		UserID uuid.UUID
		Status string
		Reason string
	}

	ChangeUserStatusHandler decorator.CommandHandler[ChangeUserStatusCommand, struct{}]

	changeUserStatusHandler struct {
		usersService *users.Service
	}
)

func NewChangeUserStatusHandler(
	usersService *users.Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) ChangeUserStatusHandler {
	return decorator.ApplyCommandDecorators[ChangeUserStatusCommand, struct{}](
		changeUserStatusHandler{usersService: usersService},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h changeUserStatusHandler) Handle(ctx context.Context, cmd ChangeUserStatusCommand) (struct{}, error) {
	err := h.usersService.ChangeUserStatus(ctx, users.ChangeUserStatusInput{
		UserID: cmd.UserID,
		Status: cmd.Status,
		Reason: cmd.Reason,
	})

	return struct{}{}, err
}
