package users

import (
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/decorator"
	"github.com/architeacher/svc-web-analyzer/internal/users/commands"
	"github.com/architeacher/svc-web-analyzer/internal/users/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Application struct {
		Commands Commands
		Queries  Queries
	}

	Commands struct {
		CreateUserHandler       commands.CreateUserHandler
		ChangeUserStatusHandler commands.ChangeUserStatusHandler
	}

	Queries struct {
		GetUserQueryHandler queries.GetUserQueryHandler
	}
)

func NewApplication(
	usersService *Service,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *Application {
	return &Application{
		Commands: Commands{
			CreateUserHandler: commands.NewCreateUserHandler(
				usersService,
				logger,
				tracerProvider,
				metricsClient,
			),
			ChangeUserStatusHandler: commands.NewChangeUserStatusHandler(
				usersService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
		Queries: Queries{
			GetUserQueryHandler: queries.NewGetUserQueryHandler(
				usersService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
	}
}
