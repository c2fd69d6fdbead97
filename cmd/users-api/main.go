// Command users-api serves the Users command surface (spec.md §6, C4): HTTP
// create-user/get-user/change-user-status endpoints backed by a
// transactional outbox write (spec.md §4.4).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/adapters"
	"github.com/architeacher/svc-web-analyzer/internal/adapters/middleware"
	usershttp "github.com/architeacher/svc-web-analyzer/internal/users/http"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/runtime"
	"github.com/architeacher/svc-web-analyzer/internal/users"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

const usersOutboxTable = "users_outbox"

func main() {
	ctx := context.Background()

	deps, err := runtime.Init(ctx,
		runtime.WithTracing(ctx),
		runtime.WithSecretStorage(ctx),
		runtime.WithStorage(),
		runtime.WithMetrics(ctx),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "users-api: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	db, err := deps.Infra.StorageClient.GetDB()
	if err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}

	usersRepo := users.NewPostgresRepository(db)
	outboxRepo := outbox.NewPostgresRepository(db, usersOutboxTable)
	usersService := users.NewService(usersRepo, outboxRepo)

	app := users.NewApplication(
		usersService,
		deps.Logger,
		otel.GetTracerProvider(),
		adapters.NewMetricsAdapter(),
	)

	handlers := usershttp.NewHandlers(app)
	healthHandlers := adapters.NewHealthHandlers(adapters.NewHealthChecker(deps.Infra.StorageClient, nil, nil))

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(middleware.NewHealthCheckFilter(false).Middleware)
	router.Use(middleware.NewAccessLogger(deps.Logger.Logger).Middleware)
	router.Use(middleware.NewAPIVersionMiddleware(deps.Cfg.AppConfig.APIVersion).Middleware)
	router.Use(middleware.NewMetricsMiddleware(deps.Infra.Metrics).Middleware)

	healthHandlers.Mount(router)
	handlers.Mount(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", deps.Cfg.HTTPServer.Host, deps.Cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  deps.Cfg.HTTPServer.ReadTimeout,
		WriteTimeout: deps.Cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  deps.Cfg.HTTPServer.IdleTimeout,
	}

	svc := runtime.New(deps, runtime.WithServiceTermination(make(chan os.Signal, 1)))
	svc.WithHTTPServer(server)
	svc.Run()
}
