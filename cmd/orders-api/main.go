// Command orders-api serves the Orders command surface (spec.md §6, C4):
// HTTP create-order/get-order/update-order-status endpoints. Create-order
// validates the owning user synchronously against users-api (spec.md §4.4);
// each write commits the domain row and its outbox event together.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/adapters"
	"github.com/architeacher/svc-web-analyzer/internal/adapters/middleware"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	ordershttp "github.com/architeacher/svc-web-analyzer/internal/orders/http"
	"github.com/architeacher/svc-web-analyzer/internal/orders/peer"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/runtime"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

const ordersOutboxTable = "orders_outbox"

func main() {
	ctx := context.Background()

	deps, err := runtime.Init(ctx,
		runtime.WithTracing(ctx),
		runtime.WithSecretStorage(ctx),
		runtime.WithStorage(),
		runtime.WithMetrics(ctx),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "orders-api: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	db, err := deps.Infra.StorageClient.GetDB()
	if err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}

	ordersRepo := orders.NewPostgresRepository(db)
	outboxRepo := outbox.NewPostgresRepository(db, ordersOutboxTable)
	usersProbe := peer.NewUsersClient(deps.Cfg.PeerService, deps.Cfg.CircuitBreaker, deps.Logger)
	ordersService := orders.NewService(ordersRepo, outboxRepo, usersProbe, deps.Cfg.Expiry.DefaultExpiry)

	app := orders.NewApplication(
		ordersService,
		deps.Logger,
		otel.GetTracerProvider(),
		adapters.NewMetricsAdapter(),
	)

	handlers := ordershttp.NewHandlers(app)
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
