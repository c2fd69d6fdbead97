// Command fanout-relay runs C8: a websocket hub that tees every published
// domain event, plus the dead-letter topic, to connected browser clients
// (spec.md §4.8).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/adapters"
	"github.com/architeacher/svc-web-analyzer/internal/adapters/middleware"
	"github.com/architeacher/svc-web-analyzer/internal/fanout"
	"github.com/architeacher/svc-web-analyzer/internal/runtime"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	deps, err := runtime.Init(ctx,
		runtime.WithTracing(ctx),
		runtime.WithSecretStorage(ctx),
		runtime.WithQueue(),
		runtime.WithMetrics(ctx),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fanout-relay: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	hub := fanout.NewHub(deps.Logger)
	subscriber := fanout.NewSubscriber(hub, deps.Infra.QueueClient, deps.Cfg.Queue, deps.Cfg.Fanout, deps.Logger)
	handler := fanout.NewHandler(hub, deps.Cfg.Fanout, deps.Logger)
	healthHandlers := adapters.NewHealthHandlers(adapters.NewHealthChecker(nil, nil, deps.Infra.QueueClient))

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(middleware.NewHealthCheckFilter(false).Middleware)
	router.Use(middleware.NewAccessLogger(deps.Logger.Logger).Middleware)
	router.Use(middleware.NewAPIVersionMiddleware(deps.Cfg.AppConfig.APIVersion).Middleware)
	router.Use(middleware.NewMetricsMiddleware(deps.Infra.Metrics).Middleware)

	healthHandlers.Mount(router)
	router.Get("/ws", handler.ServeWS)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", deps.Cfg.HTTPServer.Host, deps.Cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  deps.Cfg.HTTPServer.ReadTimeout,
		WriteTimeout: deps.Cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  deps.Cfg.HTTPServer.IdleTimeout,
	}

	svc := runtime.New(deps, runtime.WithServiceTermination(make(chan os.Signal, 1)))
	svc.WithHTTPServer(server)
	svc.AddWorker(hub)
	svc.AddWorker(subscriber)
	svc.Run()
}
