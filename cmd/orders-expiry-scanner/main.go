// Command orders-expiry-scanner runs C7: a periodic sweep that transitions
// orders past their expiry deadline to Expired and enqueues the matching
// outbox event in the same transaction (spec.md §4.6).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/expiry"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/runtime"
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
		fmt.Fprintln(os.Stderr, "orders-expiry-scanner: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	db, err := deps.Infra.StorageClient.GetDB()
	if err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}

	ordersRepo := orders.NewPostgresRepository(db)
	outboxRepo := outbox.NewPostgresRepository(db, ordersOutboxTable)
	scanner := expiry.NewScanner(ordersRepo, outboxRepo, deps.Cfg.Expiry, deps.Logger)

	svc := runtime.New(deps, runtime.WithServiceTermination(make(chan os.Signal, 1)))
	svc.AddWorker(scanner)
	svc.Run()
}
