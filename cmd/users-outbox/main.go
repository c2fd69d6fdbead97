// Command users-outbox runs C3, the Users-domain outbox drainer: it claims
// pending/retryable rows from users_outbox and publishes each to the
// "commerce" exchange (spec.md §4.2, §4.3).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/runtime"
	"github.com/architeacher/svc-web-analyzer/internal/shared/backoff"
)

const usersOutboxTable = "users_outbox"

func main() {
	ctx := context.Background()

	deps, err := runtime.Init(ctx,
		runtime.WithTracing(ctx),
		runtime.WithSecretStorage(ctx),
		runtime.WithStorage(),
		runtime.WithQueue(),
		runtime.WithMetrics(ctx),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "users-outbox: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	db, err := deps.Infra.StorageClient.GetDB()
	if err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}

	if err := deps.Infra.QueueClient.DeclareExchange(deps.Cfg.Queue.ExchangeName, "topic", true, false); err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to declare commerce exchange")
	}

	outboxRepo := outbox.NewPostgresRepository(db, usersOutboxTable)
	publisher := outbox.NewPublisher(
		deps.Infra.QueueClient,
		deps.Cfg.Queue,
		deps.Cfg.Outbox.DeadLetterTopic,
		deps.Infra.Metrics,
		deps.Logger,
	)
	strategy := backoff.NewExponentialStrategy(deps.Cfg.Backoff)
	drainer := outbox.NewDrainer(outboxRepo, publisher, strategy, deps.Cfg.Outbox, deps.Logger)

	svc := runtime.New(deps, runtime.WithServiceTermination(make(chan os.Signal, 1)))
	svc.AddWorker(drainer)
	svc.Run()
}
