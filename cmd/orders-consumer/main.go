// Command orders-consumer runs C5+C6: the idempotent cross-service consumer
// that subscribes to users.status-changed and applies the domain reaction
// (spec.md §4.5, §5) — cancelling the user's pending, pending-payment and
// ready orders when the user becomes inactive.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/architeacher/svc-web-analyzer/internal/orders/consumer"
	"github.com/architeacher/svc-web-analyzer/internal/orders/reaction"
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
		runtime.WithQueue(),
		runtime.WithCache(ctx),
		runtime.WithMetrics(ctx),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "orders-consumer: failed to initialize dependencies:", err)
		os.Exit(1)
	}

	db, err := deps.Infra.StorageClient.GetDB()
	if err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}

	queueCfg := deps.Cfg.Queue
	if err := deps.Infra.QueueClient.DeclareExchange(queueCfg.ExchangeName, "topic", true, false); err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to declare commerce exchange")
	}

	if _, err := deps.Infra.QueueClient.DeclareQueue(queueCfg.QueueName, queueCfg.Durable, queueCfg.AutoDelete); err != nil {
		deps.Logger.Fatal().Err(err).Msg("failed to declare consumer queue")
	}

	for _, topic := range deps.Cfg.Consumer.SubscribedTopics {
		if err := deps.Infra.QueueClient.BindQueue(queueCfg.QueueName, topic, queueCfg.ExchangeName); err != nil {
			deps.Logger.Fatal().Err(err).Str("topic", topic).Msg("failed to bind consumer queue")
		}
	}

	ordersRepo := orders.NewPostgresRepository(db)
	outboxRepo := outbox.NewPostgresRepository(db, ordersOutboxTable)
	reactionService := reaction.NewService(ordersRepo, outboxRepo)
	consumerSvc := consumer.NewConsumer(
		deps.Infra.QueueClient,
		deps.Infra.CacheClient,
		reactionService,
		deps.Cfg.Consumer,
		queueCfg,
		deps.Logger,
	)

	svc := runtime.New(deps, runtime.WithServiceTermination(make(chan os.Signal, 1)))
	svc.AddWorker(consumerSvc)
	svc.Run()
}
