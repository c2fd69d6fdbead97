package runtime

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-web-analyzer/internal/adapters/repos"
	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
)

type DependencyOption func(*Dependencies) error

// WithTracing initializes the global OpenTelemetry tracer provider. The
// returned shutdown func is invoked during graceful shutdown.
func WithTracing(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		shutdownFunc, err := infrastructure.InitGlobalTracing(ctx, d.Cfg)
		if err != nil {
			d.Logger.Error().Err(err).Msg("failed to initialize global tracer")
			return err
		}

		d.tracerShutdownFunc = shutdownFunc

		return nil
	}
}

// WithSecretStorage authenticates against Vault (when enabled) and overlays
// any secrets it finds onto the in-memory config.
func WithSecretStorage(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		vaultClient, err := createVaultClient(d.Cfg.SecretStorage)
		if err != nil {
			return fmt.Errorf("unable to create vault client: %w", err)
		}

		secretsRepo := repos.NewVaultRepository(vaultClient)
		d.Infra.SecretStorageClient = secretsRepo

		if !d.Cfg.SecretStorage.Enabled {
			d.Logger.Info().Msg("secret storage is disabled, skipping vault configuration loading")
			d.ConfigLoader = config.NewLoader(d.Cfg, secretsRepo, 0)
			return nil
		}

		loader := config.NewLoader(d.Cfg, secretsRepo, 0)

		version, err := loader.Load(ctx, secretsRepo, d.Cfg)
		if err != nil {
			return fmt.Errorf("unable to load secrets from vault: %w", err)
		}

		d.secretVersion = version
		d.ConfigLoader = config.NewLoader(d.Cfg, secretsRepo, version)

		return nil
	}
}

// WithStorage opens the shared Postgres pool.
func WithStorage() DependencyOption {
	return func(d *Dependencies) error {
		storage, err := infrastructure.NewStorage(d.Cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}

		if err := storage.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		d.Infra.StorageClient = storage

		return nil
	}
}

// WithQueue connects the shared RabbitMQ client. Exchange/queue topology is
// declared by whichever worker (drainer, consumer, fanout subscriber) owns
// it, since each binds different routing keys.
func WithQueue() DependencyOption {
	return func(d *Dependencies) error {
		queueClient := newQueueClient(d.Cfg.Queue, d.Logger)

		if err := queueClient.Connect(); err != nil {
			return fmt.Errorf("failed to connect to queue: %w", err)
		}

		d.Infra.QueueClient = queueClient

		return nil
	}
}

// WithCache connects to Redis. A connection failure degrades gracefully:
// callers that need dedup (C5) fall back to transaction-only idempotence.
func WithCache(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		cacheClient := infrastructure.NewKeyDBClient(d.Cfg.Cache, d.Logger)

		cacheCtx, cancel := context.WithTimeout(ctx, d.Cfg.Cache.DialTimeout)
		defer cancel()

		if err := cacheClient.Ping(cacheCtx); err != nil {
			d.Logger.Error().Err(err).Msg("failed to connect to cache, continuing without cache")
			return nil
		}

		d.Logger.Info().Msg("cache connection established")
		d.Infra.CacheClient = cacheClient

		return nil
	}
}

// WithMetrics initializes the OTEL+Prometheus metrics client.
func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		metrics, err := infrastructure.NewMetrics(ctx, *d.Cfg, d.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}

		d.Infra.Metrics = metrics

		return nil
	}
}
