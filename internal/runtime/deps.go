// Package runtime wires the cross-cutting infrastructure every cmd/ process
// shares (config, tracing, secret storage, Postgres, RabbitMQ, Redis,
// metrics) and supervises the process lifecycle. Domain-specific wiring
// (repositories, services, HTTP handlers, consumers, scanners) is built by
// each cmd/*/main.go on top of the Dependencies this package returns.
package runtime

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/ports"
	"github.com/architeacher/svc-web-analyzer/pkg/queue"
	"github.com/hashicorp/vault/api"
)

type (
	TracerShutdownFunc = infrastructure.TracerShutdownFunc

	InfrastructureDeps struct {
		SecretStorageClient ports.SecretsRepository
		StorageClient       *infrastructure.Storage
		QueueClient         infrastructure.Queue
		CacheClient         *infrastructure.KeydbClient
		Metrics             infrastructure.Metrics
	}

	// Dependencies is the infra bootstrap shared by every process. Each
	// cmd/ builds its own domain objects on top of these fields.
	Dependencies struct {
		Cfg          *config.ServiceConfig
		ConfigLoader *config.Loader
		Logger       infrastructure.Logger
		Infra        InfrastructureDeps

		tracerShutdownFunc TracerShutdownFunc
		secretVersion      uint
	}
)

// Init loads configuration and applies opts in order, building only the
// infrastructure a given process actually needs (e.g. a worker-only process
// skips WithCache but keeps WithStorage/WithQueue).
func Init(ctx context.Context, opts ...DependencyOption) (*Dependencies, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to load service configuration: %w", err)
	}

	logger := infrastructure.New(cfg.Logging)
	logger.Info().Msg("initializing dependencies...")

	deps := &Dependencies{
		Cfg:    cfg,
		Logger: logger,
	}

	for _, opt := range opts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	logger.Info().Msg("dependencies initialized successfully")

	return deps, nil
}

func createVaultClient(cfg config.SecretStorageConfig) (*api.Client, error) {
	vaultCfg := api.DefaultConfig()
	vaultCfg.Address = cfg.Address
	vaultCfg.Timeout = cfg.Timeout
	vaultCfg.MaxRetries = cfg.MaxRetries

	if cfg.TLSSkipVerify {
		if err := vaultCfg.ConfigureTLS(&api.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("failed to configure vault TLS: %w", err)
		}
	}

	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return client, nil
}

func newQueueClient(cfg config.QueueConfig, logger infrastructure.Logger) infrastructure.Queue {
	return queue.NewRabbitMQQueue(
		queue.Config{
			Scheme:   "amqp",
			Username: cfg.Username,
			Password: cfg.Password,
			Host:     cfg.Host,
			Port:     cfg.Port,
			Vhost:    cfg.VirtualHost,
		},
		queue.WithLogger(queue.NewLoggerAdapter(logger)),
		queue.WithReconnectDelay(cfg.ConnectTimeout),
	)
}
