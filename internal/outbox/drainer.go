package outbox

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/shared/backoff"
)

// Drainer is C3: it periodically claims pending and retryable outbox
// rows and hands each to the EventBus, fanning out within a batch via
// wg.Go the way the teacher's background processor does.
type Drainer struct {
	repo     Repository
	bus      EventBus
	backoff  backoff.Strategy
	cfg      config.OutboxConfig
	workerID string
	logger   infrastructure.Logger
}

func NewDrainer(repo Repository, bus EventBus, strategy backoff.Strategy, cfg config.OutboxConfig, logger infrastructure.Logger) *Drainer {
	hostname, _ := os.Hostname()

	return &Drainer{
		repo:     repo,
		bus:      bus,
		backoff:  strategy,
		cfg:      cfg,
		workerID: hostname,
		logger:   logger,
	}
}

func (d *Drainer) Start(ctx context.Context) error {
	d.logger.Info().Msg("starting outbox drainer")

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("outbox drainer shutting down")

			return ctx.Err()

		case <-ticker.C:
			var wg sync.WaitGroup

			wg.Go(func() {
				if err := d.drainBatch(ctx, d.repo.FindPending); err != nil {
					d.logger.Error().Err(err).Msg("failed to drain pending events")
				}
			})

			wg.Go(func() {
				if err := d.drainBatch(ctx, d.repo.FindRetryable); err != nil {
					d.logger.Error().Err(err).Msg("failed to drain retryable events")
				}
			})

			wg.Wait()
		}
	}
}

func (d *Drainer) drainBatch(ctx context.Context, fetch func(context.Context, int) ([]*domain.OutboxEvent, error)) error {
	events, err := fetch(ctx, d.cfg.BatchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for _, event := range events {
		wg.Go(func() {
			d.processOne(ctx, event)
		})
	}
	wg.Wait()

	return nil
}

func (d *Drainer) processOne(ctx context.Context, event *domain.OutboxEvent) {
	claimed, err := d.repo.ClaimForProcessing(ctx, event.ID.String(), d.workerID, d.cfg.LockDuration)
	if err != nil {
		d.logger.Debug().Str("event_id", event.ID.String()).Err(err).Msg("failed to claim outbox event")

		return
	}

	published, deadLettered, err := d.bus.Publish(ctx, claimed)
	if err != nil {
		backoffDuration := d.backoff.Backoff(claimed.RetryCount)
		nextRetryAt := time.Now().Add(backoffDuration)

		if markErr := d.repo.MarkFailed(ctx, claimed.ID.String(), err.Error(), nextRetryAt); markErr != nil {
			d.logger.Error().Err(markErr).Str("event_id", claimed.ID.String()).Msg("failed to record publish failure")
		}

		return
	}

	if deadLettered {
		if markErr := d.repo.MarkDeadLettered(ctx, claimed.ID.String(), "max retries exceeded"); markErr != nil {
			d.logger.Error().Err(markErr).Str("event_id", claimed.ID.String()).Msg("failed to record dead-letter")
		}

		return
	}

	if published {
		if markErr := d.repo.MarkPublished(ctx, claimed.ID.String()); markErr != nil {
			d.logger.Error().Err(markErr).Str("event_id", claimed.ID.String()).Msg("failed to mark event published")
		}
	}
}
