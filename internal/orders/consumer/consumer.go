// Package consumer implements C5: an idempotent cross-service consumer
// that subscribes to users.status-changed and dispatches each record to
// the C6 domain reaction handler, grounded on the teacher's
// subscriber_service.go (process-then-mark-complete shape) and
// pkg/queue's MessageHandler contract.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/orders/reaction"
	"github.com/architeacher/svc-web-analyzer/pkg/queue"
	"github.com/google/uuid"
)

type Consumer struct {
	queue    infrastructure.Queue
	cache    *infrastructure.KeydbClient
	reaction *reaction.Service
	cfg      config.ConsumerConfig
	queueCfg config.QueueConfig
	logger   infrastructure.Logger
}

func NewConsumer(
	q infrastructure.Queue,
	cache *infrastructure.KeydbClient,
	reactionService *reaction.Service,
	cfg config.ConsumerConfig,
	queueCfg config.QueueConfig,
	logger infrastructure.Logger,
) *Consumer {
	return &Consumer{queue: q, cache: cache, reaction: reactionService, cfg: cfg, queueCfg: queueCfg, logger: logger}
}

// Start subscribes to cfg.SubscribedTopics under a stable consumer group
// and blocks until ctx is cancelled (spec.md §4.5, §5).
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().Strs("topics", c.cfg.SubscribedTopics).Str("group", c.cfg.ConsumerGroup).
		Msg("starting cross-service consumer")

	return c.queue.Consume(ctx, c.queueCfg.QueueName, c.cfg.ConsumerGroup, c.handle)
}

func (c *Consumer) handle(ctx context.Context, msg queue.Message, ctrl *queue.MsgController) error {
	var event sharedDomain.UserStatusChangedPayload
	if err := msg.Unmarshal(&event); err != nil {
		c.logger.Warn().Err(err).Msg("undecodable message, skipping")
		return ctrl.Ack(msg)
	}

	if event.EventID == uuid.Nil || event.UserID == uuid.Nil {
		c.logger.Warn().Msg("empty event payload, skipping")
		return ctrl.Ack(msg)
	}

	dedupKey := "consumed:" + event.EventID.String()
	if c.cache != nil {
		seen, err := c.cache.SeenBefore(ctx, dedupKey, c.cfg.DedupTTL)
		if err != nil {
			c.logger.Warn().Err(err).Msg("dedup cache unavailable, falling back to transactional idempotence")
		} else if seen {
			c.logger.Debug().Str("event_id", event.EventID.String()).Msg("duplicate delivery, skipping fast-path")
			return ctrl.Ack(msg)
		}
	}

	scopedCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := c.reaction.HandleUserStatusChanged(scopedCtx, event); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("reaction handling cancelled: %w", err)
		}

		c.logger.Error().Err(err).Str("event_id", event.EventID.String()).
			Msg("reaction handler failed, leaving record unacknowledged for redelivery")

		return err
	}

	return ctrl.Ack(msg)
}
