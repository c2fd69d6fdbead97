package fanout

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/pkg/queue"
)

const relayQueueName = "fanout_relay"

// Subscriber binds a dedicated, non-durable queue to every topic named in
// FanoutConfig.SubscribedTopics and tees each delivery onto the Hub. It
// satisfies ports.BackgroundProcessor.
type Subscriber struct {
	hub      *Hub
	queue    infrastructure.Queue
	queueCfg config.QueueConfig
	fanCfg   config.FanoutConfig
	logger   infrastructure.Logger
}

func NewSubscriber(hub *Hub, q infrastructure.Queue, queueCfg config.QueueConfig, fanCfg config.FanoutConfig, logger infrastructure.Logger) *Subscriber {
	return &Subscriber{hub: hub, queue: q, queueCfg: queueCfg, fanCfg: fanCfg, logger: logger}
}

func (s *Subscriber) setupInfrastructure() error {
	if err := s.queue.DeclareExchange(s.queueCfg.ExchangeName, "topic", true, false); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := s.queue.DeclareQueue(relayQueueName, false, true); err != nil {
		return fmt.Errorf("failed to declare relay queue: %w", err)
	}

	for _, topic := range s.fanCfg.SubscribedTopics {
		if err := s.queue.BindQueue(relayQueueName, topic, s.queueCfg.ExchangeName); err != nil {
			return fmt.Errorf("failed to bind relay queue to %q: %w", topic, err)
		}
	}

	return nil
}

// Start subscribes and blocks until ctx is cancelled (spec.md §4.8, §5).
func (s *Subscriber) Start(ctx context.Context) error {
	if err := s.setupInfrastructure(); err != nil {
		return err
	}

	s.logger.Info().Strs("topics", s.fanCfg.SubscribedTopics).Msg("starting fanout relay subscriber")

	return s.queue.Consume(ctx, relayQueueName, "fanout-relay", s.handle)
}

func (s *Subscriber) handle(ctx context.Context, msg queue.Message, ctrl *queue.MsgController) error {
	var payload any
	if err := msg.Unmarshal(&payload); err != nil {
		s.logger.Warn().Err(err).Msg("fanout: undecodable message, skipping")
		return ctrl.Ack(msg)
	}

	s.hub.Broadcast(Message{Topic: msg.RoutingKey(), Payload: payload})

	return ctrl.Ack(msg)
}
