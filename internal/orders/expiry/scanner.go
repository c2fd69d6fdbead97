// Package expiry implements C7: a periodic worker that transitions orders
// past their deadline to Expired, reusing the ticker-driven batch idiom
// the teacher uses for its outbox processor
// (internal/adapters/outbox/processor.go) since the pack has no separate
// periodic-scanner precedent.
package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	"github.com/architeacher/svc-web-analyzer/internal/orders"
	"github.com/google/uuid"
)

const reasonTimeout = "timeout"

type Scanner struct {
	orders orders.Repository
	outbox outbox.Repository
	cfg    config.ExpiryConfig
	logger infrastructure.Logger
}

func NewScanner(ordersRepo orders.Repository, outboxRepo outbox.Repository, cfg config.ExpiryConfig, logger infrastructure.Logger) *Scanner {
	return &Scanner{orders: ordersRepo, outbox: outboxRepo, cfg: cfg, logger: logger}
}

// Start runs the scan loop until ctx is cancelled. A tight error loop is
// avoided by sleeping one poll interval after any cycle-level failure
// (spec.md §4.7), same as the success path.
func (s *Scanner) Start(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.cfg.ScanInterval).Int("batch", s.cfg.BatchSize).
		Msg("starting expiry scanner")

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("expiry scanner shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := s.scanOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("expiry scan cycle failed")
			}
		}
	}
}

func (s *Scanner) scanOnce(ctx context.Context) error {
	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	expirable, err := s.orders.FindExpirableInTx(ctx, tx, now, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to find expirable orders: %w", err)
	}

	for _, order := range expirable {
		oldStatus := order.Status
		if !order.Expire(now) {
			continue
		}

		if err := s.orders.UpdateInTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to expire order %s: %w", order.ID, err)
		}

		event := &sharedDomain.OutboxEvent{
			AggregateID:   order.ID,
			AggregateType: sharedDomain.AggregateTypeOrder,
			EventType:     sharedDomain.EventOrderCancelled,
			MaxRetries:    defaultMaxRetries,
			Status:        sharedDomain.OutboxStatusPending,
			Payload: sharedDomain.OrderStatusChangedPayload{
				EventID:    uuid.NewSHA1(scannerNamespace, []byte(order.ID.String()+now.String())),
				OccurredAt: now,
				OrderID:    order.ID,
				UserID:     order.UserID,
				OldStatus:  string(oldStatus),
				NewStatus:  string(order.Status),
				Reason:     reasonTimeout,
			},
			CreatedAt: now,
		}

		if err := s.outbox.SaveInTx(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to append expiry outbox event: %w", err)
		}
	}

	if len(expirable) > 0 {
		s.logger.Info().Int("count", len(expirable)).Msg("expired orders past deadline")
	}

	return tx.Commit()
}

const defaultMaxRetries = 5

var scannerNamespace = uuid.MustParse("f4a5b6c7-8d9e-5f0a-1b2c-3d4e5f6a7b8c")
