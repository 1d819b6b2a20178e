// Package relay drains the transactional outbox to Kafka. Events are written
// to the outbox in the same Spanner commit as the state change that produced
// them; the relay polls for pending rows, publishes them, and marks them
// completed. Delivery is therefore at-least-once and consumers dedupe on
// event_id.
package relay

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/committer"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/metrics"
)

// Publisher is the broker surface the relay needs. *kafka.Writer satisfies
// it.
type Publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Relay polls the outbox and publishes pending events.
type Relay struct {
	outboxRepo   contracts.OutboxRepository
	publisher    Publisher
	committer    *committer.Committer
	clock        clock.Clock
	logger       *zap.Logger
	batchSize    int64
	pollInterval time.Duration
}

// NewRelay creates a new Relay.
func NewRelay(
	outboxRepo contracts.OutboxRepository,
	publisher Publisher,
	committer *committer.Committer,
	clock clock.Clock,
	logger *zap.Logger,
	batchSize int64,
	pollInterval time.Duration,
) *Relay {
	return &Relay{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		committer:    committer,
		clock:        clock,
		logger:       logger,
		batchSize:    batchSize,
		pollInterval: pollInterval,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

// Drain publishes one batch of pending events. Keyed by aggregate id so one
// order's events stay in one partition, preserving their relative order.
func (r *Relay) Drain(ctx context.Context) error {
	events, err := r.outboxRepo.ListPending(ctx, r.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	plan := committer.NewPlan()
	for _, event := range events {
		msg := kafka.Message{
			Key:   []byte(event.AggregateID),
			Value: []byte(event.Payload),
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.EventID)},
				{Key: "event_type", Value: []byte(event.EventType)},
			},
		}

		if err := r.publisher.WriteMessages(ctx, msg); err != nil {
			r.logger.Warn("failed to publish event",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
				zap.Error(err))
			metrics.EventsRelayed.WithLabelValues("error").Inc()
			plan.Add(r.outboxRepo.MarkFailedMut(event, err.Error()))
			continue
		}

		metrics.EventsRelayed.WithLabelValues("ok").Inc()
		plan.Add(r.outboxRepo.MarkProcessedMut(event.EventID, r.clock.Now()))
	}

	return r.committer.Apply(ctx, plan)
}
