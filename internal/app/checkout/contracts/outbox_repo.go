package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	RetryCount  int64
	CreatedAt   time.Time
}

// OutboxRepository defines the transactional outbox: events are written in
// the same commit as the state change that produced them, and the relay
// drains them to the broker afterwards.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event.
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata.
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent

	// ListPending returns up to limit unprocessed events, oldest first.
	ListPending(ctx context.Context, limit int64) ([]*OutboxEvent, error)

	// MarkProcessedMut flags an event as delivered.
	MarkProcessedMut(eventID string, processedAt time.Time) *spanner.Mutation

	// MarkFailedMut records a delivery failure and bumps the retry count.
	MarkFailedMut(event *OutboxEvent, errMsg string) *spanner.Mutation
}
