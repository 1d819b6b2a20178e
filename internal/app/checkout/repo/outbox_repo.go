package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_outbox"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) contracts.OutboxRepository {
	return &OutboxRepo{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	// Wrap payload string as JSON for Spanner
	payload := spanner.NullJSON{Value: event.Payload, Valid: event.Payload != ""}

	data := &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
		RetryCount:  event.RetryCount,
	}

	return r.model.InsertMut(data)
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// ListPending returns up to limit unprocessed events, oldest first. Uses a
// single-use read: the relay is the only writer of pending rows' status.
func (r *OutboxRepo) ListPending(ctx context.Context, limit int64) ([]*contracts.OutboxEvent, error) {
	stmt := query.From(m_outbox.TableName).
		Select(m_outbox.EventID, m_outbox.EventType, m_outbox.AggregateID,
			m_outbox.Payload, m_outbox.Status, m_outbox.RetryCount, m_outbox.CreatedAt).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(limit).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*contracts.OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list pending events: %w", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse outbox event: %w", err)
		}
		events = append(events, outboxDataToEvent(&data))
	}

	return events, nil
}

// MarkProcessedMut flags an event as delivered.
func (r *OutboxRepo) MarkProcessedMut(eventID string, processedAt time.Time) *spanner.Mutation {
	return r.model.UpdateMut(eventID, map[string]interface{}{
		m_outbox.Status:      m_outbox.StatusCompleted,
		m_outbox.ProcessedAt: spanner.NullTime{Time: processedAt, Valid: true},
	})
}

// maxRetries is how many delivery attempts an event gets before it is
// parked as failed and left to the cleanup job.
const maxRetries = 10

// MarkFailedMut records a delivery failure and bumps the retry count. The
// row stays pending so the next poll retries it, until the attempts run out.
func (r *OutboxRepo) MarkFailedMut(event *contracts.OutboxEvent, errMsg string) *spanner.Mutation {
	updates := map[string]interface{}{
		m_outbox.RetryCount:   event.RetryCount + 1,
		m_outbox.ErrorMessage: spanner.NullString{StringVal: errMsg, Valid: errMsg != ""},
	}
	if event.RetryCount+1 >= maxRetries {
		updates[m_outbox.Status] = m_outbox.StatusFailed
	}
	return r.model.UpdateMut(event.EventID, updates)
}

func outboxDataToEvent(data *m_outbox.Data) *contracts.OutboxEvent {
	event := &contracts.OutboxEvent{
		EventID:     data.EventID,
		EventType:   data.EventType,
		AggregateID: data.AggregateID,
		Status:      data.Status,
		RetryCount:  data.RetryCount,
		CreatedAt:   data.CreatedAt.UTC(),
	}
	if data.Payload.Valid {
		if s, ok := data.Payload.Value.(string); ok {
			event.Payload = s
		} else if raw, err := json.Marshal(data.Payload.Value); err == nil {
			event.Payload = string(raw)
		}
	}
	return event
}
