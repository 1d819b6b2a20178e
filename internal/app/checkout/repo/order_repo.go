package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_order"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// OrderRepo implements OrderRepository over the orders table.
type OrderRepo struct {
	model *m_order.Model
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo() contracts.OrderRepository {
	return &OrderRepo{model: m_order.NewModel()}
}

// InsertMut creates a mutation for inserting a new order snapshot. Plain
// Insert: a second write under the same order id must abort the transaction.
func (r *OrderRepo) InsertMut(order *domain.Order) (*spanner.Mutation, error) {
	data, err := orderDomainToData(order)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation writing only the fields the aggregate marked
// dirty. Returns nil when nothing changed.
func (r *OrderRepo) UpdateMut(order *domain.Order) *spanner.Mutation {
	if !order.Changes().HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	for _, field := range order.Changes().DirtyFields() {
		switch field {
		case domain.FieldStatus:
			updates[m_order.Status] = string(order.Status())
		case domain.FieldTrackingCode:
			updates[m_order.TrackingCode] = spanner.NullString{StringVal: order.TrackingCode(), Valid: order.TrackingCode() != ""}
		case domain.FieldDeliveredAt:
			updates[m_order.DeliveredAt] = nullTimeFromPtr(order.DeliveredAt())
		case domain.FieldCancelledAt:
			updates[m_order.CancelledAt] = nullTimeFromPtr(order.CancelledAt())
		}
	}

	return r.model.UpdateMut(order.ID(), updates)
}

// GetByID retrieves an order by id, reconstructing the aggregate.
func (r *OrderRepo) GetByID(ctx context.Context, tx contracts.Tx, orderID string) (*domain.Order, error) {
	row, err := tx.ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, r.model.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}

	return orderDataToDomain(&data)
}

// GetByRequestID retrieves the order created under an idempotency key. The
// lookup runs inside the placing transaction, so a key that already committed
// is always visible here.
func (r *OrderRepo) GetByRequestID(ctx context.Context, tx contracts.Tx, requestID string) (*domain.Order, error) {
	stmt := query.From(m_order.TableName).
		Select(r.model.Columns()...).
		Where(query.Eq(m_order.RequestID, requestID)).
		Limit(1).
		Build()

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order by request id: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}

	return orderDataToDomain(&data)
}

func orderDomainToData(order *domain.Order) (*m_order.Data, error) {
	items, err := encodeOrderLines(order.Lines())
	if err != nil {
		return nil, err
	}

	return &m_order.Data{
		OrderID:       order.ID(),
		OrderNumber:   order.OrderNumber(),
		RequestID:     order.RequestID(),
		UserID:        order.UserID(),
		UserName:      order.UserName(),
		UserEmail:     order.UserEmail(),
		Items:         items,
		Subtotal:      order.Subtotal().Amount(),
		Discount:      order.Discount().Amount(),
		ShippingCost:  order.ShippingCost().Amount(),
		Total:         order.Total().Amount(),
		DepositDue:    order.DepositDue().Amount(),
		CouponCode:    nullStringFrom(order.CouponCode()),
		AffiliateCode: nullStringFrom(order.AffiliateCode()),
		PaymentMethod: order.PaymentMethod(),
		TrackingCode:  nullStringFrom(order.TrackingCode()),
		Status:        string(order.Status()),
		DeliveredAt:   nullTimeFromPtr(order.DeliveredAt()),
		CancelledAt:   nullTimeFromPtr(order.CancelledAt()),
	}, nil
}

func orderDataToDomain(data *m_order.Data) (*domain.Order, error) {
	lines, err := decodeOrderLines(data.Items)
	if err != nil {
		return nil, err
	}

	var deliveredAt, cancelledAt *time.Time
	if data.DeliveredAt.Valid {
		t := data.DeliveredAt.Time.UTC()
		deliveredAt = &t
	}
	if data.CancelledAt.Valid {
		t := data.CancelledAt.Time.UTC()
		cancelledAt = &t
	}

	return domain.ReconstructOrder(
		data.OrderID,
		data.OrderNumber,
		data.RequestID,
		data.UserID,
		data.UserName,
		data.UserEmail,
		lines,
		domain.NewMoney(data.Subtotal),
		domain.NewMoney(data.Discount),
		domain.NewMoney(data.ShippingCost),
		domain.NewMoney(data.Total),
		domain.NewMoney(data.DepositDue),
		data.CouponCode.StringVal,
		data.AffiliateCode.StringVal,
		data.PaymentMethod,
		data.TrackingCode.StringVal,
		domain.OrderStatus(data.Status),
		data.CreatedAt.UTC(),
		data.UpdatedAt.UTC(),
		deliveredAt,
		cancelledAt,
	), nil
}

// encodeOrderLines stores the frozen line snapshot as a JSON column.
func encodeOrderLines(lines []domain.OrderLine) (spanner.NullJSON, error) {
	raw, err := json.Marshal(lines)
	if err != nil {
		return spanner.NullJSON{}, fmt.Errorf("failed to encode order items: %w", err)
	}
	return spanner.NullJSON{Value: json.RawMessage(raw), Valid: true}, nil
}

// decodeOrderLines round-trips the column value through JSON: Spanner hands
// back generic decoded JSON, not our struct.
func decodeOrderLines(items spanner.NullJSON) ([]domain.OrderLine, error) {
	if !items.Valid {
		return nil, nil
	}
	raw, err := json.Marshal(items.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode order items: %w", err)
	}
	var lines []domain.OrderLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return lines, nil
}

func nullStringFrom(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullTimeFromPtr(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}
