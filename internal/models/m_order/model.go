package m_order

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the orders table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		OrderID,
		OrderNumber,
		RequestID,
		UserID,
		UserName,
		UserEmail,
		Items,
		Subtotal,
		Discount,
		ShippingCost,
		Total,
		DepositDue,
		CouponCode,
		AffiliateCode,
		PaymentMethod,
		TrackingCode,
		Status,
		CreatedAt,
		UpdatedAt,
		DeliveredAt,
		CancelledAt,
	}
}

// InsertMut creates a Spanner mutation for inserting an order. Plain Insert:
// an order id must never be written twice.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.Columns(),
		[]interface{}{
			data.OrderID,
			data.OrderNumber,
			data.RequestID,
			data.UserID,
			data.UserName,
			data.UserEmail,
			data.Items,
			data.Subtotal,
			data.Discount,
			data.ShippingCost,
			data.Total,
			data.DepositDue,
			data.CouponCode,
			data.AffiliateCode,
			data.PaymentMethod,
			data.TrackingCode,
			data.Status,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
			data.DeliveredAt,
			data.CancelledAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific order fields.
func (m *Model) UpdateMut(orderID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, OrderID)
	values = append(values, orderID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
