package m_commission

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the
// affiliate_commissions table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		CommissionID,
		AffiliateID,
		OrderID,
		OrderTotal,
		CommissionRate,
		CommissionAmount,
		Status,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a commission. Plain
// Insert so a duplicate commission id fails instead of silently overwriting.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.Columns(),
		[]interface{}{
			data.CommissionID,
			data.AffiliateID,
			data.OrderID,
			data.OrderTotal,
			data.CommissionRate,
			data.CommissionAmount,
			data.Status,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStatusMut creates a Spanner mutation that writes the status column.
func (m *Model) UpdateStatusMut(commissionID string, status string) *spanner.Mutation {
	return spanner.Update(TableName, []string{CommissionID, Status, UpdatedAt},
		[]interface{}{commissionID, status, spanner.CommitTimestamp})
}
