package m_affiliate

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the affiliates table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		AffiliateID,
		Code,
		CommissionRate,
		IsActive,
		TotalSales,
		TotalCommission,
		PendingCommission,
		PaidCommission,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting an affiliate.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.Columns(),
		[]interface{}{
			data.AffiliateID,
			data.Code,
			data.CommissionRate,
			data.IsActive,
			data.TotalSales,
			data.TotalCommission,
			data.PendingCommission,
			data.PaidCommission,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStatsMut creates a Spanner mutation that writes the denormalized
// totals. New values must come from reads inside the same transaction.
func (m *Model) UpdateStatsMut(affiliateID string, totalSales, totalCommission, pendingCommission int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{AffiliateID, TotalSales, TotalCommission, PendingCommission, UpdatedAt},
		[]interface{}{affiliateID, totalSales, totalCommission, pendingCommission, spanner.CommitTimestamp})
}
