package m_coupon

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the coupons table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		Code,
		DiscountType,
		DiscountValue,
		MaxDiscount,
		MinOrderValue,
		UsageLimit,
		UsedCount,
		ValidFrom,
		ValidUntil,
		IsActive,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a coupon.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.Columns(),
		[]interface{}{
			data.Code,
			data.DiscountType,
			data.DiscountValue,
			data.MaxDiscount,
			data.MinOrderValue,
			data.UsageLimit,
			data.UsedCount,
			data.ValidFrom,
			data.ValidUntil,
			data.IsActive,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateUsedCountMut creates a Spanner mutation that writes the used_count
// counter.
func (m *Model) UpdateUsedCountMut(code string, usedCount int64) *spanner.Mutation {
	return spanner.Update(TableName, []string{Code, UsedCount, UpdatedAt},
		[]interface{}{code, usedCount, spanner.CommitTimestamp})
}
