package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		ProductID,
		Name,
		BasePrice,
		Stock,
		WeightKG,
		ShippingMode,
		ShippingCost,
		FlashSaleID,
		PreOrderDepositPct,
		PreOrderArrival,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a product. Used by
// fixtures and the catalog importer, never by checkout itself.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.Columns(),
		[]interface{}{
			data.ProductID,
			data.Name,
			data.BasePrice,
			data.Stock,
			data.WeightKG,
			data.ShippingMode,
			data.ShippingCost,
			data.FlashSaleID,
			data.PreOrderDepositPct,
			data.PreOrderArrival,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStockMut creates a Spanner mutation that writes the stock column.
// The new value must have been computed inside the same read-write
// transaction that buffers this mutation.
func (m *Model) UpdateStockMut(productID string, stock int64) *spanner.Mutation {
	return spanner.Update(TableName, []string{ProductID, Stock, UpdatedAt},
		[]interface{}{productID, stock, spanner.CommitTimestamp})
}
