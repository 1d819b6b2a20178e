package m_flash_sale

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the flash_sales table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list for reads.
func (m *Model) Columns() []string {
	return []string{
		FlashSaleID,
		ProductID,
		SalePrice,
		DiscountPercentage,
		StockLimit,
		StockSold,
		StartDate,
		EndDate,
		IsActive,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a flash sale.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.Columns(),
		[]interface{}{
			data.FlashSaleID,
			data.ProductID,
			data.SalePrice,
			data.DiscountPercentage,
			data.StockLimit,
			data.StockSold,
			data.StartDate,
			data.EndDate,
			data.IsActive,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStockSoldMut creates a Spanner mutation that writes the stock_sold
// counter.
func (m *Model) UpdateStockSoldMut(flashSaleID string, stockSold int64) *spanner.Mutation {
	return spanner.Update(TableName, []string{FlashSaleID, StockSold, UpdatedAt},
		[]interface{}{flashSaleID, stockSold, spanner.CommitTimestamp})
}
