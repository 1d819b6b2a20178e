package m_flash_sale

import "time"

// Data represents the database model for the flash_sales table.
type Data struct {
	FlashSaleID        string    `spanner:"flash_sale_id"`
	ProductID          string    `spanner:"product_id"`
	SalePrice          int64     `spanner:"sale_price"`
	DiscountPercentage int64     `spanner:"discount_percentage"`
	StockLimit         int64     `spanner:"stock_limit"`
	StockSold          int64     `spanner:"stock_sold"`
	StartDate          time.Time `spanner:"start_date"`
	EndDate            time.Time `spanner:"end_date"`
	IsActive           bool      `spanner:"is_active"`
	CreatedAt          time.Time `spanner:"created_at"`
	UpdatedAt          time.Time `spanner:"updated_at"`
}
