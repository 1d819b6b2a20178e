package m_flash_sale

// Field name constants for the flash_sales table.
const (
	TableName = "flash_sales"

	FlashSaleID        = "flash_sale_id"
	ProductID          = "product_id"
	SalePrice          = "sale_price"
	DiscountPercentage = "discount_percentage"
	StockLimit         = "stock_limit"
	StockSold          = "stock_sold"
	StartDate          = "start_date"
	EndDate            = "end_date"
	IsActive           = "is_active"
	CreatedAt          = "created_at"
	UpdatedAt          = "updated_at"
)
