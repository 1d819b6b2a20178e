package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID          = "product_id"
	Name               = "name"
	BasePrice          = "base_price"
	Stock              = "stock"
	WeightKG           = "weight_kg"
	ShippingMode       = "shipping_mode"
	ShippingCost       = "shipping_cost"
	FlashSaleID        = "flash_sale_id"
	PreOrderDepositPct = "preorder_deposit_pct"
	PreOrderArrival    = "preorder_arrival"
	CreatedAt          = "created_at"
	UpdatedAt          = "updated_at"
)
