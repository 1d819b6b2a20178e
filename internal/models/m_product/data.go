package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table. The catalog
// service owns the row; the checkout engine reads it and writes only the
// stock column.
type Data struct {
	ProductID          string            `spanner:"product_id"`
	Name               string            `spanner:"name"`
	BasePrice          int64             `spanner:"base_price"`
	Stock              int64             `spanner:"stock"`
	WeightKG           float64           `spanner:"weight_kg"`
	ShippingMode       string            `spanner:"shipping_mode"`
	ShippingCost       int64             `spanner:"shipping_cost"`
	FlashSaleID        spanner.NullString `spanner:"flash_sale_id"`
	PreOrderDepositPct spanner.NullInt64  `spanner:"preorder_deposit_pct"`
	PreOrderArrival    spanner.NullTime   `spanner:"preorder_arrival"`
	CreatedAt          time.Time         `spanner:"created_at"`
	UpdatedAt          time.Time         `spanner:"updated_at"`
}
