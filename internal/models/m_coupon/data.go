package m_coupon

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the coupons table.
type Data struct {
	Code          string           `spanner:"code"`
	DiscountType  string           `spanner:"discount_type"`
	DiscountValue int64            `spanner:"discount_value"`
	MaxDiscount   int64            `spanner:"max_discount"`
	MinOrderValue int64            `spanner:"min_order_value"`
	UsageLimit    int64            `spanner:"usage_limit"`
	UsedCount     int64            `spanner:"used_count"`
	ValidFrom     time.Time        `spanner:"valid_from"`
	ValidUntil    spanner.NullTime `spanner:"valid_until"`
	IsActive      bool             `spanner:"is_active"`
	CreatedAt     time.Time        `spanner:"created_at"`
	UpdatedAt     time.Time        `spanner:"updated_at"`
}
