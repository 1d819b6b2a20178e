package m_coupon

// Field name constants for the coupons table. Codes are stored upper-cased;
// code is the primary key.
const (
	TableName = "coupons"

	Code          = "code"
	DiscountType  = "discount_type"
	DiscountValue = "discount_value"
	MaxDiscount   = "max_discount"
	MinOrderValue = "min_order_value"
	UsageLimit    = "usage_limit"
	UsedCount     = "used_count"
	ValidFrom     = "valid_from"
	ValidUntil    = "valid_until"
	IsActive      = "is_active"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)
