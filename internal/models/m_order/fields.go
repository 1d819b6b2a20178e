package m_order

// Field name constants for the orders table. Items are the immutable order
// snapshot, stored as a JSON column; request_id carries the client-supplied
// idempotency key and is backed by a unique index.
const (
	TableName = "orders"

	OrderID       = "order_id"
	OrderNumber   = "order_number"
	RequestID     = "request_id"
	UserID        = "user_id"
	UserName      = "user_name"
	UserEmail     = "user_email"
	Items         = "items"
	Subtotal      = "subtotal"
	Discount      = "discount"
	ShippingCost  = "shipping_cost"
	Total         = "total"
	DepositDue    = "deposit_due"
	CouponCode    = "coupon_code"
	AffiliateCode = "affiliate_code"
	PaymentMethod = "payment_method"
	TrackingCode  = "tracking_code"
	Status        = "status"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
	DeliveredAt   = "delivered_at"
	CancelledAt   = "cancelled_at"
)
