package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the orders table.
type Data struct {
	OrderID       string             `spanner:"order_id"`
	OrderNumber   string             `spanner:"order_number"`
	RequestID     string             `spanner:"request_id"`
	UserID        string             `spanner:"user_id"`
	UserName      string             `spanner:"user_name"`
	UserEmail     string             `spanner:"user_email"`
	Items         spanner.NullJSON   `spanner:"items"`
	Subtotal      int64              `spanner:"subtotal"`
	Discount      int64              `spanner:"discount"`
	ShippingCost  int64              `spanner:"shipping_cost"`
	Total         int64              `spanner:"total"`
	DepositDue    int64              `spanner:"deposit_due"`
	CouponCode    spanner.NullString `spanner:"coupon_code"`
	AffiliateCode spanner.NullString `spanner:"affiliate_code"`
	PaymentMethod string             `spanner:"payment_method"`
	TrackingCode  spanner.NullString `spanner:"tracking_code"`
	Status        string             `spanner:"status"`
	CreatedAt     time.Time          `spanner:"created_at"`
	UpdatedAt     time.Time          `spanner:"updated_at"`
	DeliveredAt   spanner.NullTime   `spanner:"delivered_at"`
	CancelledAt   spanner.NullTime   `spanner:"cancelled_at"`
}
