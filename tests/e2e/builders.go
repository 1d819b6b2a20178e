package e2e

import (
	"github.com/google/uuid"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/place_order"
)

// OrderBuilder helps create placement requests for tests with a fluent
// interface.
type OrderBuilder struct {
	requestID     string
	userID        string
	couponCode    string
	affiliateCode string
	items         []domain.CartItem
}

// NewOrderBuilder creates a new builder with default values.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		requestID: uuid.New().String(),
		userID:    "user-1",
	}
}

// WithRequestID pins the idempotency key.
func (b *OrderBuilder) WithRequestID(requestID string) *OrderBuilder {
	b.requestID = requestID
	return b
}

// WithUser sets the buyer.
func (b *OrderBuilder) WithUser(userID string) *OrderBuilder {
	b.userID = userID
	return b
}

// WithCoupon sets the coupon code.
func (b *OrderBuilder) WithCoupon(code string) *OrderBuilder {
	b.couponCode = code
	return b
}

// WithAffiliate sets the referral code.
func (b *OrderBuilder) WithAffiliate(code string) *OrderBuilder {
	b.affiliateCode = code
	return b
}

// WithItem appends a cart line.
func (b *OrderBuilder) WithItem(productID string, quantity int64) *OrderBuilder {
	b.items = append(b.items, domain.CartItem{ProductID: productID, Quantity: quantity})
	return b
}

// Build creates the place_order.Request.
func (b *OrderBuilder) Build() *place_order.Request {
	return &place_order.Request{
		RequestID:     b.requestID,
		UserID:        b.userID,
		UserName:      "Test User",
		UserEmail:     "test@example.com",
		PaymentMethod: "transfer",
		AffiliateCode: b.affiliateCode,
		Items:         b.items,
		CouponCode:    b.couponCode,
	}
}
