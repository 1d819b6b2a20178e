package domain

import (
	"strings"
	"time"
)

// DiscountType selects how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a discount code. UsedCount is consumed only when an order that
// applied the code actually commits, never on validation alone, so abandoned
// carts do not burn usages. Invariant: UsedCount <= UsageLimit when a limit
// is set.
type Coupon struct {
	Code          string
	DiscountType  DiscountType
	DiscountValue int64 // percent for percentage coupons, minor units for fixed
	MaxDiscount   Money // zero means uncapped
	MinOrderValue Money
	UsageLimit    int64 // zero means unlimited
	UsedCount     int64
	ValidFrom     time.Time
	ValidUntil    time.Time
	Active        bool
}

// NormalizeCouponCode upper-cases a code the way the storefront always
// matched them.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks the coupon against a cart subtotal at time now and returns
// the discount amount. Rules run in a fixed order and the first failure wins:
// active, validity window, minimum order value, usage limit.
func (c *Coupon) Validate(subtotal Money, now time.Time) (Money, error) {
	if !c.Active {
		return Money{}, ErrCouponInactive
	}
	if now.Before(c.ValidFrom) || (!c.ValidUntil.IsZero() && now.After(c.ValidUntil)) {
		return Money{}, ErrCouponExpired
	}
	if subtotal.LessThan(c.MinOrderValue) {
		return Money{}, ErrCouponBelowMinimum
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return Money{}, ErrCouponExhausted
	}
	return c.discountFor(subtotal), nil
}

// HasHeadroom reports whether one more usage fits under the limit. Checked
// again at commit time so the limit holds under concurrent checkouts.
func (c *Coupon) HasHeadroom() bool {
	return c.UsageLimit == 0 || c.UsedCount < c.UsageLimit
}

// discountFor computes the raw discount, applies the percentage cap, and
// clamps the result into [0, subtotal]. Shipping is never part of the base.
func (c *Coupon) discountFor(subtotal Money) Money {
	var discount Money
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal.PercentOf(c.DiscountValue)
		if c.MaxDiscount.IsPositive() {
			discount = discount.Min(c.MaxDiscount)
		}
	case DiscountFixed:
		discount = NewMoney(c.DiscountValue)
	default:
		return Money{}
	}
	if discount.IsNegative() {
		return Money{}
	}
	return discount.Min(subtotal)
}
