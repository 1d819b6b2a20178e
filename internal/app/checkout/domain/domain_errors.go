package domain

import "errors"

// Domain errors as sentinel values
var (
	// Lookup errors
	ErrProductNotFound   = errors.New("product not found")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrAffiliateNotFound = errors.New("affiliate not found")
	ErrFlashSaleNotFound = errors.New("flash sale not found")

	// Cart validation errors (recoverable by the caller)
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart has no lines")
	ErrInvalidRequest    = errors.New("invalid request")

	// Commit-time reservation failure. Distinguished from ErrInsufficientStock
	// so the client knows to re-fetch quantities and retry the checkout.
	ErrStockChanged = errors.New("stock changed between validation and commit")

	// Coupon rejection reasons
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponExpired      = errors.New("coupon is outside its validity window")
	ErrCouponBelowMinimum = errors.New("cart subtotal is below the coupon minimum")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")

	// Order lifecycle errors
	ErrIllegalTransition   = errors.New("illegal order status transition")
	ErrUnknownStatus       = errors.New("unknown order status")
	ErrDuplicateCommission = errors.New("commission already recorded for order")

	// Money errors
	ErrFractionalAmount = errors.New("amount must be in whole minor currency units")
	ErrMoneyOverflow    = errors.New("amount exceeds storage capacity")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)

// IsCouponRejection reports whether err is one of the coupon rejection
// reasons. Rejections are surfaced to the caller with the reason attached;
// they never abort a quote without one.
func IsCouponRejection(err error) bool {
	return errors.Is(err, ErrCouponInactive) ||
		errors.Is(err, ErrCouponExpired) ||
		errors.Is(err, ErrCouponBelowMinimum) ||
		errors.Is(err, ErrCouponExhausted) ||
		errors.Is(err, ErrCouponNotFound)
}
