package domain

import (
	"fmt"
	"math"
)

// Money represents a monetary amount in integer minor currency units (AOA
// kwanzas carry no subunit, so one unit equals one kwanza). All pricing
// arithmetic in the checkout pipeline happens on integers; fractional input
// is rejected at the API boundary, never rounded mid-pipeline.
type Money struct {
	amount int64
}

// NewMoney creates a Money value from minor currency units.
func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

// MoneyFromFloat converts a boundary value to Money. It fails if the value
// carries a fractional part; checkout never rounds silently.
func MoneyFromFloat(v float64) (Money, error) {
	if v != math.Trunc(v) {
		return Money{}, fmt.Errorf("%w: %v has a fractional part", ErrFractionalAmount, v)
	}
	if v > math.MaxInt64 || v < math.MinInt64 {
		return Money{}, fmt.Errorf("%w: %v", ErrMoneyOverflow, v)
	}
	return Money{amount: int64(v)}, nil
}

// Amount returns the value in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

// MultiplyQty returns m * qty, for extending a unit price over a cart line.
func (m Money) MultiplyQty(qty int64) Money {
	return Money{amount: m.amount * qty}
}

// PercentOf returns percent% of m, truncated toward zero. Truncation always
// favors the customer on discounts and the store on deposits, which matches
// how the storefront has always rounded.
func (m Money) PercentOf(percent int64) Money {
	return Money{amount: m.amount * percent / 100}
}

// ClampFloor returns m, raised to floor if it is below it.
func (m Money) ClampFloor(floor Money) Money {
	if m.amount < floor.amount {
		return floor
	}
	return m
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if m.amount < other.amount {
		return m
	}
	return other
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsPositive returns true if the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// LessThan returns true if m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// GreaterThan returns true if m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// Equals returns true if both amounts match.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount
}

// String renders the amount with the kwanza suffix for logs.
func (m Money) String() string {
	return fmt.Sprintf("%d Kz", m.amount)
}
