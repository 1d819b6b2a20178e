package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommission(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	affiliate := &Affiliate{ID: "a1", Code: "ANA2025", CommissionRate: 5, Active: true}

	order, err := NewOrder("o1", "KZ-20250615-ABC123", "req-1", &Quote{
		Lines:    []QuoteLine{{ProductID: "p1", UnitPrice: NewMoney(45000), Quantity: 1, LineTotal: NewMoney(45000)}},
		Subtotal: NewMoney(45000),
		Total:    NewMoney(45000),
	}, CustomerInfo{UserID: "u1", AffiliateCode: "ANA2025"}, now)
	require.NoError(t, err)

	commission := NewCommission("c1", affiliate, order, now)

	assert.Equal(t, "a1", commission.AffiliateID)
	assert.Equal(t, "o1", commission.OrderID)
	assert.Equal(t, int64(45000), commission.OrderTotal.Amount())
	assert.Equal(t, int64(5), commission.CommissionRate)
	// 5% of 45000, truncated
	assert.Equal(t, int64(2250), commission.Amount.Amount())
	assert.Equal(t, CommissionPending, commission.Status)
}

func TestCommission_Cancellable(t *testing.T) {
	c := &Commission{Status: CommissionPending}
	assert.True(t, c.Cancellable())

	c.Status = CommissionApproved
	assert.True(t, c.Cancellable())

	c.Status = CommissionPaid
	assert.False(t, c.Cancellable())

	c.Status = CommissionCancelled
	assert.False(t, c.Cancellable())
}
