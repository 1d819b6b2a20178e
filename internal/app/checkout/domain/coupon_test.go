package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func activeCoupon() *Coupon {
	return &Coupon{
		Code:          "PROMO10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		ValidFrom:     couponNow.Add(-24 * time.Hour),
		ValidUntil:    couponNow.Add(24 * time.Hour),
		Active:        true,
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "PROMO10", NormalizeCouponCode(" promo10 "))
	assert.Equal(t, "BLACK-FRIDAY", NormalizeCouponCode("black-friday"))
}

func TestCoupon_Validate(t *testing.T) {
	t.Run("percentage discount", func(t *testing.T) {
		c := activeCoupon()
		discount, err := c.Validate(NewMoney(20000), couponNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), discount.Amount())
	})

	t.Run("percentage capped by max discount", func(t *testing.T) {
		c := activeCoupon()
		c.MaxDiscount = NewMoney(1500)
		discount, err := c.Validate(NewMoney(20000), couponNow)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), discount.Amount())
	})

	t.Run("fixed discount", func(t *testing.T) {
		c := activeCoupon()
		c.DiscountType = DiscountFixed
		c.DiscountValue = 3000
		discount, err := c.Validate(NewMoney(20000), couponNow)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), discount.Amount())
	})

	t.Run("fixed discount clamped to subtotal", func(t *testing.T) {
		c := activeCoupon()
		c.DiscountType = DiscountFixed
		c.DiscountValue = 5000
		discount, err := c.Validate(NewMoney(2000), couponNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), discount.Amount())
	})

	t.Run("inactive rejected first", func(t *testing.T) {
		c := activeCoupon()
		c.Active = false
		c.UsageLimit = 1
		c.UsedCount = 1
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := activeCoupon()
		c.ValidFrom = couponNow.Add(time.Hour)
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("expired", func(t *testing.T) {
		c := activeCoupon()
		c.ValidUntil = couponNow.Add(-time.Minute)
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("zero valid until means open ended", func(t *testing.T) {
		c := activeCoupon()
		c.ValidUntil = time.Time{}
		_, err := c.Validate(NewMoney(20000), couponNow.AddDate(10, 0, 0))
		assert.NoError(t, err)
	})

	t.Run("below minimum order value", func(t *testing.T) {
		c := activeCoupon()
		c.MinOrderValue = NewMoney(50000)
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.ErrorIs(t, err, ErrCouponBelowMinimum)
	})

	t.Run("subtotal equal to minimum passes", func(t *testing.T) {
		c := activeCoupon()
		c.MinOrderValue = NewMoney(20000)
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.NoError(t, err)
	})

	t.Run("usage limit exhausted", func(t *testing.T) {
		c := activeCoupon()
		c.UsageLimit = 100
		c.UsedCount = 100
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})

	t.Run("zero usage limit means unlimited", func(t *testing.T) {
		c := activeCoupon()
		c.UsedCount = 1000000
		_, err := c.Validate(NewMoney(20000), couponNow)
		assert.NoError(t, err)
	})
}

func TestCoupon_HasHeadroom(t *testing.T) {
	c := activeCoupon()
	c.UsageLimit = 2
	c.UsedCount = 1
	assert.True(t, c.HasHeadroom())

	c.UsedCount = 2
	assert.False(t, c.HasHeadroom())

	c.UsageLimit = 0
	assert.True(t, c.HasHeadroom())
}

func TestIsCouponRejection(t *testing.T) {
	assert.True(t, IsCouponRejection(ErrCouponExhausted))
	assert.True(t, IsCouponRejection(ErrCouponNotFound))
	assert.False(t, IsCouponRejection(ErrInsufficientStock))
}
