package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pricingNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCalculator() *PricingCalculator {
	return NewPricingCalculator(DefaultCheckoutConfig())
}

func freeShippingProduct(id string, price, stock int64) *Product {
	return &Product{
		ID:           id,
		Name:         "Product " + id,
		BasePrice:    NewMoney(price),
		Stock:        stock,
		ShippingMode: ShippingFree,
	}
}

func activeSale(product *Product, salePrice, limit, sold int64) *FlashSale {
	return &FlashSale{
		ID:         product.ID + "-sale",
		ProductID:  product.ID,
		SalePrice:  NewMoney(salePrice),
		StockLimit: limit,
		StockSold:  sold,
		StartDate:  pricingNow.Add(-time.Hour),
		EndDate:    pricingNow.Add(time.Hour),
		Active:     true,
	}
}

func TestPricingCalculator_ResolvePrice(t *testing.T) {
	calc := testCalculator()
	product := freeShippingProduct("p1", 10000, 50)

	t.Run("sale price wins while in effect", func(t *testing.T) {
		sale := activeSale(product, 7500, 10, 0)
		resolved := calc.ResolvePrice(product, sale, 2, pricingNow)
		assert.Equal(t, int64(7500), resolved.UnitPrice.Amount())
		assert.Equal(t, PriceSourceFlashSale, resolved.Source)
		assert.Equal(t, sale.ID, resolved.FlashSaleID)
	})

	t.Run("base price when no sale", func(t *testing.T) {
		resolved := calc.ResolvePrice(product, nil, 2, pricingNow)
		assert.Equal(t, int64(10000), resolved.UnitPrice.Amount())
		assert.Equal(t, PriceSourceBase, resolved.Source)
	})

	t.Run("whole line falls back when headroom short", func(t *testing.T) {
		sale := activeSale(product, 7500, 10, 9)
		resolved := calc.ResolvePrice(product, sale, 2, pricingNow)
		assert.Equal(t, int64(10000), resolved.UnitPrice.Amount())
		assert.Equal(t, PriceSourceBase, resolved.Source)
	})

	t.Run("expired sale ignored", func(t *testing.T) {
		sale := activeSale(product, 7500, 10, 0)
		sale.EndDate = pricingNow.Add(-time.Minute)
		resolved := calc.ResolvePrice(product, sale, 1, pricingNow)
		assert.Equal(t, PriceSourceBase, resolved.Source)
	})
}

func TestPricingCalculator_Aggregate(t *testing.T) {
	calc := testCalculator()

	t.Run("flash sale line with coupon and free shipping", func(t *testing.T) {
		product := freeShippingProduct("p1", 10000, 50)
		sale := activeSale(product, 8000, 10, 0)
		coupon := &Coupon{
			Code:          "PROMO10",
			DiscountType:  DiscountPercentage,
			DiscountValue: 10,
			ValidFrom:     pricingNow.Add(-time.Hour),
			Active:        true,
		}
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 2}}, CouponCode: "PROMO10"}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product, Sale: sale},
		}, coupon, pricingNow)
		require.NoError(t, err)

		assert.Equal(t, int64(16000), quote.Subtotal.Amount())
		assert.Equal(t, int64(1600), quote.Discount.Amount())
		assert.Equal(t, int64(0), quote.ShippingCost.Amount())
		assert.Equal(t, int64(14400), quote.Total.Amount())
		assert.Equal(t, "PROMO10", quote.CouponCode)
		require.Len(t, quote.Lines, 1)
		assert.True(t, quote.Lines[0].IsFlashSale)
	})

	t.Run("paid shipping accumulates per unit, dynamic fee once per order", func(t *testing.T) {
		paid := freeShippingProduct("p1", 5000, 50)
		paid.ShippingMode = ShippingPaid
		paid.ShippingCost = NewMoney(500)
		dyn1 := freeShippingProduct("p2", 4000, 50)
		dyn1.ShippingMode = ShippingDynamic
		dyn2 := freeShippingProduct("p3", 3000, 50)
		dyn2.ShippingMode = ShippingDynamic

		cart := &Cart{Items: []CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p3", Quantity: 1},
		}}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: paid},
			"p2": {Product: dyn1},
			"p3": {Product: dyn2},
		}, nil, pricingNow)
		require.NoError(t, err)

		// 2x500 paid + 3500 flat, not 2x3500
		assert.Equal(t, int64(4500), quote.ShippingCost.Amount())
		assert.Equal(t, int64(17000), quote.Subtotal.Amount())
		assert.Equal(t, int64(21500), quote.Total.Amount())
	})

	t.Run("discount applies before shipping and never discounts it", func(t *testing.T) {
		product := freeShippingProduct("p1", 1000, 10)
		product.ShippingMode = ShippingDynamic
		coupon := &Coupon{
			Code:          "BIG",
			DiscountType:  DiscountFixed,
			DiscountValue: 5000,
			ValidFrom:     pricingNow.Add(-time.Hour),
			Active:        true,
		}
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}, CouponCode: "BIG"}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product},
		}, coupon, pricingNow)
		require.NoError(t, err)

		// Discount clamps to the 1000 subtotal; shipping stays payable.
		assert.Equal(t, int64(1000), quote.Discount.Amount())
		assert.Equal(t, int64(3500), quote.Total.Amount())
	})

	t.Run("pre-order deposit from product percentage", func(t *testing.T) {
		product := freeShippingProduct("p1", 200000, 5)
		product.PreOrder = &PreOrderConfig{DepositPercent: 30}
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product},
		}, nil, pricingNow)
		require.NoError(t, err)

		assert.Equal(t, int64(60000), quote.DepositDue.Amount())
		assert.True(t, quote.Lines[0].IsPreOrder)
	})

	t.Run("pre-order deposit falls back to store default", func(t *testing.T) {
		product := freeShippingProduct("p1", 200000, 5)
		product.PreOrder = &PreOrderConfig{}
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product},
		}, nil, pricingNow)
		require.NoError(t, err)

		assert.Equal(t, int64(100000), quote.DepositDue.Amount())
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := calc.Aggregate(&Cart{}, nil, nil, pricingNow)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("zero quantity", func(t *testing.T) {
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 0}}}
		_, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: freeShippingProduct("p1", 1000, 10)},
		}, nil, pricingNow)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		cart := &Cart{Items: []CartItem{{ProductID: "ghost", Quantity: 1}}}
		_, err := calc.Aggregate(cart, map[string]PricedProduct{}, nil, pricingNow)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 11}}}
		_, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: freeShippingProduct("p1", 1000, 10)},
		}, nil, pricingNow)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("duplicate lines are summed against stock", func(t *testing.T) {
		// Each line fits on its own; together they exceed the 3 in stock.
		cart := &Cart{Items: []CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 2},
		}}
		_, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: freeShippingProduct("p1", 1000, 3)},
		}, nil, pricingNow)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("duplicate lines are summed against sale headroom", func(t *testing.T) {
		product := freeShippingProduct("p1", 10000, 50)
		sale := activeSale(product, 7500, 5, 4)
		// Headroom is 1. Each qty-1 line would pass alone, but the sale
		// cannot cover both, so the whole product falls back to base price
		// and stock_sold never climbs past the limit.
		cart := &Cart{Items: []CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 1},
		}}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product, Sale: sale},
		}, nil, pricingNow)
		require.NoError(t, err)

		require.Len(t, quote.Lines, 2)
		for _, line := range quote.Lines {
			assert.False(t, line.IsFlashSale)
			assert.Equal(t, int64(10000), line.UnitPrice.Amount())
		}
		assert.Equal(t, int64(20000), quote.Subtotal.Amount())
		assert.Empty(t, quote.FlashSaleQuantities())
	})

	t.Run("duplicate lines within headroom keep the sale price", func(t *testing.T) {
		product := freeShippingProduct("p1", 10000, 50)
		sale := activeSale(product, 7500, 5, 3)

		cart := &Cart{Items: []CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 1},
		}}

		quote, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product, Sale: sale},
		}, nil, pricingNow)
		require.NoError(t, err)

		assert.Equal(t, int64(15000), quote.Subtotal.Amount())
		assert.Equal(t, map[string]int64{sale.ID: 2}, quote.FlashSaleQuantities())
	})

	t.Run("coupon rejection aborts the quote", func(t *testing.T) {
		product := freeShippingProduct("p1", 1000, 10)
		coupon := &Coupon{Code: "OFF", Active: false}
		cart := &Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}, CouponCode: "OFF"}

		_, err := calc.Aggregate(cart, map[string]PricedProduct{
			"p1": {Product: product},
		}, coupon, pricingNow)
		assert.ErrorIs(t, err, ErrCouponInactive)
	})
}

func TestQuote_FlashSaleQuantities(t *testing.T) {
	quote := &Quote{Lines: []QuoteLine{
		{ProductID: "p1", Quantity: 2, IsFlashSale: true, FlashSaleID: "s1"},
		{ProductID: "p2", Quantity: 1, IsFlashSale: false},
		{ProductID: "p3", Quantity: 3, IsFlashSale: true, FlashSaleID: "s2"},
	}}

	quantities := quote.FlashSaleQuantities()
	assert.Equal(t, map[string]int64{"s1": 2, "s2": 3}, quantities)
}
