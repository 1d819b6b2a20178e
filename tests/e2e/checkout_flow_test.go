package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/repo"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/quote_cart"
	"github.com/anastacio2001/kzstore-sub000/tests/testutil"
)

func TestCheckoutFlow(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		Name:      "Phone",
		BasePrice: 10000,
		Stock:     10,
	})
	testutil.CreateTestCoupon(t, services.Client, testutil.CouponFixture{
		Code:          "PROMO10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		UsageLimit:    100,
		Active:        true,
	})

	// Quote first: a preview reserves nothing
	quote, err := services.QuoteCart.Execute(ctx, &quote_cart.Request{
		Items:      []domain.CartItem{{ProductID: productID, Quantity: 2}},
		CouponCode: "promo10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), quote.Subtotal.Amount())
	assert.Equal(t, int64(2000), quote.Discount.Amount())
	assert.Equal(t, int64(18000), quote.Total.Amount())
	assert.Equal(t, "PROMO10", quote.CouponCode)

	catalog := repo.NewCatalogRepo()
	product, err := catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Stock, "quoting must not touch stock")

	// Place the order
	request := NewOrderBuilder().
		WithItem(productID, 2).
		WithCoupon("promo10").
		Build()
	result, err := services.PlaceOrder.Execute(ctx, request)
	require.NoError(t, err)
	require.False(t, result.Idempotent)

	order := result.Order
	assert.Equal(t, domain.StatusPending, order.Status())
	assert.Equal(t, int64(18000), order.Total().Amount())
	assert.Regexp(t, `^KZ-\d{8}-[0-9A-F]{6}$`, order.OrderNumber())

	// Stock, coupon usage and the outbox event committed with the order
	product, err = catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), product.Stock)

	coupon, err := repo.NewCouponRepo().GetByCode(ctx, services.Client.Single(), "PROMO10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), coupon.UsedCount)

	pending, err := services.OutboxRepo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "order.created", pending[0].EventType)
	assert.Equal(t, order.ID(), pending[0].AggregateID)

	// Replaying the same request id returns the original order untouched
	replay, err := services.PlaceOrder.Execute(ctx, request)
	require.NoError(t, err)
	assert.True(t, replay.Idempotent)
	assert.Equal(t, order.ID(), replay.Order.ID())

	product, err = catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), product.Stock, "replay must not reserve again")
	testutil.AssertRowCount(t, services.Client, "orders", 1)
	testutil.AssertRowCount(t, services.Client, "outbox_events", 1)

	// The read model serves the same shape back
	dto, err := services.GetOrder.Execute(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber(), dto.OrderNumber)
	assert.Equal(t, int64(18000), dto.Total)
	require.Len(t, dto.Lines, 1)
	assert.Equal(t, int64(2), dto.Lines[0].Quantity)

	listed, err := services.ListOrders.Execute(ctx, &contracts.ListFilter{UserID: request.UserID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), listed.TotalCount)
}

func TestCheckoutFlow_FlashSale(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		Name:      "Headphones",
		BasePrice: 30000,
		Stock:     20,
	})
	saleID := testutil.CreateTestFlashSale(t, services.Client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  24000,
		StockLimit: 5,
		StockSold:  3,
		StartsIn:   -time.Hour,
		EndsIn:     time.Hour,
		Active:     true,
	})

	t.Run("sale price within headroom", func(t *testing.T) {
		result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
			WithUser("sale-buyer").
			WithItem(productID, 2).
			Build())
		require.NoError(t, err)
		assert.Equal(t, int64(48000), result.Order.Total().Amount())
		require.Len(t, result.Order.Lines(), 1)
		assert.True(t, result.Order.Lines()[0].IsFlashSale)

		catalog := repo.NewCatalogRepo()
		sale, err := catalog.GetFlashSale(ctx, services.Client.Single(), saleID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), sale.StockSold)

		product, err := catalog.GetProduct(ctx, services.Client.Single(), productID)
		require.NoError(t, err)
		assert.Equal(t, int64(18), product.Stock)
	})

	t.Run("sold-out sale falls back to base price", func(t *testing.T) {
		result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
			WithUser("late-buyer").
			WithItem(productID, 1).
			Build())
		require.NoError(t, err)
		assert.Equal(t, int64(30000), result.Order.Total().Amount())
		assert.False(t, result.Order.Lines()[0].IsFlashSale)
	})
}

func TestCheckoutFlow_FlashSaleDuplicateLines(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		Name:      "Headphones",
		BasePrice: 30000,
		Stock:     20,
	})
	saleID := testutil.CreateTestFlashSale(t, services.Client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  24000,
		StockLimit: 5,
		StockSold:  4,
		StartsIn:   -time.Hour,
		EndsIn:     time.Hour,
		Active:     true,
	})

	// Two qty-1 lines of the same product: each fits the sale's remaining
	// unit alone, but together they exceed it, so the whole order prices at
	// base and stock_sold stays at the limit.
	result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
		WithItem(productID, 1).
		WithItem(productID, 1).
		Build())
	require.NoError(t, err)
	assert.Equal(t, int64(60000), result.Order.Total().Amount())
	for _, line := range result.Order.Lines() {
		assert.False(t, line.IsFlashSale)
	}

	catalog := repo.NewCatalogRepo()
	sale, err := catalog.GetFlashSale(ctx, services.Client.Single(), saleID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sale.StockSold)
	assert.LessOrEqual(t, sale.StockSold, sale.StockLimit)

	product, err := catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(18), product.Stock)
}

func TestCheckoutFlow_SaleWindowExpires(t *testing.T) {
	clk := testutil.NewMockClock()
	services, cleanup := setupTestWithClock(t, clk)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		Name:      "Speaker",
		BasePrice: 15000,
		Stock:     10,
	})
	testutil.CreateTestFlashSale(t, services.Client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  12000,
		StockLimit: 10,
		StartsIn:   -time.Hour,
		EndsIn:     30 * time.Minute,
		Active:     true,
	})

	items := []domain.CartItem{{ProductID: productID, Quantity: 1}}

	quote, err := services.QuoteCart.Execute(ctx, &quote_cart.Request{Items: items})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), quote.Total.Amount())

	clk.Advance(time.Hour)

	quote, err = services.QuoteCart.Execute(ctx, &quote_cart.Request{Items: items})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), quote.Total.Amount(), "ended sale prices at base")
}

func TestCheckoutFlow_Rejections(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		BasePrice: 10000,
		Stock:     3,
	})
	testutil.CreateTestCoupon(t, services.Client, testutil.CouponFixture{
		Code:          "BIG50",
		DiscountType:  "fixed",
		DiscountValue: 5000,
		MinOrderValue: 50000,
		Active:        true,
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().WithItem("missing", 1).Build())
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		_, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().WithItem(productID, 4).Build())
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("duplicate lines exceeding stock", func(t *testing.T) {
		_, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
			WithItem(productID, 2).
			WithItem(productID, 2).
			Build())
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		// The preview rejects the same cart, so a buyer never sees a quote
		// that placement would refuse.
		_, err = services.QuoteCart.Execute(ctx, &quote_cart.Request{Items: []domain.CartItem{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 2},
		}})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("coupon below minimum", func(t *testing.T) {
		_, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
			WithItem(productID, 1).
			WithCoupon("BIG50").
			Build())
		assert.ErrorIs(t, err, domain.ErrCouponBelowMinimum)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().Build())
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("nothing committed on rejection", func(t *testing.T) {
		testutil.AssertRowCount(t, services.Client, "orders", 0)
		testutil.AssertRowCount(t, services.Client, "outbox_events", 0)
	})
}
