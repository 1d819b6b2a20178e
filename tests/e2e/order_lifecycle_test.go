package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/repo"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/update_order_status"
	"github.com/anastacio2001/kzstore-sub000/tests/testutil"
)

func transition(t *testing.T, services *Services, orderID string, next domain.OrderStatus) *domain.Order {
	t.Helper()

	order, err := services.UpdateOrder.Execute(context.Background(), &update_order_status.Request{
		OrderID:    orderID,
		NextStatus: string(next),
	})
	require.NoError(t, err)
	return order
}

func TestOrderLifecycle_DeliveryAndCommission(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		BasePrice: 45000,
		Stock:     10,
	})
	affiliateID := testutil.CreateTestAffiliate(t, services.Client, "REF01", 5, true)

	result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
		WithItem(productID, 1).
		WithAffiliate("REF01").
		Build())
	require.NoError(t, err)
	orderID := result.Order.ID()
	require.Equal(t, "REF01", result.Order.AffiliateCode())

	transition(t, services, orderID, domain.StatusConfirmed)
	transition(t, services, orderID, domain.StatusProcessing)

	shipped, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
		OrderID:      orderID,
		NextStatus:   string(domain.StatusShipped),
		TrackingCode: "TRK-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "TRK-001", shipped.TrackingCode())

	delivered := transition(t, services, orderID, domain.StatusDelivered)
	require.NotNil(t, delivered.DeliveredAt())

	// Exactly one commission, at the snapshotted rate
	commission, err := repo.NewCommissionRepo().GetByOrderID(ctx, services.Client.Single(), orderID)
	require.NoError(t, err)
	require.NotNil(t, commission)
	assert.Equal(t, affiliateID, commission.AffiliateID)
	assert.Equal(t, int64(2250), commission.Amount.Amount()) // 5% of 45000
	assert.Equal(t, domain.CommissionPending, commission.Status)
	testutil.AssertRowCount(t, services.Client, "affiliate_commissions", 1)

	stats, err := repo.NewAffiliateRepo().GetStats(ctx, services.Client.Single(), affiliateID)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), stats.TotalSales)
	assert.Equal(t, int64(2250), stats.PendingCommission)

	t.Run("refund voids the commission", func(t *testing.T) {
		transition(t, services, orderID, domain.StatusRefunded)

		voided, err := repo.NewCommissionRepo().GetByOrderID(ctx, services.Client.Single(), orderID)
		require.NoError(t, err)
		assert.Equal(t, domain.CommissionCancelled, voided.Status)

		stats, err := repo.NewAffiliateRepo().GetStats(ctx, services.Client.Single(), affiliateID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.PendingCommission)
		assert.Equal(t, int64(0), stats.TotalCommission)
	})

	t.Run("refunded is terminal", func(t *testing.T) {
		_, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
			OrderID:    orderID,
			NextStatus: string(domain.StatusPending),
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})
}

func TestOrderLifecycle_CancellationRestores(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{
		BasePrice: 20000,
		Stock:     10,
	})
	saleID := testutil.CreateTestFlashSale(t, services.Client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  16000,
		StockLimit: 5,
		StartsIn:   -time.Hour,
		EndsIn:     time.Hour,
		Active:     true,
	})
	testutil.CreateTestCoupon(t, services.Client, testutil.CouponFixture{
		Code:          "PROMO10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		UsageLimit:    10,
		Active:        true,
	})

	result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().
		WithItem(productID, 2).
		WithCoupon("PROMO10").
		Build())
	require.NoError(t, err)
	orderID := result.Order.ID()

	catalog := repo.NewCatalogRepo()
	product, err := catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	require.Equal(t, int64(8), product.Stock)

	cancelled := transition(t, services, orderID, domain.StatusCancelled)
	require.NotNil(t, cancelled.CancelledAt())

	// Stock, sale counter and coupon usage all unwind with the cancellation
	product, err = catalog.GetProduct(ctx, services.Client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Stock)

	sale, err := catalog.GetFlashSale(ctx, services.Client.Single(), saleID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sale.StockSold)

	coupon, err := repo.NewCouponRepo().GetByCode(ctx, services.Client.Single(), "PROMO10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), coupon.UsedCount)

	// order.created, status-changed and stock-restored all hit the outbox
	pending, err := services.OutboxRepo.ListPending(ctx, 10)
	require.NoError(t, err)
	types := make([]string, 0, len(pending))
	for _, event := range pending {
		types = append(types, event.EventType)
	}
	assert.Contains(t, types, "order.stock_restored")

	t.Run("refund after cancellation does not restock twice", func(t *testing.T) {
		transition(t, services, orderID, domain.StatusRefunded)

		product, err := catalog.GetProduct(ctx, services.Client.Single(), productID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), product.Stock)
	})
}

func TestOrderLifecycle_IllegalTransitions(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, services.Client, testutil.ProductFixture{Stock: 5})
	result, err := services.PlaceOrder.Execute(ctx, NewOrderBuilder().WithItem(productID, 1).Build())
	require.NoError(t, err)
	orderID := result.Order.ID()

	t.Run("cannot skip ahead", func(t *testing.T) {
		_, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
			OrderID:    orderID,
			NextStatus: string(domain.StatusShipped),
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
			OrderID:    orderID,
			NextStatus: "misplaced",
		})
		assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	})

	t.Run("cannot cancel after shipping", func(t *testing.T) {
		transition(t, services, orderID, domain.StatusConfirmed)
		transition(t, services, orderID, domain.StatusProcessing)
		transition(t, services, orderID, domain.StatusShipped)

		_, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
			OrderID:    orderID,
			NextStatus: string(domain.StatusCancelled),
		})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := services.UpdateOrder.Execute(ctx, &update_order_status.Request{
			OrderID:    "missing",
			NextStatus: string(domain.StatusConfirmed),
		})
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}
