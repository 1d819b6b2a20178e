//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/repo"
	"github.com/anastacio2001/kzstore-sub000/tests/testutil"
)

func TestCatalogRepo_GetProduct(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	catalog := repo.NewCatalogRepo()

	productID := testutil.CreateTestProduct(t, client, testutil.ProductFixture{
		Name:         "Laptop",
		BasePrice:    450000,
		Stock:        12,
		ShippingMode: "paid",
		ShippingCost: 2500,
	})

	t.Run("returns stored product", func(t *testing.T) {
		product, err := catalog.GetProduct(ctx, client.Single(), productID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, int64(450000), product.BasePrice.Amount())
		assert.Equal(t, int64(12), product.Stock)
		assert.Equal(t, domain.ShippingPaid, product.ShippingMode)
		assert.Equal(t, int64(2500), product.ShippingCost.Amount())
		assert.False(t, product.HasFlashSale())
		assert.False(t, product.IsPreOrder())
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := catalog.GetProduct(ctx, client.Single(), "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestCatalogRepo_GetProduct_PreOrder(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	productID := testutil.CreateTestProduct(t, client, testutil.ProductFixture{
		Name:               "Console",
		BasePrice:          200000,
		Stock:              5,
		PreOrderDepositPct: 30,
	})

	product, err := repo.NewCatalogRepo().GetProduct(context.Background(), client.Single(), productID)
	require.NoError(t, err)
	require.True(t, product.IsPreOrder())
	assert.Equal(t, int64(30), product.PreOrder.DepositPercent)
}

func TestCatalogRepo_FlashSales(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	catalog := repo.NewCatalogRepo()

	productID := testutil.CreateTestProduct(t, client, testutil.ProductFixture{
		Name:      "Phone",
		BasePrice: 80000,
		Stock:     20,
	})
	saleID := testutil.CreateTestFlashSale(t, client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  65000,
		StockLimit: 10,
		StockSold:  3,
		StartsIn:   -time.Hour,
		EndsIn:     time.Hour,
		Active:     true,
	})

	t.Run("active sale by product", func(t *testing.T) {
		sale, err := catalog.GetActiveFlashSale(ctx, client.Single(), productID)
		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, saleID, sale.ID)
		assert.Equal(t, int64(65000), sale.SalePrice.Amount())
		assert.Equal(t, int64(7), sale.Headroom())
	})

	t.Run("product links back to sale", func(t *testing.T) {
		product, err := catalog.GetProduct(ctx, client.Single(), productID)
		require.NoError(t, err)
		assert.Equal(t, saleID, product.FlashSaleID)
	})

	t.Run("no sale for unlinked product", func(t *testing.T) {
		other := testutil.CreateTestProduct(t, client, testutil.ProductFixture{Name: "Charger"})
		sale, err := catalog.GetActiveFlashSale(ctx, client.Single(), other)
		require.NoError(t, err)
		assert.Nil(t, sale)
	})

	t.Run("by id regardless of active flag", func(t *testing.T) {
		endedID := testutil.CreateTestFlashSale(t, client, testutil.FlashSaleFixture{
			ProductID:  productID,
			SalePrice:  60000,
			StockLimit: 5,
			StartsIn:   -48 * time.Hour,
			EndsIn:     -24 * time.Hour,
			Active:     false,
		})
		sale, err := catalog.GetFlashSale(ctx, client.Single(), endedID)
		require.NoError(t, err)
		assert.False(t, sale.Active)

		_, err = catalog.GetFlashSale(ctx, client.Single(), "missing")
		assert.ErrorIs(t, err, domain.ErrFlashSaleNotFound)
	})
}

func TestCatalogRepo_StockMutations(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	catalog := repo.NewCatalogRepo()

	productID := testutil.CreateTestProduct(t, client, testutil.ProductFixture{Stock: 10})
	saleID := testutil.CreateTestFlashSale(t, client, testutil.FlashSaleFixture{
		ProductID:  productID,
		SalePrice:  9000,
		StockLimit: 5,
		StartsIn:   -time.Hour,
		EndsIn:     time.Hour,
		Active:     true,
	})

	_, err := client.Apply(ctx, []*spanner.Mutation{
		catalog.UpdateStockMut(productID, 7),
		catalog.UpdateStockSoldMut(saleID, 3),
	})
	require.NoError(t, err)

	product, err := catalog.GetProduct(ctx, client.Single(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.Stock)

	sale, err := catalog.GetFlashSale(ctx, client.Single(), saleID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sale.StockSold)
}
