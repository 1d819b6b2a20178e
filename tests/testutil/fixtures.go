package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/anastacio2001/kzstore-sub000/internal/models/m_affiliate"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_coupon"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_flash_sale"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_product"
)

// ProductFixture describes a product row for seeding. Zero values get
// sensible test defaults.
type ProductFixture struct {
	Name               string
	BasePrice          int64
	Stock              int64
	ShippingMode       string
	ShippingCost       int64
	FlashSaleID        string
	PreOrderDepositPct int64
}

// CreateTestProduct seeds a product row and returns its id.
func CreateTestProduct(t *testing.T, client *spanner.Client, fixture ProductFixture) string {
	t.Helper()

	if fixture.Name == "" {
		fixture.Name = "Test Product"
	}
	if fixture.BasePrice == 0 {
		fixture.BasePrice = 10000
	}
	if fixture.ShippingMode == "" {
		fixture.ShippingMode = "free"
	}

	productID := uuid.New().String()
	data := &m_product.Data{
		ProductID:    productID,
		Name:         fixture.Name,
		BasePrice:    fixture.BasePrice,
		Stock:        fixture.Stock,
		WeightKG:     1.0,
		ShippingMode: fixture.ShippingMode,
		ShippingCost: fixture.ShippingCost,
	}
	if fixture.FlashSaleID != "" {
		data.FlashSaleID = spanner.NullString{StringVal: fixture.FlashSaleID, Valid: true}
	}
	if fixture.PreOrderDepositPct > 0 {
		data.PreOrderDepositPct = spanner.NullInt64{Int64: fixture.PreOrderDepositPct, Valid: true}
		data.PreOrderArrival = spanner.NullTime{Time: time.Now().AddDate(0, 1, 0), Valid: true}
	}

	apply(t, client, m_product.NewModel().InsertMut(data))
	return productID
}

// FlashSaleFixture describes a flash sale row for seeding.
type FlashSaleFixture struct {
	ProductID  string
	SalePrice  int64
	StockLimit int64
	StockSold  int64
	StartsIn   time.Duration // negative means already started
	EndsIn     time.Duration
	Active     bool
}

// CreateTestFlashSale seeds a flash sale row and links it to its product.
// Returns the sale id.
func CreateTestFlashSale(t *testing.T, client *spanner.Client, fixture FlashSaleFixture) string {
	t.Helper()

	saleID := uuid.New().String()
	now := time.Now()
	data := &m_flash_sale.Data{
		FlashSaleID: saleID,
		ProductID:   fixture.ProductID,
		SalePrice:   fixture.SalePrice,
		StockLimit:  fixture.StockLimit,
		StockSold:   fixture.StockSold,
		StartDate:   now.Add(fixture.StartsIn),
		EndDate:     now.Add(fixture.EndsIn),
		IsActive:    fixture.Active,
	}

	apply(t, client, m_flash_sale.NewModel().InsertMut(data))

	// Link the product to its sale
	apply(t, client, spanner.Update("products",
		[]string{"product_id", "flash_sale_id", "updated_at"},
		[]interface{}{fixture.ProductID, saleID, spanner.CommitTimestamp}))

	return saleID
}

// CouponFixture describes a coupon row for seeding.
type CouponFixture struct {
	Code          string
	DiscountType  string
	DiscountValue int64
	MaxDiscount   int64
	MinOrderValue int64
	UsageLimit    int64
	UsedCount     int64
	Active        bool
}

// CreateTestCoupon seeds a coupon row.
func CreateTestCoupon(t *testing.T, client *spanner.Client, fixture CouponFixture) {
	t.Helper()

	data := &m_coupon.Data{
		Code:          fixture.Code,
		DiscountType:  fixture.DiscountType,
		DiscountValue: fixture.DiscountValue,
		MaxDiscount:   fixture.MaxDiscount,
		MinOrderValue: fixture.MinOrderValue,
		UsageLimit:    fixture.UsageLimit,
		UsedCount:     fixture.UsedCount,
		ValidFrom:     time.Now().Add(-time.Hour),
		IsActive:      fixture.Active,
	}

	apply(t, client, m_coupon.NewModel().InsertMut(data))
}

// CreateTestAffiliate seeds an affiliate row and returns its id.
func CreateTestAffiliate(t *testing.T, client *spanner.Client, code string, commissionRate int64, active bool) string {
	t.Helper()

	affiliateID := uuid.New().String()
	data := &m_affiliate.Data{
		AffiliateID:    affiliateID,
		Code:           code,
		CommissionRate: commissionRate,
		IsActive:       active,
	}

	apply(t, client, m_affiliate.NewModel().InsertMut(data))
	return affiliateID
}

func apply(t *testing.T, client *spanner.Client, mutation *spanner.Mutation) {
	t.Helper()
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to apply fixture mutation")
}
