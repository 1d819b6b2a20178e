package quote_cart

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/metrics"
)

// Request contains the cart to price.
type Request struct {
	Items      []domain.CartItem
	CouponCode string
}

// Interactor handles the quote cart use case: price a cart without reserving
// anything. A quote is a preview; nothing is consumed until placement.
type Interactor struct {
	client     *spanner.Client
	catalog    contracts.Catalog
	couponRepo contracts.CouponRepository
	calculator *domain.PricingCalculator
	clock      clock.Clock
}

// NewInteractor creates a new quote cart interactor.
func NewInteractor(
	client *spanner.Client,
	catalog contracts.Catalog,
	couponRepo contracts.CouponRepository,
	calculator *domain.PricingCalculator,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		client:     client,
		catalog:    catalog,
		couponRepo: couponRepo,
		calculator: calculator,
		clock:      clock,
	}
}

// Execute prices the cart against a consistent snapshot of catalog, sales
// and coupon state.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Quote, error) {
	cart := &domain.Cart{
		Items:      req.Items,
		CouponCode: domain.NormalizeCouponCode(req.CouponCode),
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	tx := i.client.ReadOnlyTransaction()
	defer tx.Close()

	products, err := loadPricedProducts(ctx, tx, i.catalog, cart)
	if err != nil {
		return nil, err
	}

	var coupon *domain.Coupon
	if cart.CouponCode != "" {
		coupon, err = i.couponRepo.GetByCode(ctx, tx, cart.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	quote, err := i.calculator.Aggregate(cart, products, coupon, i.clock.Now())
	if err != nil {
		return nil, err
	}

	metrics.QuotesServed.Inc()
	return quote, nil
}

// loadPricedProducts loads every cart product with its active sale through
// tx. Duplicate product ids collapse to one load.
func loadPricedProducts(ctx context.Context, tx contracts.Tx, catalog contracts.Catalog, cart *domain.Cart) (map[string]domain.PricedProduct, error) {
	products := make(map[string]domain.PricedProduct, len(cart.Items))
	for _, item := range cart.Items {
		if _, already := products[item.ProductID]; already {
			continue
		}
		product, err := catalog.GetProduct(ctx, tx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		var sale *domain.FlashSale
		if product.HasFlashSale() {
			sale, err = catalog.GetActiveFlashSale(ctx, tx, product.ID)
			if err != nil {
				return nil, err
			}
		}
		products[item.ProductID] = domain.PricedProduct{Product: product, Sale: sale}
	}
	return products, nil
}
