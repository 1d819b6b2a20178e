package domain

import (
	"fmt"
	"time"
)

// PriceSource tells where a resolved unit price came from.
type PriceSource string

const (
	PriceSourceBase      PriceSource = "base"
	PriceSourceFlashSale PriceSource = "flash_sale"
)

// ResolvedPrice is the outcome of price resolution for one product at one
// point in time.
type ResolvedPrice struct {
	UnitPrice          Money
	Source             PriceSource
	FlashSaleID        string
	DiscountPercentage int64
}

// CheckoutConfig carries the store-wide tunables that used to live as
// scattered constants: the flat dynamic delivery fee and the default
// pre-order deposit percentage.
type CheckoutConfig struct {
	DynamicShippingCost   Money
	PreOrderDepositPct    int64
	DefaultCommissionRate int64
}

// DefaultCheckoutConfig mirrors the storefront's historical constants:
// 3500 Kz flat delivery, 50% pre-order deposit, 5% affiliate commission.
func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		DynamicShippingCost:   NewMoney(3500),
		PreOrderDepositPct:    50,
		DefaultCommissionRate: 5,
	}
}

// PricingCalculator is the domain service behind checkout previews and order
// placement. It resolves unit prices against flash sales and aggregates carts
// into quotes. It is pure: no I/O, all inputs passed in.
type PricingCalculator struct {
	config CheckoutConfig
}

// NewPricingCalculator creates a PricingCalculator with the given config.
func NewPricingCalculator(config CheckoutConfig) *PricingCalculator {
	return &PricingCalculator{config: config}
}

// ResolvePrice returns the effective unit price for quantity units of the
// product at time now. The linked sale wins only while it is in effect and
// its remaining headroom covers the whole quantity; otherwise the line falls
// back to the base price in full.
func (pc *PricingCalculator) ResolvePrice(product *Product, sale *FlashSale, quantity int64, now time.Time) ResolvedPrice {
	if sale != nil && sale.InEffectAt(now) && sale.CanCover(quantity) {
		return ResolvedPrice{
			UnitPrice:          sale.SalePrice,
			Source:             PriceSourceFlashSale,
			FlashSaleID:        sale.ID,
			DiscountPercentage: sale.DiscountPercentage,
		}
	}
	return ResolvedPrice{
		UnitPrice: product.BasePrice,
		Source:    PriceSourceBase,
	}
}

// PricedProduct pairs a catalog product with its resolved flash sale, as
// loaded by the quoting use case.
type PricedProduct struct {
	Product *Product
	Sale    *FlashSale // nil when no sale is linked or active
}

// Aggregate prices a cart into a quote. Products must be supplied for every
// cart item; the coupon may be nil. Validation failures are recoverable: the
// caller can adjust quantities or drop the coupon and resubmit.
func (pc *PricingCalculator) Aggregate(cart *Cart, products map[string]PricedProduct, coupon *Coupon, now time.Time) (*Quote, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	quote := &Quote{Lines: make([]QuoteLine, 0, len(cart.Items))}
	hasDynamicShipping := false

	// Stock and sale headroom are judged against the summed quantity per
	// product, so a cart listing the same product on two lines cannot slip
	// past either limit line by line.
	perProduct := make(map[string]int64)
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
		perProduct[item.ProductID] += item.Quantity
	}

	for _, item := range cart.Items {
		priced, ok := products[item.ProductID]
		if !ok || priced.Product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		product := priced.Product
		attributed := perProduct[item.ProductID]
		if !product.CanCover(attributed) {
			return nil, fmt.Errorf("%w: product %s has %d, requested %d",
				ErrInsufficientStock, product.ID, product.Stock, attributed)
		}

		resolved := pc.ResolvePrice(product, priced.Sale, attributed, now)
		line := QuoteLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   resolved.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   resolved.UnitPrice.MultiplyQty(item.Quantity),
			IsFlashSale: resolved.Source == PriceSourceFlashSale,
			FlashSaleID: resolved.FlashSaleID,
			IsPreOrder:  product.IsPreOrder(),
		}
		quote.Lines = append(quote.Lines, line)
		quote.Subtotal = quote.Subtotal.Add(line.LineTotal)

		if product.IsPreOrder() {
			pct := product.PreOrder.DepositPercent
			if pct <= 0 {
				pct = pc.config.PreOrderDepositPct
			}
			quote.DepositDue = quote.DepositDue.Add(line.LineTotal.PercentOf(pct))
		}

		switch product.ShippingMode {
		case ShippingPaid:
			quote.ShippingCost = quote.ShippingCost.Add(product.ShippingCost.MultiplyQty(item.Quantity))
		case ShippingDynamic:
			hasDynamicShipping = true
		}
	}

	// The flat dynamic fee is billed once per order, on top of any fixed
	// per-line costs.
	if hasDynamicShipping {
		quote.ShippingCost = quote.ShippingCost.Add(pc.config.DynamicShippingCost)
	}

	if coupon != nil {
		discount, err := coupon.Validate(quote.Subtotal, now)
		if err != nil {
			return nil, err
		}
		quote.Discount = discount
		quote.CouponCode = coupon.Code
	}

	// Discount applies to the subtotal only; shipping is added after and is
	// never discounted.
	quote.Total = quote.Subtotal.Subtract(quote.Discount).Add(quote.ShippingCost).ClampFloor(Money{})

	return quote, nil
}
