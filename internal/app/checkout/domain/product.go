package domain

import "time"

// ShippingMode describes how a product is billed for delivery.
type ShippingMode string

const (
	// ShippingFree ships at no cost.
	ShippingFree ShippingMode = "free"
	// ShippingPaid bills the product's fixed cost per unit.
	ShippingPaid ShippingMode = "paid"
	// ShippingDynamic bills the store-wide flat delivery fee once per order.
	ShippingDynamic ShippingMode = "dynamic"
)

// PreOrderConfig marks a product sold on deposit ahead of arrival.
type PreOrderConfig struct {
	DepositPercent   int64
	EstimatedArrival time.Time
}

// Product is the checkout engine's read view of a catalog record. The catalog
// collaborator owns every field; the engine only ever writes Stock, and only
// through a stock reservation.
type Product struct {
	ID           string
	Name         string
	BasePrice    Money
	Stock        int64
	WeightKG     float64
	ShippingMode ShippingMode
	ShippingCost Money
	FlashSaleID  string // empty when no sale is linked
	PreOrder     *PreOrderConfig
}

// HasFlashSale returns true if a flash sale is linked to the product.
func (p *Product) HasFlashSale() bool {
	return p.FlashSaleID != ""
}

// IsPreOrder returns true if the product is sold on deposit.
func (p *Product) IsPreOrder() bool {
	return p.PreOrder != nil
}

// CanCover returns true if current stock covers the requested quantity.
func (p *Product) CanCover(quantity int64) bool {
	return quantity <= p.Stock
}
