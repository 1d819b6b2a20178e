package domain

// CartItem is one requested line of a checkout: a product and a quantity.
// Ephemeral request input, never persisted.
type CartItem struct {
	ProductID string
	Quantity  int64
}

// Cart is the checkout request payload before pricing.
type Cart struct {
	Items      []CartItem
	CouponCode string // empty when no coupon is applied
}

// QuoteLine is a priced cart line. UnitPrice is frozen at resolution time;
// the order snapshot copies these values and never re-reads the live product.
type QuoteLine struct {
	ProductID   string
	ProductName string
	UnitPrice   Money
	Quantity    int64
	LineTotal   Money
	IsFlashSale bool
	FlashSaleID string
	IsPreOrder  bool
}

// Quote is the aggregated result of pricing a cart. Total is always
// Subtotal - Discount + ShippingCost, floored at zero; the discount applies
// to the subtotal only and shipping is added afterwards, unconditionally.
type Quote struct {
	Lines        []QuoteLine
	Subtotal     Money
	Discount     Money
	ShippingCost Money
	Total        Money
	CouponCode   string // normalized, empty when no coupon applied
	DepositDue   Money  // non-zero only when the cart holds pre-order lines
}

// HasCoupon returns true if a coupon discount was applied to the quote.
func (q *Quote) HasCoupon() bool {
	return q.CouponCode != ""
}

// FlashSaleQuantities returns requested quantity per attributed flash sale,
// for the commit-time headroom re-check.
func (q *Quote) FlashSaleQuantities() map[string]int64 {
	quantities := make(map[string]int64)
	for _, line := range q.Lines {
		if line.IsFlashSale {
			quantities[line.FlashSaleID] += line.Quantity
		}
	}
	return quantities
}
