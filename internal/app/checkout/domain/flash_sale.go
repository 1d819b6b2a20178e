package domain

import "time"

// FlashSale is a time-boxed, stock-capped price override for one product.
// StockSold is a monotonic counter mutated only by stock reservations;
// the invariant StockSold <= StockLimit holds after every commit.
type FlashSale struct {
	ID                 string
	ProductID          string
	SalePrice          Money
	DiscountPercentage int64
	StockLimit         int64
	StockSold          int64
	StartDate          time.Time
	EndDate            time.Time
	Active             bool
}

// InEffectAt reports whether the sale price applies at t. A sale is in effect
// only while it is active, t falls inside [StartDate, EndDate), and capped
// stock remains.
func (fs *FlashSale) InEffectAt(t time.Time) bool {
	if fs == nil || !fs.Active {
		return false
	}
	if t.Before(fs.StartDate) || !t.Before(fs.EndDate) {
		return false
	}
	return fs.StockSold < fs.StockLimit
}

// Headroom returns how many more units the sale can still cover.
func (fs *FlashSale) Headroom() int64 {
	if fs == nil {
		return 0
	}
	if fs.StockSold >= fs.StockLimit {
		return 0
	}
	return fs.StockLimit - fs.StockSold
}

// CanCover reports whether the sale has headroom for the requested quantity.
// A line that exceeds headroom falls back to the base price in full; the
// engine never splits one cart line across two prices.
func (fs *FlashSale) CanCover(quantity int64) bool {
	return fs.Headroom() >= quantity
}
