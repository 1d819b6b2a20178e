package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// Catalog is the read interface over the catalog collaborator's product and
// flash-sale rows. Reads through a read-write transaction acquire row locks,
// which is what serializes concurrent checkouts per product. The only writes
// the checkout engine ever makes to catalog-owned data are the two stock
// mutations below, and only from inside a reservation.
type Catalog interface {
	// GetProduct loads a product row, ErrProductNotFound when absent.
	GetProduct(ctx context.Context, tx Tx, productID string) (*domain.Product, error)

	// GetActiveFlashSale loads the sale linked to a product, only while its
	// active flag is set. Returns nil (no error) when none exists.
	GetActiveFlashSale(ctx context.Context, tx Tx, productID string) (*domain.FlashSale, error)

	// GetFlashSale loads a sale by id regardless of its active flag,
	// ErrFlashSaleNotFound when absent. Cancellations use it to unwind the
	// counter of a sale that has since ended.
	GetFlashSale(ctx context.Context, tx Tx, flashSaleID string) (*domain.FlashSale, error)

	// UpdateStockMut writes the product stock column.
	UpdateStockMut(productID string, stock int64) *spanner.Mutation

	// UpdateStockSoldMut writes the flash-sale stock_sold counter.
	UpdateStockSoldMut(flashSaleID string, stockSold int64) *spanner.Mutation
}
