package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// CouponRepository defines persistence for coupon codes. used_count moves
// only through mutations committed with an order (or its cancellation).
type CouponRepository interface {
	// GetByCode loads a coupon by normalized code, ErrCouponNotFound when
	// absent.
	GetByCode(ctx context.Context, tx Tx, code string) (*domain.Coupon, error)

	// UpdateUsedCountMut writes the used_count counter.
	UpdateUsedCountMut(code string, usedCount int64) *spanner.Mutation
}
