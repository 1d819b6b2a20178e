package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// AffiliateStats are the denormalized totals on the affiliate row.
type AffiliateStats struct {
	TotalSales        int64
	TotalCommission   int64
	PendingCommission int64
}

// AffiliateRepository defines reads over affiliate accounts plus the stats
// write that accompanies commission changes.
type AffiliateRepository interface {
	// GetByCode loads an affiliate by referral code, ErrAffiliateNotFound
	// when absent.
	GetByCode(ctx context.Context, tx Tx, code string) (*domain.Affiliate, error)

	// GetStats reads the current denormalized totals.
	GetStats(ctx context.Context, tx Tx, affiliateID string) (*AffiliateStats, error)

	// UpdateStatsMut writes the denormalized totals.
	UpdateStatsMut(affiliateID string, stats *AffiliateStats) *spanner.Mutation
}

// CommissionRepository defines persistence for affiliate commissions. The
// per-order uniqueness guard lives here: GetByOrderID is checked inside the
// transaction that would create a second one.
type CommissionRepository interface {
	// GetByOrderID loads the commission recorded for an order, nil (no
	// error) when none exists yet.
	GetByOrderID(ctx context.Context, tx Tx, orderID string) (*domain.Commission, error)

	// InsertMut creates a mutation for inserting a commission.
	InsertMut(commission *domain.Commission) *spanner.Mutation

	// UpdateStatusMut writes the commission status.
	UpdateStatusMut(commissionID string, status domain.CommissionStatus) *spanner.Mutation
}
