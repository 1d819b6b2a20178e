package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_affiliate"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// AffiliateRepo implements AffiliateRepository over the affiliates table.
type AffiliateRepo struct {
	model *m_affiliate.Model
}

// NewAffiliateRepo creates a new AffiliateRepo.
func NewAffiliateRepo() contracts.AffiliateRepository {
	return &AffiliateRepo{model: m_affiliate.NewModel()}
}

// GetByCode loads an affiliate by referral code.
func (r *AffiliateRepo) GetByCode(ctx context.Context, tx contracts.Tx, code string) (*domain.Affiliate, error) {
	stmt := query.From(m_affiliate.TableName).
		Select(r.model.Columns()...).
		Where(query.Eq(m_affiliate.Code, code)).
		Limit(1).
		Build()

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrAffiliateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query affiliate: %w", err)
	}

	var data m_affiliate.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse affiliate: %w", err)
	}

	return &domain.Affiliate{
		ID:             data.AffiliateID,
		Code:           data.Code,
		CommissionRate: data.CommissionRate,
		Active:         data.IsActive,
	}, nil
}

// GetStats reads the denormalized totals under the row lock of tx, so the
// write derived from them observes every earlier commit.
func (r *AffiliateRepo) GetStats(ctx context.Context, tx contracts.Tx, affiliateID string) (*contracts.AffiliateStats, error) {
	row, err := tx.ReadRow(ctx, m_affiliate.TableName, spanner.Key{affiliateID},
		[]string{m_affiliate.TotalSales, m_affiliate.TotalCommission, m_affiliate.PendingCommission})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrAffiliateNotFound
		}
		return nil, fmt.Errorf("failed to read affiliate stats: %w", err)
	}

	var stats contracts.AffiliateStats
	if err := row.Columns(&stats.TotalSales, &stats.TotalCommission, &stats.PendingCommission); err != nil {
		return nil, fmt.Errorf("failed to parse affiliate stats: %w", err)
	}
	return &stats, nil
}

// UpdateStatsMut writes the denormalized totals.
func (r *AffiliateRepo) UpdateStatsMut(affiliateID string, stats *contracts.AffiliateStats) *spanner.Mutation {
	return r.model.UpdateStatsMut(affiliateID, stats.TotalSales, stats.TotalCommission, stats.PendingCommission)
}
