package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_commission"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// CommissionRepo implements CommissionRepository over the
// affiliate_commissions table.
type CommissionRepo struct {
	model *m_commission.Model
}

// NewCommissionRepo creates a new CommissionRepo.
func NewCommissionRepo() contracts.CommissionRepository {
	return &CommissionRepo{model: m_commission.NewModel()}
}

// GetByOrderID loads the commission recorded for an order, nil when none
// exists. Reading through tx locks the row, which is what makes the
// one-commission-per-order check safe under retried delivered transitions.
func (r *CommissionRepo) GetByOrderID(ctx context.Context, tx contracts.Tx, orderID string) (*domain.Commission, error) {
	stmt := query.From(m_commission.TableName).
		Select(r.model.Columns()...).
		Where(query.Eq(m_commission.OrderID, orderID)).
		Limit(1).
		Build()

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query commission: %w", err)
	}

	var data m_commission.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse commission: %w", err)
	}

	return &domain.Commission{
		ID:             data.CommissionID,
		AffiliateID:    data.AffiliateID,
		OrderID:        data.OrderID,
		OrderTotal:     domain.NewMoney(data.OrderTotal),
		CommissionRate: data.CommissionRate,
		Amount:         domain.NewMoney(data.CommissionAmount),
		Status:         domain.CommissionStatus(data.Status),
		CreatedAt:      data.CreatedAt.UTC(),
	}, nil
}

// InsertMut creates a mutation for inserting a commission.
func (r *CommissionRepo) InsertMut(commission *domain.Commission) *spanner.Mutation {
	return r.model.InsertMut(&m_commission.Data{
		CommissionID:     commission.ID,
		AffiliateID:      commission.AffiliateID,
		OrderID:          commission.OrderID,
		OrderTotal:       commission.OrderTotal.Amount(),
		CommissionRate:   commission.CommissionRate,
		CommissionAmount: commission.Amount.Amount(),
		Status:           string(commission.Status),
	})
}

// UpdateStatusMut writes the commission status.
func (r *CommissionRepo) UpdateStatusMut(commissionID string, status domain.CommissionStatus) *spanner.Mutation {
	return r.model.UpdateStatusMut(commissionID, string(status))
}
