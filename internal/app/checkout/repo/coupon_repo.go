package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_coupon"
)

// CouponRepo implements CouponRepository over the coupons table.
type CouponRepo struct {
	model *m_coupon.Model
}

// NewCouponRepo creates a new CouponRepo.
func NewCouponRepo() contracts.CouponRepository {
	return &CouponRepo{model: m_coupon.NewModel()}
}

// GetByCode loads a coupon row. Callers pass the normalized (upper-cased)
// code; the column stores it the same way.
func (r *CouponRepo) GetByCode(ctx context.Context, tx contracts.Tx, code string) (*domain.Coupon, error) {
	row, err := tx.ReadRow(ctx, m_coupon.TableName, spanner.Key{code}, r.model.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to read coupon: %w", err)
	}

	var data m_coupon.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse coupon: %w", err)
	}

	return couponDataToDomain(&data), nil
}

// UpdateUsedCountMut writes the used_count counter.
func (r *CouponRepo) UpdateUsedCountMut(code string, usedCount int64) *spanner.Mutation {
	return r.model.UpdateUsedCountMut(code, usedCount)
}

func couponDataToDomain(data *m_coupon.Data) *domain.Coupon {
	c := &domain.Coupon{
		Code:          data.Code,
		DiscountType:  domain.DiscountType(data.DiscountType),
		DiscountValue: data.DiscountValue,
		MaxDiscount:   domain.NewMoney(data.MaxDiscount),
		MinOrderValue: domain.NewMoney(data.MinOrderValue),
		UsageLimit:    data.UsageLimit,
		UsedCount:     data.UsedCount,
		ValidFrom:     data.ValidFrom.UTC(),
		Active:        data.IsActive,
	}
	if data.ValidUntil.Valid {
		c.ValidUntil = data.ValidUntil.Time.UTC()
	}
	return c
}
