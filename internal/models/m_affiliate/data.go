package m_affiliate

import "time"

// Data represents the database model for the affiliates table.
type Data struct {
	AffiliateID       string    `spanner:"affiliate_id"`
	Code              string    `spanner:"code"`
	CommissionRate    int64     `spanner:"commission_rate"`
	IsActive          bool      `spanner:"is_active"`
	TotalSales        int64     `spanner:"total_sales"`
	TotalCommission   int64     `spanner:"total_commission"`
	PendingCommission int64     `spanner:"pending_commission"`
	PaidCommission    int64     `spanner:"paid_commission"`
	CreatedAt         time.Time `spanner:"created_at"`
	UpdatedAt         time.Time `spanner:"updated_at"`
}
