package m_affiliate

// Field name constants for the affiliates table. The aggregate totals are
// denormalized statistics updated in the same transaction as commissions.
const (
	TableName = "affiliates"

	AffiliateID       = "affiliate_id"
	Code              = "code"
	CommissionRate    = "commission_rate"
	IsActive          = "is_active"
	TotalSales        = "total_sales"
	TotalCommission   = "total_commission"
	PendingCommission = "pending_commission"
	PaidCommission    = "paid_commission"
	CreatedAt         = "created_at"
	UpdatedAt         = "updated_at"
)
