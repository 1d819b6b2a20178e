package m_commission

// Field name constants for the affiliate_commissions table. order_id carries
// a unique index: at most one commission per order.
const (
	TableName = "affiliate_commissions"

	CommissionID     = "commission_id"
	AffiliateID      = "affiliate_id"
	OrderID          = "order_id"
	OrderTotal       = "order_total"
	CommissionRate   = "commission_rate"
	CommissionAmount = "commission_amount"
	Status           = "status"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)
