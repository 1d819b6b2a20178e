package m_commission

import "time"

// Data represents the database model for the affiliate_commissions table.
type Data struct {
	CommissionID     string    `spanner:"commission_id"`
	AffiliateID      string    `spanner:"affiliate_id"`
	OrderID          string    `spanner:"order_id"`
	OrderTotal       int64     `spanner:"order_total"`
	CommissionRate   int64     `spanner:"commission_rate"`
	CommissionAmount int64     `spanner:"commission_amount"`
	Status           string    `spanner:"status"`
	CreatedAt        time.Time `spanner:"created_at"`
	UpdatedAt        time.Time `spanner:"updated_at"`
}
