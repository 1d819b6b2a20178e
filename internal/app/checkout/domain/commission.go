package domain

import "time"

// CommissionStatus is the settlement state of an affiliate commission.
type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "pending"
	CommissionApproved  CommissionStatus = "approved"
	CommissionPaid      CommissionStatus = "paid"
	CommissionCancelled CommissionStatus = "cancelled"
)

// Affiliate is the engine's read view of an affiliate account. CommissionRate
// is a percentage of the order total.
type Affiliate struct {
	ID             string
	Code           string
	CommissionRate int64
	Active         bool
}

// Commission records the payout owed to an affiliate for one referred order.
// At most one commission ever exists per order, no matter how many times the
// delivered transition is retried; the rate is snapshotted at creation and
// survives later changes to the affiliate's account.
type Commission struct {
	ID             string
	AffiliateID    string
	OrderID        string
	OrderTotal     Money
	CommissionRate int64
	Amount         Money
	Status         CommissionStatus
	CreatedAt      time.Time
}

// NewCommission computes and records the commission for a delivered order:
// order total times the affiliate's current rate, snapshotted.
func NewCommission(id string, affiliate *Affiliate, order *Order, now time.Time) *Commission {
	return &Commission{
		ID:             id,
		AffiliateID:    affiliate.ID,
		OrderID:        order.ID(),
		OrderTotal:     order.Total(),
		CommissionRate: affiliate.CommissionRate,
		Amount:         order.Total().PercentOf(affiliate.CommissionRate),
		Status:         CommissionPending,
		CreatedAt:      now,
	}
}

// Cancellable reports whether a refund may void the commission: only while
// it has not been paid out.
func (c *Commission) Cancellable() bool {
	return c.Status == CommissionPending || c.Status == CommissionApproved
}
