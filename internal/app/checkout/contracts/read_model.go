package contracts

import (
	"context"
	"time"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// OrderDTO is the flat read shape served to the storefront and the admin
// back office.
type OrderDTO struct {
	OrderID       string             `json:"order_id"`
	OrderNumber   string             `json:"order_number"`
	UserID        string             `json:"user_id"`
	UserName      string             `json:"user_name"`
	UserEmail     string             `json:"user_email"`
	Lines         []domain.OrderLine `json:"items"`
	Subtotal      int64              `json:"subtotal"`
	Discount      int64              `json:"discount"`
	ShippingCost  int64              `json:"shipping_cost"`
	Total         int64              `json:"total"`
	DepositDue    int64              `json:"deposit_due,omitempty"`
	CouponCode    string             `json:"coupon_code,omitempty"`
	AffiliateCode string             `json:"affiliate_code,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	TrackingCode  string             `json:"tracking_code,omitempty"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeliveredAt   *time.Time         `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
}

// ListFilter narrows an order listing.
type ListFilter struct {
	UserID   string
	Status   string
	PageSize int
	Offset   int64
}

// ListResult is one page of orders plus the unpaged total.
type ListResult struct {
	Orders     []*OrderDTO
	TotalCount int64
}

// OrderReadModel serves queries that bypass the aggregate.
type OrderReadModel interface {
	// GetOrderByID returns the order DTO, ErrOrderNotFound when absent.
	GetOrderByID(ctx context.Context, orderID string) (*OrderDTO, error)

	// ListOrders returns a filtered, paginated page of orders.
	ListOrders(ctx context.Context, filter *ListFilter) (*ListResult, error)
}
