package domain

import (
	"fmt"
	"time"
)

// Field names for change tracking
const (
	FieldStatus       = "status"
	FieldTrackingCode = "tracking_code"
	FieldDeliveredAt  = "delivered_at"
	FieldCancelledAt  = "cancelled_at"
)

// OrderStatus is the lifecycle state of an order. Statuses are state-machine
// keys, not display labels; the storefront renders its own wording.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

// legalTransitions is the full transition table: forward along the
// fulfillment chain, cancellation before shipping, refund after delivery or
// cancellation. Anything else is rejected, never coerced.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {StatusRefunded},
	StatusRefunded:   {},
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := legalTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderLine is one frozen line of an order snapshot. Name and unit price are
// captured at purchase time and never re-derived from the live product.
type OrderLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	LineTotal   int64  `json:"line_total"`
	IsFlashSale bool   `json:"is_flash_sale"`
	FlashSaleID string `json:"flash_sale_id,omitempty"`
}

// Order is the aggregate root for a placed order. It is created atomically
// with its stock reservation, mutated only through Transition, and never
// deleted: cancellation is a status.
type Order struct {
	id            string
	orderNumber   string
	requestID     string
	userID        string
	userName      string
	userEmail     string
	lines         []OrderLine
	subtotal      Money
	discount      Money
	shippingCost  Money
	total         Money
	depositDue    Money
	couponCode    string
	affiliateCode string
	paymentMethod string
	trackingCode  string
	status        OrderStatus
	createdAt     time.Time
	updatedAt     time.Time
	deliveredAt   *time.Time
	cancelledAt   *time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// CustomerInfo is the buyer metadata attached to a new order.
type CustomerInfo struct {
	UserID        string
	UserName      string
	UserEmail     string
	PaymentMethod string
	AffiliateCode string
}

// NewOrder builds an Order from a priced quote and customer metadata. Line
// prices are copied from the quote, freezing the snapshot.
func NewOrder(id, orderNumber, requestID string, quote *Quote, customer CustomerInfo, now time.Time) (*Order, error) {
	if len(quote.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]OrderLine, 0, len(quote.Lines))
	for _, ql := range quote.Lines {
		lines = append(lines, OrderLine{
			ProductID:   ql.ProductID,
			ProductName: ql.ProductName,
			UnitPrice:   ql.UnitPrice.Amount(),
			Quantity:    ql.Quantity,
			LineTotal:   ql.LineTotal.Amount(),
			IsFlashSale: ql.IsFlashSale,
			FlashSaleID: ql.FlashSaleID,
		})
	}

	o := &Order{
		id:            id,
		orderNumber:   orderNumber,
		requestID:     requestID,
		userID:        customer.UserID,
		userName:      customer.UserName,
		userEmail:     customer.UserEmail,
		lines:         lines,
		subtotal:      quote.Subtotal,
		discount:      quote.Discount,
		shippingCost:  quote.ShippingCost,
		total:         quote.Total,
		depositDue:    quote.DepositDue,
		couponCode:    quote.CouponCode,
		affiliateCode: customer.AffiliateCode,
		paymentMethod: customer.PaymentMethod,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}

	o.recordEvent(&OrderCreatedEvent{
		OrderID:     o.id,
		OrderNumber: o.orderNumber,
		UserID:      o.userID,
		Total:       o.total.Amount(),
		LineCount:   len(o.lines),
		CreatedAt:   o.createdAt,
	})

	return o, nil
}

// ReconstructOrder reconstitutes an Order from the database.
func ReconstructOrder(
	id, orderNumber, requestID, userID, userName, userEmail string,
	lines []OrderLine,
	subtotal, discount, shippingCost, total, depositDue Money,
	couponCode, affiliateCode, paymentMethod, trackingCode string,
	status OrderStatus,
	createdAt, updatedAt time.Time,
	deliveredAt, cancelledAt *time.Time,
) *Order {
	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		requestID:     requestID,
		userID:        userID,
		userName:      userName,
		userEmail:     userEmail,
		lines:         lines,
		subtotal:      subtotal,
		discount:      discount,
		shippingCost:  shippingCost,
		total:         total,
		depositDue:    depositDue,
		couponCode:    couponCode,
		affiliateCode: affiliateCode,
		paymentMethod: paymentMethod,
		trackingCode:  trackingCode,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deliveredAt:   deliveredAt,
		cancelledAt:   cancelledAt,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}
}

// Getters
func (o *Order) ID() string                 { return o.id }
func (o *Order) OrderNumber() string        { return o.orderNumber }
func (o *Order) RequestID() string          { return o.requestID }
func (o *Order) UserID() string             { return o.userID }
func (o *Order) UserName() string           { return o.userName }
func (o *Order) UserEmail() string          { return o.userEmail }
func (o *Order) Lines() []OrderLine         { return o.lines }
func (o *Order) Subtotal() Money            { return o.subtotal }
func (o *Order) Discount() Money            { return o.discount }
func (o *Order) ShippingCost() Money        { return o.shippingCost }
func (o *Order) Total() Money               { return o.total }
func (o *Order) DepositDue() Money          { return o.depositDue }
func (o *Order) CouponCode() string         { return o.couponCode }
func (o *Order) AffiliateCode() string      { return o.affiliateCode }
func (o *Order) PaymentMethod() string      { return o.paymentMethod }
func (o *Order) TrackingCode() string       { return o.trackingCode }
func (o *Order) Status() OrderStatus        { return o.status }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) DeliveredAt() *time.Time    { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time    { return o.cancelledAt }
func (o *Order) Changes() *ChangeTracker    { return o.changes }
func (o *Order) DomainEvents() []DomainEvent { return o.events }

// HasAffiliate returns true if the order carries an affiliate attribution.
func (o *Order) HasAffiliate() bool {
	return o.affiliateCode != ""
}

// Transition moves the order to next, enforcing the transition table. The
// status change and its timestamps are the only mutation; side effects
// (stock restore, commission) are driven by the use case inside the same
// database transaction.
func (o *Order) Transition(next OrderStatus, now time.Time) error {
	if !ValidStatus(next) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if !CanTransition(o.status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.status, next)
	}

	previous := o.status
	o.status = next
	o.updatedAt = now
	o.changes.MarkDirty(FieldStatus)

	switch next {
	case StatusDelivered:
		o.deliveredAt = &now
		o.changes.MarkDirty(FieldDeliveredAt)
	case StatusCancelled:
		o.cancelledAt = &now
		o.changes.MarkDirty(FieldCancelledAt)
	}

	o.recordEvent(&OrderStatusChangedEvent{
		OrderID:     o.id,
		OrderNumber: o.orderNumber,
		From:        string(previous),
		To:          string(next),
		ChangedAt:   now,
	})

	return nil
}

// SetTrackingCode attaches a carrier tracking code, normally alongside the
// shipped transition.
func (o *Order) SetTrackingCode(code string, now time.Time) {
	o.trackingCode = code
	o.updatedAt = now
	o.changes.MarkDirty(FieldTrackingCode)
}

// recordEvent adds a domain event to the list of events.
func (o *Order) recordEvent(event DomainEvent) {
	o.events = append(o.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (o *Order) ClearEvents() {
	o.events = make([]DomainEvent, 0)
}
