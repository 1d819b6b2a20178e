package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// OrderCreatedEvent is emitted when an order commits together with its stock
// reservation.
type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Total       int64     `json:"total"`
	LineCount   int       `json:"line_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *OrderCreatedEvent) EventType() string {
	return "order.created"
}

func (e *OrderCreatedEvent) AggregateID() string {
	return e.OrderID
}

// OrderStatusChangedEvent is emitted on every legal status transition. The
// storefront's notification hooks (email, WhatsApp) consume it downstream.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (e *OrderStatusChangedEvent) EventType() string {
	return "order.status_changed"
}

func (e *OrderStatusChangedEvent) AggregateID() string {
	return e.OrderID
}

// StockRestoredEvent is emitted when a cancellation returns reserved stock.
type StockRestoredEvent struct {
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	RestoredAt time.Time `json:"restored_at"`
}

func (e *StockRestoredEvent) EventType() string {
	return "order.stock_restored"
}

func (e *StockRestoredEvent) AggregateID() string {
	return e.OrderID
}

// CommissionCreatedEvent is emitted when a delivered order first earns its
// affiliate commission.
type CommissionCreatedEvent struct {
	CommissionID string    `json:"commission_id"`
	AffiliateID  string    `json:"affiliate_id"`
	OrderID      string    `json:"order_id"`
	Amount       int64     `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *CommissionCreatedEvent) EventType() string {
	return "commission.created"
}

func (e *CommissionCreatedEvent) AggregateID() string {
	return e.OrderID
}

// CommissionCancelledEvent is emitted when a refund voids a still-unpaid
// commission.
type CommissionCancelledEvent struct {
	CommissionID string    `json:"commission_id"`
	OrderID      string    `json:"order_id"`
	CancelledAt  time.Time `json:"cancelled_at"`
}

func (e *CommissionCancelledEvent) EventType() string {
	return "commission.cancelled"
}

func (e *CommissionCancelledEvent) AggregateID() string {
	return e.OrderID
}
