package domain

import (
	"time"

	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Event is the base interface for all order events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time `json:"occurredAt"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised when checkout creates an order.
type OrderPlaced struct {
	BaseEvent
	OrderID string        `json:"orderId"`
	Total   money.Money   `json:"total"`
	Method  PaymentMethod `json:"method"`
	Items   int           `json:"items"`
}

// EventName returns the event type identifier.
func (e OrderPlaced) EventName() string {
	return "orders.order.placed"
}

// OrderStatusChanged is raised each time the scheduler advances an order.
type OrderStatusChanged struct {
	BaseEvent
	OrderID    string `json:"orderId"`
	FromStatus Status `json:"fromStatus"`
	ToStatus   Status `json:"toStatus"`
}

// EventName returns the event type identifier.
func (e OrderStatusChanged) EventName() string {
	return "orders.order.status_changed"
}
