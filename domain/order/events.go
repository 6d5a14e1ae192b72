package order

import (
	"time"

	"storefront/domain/shared"
)

type PlacedEvent struct {
	orderID    string
	userID     string
	total      shared.Money
	occurredOn time.Time
}

func NewPlacedEvent(orderID, userID string, total shared.Money) *PlacedEvent {
	return &PlacedEvent{
		orderID:    orderID,
		userID:     userID,
		total:      total,
		occurredOn: time.Now(),
	}
}

func (e *PlacedEvent) EventName() string     { return "order.placed" }
func (e *PlacedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *PlacedEvent) AggregateID() string   { return e.orderID }
func (e *PlacedEvent) OrderID() string       { return e.orderID }
func (e *PlacedEvent) UserID() string        { return e.userID }
func (e *PlacedEvent) Total() shared.Money   { return e.total }

type CompletedEvent struct {
	orderID    string
	userID     string
	occurredOn time.Time
}

func NewCompletedEvent(orderID, userID string) *CompletedEvent {
	return &CompletedEvent{
		orderID:    orderID,
		userID:     userID,
		occurredOn: time.Now(),
	}
}

func (e *CompletedEvent) EventName() string     { return "order.completed" }
func (e *CompletedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *CompletedEvent) AggregateID() string   { return e.orderID }
func (e *CompletedEvent) OrderID() string       { return e.orderID }
func (e *CompletedEvent) UserID() string        { return e.userID }

type CancelledEvent struct {
	orderID    string
	userID     string
	occurredOn time.Time
}

func NewCancelledEvent(orderID, userID string) *CancelledEvent {
	return &CancelledEvent{
		orderID:    orderID,
		userID:     userID,
		occurredOn: time.Now(),
	}
}

func (e *CancelledEvent) EventName() string     { return "order.cancelled" }
func (e *CancelledEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *CancelledEvent) AggregateID() string   { return e.orderID }
func (e *CancelledEvent) OrderID() string       { return e.orderID }
func (e *CancelledEvent) UserID() string        { return e.userID }
