package shared

import "time"

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Events are collected by the UnitOfWork and written to the outbox table
// in the same transaction as the state change.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	AggregateID() string
}

// ValidateEvent rejects structurally incomplete events before they are
// written to the outbox.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return NewValidationError("event", "", "event cannot be nil")
	}
	if event.EventName() == "" {
		return NewValidationError("event", "name", "event name cannot be empty")
	}
	if event.AggregateID() == "" {
		return NewValidationError("event", "aggregate_id", "aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return NewValidationError("event", "occurred_on", "occurred on time cannot be zero")
	}
	return nil
}
