package shared

import "context"

// UnitOfWork manages the transaction boundary and collects aggregate
// events for the outbox. Execute runs fn inside one transaction; the
// context passed to fn carries the transaction so repositories join it.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory produces a fresh UnitOfWork per request so that
// concurrent requests never share registered-aggregate state.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events inside the active transaction.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
