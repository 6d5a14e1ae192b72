package shared

// AggregateRoot is the entry point of an aggregate. It owns the
// consistency boundary: all modifications go through its methods, and it
// records the domain events those modifications produce.
type AggregateRoot interface {
	// ID returns the globally unique identifier of the aggregate.
	ID() string

	// Version returns the optimistic-lock version.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The UnitOfWork calls this inside the transaction to persist the
	// events to the outbox exactly once.
	PullEvents() []DomainEvent
}
