package memory

import (
	"context"
	"sync"

	"storefront/domain/shared"
)

// TxStore is a store whose state a unit of work can snapshot and roll
// back. Every repository in this package implements it.
type TxStore interface {
	snapshot() (restore func())
}

// UnitOfWork In-memory unit of work. There is no real database
// transaction; instead units of work from the same factory are
// serialized, and on failure every participating store is rolled back
// to its pre-execution snapshot. On success events are collected from
// registered aggregates so tests can assert on what would have reached
// the outbox.
type UnitOfWork struct {
	mu         *sync.Mutex
	stores     []TxStore
	aggregates []shared.AggregateRoot
	collector  *EventCollector
}

// EventCollector accumulates domain events across units of work. Shared
// by all UoW instances a factory produces so tests see every event.
type EventCollector struct {
	events []shared.DomainEvent
	mu     sync.Mutex
}

// NewEventCollector Create event collector
func NewEventCollector() *EventCollector {
	return &EventCollector{}
}

func (c *EventCollector) append(events []shared.DomainEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, events...)
}

// Events Return a copy of all collected events in commit order
func (c *EventCollector) Events() []shared.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := make([]shared.DomainEvent, len(c.events))
	copy(events, c.events)
	return events
}

// Execute Serialize against sibling units of work, snapshot every
// participating store, run the business logic, and either collect
// events from registered aggregates (success) or restore the snapshots
// (failure). A failed checkout therefore leaves no partial order behind
// and its cart untouched, matching the MySQL transaction's rollback.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.aggregates = u.aggregates[:0]

	restores := make([]func(), len(u.stores))
	for i, store := range u.stores {
		restores[i] = store.snapshot()
	}

	if err := fn(ctx); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}

	for _, agg := range u.aggregates {
		events := agg.PullEvents()
		if u.collector != nil {
			u.collector.append(events)
		}
	}

	return nil
}

// RegisterNew registers a newly created aggregate root for event collection
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// UnitOfWorkFactory produces in-memory units of work over a fixed set
// of stores, sharing one event collector and one execution lock.
type UnitOfWorkFactory struct {
	mu        sync.Mutex
	stores    []TxStore
	collector *EventCollector
}

// NewUnitOfWorkFactory Create in-memory unit of work factory over the
// given stores
func NewUnitOfWorkFactory(stores ...TxStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		stores:    stores,
		collector: NewEventCollector(),
	}
}

// Collector Return the shared event collector
func (f *UnitOfWorkFactory) Collector() *EventCollector {
	return f.collector
}

// New Create a fresh unit of work
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return &UnitOfWork{
		mu:         &f.mu,
		stores:     f.stores,
		aggregates: make([]shared.AggregateRoot, 0),
		collector:  f.collector,
	}
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
