package memory

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/order"
	"storefront/domain/shared"
)

func seedOrder(t *testing.T, repo *OrderRepository, userID string) *order.Order {
	t.Helper()
	unit := shared.NewMoney(45000, shared.DefaultCurrency)
	o, err := order.NewOrder(userID, "12 Nguyen Hue", []order.PricedLine{
		{ProductID: "p-1", ProductName: "Latte", Quantity: 1, UnitPrice: *unit, Subtotal: *unit},
	}, *unit)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	o.PullEvents()
	if err := repo.Save(context.Background(), o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return o
}

func TestOrderTransition(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := seedOrder(t, repo, "u-1")

	if err := repo.Transition(ctx, o.ID(), order.StatusPending, order.StatusCompleted); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status() != order.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", stored.Status())
	}
	if stored.Version() != o.Version()+1 {
		t.Errorf("transition should bump the version; expected %d, got %d", o.Version()+1, stored.Version())
	}
}

func TestOrderTransitionLostRace(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := seedOrder(t, repo, "u-1")

	// First writer wins
	if err := repo.Transition(ctx, o.ID(), order.StatusPending, order.StatusCancelled); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	// Second writer sees the expected state gone
	err := repo.Transition(ctx, o.ID(), order.StatusPending, order.StatusCompleted)
	if !errors.Is(err, order.ErrInvalidTransition) {
		t.Errorf("lost race: expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := repo.FindByID(ctx, o.ID())
	if stored.Status() != order.StatusCancelled {
		t.Errorf("lost race must not change the state; got %s", stored.Status())
	}
}

func TestOrderTransitionNotFound(t *testing.T) {
	repo := NewOrderRepository()

	err := repo.Transition(context.Background(), "missing", order.StatusPending, order.StatusCompleted)
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCompletedQuantityAcrossOrders(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	unit := shared.NewMoney(45000, shared.DefaultCurrency)
	for _, userID := range []string{"u-1", "u-2"} {
		sub, _ := unit.Multiply(2)
		o, err := order.NewOrder(userID, "12 Nguyen Hue", []order.PricedLine{
			{ProductID: "p-1", ProductName: "Latte", Quantity: 2, UnitPrice: *unit, Subtotal: *sub},
		}, *sub)
		if err != nil {
			t.Fatalf("NewOrder failed: %v", err)
		}
		o.PullEvents()
		if err := repo.Save(ctx, o); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Transition(ctx, o.ID(), order.StatusPending, order.StatusCompleted); err != nil {
			t.Fatalf("Transition failed: %v", err)
		}
	}
	// A cancelled order for the same product does not count
	cancelled := seedOrder(t, repo, "u-3")
	if err := repo.Transition(ctx, cancelled.ID(), order.StatusPending, order.StatusCancelled); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	qty, err := repo.CompletedQuantity(ctx, "p-1")
	if err != nil {
		t.Fatalf("CompletedQuantity failed: %v", err)
	}
	if qty != 4 {
		t.Errorf("expected 4 completed units, got %d", qty)
	}
}
