package memory

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/order"
	"storefront/domain/shared"
)

func TestUnitOfWorkRollsBackOnError(t *testing.T) {
	orderRepo := NewOrderRepository()
	cartRepo := NewCartRepository()
	factory := NewUnitOfWorkFactory(cartRepo, orderRepo)
	ctx := context.Background()

	line, err := cart.NewLine("u-1", "p-1", 2)
	if err != nil {
		t.Fatalf("NewLine failed: %v", err)
	}
	if err := cartRepo.Save(ctx, line); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	conflict := order.NewConcurrentModificationError("o-1")
	var savedID string
	uow := factory.New()
	execErr := uow.Execute(ctx, func(ctx context.Context) error {
		o := seedOrder(t, orderRepo, "u-1")
		savedID = o.ID()
		if _, err := cartRepo.RemoveByIDs(ctx, "u-1", []string{line.ID()}); err != nil {
			return err
		}
		return conflict
	})
	if !errors.Is(execErr, order.ErrConcurrentModification) {
		t.Fatalf("expected the conflict to surface, got %v", execErr)
	}

	// The order saved inside the failed unit of work is gone again
	if _, err := orderRepo.FindByID(ctx, savedID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("expected the saved order rolled back, got %v", err)
	}

	// The drained cart line is back
	remaining, err := cartRepo.FindByUserID(ctx, "u-1")
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("expected the cart restored to 1 line, got %d", len(remaining))
	}

	// No events escape a failed unit of work
	if events := factory.Collector().Events(); len(events) != 0 {
		t.Errorf("expected no collected events, got %d", len(events))
	}
}

func TestUnitOfWorkCommitsOnSuccess(t *testing.T) {
	orderRepo := NewOrderRepository()
	factory := NewUnitOfWorkFactory(orderRepo)
	ctx := context.Background()

	var savedID string
	uow := factory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		unit := shared.NewMoney(30000, shared.DefaultCurrency)
		o, err := order.NewOrder("u-1", "12 Nguyen Hue", []order.PricedLine{
			{ProductID: "p-1", ProductName: "Espresso", Quantity: 1, UnitPrice: *unit, Subtotal: *unit},
		}, *unit)
		if err != nil {
			return err
		}
		savedID = o.ID()
		if err := orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := orderRepo.FindByID(ctx, savedID); err != nil {
		t.Errorf("expected the order persisted, got %v", err)
	}
	events := factory.Collector().Events()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Errorf("expected a single order.placed event, got %v", events)
	}
}
