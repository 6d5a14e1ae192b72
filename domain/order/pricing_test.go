package order

import (
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/shared"
)

func mustProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "coffee", *shared.NewMoney(price, shared.DefaultCurrency))
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	return p
}

func TestPrice(t *testing.T) {
	latte := mustProduct(t, "Latte", 45000)
	espresso := mustProduct(t, "Espresso", 30000)

	lines, total, err := Price([]PricingInput{
		{Product: latte, Quantity: 2},
		{Product: espresso, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 priced lines, got %d", len(lines))
	}
	if lines[0].Subtotal.Amount() != 90000 {
		t.Errorf("expected first subtotal 90000, got %d", lines[0].Subtotal.Amount())
	}
	if lines[1].Subtotal.Amount() != 30000 {
		t.Errorf("expected second subtotal 30000, got %d", lines[1].Subtotal.Amount())
	}
	if total.Amount() != 120000 {
		t.Errorf("expected total 120000, got %d", total.Amount())
	}

	// Unit price is snapshotted at pricing time
	if lines[0].UnitPrice.Amount() != 45000 {
		t.Errorf("expected unit price 45000, got %d", lines[0].UnitPrice.Amount())
	}
	if lines[0].ProductName != "Latte" {
		t.Errorf("expected product name Latte, got %s", lines[0].ProductName)
	}
}

func TestPriceRejectsUnavailableProduct(t *testing.T) {
	latte := mustProduct(t, "Latte", 45000)
	latte.MarkUnavailable()

	_, _, err := Price([]PricingInput{{Product: latte, Quantity: 1}})
	if !errors.Is(err, catalog.ErrProductUnavailable) {
		t.Errorf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestPriceRejectsNonPositiveQuantity(t *testing.T) {
	latte := mustProduct(t, "Latte", 45000)

	for _, qty := range []int{0, -1} {
		_, _, err := Price([]PricingInput{{Product: latte, Quantity: qty}})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestPriceEmptyInput(t *testing.T) {
	lines, total, err := Price(nil)
	if err != nil {
		t.Fatalf("Price of empty input failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
	if total.Amount() != 0 {
		t.Errorf("expected zero total, got %d", total.Amount())
	}
}
