package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
)

type cartFixture struct {
	service     *ApplicationService
	cartRepo    *memory.CartRepository
	catalogRepo *memory.CatalogRepository
}

func newCartFixture() *cartFixture {
	cartRepo := memory.NewCartRepository()
	catalogRepo := memory.NewCatalogRepository()
	return &cartFixture{
		service:     NewApplicationService(cartRepo, catalogRepo),
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
	}
}

func (f *cartFixture) seedProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "coffee", *shared.NewMoney(price, shared.DefaultCurrency))
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if err := f.catalogRepo.Save(context.Background(), p); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return p
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)

	if err := f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: latte.ID(), Quantity: 2}); err != nil {
		t.Fatalf("first AddToCart failed: %v", err)
	}
	if err := f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: latte.ID(), Quantity: 3}); err != nil {
		t.Fatalf("second AddToCart failed: %v", err)
	}

	resp, err := f.service.GetCart(ctx, buyer)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(resp.Lines))
	}
	if resp.Lines[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", resp.Lines[0].Quantity)
	}
	if resp.Total.Amount != 225000 {
		t.Errorf("expected total 225000, got %d", resp.Total.Amount)
	}
}

func TestAddToCartGuards(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)

	err := f.service.AddToCart(ctx, shared.Identity{}, AddToCartRequest{ProductID: latte.ID(), Quantity: 1})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("anonymous add: expected ErrUnauthorized, got %v", err)
	}

	err = f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: "missing", Quantity: 1})
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("unknown product: expected ErrProductNotFound, got %v", err)
	}

	latte.MarkUnavailable()
	if err := f.catalogRepo.Save(ctx, latte); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	err = f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: latte.ID(), Quantity: 1})
	if !errors.Is(err, catalog.ErrProductUnavailable) {
		t.Errorf("off-sale product: expected ErrProductUnavailable, got %v", err)
	}
}

func TestSetQuantity(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)

	if err := f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: latte.ID(), Quantity: 2}); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	resp, err := f.service.GetCart(ctx, buyer)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	lineID := resp.Lines[0].ID

	if err := f.service.SetQuantity(ctx, buyer, lineID, SetQuantityRequest{Quantity: 7}); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	resp, _ = f.service.GetCart(ctx, buyer)
	if resp.Lines[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", resp.Lines[0].Quantity)
	}

	// Replacing with zero is rejected; removal is a separate operation
	err = f.service.SetQuantity(ctx, buyer, lineID, SetQuantityRequest{Quantity: 0})
	if !errors.Is(err, cart.ErrInvalidQuantity) {
		t.Errorf("zero quantity: expected ErrInvalidQuantity, got %v", err)
	}

	// Another user's line is indistinguishable from a missing one
	err = f.service.SetQuantity(ctx, shared.NewIdentity("u-2"), lineID, SetQuantityRequest{Quantity: 1})
	if !errors.Is(err, cart.ErrLineNotFound) {
		t.Errorf("foreign line: expected ErrLineNotFound, got %v", err)
	}
}

func TestRemoveLineAndClear(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)
	espresso := f.seedProduct(t, "Espresso", 30000)

	for _, p := range []*catalog.Product{latte, espresso} {
		if err := f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: p.ID(), Quantity: 1}); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}
	}

	resp, err := f.service.GetCart(ctx, buyer)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(resp.Lines))
	}

	if err := f.service.RemoveLine(ctx, buyer, resp.Lines[0].ID); err != nil {
		t.Fatalf("RemoveLine failed: %v", err)
	}
	resp, _ = f.service.GetCart(ctx, buyer)
	if len(resp.Lines) != 1 {
		t.Fatalf("expected 1 line after removal, got %d", len(resp.Lines))
	}

	if err := f.service.Clear(ctx, buyer); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	resp, _ = f.service.GetCart(ctx, buyer)
	if len(resp.Lines) != 0 {
		t.Errorf("expected empty cart after Clear, got %d lines", len(resp.Lines))
	}

	// Clearing an already empty cart is a no-op
	if err := f.service.Clear(ctx, buyer); err != nil {
		t.Errorf("Clear of empty cart failed: %v", err)
	}
}

func TestGetCartExcludesUnavailableFromTotal(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)
	espresso := f.seedProduct(t, "Espresso", 30000)

	for _, p := range []*catalog.Product{latte, espresso} {
		if err := f.service.AddToCart(ctx, buyer, AddToCartRequest{ProductID: p.ID(), Quantity: 1}); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}
	}

	// Product goes off sale after it entered the cart
	espresso.MarkUnavailable()
	if err := f.catalogRepo.Save(ctx, espresso); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	resp, err := f.service.GetCart(ctx, buyer)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected both lines shown, got %d", len(resp.Lines))
	}
	if resp.Total.Amount != 45000 {
		t.Errorf("unavailable line must not contribute to total; expected 45000, got %d", resp.Total.Amount)
	}

	for _, line := range resp.Lines {
		if line.ProductID == espresso.ID() && line.Available {
			t.Error("espresso line should be marked unavailable")
		}
	}
}
