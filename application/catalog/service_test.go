package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
)

type catalogFixture struct {
	service     *ApplicationService
	catalogRepo *memory.CatalogRepository
	orderRepo   *memory.OrderRepository
}

func newCatalogFixture() *catalogFixture {
	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()
	return &catalogFixture{
		service:     NewApplicationService(catalogRepo, orderRepo),
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
	}
}

func TestCreateProduct(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	resp, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{
		Name:        "Latte",
		Category:    "coffee",
		PriceAmount: 45000,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if resp.ID == "" {
		t.Error("created product should have an ID")
	}
	if resp.Price.Currency != shared.DefaultCurrency {
		t.Errorf("expected default currency, got %s", resp.Price.Currency)
	}
	if resp.Status != string(catalog.Available) {
		t.Errorf("new product should be available, got %s", resp.Status)
	}

	// Admin gate
	_, err = f.service.CreateProduct(ctx, shared.NewIdentity("u-1"), CreateProductRequest{Name: "Mocha", PriceAmount: 50000})
	if !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("non-admin create: expected ErrForbidden, got %v", err)
	}
	_, err = f.service.CreateProduct(ctx, shared.Identity{}, CreateProductRequest{Name: "Mocha", PriceAmount: 50000})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("anonymous create: expected ErrUnauthorized, got %v", err)
	}
}

func TestListProductsHidesOffSale(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	latte, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{Name: "Latte", Category: "coffee", PriceAmount: 45000})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if _, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{Name: "Espresso", Category: "coffee", PriceAmount: 30000}); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	offSale := false
	if _, err := f.service.UpdateProduct(ctx, admin, latte.ID, UpdateProductRequest{Available: &offSale}); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	public, err := f.service.ListProducts(ctx, ListProductsRequest{})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if public.Total != 1 {
		t.Errorf("public listing should hide off-sale products; expected 1, got %d", public.Total)
	}

	all, err := f.service.ListAllProducts(ctx, admin, ListProductsRequest{})
	if err != nil {
		t.Fatalf("ListAllProducts failed: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("admin listing should include off-sale products; expected 2, got %d", all.Total)
	}

	if _, err := f.service.ListAllProducts(ctx, shared.NewIdentity("u-1"), ListProductsRequest{}); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("non-admin full listing: expected ErrForbidden, got %v", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	created, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{Name: "Latte", Category: "coffee", PriceAmount: 45000})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	newPrice := int64(48000)
	updated, err := f.service.UpdateProduct(ctx, admin, created.ID, UpdateProductRequest{PriceAmount: &newPrice})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Price.Amount != 48000 {
		t.Errorf("expected price 48000, got %d", updated.Price.Amount)
	}
	// Untouched fields keep their values
	if updated.Name != "Latte" || updated.Category != "coffee" {
		t.Errorf("partial update changed untouched fields: %+v", updated)
	}

	_, err = f.service.UpdateProduct(ctx, admin, "missing", UpdateProductRequest{PriceAmount: &newPrice})
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("unknown product: expected ErrProductNotFound, got %v", err)
	}
}

func TestRemoveProduct(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	created, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{Name: "Latte", PriceAmount: 45000})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if err := f.service.RemoveProduct(ctx, admin, created.ID); err != nil {
		t.Fatalf("RemoveProduct failed: %v", err)
	}
	if _, err := f.service.GetProduct(ctx, created.ID); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("removed product should be gone, got %v", err)
	}
}

func TestSoldCount(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	created, err := f.service.CreateProduct(ctx, admin, CreateProductRequest{Name: "Latte", PriceAmount: 45000})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	unit := shared.NewMoney(45000, shared.DefaultCurrency)
	sub, _ := unit.Multiply(3)
	o, err := order.NewOrder("u-1", "12 Nguyen Hue", []order.PricedLine{
		{ProductID: created.ID, ProductName: "Latte", Quantity: 3, UnitPrice: *unit, Subtotal: *sub},
	}, *sub)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	o.PullEvents()
	if err := f.orderRepo.Save(ctx, o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Pending orders do not count as sales
	resp, err := f.service.SoldCount(ctx, admin, created.ID)
	if err != nil {
		t.Fatalf("SoldCount failed: %v", err)
	}
	if resp.Sold != 0 {
		t.Errorf("pending order must not count; expected 0, got %d", resp.Sold)
	}

	if err := f.orderRepo.Transition(ctx, o.ID(), order.StatusPending, order.StatusCompleted); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	resp, err = f.service.SoldCount(ctx, admin, created.ID)
	if err != nil {
		t.Fatalf("SoldCount failed: %v", err)
	}
	if resp.Sold != 3 {
		t.Errorf("expected 3 sold, got %d", resp.Sold)
	}

	if _, err := f.service.SoldCount(ctx, shared.NewIdentity("u-1"), created.ID); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("non-admin sold count: expected ErrForbidden, got %v", err)
	}
}
