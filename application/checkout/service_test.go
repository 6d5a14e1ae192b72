package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
)

type checkoutFixture struct {
	service     *ApplicationService
	cartRepo    *memory.CartRepository
	catalogRepo *memory.CatalogRepository
	orderRepo   *memory.OrderRepository
	uowFactory  *memory.UnitOfWorkFactory
}

func newCheckoutFixture() *checkoutFixture {
	cartRepo := memory.NewCartRepository()
	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()
	uowFactory := memory.NewUnitOfWorkFactory(cartRepo, catalogRepo, orderRepo)
	return &checkoutFixture{
		service:     NewApplicationService(cartRepo, catalogRepo, orderRepo, uowFactory),
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		uowFactory:  uowFactory,
	}
}

func (f *checkoutFixture) seedProduct(t *testing.T, name string, price int64) *catalog.Product {
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

func (f *checkoutFixture) seedCartLine(t *testing.T, userID, productID string, quantity int) {
	t.Helper()
	line, err := cart.NewLine(userID, productID, quantity)
	if err != nil {
		t.Fatalf("NewLine failed: %v", err)
	}
	if err := f.cartRepo.AddOrMerge(context.Background(), line); err != nil {
		t.Fatalf("seed cart line failed: %v", err)
	}
}

func TestCheckoutFromCart(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")

	latte := f.seedProduct(t, "Latte", 45000)
	espresso := f.seedProduct(t, "Espresso", 30000)
	f.seedCartLine(t, buyer.UserID, latte.ID(), 2)
	f.seedCartLine(t, buyer.UserID, espresso.ID(), 1)

	resp, err := f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceCart,
		DeliveryAddress: "12 Nguyen Hue, District 1",
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if resp.Status != string(order.StatusPending) {
		t.Errorf("expected PENDING, got %s", resp.Status)
	}
	if resp.Total.Amount != 120000 {
		t.Errorf("expected total 120000, got %d", resp.Total.Amount)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(resp.Lines))
	}

	// The cart is drained in the same transaction
	remaining, err := f.cartRepo.FindByUserID(ctx, buyer.UserID)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected drained cart, got %d lines", len(remaining))
	}

	// The order is persisted
	placed, err := f.orderRepo.FindByID(ctx, resp.ID)
	if err != nil {
		t.Fatalf("order was not persisted: %v", err)
	}
	if placed.Status() != order.StatusPending {
		t.Errorf("persisted order should be PENDING, got %s", placed.Status())
	}

	// The placed event reached the collector
	events := f.uowFactory.Collector().Events()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Errorf("expected a single order.placed event, got %v", events)
	}
}

func TestCheckoutFromEmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	buyer := shared.NewIdentity("u-1")

	_, err := f.service.Checkout(context.Background(), buyer, CheckoutRequest{
		Source:          SourceCart,
		DeliveryAddress: "12 Nguyen Hue",
	})
	if !errors.Is(err, order.ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestCheckoutFromCartWithUnavailableProduct(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")

	latte := f.seedProduct(t, "Latte", 45000)
	f.seedCartLine(t, buyer.UserID, latte.ID(), 1)

	latte.MarkUnavailable()
	if err := f.catalogRepo.Save(ctx, latte); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceCart,
		DeliveryAddress: "12 Nguyen Hue",
	})
	if !errors.Is(err, catalog.ErrProductUnavailable) {
		t.Errorf("expected ErrProductUnavailable, got %v", err)
	}

	// The failed checkout must leave the cart intact
	remaining, _ := f.cartRepo.FindByUserID(ctx, buyer.UserID)
	if len(remaining) != 1 {
		t.Errorf("failed checkout should not drain the cart; got %d lines", len(remaining))
	}
}

func TestCheckoutBuyNow(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")

	latte := f.seedProduct(t, "Latte", 45000)
	espresso := f.seedProduct(t, "Espresso", 30000)
	f.seedCartLine(t, buyer.UserID, espresso.ID(), 1)

	resp, err := f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceBuyNow,
		DeliveryAddress: "12 Nguyen Hue",
		ProductID:       latte.ID(),
		Quantity:        3,
	})
	if err != nil {
		t.Fatalf("buy-now Checkout failed: %v", err)
	}

	if resp.Total.Amount != 135000 {
		t.Errorf("expected total 135000, got %d", resp.Total.Amount)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("expected 1 order line, got %d", len(resp.Lines))
	}

	// Buy-now never touches the cart
	remaining, _ := f.cartRepo.FindByUserID(ctx, buyer.UserID)
	if len(remaining) != 1 {
		t.Errorf("buy-now must leave the cart untouched; got %d lines", len(remaining))
	}
}

func TestCheckoutBuyNowValidation(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte", 45000)

	_, err := f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceBuyNow,
		DeliveryAddress: "12 Nguyen Hue",
	})
	if !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("missing product: expected validation error, got %v", err)
	}

	_, err = f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceBuyNow,
		DeliveryAddress: "12 Nguyen Hue",
		ProductID:       latte.ID(),
		Quantity:        0,
	})
	if !errors.Is(err, order.ErrInvalidQuantity) {
		t.Errorf("zero quantity: expected ErrInvalidQuantity, got %v", err)
	}

	_, err = f.service.Checkout(ctx, buyer, CheckoutRequest{
		Source:          SourceBuyNow,
		DeliveryAddress: "12 Nguyen Hue",
		ProductID:       "missing",
		Quantity:        1,
	})
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("unknown product: expected ErrProductNotFound, got %v", err)
	}
}

func TestConcurrentCheckoutsOfSameCart(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")

	latte := f.seedProduct(t, "Latte", 45000)
	f.seedCartLine(t, buyer.UserID, latte.ID(), 2)

	const attempts = 4
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Checkout(ctx, buyer, CheckoutRequest{
				Source:          SourceCart,
				DeliveryAddress: "12 Nguyen Hue",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, order.ErrEmptySource) {
			t.Errorf("losing checkout should see the drained cart, got %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 successful checkout, got %d", successes)
	}

	// Every reported success has exactly one persisted order behind it
	placed, err := f.orderRepo.FindByUserID(ctx, buyer.UserID)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(placed) != successes {
		t.Errorf("%d checkout(s) succeeded but %d order(s) persisted", successes, len(placed))
	}
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.service.Checkout(context.Background(), shared.Identity{}, CheckoutRequest{
		Source:          SourceCart,
		DeliveryAddress: "12 Nguyen Hue",
	})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
