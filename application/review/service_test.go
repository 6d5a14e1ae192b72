package review

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
)

type reviewFixture struct {
	service     *ApplicationService
	reviewRepo  *memory.ReviewRepository
	orderRepo   *memory.OrderRepository
	catalogRepo *memory.CatalogRepository
	uowFactory  *memory.UnitOfWorkFactory
}

func newReviewFixture() *reviewFixture {
	reviewRepo := memory.NewReviewRepository()
	orderRepo := memory.NewOrderRepository()
	catalogRepo := memory.NewCatalogRepository()
	uowFactory := memory.NewUnitOfWorkFactory(reviewRepo, orderRepo, catalogRepo)
	return &reviewFixture{
		service:     NewApplicationService(reviewRepo, orderRepo, catalogRepo, uowFactory),
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		uowFactory:  uowFactory,
	}
}

func (f *reviewFixture) seedProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "coffee", *shared.NewMoney(45000, shared.DefaultCurrency))
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if err := f.catalogRepo.Save(context.Background(), p); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return p
}

// seedCompletedPurchase places and completes an order for the product,
// which is what makes it reviewable by the buyer.
func (f *reviewFixture) seedCompletedPurchase(t *testing.T, userID, productID string) {
	t.Helper()
	ctx := context.Background()

	unit := shared.NewMoney(45000, shared.DefaultCurrency)
	o, err := order.NewOrder(userID, "12 Nguyen Hue", []order.PricedLine{
		{ProductID: productID, ProductName: "Latte", Quantity: 1, UnitPrice: *unit, Subtotal: *unit},
	}, *unit)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	o.PullEvents()
	if err := o.Complete(); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	o.PullEvents()
	if err := f.orderRepo.Save(ctx, o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestSubmitReview(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte")
	f.seedCompletedPurchase(t, buyer.UserID, latte.ID())

	resp, err := f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{
		ProductID: latte.ID(),
		Rating:    5,
		Content:   "Smooth and not too sweet.",
	})
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if resp.Rating != 5 {
		t.Errorf("expected rating 5, got %d", resp.Rating)
	}
	if resp.UserID != buyer.UserID {
		t.Errorf("expected author %s, got %s", buyer.UserID, resp.UserID)
	}

	events := f.uowFactory.Collector().Events()
	if len(events) != 1 || events[0].EventName() != "review.submitted" {
		t.Errorf("expected a single review.submitted event, got %v", events)
	}

	reviews, err := f.service.ListProductReviews(ctx, latte.ID())
	if err != nil {
		t.Fatalf("ListProductReviews failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if reviews[0].Content != "Smooth and not too sweet." {
		t.Errorf("unexpected content: %s", reviews[0].Content)
	}
}

func TestSubmitReviewRequiresCompletedPurchase(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte")

	// No purchase at all
	_, err := f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: 4})
	if !errors.Is(err, review.ErrNotEligible) {
		t.Errorf("no purchase: expected ErrNotEligible, got %v", err)
	}

	// A pending order does not open the gate
	unit := shared.NewMoney(45000, shared.DefaultCurrency)
	o, err := order.NewOrder(buyer.UserID, "12 Nguyen Hue", []order.PricedLine{
		{ProductID: latte.ID(), ProductName: "Latte", Quantity: 1, UnitPrice: *unit, Subtotal: *unit},
	}, *unit)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	o.PullEvents()
	if err := f.orderRepo.Save(ctx, o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err = f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: 4})
	if !errors.Is(err, review.ErrNotEligible) {
		t.Errorf("pending purchase: expected ErrNotEligible, got %v", err)
	}

	// Someone else's completed purchase does not open it either
	f.seedCompletedPurchase(t, "u-2", latte.ID())
	_, err = f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: 4})
	if !errors.Is(err, review.ErrNotEligible) {
		t.Errorf("foreign purchase: expected ErrNotEligible, got %v", err)
	}
}

func TestSubmitReviewDuplicate(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte")
	f.seedCompletedPurchase(t, buyer.UserID, latte.ID())

	if _, err := f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: 5}); err != nil {
		t.Fatalf("first SubmitReview failed: %v", err)
	}

	_, err := f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: 3})
	if !errors.Is(err, review.ErrDuplicateReview) {
		t.Errorf("expected ErrDuplicateReview, got %v", err)
	}

	// A second buyer may still review the same product
	other := shared.NewIdentity("u-2")
	f.seedCompletedPurchase(t, other.UserID, latte.ID())
	if _, err := f.service.SubmitReview(ctx, other, SubmitReviewRequest{ProductID: latte.ID(), Rating: 4}); err != nil {
		t.Errorf("second buyer's review failed: %v", err)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	buyer := shared.NewIdentity("u-1")
	latte := f.seedProduct(t, "Latte")
	f.seedCompletedPurchase(t, buyer.UserID, latte.ID())

	_, err := f.service.SubmitReview(ctx, shared.Identity{}, SubmitReviewRequest{ProductID: latte.ID(), Rating: 5})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("anonymous review: expected ErrUnauthorized, got %v", err)
	}

	_, err = f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: "missing", Rating: 5})
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("unknown product: expected ErrProductNotFound, got %v", err)
	}

	for _, rating := range []int{0, 6} {
		_, err = f.service.SubmitReview(ctx, buyer, SubmitReviewRequest{ProductID: latte.ID(), Rating: rating})
		if !errors.Is(err, review.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestListProductReviewsUnknownProduct(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.ListProductReviews(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
