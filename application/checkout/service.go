/*
Package checkout Application Layer - Checkout Business Process Orchestration

Checkout turns a mutable source (the cart, or a single buy-now product)
into an immutable order. The whole conversion runs inside one unit of
work: pricing snapshot, order creation, and cart drain commit together
or not at all. The OrderPlaced event reaches the outbox in the same
transaction.
*/
package checkout

import (
	"context"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
)

// Source selects what the checkout consumes.
type Source string

const (
	SourceCart   Source = "CART"
	SourceBuyNow Source = "BUY_NOW"
)

// ApplicationService Checkout application service
type ApplicationService struct {
	cartRepo    cart.Repository
	catalogRepo catalog.Reader
	orderRepo   order.Repository
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create checkout application service
func NewApplicationService(
	cartRepo cart.Repository,
	catalogRepo catalog.Reader,
	orderRepo order.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		uowFactory:  uowFactory,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

// CheckoutRequest Checkout request DTO
// ProductID and Quantity are only read for BUY_NOW.
type CheckoutRequest struct {
	Source          Source `json:"source" binding:"required,oneof=CART BUY_NOW"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
}

// OrderResponse Order response DTO
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           MoneyResponse       `json:"total"`
	Status          string              `json:"status"`
	DeliveryAddress string              `json:"delivery_address"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderLineResponse Order line response DTO
type OrderLineResponse struct {
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// MoneyResponse Money response DTO
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// Checkout Convert the selected source into a PENDING order
func (s *ApplicationService) Checkout(ctx context.Context, identity shared.Identity, req CheckoutRequest) (*OrderResponse, error) {
	if !identity.Authenticated() {
		return nil, shared.NewUnauthorizedError("checkout")
	}

	switch req.Source {
	case SourceBuyNow:
		return s.buyNow(ctx, identity, req)
	case SourceCart:
		return s.fromCart(ctx, identity, req)
	default:
		return nil, order.NewValidationError("source", "source must be CART or BUY_NOW")
	}
}

// fromCart Price every cart line, create the order, and drain exactly
// the priced lines. A concurrent cart mutation makes the drain count
// disagree with the priced set; the transaction then rolls back and the
// unit of work retries against the fresh cart state.
func (s *ApplicationService) fromCart(ctx context.Context, identity shared.Identity, req CheckoutRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		lines, err := s.cartRepo.FindByUserID(ctx, identity.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return order.NewEmptySourceError()
		}

		ids := make([]string, len(lines))
		productIDs := make([]string, len(lines))
		for i, line := range lines {
			ids[i] = line.ID()
			productIDs[i] = line.ProductID()
		}

		products, err := s.catalogRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}

		inputs := make([]order.PricingInput, len(lines))
		for i, line := range lines {
			product, ok := products[line.ProductID()]
			if !ok {
				return catalog.NewProductNotFoundError(line.ProductID())
			}
			inputs[i] = order.PricingInput{Product: product, Quantity: line.Quantity()}
		}

		priced, total, err := order.Price(inputs)
		if err != nil {
			return err
		}

		o, err = order.NewOrder(identity.UserID, req.DeliveryAddress, priced, *total)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		removed, err := s.cartRepo.RemoveByIDs(ctx, identity.UserID, ids)
		if err != nil {
			return err
		}
		if removed != int64(len(ids)) {
			return order.NewConcurrentModificationError(o.ID())
		}

		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertToResponse(o), nil
}

// buyNow Order a single product directly; the cart is not touched
func (s *ApplicationService) buyNow(ctx context.Context, identity shared.Identity, req CheckoutRequest) (*OrderResponse, error) {
	if req.ProductID == "" {
		return nil, order.NewValidationError("product_id", "buy-now requires a product")
	}
	if req.Quantity < 1 {
		return nil, order.ErrInvalidQuantity
	}

	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		product, err := s.catalogRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		priced, total, err := order.Price([]order.PricingInput{
			{Product: product, Quantity: req.Quantity},
		})
		if err != nil {
			return err
		}

		o, err = order.NewOrder(identity.UserID, req.DeliveryAddress, priced, *total)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertToResponse(o), nil
}

// convertToResponse Convert order entity to response DTO
func convertToResponse(o *order.Order) *OrderResponse {
	lines := o.Lines()
	lineResponses := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		lineResponses[i] = OrderLineResponse{
			ProductID:   line.ProductID(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   MoneyResponse{Amount: line.UnitPrice().Amount(), Currency: line.UnitPrice().Currency()},
			Subtotal:    MoneyResponse{Amount: line.Subtotal().Amount(), Currency: line.Subtotal().Currency()},
		}
	}

	return &OrderResponse{
		ID:              o.ID(),
		UserID:          o.UserID(),
		Lines:           lineResponses,
		Total:           MoneyResponse{Amount: o.Total().Amount(), Currency: o.Total().Currency()},
		Status:          string(o.Status()),
		DeliveryAddress: o.DeliveryAddress(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}
