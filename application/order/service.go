/*
Package order Application Layer - Order Lifecycle Orchestration

Status transitions run as a compare-and-commit against the repository:
the aggregate method validates and records the event, the repository's
Transition statement is the arbiter under concurrency. When two actors
race (owner cancels while an admin completes), exactly one statement
matches the PENDING row; the loser's transaction rolls back, so its
event never reaches the outbox.
*/
package order

import (
	"context"
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// ApplicationService Order application service - coordinates the order lifecycle
type ApplicationService struct {
	orderRepo  order.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService Create order application service
func NewApplicationService(orderRepo order.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		uowFactory: uowFactory,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

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

// CancelOrder Cancel a pending order. Owner-initiated; admins may cancel
// any order.
func (s *ApplicationService) CancelOrder(ctx context.Context, identity shared.Identity, orderID string) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("order")
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.OwnedBy(identity.UserID) && !identity.Admin {
			return order.NewOrderNotFoundError(orderID)
		}

		// Aggregate method validates the transition and records the event
		if err := o.Cancel(); err != nil {
			return err
		}

		// The CAS statement decides the race; on a lost race the
		// transaction rolls back and the recorded event is discarded
		if err := s.orderRepo.Transition(ctx, orderID, order.StatusPending, order.StatusCancelled); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
}

// CompleteOrder Mark a pending order as completed. Administrative
// transition; completion is what makes the order's products reviewable
// by its owner.
func (s *ApplicationService) CompleteOrder(ctx context.Context, identity shared.Identity, orderID string) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("order")
	}
	if !identity.Admin {
		return shared.NewForbiddenError("order", "completing orders requires admin access")
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := o.Complete(); err != nil {
			return err
		}

		if err := s.orderRepo.Transition(ctx, orderID, order.StatusPending, order.StatusCompleted); err != nil {
			return err
		}

		uow.RegisterDirty(o)
		return nil
	})
}

// GetOrder Get one order; owners see their own, admins see all
func (s *ApplicationService) GetOrder(ctx context.Context, identity shared.Identity, orderID string) (*OrderResponse, error) {
	if !identity.Authenticated() {
		return nil, shared.NewUnauthorizedError("order")
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.OwnedBy(identity.UserID) && !identity.Admin {
		return nil, order.NewOrderNotFoundError(orderID)
	}

	return convertToResponse(o), nil
}

// ListOrders Get the caller's orders, newest first
func (s *ApplicationService) ListOrders(ctx context.Context, identity shared.Identity) ([]*OrderResponse, error) {
	if !identity.Authenticated() {
		return nil, shared.NewUnauthorizedError("order")
	}

	orders, err := s.orderRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = convertToResponse(o)
	}

	return responses, nil
}

// HasCompletedPurchase Report whether the caller bought the product in a
// completed order
func (s *ApplicationService) HasCompletedPurchase(ctx context.Context, identity shared.Identity, productID string) (bool, error) {
	if !identity.Authenticated() {
		return false, shared.NewUnauthorizedError("order")
	}

	return s.orderRepo.HasCompletedPurchase(ctx, identity.UserID, productID)
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
