/*
Package cart Application Layer - Cart Business Process Orchestration

Responsibilities of Application Layer:
1. Receive external requests (usually from Controller)
2. Enforce identity and ownership rules
3. Call aggregate root methods to execute business operations
4. Return results to caller

Cart mutations do not produce domain events, so these operations talk to
the repository directly; the unique (user, product) key keeps concurrent
adds consistent without a transaction wrapper.
*/
package cart

import (
	"context"
	"time"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/shared"
)

// ApplicationService Cart application service - coordinates cart-related business processes
type ApplicationService struct {
	cartRepo    cart.Repository
	catalogRepo catalog.Reader
}

// NewApplicationService Create cart application service
func NewApplicationService(cartRepo cart.Repository, catalogRepo catalog.Reader) *ApplicationService {
	return &ApplicationService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

// AddToCartRequest Add to cart request DTO
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest Change line quantity request DTO
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// LineResponse Cart line response DTO, joined with current catalog state
type LineResponse struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
	Available   bool          `json:"available"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CartResponse Cart response DTO
type CartResponse struct {
	Lines []LineResponse `json:"lines"`
	Total MoneyResponse  `json:"total"`
}

// MoneyResponse Money response DTO
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// AddToCart Add a product to the user's cart; a second add of the same
// product merges into the existing line
func (s *ApplicationService) AddToCart(ctx context.Context, identity shared.Identity, req AddToCartRequest) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("cart")
	}

	product, err := s.catalogRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !product.IsAvailable() {
		return catalog.NewProductUnavailableError(product.ID())
	}

	line, err := cart.NewLine(identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return s.cartRepo.AddOrMerge(ctx, line)
}

// SetQuantity Replace a line's quantity. Zero or negative quantities are
// rejected; removal is an explicit separate operation.
func (s *ApplicationService) SetQuantity(ctx context.Context, identity shared.Identity, lineID string, req SetQuantityRequest) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("cart")
	}

	line, err := s.cartRepo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	// Another user's line is indistinguishable from a missing one
	if !line.OwnedBy(identity.UserID) {
		return cart.NewLineNotFoundError(lineID)
	}

	if err := line.SetQuantity(req.Quantity); err != nil {
		return err
	}

	return s.cartRepo.Save(ctx, line)
}

// RemoveLine Remove one line from the user's cart
func (s *ApplicationService) RemoveLine(ctx context.Context, identity shared.Identity, lineID string) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("cart")
	}

	line, err := s.cartRepo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if !line.OwnedBy(identity.UserID) {
		return cart.NewLineNotFoundError(lineID)
	}

	return s.cartRepo.Remove(ctx, lineID)
}

// Clear Remove every line from the user's cart
func (s *ApplicationService) Clear(ctx context.Context, identity shared.Identity) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("cart")
	}

	lines, err := s.cartRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ID()
	}

	_, err = s.cartRepo.RemoveByIDs(ctx, identity.UserID, ids)
	return err
}

// GetCart Return the user's cart joined with current catalog prices.
// Cart lines never store prices; the view always reflects the catalog
// as of now. Lines whose product left the catalog are shown unavailable
// with a zero subtotal.
func (s *ApplicationService) GetCart(ctx context.Context, identity shared.Identity) (*CartResponse, error) {
	if !identity.Authenticated() {
		return nil, shared.NewUnauthorizedError("cart")
	}

	lines, err := s.cartRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID()
	}
	products, err := s.catalogRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	response := &CartResponse{
		Lines: make([]LineResponse, 0, len(lines)),
		Total: MoneyResponse{Currency: shared.DefaultCurrency},
	}

	total := shared.NewMoney(0, shared.DefaultCurrency)
	for _, line := range lines {
		lineResp := LineResponse{
			ID:        line.ID(),
			ProductID: line.ProductID(),
			Quantity:  line.Quantity(),
			CreatedAt: line.CreatedAt(),
		}

		product, ok := products[line.ProductID()]
		if ok {
			unitPrice := product.Price()
			subtotal, err := unitPrice.Multiply(line.Quantity())
			if err != nil {
				return nil, err
			}

			lineResp.ProductName = product.Name()
			lineResp.Available = product.IsAvailable()
			lineResp.UnitPrice = MoneyResponse{Amount: unitPrice.Amount(), Currency: unitPrice.Currency()}
			lineResp.Subtotal = MoneyResponse{Amount: subtotal.Amount(), Currency: subtotal.Currency()}

			if product.IsAvailable() {
				total, err = total.Add(*subtotal)
				if err != nil {
					return nil, err
				}
			}
		}

		response.Lines = append(response.Lines, lineResp)
	}

	response.Total = MoneyResponse{Amount: total.Amount(), Currency: total.Currency()}
	return response, nil
}
