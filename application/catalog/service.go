/*
Package catalog Application Layer - Product Catalog Management

The public surface is read-only listing and detail views. The admin
surface manages products and exposes the sold count, which is derived
solely from COMPLETED orders.
*/
package catalog

import (
	"context"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
)

// ApplicationService Catalog application service
type ApplicationService struct {
	catalogRepo catalog.Repository
	orderRepo   order.Repository
}

// NewApplicationService Create catalog application service
func NewApplicationService(catalogRepo catalog.Repository, orderRepo order.Repository) *ApplicationService {
	return &ApplicationService{
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

// ListProductsRequest Product listing request DTO
type ListProductsRequest struct {
	Category string `form:"category"`
	Name     string `form:"name"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateProductRequest Create product request DTO
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	PriceAmount int64  `json:"price_amount" binding:"required,min=1"`
	Currency    string `json:"currency"`
}

// UpdateProductRequest Update product request DTO
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	PriceAmount *int64  `json:"price_amount"`
	Currency    string  `json:"currency"`
	Available   *bool   `json:"available"`
}

// ProductResponse Product response DTO
type ProductResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Price     MoneyResponse `json:"price"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProductPageResponse One page of products
type ProductPageResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// SoldCountResponse Sold count response DTO
type SoldCountResponse struct {
	ProductID string `json:"product_id"`
	Sold      int64  `json:"sold"`
}

// MoneyResponse Money response DTO
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// ListProducts List available products, newest first. Public view:
// off-sale products are hidden.
func (s *ApplicationService) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductPageResponse, error) {
	criteria := catalog.SearchCriteria{
		Category:      req.Category,
		NameContains:  req.Name,
		OnlyAvailable: true,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	return s.search(ctx, criteria)
}

// ListAllProducts List every product including off-sale ones. Admin view.
func (s *ApplicationService) ListAllProducts(ctx context.Context, identity shared.Identity, req ListProductsRequest) (*ProductPageResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	criteria := catalog.SearchCriteria{
		Category:     req.Category,
		NameContains: req.Name,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}

	return s.search(ctx, criteria)
}

func (s *ApplicationService) search(ctx context.Context, criteria catalog.SearchCriteria) (*ProductPageResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}

	products, total, err := s.catalogRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = convertToResponse(p)
	}

	return &ProductPageResponse{
		Products: responses,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

// GetProduct Get one product. Public.
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	product, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return convertToResponse(product), nil
}

// CreateProduct Add a product to the catalog. Admin only.
func (s *ApplicationService) CreateProduct(ctx context.Context, identity shared.Identity, req CreateProductRequest) (*ProductResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}

	product, err := catalog.NewProduct(req.Name, req.Category, *shared.NewMoney(req.PriceAmount, currency))
	if err != nil {
		return nil, err
	}

	if err := s.catalogRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return convertToResponse(product), nil
}

// UpdateProduct Change a product's name, category, price, or
// availability. Admin only. Existing orders keep the prices they
// captured at checkout.
func (s *ApplicationService) UpdateProduct(ctx context.Context, identity shared.Identity, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	product, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		product.Recategorize(*req.Category)
	}
	if req.PriceAmount != nil {
		currency := req.Currency
		if currency == "" {
			currency = product.Price().Currency()
		}
		if err := product.Reprice(*shared.NewMoney(*req.PriceAmount, currency)); err != nil {
			return nil, err
		}
	}
	if req.Available != nil {
		if *req.Available {
			product.MarkAvailable()
		} else {
			product.MarkUnavailable()
		}
	}

	if err := s.catalogRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return convertToResponse(product), nil
}

// RemoveProduct Delete a product from the catalog. Admin only. Order
// lines referencing it keep their captured name and price.
func (s *ApplicationService) RemoveProduct(ctx context.Context, identity shared.Identity, productID string) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}

	return s.catalogRepo.Remove(ctx, productID)
}

// SoldCount Sum of the product's quantities across COMPLETED orders.
// Admin only. Pending and cancelled orders never count.
func (s *ApplicationService) SoldCount(ctx context.Context, identity shared.Identity, productID string) (*SoldCountResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	sold, err := s.orderRepo.CompletedQuantity(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &SoldCountResponse{ProductID: productID, Sold: sold}, nil
}

func requireAdmin(identity shared.Identity) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("catalog")
	}
	if !identity.Admin {
		return shared.NewForbiddenError("catalog", "catalog management requires admin access")
	}
	return nil
}

// convertToResponse Convert product entity to response DTO
func convertToResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		Category:  p.Category(),
		Price:     MoneyResponse{Amount: p.Price().Amount(), Currency: p.Price().Currency()},
		Status:    string(p.Status()),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
