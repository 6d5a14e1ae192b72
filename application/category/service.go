/*
Package category Application Layer - Category Management

The public surface is a read-only listing for storefront navigation.
The admin surface manages the taxonomy; deletion is refused while
products still carry the category name.
*/
package category

import (
	"context"
	"errors"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/shared"
)

// ApplicationService Category application service
type ApplicationService struct {
	categoryRepo category.Repository
	catalogRepo  catalog.Repository
}

// NewApplicationService Create category application service
func NewApplicationService(categoryRepo category.Repository, catalogRepo catalog.Repository) *ApplicationService {
	return &ApplicationService{
		categoryRepo: categoryRepo,
		catalogRepo:  catalogRepo,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

// ListCategoriesRequest Category listing request DTO. The keyword
// matches name or description.
type ListCategoriesRequest struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateCategoryRequest Create category request DTO
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest Update category request DTO
// Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse Category response DTO
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryPageResponse One page of categories
type CategoryPageResponse struct {
	Categories []*CategoryResponse `json:"categories"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// ListCategories List categories, newest first. Public.
func (s *ApplicationService) ListCategories(ctx context.Context, req ListCategoriesRequest) (*CategoryPageResponse, error) {
	criteria := category.SearchCriteria{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}

	categories, total, err := s.categoryRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = convertToResponse(c)
	}

	return &CategoryPageResponse{
		Categories: responses,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	}, nil
}

// GetCategory Get one category. Public.
func (s *ApplicationService) GetCategory(ctx context.Context, categoryID string) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return convertToResponse(c), nil
}

// CreateCategory Add a category. Admin only. Names are unique across
// the taxonomy.
func (s *ApplicationService) CreateCategory(ctx context.Context, identity shared.Identity, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	c, err := category.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, c.Name(), ""); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return convertToResponse(c), nil
}

// UpdateCategory Rename or redescribe a category. Admin only. Products
// keep the category name they were tagged with.
func (s *ApplicationService) UpdateCategory(ctx context.Context, identity shared.Identity, categoryID string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := c.Rename(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureNameFree(ctx, c.Name(), c.ID()); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		c.Redescribe(*req.Description)
	}

	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return convertToResponse(c), nil
}

// RemoveCategory Delete a category. Admin only. Refused while any
// product still carries the category name.
func (s *ApplicationService) RemoveCategory(ctx context.Context, identity shared.Identity, categoryID string) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}

	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}

	_, inUse, err := s.catalogRepo.Search(ctx, catalog.SearchCriteria{
		Category: c.Name(),
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		return err
	}
	if inUse > 0 {
		return category.NewCategoryInUseError(c.Name())
	}

	return s.categoryRepo.Remove(ctx, categoryID)
}

// ensureNameFree rejects a name already held by a different category.
func (s *ApplicationService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	if existing.ID() != selfID {
		return category.NewDuplicateCategoryError(name)
	}
	return nil
}

func requireAdmin(identity shared.Identity) error {
	if !identity.Authenticated() {
		return shared.NewUnauthorizedError("category")
	}
	if !identity.Admin {
		return shared.NewForbiddenError("category", "category management requires admin access")
	}
	return nil
}

// convertToResponse Convert category entity to response DTO
func convertToResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
