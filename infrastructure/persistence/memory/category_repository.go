package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/domain/category"
)

// CategoryRepository In-memory implementation of the category taxonomy
type CategoryRepository struct {
	categories map[string]category.ReconstructionDTO
	mu         sync.RWMutex
}

// NewCategoryRepository Create in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[string]category.ReconstructionDTO),
	}
}

func (r *CategoryRepository) snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]category.ReconstructionDTO, len(r.categories))
	for id, dto := range r.categories {
		saved[id] = dto
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.categories = saved
		r.mu.Unlock()
	}
}

func snapshotCategory(c *category.Category) category.ReconstructionDTO {
	return category.ReconstructionDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// FindByID Find category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.categories[id]
	if !ok {
		return nil, category.NewCategoryNotFoundError(id)
	}

	return category.RebuildFromDTO(dto), nil
}

// FindByName Find category by exact name
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.categories {
		if dto.Name == name {
			return category.RebuildFromDTO(dto), nil
		}
	}

	return nil, category.NewCategoryNotFoundError(name)
}

// Save Save category (create or update)
func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[c.ID()] = snapshotCategory(c)
	return nil
}

// Search Return one page of matching categories (newest first) and the total count
func (r *CategoryRepository) Search(ctx context.Context, criteria category.SearchCriteria) ([]*category.Category, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(criteria.Keyword)
	matches := make([]category.ReconstructionDTO, 0, len(r.categories))
	for _, dto := range r.categories {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(dto.Name), keyword) &&
			!strings.Contains(strings.ToLower(dto.Description), keyword) {
			continue
		}
		matches = append(matches, dto)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := int64(len(matches))

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start > len(matches) {
		start = len(matches)
	}
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}

	categories := make([]*category.Category, 0, end-start)
	for _, dto := range matches[start:end] {
		categories = append(categories, category.RebuildFromDTO(dto))
	}

	return categories, total, nil
}

// Remove Delete category
func (r *CategoryRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return category.NewCategoryNotFoundError(id)
	}
	delete(r.categories, id)

	return nil
}

var _ category.Repository = (*CategoryRepository)(nil)
