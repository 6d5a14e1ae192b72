/*
Package memory - in-memory repository implementations.

Backs the "memory" database type for local development and serves as the
test double set. Each repository clones aggregates on the way in and out
so callers never share mutable state with the store, and guards its map
with a RWMutex so the concurrency semantics match the MySQL adapters.
*/
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/domain/catalog"
)

// CatalogRepository In-memory implementation of the product catalog
type CatalogRepository struct {
	products map[string]catalog.ReconstructionDTO
	mu       sync.RWMutex
}

// NewCatalogRepository Create in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		products: make(map[string]catalog.ReconstructionDTO),
	}
}

func (r *CatalogRepository) snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]catalog.ReconstructionDTO, len(r.products))
	for id, dto := range r.products {
		saved[id] = dto
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.products = saved
		r.mu.Unlock()
	}
}

func snapshotProduct(p *catalog.Product) catalog.ReconstructionDTO {
	return catalog.ReconstructionDTO{
		ID:        p.ID(),
		Name:      p.Name(),
		Price:     p.Price(),
		Category:  p.Category(),
		Status:    p.Status(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

// FindByID Find product by ID
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}

	return catalog.RebuildFromDTO(dto), nil
}

// FindByIDs Find products by IDs; missing IDs are absent from the map
func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		if dto, ok := r.products[id]; ok {
			products[id] = catalog.RebuildFromDTO(dto)
		}
	}

	return products, nil
}

// Save Save product (create or update)
func (r *CatalogRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID()] = snapshotProduct(product)
	return nil
}

// Search Return one page of matching products (newest first) and the total count
func (r *CatalogRepository) Search(ctx context.Context, criteria catalog.SearchCriteria) ([]*catalog.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]catalog.ReconstructionDTO, 0, len(r.products))
	for _, dto := range r.products {
		if criteria.Category != "" && dto.Category != criteria.Category {
			continue
		}
		if criteria.NameContains != "" &&
			!strings.Contains(strings.ToLower(dto.Name), strings.ToLower(criteria.NameContains)) {
			continue
		}
		if criteria.OnlyAvailable && dto.Status != catalog.Available {
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

	products := make([]*catalog.Product, 0, end-start)
	for _, dto := range matches[start:end] {
		products = append(products, catalog.RebuildFromDTO(dto))
	}

	return products, total, nil
}

// Remove Delete product
func (r *CatalogRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return catalog.NewProductNotFoundError(id)
	}
	delete(r.products, id)

	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
