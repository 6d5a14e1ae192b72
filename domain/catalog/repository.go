package catalog

import "context"

// Reader is the read-only catalog lookup the checkout core depends on.
// Implementations return ErrProductNotFound when the id is unknown.
type Reader interface {
	// FindByID returns the product with its current price/availability.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs returns the products for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
}

// SearchCriteria narrows and pages a product listing.
type SearchCriteria struct {
	Category      string
	NameContains  string
	OnlyAvailable bool
	Page          int
	PageSize      int
}

// Repository is the full catalog persistence interface, used by the
// admin surface on top of the checkout-facing Reader.
type Repository interface {
	Reader

	// Save creates or updates a product.
	Save(ctx context.Context, product *Product) error

	// Search returns one page of products (newest first) and the total
	// number of matches.
	Search(ctx context.Context, criteria SearchCriteria) ([]*Product, int64, error)

	// Remove deletes a product from the catalog.
	Remove(ctx context.Context, id string) error
}
