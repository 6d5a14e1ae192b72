package category

import "context"

// SearchCriteria narrows and pages a category listing. The keyword
// matches either the name or the description.
type SearchCriteria struct {
	Keyword  string
	Page     int
	PageSize int
}

// Repository is the category persistence interface.
type Repository interface {
	// FindByID returns the category or ErrCategoryNotFound.
	FindByID(ctx context.Context, id string) (*Category, error)

	// FindByName returns the category with the exact name or
	// ErrCategoryNotFound. Used for the uniqueness check.
	FindByName(ctx context.Context, name string) (*Category, error)

	// Save creates or updates a category.
	Save(ctx context.Context, category *Category) error

	// Search returns one page of categories (newest first) and the
	// total number of matches.
	Search(ctx context.Context, criteria SearchCriteria) ([]*Category, int64, error)

	// Remove deletes a category. The in-use check is the caller's job.
	Remove(ctx context.Context, id string) error
}
