package category

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrCategoryNotFound - referenced category no longer exists
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryName - empty or blank name
	ErrInvalidCategoryName = errors.New("category name must not be empty")

	// ErrDuplicateCategory - another category already carries this name
	ErrDuplicateCategory = errors.New("category name already exists")

	// ErrCategoryInUse - deletion refused while products are tagged
	// with the category
	ErrCategoryInUse = errors.New("category is still in use by products")
)

// NewCategoryNotFoundError creates a category-not-found error with a stack.
func NewCategoryNotFoundError(categoryID string) error {
	return &categoryError{
		sentinel: ErrCategoryNotFound,
		message:  "category not found: " + categoryID,
		stack:    shared.CaptureStack(3),
	}
}

// NewDuplicateCategoryError creates a duplicate-name error carrying the
// conflicting name.
func NewDuplicateCategoryError(name string) error {
	return &categoryError{
		sentinel: ErrDuplicateCategory,
		message:  "category name already exists: " + name,
		stack:    shared.CaptureStack(3),
	}
}

// NewCategoryInUseError creates an in-use error; callers surface it as
// a conflict so admins retag the products first.
func NewCategoryInUseError(name string) error {
	return &categoryError{
		sentinel: ErrCategoryInUse,
		message:  "category is still in use by products: " + name,
		stack:    shared.CaptureStack(3),
	}
}

type categoryError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *categoryError) Error() string { return e.message }
func (e *categoryError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *categoryError) Stack() []string {
	return shared.FormatStack(e.stack)
}
