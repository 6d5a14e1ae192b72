package catalog

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrProductNotFound - referenced product no longer exists
	ErrProductNotFound = errors.New("product not found")

	// ErrProductUnavailable - product exists but is off sale; checkout
	// must not proceed for it
	ErrProductUnavailable = errors.New("product is not available")

	// ErrInvalidProductName - empty or blank name
	ErrInvalidProductName = errors.New("product name must not be empty")

	// ErrInvalidProductPrice - price must be strictly positive
	ErrInvalidProductPrice = errors.New("product price must be positive")
)

// NewProductNotFoundError creates a product-not-found error with a stack.
func NewProductNotFoundError(productID string) error {
	return &productError{
		sentinel: ErrProductNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewProductUnavailableError creates a product-unavailable error carrying
// the offending product id so callers can report per line.
func NewProductUnavailableError(productID string) error {
	return &productError{
		sentinel: ErrProductUnavailable,
		message:  "product is not available: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

type productError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *productError) Error() string { return e.message }
func (e *productError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *productError) Stack() []string {
	return shared.FormatStack(e.stack)
}
