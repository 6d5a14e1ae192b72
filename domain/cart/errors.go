package cart

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrLineNotFound - cart line absent or not owned by the caller
	ErrLineNotFound = errors.New("cart line not found")

	// ErrInvalidQuantity - quantity must be >= 1; removal is explicit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidOwner - cart lines always belong to an authenticated user
	ErrInvalidOwner = errors.New("cart line must have an owner")

	// ErrInvalidProduct - cart lines always reference a product
	ErrInvalidProduct = errors.New("cart line must reference a product")
)

// NewLineNotFoundError creates a line-not-found error with a stack.
// Lines belonging to other users report the same error as absent lines
// so ownership cannot be probed.
func NewLineNotFoundError(lineID string) error {
	return &cartError{
		sentinel: ErrLineNotFound,
		message:  "cart line not found: " + lineID,
		stack:    shared.CaptureStack(3),
	}
}

type cartError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *cartError) Error() string { return e.message }
func (e *cartError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *cartError) Stack() []string {
	return shared.FormatStack(e.stack)
}
