package review

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrNotEligible - author has no completed order containing the
	// product
	ErrNotEligible = errors.New("only purchased products can be reviewed")

	// ErrDuplicateReview - a review already exists for this
	// (user, product) pair
	ErrDuplicateReview = errors.New("product already reviewed by this user")

	// ErrInvalidRating - rating outside the 1..5 range
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidAuthor - reviews always belong to an authenticated user
	ErrInvalidAuthor = errors.New("review must have an author")

	// ErrInvalidProduct - reviews always reference a product
	ErrInvalidProduct = errors.New("review must reference a product")
)

// NewNotEligibleError creates a not-eligible error with a stack.
func NewNotEligibleError(userID, productID string) error {
	return &reviewError{
		sentinel: ErrNotEligible,
		message:  "user " + userID + " has no completed purchase of product " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewDuplicateReviewError creates a duplicate-review error with a stack.
func NewDuplicateReviewError(userID, productID string) error {
	return &reviewError{
		sentinel: ErrDuplicateReview,
		message:  "user " + userID + " already reviewed product " + productID,
		stack:    shared.CaptureStack(3),
	}
}

type reviewError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *reviewError) Error() string { return e.message }
func (e *reviewError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *reviewError) Stack() []string {
	return shared.FormatStack(e.stack)
}
