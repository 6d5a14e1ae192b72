package review

import "context"

// Repository review persistence interface. The (user, product) unique
// key is enforced by storage; Save surfaces a constraint violation as
// ErrDuplicateReview so the race between check and insert stays closed.
type Repository interface {
	// Save persists a new review.
	Save(ctx context.Context, review *Review) error

	// Exists reports whether a review by the user for the product is
	// already present.
	Exists(ctx context.Context, userID, productID string) (bool, error)

	// FindByProductID returns a product's reviews, newest first.
	FindByProductID(ctx context.Context, productID string) ([]*Review, error)
}
