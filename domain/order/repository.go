package order

import "context"

// Repository order persistence interface.
type Repository interface {
	// Save persists a newly created order together with all its lines.
	// Orders are immutable after creation except for status, which goes
	// through Transition.
	Save(ctx context.Context, order *Order) error

	// FindByID returns the order with its lines.
	// Returns ErrOrderNotFound when absent.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByUserID returns the user's orders, newest first, with lines.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	// Transition moves the order status from one state to another as a
	// single compare-and-commit statement. When the stored status no
	// longer equals from (a concurrent transition won), it returns
	// ErrInvalidTransition and leaves the row untouched.
	Transition(ctx context.Context, orderID string, from, to Status) error

	// HasCompletedPurchase reports whether any line for the product
	// exists in a COMPLETED order owned by the user. This is the sole
	// authority for "did this user buy this".
	HasCompletedPurchase(ctx context.Context, userID, productID string) (bool, error)

	// CompletedQuantity sums the quantity of a product across all
	// COMPLETED orders (admin sold-count view).
	CompletedQuantity(ctx context.Context, productID string) (int64, error)
}
