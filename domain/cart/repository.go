package cart

import "context"

// Repository cart-line persistence interface.
// AddOrMerge must be atomic against the unique (user, product) key:
// two concurrent adds for the same pair end as one line with the summed
// quantity, never two lines.
type Repository interface {
	// AddOrMerge inserts the line, or adds its quantity onto the
	// existing line for the same (user, product) pair.
	AddOrMerge(ctx context.Context, line *Line) error

	// Save updates an existing line (quantity changes).
	Save(ctx context.Context, line *Line) error

	// FindByID returns a line regardless of owner; callers enforce
	// ownership. Returns ErrLineNotFound when absent.
	FindByID(ctx context.Context, id string) (*Line, error)

	// FindByUserID returns the user's lines ordered by creation time.
	FindByUserID(ctx context.Context, userID string) ([]*Line, error)

	// Remove deletes one line. Returns ErrLineNotFound when absent.
	Remove(ctx context.Context, id string) error

	// RemoveByIDs deletes exactly the given lines of one user and
	// reports how many rows actually went away. Used by checkout to
	// drain only the lines it priced.
	RemoveByIDs(ctx context.Context, userID string, ids []string) (int64, error)
}
