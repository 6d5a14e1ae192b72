package order

import (
	"errors"

	"storefront/domain/shared"
)

// ============================================================================
// Order subdomain sentinel errors
// ============================================================================

var (
	// ErrOrderNotFound - order absent or not owned by the caller
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition - illegal order status change; terminal
	// states are never left
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrEmptyOrder - an order with zero lines must never be persisted
	ErrEmptyOrder = errors.New("order must have at least one line")

	// ErrEmptySource - checkout resolved nothing to buy
	ErrEmptySource = errors.New("nothing to check out")

	// ErrInvalidQuantity - line quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrTotalNotPositive - order total must be strictly positive
	ErrTotalNotPositive = errors.New("order total must be positive")

	// ErrTotalMismatch - given total disagrees with the line subtotals
	ErrTotalMismatch = errors.New("order total does not match line subtotals")

	// ErrConcurrentModification - optimistic lock conflict; the caller
	// may retry
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")
)

// ============================================================================
// Constructors carrying context and a creation stack
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error with a stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError creates an illegal-transition error naming
// both states.
func NewInvalidTransitionError(currentState, targetState string) error {
	return &orderError{
		sentinel: ErrInvalidTransition,
		message:  "cannot transition from " + currentState + " to " + targetState,
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyOrderError creates an empty-order error.
func NewEmptyOrderError() error {
	return &orderError{
		sentinel: ErrEmptyOrder,
		message:  "order must have at least one line",
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptySourceError creates an empty-checkout-source error.
func NewEmptySourceError() error {
	return &orderError{
		sentinel: ErrEmptySource,
		message:  "cart is empty, nothing to check out",
		stack:    shared.CaptureStack(3),
	}
}

// NewValidationError creates an invalid-argument error for order input.
func NewValidationError(field, reason string) error {
	return &orderError{
		sentinel: shared.ErrInvalidArgument,
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict
// error.
func NewConcurrentModificationError(orderID string) error {
	return &orderError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type orderError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string { return e.message }
func (e *orderError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *orderError) Stack() []string {
	return shared.FormatStack(e.stack)
}
