package errors

import (
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
)

func TestFromDomainError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"empty source", order.NewEmptySourceError(), CodeEmptySource},
		{"invalid transition", order.NewInvalidTransitionError("COMPLETED", "CANCELLED"), CodeInvalidTransition},
		{"concurrent modification", order.NewConcurrentModificationError("o-1"), CodeConflict},
		{"order not found", order.NewOrderNotFoundError("o-1"), CodeNotFound},
		{"product not found", catalog.NewProductNotFoundError("p-1"), CodeProductNotFound},
		{"product unavailable", catalog.NewProductUnavailableError("p-1"), CodeProductUnavailable},
		{"not eligible", review.NewNotEligibleError("u-1", "p-1"), CodeNotEligible},
		{"duplicate review", review.NewDuplicateReviewError("u-1", "p-1"), CodeDuplicateReview},
		{"invalid rating", review.ErrInvalidRating, CodeInvalidArgument},
		{"unauthorized", shared.NewUnauthorizedError("cart"), CodeUnauthorized},
		{"forbidden", shared.NewForbiddenError("order", "admin only"), CodeForbidden},
		{"validation", order.NewValidationError("quantity", "must be positive"), CodeInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			if appErr.Code != tc.expected {
				t.Errorf("expected code %s, got %s", tc.expected, appErr.Code)
			}
			// The original error stays reachable for errors.Is checks
			if !errors.Is(appErr, tc.err) && !errors.Is(tc.err, appErr.Unwrap()) {
				if appErr.Unwrap() == nil {
					t.Error("wrapped error lost its cause")
				}
			}
		})
	}
}

func TestFromDomainErrorUnknown(t *testing.T) {
	appErr := FromDomainError(errors.New("driver: bad connection"))
	if appErr.Code != CodeInternal {
		t.Errorf("unknown errors should map to CodeInternal, got %s", appErr.Code)
	}
	// Clients never see the raw message
	if appErr.Message != "internal server error" {
		t.Errorf("internal message should be masked, got %q", appErr.Message)
	}
}

func TestFromDomainErrorPassthrough(t *testing.T) {
	original := New(CodeConflict, "already exists")
	appErr := FromDomainError(original)
	if appErr != original {
		t.Error("an AppError should pass through unchanged")
	}

	if FromDomainError(nil) != nil {
		t.Error("nil should map to nil")
	}
}

func TestIsHelper(t *testing.T) {
	err := Wrap(order.ErrEmptySource, CodeEmptySource, "cart is empty")
	if !Is(err, CodeEmptySource) {
		t.Error("Is should match the wrapped code")
	}
	if Is(err, CodeNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), CodeInternal) {
		t.Error("Is should not match a non-AppError")
	}
}
