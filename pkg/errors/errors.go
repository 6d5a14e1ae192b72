/*
Package errors - application-level error codes.

Domain packages raise sentinel errors; this package translates them into
stable string codes the API layer maps to HTTP statuses. The codes are
the contract with clients; the domain sentinels are not exposed.
*/
package errors

import (
	"errors"
	"fmt"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	// Generic codes
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	// Checkout / order codes
	CodeEmptySource        ErrorCode = "EMPTY_SOURCE"
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodeProductUnavailable ErrorCode = "PRODUCT_UNAVAILABLE"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"

	// Review codes
	CodeNotEligible     ErrorCode = "NOT_ELIGIBLE"
	CodeDuplicateReview ErrorCode = "DUPLICATE_REVIEW"
)

// AppError pairs an error code with a user-facing message and the
// wrapped cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// domainCodeMap orders matter: the most specific sentinels come first
// so e.g. a product-unavailable error is not swallowed by a generic
// invalid-argument mapping.
var domainCodeMap = []struct {
	sentinel error
	code     ErrorCode
}{
	{order.ErrEmptySource, CodeEmptySource},
	{order.ErrInvalidTransition, CodeInvalidTransition},
	{order.ErrConcurrentModification, CodeConflict},
	{order.ErrOrderNotFound, CodeNotFound},
	{order.ErrEmptyOrder, CodeEmptySource},
	{order.ErrInvalidQuantity, CodeInvalidArgument},
	{order.ErrTotalNotPositive, CodeInvalidArgument},
	{catalog.ErrProductNotFound, CodeProductNotFound},
	{catalog.ErrProductUnavailable, CodeProductUnavailable},
	{catalog.ErrInvalidProductName, CodeInvalidArgument},
	{catalog.ErrInvalidProductPrice, CodeInvalidArgument},
	{category.ErrCategoryNotFound, CodeNotFound},
	{category.ErrDuplicateCategory, CodeConflict},
	{category.ErrCategoryInUse, CodeConflict},
	{category.ErrInvalidCategoryName, CodeInvalidArgument},
	{cart.ErrLineNotFound, CodeNotFound},
	{cart.ErrInvalidQuantity, CodeInvalidArgument},
	{cart.ErrInvalidOwner, CodeInvalidArgument},
	{cart.ErrInvalidProduct, CodeInvalidArgument},
	{review.ErrNotEligible, CodeNotEligible},
	{review.ErrDuplicateReview, CodeDuplicateReview},
	{review.ErrInvalidRating, CodeInvalidArgument},
	{review.ErrInvalidAuthor, CodeInvalidArgument},
	{review.ErrInvalidProduct, CodeInvalidArgument},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrInvalidArgument, CodeInvalidArgument},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
}

// FromDomainError translates a domain error into an AppError. Errors
// that match no known sentinel become internal errors: their real
// message is kept for logs but never shown to clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range domainCodeMap {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, err.Error())
		}
	}

	return Wrap(err, CodeInternal, "internal server error")
}
