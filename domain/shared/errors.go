/*
Package shared - domain-layer building blocks used by every subdomain.

Error design:
1. Each subdomain defines sentinel errors for errors.Is() checks.
2. DomainError captures the call stack at creation but defers formatting
   until a log line actually needs it.
3. Domain errors carry no transport concepts (no HTTP status codes).
4. Built on the standard library errors package only.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors shared across subdomains
// ============================================================================

var (
	// ErrNotFound - referenced entity absent or not owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrConflict - concurrent modification or unique-constraint violation
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument - malformed input rejected before any state change
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized - no authenticated user
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden - authenticated but lacking the required role
	ErrForbidden = errors.New("forbidden")
)

// ============================================================================
// Domain error struct
// ============================================================================

// DomainError is a structured error carrying business context and the
// stack of its creation point. Supports errors.Is() and errors.As()
// through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used for errors.Is() checks.
	Err error

	// Entity names the aggregate the error belongs to ("order", "cart").
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	// stack holds raw frames captured at creation, formatted on demand.
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack, one string per frame.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack capture helpers (exported for subdomain error constructors)
// ============================================================================

// CaptureStack captures the current call stack.
// skip is the number of frames to drop (typically 3: Callers,
// CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders raw frames as strings, filtering runtime internals
// and keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error with a stack.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates an "invalid argument" domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidArgument,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewUnauthorizedError creates an "unauthorized" domain error.
func NewUnauthorizedError(entity string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  entity,
		Message: "authentication required",
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error.
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker interface - lets the API layer extract stacks uniformly
// ============================================================================

// Stacker is implemented by errors that can report their creation stack.
type Stacker interface {
	Stack() []string
}
