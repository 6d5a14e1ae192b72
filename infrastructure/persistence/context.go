/*
Package persistence - context helpers shared across persistence adapters.

The unit of work injects its transaction into the request context so
that repositories joining the same business operation see a single
database transaction. Request IDs ride the context for log correlation.
*/
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey        contextKey = "persistence_tx"
	requestIDKey contextKey = "persistence_request_id"
)

// ContextWithTx returns a context carrying the given transaction.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext extracts the current transaction, or nil when the
// operation runs outside a unit of work.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithRequestID returns a context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
