/*
Package response - unified API response handling.

Design principles:
1. HTTP status mapping lives in the API layer only; it never leaks into
   the domain or application layers
2. Error responses expose stable error codes, never internal details
   (stacks, wrapped driver errors)
3. Every response carries the request ID for log correlation
4. Internal errors return a generic message; the real error chain is
   only written to the log

Stack extraction: prefer the "point of failure" stack captured by the
domain error (shared.Stacker); fall back to capturing the handling point
here when the error carries none.

Response shape:

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }
*/
package response

import (
	"net/http"
	"runtime"

	"storefront/domain/shared"
	"storefront/pkg/errors"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey context key for request id propagation
const RequestIDKey = "request_id"

// IdentityKey context key for the resolved caller identity
const IdentityKey = "identity"

// Response generic response envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not error detail
	Code      int         `json:"code"`            // HTTP status code
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// httpStatusMap maps error codes to HTTP status codes. API layer only.
var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:        http.StatusInternalServerError,
	errors.CodeInvalidArgument: http.StatusBadRequest,
	errors.CodeNotFound:        http.StatusNotFound,
	errors.CodeUnauthorized:    http.StatusUnauthorized,
	errors.CodeForbidden:       http.StatusForbidden,
	errors.CodeConflict:        http.StatusConflict,
	errors.CodeTooManyRequests: http.StatusTooManyRequests,

	errors.CodeEmptySource:        http.StatusUnprocessableEntity,
	errors.CodeProductNotFound:    http.StatusNotFound,
	errors.CodeProductUnavailable: http.StatusUnprocessableEntity,
	errors.CodeInvalidTransition:  http.StatusUnprocessableEntity,

	errors.CodeNotEligible:     http.StatusForbidden,
	errors.CodeDuplicateReview: http.StatusConflict,
}

// mapErrorCodeToHTTPStatus maps an error code to an HTTP status code
func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// getRequestID gets the request ID from the gin context
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// captureStack captures the call stack for error logging
func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for i := 0; i < 5; i++ { // first 5 frames only
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// HandleError handles framework-level errors (request binding etc.)
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := getRequestID(c)

	logger.Error(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	response := &Response{
		Success:   false,
		Error:     string(errors.CodeInvalidArgument),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	}
	c.JSON(code, response)
}

// HandleAppError handles application-layer errors.
// Maps the HTTP status automatically, logs the full error chain, and
// never exposes internal details to the client.
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)

	appErr := errors.FromDomainError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)
	stack := extractStack(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", stack),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	logger.Error(appErr.Message, fields...)

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	response := &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	}
	c.JSON(httpStatus, response)
}

// extractStack prefers the point-of-failure stack carried by the domain
// error; falls back to capturing the handling point here.
func extractStack(err error) []string {
	if stacker, ok := err.(shared.Stacker); ok {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if inner := unwrapper.Unwrap(); inner != nil {
			if stacker, ok := inner.(shared.Stacker); ok {
				if stack := stacker.Stack(); len(stack) > 0 {
					return stack
				}
			}
		}
	}

	return captureStack(4) // skip: Callers, captureStack, extractStack, HandleAppError
}

// HandleSuccess handles a success response (200 OK)
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	response := &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	}
	c.JSON(http.StatusOK, response)
}

// HandleCreated handles a creation response (201 Created)
func HandleCreated(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	response := &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: requestID,
	}
	c.JSON(http.StatusCreated, response)
}

// HandleNoContent handles an empty response (204 No Content)
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
