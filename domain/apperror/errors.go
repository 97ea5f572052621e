package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category.
type Code string

const (
	// CodeInvalidQuery covers malformed filter, sort, or pagination
	// parameters on read endpoints.
	CodeInvalidQuery Code = "INVALID_QUERY"
	// CodeInvalidInput covers malformed or out-of-range mutation payloads.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeNotFound means the referenced record does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict means a store-enforced uniqueness constraint was hit,
	// for example a duplicate SKU.
	CodeConflict Code = "CONFLICT"
	// CodeStoreUnavailable means the persistence engine cannot be reached;
	// the caller may retry.
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	// CodeUnauthorized means no valid principal was supplied.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeRateLimited means the client exceeded the login attempt budget.
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeAuditWriteFailed is internal only: audit persistence failures are
	// logged and discarded, never returned to a caller.
	CodeAuditWriteFailed Code = "AUDIT_WRITE_FAILED"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "INTERNAL"
)

// AppError is a categorised application error.
type AppError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError around an underlying error.
func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidQuery(message string) *AppError {
	return New(CodeInvalidQuery, message)
}

func InvalidQueryf(format string, args ...interface{}) *AppError {
	return New(CodeInvalidQuery, fmt.Sprintf(format, args...))
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource, id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found: %s", resource, id))
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func StoreUnavailable(operation string, cause error) *AppError {
	return Wrap(CodeStoreUnavailable, fmt.Sprintf("store unavailable during %s", operation), cause)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func AuditWriteFailed(cause error) *AppError {
	return Wrap(CodeAuditWriteFailed, "audit write failed", cause)
}

func Internal(message string, cause error) *AppError {
	return Wrap(CodeInternal, message, cause)
}

// CodeOf extracts the error code, defaulting to CodeInternal for errors
// produced outside the catalog.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error to the HTTP status code it should surface as.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidQuery, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
