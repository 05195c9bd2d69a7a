package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error into the externally visible taxonomy.
type Kind int

const (
	// KindInternal is the fallback for unexpected failures; its message
	// is never derived from the underlying error so storage-layer detail
	// cannot leak.
	KindInternal Kind = iota
	// KindInvalidInput marks a malformed, missing, or out-of-range field.
	KindInvalidInput
	// KindUnauthenticated marks a missing or invalid credential.
	KindUnauthenticated
	// KindForbidden marks an authenticated caller with insufficient
	// role or ownership.
	KindForbidden
	// KindNotFound marks an absent referenced entity.
	KindNotFound
	// KindConflict marks a uniqueness violation (duplicate email,
	// occupied slot).
	KindConflict
)

// Error is a domain error carrying its taxonomy kind and a
// human-readable, user-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Invalid builds an InvalidInput error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated builds an Unauthenticated error.
func Unauthenticated(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a Forbidden error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a Conflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or KindInternal for any
// error that is not a domain *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps a domain error to a fixed HTTP status and code.
func MapErrorToHTTP(err error) *HTTPError {
	switch KindOf(err) {
	case KindInvalidInput:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: err.Error(), Code: "INVALID_INPUT"}
	case KindUnauthenticated:
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: err.Error(), Code: "UNAUTHENTICATED"}
	case KindForbidden:
		return &HTTPError{StatusCode: http.StatusForbidden, Message: err.Error(), Code: "FORBIDDEN"}
	case KindNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: err.Error(), Code: "NOT_FOUND"}
	case KindConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: err.Error(), Code: "CONFLICT"}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Code: "INTERNAL_ERROR"}
	}
}
