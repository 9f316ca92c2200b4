package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Usage and dispatch errors.
var (
	// ErrStarted is returned when configuration is attempted after the
	// middleware stack has been built.
	ErrStarted = errors.New("application already started")

	// ErrResponseStarted signals that an exception handler matched but the
	// response transmission had already begun, so the handler was skipped.
	ErrResponseStarted = errors.New("response already started")

	// ErrTemplatesNotConfigured is returned by RenderTemplate when no
	// template renderer was installed via WithTemplates.
	ErrTemplatesNotConfigured = errors.New("templates not configured")
)

// URL reversal errors.
var (
	ErrRouteNotFound = errors.New("no route registered with name")
	ErrMissingParam  = errors.New("missing route parameter")
	ErrUnknownParam  = errors.New("unknown route parameter")
)

// HTTPError represents an HTTP error with the data needed for rendering.
// It implements the error interface and carries the status code the
// exception registry uses for status-keyed handler lookup.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(code, message, opts)
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(http.StatusBadRequest, message, opts)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(http.StatusUnauthorized, message, opts)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(http.StatusForbidden, message, opts)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(http.StatusNotFound, message, opts)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(http.StatusInternalServerError, message, opts)
}

func newHTTPErrorWith(code int, message string, opts []HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if no HTTPError is found.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// IsHTTPError reports whether the error chain contains an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// PanicError represents a panic recovered by the server-error layer.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace captured at the recovery point
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether the error chain contains a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the PanicError from an error chain if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
