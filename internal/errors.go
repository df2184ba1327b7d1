package internal

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Sentinel errors for dispatch and configuration.
var (
	ErrUnsupportedVerb  = errors.New("tinyweb: unsupported verb")
	ErrAmbiguousMethod  = errors.New("tinyweb: ambiguous method")
	ErrInvalidMethod    = errors.New("tinyweb: invalid method signature")
	ErrRouteNotFound    = errors.New("tinyweb: no route for handler")
	ErrMissingRouteArg  = errors.New("tinyweb: missing route argument")
	ErrInvalidRoute     = errors.New("tinyweb: invalid route")
	ErrInvalidComponent = errors.New("tinyweb: invalid handler or filter")
)

// UnsupportedVerbError reports a request whose verb the handler does not
// implement.
type UnsupportedVerbError struct {
	Handler reflect.Type
	Verb    string
}

func (e *UnsupportedVerbError) Error() string {
	return fmt.Sprintf("tinyweb: %s does not handle %s", e.Handler, e.Verb)
}

// Is reports whether target is ErrUnsupportedVerb.
func (e *UnsupportedVerbError) Is(target error) bool {
	return target == ErrUnsupportedVerb
}

// AmbiguousMethodError reports a handler or filter type with more than one
// method matching the same verb or hook.
type AmbiguousMethodError struct {
	Type    reflect.Type
	Name    string
	Methods []string
}

func (e *AmbiguousMethodError) Error() string {
	return fmt.Sprintf("tinyweb: %s has more than one method for %s: %s",
		e.Type, e.Name, strings.Join(e.Methods, ", "))
}

// Is reports whether target is ErrAmbiguousMethod.
func (e *AmbiguousMethodError) Is(target error) bool {
	return target == ErrAmbiguousMethod
}

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface and provides structured data for
// error handlers to render error pages.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Title is an optional title for the error (defaults derived from Code).
	Title string

	// Detail is an optional extended description.
	Detail string

	// RequestID is the request tracking ID.
	RequestID string

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
	if e.Title != "" {
		return e.Title
	}
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

func ErrNotImplemented(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotImplemented, message, opts...)
}

// IsHTTPError returns true if err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError extracts the HTTPError from an error if present.
// Returns nil if the error is not an HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusCode maps an error to the HTTP status it should be reported with.
// HTTPError carries its own code; an unsupported verb is 501; missing
// parameters, construction failures and everything else are 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsHTTPError(err):
		return AsHTTPError(err).Code
	case errors.Is(err, ErrUnsupportedVerb):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
