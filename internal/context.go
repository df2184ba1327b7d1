package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tinyweb/pkg/binder"
	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// defaultMaxFormMemory is the multipart memory limit used when parsing forms.
const defaultMaxFormMemory = 32 << 20

// Context is what handlers, filters and middleware see of a request.
//
// It is a context.Context delegating to the request context, and a
// binder.RequestContext over the route values, the query string and the form
// body, so handler methods can declare it as a parameter.
type Context interface {
	context.Context
	binder.RequestContext

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter
	Context() context.Context
	Method() string

	// Param returns the route value name, or "".
	Param(name string) string
	// Query and Form return the first value under name, ignoring case.
	Query(name string) string
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything. Return it to hand
	// the request to the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// URL returns the path of the route registered for handler.
	URL(handler Descriptor, args result.Args) (string, error)

	// Written reports whether the response status has been committed.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores value under key on the request context; Get reads it back.
	Set(key any, value any)
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	routes         *RouteTable

	values     *binder.Values
	valuesOnce sync.Once
}

// newContext creates a new context with the response wrapper.
// An existing *ResponseWriter is reused so middleware and handlers share
// write tracking.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, routes *RouteTable) *requestContext {
	return &requestContext{
		request:        r,
		responseWriter: NewResponseWriter(w),
		logger:         logger,
		routes:         routes,
	}
}

func (c *requestContext) Request() *http.Request          { return c.request }
func (c *requestContext) Response() http.ResponseWriter   { return c.responseWriter }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.responseWriter }
func (c *requestContext) Context() context.Context        { return c.request.Context() }
func (c *requestContext) Method() string                  { return c.request.Method }

func (c *requestContext) Param(name string) string { return chi.URLParam(c.request, name) }

func (c *requestContext) Query(name string) string {
	return first(c.QueryValues(name))
}

func (c *requestContext) Form(name string) string {
	return first(c.FormValues(name))
}

func (c *requestContext) RouteValue(name string) (string, bool) {
	return c.requestValues().RouteValue(name)
}

func (c *requestContext) QueryValues(name string) []string {
	return c.requestValues().QueryValues(name)
}

func (c *requestContext) FormValues(name string) []string {
	return c.requestValues().FormValues(name)
}

// requestValues snapshots the route values, query string and form body on
// first use.
func (c *requestContext) requestValues() *binder.Values {
	c.valuesOnce.Do(func() {
		route := map[string]string{}
		if rctx := chi.RouteContext(c.request.Context()); rctx != nil {
			for i, k := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					route[k] = rctx.URLParams.Values[i]
				}
			}
		}
		c.values = binder.NewValues(route, binder.ParseQuery(c.request.URL.RawQuery), c.parseForm())
	})
	return c.values
}

// parseForm returns the request body form values. Query string values are not
// included. A malformed body is logged and treated as empty.
func (c *requestContext) parseForm() url.Values {
	err := c.request.ParseMultipartForm(defaultMaxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = c.request.ParseForm()
	}
	if err != nil {
		c.LogWarn("failed to parse request form", slog.Any("error", err))
	}
	return c.request.PostForm
}

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Header(name string) string { return c.request.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

// write commits code with the given content type and hands the body to fn.
func (c *requestContext) write(code int, contentType string, fn func(w http.ResponseWriter) error) error {
	if contentType != "" {
		c.responseWriter.Header().Set("Content-Type", contentType)
	}
	c.responseWriter.WriteHeader(code)
	if fn == nil {
		return nil
	}
	return fn(c.responseWriter)
}

// JSON encodes v before committing code, so an encoding failure is returned
// with nothing written.
func (c *requestContext) JSON(code int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("tinyweb: encode json: %w", err)
	}
	return c.write(code, "application/json; charset=utf-8", func(w http.ResponseWriter) error {
		_, err := buf.WriteTo(w)
		return err
	})
}

func (c *requestContext) String(code int, s string) error {
	return c.write(code, "text/plain; charset=utf-8", func(w http.ResponseWriter) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func (c *requestContext) NoContent(code int) error { return c.write(code, "", nil) }

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) URL(handler Descriptor, args result.Args) (string, error) {
	if c.routes == nil {
		return "", ErrRouteNotFound
	}
	return c.routes.URL(handler.Type, args)
}

func (c *requestContext) Written() bool        { return c.responseWriter.Written() }
func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) log(level slog.Level, msg string, attrs []any) {
	c.logger.Log(c.request.Context(), level, msg, attrs...)
}

func (c *requestContext) LogDebug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *requestContext) LogInfo(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *requestContext) LogWarn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *requestContext) LogError(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
