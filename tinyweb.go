package tinyweb

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/tinyweb/internal"
	"github.com/dmitrymomot/tinyweb/pkg/logger"
	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// Type aliases - public API
type (
	// App maps routes to handler types and runs their filter pipelines.
	App = internal.App

	// Context provides request/response access and helper methods.
	// Handler and filter methods may declare it as a parameter.
	Context = internal.Context

	// HandlerFunc is the signature for plain handlers such as the not-found handler.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from the pipeline.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc is a readiness check.
	CheckFunc = internal.CheckFunc

	// Descriptor identifies a handler or filter type.
	Descriptor = internal.Descriptor

	// Factory creates handler and filter instances.
	Factory = internal.Factory

	// FactoryFunc adapts a function to Factory.
	FactoryFunc = internal.FactoryFunc

	// Registry is a Factory backed by registered constructors.
	Registry = internal.Registry

	// RouteTable generates URLs for handler types.
	RouteTable = internal.RouteTable

	// Stage is a step of the request pipeline.
	Stage = internal.Stage

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// Result is the outcome of a handler or filter method.
	Result = result.Result

	// Args are the arguments of a handler redirect.
	Args = result.Args
)

// Error types
type (
	// HTTPError represents an HTTP error with a status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// UnsupportedVerbError reports a verb the handler has no method for.
	UnsupportedVerbError = internal.UnsupportedVerbError

	// AmbiguousMethodError reports several methods matching one verb or hook.
	AmbiguousMethodError = internal.AmbiguousMethodError
)

// Sentinel errors
var (
	ErrUnsupportedVerb  = internal.ErrUnsupportedVerb
	ErrAmbiguousMethod  = internal.ErrAmbiguousMethod
	ErrInvalidMethod    = internal.ErrInvalidMethod
	ErrInvalidComponent = internal.ErrInvalidComponent
	ErrRouteNotFound    = internal.ErrRouteNotFound
	ErrMissingRouteArg  = internal.ErrMissingRouteArg
	ErrInvalidRoute     = internal.ErrInvalidRoute
	ErrNoProvider       = internal.ErrNoProvider
)

// Pipeline stages
const (
	StagePending       = internal.StagePending
	StageBeforeFilters = internal.StageBeforeFilters
	StageHandler       = internal.StageHandler
	StageAfterFilters  = internal.StageAfterFilters
	StageDone          = internal.StageDone
)

// Constructors

// New creates a new application with the given options.
// Handler and filter types are validated here; configuration defects panic.
//
// Example:
//
//	reg := tinyweb.NewRegistry()
//	tinyweb.ProvideValue(reg, &pages.Home{})
//
//	app := tinyweb.New(
//	    tinyweb.WithFactory(reg),
//	    tinyweb.WithRoute("/", tinyweb.TypeOf[*pages.Home]()),
//	)
//
//	err := app.Run(":8080", tinyweb.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// TypeOf returns the Descriptor of T.
func TypeOf[T any]() Descriptor {
	return internal.TypeOf[T]()
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// Provide registers a constructor called for every request that needs a T.
func Provide[T any](r *Registry, ctor func(ctx context.Context) (T, error)) {
	internal.Provide(r, ctor)
}

// ProvideValue registers one instance of T shared by all requests.
func ProvideValue[T any](r *Registry, v T) {
	internal.ProvideValue(r, v)
}

// App options

// WithRoute maps a route pattern to a handler type and its route filters.
//
// Example:
//
//	tinyweb.WithRoute("/products/{id:[0-9]+}",
//	    tinyweb.TypeOf[*ProductHandler](),
//	    tinyweb.TypeOf[*AuthFilter](),
//	)
func WithRoute(pattern string, handler Descriptor, filters ...Descriptor) Option {
	return internal.WithRoute(pattern, handler, filters...)
}

// WithFilters adds filters that run for every route, before route filters.
func WithFilters(filters ...Descriptor) Option {
	return internal.WithFilters(filters...)
}

// WithFactory sets the Factory that creates handler and filter instances.
func WithFactory(f Factory) Option {
	return internal.WithFactory(f)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithViews sets the filesystem HTML results are rendered from.
func WithViews(fsys fs.FS) Option {
	return internal.WithViews(fsys)
}

// WithFiles sets the filesystem File results are served from.
func WithFiles(fsys fs.FS) Option {
	return internal.WithFiles(fsys)
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	tinyweb.New(
//	    tinyweb.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithHealthChecks registers liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health check options

// WithLivenessPath sets the liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithHealthTimeout bounds the time spent running readiness checks.
func WithHealthTimeout(d time.Duration) HealthOption {
	return internal.WithHealthTimeout(d)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server accepts connections.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Listener serves on an existing listener instead of the Run address.
func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// Results

// HTML renders a view. Paths ending in ".md" are Markdown pages.
func HTML(path string) Result {
	return result.HTML(path)
}

// File serves a file from the files filesystem.
func File(path string) Result {
	return result.File(path)
}

// JSON encodes v as the response body.
func JSON(v any) Result {
	return result.JSON(v)
}

// Text writes s as a plain text body.
func Text(s string) Result {
	return result.Text(s)
}

// Redirect answers with a 302 to uri.
func Redirect(uri string) Result {
	return result.Redirect(uri)
}

// RedirectTo answers with a 302 to the route of handler type T.
func RedirectTo[T any](args Args) Result {
	return result.RedirectTo[T](args)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 HTTPError.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrNotImplemented creates a 501 HTTPError.
func ErrNotImplemented(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotImplemented(message, opts...)
}

// WithError attaches an underlying error to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithTitle sets the title of an HTTPError.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithDetail sets the detail of an HTTPError.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// StatusCode maps an error to the HTTP status it should be reported with.
func StatusCode(err error) int {
	return internal.StatusCode(err)
}

// DefaultErrorHandler writes a plain text error response.
// Custom error handlers can fall back to it.
func DefaultErrorHandler(c Context, err error) error {
	return internal.DefaultErrorHandler(c, err)
}
