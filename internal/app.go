package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tinyweb/pkg/logger"
	"github.com/dmitrymomot/tinyweb/pkg/view"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It maps routes to handler types, runs their filter pipelines, renders
// results, and manages graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router          chi.Router
	dispatcher      *Dispatcher
	factory         Factory
	renderer        *renderer
	routes          *RouteTable
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	logger          *slog.Logger
	views           fs.FS
	files           fs.FS
	middlewares     []Middleware
	filters         []Descriptor
	routeDefs       []routeDef
	health          *healthConfig
}

// routeDef is a route declared with WithRoute.
type routeDef struct {
	pattern string
	handler Descriptor
	filters []Descriptor
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Every handler and filter type is inspected here. Configuration defects
// (ambiguous verb methods, unsupported parameter or return types, types the
// factory cannot provide) panic.
//
// Example:
//
//	reg := tinyweb.NewRegistry()
//	tinyweb.ProvideValue(reg, &ProductHandler{})
//
//	app := tinyweb.New(
//	    tinyweb.WithFactory(reg),
//	    tinyweb.WithRoute("/products/{id}", tinyweb.TypeOf[*ProductHandler]()),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:     chi.NewRouter(),
		dispatcher: NewDispatcher(),
		routes:     newRouteTable(),
		logger:     logger.NewNope(), // Default: noop logger (before options)
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.factory == nil {
		a.factory = NewRegistry()
	}
	a.renderer = &renderer{views: view.New(a.views), files: a.files, routes: a.routes}

	if err := a.validate(); err != nil {
		panic(err)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// Routes returns the route table used for URL generation.
func (a *App) Routes() *RouteTable {
	return a.routes
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", tinyweb.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	return newServer(addr, a.router, buildRunConfig(opts...)).run()
}

// validate builds the dispatch tables of every handler and filter type.
func (a *App) validate() error {
	reg, _ := a.factory.(*Registry)

	check := func(pattern string, d Descriptor, build func(Descriptor) error) error {
		if d.Type == nil {
			return fmt.Errorf("tinyweb: route %s: %w: nil descriptor", pattern, ErrInvalidComponent)
		}
		if err := build(d); err != nil {
			return fmt.Errorf("tinyweb: route %s: %w", pattern, err)
		}
		if reg != nil && !reg.Provides(d) {
			return fmt.Errorf("tinyweb: route %s: %w for %s", pattern, ErrNoProvider, d)
		}
		return nil
	}

	for _, rd := range a.routeDefs {
		if err := check(rd.pattern, rd.handler, validateHandler); err != nil {
			return err
		}
		for _, f := range a.filters {
			if err := check(rd.pattern, f, validateFilter); err != nil {
				return err
			}
		}
		for _, f := range rd.filters {
			if err := check(rd.pattern, f, validateFilter); err != nil {
				return err
			}
		}
	}
	return nil
}

// setupRoutes configures the router with middleware and routes.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.health != nil {
		a.router.Get(a.health.livenessPath, livenessHandler())
		a.router.Get(a.health.readinessPath, readinessHandler(a.health, a.logger))
	}

	// Every verb reaches the pipeline; the dispatcher resolves the method.
	for _, rd := range a.routeDefs {
		a.routes.add(rd.handler.Type, rd.pattern)

		filters := make([]Descriptor, 0, len(a.filters)+len(rd.filters))
		filters = append(filters, a.filters...)
		filters = append(filters, rd.filters...)

		a.router.Handle(rd.pattern, a.pipelineHandler(&pipeline{
			dispatcher: a.dispatcher,
			factory:    a.factory,
			pattern:    rd.pattern,
			handler:    rd.handler,
			filters:    filters,
		}))
	}
}

// pipelineHandler runs p and renders its Result.
func (a *App) pipelineHandler(p *pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger, a.routes)
		res, err := p.run(c)
		if err == nil {
			err = a.renderer.render(c, res)
		}
		if err != nil {
			a.handleError(c, err)
		}
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger, a.routes)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a Middleware to chi middleware.
// This adapter allows middleware to be written using the Context interface
// while satisfying chi's http.Handler-based middleware signature.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			c := newContext(w, r, a.logger, a.routes)
			if err := mw(nextFunc)(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		c.LogWarn("error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr), slog.Any("cause", err))
		}
		return
	}
	_ = DefaultErrorHandler(c, err)
}

// DefaultErrorHandler writes a plain text error response with the status
// chosen by StatusCode. Server errors are logged; their details are never
// sent to the client.
func DefaultErrorHandler(c Context, err error) error {
	code := StatusCode(err)
	msg := http.StatusText(code)

	if code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Int("status", code), slog.Any("error", err))
	} else {
		c.LogDebug("request rejected", slog.Int("status", code), slog.Any("error", err))
		if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Message != "" {
			msg = httpErr.Message
		}
	}

	http.Error(c.Response(), msg, code)
	return nil
}
