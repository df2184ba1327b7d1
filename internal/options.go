package internal

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/tinyweb/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithRoute maps a chi pattern to a handler type. Every verb is routed to
// the pipeline; the handler's verb methods decide which are supported.
// Route filters run after the global filters, in the order given.
//
// The first pattern registered for a handler type is the one used to
// generate URLs for it.
//
// Example:
//
//	tinyweb.WithRoute("/products/{id:[0-9]+}",
//	    tinyweb.TypeOf[*ProductHandler](),
//	    tinyweb.TypeOf[*AuthFilter](),
//	)
func WithRoute(pattern string, handler Descriptor, filters ...Descriptor) Option {
	return func(a *App) {
		a.routeDefs = append(a.routeDefs, routeDef{
			pattern: pattern,
			handler: handler,
			filters: filters,
		})
	}
}

// WithFilters adds filters that run for every route, before route filters.
func WithFilters(filters ...Descriptor) Option {
	return func(a *App) {
		a.filters = append(a.filters, filters...)
	}
}

// WithFactory sets the Factory that creates handler and filter instances.
// Defaults to an empty Registry.
func WithFactory(f Factory) Option {
	return func(a *App) {
		if f != nil {
			a.factory = f
		}
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithViews sets the filesystem HTML results are rendered from.
// Templates receive the request Context as data.
//
// Example:
//
//	//go:embed views
//	var views embed.FS
//
//	sub, _ := fs.Sub(views, "views")
//	tinyweb.New(tinyweb.WithViews(sub))
func WithViews(fsys fs.FS) Option {
	return func(a *App) {
		a.views = fsys
	}
}

// WithFiles sets the filesystem File results are served from.
func WithFiles(fsys fs.FS) Option {
	return func(a *App) {
		a.files = fsys
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when the pipeline or rendering fails and nothing has been written.
//
// Example:
//
//	tinyweb.WithErrorHandler(func(c tinyweb.Context, err error) error {
//	    return c.JSON(tinyweb.StatusCode(err), map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	tinyweb.WithNotFoundHandler(func(c tinyweb.Context) error {
//	    return c.String(http.StatusNotFound, "Page not found")
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	tinyweb.New(
//	    tinyweb.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHealthChecks registers liveness and readiness endpoints.
// Liveness always answers OK while the process runs; readiness runs every
// configured check and answers 503 when any of them fails.
//
// Example:
//
//	tinyweb.WithHealthChecks(
//	    tinyweb.WithReadinessCheck("views", func(ctx context.Context) error {
//	        _, err := fs.Stat(views, "layout.html")
//	        return err
//	    }),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			timeout:       defaultHealthTimeout,
			checks:        make(map[string]CheckFunc),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.health = cfg
	}
}
