// Package middlewares provides HTTP middleware for tinyweb applications.
//
// Middleware wraps the whole request, around routing to the handler type and
// around its filters. Filters are per-type hooks; middleware is for concerns
// that apply to every request regardless of the handler.
//
// # Request ID
//
// RequestID assigns an ID to each request. An upstream ID from X-Request-ID
// or X-Correlation-ID is kept when it is short printable ASCII; anything else
// is replaced by a random UUID. The ID is stored in the request context and
// echoed in the X-Request-ID response header.
//
// Pair it with RequestIDExtractor so every log entry carries request_id:
//
//	app := tinyweb.New(
//	    tinyweb.WithLogger("web", middlewares.RequestIDExtractor()),
//	    tinyweb.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into a *PanicError so the error handler can answer
// with a 500 instead of dropping the connection. http.ErrAbortHandler still
// aborts:
//
//	tinyweb.WithErrorHandler(func(c tinyweb.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return tinyweb.DefaultErrorHandler(c, err)
//	})
//
// # Request logger
//
// RequestLogger writes one entry per request with status, size and duration.
//
// # Order
//
//	tinyweb.WithMiddleware(
//	    middlewares.RequestID(),     // first: later entries carry the ID
//	    middlewares.RequestLogger(), // sees the final status
//	    middlewares.Recover(),       // innermost: converts panics to errors
//	)
package middlewares
