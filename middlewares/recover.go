package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/tinyweb/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverOption configures the recover middleware.
type RecoverOption func(*recoverer)

// WithRecoverStackSize caps the captured stack trace at size bytes.
// A size of zero or less disables stack capture.
func WithRecoverStackSize(size int) RecoverOption {
	return func(r *recoverer) {
		r.stackSize = max(size, 0)
	}
}

// WithRecoverDisablePrintStack disables stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return WithRecoverStackSize(0)
}

type recoverer struct {
	stackSize int
}

// Recover returns middleware that turns a panic in the rest of the chain into
// a *PanicError, so it reaches the application's error handler like any other
// error. http.ErrAbortHandler is re-panicked to let net/http abort the
// connection.
func Recover(opts ...RecoverOption) internal.Middleware {
	r := &recoverer{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(r)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = r.recovered(c, v)
				}
			}()
			return next(c)
		}
	}
}

func (r *recoverer) recovered(c internal.Context, v any) error {
	if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
		panic(v)
	}

	pe := &PanicError{Value: v, Stack: r.stack()}

	attrs := []any{
		slog.Any("panic", v),
		slog.String("method", c.Method()),
		slog.String("path", c.Request().URL.Path),
	}
	if pe.Stack != nil {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	c.LogError("panic recovered", attrs...)

	return pe
}

func (r *recoverer) stack() []byte {
	if r.stackSize == 0 {
		return nil
	}
	buf := make([]byte, r.stackSize)
	return buf[:runtime.Stack(buf, false)]
}
