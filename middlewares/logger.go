package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tinyweb/internal"
)

// RequestLogger returns middleware that logs one entry per request with the
// method, path, status, response size and duration.
// Server errors are logged at error level and client errors at warn level.
// Register it after RequestID so entries carry the request ID.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := http.StatusOK
			var size int64
			if rw := c.ResponseWriter(); rw != nil {
				status, size = rw.Status(), rw.Size()
			}
			if err != nil && !c.Written() {
				status = internal.StatusCode(err)
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			c.Logger().LogAttrs(c.Request().Context(), level, "request completed",
				slog.String("method", c.Method()),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", size),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
