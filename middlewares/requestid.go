package middlewares

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/tinyweb/internal"
	"github.com/dmitrymomot/tinyweb/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked, in order, for an upstream request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// DefaultRequestIDMaxLength bounds the length of an accepted upstream ID.
const DefaultRequestIDMaxLength = 128

// RequestIDOption configures the request ID middleware.
type RequestIDOption func(*requestIDs)

// WithRequestIDHeaders sets the headers checked for an upstream request ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(r *requestIDs) {
		r.headers = headers
	}
}

// WithRequestIDGenerator sets the function producing new IDs.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(r *requestIDs) {
		if gen != nil {
			r.generate = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header carrying the ID.
// An empty name disables the response header.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(r *requestIDs) {
		r.responseHeader = header
	}
}

// WithRequestIDMaxLength sets the longest upstream ID that is accepted.
func WithRequestIDMaxLength(n int) RequestIDOption {
	return func(r *requestIDs) {
		if n > 0 {
			r.maxLength = n
		}
	}
}

type requestIDs struct {
	headers        []string
	generate       func() string
	responseHeader string
	maxLength      int
}

// RequestID returns middleware that assigns an ID to each request.
//
// An upstream ID is reused when the first configured header that is present
// holds a printable ASCII value no longer than the maximum length; otherwise
// a new one is generated (a random UUID by default). The ID is stored on the
// context and echoed in the response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	r := &requestIDs{
		headers:        DefaultRequestIDHeaders,
		generate:       uuid.NewString,
		responseHeader: "X-Request-ID",
		maxLength:      DefaultRequestIDMaxLength,
	}
	for _, opt := range opts {
		opt(r)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := r.upstream(c)
			if id == "" {
				id = r.generate()
			}

			c.Set(requestIDKey{}, id)
			if r.responseHeader != "" {
				c.SetHeader(r.responseHeader, id)
			}
			return next(c)
		}
	}
}

func (r *requestIDs) upstream(c internal.Context) string {
	for _, h := range r.headers {
		v := c.Header(h)
		if v == "" {
			continue
		}
		if r.valid(v) {
			return v
		}
		return ""
	}
	return ""
}

func (r *requestIDs) valid(id string) bool {
	if len(id) > r.maxLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID stored on c, or "".
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to log records written with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.ValueExtractor(requestIDKey{}, "request_id")
}
