package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tinyweb/internal"
	"github.com/dmitrymomot/tinyweb/pkg/binder"
	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// testContext is a minimal internal.Context for exercising middleware in
// isolation.
type testContext struct {
	*binder.Values
	request *http.Request
	writer  *internal.ResponseWriter
	logger  *slog.Logger
	logs    *bytes.Buffer
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	logs := &bytes.Buffer{}
	return &testContext{
		Values:  binder.NewValues(nil, r.URL.Query(), nil),
		request: r,
		writer:  internal.NewResponseWriter(w),
		logger:  slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		logs:    logs,
	}
}

func (c *testContext) Request() *http.Request                   { return c.request }
func (c *testContext) Response() http.ResponseWriter            { return c.writer }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.writer }
func (c *testContext) Context() context.Context                 { return c.request.Context() }
func (c *testContext) Method() string                           { return c.request.Method }
func (c *testContext) Param(string) string                      { return "" }
func (c *testContext) Query(name string) string                 { return c.request.URL.Query().Get(name) }
func (c *testContext) Form(string) string                       { return "" }
func (c *testContext) Header(name string) string                { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)             { c.writer.Header().Set(name, value) }
func (c *testContext) Written() bool                            { return c.writer.Written() }
func (c *testContext) Logger() *slog.Logger                     { return c.logger }

func (c *testContext) JSON(code int, _ any) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *testContext) String(code int, s string) error {
	c.writer.WriteHeader(code)
	_, err := c.writer.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.writer, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) URL(internal.Descriptor, result.Args) (string, error) {
	return "", internal.ErrRouteNotFound
}

func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.DebugContext(c.Context(), msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.InfoContext(c.Context(), msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.WarnContext(c.Context(), msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.ErrorContext(c.Context(), msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

var _ internal.Context = (*testContext)(nil)
