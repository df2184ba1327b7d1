package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/internal"
	"github.com/dmitrymomot/tinyweb/middlewares"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs written status", func(t *testing.T) {
		t.Parallel()
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/items", nil))

		err := middlewares.RequestLogger()(func(c internal.Context) error {
			return c.String(http.StatusCreated, "ok")
		})(ctx)
		require.NoError(t, err)

		logs := ctx.logs.String()
		require.Contains(t, logs, `"msg":"request completed"`)
		require.Contains(t, logs, `"method":"POST"`)
		require.Contains(t, logs, `"path":"/items"`)
		require.Contains(t, logs, `"status":201`)
		require.Contains(t, logs, `"size":2`)
		require.Contains(t, logs, `"level":"INFO"`)
	})

	t.Run("unwritten error uses mapped status", func(t *testing.T) {
		t.Parallel()
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		boom := errors.New("boom")

		err := middlewares.RequestLogger()(func(internal.Context) error { return boom })(ctx)
		require.ErrorIs(t, err, boom)
		require.Contains(t, ctx.logs.String(), `"status":500`)
		require.Contains(t, ctx.logs.String(), `"level":"ERROR"`)
	})

	t.Run("client errors warn", func(t *testing.T) {
		t.Parallel()
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.RequestLogger()(func(c internal.Context) error {
			return c.Error(http.StatusNotFound, "missing")
		})(ctx)
		require.Error(t, err)
		require.Contains(t, ctx.logs.String(), `"status":404`)
		require.Contains(t, ctx.logs.String(), `"level":"WARN"`)
	})
}
