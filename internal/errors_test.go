package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/internal"
	"github.com/dmitrymomot/tinyweb/pkg/binder"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("db down")
		err := internal.NewHTTPError(http.StatusServiceUnavailable, "try later",
			internal.WithTitle("Maintenance"),
			internal.WithDetail("back soon"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)

		require.Equal(t, "try later", err.Error())
		require.Equal(t, "Maintenance", err.StatusText())
		require.Equal(t, "back soon", err.Detail)
		require.Equal(t, "req-1", err.RequestID)
		require.ErrorIs(t, err, cause)
	})

	t.Run("status text defaults to code", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Not Found", internal.ErrNotFound("gone").StatusText())
	})

	t.Run("wrapped lookup", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", internal.ErrBadRequest("bad")))
		require.True(t, internal.IsHTTPError(err))
		require.Equal(t, http.StatusBadRequest, internal.AsHTTPError(err).Code)

		require.False(t, internal.IsHTTPError(errors.New("plain")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	handler := reflect.TypeFor[*struct{}]()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"http error", internal.ErrNotFound("x"), http.StatusNotFound},
		{"wrapped http error", fmt.Errorf("w: %w", internal.ErrNotImplemented("x")), http.StatusNotImplemented},
		{"unsupported verb", &internal.UnsupportedVerbError{Handler: handler, Verb: "DELETE"}, http.StatusNotImplemented},
		{"missing parameter", &binder.MissingParameterError{Name: "id", Type: "int"}, http.StatusInternalServerError},
		{"construction failure", &binder.ConstructionError{Type: "chan int"}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, internal.StatusCode(tt.err))
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeFor[*struct{}]()

	verb := &internal.UnsupportedVerbError{Handler: typ, Verb: "DELETE"}
	require.ErrorIs(t, verb, internal.ErrUnsupportedVerb)
	require.Contains(t, verb.Error(), "DELETE")

	amb := &internal.AmbiguousMethodError{Type: typ, Name: "GET", Methods: []string{"Get", "GET"}}
	require.ErrorIs(t, amb, internal.ErrAmbiguousMethod)
	require.Contains(t, amb.Error(), "Get, GET")
}
