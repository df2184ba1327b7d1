package result_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/pkg/result"
)

type productHandler struct{}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  result.Result
		want result.Result
		kind string
	}{
		{"html", result.HTML("index.html"), result.HTMLResult{Path: "index.html"}, "html"},
		{"file", result.File("a.pdf"), result.FileResult{Path: "a.pdf"}, "file"},
		{"json", result.JSON(map[string]int{"a": 1}), result.JSONResult{Value: map[string]int{"a": 1}}, "json"},
		{"text", result.Text("hi"), result.TextResult{Value: "hi"}, "text"},
		{"redirect", result.Redirect("/x"), result.RedirectResult{URI: "/x"}, "redirect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.res)
			assert.Equal(t, tt.kind, tt.res.Kind().String())
		})
	}
}

func TestRedirectTo(t *testing.T) {
	t.Parallel()

	args := result.Args{"id": 5}
	res := result.RedirectTo[*productHandler](args)
	args["id"] = 6

	hr, ok := res.(result.HandlerRedirectResult)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*productHandler](), hr.Handler)
	assert.Equal(t, 5, hr.Args["id"])
	assert.Equal(t, "handler_redirect", res.Kind().String())
}

func TestUnknownKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "unknown", result.Kind(0).String())
}
