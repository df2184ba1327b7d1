package view_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tinyweb/pkg/view"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":  {Data: []byte(`<h1>Hello, {{.}}!</h1>`)},
		"broken.html": {Data: []byte(`{{ .Missing `)},
		"fail.html":   {Data: []byte(`{{ .Nope }}`)},
		"plain.md":    {Data: []byte("# Title\n\nSome *text*.\n")},
		"about.md":    {Data: []byte("---\ntitle: About\nlayout: layout.html\n---\n# About\n")},
		"layout.html": {Data: []byte(`<title>{{.Meta.title}}</title><main>{{.Content}}</main><p>{{.Data}}</p>`)},
		"bad.md":      {Data: []byte("---\ntitle: [unclosed\n---\nbody")},
	}
}

func TestRenderTemplate(t *testing.T) {
	t.Parallel()

	r := view.New(testFS())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "/index.html", "<gopher>"))
	assert.Equal(t, "<h1>Hello, &lt;gopher&gt;!</h1>", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "index.html", "again"))
	assert.Equal(t, "<h1>Hello, again!</h1>", buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	r := view.New(testFS())

	t.Run("without layout", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, "plain.md", nil))
		assert.Contains(t, buf.String(), `<h1 id="title">Title</h1>`)
		assert.Contains(t, buf.String(), "<em>text</em>")
	})

	t.Run("with layout", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, "about.md", "data"))
		out := buf.String()
		assert.Contains(t, out, "<title>About</title>")
		assert.Contains(t, out, `<main><h1 id="about">About</h1>`)
		assert.Contains(t, out, "<p>data</p>")
	})
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	r := view.New(testFS())

	tests := []struct {
		name   string
		target error
	}{
		{"missing.html", view.ErrNotFound},
		{"../secret.html", view.ErrNotFound},
		{"", view.ErrNotFound},
		{"broken.html", view.ErrRenderFailed},
		{"bad.md", view.ErrInvalidFrontmatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := r.Render(&buf, tt.name, nil)
			require.ErrorIs(t, err, tt.target)
			assert.Empty(t, buf.String())
		})
	}

	t.Run("no filesystem", func(t *testing.T) {
		t.Parallel()
		err := view.New(nil).Render(&bytes.Buffer{}, "index.html", nil)
		require.ErrorIs(t, err, view.ErrNotFound)
	})

	t.Run("execution failure writes nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := r.Render(&buf, "fail.html", 42)
		require.ErrorIs(t, err, view.ErrRenderFailed)
		assert.Empty(t, buf.String())
	})
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	t.Run("no frontmatter", func(t *testing.T) {
		t.Parallel()
		p, err := view.ParsePage([]byte("# Hi"))
		require.NoError(t, err)
		assert.Empty(t, p.Meta)
		assert.Equal(t, "# Hi", string(p.Body))
		assert.Empty(t, p.Layout())
	})

	t.Run("frontmatter", func(t *testing.T) {
		t.Parallel()
		p, err := view.ParsePage([]byte("---\nlayout: base.html\ntitle: X\n---\nbody\n"))
		require.NoError(t, err)
		assert.Equal(t, "base.html", p.Layout())
		assert.Equal(t, "X", p.Meta["title"])
		assert.Equal(t, "body\n", string(p.Body))
	})

	t.Run("unclosed", func(t *testing.T) {
		t.Parallel()
		_, err := view.ParsePage([]byte("---\ntitle: X\n"))
		require.ErrorIs(t, err, view.ErrInvalidFrontmatter)
	})
}
