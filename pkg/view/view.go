package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer renders views from a filesystem.
// Files ending in ".md" are Markdown pages; everything else is an html/template.
// Parsed views are cached for the lifetime of the Renderer.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	templates map[string]*template.Template
	pages     map[string]*page

	mu sync.RWMutex
}

// page is a parsed Markdown view. Markdown is converted once; layouts are
// executed per render.
type page struct {
	meta    map[string]any
	layout  string
	content template.HTML
}

// LayoutData is passed to the layout of a Markdown page.
type LayoutData struct {
	Meta    map[string]any
	Content template.HTML
	Data    any
}

// New creates a Renderer reading views from fsys.
func New(fsys fs.FS) *Renderer {
	return &Renderer{
		fs: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		templates: make(map[string]*template.Template),
		pages:     make(map[string]*page),
	}
}

// Render writes the view name to w. The output is buffered, so nothing is
// written when rendering fails.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	name, err := Clean(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if IsMarkdown(name) {
		err = r.renderPage(&buf, name, data)
	} else {
		err = r.renderTemplate(&buf, name, data)
	}
	if err != nil {
		return err
	}

	_, err = buf.WriteTo(w)
	return err
}

// IsMarkdown reports whether name is rendered as Markdown.
func IsMarkdown(name string) bool {
	return strings.EqualFold(path.Ext(name), ".md")
}

// Clean converts a view path to a valid fs.FS name.
// A leading slash is allowed; ".." segments are not.
func Clean(name string) (string, error) {
	n := strings.TrimPrefix(name, "/")
	if n == "" || !fs.ValidPath(n) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return n, nil
}

func (r *Renderer) renderTemplate(w io.Writer, name string, data any) error {
	tmpl, err := r.template(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return nil
}

func (r *Renderer) renderPage(w io.Writer, name string, data any) error {
	p, err := r.page(name)
	if err != nil {
		return err
	}

	if p.layout == "" {
		_, err := io.WriteString(w, string(p.content))
		return err
	}

	layout, err := Clean(p.layout)
	if err != nil {
		return err
	}
	return r.renderTemplate(w, layout, LayoutData{Meta: p.meta, Content: p.content, Data: data})
}

// template returns a cached template or parses and caches it.
func (r *Renderer) template(name string) (*template.Template, error) {
	r.mu.RLock()
	if t, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return t, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	content, err := r.read(name)
	if err != nil {
		return nil, err
	}
	t, err := template.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	r.templates[name] = t
	return t, nil
}

// page returns a cached Markdown page or parses, converts and caches it.
func (r *Renderer) page(name string) (*page, error) {
	r.mu.RLock()
	if p, ok := r.pages[name]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pages[name]; ok {
		return p, nil
	}

	content, err := r.read(name)
	if err != nil {
		return nil, err
	}
	parsed, err := ParsePage(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var html bytes.Buffer
	if err := r.md.Convert(parsed.Body, &html); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	p := &page{
		meta:    parsed.Meta,
		layout:  parsed.Layout(),
		content: template.HTML(html.String()),
	}
	r.pages[name] = p
	return p, nil
}

func (r *Renderer) read(name string) ([]byte, error) {
	if r.fs == nil {
		return nil, fmt.Errorf("%w: %s: no views configured", ErrNotFound, name)
	}
	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}
	return content, nil
}
