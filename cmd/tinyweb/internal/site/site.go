// Package site is the demo application served by the tinyweb command.
package site

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/tinyweb"
	"github.com/dmitrymomot/tinyweb/middlewares"
	"github.com/dmitrymomot/tinyweb/pkg/config"
)

//go:embed views files
var assets embed.FS

// Route describes one demo route.
type Route struct {
	Pattern string
	Handler tinyweb.Descriptor
	Filters []tinyweb.Descriptor
}

// Routes returns the demo routes in registration order.
func Routes() []Route {
	return []Route{
		{Pattern: "/", Handler: tinyweb.TypeOf[Home]()},
		{Pattern: "/about", Handler: tinyweb.TypeOf[About]()},
		{Pattern: "/hello/{name}", Handler: tinyweb.TypeOf[Greeting]()},
		{Pattern: "/hello", Handler: tinyweb.TypeOf[Greeting]()},
		{Pattern: "/welcome", Handler: tinyweb.TypeOf[Legacy]()},
		{Pattern: "/sum", Handler: tinyweb.TypeOf[Sum]()},
		{Pattern: "/notes", Handler: tinyweb.TypeOf[*Notes]()},
		{Pattern: "/notes/{id:[0-9]+}", Handler: tinyweb.TypeOf[*NoteDetail]()},
		{Pattern: "/files/*", Handler: tinyweb.TypeOf[Download]()},
		{
			Pattern: "/admin",
			Handler: tinyweb.TypeOf[Admin](),
			Filters: []tinyweb.Descriptor{tinyweb.TypeOf[AdminOnly](), tinyweb.TypeOf[NoStore]()},
		},
	}
}

// New builds the demo application.
func New(cfg config.Config, log *slog.Logger) (*tinyweb.App, error) {
	views, err := dirOrEmbedded(cfg.ViewsDir, "views")
	if err != nil {
		return nil, err
	}
	files, err := dirOrEmbedded(cfg.FilesDir, "files")
	if err != nil {
		return nil, err
	}

	notes := NewNoteStore()
	reg := tinyweb.NewRegistry()
	tinyweb.ProvideValue(reg, Home{})
	tinyweb.ProvideValue(reg, About{})
	tinyweb.ProvideValue(reg, Greeting{})
	tinyweb.ProvideValue(reg, Legacy{})
	tinyweb.ProvideValue(reg, Sum{})
	tinyweb.ProvideValue(reg, Download{})
	tinyweb.ProvideValue(reg, Admin{})
	tinyweb.ProvideValue(reg, PoweredBy{})
	tinyweb.ProvideValue(reg, NoStore{})
	tinyweb.ProvideValue(reg, AdminOnly{token: cfg.AdminToken})
	tinyweb.Provide(reg, func(context.Context) (*Notes, error) {
		return &Notes{store: notes}, nil
	})
	tinyweb.Provide(reg, func(context.Context) (*NoteDetail, error) {
		return &NoteDetail{store: notes}, nil
	})

	opts := []tinyweb.Option{
		tinyweb.WithCustomLogger(log),
		tinyweb.WithFactory(reg),
		tinyweb.WithViews(views),
		tinyweb.WithFiles(files),
		tinyweb.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
		),
		tinyweb.WithFilters(tinyweb.TypeOf[PoweredBy]()),
		tinyweb.WithNotFoundHandler(func(c tinyweb.Context) error {
			return c.String(http.StatusNotFound, "page not found")
		}),
		tinyweb.WithHealthChecks(
			tinyweb.WithReadinessCheck("views", func(context.Context) error {
				_, err := fs.Stat(views, "layout.html")
				return err
			}),
		),
	}
	for _, r := range Routes() {
		opts = append(opts, tinyweb.WithRoute(r.Pattern, r.Handler, r.Filters...))
	}

	return tinyweb.New(opts...), nil
}

// dirOrEmbedded returns dir from disk, or the embedded directory when dir is empty.
func dirOrEmbedded(dir, embedded string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(assets, embedded)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
