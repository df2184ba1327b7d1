package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/dmitrymomot/tinyweb/pkg/result"
	"github.com/dmitrymomot/tinyweb/pkg/view"
)

// renderer writes Results to the response.
type renderer struct {
	views  *view.Renderer
	files  fs.FS
	routes *RouteTable
}

// render writes res. A nil Result is answered with 204 No Content.
func (r *renderer) render(c Context, res result.Result) error {
	switch res := res.(type) {
	case nil:
		return c.NoContent(http.StatusNoContent)

	case result.HTMLResult:
		var buf bytes.Buffer
		if err := r.views.Render(&buf, res.Path, c); err != nil {
			if errors.Is(err, view.ErrNotFound) {
				return ErrNotFound("page not found", WithError(err))
			}
			return err
		}
		c.SetHeader("Content-Type", "text/html; charset=utf-8")
		c.ResponseWriter().WriteHeader(http.StatusOK)
		_, err := buf.WriteTo(c.Response())
		return err

	case result.FileResult:
		name, err := r.file(res.Path)
		if err != nil {
			return ErrNotFound("file not found", WithError(err))
		}
		http.ServeFileFS(c.Response(), c.Request(), r.files, name)
		return nil

	case result.JSONResult:
		return c.JSON(http.StatusOK, res.Value)

	case result.TextResult:
		return c.String(http.StatusOK, res.Value)

	case result.RedirectResult:
		return c.Redirect(http.StatusFound, res.URI)

	case result.HandlerRedirectResult:
		u, err := r.routes.URL(res.Handler, res.Args)
		if err != nil {
			return err
		}
		return c.Redirect(http.StatusFound, u)
	}

	return fmt.Errorf("tinyweb: cannot render %s result", res.Kind())
}

// file resolves path to an existing regular file in the files filesystem.
func (r *renderer) file(path string) (string, error) {
	if r.files == nil {
		return "", errors.New("no files configured")
	}
	name, err := view.Clean(path)
	if err != nil {
		return "", err
	}
	info, err := fs.Stat(r.files, name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", name)
	}
	return name, nil
}
