package result

import "reflect"

// Kind identifies a Result variant.
type Kind uint8

const (
	KindHTML Kind = iota + 1
	KindFile
	KindJSON
	KindText
	KindRedirect
	KindHandlerRedirect
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindFile:
		return "file"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindRedirect:
		return "redirect"
	case KindHandlerRedirect:
		return "handler_redirect"
	}
	return "unknown"
}

// Result is the outcome of a handler or filter hook.
// The set of variants is closed; values are immutable once constructed.
type Result interface {
	Kind() Kind
	result()
}

// Args is the argument bag used to build a URL for a handler redirect.
// Keys match route placeholders case-insensitively; the rest become the
// query string.
type Args map[string]any

// HTMLResult renders the template at Path.
type HTMLResult struct {
	Path string
}

// FileResult serves the raw file at Path.
type FileResult struct {
	Path string
}

// JSONResult serializes Value as JSON.
type JSONResult struct {
	Value any
}

// TextResult sends Value as plain text.
type TextResult struct {
	Value string
}

// RedirectResult redirects to a literal URI.
type RedirectResult struct {
	URI string
}

// HandlerRedirectResult redirects to the route registered for Handler.
type HandlerRedirectResult struct {
	Handler reflect.Type
	Args    Args
}

func (HTMLResult) Kind() Kind            { return KindHTML }
func (FileResult) Kind() Kind            { return KindFile }
func (JSONResult) Kind() Kind            { return KindJSON }
func (TextResult) Kind() Kind            { return KindText }
func (RedirectResult) Kind() Kind        { return KindRedirect }
func (HandlerRedirectResult) Kind() Kind { return KindHandlerRedirect }

func (HTMLResult) result()            {}
func (FileResult) result()            {}
func (JSONResult) result()            {}
func (TextResult) result()            {}
func (RedirectResult) result()        {}
func (HandlerRedirectResult) result() {}

// HTML renders a template. Paths ending in ".md" are rendered as Markdown.
func HTML(path string) Result {
	return HTMLResult{Path: path}
}

// File serves a file as-is.
func File(path string) Result {
	return FileResult{Path: path}
}

// JSON sends v with a JSON content type.
func JSON(v any) Result {
	return JSONResult{Value: v}
}

// Text sends s as plain text.
func Text(s string) Result {
	return TextResult{Value: s}
}

// Redirect redirects to uri.
func Redirect(uri string) Result {
	return RedirectResult{URI: uri}
}

// RedirectTo redirects to the route of handler type T.
// The argument bag is copied.
//
// Example:
//
//	return result.RedirectTo[*ProductHandler](result.Args{"id": 5})
func RedirectTo[T any](args Args) Result {
	cp := make(Args, len(args))
	for k, v := range args {
		cp[k] = v
	}
	return HandlerRedirectResult{Handler: reflect.TypeFor[T](), Args: cp}
}
