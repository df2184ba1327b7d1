// Package tinyweb is a convention-driven web framework for Go.
//
// Routes map to handler types instead of functions. A handler type declares
// one exported method per HTTP verb it supports; the method name is the
// verb, matched case-insensitively. Method parameters are bound from the
// request: route values first, then the query string, then the form body.
//
//	type ProductArgs struct {
//	    ID      int
//	    Preview bool `default:"false"`
//	}
//
//	type ProductHandler struct{ repo *Repo }
//
//	func (h *ProductHandler) Get(c tinyweb.Context, a ProductArgs) (tinyweb.Result, error) {
//	    p, err := h.repo.Find(c, a.ID)
//	    if err != nil {
//	        return nil, tinyweb.ErrNotFound("product not found", tinyweb.WithError(err))
//	    }
//	    return tinyweb.JSON(p), nil
//	}
//
// A request whose verb has no method is answered with 501 Not Implemented.
//
// # Results
//
// Methods return a Result: HTML (a template, or a Markdown page with YAML
// frontmatter), File, JSON, Text, Redirect, or RedirectTo, which builds the
// URL of another handler type's route. A nil Result is answered with 204.
//
// # Filters
//
// Filters are types with optional Before and After methods. Before hooks run
// in order ahead of the handler; the first one returning a Result ends the
// request with it. After hooks run in the same order once the handler
// succeeded; the first Result returned replaces the handler's. Filter
// parameters bind from the query string and form body only.
//
//	type AuthFilter struct{}
//
//	func (AuthFilter) Before(a struct{ Token string }) tinyweb.Result {
//	    if a.Token == "" {
//	        return tinyweb.Redirect("/login")
//	    }
//	    return nil
//	}
//
// # Factory
//
// The application never constructs handlers or filters itself. A Factory
// creates one instance per descriptor per request; Registry is the default:
//
//	reg := tinyweb.NewRegistry()
//	tinyweb.Provide(reg, func(ctx context.Context) (*ProductHandler, error) {
//	    return &ProductHandler{repo: repo}, nil
//	})
//
//	app := tinyweb.New(
//	    tinyweb.WithFactory(reg),
//	    tinyweb.WithFilters(tinyweb.TypeOf[AuthFilter]()),
//	    tinyweb.WithRoute("/products/{id}", tinyweb.TypeOf[*ProductHandler]()),
//	)
//
// New inspects every registered type. Ambiguous verb methods, unsupported
// parameter or return types, and types the Registry cannot provide panic at
// startup rather than failing requests.
//
// # Binding
//
// Parameter binding lives in package binder and can be used on its own. See
// its documentation for the declaration rules.
package tinyweb
