package binder

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Source identifies one layer of request values.
type Source uint8

const (
	// Route holds single-valued path parameters produced by routing.
	Route Source = iota + 1
	// Query holds the URL query string.
	Query
	// Form holds the request body form.
	Form
)

func (s Source) String() string {
	switch s {
	case Route:
		return "route"
	case Query:
		return "query"
	case Form:
		return "form"
	}
	return "unknown"
}

// Source priorities used by the dispatcher.
var (
	// HandlerOrder is the probe order for handler method parameters.
	HandlerOrder = []Source{Route, Query, Form}

	// FilterOrder is the probe order for filter hook parameters.
	// Filters never see route values.
	FilterOrder = []Source{Query, Form}
)

// RequestContext is the read-only request snapshot the binder reads from.
// Implementations must match names case-insensitively.
type RequestContext interface {
	// RouteValue returns the path parameter with the given name.
	RouteValue(name string) (string, bool)

	// QueryValues returns all query string values for name in request order.
	QueryValues(name string) []string

	// FormValues returns all form body values for name in request order.
	FormValues(name string) []string
}

// Values is an immutable RequestContext built from plain maps.
// Keys are folded once at construction so lookups ignore case.
type Values struct {
	route map[string]string
	query map[string][]string
	form  map[string][]string
}

// NewValues creates a request snapshot. Any argument may be nil.
// When several keys fold to the same name, route values keep the first key in
// sorted order and query/form values are concatenated in sorted key order,
// because url.Values does not record order across keys. Build query with
// ParseQuery to keep request order across such keys.
func NewValues(route map[string]string, query, form url.Values) *Values {
	v := &Values{
		route: make(map[string]string, len(route)),
		query: foldValues(query),
		form:  foldValues(form),
	}
	for _, k := range sortedKeys(route) {
		fk := fold(k)
		if _, ok := v.route[fk]; !ok {
			v.route[fk] = route[k]
		}
	}
	return v
}

// RouteValue implements RequestContext.
func (v *Values) RouteValue(name string) (string, bool) {
	s, ok := v.route[fold(name)]
	return s, ok
}

// QueryValues implements RequestContext.
func (v *Values) QueryValues(name string) []string {
	return v.query[fold(name)]
}

// FormValues implements RequestContext.
func (v *Values) FormValues(name string) []string {
	return v.form[fold(name)]
}

var _ RequestContext = (*Values)(nil)

// lookup returns the non-empty raw values for name in src.
func lookup(rc RequestContext, src Source, name string) []string {
	switch src {
	case Route:
		if s, ok := rc.RouteValue(name); ok && s != "" {
			return []string{s}
		}
		return nil
	case Query:
		return nonEmpty(rc.QueryValues(name))
	case Form:
		return nonEmpty(rc.FormValues(name))
	}
	return nil
}

func nonEmpty(vals []string) []string {
	if !slices.Contains(vals, "") {
		return vals
	}
	out := make([]string, 0, len(vals))
	for _, s := range vals {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseQuery parses a raw query string like url.ParseQuery, but folds keys
// while reading so values whose keys differ only in case stay in request
// order. Pairs that fail to unescape or contain a semicolon are skipped.
func ParseQuery(raw string) url.Values {
	out := url.Values{}
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" || strings.Contains(pair, ";") {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		fk := fold(key)
		out[fk] = append(out[fk], val)
	}
	return out
}

func foldValues(src url.Values) map[string][]string {
	out := make(map[string][]string, len(src))
	for _, k := range sortedKeys(src) {
		fk := fold(k)
		out[fk] = append(out[fk], src[k]...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// fold applies Unicode case folding. A Caser is stateful, so one is created
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
