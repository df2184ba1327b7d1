package internal

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// RouteTable maps handler types to the pattern they were first registered
// with. It is built by New and read-only afterwards.
type RouteTable struct {
	patterns map[reflect.Type]string
}

func newRouteTable() *RouteTable {
	return &RouteTable{patterns: make(map[reflect.Type]string)}
}

// add records pattern for t unless t already has one.
func (rt *RouteTable) add(t reflect.Type, pattern string) {
	if _, ok := rt.patterns[t]; !ok {
		rt.patterns[t] = pattern
	}
}

// Pattern returns the route pattern registered for handler type t.
func (rt *RouteTable) Pattern(t reflect.Type) (string, bool) {
	p, ok := rt.patterns[t]
	return p, ok
}

// URL expands the pattern registered for handler type t.
// Placeholders ({id}, {id:[0-9]+}, a trailing *) are filled from args,
// matching names case-insensitively. Remaining args become a query string
// sorted by key; slice values are encoded as repeated "name[]" keys.
func (rt *RouteTable) URL(t reflect.Type, args result.Args) (string, error) {
	pattern, ok := rt.patterns[t]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrRouteNotFound, t)
	}

	keys := sortedArgKeys(args)
	used := make(map[string]bool, len(args))
	arg := func(name string) (any, bool) {
		for _, k := range keys {
			if strings.EqualFold(k, name) {
				used[k] = true
				return args[k], true
			}
		}
		return nil, false
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch ch := pattern[i]; {
		case ch == '{':
			end := closingBrace(pattern, i)
			if end < 0 {
				return "", fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidRoute, pattern)
			}
			name, _, _ := strings.Cut(pattern[i+1:end], ":")
			v, ok := arg(name)
			if !ok {
				return "", fmt.Errorf("%w: %q for %s", ErrMissingRouteArg, name, pattern)
			}
			b.WriteString(url.PathEscape(formatArg(v)))
			i = end
		case ch == '*' && i == len(pattern)-1:
			if v, ok := arg("*"); ok {
				for j, seg := range strings.Split(formatArg(v), "/") {
					if j > 0 {
						b.WriteByte('/')
					}
					b.WriteString(url.PathEscape(seg))
				}
			}
		default:
			b.WriteByte(ch)
		}
	}

	query := url.Values{}
	for _, k := range keys {
		if used[k] {
			continue
		}
		v := reflect.ValueOf(args[k])
		if v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && v.Type().Elem().Kind() != reflect.Uint8 {
			for i := range v.Len() {
				query.Add(k+"[]", formatArg(v.Index(i).Interface()))
			}
			continue
		}
		query.Add(k, formatArg(args[k]))
	}

	u := b.String()
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// closingBrace returns the index of the brace closing the one at start,
// allowing nested braces in regexp placeholders.
func closingBrace(pattern string, start int) int {
	depth := 0
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func formatArg(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case encoding.TextMarshaler:
		if b, err := x.MarshalText(); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

func sortedArgKeys(args result.Args) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
