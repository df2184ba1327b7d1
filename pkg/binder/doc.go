// Package binder turns layered request values into typed Go arguments.
//
// A request exposes three layers of raw string values: route values produced
// by path matching, the query string, and the form body. A [Binder] probes
// those layers in a fixed priority order and converts what it finds into the
// parameters a function declares.
//
// # Declaring parameters
//
// Go functions do not carry parameter names at runtime, so parameters are
// declared as the exported fields of an arguments struct. The field name (or
// its `param` tag) is the lookup key; lookups ignore case:
//
//	type listArgs struct {
//	    Query   string   `param:"q"`
//	    Page    int      `default:"1"`
//	    Tags    []string // read from "tags[]"
//	    Filter  filter   // nested object, filled field by field
//	    Archive *bool    // optional, nil when absent
//	}
//
// [Describe] derives a [Signature] from a function type once and caches it for
// the lifetime of the process. Each input of the function is either an
// interface implementing [RequestContext], which receives the request itself,
// or an arguments struct.
//
// # Resolution rules
//
//   - Scalars use the first source holding a convertible, non-empty value.
//     Conversion is locale independent; "on" is accepted as true for booleans.
//     A value that does not convert counts as absent.
//   - Arrays read every value under "name[]" from the first source that has
//     the key, in request order. No values yields an empty slice.
//   - Objects are zero-constructed and every field resolves by its own name
//     against the same sources. Unresolved fields keep their zero value.
//   - An unresolved top-level scalar takes its `default` tag, stays nil when it
//     is a pointer, and otherwise fails with [MissingParameterError].
//
// Handlers bind with [HandlerOrder] (route, query, form); filters bind with
// [FilterOrder] (query, form).
//
// # Usage
//
//	b := binder.New(binder.HandlerOrder...)
//	rc := binder.NewValues(
//	    map[string]string{"id": "5"},
//	    url.Values{"numbers[]": {"1", "2"}},
//	    nil,
//	)
//	args, err := binder.Into[struct {
//	    ID      int
//	    Numbers []int
//	}](b, rc)
package binder
