package internal

import "reflect"

// HandlerFunc is the signature for plain request handlers such as the
// not-found handler. Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next tinyweb.HandlerFunc) tinyweb.HandlerFunc {
//	    return func(c tinyweb.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Redirect(302, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// Descriptor identifies a handler or filter type.
// The application never constructs instances itself; a Factory turns a
// Descriptor into a value for every request.
type Descriptor struct {
	Type reflect.Type
}

// TypeOf returns the Descriptor of T.
//
// Example:
//
//	tinyweb.WithRoute("/products/{id}", tinyweb.TypeOf[*ProductHandler]())
func TypeOf[T any]() Descriptor {
	return Descriptor{Type: reflect.TypeFor[T]()}
}

func (d Descriptor) String() string {
	if d.Type == nil {
		return "<nil>"
	}
	return d.Type.String()
}
