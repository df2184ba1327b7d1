package internal

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/tinyweb/pkg/binder"
	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// Invocation is the part of a request the dispatcher reads: the verb and the
// layered request values. Context satisfies it.
type Invocation interface {
	binder.RequestContext
	Method() string
}

// Dispatcher selects and invokes handler and filter methods.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	handlers *binder.Binder
	filters  *binder.Binder
}

// NewDispatcher creates a Dispatcher binding handler parameters from
// route, query and form values and filter parameters from query and form
// values.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: binder.New(binder.HandlerOrder...),
		filters:  binder.New(binder.FilterOrder...),
	}
}

// Dispatch invokes the method of handler matching the request verb.
// It fails with *UnsupportedVerbError when the handler has no such method and
// with binding errors when the method's parameters cannot be satisfied.
func (d *Dispatcher) Dispatch(handler any, inv Invocation) (result.Result, error) {
	recv, err := receiver(handler)
	if err != nil {
		return nil, err
	}
	tbl, err := handlerMethods(recv.Type())
	if err != nil {
		return nil, err
	}

	verb := strings.ToUpper(inv.Method())
	m, ok := tbl.verbs[verb]
	if !ok {
		return nil, &UnsupportedVerbError{Handler: recv.Type(), Verb: verb}
	}

	in, err := d.handlers.Arguments(m.sig, inv)
	if err != nil {
		return nil, err
	}
	return m.invoke(recv, in)
}

// RunBefore invokes the Before hook of filter, if it has one.
// A nil Result means the pipeline continues.
func (d *Dispatcher) RunBefore(filter any, inv Invocation) (result.Result, error) {
	return d.runHook(filter, inv, func(t *filterTable) *method { return t.before })
}

// RunAfter invokes the After hook of filter, if it has one.
// A non-nil Result replaces the handler's Result.
func (d *Dispatcher) RunAfter(filter any, inv Invocation) (result.Result, error) {
	return d.runHook(filter, inv, func(t *filterTable) *method { return t.after })
}

func (d *Dispatcher) runHook(filter any, inv Invocation, pick func(*filterTable) *method) (result.Result, error) {
	recv, err := receiver(filter)
	if err != nil {
		return nil, err
	}
	tbl, err := filterMethods(recv.Type())
	if err != nil {
		return nil, err
	}

	m := pick(tbl)
	if m == nil {
		return nil, nil
	}

	in, err := d.filters.Arguments(m.sig, inv)
	if err != nil {
		return nil, err
	}
	return m.invoke(recv, in)
}

func receiver(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil instance", ErrInvalidComponent)
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrInvalidComponent, rv.Type())
	}
	return rv, nil
}

// validateHandler builds and caches the dispatch table of a handler type.
func validateHandler(d Descriptor) error {
	if d.Type != nil && d.Type.Kind() == reflect.Interface {
		return nil
	}
	_, err := handlerMethods(d.Type)
	return err
}

// validateFilter builds and caches the hook table of a filter type.
func validateFilter(d Descriptor) error {
	if d.Type != nil && d.Type.Kind() == reflect.Interface {
		return nil
	}
	_, err := filterMethods(d.Type)
	return err
}
