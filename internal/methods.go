package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrymomot/tinyweb/pkg/binder"
	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// Verbs a handler method name may match.
var standardVerbs = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// Filter hook names.
const (
	hookBefore = "Before"
	hookAfter  = "After"
)

var (
	resultType = reflect.TypeFor[result.Result]()
	errorType  = reflect.TypeFor[error]()
)

// method is a described handler or filter method.
type method struct {
	fn        reflect.Value // func with the receiver as first input
	sig       *binder.Signature
	name      string
	resultOut int // output index of the Result, -1 if none
	errOut    int // output index of the error, -1 if none
}

// handlerTable maps upper-cased verbs to handler methods.
type handlerTable struct {
	verbs map[string]*method
}

// filterTable holds the optional hooks of a filter type.
type filterTable struct {
	before *method
	after  *method
}

type tableEntry[T any] struct {
	table *T
	err   error
}

// Dispatch tables are built once per type and never invalidated.
var (
	handlerTables sync.Map // reflect.Type -> *tableEntry[handlerTable]
	filterTables  sync.Map // reflect.Type -> *tableEntry[filterTable]
)

// handlerMethods returns the verb table of handler type t.
func handlerMethods(t reflect.Type) (*handlerTable, error) {
	return loadTable(&handlerTables, t, buildHandlerTable)
}

// filterMethods returns the hooks of filter type t.
func filterMethods(t reflect.Type) (*filterTable, error) {
	return loadTable(&filterTables, t, buildFilterTable)
}

func loadTable[T any](cache *sync.Map, t reflect.Type, build func(reflect.Type) (*T, error)) (*T, error) {
	if v, ok := cache.Load(t); ok {
		e := v.(*tableEntry[T])
		return e.table, e.err
	}
	tbl, err := build(t)
	v, _ := cache.LoadOrStore(t, &tableEntry[T]{table: tbl, err: err})
	e := v.(*tableEntry[T])
	return e.table, e.err
}

func buildHandlerTable(t reflect.Type) (*handlerTable, error) {
	if err := checkComponentType(t); err != nil {
		return nil, err
	}

	tbl := &handlerTable{verbs: make(map[string]*method)}
	for _, verb := range standardVerbs {
		m, err := findMethod(t, verb)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		if err := m.checkOutputs(false); err != nil {
			return nil, err
		}
		tbl.verbs[verb] = m
	}
	return tbl, nil
}

func buildFilterTable(t reflect.Type) (*filterTable, error) {
	if err := checkComponentType(t); err != nil {
		return nil, err
	}

	before, err := findMethod(t, hookBefore)
	if err != nil {
		return nil, err
	}
	after, err := findMethod(t, hookAfter)
	if err != nil {
		return nil, err
	}
	for _, m := range []*method{before, after} {
		if m == nil {
			continue
		}
		if err := m.checkOutputs(true); err != nil {
			return nil, err
		}
	}
	return &filterTable{before: before, after: after}, nil
}

func checkComponentType(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidComponent)
	}
	if t.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s is an interface type", ErrInvalidComponent, t)
	}
	return nil
}

// findMethod returns the exported method of t whose name equals name
// case-insensitively, nil if there is none.
func findMethod(t reflect.Type, name string) (*method, error) {
	var matches []reflect.Method
	for i := range t.NumMethod() {
		if m := t.Method(i); strings.EqualFold(m.Name, name) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, &AmbiguousMethodError{Type: t, Name: name, Methods: names}
	}

	m := matches[0]
	sig, err := binder.Describe(m.Type, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidMethod, t, m.Name, err)
	}
	return &method{fn: m.Func, sig: sig, name: m.Name, resultOut: -1, errOut: -1}, nil
}

// checkOutputs validates the return shape of m.
// Handlers return a Result, optionally followed by an error. Filters may
// also return nothing or only an error.
func (m *method) checkOutputs(filter bool) error {
	ft := m.fn.Type()
	outs := make([]reflect.Type, ft.NumOut())
	for i := range outs {
		outs[i] = ft.Out(i)
	}

	isResult := func(t reflect.Type) bool { return t.Implements(resultType) }
	switch {
	case len(outs) == 1 && isResult(outs[0]):
		m.resultOut = 0
	case len(outs) == 2 && isResult(outs[0]) && outs[1] == errorType:
		m.resultOut, m.errOut = 0, 1
	case filter && len(outs) == 0:
	case filter && len(outs) == 1 && outs[0] == errorType:
		m.errOut = 0
	default:
		return fmt.Errorf("%w: %s has unsupported return values %v", ErrInvalidMethod, m.name, outs)
	}
	return nil
}

// invoke calls m on recv with the bound inputs.
func (m *method) invoke(recv reflect.Value, in []reflect.Value) (result.Result, error) {
	args := make([]reflect.Value, 0, len(in)+1)
	args = append(args, recv)
	args = append(args, in...)
	out := m.fn.Call(args)

	var err error
	if m.errOut >= 0 {
		if e := out[m.errOut]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	if m.resultOut < 0 {
		return nil, err
	}

	v := out[m.resultOut]
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, err
		}
	}
	return v.Interface().(result.Result), err
}
