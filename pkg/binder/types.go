package binder

import "reflect"

// Kind classifies how a slot is resolved.
type Kind uint8

const (
	// Scalar slots are converted from a single raw string.
	Scalar Kind = iota + 1
	// Object slots are constructed and filled field by field.
	Object
	// Array slots collect every value stored under "name[]".
	Array
	// Context slots receive the RequestContext itself.
	Context
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Object:
		return "object"
	case Array:
		return "array"
	case Context:
		return "context"
	}
	return "unknown"
}

// Type describes a declared slot type.
type Type struct {
	// GoType is the declared Go type, possibly a pointer.
	GoType reflect.Type

	// Elem is the element type of an Array.
	Elem *Type

	// Fields are the settable properties of an Object, in declaration order.
	Fields []Field

	parse func(raw string) (reflect.Value, bool)
	base  reflect.Type // GoType with the pointer removed
	Kind  Kind
	ptr   bool
}

func (t *Type) String() string {
	return t.GoType.String()
}

// Optional reports whether an unresolved slot of this type is acceptable
// without a default. Pointer scalars stay nil; objects and arrays are always
// constructed.
func (t *Type) Optional() bool {
	return t.Kind != Scalar || t.ptr
}

// wrap converts a value of the base type to the declared type.
func (t *Type) wrap(v reflect.Value) reflect.Value {
	if !t.ptr {
		return v
	}
	p := reflect.New(t.base)
	p.Elem().Set(v)
	return p
}

// Field describes a property of an Object type.
// Properties have no defaults: unresolved fields keep their zero value.
type Field struct {
	Name  string
	Type  *Type
	clean func(string) string
	index int
}

// Param describes one declared parameter.
type Param struct {
	// Default is valid only when HasDefault is set. It holds a value of the
	// base type; pointer parameters receive a fresh copy on every bind.
	Default    reflect.Value
	Type       *Type
	Name       string
	clean      func(string) string
	index      int
	HasDefault bool
}

// defaultValue returns the default converted to the declared type.
func (p Param) defaultValue() reflect.Value {
	return p.Type.wrap(p.Default)
}

func (p Param) key() string {
	return fold(p.Name)
}

// Signature is the bindable description of a function's inputs.
// Params lists every declared parameter; inputs records how the bound values
// are assembled into Go call arguments.
type Signature struct {
	Params []Param
	inputs []input
}

// input is one Go argument of the described function.
type input struct {
	typ   reflect.Type
	first int // index of the first Param belonging to this input
	n     int // number of Params
	ctx   bool
	ptr   bool
}

// NumIn returns the number of Go arguments produced by Binder.Arguments.
func (s *Signature) NumIn() int {
	return len(s.inputs)
}
