package binder

import (
	"fmt"
	"reflect"
	"slices"
)

// Binder resolves declared parameters against a RequestContext, probing
// sources in a fixed priority order. A Binder holds no mutable state and is
// safe for concurrent use.
type Binder struct {
	order []Source
}

// New creates a Binder probing the given sources in order.
//
// Example:
//
//	handlers := binder.New(binder.HandlerOrder...)
//	filters := binder.New(binder.FilterOrder...)
func New(order ...Source) *Binder {
	return &Binder{order: slices.Clone(order)}
}

// Order returns the source priority of the binder.
func (b *Binder) Order() []Source {
	return slices.Clone(b.order)
}

// Bind produces one value per parameter, positionally aligned with params.
// A parameter whose name repeats an earlier one receives a copy of the earlier
// value. Bind fails with *MissingParameterError when a required scalar is not
// found and with *ConstructionError when a context slot cannot hold rc.
func (b *Binder) Bind(params []Param, rc RequestContext) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(params))
	first := make(map[string]int, len(params))

	for i, p := range params {
		if p.Type.Kind != Context {
			k := p.key()
			if j, ok := first[k]; ok {
				args[i] = args[j]
				continue
			}
			first[k] = i
		}

		v, err := b.bindParam(p, rc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// Arguments binds sig and assembles the Go call arguments it describes.
func (b *Binder) Arguments(sig *Signature, rc RequestContext) ([]reflect.Value, error) {
	vals, err := b.Bind(sig.Params, rc)
	if err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(sig.inputs))
	for i, arg := range sig.inputs {
		if arg.ctx {
			in[i] = vals[arg.first]
			continue
		}
		s := reflect.New(arg.typ).Elem()
		for k := arg.first; k < arg.first+arg.n; k++ {
			s.Field(sig.Params[k].index).Set(vals[k])
		}
		if arg.ptr {
			in[i] = s.Addr()
		} else {
			in[i] = s
		}
	}
	return in, nil
}

// Into binds the arguments struct T from rc.
//
// Example:
//
//	type search struct {
//	    Q    string
//	    Page int `default:"1"`
//	}
//	args, err := binder.Into[search](b, rc)
func Into[T any](b *Binder, rc RequestContext) (T, error) {
	var zero T
	sig, err := Describe(reflect.TypeFor[func(T)](), 0)
	if err != nil {
		return zero, err
	}
	in, err := b.Arguments(sig, rc)
	if err != nil {
		return zero, err
	}
	return in[0].Interface().(T), nil
}

func (b *Binder) bindParam(p Param, rc RequestContext) (reflect.Value, error) {
	switch p.Type.Kind {
	case Context:
		return contextValue(p.Type, rc)
	case Array:
		return b.array(p.Type, p.Name, p.clean, rc), nil
	case Object:
		return b.object(p.Type, rc)
	}

	if v, ok := b.scalar(p.Type, p.Name, p.clean, rc); ok {
		return v, nil
	}
	if p.HasDefault {
		return p.defaultValue(), nil
	}
	if p.Type.Optional() {
		return reflect.Zero(p.Type.GoType), nil
	}
	return reflect.Value{}, &MissingParameterError{Name: p.Name, Type: p.Type.String()}
}

// scalar returns the first value convertible to t, probing sources in order.
// A source whose value does not convert is treated as not having one.
func (b *Binder) scalar(t *Type, name string, clean func(string) string, rc RequestContext) (reflect.Value, bool) {
	for _, src := range b.order {
		vals := lookup(rc, src, name)
		if len(vals) == 0 {
			continue
		}
		raw := vals[0]
		if clean != nil {
			raw = clean(raw)
		}
		if v, ok := t.parse(raw); ok {
			return t.wrap(v), true
		}
	}
	return reflect.Value{}, false
}

// array collects "name[]" from the first source that has it. Elements that do
// not convert are dropped. The result is never nil.
func (b *Binder) array(t *Type, name string, clean func(string) string, rc RequestContext) reflect.Value {
	key := name + "[]"
	for _, src := range b.order {
		vals := lookup(rc, src, key)
		if len(vals) == 0 {
			continue
		}
		out := reflect.MakeSlice(t.base, 0, len(vals))
		for _, raw := range vals {
			if clean != nil {
				raw = clean(raw)
			}
			if v, ok := t.Elem.parse(raw); ok {
				out = reflect.Append(out, t.Elem.wrap(v))
			}
		}
		return t.wrap(out)
	}
	return t.wrap(reflect.MakeSlice(t.base, 0, 0))
}

// object constructs a value of t and fills every field that resolves.
func (b *Binder) object(t *Type, rc RequestContext) (reflect.Value, error) {
	obj := reflect.New(t.base).Elem()
	for _, f := range t.Fields {
		dst := obj.Field(f.index)
		switch f.Type.Kind {
		case Scalar:
			if v, ok := b.scalar(f.Type, f.Name, f.clean, rc); ok {
				dst.Set(v)
			}
		case Array:
			dst.Set(b.array(f.Type, f.Name, f.clean, rc))
		case Object:
			v, err := b.object(f.Type, rc)
			if err != nil {
				return reflect.Value{}, err
			}
			dst.Set(v)
		case Context:
			v, err := contextValue(f.Type, rc)
			if err != nil {
				return reflect.Value{}, err
			}
			dst.Set(v)
		}
	}
	if t.ptr {
		return obj.Addr(), nil
	}
	return obj, nil
}

func contextValue(t *Type, rc RequestContext) (reflect.Value, error) {
	v := reflect.ValueOf(rc)
	if rc == nil || !v.Type().AssignableTo(t.GoType) {
		return reflect.Value{}, &ConstructionError{
			Type:   t.String(),
			Reason: fmt.Sprintf("request context %T does not implement it", rc),
		}
	}
	out := reflect.New(t.GoType).Elem()
	out.Set(v)
	return out, nil
}
