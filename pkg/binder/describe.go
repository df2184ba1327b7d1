package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tinyweb/pkg/sanitizer"
)

// Struct tags understood by Describe.
const (
	// TagParam overrides the lookup name of a field; "-" skips the field.
	TagParam = "param"
	// TagDefault sets the default of a top-level scalar parameter.
	TagDefault = "default"
	// TagSanitize names a sanitizer policy applied to raw string values.
	TagSanitize = "sanitize"
)

var requestContextType = reflect.TypeFor[RequestContext]()

type signatureKey struct {
	fn   reflect.Type
	skip int
}

type described struct {
	sig *Signature
	err error
	key signatureKey
}

var (
	signatures    sync.Map // signatureKey -> *described
	describeGroup singleflight.Group
)

// Describe returns the bindable signature of the function type fn, ignoring
// the first skip inputs (1 for method values obtained from reflect.Type.Method).
//
// Each remaining input must be either an interface implementing
// RequestContext, which receives the request itself, or an arguments struct
// (or pointer to one) whose exported fields are the declared parameters.
//
// Results are cached for the lifetime of the process. Description errors are
// configuration defects and are cached as well.
func Describe(fn reflect.Type, skip int) (*Signature, error) {
	if fn == nil || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %v is not a function", ErrInvalidSignature, fn)
	}

	key := signatureKey{fn: fn, skip: skip}
	if v, ok := signatures.Load(key); ok {
		d := v.(*described)
		return d.sig, d.err
	}

	v, _, _ := describeGroup.Do(fn.String()+"#"+strconv.Itoa(skip), func() (any, error) {
		if v, ok := signatures.Load(key); ok {
			return v, nil
		}
		sig, err := describeFunc(fn, skip)
		actual, _ := signatures.LoadOrStore(key, &described{key: key, sig: sig, err: err})
		return actual, nil
	})

	d := v.(*described)
	if d.key != key {
		// Distinct types may share a string form; describe without coalescing.
		sig, err := describeFunc(fn, skip)
		actual, _ := signatures.LoadOrStore(key, &described{key: key, sig: sig, err: err})
		d = actual.(*described)
	}
	return d.sig, d.err
}

// DescribeStruct returns the parameters declared by the fields of an
// arguments struct type.
func DescribeStruct(t reflect.Type) ([]Param, error) {
	sig, err := Describe(reflect.FuncOf([]reflect.Type{t}, nil, false), 0)
	if err != nil {
		return nil, err
	}
	if len(sig.inputs) != 1 || sig.inputs[0].ctx {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSignature, t)
	}
	return sig.Params, nil
}

func describeFunc(fn reflect.Type, skip int) (*Signature, error) {
	if fn.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrInvalidSignature, fn)
	}

	sig := &Signature{}
	for i := skip; i < fn.NumIn(); i++ {
		in := fn.In(i)

		if in.Kind() == reflect.Interface && in.Implements(requestContextType) {
			sig.inputs = append(sig.inputs, input{typ: in, first: len(sig.Params), n: 1, ctx: true})
			sig.Params = append(sig.Params, Param{
				Name:  in.String(),
				Type:  &Type{Kind: Context, GoType: in, base: in},
				index: -1,
			})
			continue
		}

		base, ptr := in, false
		if in.Kind() == reflect.Pointer {
			base, ptr = in.Elem(), true
		}
		if base.Kind() != reflect.Struct || scalarParser(base) != nil {
			return nil, fmt.Errorf("%w: input %d of %s has type %s; expected the request context or an arguments struct",
				ErrInvalidSignature, i, fn, in)
		}

		params, err := describeParams(base)
		if err != nil {
			return nil, err
		}
		sig.inputs = append(sig.inputs, input{typ: base, first: len(sig.Params), n: len(params), ptr: ptr})
		sig.Params = append(sig.Params, params...)
	}

	if err := checkDuplicates(sig.Params); err != nil {
		return nil, err
	}
	return sig, nil
}

// describeParams describes the top-level parameters of an arguments struct.
func describeParams(t reflect.Type) ([]Param, error) {
	visiting := map[reflect.Type]bool{t: true}
	params := make([]Param, 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		name, ok := slotName(sf)
		if !ok {
			continue
		}

		typ, err := describeType(sf.Type, visiting)
		if err != nil {
			return nil, fmt.Errorf("parameter %q of %s: %w", name, t, err)
		}
		clean, err := slotSanitizer(sf, typ)
		if err != nil {
			return nil, fmt.Errorf("parameter %q of %s: %w", name, t, err)
		}

		p := Param{Name: name, Type: typ, index: i, clean: clean}
		if def, ok := sf.Tag.Lookup(TagDefault); ok {
			if typ.Kind != Scalar {
				return nil, fmt.Errorf("%w: parameter %q of %s is a %s", ErrInvalidDefault, name, t, typ.Kind)
			}
			v, ok := typ.parse(def)
			if !ok {
				return nil, fmt.Errorf("%w: %q is not a valid %s for parameter %q", ErrInvalidDefault, def, typ, name)
			}
			p.Default = v
			p.HasDefault = true
		}
		params = append(params, p)
	}
	return params, nil
}

func describeType(t reflect.Type, visiting map[reflect.Type]bool) (*Type, error) {
	base, ptr := t, false
	if t.Kind() == reflect.Pointer {
		base, ptr = t.Elem(), true
		if base.Kind() == reflect.Pointer {
			return nil, &ConstructionError{Type: t.String(), Reason: "pointer to pointer"}
		}
	}

	if parse := scalarParser(base); parse != nil {
		return &Type{Kind: Scalar, GoType: t, base: base, ptr: ptr, parse: parse}, nil
	}

	switch base.Kind() {
	case reflect.Interface:
		if !ptr && base.Implements(requestContextType) {
			return &Type{Kind: Context, GoType: t, base: base}, nil
		}

	case reflect.Slice:
		elem, err := describeType(base.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		if elem.Kind != Scalar {
			return nil, &ConstructionError{Type: t.String(), Reason: "array elements must be scalar"}
		}
		return &Type{Kind: Array, GoType: t, base: base, ptr: ptr, Elem: elem}, nil

	case reflect.Struct:
		if visiting[base] {
			return nil, &ConstructionError{Type: t.String(), Reason: "recursive type"}
		}
		visiting[base] = true
		defer delete(visiting, base)

		fields := make([]Field, 0, base.NumField())
		for i := range base.NumField() {
			sf := base.Field(i)
			name, ok := slotName(sf)
			if !ok {
				continue
			}
			if _, ok := sf.Tag.Lookup(TagDefault); ok {
				return nil, fmt.Errorf("%w: property %s.%s cannot have a default", ErrInvalidDefault, base, sf.Name)
			}
			ft, err := describeType(sf.Type, visiting)
			if err != nil {
				return nil, err
			}
			clean, err := slotSanitizer(sf, ft)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: name, Type: ft, index: i, clean: clean})
		}
		return &Type{Kind: Object, GoType: t, base: base, ptr: ptr, Fields: fields}, nil
	}

	return nil, &ConstructionError{Type: t.String(), Reason: "unsupported kind " + base.Kind().String()}
}

// slotName returns the lookup name of a struct field and whether it is bound.
func slotName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	tag := sf.Tag.Get(TagParam)
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return sf.Name, true
}

func slotSanitizer(sf reflect.StructField, t *Type) (func(string) string, error) {
	policy := sf.Tag.Get(TagSanitize)
	if policy == "" {
		return nil, nil
	}

	scalar := t
	if t.Kind == Array {
		scalar = t.Elem
	}
	if scalar.Kind != Scalar || scalar.base.Kind() != reflect.String {
		return nil, fmt.Errorf("%w: sanitize tag on non-string field %s", ErrInvalidSignature, sf.Name)
	}

	fn, ok := sanitizer.Lookup(policy)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sanitize policy %q on field %s", ErrInvalidSignature, policy, sf.Name)
	}
	return fn, nil
}

// checkDuplicates rejects parameters that share a name but not a type.
// Same-typed duplicates are allowed and bound once.
func checkDuplicates(params []Param) error {
	seen := make(map[string]*Type, len(params))
	for _, p := range params {
		if p.Type.Kind == Context {
			continue
		}
		k := p.key()
		if prev, ok := seen[k]; ok {
			if prev.GoType != p.Type.GoType {
				return fmt.Errorf("%w: %q declared as %s and %s", ErrDuplicateParameter, p.Name, prev, p.Type)
			}
			continue
		}
		seen[k] = p.Type
	}
	return nil
}
