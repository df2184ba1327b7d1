package binder

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// ParseBool converts a raw request value to a boolean.
// Only "true" and "false" are accepted, ignoring case and surrounding space,
// plus "on" as true (the value browsers submit for a checked checkbox).
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseDecimal parses a finite decimal floating point literal.
// NaN, infinities and hexadecimal floats are rejected.
func parseDecimal(raw string, bits int) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// scalarParser returns a converter from raw strings to values of t,
// or nil if t is not a scalar type.
// Conversion failures report false and are never errors.
func scalarParser(t reflect.Type) func(string) (reflect.Value, bool) {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return func(raw string) (reflect.Value, bool) {
			p := reflect.New(t)
			u := p.Interface().(encoding.TextUnmarshaler)
			if err := u.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
				return reflect.Value{}, false
			}
			return p.Elem(), true
		}
	}

	if t == durationType {
		return func(raw string) (reflect.Value, bool) {
			d, err := time.ParseDuration(strings.TrimSpace(raw))
			if err != nil {
				return reflect.Value{}, false
			}
			return reflect.ValueOf(d), true
		}
	}

	switch t.Kind() {
	case reflect.String:
		return func(raw string) (reflect.Value, bool) {
			v := reflect.New(t).Elem()
			v.SetString(raw)
			return v, true
		}

	case reflect.Bool:
		return func(raw string) (reflect.Value, bool) {
			b, ok := ParseBool(raw)
			if !ok {
				return reflect.Value{}, false
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v, true
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		return func(raw string) (reflect.Value, bool) {
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bits)
			if err != nil {
				return reflect.Value{}, false
			}
			v := reflect.New(t).Elem()
			v.SetInt(n)
			return v, true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := t.Bits()
		return func(raw string) (reflect.Value, bool) {
			n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bits)
			if err != nil {
				return reflect.Value{}, false
			}
			v := reflect.New(t).Elem()
			v.SetUint(n)
			return v, true
		}

	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		return func(raw string) (reflect.Value, bool) {
			f, ok := parseDecimal(raw, bits)
			if !ok {
				return reflect.Value{}, false
			}
			v := reflect.New(t).Elem()
			v.SetFloat(f)
			return v, true
		}
	}

	return nil
}
