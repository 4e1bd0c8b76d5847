package querylist

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Helpers below implement the dynamic-value semantics the built-in
// operations and getters share: numeric kinds compare by magnitude
// regardless of concrete type, strings compare lexicographically, and
// sequences mean strings (runes), slices, arrays and map keys.

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func isInteger(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func equalValues(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) (int, error) {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	return 0, fmt.Errorf("%w: cannot order %T against %T", ErrUnsupported, a, b)
}

func lengthOf(v any) (int, error) {
	if s, ok := v.(string); ok {
		return len([]rune(s)), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	default:
		return 0, fmt.Errorf("%w: %T has no length", ErrUnsupported, v)
	}
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if f, ok := asFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// elementsOf views a value as a sequence: runes of a string (each a
// one-rune string), elements of a slice or array, keys of a map.
func elementsOf(v any) ([]any, error) {
	if s, ok := v.(string); ok {
		out := make([]any, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			out = append(out, key.Interface())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a sequence", ErrUnsupported, v)
	}
}

func maxOf(v any) (any, error) {
	return extremeOf(v, func(c int) bool { return c > 0 })
}

func minOf(v any) (any, error) {
	return extremeOf(v, func(c int) bool { return c < 0 })
}

func extremeOf(v any, better func(int) bool) (any, error) {
	elems, err := elementsOf(v)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrUnsupported)
	}
	best := elems[0]
	for _, elem := range elems[1:] {
		c, err := compareValues(elem, best)
		if err != nil {
			return nil, err
		}
		if better(c) {
			best = elem
		}
	}
	return best, nil
}

func allOf(v any) (any, error) {
	elems, err := elementsOf(v)
	if err != nil {
		return nil, err
	}
	for _, elem := range elems {
		if !truthy(elem) {
			return false, nil
		}
	}
	return true, nil
}

func anyOf(v any) (any, error) {
	elems, err := elementsOf(v)
	if err != nil {
		return nil, err
	}
	for _, elem := range elems {
		if truthy(elem) {
			return true, nil
		}
	}
	return false, nil
}

func absOf(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			n = -n
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return math.Abs(rv.Float()), nil
	default:
		return nil, fmt.Errorf("%w: no absolute value for %T", ErrUnsupported, v)
	}
}

// sumOf adds a numeric sequence. An all-integer sequence sums to an int64,
// anything else to a float64; an empty sequence sums to int64(0).
func sumOf(v any) (any, error) {
	elems, err := elementsOf(v)
	if err != nil {
		return nil, err
	}
	var total float64
	allInt := true
	for _, elem := range elems {
		f, ok := asFloat(elem)
		if !ok {
			return nil, fmt.Errorf("%w: cannot sum %T", ErrUnsupported, elem)
		}
		if !isInteger(elem) {
			allInt = false
		}
		total += f
	}
	if allInt {
		return int64(total), nil
	}
	return total, nil
}

// containsValue implements the native membership test of the container:
// substring for strings, element membership for slices and arrays, key
// membership for maps.
func containsValue(container, item any) (bool, error) {
	if s, ok := container.(string); ok {
		sub, ok := item.(string)
		if !ok {
			return false, fmt.Errorf("%w: substring test needs a string, got %T", ErrUnsupported, item)
		}
		return strings.Contains(s, sub), nil
	}
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if equalValues(key.Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: %T is not a container", ErrUnsupported, container)
	}
}
