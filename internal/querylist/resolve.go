package querylist

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// separator delimits field path segments, mirroring the ORM dunder syntax.
const separator = "__"

// Mapping is the key-lookup field-access backend. Records implementing it
// are resolved by key, and missing keys surface as ErrKeyNotFound.
type Mapping interface {
	Value(key string) (any, bool)
}

// Attributed is the named-attribute field-access backend. Missing
// attributes surface as ErrAttributeNotFound.
type Attributed interface {
	Attribute(name string) (any, bool)
}

// Resolve walks a field path against a record and returns the designated
// value. Each segment is tried against the attribute-getter table first;
// otherwise it is a field access on the current value. Getter and field
// segments interleave freely, so "friend__name__length" reaches a nested
// record before transforming it.
func (r *Registry) Resolve(record any, path string) (any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty field path", ErrInvalidQuery)
	}
	current := record
	for _, segment := range strings.Split(path, separator) {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidQuery, path)
		}
		if fn, ok := r.lookupGetter(segment); ok {
			value, err := fn(current)
			if err != nil {
				return nil, fmt.Errorf("getter %q: %w", segment, err)
			}
			current = value
			continue
		}
		value, err := fieldValue(current, segment)
		if err != nil {
			return nil, err
		}
		current = value
	}
	return current, nil
}

// fieldValue reads one segment off a record, dispatching on the
// field-access backend the value exposes: explicit Mapping/Attributed
// implementations first, then native string-keyed maps, then exported
// struct fields.
func fieldValue(record any, name string) (any, error) {
	switch rec := record.(type) {
	case Mapping:
		value, ok := rec.Value(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
		}
		return value, nil
	case Attributed:
		value, ok := rec.Attribute(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
		}
		return value, nil
	}

	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: %q on nil value", ErrAttributeNotFound, name)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %q on map with %s keys", ErrKeyNotFound, name, rv.Type().Key())
		}
		value := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
		}
		return value.Interface(), nil
	case reflect.Struct:
		if field := rv.FieldByName(name); field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
		// Query strings follow the lowercase ORM convention while exported
		// Go fields start upper; retry with the first rune exported.
		if exported := exportName(name); exported != name {
			if field := rv.FieldByName(exported); field.IsValid() && field.CanInterface() {
				return field.Interface(), nil
			}
		}
		return nil, fmt.Errorf("%w: %s has no attribute %q", ErrAttributeNotFound, rv.Type(), name)
	case reflect.Invalid:
		return nil, fmt.Errorf("%w: %q on nil value", ErrAttributeNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %s has no attribute %q", ErrAttributeNotFound, rv.Type(), name)
	}
}

func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
