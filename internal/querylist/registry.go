package querylist

import "strings"

// OperationFunc is a binary predicate comparing a resolved field value
// against the value supplied in a query term.
type OperationFunc func(left, right any) (bool, error)

// GetterFunc transforms the current value mid-path, replacing a plain
// field access.
type GetterFunc func(value any) (any, error)

type operation struct {
	name string
	fn   OperationFunc
}

type getter struct {
	name string
	fn   GetterFunc
}

// Registry holds the ordered operation and attribute-getter tables for one
// family of query lists. A Registry stands in for a queryset "subclass":
// Clone copies the tables at definition time, after which registrations on
// the clone never touch the parent.
type Registry struct {
	operations []operation
	getters    []getter
}

// DefaultRegistry returns a registry with the built-in operations
// (lt, lte, gt, gte, contains, in, length) and attribute getters
// (length, bool, max, min, all, any, abs, sum).
func DefaultRegistry() *Registry {
	return &Registry{
		operations: []operation{
			{"lt", func(a, b any) (bool, error) { return compareIs(a, b, func(c int) bool { return c < 0 }) }},
			{"lte", func(a, b any) (bool, error) { return compareIs(a, b, func(c int) bool { return c <= 0 }) }},
			{"gt", func(a, b any) (bool, error) { return compareIs(a, b, func(c int) bool { return c > 0 }) }},
			{"gte", func(a, b any) (bool, error) { return compareIs(a, b, func(c int) bool { return c >= 0 }) }},
			{"contains", func(a, b any) (bool, error) { return containsValue(a, b) }},
			{"in", func(a, b any) (bool, error) { return containsValue(b, a) }},
			{"length", lengthEquals},
		},
		getters: []getter{
			{"length", func(v any) (any, error) { return lengthOf(v) }},
			{"bool", func(v any) (any, error) { return truthy(v), nil }},
			{"max", maxOf},
			{"min", minOf},
			{"all", allOf},
			{"any", anyOf},
			{"abs", absOf},
			{"sum", sumOf},
		},
	}
}

// Clone returns an independent copy of the registry. Registering on the
// clone leaves the receiver untouched.
func (r *Registry) Clone() *Registry {
	return &Registry{
		operations: append([]operation(nil), r.operations...),
		getters:    append([]getter(nil), r.getters...),
	}
}

// RegisterOperation appends a named comparison usable as a trailing query
// segment. A duplicate name shadows the earlier registration: lookups scan
// back to front, so the newest entry wins.
func (r *Registry) RegisterOperation(name string, fn OperationFunc) {
	r.operations = append(r.operations, operation{name: name, fn: fn})
}

// RegisterAttributeGetter appends a named mid-path transform. Duplicate
// names shadow earlier registrations the same way operations do.
func (r *Registry) RegisterAttributeGetter(name string, fn GetterFunc) {
	r.getters = append(r.getters, getter{name: name, fn: fn})
}

func (r *Registry) lookupOperation(name string) (OperationFunc, bool) {
	for i := len(r.operations) - 1; i >= 0; i-- {
		if r.operations[i].name == name {
			return r.operations[i].fn, true
		}
	}
	return nil, false
}

func (r *Registry) lookupGetter(name string) (GetterFunc, bool) {
	for i := len(r.getters) - 1; i >= 0; i-- {
		if r.getters[i].name == name {
			return r.getters[i].fn, true
		}
	}
	return nil, false
}

// ParseTerm splits a query string into its field path and comparison. Only
// the last dunder segment is considered: if it names a registered
// operation, everything before it is the path; otherwise the whole query is
// the path and the comparison defaults to equality, so a query ending in an
// unknown segment still resolves as a nested attribute or getter path.
func (r *Registry) ParseTerm(query string) (string, OperationFunc) {
	if idx := strings.LastIndex(query, separator); idx >= 0 {
		if fn, ok := r.lookupOperation(query[idx+len(separator):]); ok {
			return query[:idx], fn
		}
	}
	return query, equalOperation
}

func equalOperation(a, b any) (bool, error) {
	return equalValues(a, b), nil
}

func compareIs(a, b any, want func(int) bool) (bool, error) {
	c, err := compareValues(a, b)
	if err != nil {
		return false, err
	}
	return want(c), nil
}

func lengthEquals(a, b any) (bool, error) {
	n, err := lengthOf(a)
	if err != nil {
		return false, err
	}
	return equalValues(n, b), nil
}
