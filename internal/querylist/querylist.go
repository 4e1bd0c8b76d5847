package querylist

import (
	"fmt"
	"sort"
	"strings"
)

// Terms maps field query strings to expected values. All terms in one call
// must match for a record to match (logical AND); OR-like behavior is
// composed from successive Exclude calls.
type Terms map[string]any

// QueryList is an ordered, immutable collection of records. Every
// transformation returns a new list sharing the receiver's registry.
type QueryList struct {
	items []any
	reg   *Registry
}

// Option configures a new QueryList.
type Option func(*QueryList)

// WithRegistry attaches a registry other than the default, typically a
// clone extended with custom operations or getters.
func WithRegistry(reg *Registry) Option {
	return func(q *QueryList) {
		if reg != nil {
			q.reg = reg
		}
	}
}

// New wraps a sequence of records. The slice is copied, so later mutation
// of the argument does not affect the list.
func New(items []any, opts ...Option) *QueryList {
	q := &QueryList{
		items: append([]any(nil), items...),
		reg:   DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Registry exposes the registry this list evaluates against.
func (q *QueryList) Registry() *Registry {
	return q.reg
}

// All detaches the records as a plain slice. The returned slice is a copy:
// mutating it leaves the list untouched.
func (q *QueryList) All() []any {
	out := make([]any, len(q.items))
	copy(out, q.items)
	return out
}

// Count returns the number of records.
func (q *QueryList) Count() int {
	return len(q.items)
}

// Exists reports whether the list holds any records.
func (q *QueryList) Exists() bool {
	return len(q.items) > 0
}

// First returns the first record, or false on an empty list.
func (q *QueryList) First() (any, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

// Last returns the last record, or false on an empty list.
func (q *QueryList) Last() (any, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[len(q.items)-1], true
}

// Matches reports whether a single record satisfies every term.
func (q *QueryList) Matches(record any, terms Terms) (bool, error) {
	for query, want := range terms {
		if query == "" {
			return false, fmt.Errorf("%w: term without a query string", ErrInvalidInvocation)
		}
		path, op := q.reg.ParseTerm(query)
		got, err := q.reg.Resolve(record, path)
		if err != nil {
			return false, fmt.Errorf("term %q: %w", query, err)
		}
		ok, err := op(got, want)
		if err != nil {
			return false, fmt.Errorf("term %q: %w", query, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Filter returns the records matching every term, preserving order.
func (q *QueryList) Filter(terms Terms) (*QueryList, error) {
	return q.where(terms, true)
}

// Exclude returns the records NOT matching every term: the exact
// complement of Filter over the same terms, not term-by-term negation.
func (q *QueryList) Exclude(terms Terms) (*QueryList, error) {
	return q.where(terms, false)
}

func (q *QueryList) where(terms Terms, keep bool) (*QueryList, error) {
	matched := make([]any, 0, len(q.items))
	for _, item := range q.items {
		ok, err := q.Matches(item, terms)
		if err != nil {
			return nil, err
		}
		if ok == keep {
			matched = append(matched, item)
		}
	}
	return q.derive(matched), nil
}

// Get returns the single record matching the terms. Zero matches yield
// ErrNotFound, more than one ErrMultipleMatches.
func (q *QueryList) Get(terms Terms) (any, error) {
	matches, err := q.Filter(terms)
	if err != nil {
		return nil, err
	}
	switch matches.Count() {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches.items[0], nil
	default:
		return nil, fmt.Errorf("%w: %d records", ErrMultipleMatches, matches.Count())
	}
}

// OrderBy sorts by one or more field specs, each a field path optionally
// prefixed with "-" for descending order on that key alone. The sort is
// stable: records equal on all keys keep their original relative order.
// Getter segments are honored in sort keys exactly as in filter terms.
func (q *QueryList) OrderBy(fields ...string) (*QueryList, error) {
	type sortKey struct {
		value      any
		descending bool
	}

	keys := make([][]sortKey, len(q.items))
	for i, item := range q.items {
		keys[i] = make([]sortKey, 0, len(fields))
		for _, spec := range fields {
			descending := strings.HasPrefix(spec, "-")
			path := strings.TrimPrefix(spec, "-")
			value, err := q.reg.Resolve(item, path)
			if err != nil {
				return nil, fmt.Errorf("order by %q: %w", spec, err)
			}
			keys[i] = append(keys[i], sortKey{value: value, descending: descending})
		}
	}

	order := make([]int, len(q.items))
	for i := range order {
		order[i] = i
	}

	var sortErr error
	sort.SliceStable(order, func(x, y int) bool {
		a, b := keys[order[x]], keys[order[y]]
		for k := range a {
			c, err := compareValues(a[k].value, b[k].value)
			if err != nil {
				if sortErr == nil {
					sortErr = err
				}
				return false
			}
			if c == 0 {
				continue
			}
			if a[k].descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}

	sorted := make([]any, len(q.items))
	for i, idx := range order {
		sorted[i] = q.items[idx]
	}
	return q.derive(sorted), nil
}

func (q *QueryList) derive(items []any) *QueryList {
	return &QueryList{items: items, reg: q.reg}
}
