package querylist_test

import (
	"errors"
	"reflect"
	"testing"

	"redbreast/internal/querylist"
)

func TestParseTerm(t *testing.T) {
	// The operation funcs cannot be compared directly, so each case probes
	// the returned comparison with a pair of values.
	cases := []struct {
		query    string
		wantPath string
		left     any
		right    any
		want     bool
	}{
		{"name", "name", "a", "a", true},
		{"distance__lt", "distance", 1, 2, true},
		{"distance__lte", "distance", 2, 2, true},
		{"distance__gt", "distance", 3, 2, true},
		{"distance__gte", "distance", 1, 2, false},
		{"distance__meters", "distance__meters", 5, 6, false},
		{"distance__meters__gte", "distance__meters", 7, 6, true},
	}

	reg := querylist.DefaultRegistry()
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			path, op := reg.ParseTerm(tc.query)
			if path != tc.wantPath {
				t.Fatalf("unexpected path: got %q want %q", path, tc.wantPath)
			}
			got, err := op(tc.left, tc.right)
			if err != nil {
				t.Fatalf("operation returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("operation(%v, %v): got %v want %v", tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestResolveAttributeGetters(t *testing.T) {
	record := map[string]any{
		"fibonacci": []int{1, 2, 3, 5, 8},
		"naturals":  []int{0, 1, 2, 3, 4},
		"negative":  -69,
		"positive":  420,
		"zero":      0,
		"empty":     []int{},
	}

	cases := []struct {
		path string
		want any
	}{
		{"empty__length", 0},
		{"fibonacci__length", 5},
		{"empty__bool", false},
		{"zero__bool", false},
		{"positive__bool", true},
		{"naturals__bool", true},
		{"naturals__max", 4},
		{"naturals__min", 0},
		{"empty__all", true},
		{"naturals__all", false},
		{"fibonacci__all", true},
		{"empty__any", false},
		{"naturals__any", true},
		{"negative__abs", int64(69)},
		{"positive__abs", int64(420)},
		{"zero__abs", int64(0)},
		{"fibonacci__sum", int64(19)},
		{"empty__sum", int64(0)},
	}

	reg := querylist.DefaultRegistry()
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := reg.Resolve(record, tc.path)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestResolveNestedPaths(t *testing.T) {
	cases := []struct {
		path string
		want any
	}{
		{"owner", "owner"},
		{"friend__name", "Friend"},
		{"friend__owner", "Someone else"},
		{"friend__friend__name", "FOAF"},
		{"friend__friend__name__length", 4},
		{"friend__friend__name__bool", true},
		{"friend__friend__name__max", "O"},
		{"friend__friend__name__min", "A"},
	}

	doggie := dog{Name: "doggie", Owner: "owner", Number: 69, Friend: &dog{
		Name: "Friend", Owner: "Someone else", Number: 420, Friend: &dog{
			Name: "FOAF", Owner: "Billy", Number: 666,
		},
	}}
	asMap := map[string]any{
		"name": "doggie", "owner": "owner", "number": 69,
		"friend": map[string]any{
			"name": "Friend", "owner": "Someone else", "number": 420,
			"friend": map[string]any{"name": "FOAF", "owner": "Billy", "number": 666},
		},
	}

	reg := querylist.DefaultRegistry()
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := reg.Resolve(doggie, tc.path)
			if err != nil {
				t.Fatalf("Resolve on struct returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("struct record: got %#v want %#v", got, tc.want)
			}

			got, err = reg.Resolve(asMap, tc.path)
			if err != nil {
				t.Fatalf("Resolve on map returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("map record: got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestResolveMissingSegment(t *testing.T) {
	reg := querylist.DefaultRegistry()

	doggie := dog{Name: "doggie", Owner: "owner", Friend: &dog{Name: "Friend"}}
	if _, err := reg.Resolve(doggie, "friend__foo"); !errors.Is(err, querylist.ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound, got %v", err)
	}

	asMap := map[string]any{"friend": map[string]any{"name": "Friend"}}
	if _, err := reg.Resolve(asMap, "friend__foo"); !errors.Is(err, querylist.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestResolveEmptyPathIsInvalid(t *testing.T) {
	reg := querylist.DefaultRegistry()
	if _, err := reg.Resolve(map[string]any{"a": 1}, ""); !errors.Is(err, querylist.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if _, err := reg.Resolve(map[string]any{"a": 1}, "a____b"); !errors.Is(err, querylist.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for empty segment, got %v", err)
	}
}

type attributedDog struct {
	fields map[string]any
}

func (d attributedDog) Attribute(name string) (any, bool) {
	v, ok := d.fields[name]
	return v, ok
}

type mappingDog struct {
	fields map[string]any
}

func (d mappingDog) Value(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

func TestResolveDispatchesOnCapabilityInterfaces(t *testing.T) {
	reg := querylist.DefaultRegistry()

	attributed := attributedDog{fields: map[string]any{"name": "Fido"}}
	got, err := reg.Resolve(attributed, "name")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != any("Fido") {
		t.Fatalf("unexpected value: %v", got)
	}
	if _, err := reg.Resolve(attributed, "missing"); !errors.Is(err, querylist.ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound from Attributed record, got %v", err)
	}

	mapped := mappingDog{fields: map[string]any{"name": "Biko"}}
	got, err = reg.Resolve(mapped, "name")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != any("Biko") {
		t.Fatalf("unexpected value: %v", got)
	}
	if _, err := reg.Resolve(mapped, "missing"); !errors.Is(err, querylist.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound from Mapping record, got %v", err)
	}
}

func TestMixedRecordRepresentationsInOneList(t *testing.T) {
	qs := querylist.New([]any{
		dog{Name: "Fido", Owner: "Sam", Number: 15.72},
		map[string]any{"name": "Muttley", "owner": "Robin", "number": 31.44},
		mappingDog{fields: map[string]any{"name": "Biko", "owner": "Sam", "number": 47.17}},
	})

	got, err := qs.Filter(querylist.Terms{"owner": "Sam"})
	if err != nil {
		t.Fatalf("Filter returned error: %v", err)
	}
	if got.Count() != 2 {
		t.Fatalf("unexpected count: %d", got.Count())
	}
}
