// Package querylist implements an in-memory, chainable query engine over
// heterogeneous collections of records, modeled after ORM-style queryset
// APIs but with no persistence behind it.
//
// Records are plain values: string-keyed maps, structs (exported fields),
// or types implementing the Mapping or Attributed interfaces. Queries
// address values through dunder-delimited field paths such as
// "friend__name__length", where each segment is either a field access or a
// registered attribute getter, and an optional trailing segment selects a
// comparison operation ("number__gt").
//
// Filter, Exclude and OrderBy return new lists that keep the receiver's
// registry, so lists built from a derived registry retain their custom
// operations and getters through any chain.
package querylist
