// Package history persists completed encode runs in a local SQLite
// database and exposes them as a querylist for filtering and ordering.
// Writes are serialized across processes with a lock file next to the
// database.
package history
