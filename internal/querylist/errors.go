package querylist

import "errors"

var (
	// ErrKeyNotFound reports a field path segment missing from a
	// mapping-style record.
	ErrKeyNotFound = errors.New("key not found")
	// ErrAttributeNotFound reports a field path segment missing from an
	// attribute-style record.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrNotFound reports that Get matched zero records.
	ErrNotFound = errors.New("no record matched")
	// ErrMultipleMatches reports that Get matched more than one record.
	ErrMultipleMatches = errors.New("multiple records matched")
	// ErrInvalidInvocation reports a term without a query string.
	ErrInvalidInvocation = errors.New("invalid invocation")
	// ErrInvalidQuery reports a malformed field path, such as an empty one.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnsupported reports an operation or getter applied to a value kind
	// it cannot handle.
	ErrUnsupported = errors.New("unsupported value")
)
