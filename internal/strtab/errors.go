package strtab

import "errors"

// Domain errors for the strtab package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, strtab.ErrKeyNotFound) {
//	    // handle missing key case
//	}
var (
	// ErrInvalidDocument is returned when a document is not a tree of
	// string-keyed objects with string leaves.
	ErrInvalidDocument = errors.New("strtab: invalid document")

	// ErrDuplicateKey is returned when an object contains the same key twice.
	ErrDuplicateKey = errors.New("strtab: duplicate key")

	// ErrInvalidKey is returned when a key is not a valid snake_case identifier.
	ErrInvalidKey = errors.New("strtab: invalid key")

	// ErrKeyNotFound is returned when a key path does not exist in a table.
	ErrKeyNotFound = errors.New("strtab: key not found")

	// ErrNotALeaf is returned when a key path addresses an intermediate node
	// rather than a string value.
	ErrNotALeaf = errors.New("strtab: key path is not a leaf")

	// ErrInvalidReference is returned when a reference token is malformed.
	ErrInvalidReference = errors.New("strtab: invalid reference token")

	// ErrUnresolvableReference is returned when a reference token points
	// outside the shared common table, or to another reference.
	ErrUnresolvableReference = errors.New("strtab: unresolvable reference")

	// ErrMissingPlaceholder is returned when a value contains a placeholder
	// with no substitution supplied by the caller.
	ErrMissingPlaceholder = errors.New("strtab: missing placeholder substitution")

	// ErrInvalidNamespace is returned when a table contains an unknown
	// top-level namespace.
	ErrInvalidNamespace = errors.New("strtab: invalid namespace")

	// ErrInvalidIssue is returned when an issues entry lacks a title or
	// description.
	ErrInvalidIssue = errors.New("strtab: invalid issue entry")

	// ErrInvalidLocale is returned when a locale string cannot be parsed
	// as a BCP 47 language tag.
	ErrInvalidLocale = errors.New("strtab: invalid locale")

	// ErrTableExists is returned when registering a table for an
	// integration/locale pair that is already registered.
	ErrTableExists = errors.New("strtab: table already registered")

	// ErrTableNotFound is returned when no table is registered for an
	// integration.
	ErrTableNotFound = errors.New("strtab: table not found")
)
