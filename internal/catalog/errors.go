package catalog

import "errors"

// Domain errors for the catalog package.
var (
	// ErrTableNotFound is returned when no compiled table exists for an
	// integration/locale pair.
	ErrTableNotFound = errors.New("catalog: table not found")

	// ErrEmptyTable is returned when compiling a table with no entries.
	ErrEmptyTable = errors.New("catalog: table has no entries")

	// ErrInvalidIntegration is returned when an integration name is not a
	// valid identifier.
	ErrInvalidIntegration = errors.New("catalog: invalid integration name")

	// ErrInvalidLocale is returned when a locale string is empty.
	ErrInvalidLocale = errors.New("catalog: invalid locale")
)
