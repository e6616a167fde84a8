package strtab

import (
	"fmt"
	"strings"
)

// Reference token delimiters.
//
// A reference token delegates a value to the shared common table:
//
//	[%key:common::config_flow::error::cannot_connect%]
//
// The path separator inside a token is "::"; the token above resolves to
// the common-table key path config_flow.error.cannot_connect.
const (
	referencePrefix    = "[%key:"
	referenceSuffix    = "%]"
	referenceSeparator = "::"

	// commonRoot is the required first segment of every reference path.
	// Only the shared common table can be referenced.
	commonRoot = "common"
)

// IsReference reports whether a raw value is a reference token.
func IsReference(value string) bool {
	return strings.HasPrefix(value, referencePrefix) && strings.HasSuffix(value, referenceSuffix)
}

// ParseReference parses a [%key:a::b::c%] token into its key path.
//
// Returns ErrInvalidReference if the value is not a reference token, has an
// empty path, or contains an empty or malformed segment.
func ParseReference(value string) (KeyPath, error) {
	if !IsReference(value) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, value)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(value, referencePrefix), referenceSuffix)
	if inner == "" {
		return nil, fmt.Errorf("%w: empty path in %q", ErrInvalidReference, value)
	}
	segments := strings.Split(inner, referenceSeparator)
	for _, seg := range segments {
		if err := validateKey(seg); err != nil {
			return nil, fmt.Errorf("%w: segment %q in %q", ErrInvalidReference, seg, value)
		}
	}
	return KeyPath(segments), nil
}

// FormatReference renders a key path as a reference token.
func FormatReference(path KeyPath) string {
	return referencePrefix + strings.Join(path, referenceSeparator) + referenceSuffix
}

// commonPath converts a parsed reference path into the key path used to look
// it up in the common table (strips the leading "common" segment).
//
// Returns ErrUnresolvableReference if the path does not start with "common"
// or names nothing beneath it.
func commonPath(ref KeyPath) (KeyPath, error) {
	if len(ref) < 2 || ref[0] != commonRoot {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvableReference, ref.String())
	}
	return ref[1:], nil
}
