package strtab

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation constants.
const (
	maxKeyLength = 100
	keyPattern   = `^[a-z][a-z0-9_]*$`
)

var keyRegex = regexp.MustCompile(keyPattern)

// Top-level namespaces an integration string table may contain.
var validNamespaces = map[string]struct{}{
	"config": {}, // setup-wizard strings (step/error/abort)
	"entity": {}, // per-platform entity state and attribute display names
	"issues": {}, // user-facing diagnostic and deprecation notices
}

// validateKey checks that a single key segment is a snake_case identifier.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key exceeds %d characters", ErrInvalidKey, maxKeyLength)
	}
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Validate performs structural validation of an integration string table.
//
// Checks:
//   - Top-level namespaces are limited to config, entity, and issues
//   - Every reference token is well-formed and points into the common table
//   - Every issues entry has both a title and a description
//
// Key uniqueness and string-leaf shape are already enforced by Parse; this
// validates the semantic structure on top.
//
// Returns the first validation failure found, or nil if valid.
func Validate(t *Table) error {
	if t == nil || t.root == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidDocument)
	}

	for ns := range t.root.children {
		if _, ok := validNamespaces[ns]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
		}
	}

	for _, entry := range t.Entries() {
		if entry.Kind != KindReference {
			continue
		}
		ref, err := ParseReference(entry.Value)
		if err != nil {
			return fmt.Errorf("key %q: %w", entry.Key, err)
		}
		if _, err := commonPath(ref); err != nil {
			return fmt.Errorf("key %q: %w", entry.Key, err)
		}
	}

	return validateIssues(t)
}

// validateIssues checks that every entry under the issues namespace carries
// both a title and a description.
func validateIssues(t *Table) error {
	issues, ok := t.root.children["issues"]
	if !ok || issues.leaf {
		if ok && issues.leaf {
			return fmt.Errorf("%w: issues namespace must be an object", ErrInvalidIssue)
		}
		return nil
	}

	for issueID, issue := range issues.children {
		if issue.leaf {
			return fmt.Errorf("%w: %q must be an object", ErrInvalidIssue, issueID)
		}
		for _, field := range []string{"title", "description"} {
			child, ok := issue.children[field]
			if !ok || !child.leaf {
				return fmt.Errorf("%w: %q is missing %s", ErrInvalidIssue, issueID, field)
			}
		}
	}
	return nil
}

// ValidateCommon performs structural validation of the shared common table.
//
// The common table is the resolution target of reference tokens, so every
// entry must be a literal: a reference resolving to another reference would
// create the reference graph the format deliberately avoids.
func ValidateCommon(t *Table) error {
	if t == nil || t.root == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidDocument)
	}
	for _, entry := range t.Entries() {
		if entry.Kind == KindReference {
			return fmt.Errorf("%w: common table key %q is a reference", ErrUnresolvableReference, entry.Key)
		}
	}
	return nil
}

// IssuePlaceholders returns the substitution variables an issues entry
// expects, collected from its title and description. This is the documented
// placeholder contract for callers raising that issue.
//
// Returns ErrKeyNotFound if the issue entry does not exist.
func IssuePlaceholders(t *Table, issueID string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, field := range []string{"title", "description"} {
		value, kind, err := t.Lookup(strings.Join([]string{"issues", issueID, field}, "."))
		if err != nil {
			return nil, err
		}
		if kind != KindLiteral {
			continue
		}
		for _, name := range Placeholders(value) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names, nil
}
