package issues

import (
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// Severity classifies how urgent a notice is for the user.
type Severity string

// Valid severities.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Valid reports whether the severity is a known value.
func (s Severity) Valid() bool {
	return s == SeverityWarning || s == SeverityError
}

// Notice describes a raised issue before rendering.
//
// A notice carries no display text itself. The translation key selects the
// issues entry in the owning integration's string table, and the
// placeholders supply values for that entry's {placeholder} tokens.
type Notice struct {
	// IssueID uniquely identifies the issue within its domain.
	IssueID string

	// IssueDomain is the integration the issue belongs to (e.g. "lutron").
	IssueDomain string

	// Severity is warning or error.
	Severity Severity

	// TranslationKey selects the issues entry. Empty defaults to IssueID.
	TranslationKey string

	// Placeholders supplies values for the entry's {placeholder} tokens.
	Placeholders map[string]string

	// BreaksInVersion names the release where the deprecated behaviour stops
	// working, if known.
	BreaksInVersion string

	// IsFixable indicates the user can resolve the issue themselves.
	IsFixable bool

	// IsPersistent indicates the issue survives restarts on the raising side.
	IsPersistent bool
}

// Validate checks the notice for structural errors.
func (n Notice) Validate() error {
	if n.IssueID == "" {
		return fmt.Errorf("%w: issue_id is required", ErrInvalidNotice)
	}
	if n.IssueDomain == "" {
		return fmt.Errorf("%w: issue_domain is required", ErrInvalidNotice)
	}
	if !n.Severity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSeverity, n.Severity)
	}
	return nil
}

// translationKey returns the effective translation key.
func (n Notice) translationKey() string {
	if n.TranslationKey != "" {
		return n.TranslationKey
	}
	return n.IssueID
}

// titleKey returns the full key path of the notice's title entry.
func (n Notice) titleKey() string {
	return "issues." + n.translationKey() + ".title"
}

// descriptionKey returns the full key path of the notice's description entry.
func (n Notice) descriptionKey() string {
	return "issues." + n.translationKey() + ".description"
}

// IssueIDs returns the issue identifiers declared in a string table's
// issues namespace, sorted. A table without an issues namespace yields nil.
func IssueIDs(t *strtab.Table) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, key := range t.Keys() {
		parts := strings.Split(key, ".")
		if len(parts) < 3 || parts[0] != "issues" {
			continue
		}
		if _, ok := seen[parts[1]]; ok {
			continue
		}
		seen[parts[1]] = struct{}{}
		ids = append(ids, parts[1])
	}
	return ids
}
