package strtab

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderRegex matches {name} substitution tokens in literal values.
// Names are snake_case identifiers; a lone "{" or "{Not Valid}" is treated
// as literal text, not a placeholder.
var placeholderRegex = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Placeholders returns the placeholder names appearing in a literal value,
// in order of first appearance, without duplicates.
//
// Reference tokens carry no placeholders of their own; callers should
// resolve them first.
func Placeholders(value string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Substitute replaces every {placeholder} token in a literal value with the
// caller-supplied substitution.
//
// Every placeholder present in the value must have a substitution; extra
// substitutions are ignored. The table never supplies placeholder values
// itself — they are a runtime contract with the caller.
//
// Parameters:
//   - value: A literal value (not a reference token)
//   - subs: Substitution map, may be nil if the value has no placeholders
//
// Returns:
//   - string: The rendered value with no remaining placeholder tokens
//   - error: ErrMissingPlaceholder naming the first unsupplied placeholder,
//     or ErrInvalidReference if value is an unresolved reference token
func Substitute(value string, subs map[string]string) (string, error) {
	if IsReference(value) {
		return "", fmt.Errorf("%w: cannot substitute into unresolved reference %q", ErrInvalidReference, value)
	}

	var missing string
	rendered := placeholderRegex.ReplaceAllStringFunc(value, func(token string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
		sub, ok := subs[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return token
		}
		return sub
	})
	if missing != "" {
		return "", fmt.Errorf("%w: {%s} in %q", ErrMissingPlaceholder, missing, value)
	}
	return rendered, nil
}
