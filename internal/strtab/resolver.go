package strtab

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// Resolver resolves key paths to rendered display strings.
//
// It binds the per-integration string tables (one per locale) to the shared
// common table that reference tokens delegate to, and negotiates locales
// using BCP 47 matching with fallback to the default locale.
//
// Thread Safety:
//   - AddTable is startup-only configuration and is NOT safe to call
//     concurrently with reads.
//   - After setup, tables are immutable and all read methods are safe for
//     concurrent use without synchronisation.
type Resolver struct {
	common        *Table
	defaultLocale language.Tag
	integrations  map[string]*integrationTables
}

// integrationTables holds the locale tables of one integration together
// with the matcher used for locale negotiation.
type integrationTables struct {
	tables  map[string]*Table
	tags    []language.Tag
	matcher language.Matcher
}

// NewResolver creates a resolver bound to the given common table.
//
// Parameters:
//   - common: The shared table reference tokens resolve against
//   - defaultLocale: BCP 47 tag used when negotiation finds no better match
//
// Returns:
//   - *Resolver: Empty resolver; register tables with AddTable
//   - error: If the common table is invalid or the locale unparseable
func NewResolver(common *Table, defaultLocale string) (*Resolver, error) {
	if err := ValidateCommon(common); err != nil {
		return nil, err
	}
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, defaultLocale)
	}
	return &Resolver{
		common:        common,
		defaultLocale: tag,
		integrations:  make(map[string]*integrationTables),
	}, nil
}

// AddTable registers a validated table for an integration and locale.
//
// Returns ErrInvalidLocale if the locale cannot be parsed and ErrTableExists
// if a table is already registered for the pair.
func (r *Resolver) AddTable(integration, locale string, t *Table) error {
	if err := validateKey(integration); err != nil {
		return err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}

	it, ok := r.integrations[integration]
	if !ok {
		it = &integrationTables{tables: make(map[string]*Table)}
		r.integrations[integration] = it
	}
	if _, dup := it.tables[tag.String()]; dup {
		return fmt.Errorf("%w: %s/%s", ErrTableExists, integration, tag)
	}

	it.tables[tag.String()] = t

	// Keep the default locale first: the matcher falls back to the first
	// tag when nothing matches the request.
	if tag == r.defaultLocale {
		it.tags = append([]language.Tag{tag}, it.tags...)
	} else {
		it.tags = append(it.tags, tag)
	}
	it.matcher = language.NewMatcher(it.tags)

	return nil
}

// Table returns the negotiated table for an integration and requested
// locale, along with the locale actually selected.
//
// An empty locale selects the default. Returns ErrTableNotFound if the
// integration has no registered tables.
func (r *Resolver) Table(integration, locale string) (*Table, string, error) {
	it, ok := r.integrations[integration]
	if !ok || len(it.tags) == 0 {
		return nil, "", fmt.Errorf("%w: %q", ErrTableNotFound, integration)
	}

	requested := r.defaultLocale
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
		}
		requested = tag
	}

	_, idx, _ := it.matcher.Match(requested)
	selected := it.tags[idx]
	return it.tables[selected.String()], selected.String(), nil
}

// Resolve returns the rendered display string for a key path.
//
// Resolution steps:
//  1. Negotiate the integration table for the requested locale
//  2. Look up the raw value at the key path
//  3. If the value is a reference token, resolve it in the common table
//  4. Substitute {placeholder} tokens from the caller-supplied map
//
// Parameters:
//   - integration: Integration the table belongs to (e.g. "lutron")
//   - locale: Requested BCP 47 locale, empty for the default
//   - key: Dotted key path (config.error.cannot_connect)
//   - subs: Placeholder substitutions, may be nil
//
// Returns:
//   - string: Rendered string with no remaining placeholder tokens
//   - error: ErrTableNotFound, ErrKeyNotFound, ErrUnresolvableReference,
//     or ErrMissingPlaceholder
func (r *Resolver) Resolve(integration, locale, key string, subs map[string]string) (string, error) {
	table, _, err := r.Table(integration, locale)
	if err != nil {
		return "", err
	}

	value, kind, err := table.Lookup(key)
	if err != nil {
		return "", err
	}

	if kind == KindReference {
		value, err = r.resolveReference(value)
		if err != nil {
			return "", fmt.Errorf("key %q: %w", key, err)
		}
	}

	return Substitute(value, subs)
}

// resolveReference resolves a [%key:common::...%] token against the common
// table. The resolved value must itself be a literal.
func (r *Resolver) resolveReference(token string) (string, error) {
	ref, err := ParseReference(token)
	if err != nil {
		return "", err
	}
	path, err := commonPath(ref)
	if err != nil {
		return "", err
	}
	value, kind, err := r.common.lookup(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnresolvableReference, ref.String())
	}
	if kind != KindLiteral {
		return "", fmt.Errorf("%w: %s resolves to another reference", ErrUnresolvableReference, ref.String())
	}
	return value, nil
}

// Common returns the shared common table.
func (r *Resolver) Common() *Table {
	return r.common
}

// Integrations returns the registered integration names, sorted.
func (r *Resolver) Integrations() []string {
	names := make([]string, 0, len(r.integrations))
	for name := range r.integrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locales returns the registered locales for an integration, sorted.
// Returns ErrTableNotFound if the integration has no registered tables.
func (r *Resolver) Locales(integration string) ([]string, error) {
	it, ok := r.integrations[integration]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, integration)
	}
	locales := make([]string, 0, len(it.tables))
	for locale := range it.tables {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales, nil
}
