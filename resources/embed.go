// Package resources embeds the string-table documents shipped with the
// service: the shared common table and one directory per integration.
//
// Layout:
//
//	common/strings.json                        shared common table
//	integrations/<name>/strings.json           default-locale (en) table
//	integrations/<name>/translations/<ll>.json additional locale tables
//
// Documents are compiled into the binary so a deployment needs no resource
// files on disk; updating a table means shipping a new binary.
package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

//go:embed common/strings.json integrations
var resourcesFS embed.FS

// DefaultLocale is the locale of every integrations/<name>/strings.json
// document. Translations override it per locale.
const DefaultLocale = "en"

// LocaleTable is one parsed integration table with its locale.
type LocaleTable struct {
	Integration string
	Locale      string
	Table       *strtab.Table
}

// Set holds all parsed and validated shipped resources.
type Set struct {
	// Common is the shared table reference tokens resolve against.
	Common *strtab.Table

	// Tables are the per-integration locale tables, default locale first
	// per integration.
	Tables []LocaleTable
}

// Load parses and validates every embedded resource document.
//
// Returns:
//   - *Set: All shipped tables, structurally validated
//   - error: The first parse or validation failure, naming the document
func Load() (*Set, error) {
	common, err := loadTable("common/strings.json")
	if err != nil {
		return nil, err
	}
	if err := strtab.ValidateCommon(common); err != nil {
		return nil, fmt.Errorf("common/strings.json: %w", err)
	}

	set := &Set{Common: common}

	integrations, err := fs.ReadDir(resourcesFS, "integrations")
	if err != nil {
		return nil, fmt.Errorf("reading integrations directory: %w", err)
	}

	for _, dir := range integrations {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()

		table, err := loadIntegrationTable(path.Join("integrations", name, "strings.json"))
		if err != nil {
			return nil, err
		}
		set.Tables = append(set.Tables, LocaleTable{
			Integration: name,
			Locale:      DefaultLocale,
			Table:       table,
		})

		translations, err := loadTranslations(name)
		if err != nil {
			return nil, err
		}
		set.Tables = append(set.Tables, translations...)
	}

	return set, nil
}

// loadTranslations parses the translations directory of one integration.
// A missing directory is not an error: most integrations ship only the
// default-locale table. Translation documents ship fully resolved text;
// reference tokens are rejected because they would read back the
// default-locale common value for localized callers.
func loadTranslations(integration string) ([]LocaleTable, error) {
	dir := path.Join("integrations", integration, "translations")
	entries, err := fs.ReadDir(resourcesFS, dir)
	if err != nil {
		return nil, nil //nolint:nilerr // No translations directory is fine
	}

	var tables []LocaleTable
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		locale := strings.TrimSuffix(name, ".json")
		if locale == DefaultLocale {
			return nil, fmt.Errorf("%s/%s: %s duplicates strings.json", dir, name, DefaultLocale)
		}

		table, err := loadIntegrationTable(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for _, entry := range table.Entries() {
			if entry.Kind == strtab.KindReference {
				return nil, fmt.Errorf("%s/%s: %s: reference token in translation document", dir, name, entry.Key)
			}
		}
		tables = append(tables, LocaleTable{
			Integration: integration,
			Locale:      locale,
			Table:       table,
		})
	}
	return tables, nil
}

// loadIntegrationTable parses and structurally validates one integration
// document.
func loadIntegrationTable(file string) (*strtab.Table, error) {
	table, err := loadTable(file)
	if err != nil {
		return nil, err
	}
	if err := strtab.Validate(table); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return table, nil
}

// loadTable reads and parses one embedded JSON document.
func loadTable(file string) (*strtab.Table, error) {
	data, err := resourcesFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	table, err := strtab.Parse(data, strtab.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return table, nil
}
