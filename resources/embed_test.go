package resources

import (
	"strings"
	"testing"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// TestLoad verifies every shipped document parses and validates.
// This is the same check the -validate CLI mode runs in CI.
func TestLoad(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if set.Common.Empty() {
		t.Error("common table is empty")
	}

	found := make(map[string][]string)
	for _, lt := range set.Tables {
		found[lt.Integration] = append(found[lt.Integration], lt.Locale)
	}
	locales, ok := found["lutron"]
	if !ok {
		t.Fatal("lutron tables not loaded")
	}
	if locales[0] != DefaultLocale {
		t.Errorf("default locale not first: %v", locales)
	}
	if len(locales) < 2 {
		t.Errorf("expected lutron translations alongside strings.json, got %v", locales)
	}
}

// TestShippedReferencesResolve verifies every reference token in every
// shipped table resolves against the shipped common table.
func TestShippedReferencesResolve(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	resolver, err := strtab.NewResolver(set.Common, DefaultLocale)
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	for _, lt := range set.Tables {
		if err := resolver.AddTable(lt.Integration, lt.Locale, lt.Table); err != nil {
			t.Fatalf("AddTable(%s/%s) unexpected error: %v", lt.Integration, lt.Locale, err)
		}
	}

	for _, lt := range set.Tables {
		for _, entry := range lt.Table.Entries() {
			if entry.Kind != strtab.KindReference {
				continue
			}
			// Issue descriptions need caller substitutions; references never do.
			if _, err := resolver.Resolve(lt.Integration, lt.Locale, entry.Key, nil); err != nil {
				t.Errorf("%s/%s %s: %v", lt.Integration, lt.Locale, entry.Key, err)
			}
		}
	}
}

// TestLutronTableContent spot-checks the reconstructed Lutron table against
// the behaviour its consumers rely on.
func TestLutronTableContent(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	var lutron *strtab.Table
	for _, lt := range set.Tables {
		if lt.Integration == "lutron" && lt.Locale == DefaultLocale {
			lutron = lt.Table
		}
	}
	if lutron == nil {
		t.Fatal("lutron default table not loaded")
	}

	// Button event types mirror the event platform's enumeration.
	for _, state := range []string{"single_press", "press", "release", "hold", "double_tap", "hold_release"} {
		key := "entity.event.button.state_attributes.event_type.state." + state
		if _, _, err := lutron.Lookup(key); err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", key, err)
		}
	}

	// The fan deprecation issue documents exactly the entity/info contract.
	placeholders, err := strtab.IssuePlaceholders(lutron, "deprecated_light_fan_entity")
	if err != nil {
		t.Fatalf("IssuePlaceholders() unexpected error: %v", err)
	}
	want := map[string]bool{"entity": false, "info": false}
	for _, name := range placeholders {
		if _, ok := want[name]; !ok {
			t.Errorf("undocumented placeholder %q", name)
		}
		want[name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("expected placeholder %q not present", name)
		}
	}
}

// TestYamlImportIssueRenders verifies the YAML import issue renders in every
// shipped locale with the substitutions its raiser supplies: the config
// import flow passes domain and integration_title, nothing else.
func TestYamlImportIssueRenders(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	resolver, err := strtab.NewResolver(set.Common, DefaultLocale)
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	for _, lt := range set.Tables {
		if err := resolver.AddTable(lt.Integration, lt.Locale, lt.Table); err != nil {
			t.Fatalf("AddTable(%s/%s) unexpected error: %v", lt.Integration, lt.Locale, err)
		}
	}

	subs := map[string]string{"domain": "lutron", "integration_title": "Lutron"}
	for _, lt := range set.Tables {
		if lt.Integration != "lutron" {
			continue
		}

		placeholders, err := strtab.IssuePlaceholders(lt.Table, "deprecated_yaml_import_issue_cannot_connect")
		if err != nil {
			t.Fatalf("IssuePlaceholders(%s) unexpected error: %v", lt.Locale, err)
		}
		for _, name := range placeholders {
			if _, ok := subs[name]; !ok {
				t.Errorf("%s: placeholder %q has no value from the import flow", lt.Locale, name)
			}
		}

		for _, leaf := range []string{"title", "description"} {
			key := "issues.deprecated_yaml_import_issue_cannot_connect." + leaf
			value, err := resolver.Resolve("lutron", lt.Locale, key, subs)
			if err != nil {
				t.Errorf("Resolve(%s, %s) unexpected error: %v", lt.Locale, key, err)
				continue
			}
			if strings.Contains(value, "{") {
				t.Errorf("Resolve(%s, %s) = %q, want no remaining placeholder tokens", lt.Locale, key, value)
			}
		}
	}
}

// TestTranslationsShipResolved verifies translation documents carry literal
// text end to end: a German lookup must never surface the English common
// value, and no translation entry may be a reference token.
func TestTranslationsShipResolved(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	for _, lt := range set.Tables {
		if lt.Locale == DefaultLocale {
			continue
		}
		for _, entry := range lt.Table.Entries() {
			if entry.Kind == strtab.KindReference {
				t.Errorf("%s/%s %s: reference token in translation document", lt.Integration, lt.Locale, entry.Key)
			}
		}
	}

	resolver, err := strtab.NewResolver(set.Common, DefaultLocale)
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	for _, lt := range set.Tables {
		if err := resolver.AddTable(lt.Integration, lt.Locale, lt.Table); err != nil {
			t.Fatalf("AddTable(%s/%s) unexpected error: %v", lt.Integration, lt.Locale, err)
		}
	}

	value, err := resolver.Resolve("lutron", "de", "config.error.cannot_connect", nil)
	if err != nil {
		t.Fatalf("Resolve(de) unexpected error: %v", err)
	}
	if value != "Verbindung fehlgeschlagen" {
		t.Errorf("Resolve(de) = %q, want the German translation", value)
	}
}
