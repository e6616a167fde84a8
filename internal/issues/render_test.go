package issues

import (
	"errors"
	"strings"
	"testing"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

const commonDoc = `{
  "config_flow": {
    "error": {
      "cannot_connect": "Failed to connect"
    }
  }
}`

const lutronDoc = `{
  "config": {
    "error": {
      "cannot_connect": "[%key:common::config_flow::error::cannot_connect%]"
    }
  },
  "issues": {
    "deprecated_light_fan_entity": {
      "title": "Deprecated fan entity",
      "description": "The light entity {entity} is deprecated. Update {info} to use the fan entity."
    },
    "deprecated_light_fan_on": {
      "title": "Turning on fans as lights is deprecated",
      "description": "Use the fan entity instead."
    }
  }
}`

const lutronDocDE = `{
  "issues": {
    "deprecated_light_fan_on": {
      "title": "Ventilatoren als Lichter einzuschalten ist veraltet",
      "description": "Verwende stattdessen die Ventilator-Entität."
    }
  }
}`

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	common, err := strtab.Parse([]byte(commonDoc), strtab.FormatJSON)
	if err != nil {
		t.Fatalf("Parse(common) unexpected error: %v", err)
	}
	resolver, err := strtab.NewResolver(common, "en")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}

	for locale, doc := range map[string]string{"en": lutronDoc, "de": lutronDocDE} {
		table, err := strtab.Parse([]byte(doc), strtab.FormatJSON)
		if err != nil {
			t.Fatalf("Parse(%s) unexpected error: %v", locale, err)
		}
		if err := resolver.AddTable("lutron", locale, table); err != nil {
			t.Fatalf("AddTable(%s) unexpected error: %v", locale, err)
		}
	}

	return NewRenderer(resolver)
}

func TestRenderWithPlaceholders(t *testing.T) {
	renderer := newTestRenderer(t)

	rendered, err := renderer.Render(Notice{
		IssueID:     "deprecated_light_fan_entity",
		IssueDomain: "lutron",
		Severity:    SeverityWarning,
		Placeholders: map[string]string{
			"entity": "light.kitchen_fan",
			"info":   "automation.turn_on_fan",
		},
	}, "")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if rendered.Title != "Deprecated fan entity" {
		t.Errorf("Title = %q, want table value", rendered.Title)
	}
	if !strings.Contains(rendered.Description, "light.kitchen_fan") {
		t.Errorf("Description = %q, want substituted entity", rendered.Description)
	}
	if !strings.Contains(rendered.Description, "automation.turn_on_fan") {
		t.Errorf("Description = %q, want substituted info", rendered.Description)
	}
	if strings.Contains(rendered.Description, "{") {
		t.Errorf("Description = %q, want no remaining placeholder tokens", rendered.Description)
	}
	if rendered.ID == "" {
		t.Error("ID not assigned")
	}
	if rendered.Locale != "en" {
		t.Errorf("Locale = %q, want %q", rendered.Locale, "en")
	}
	if rendered.RenderedAt.IsZero() {
		t.Error("RenderedAt not recorded")
	}
}

func TestRenderMissingPlaceholder(t *testing.T) {
	renderer := newTestRenderer(t)

	_, err := renderer.Render(Notice{
		IssueID:     "deprecated_light_fan_entity",
		IssueDomain: "lutron",
		Severity:    SeverityWarning,
	}, "")
	if !errors.Is(err, strtab.ErrMissingPlaceholder) {
		t.Errorf("Render() error = %v, want %v", err, strtab.ErrMissingPlaceholder)
	}
}

func TestRenderLocaleNegotiation(t *testing.T) {
	renderer := newTestRenderer(t)

	// de-AT falls back to the de table.
	rendered, err := renderer.Render(Notice{
		IssueID:     "deprecated_light_fan_on",
		IssueDomain: "lutron",
		Severity:    SeverityWarning,
	}, "de-AT")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if rendered.Locale != "de" {
		t.Errorf("Locale = %q, want %q", rendered.Locale, "de")
	}
	if !strings.Contains(rendered.Title, "veraltet") {
		t.Errorf("Title = %q, want German rendering", rendered.Title)
	}
}

func TestRenderValidation(t *testing.T) {
	renderer := newTestRenderer(t)

	tests := []struct {
		name    string
		notice  Notice
		wantErr error
	}{
		{
			name:    "missing issue id",
			notice:  Notice{IssueDomain: "lutron", Severity: SeverityWarning},
			wantErr: ErrInvalidNotice,
		},
		{
			name:    "missing domain",
			notice:  Notice{IssueID: "deprecated_light_fan_on", Severity: SeverityWarning},
			wantErr: ErrInvalidNotice,
		},
		{
			name:    "unknown severity",
			notice:  Notice{IssueID: "deprecated_light_fan_on", IssueDomain: "lutron", Severity: "critical"},
			wantErr: ErrInvalidSeverity,
		},
		{
			name:    "unknown translation key",
			notice:  Notice{IssueID: "no_such_issue", IssueDomain: "lutron", Severity: SeverityWarning},
			wantErr: strtab.ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderer.Render(tt.notice, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueIDs(t *testing.T) {
	table, err := strtab.Parse([]byte(lutronDoc), strtab.FormatJSON)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	ids := IssueIDs(table)
	want := []string{"deprecated_light_fan_entity", "deprecated_light_fan_on"}
	if len(ids) != len(want) {
		t.Fatalf("IssueIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IssueIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
