package strtab

import (
	"errors"
	"reflect"
	"testing"
)

const sampleDoc = `{
  "config": {
    "step": {
      "user": {
        "title": "Main repeater setup",
        "data": {
          "host": "[%key:common::config_flow::data::host%]"
        }
      }
    },
    "error": {
      "cannot_connect": "[%key:common::config_flow::error::cannot_connect%]"
    }
  },
  "issues": {
    "deprecated_light_fan_entity": {
      "title": "Fan entity deprecation",
      "description": "Automation {info} uses {entity}."
    }
  }
}`

func mustParse(t *testing.T, doc string) *Table {
	t.Helper()
	table, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return table
}

func TestTableLookup(t *testing.T) {
	table := mustParse(t, sampleDoc)

	tests := []struct {
		name     string
		path     string
		want     string
		wantKind Kind
		wantErr  error
	}{
		{
			name:     "literal leaf",
			path:     "config.step.user.title",
			want:     "Main repeater setup",
			wantKind: KindLiteral,
		},
		{
			name:     "reference leaf",
			path:     "config.error.cannot_connect",
			want:     "[%key:common::config_flow::error::cannot_connect%]",
			wantKind: KindReference,
		},
		{
			name:    "missing key",
			path:    "config.error.invalid_auth",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "path through a leaf",
			path:    "config.step.user.title.extra",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "intermediate node",
			path:    "config.step.user",
			wantErr: ErrNotALeaf,
		},
		{
			name:    "invalid path",
			path:    "config..error",
			wantErr: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind, err := table.Lookup(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Lookup(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want || kind != tt.wantKind {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.path, got, kind, tt.want, tt.wantKind)
			}
		})
	}
}

func TestTableEntries(t *testing.T) {
	table := mustParse(t, sampleDoc)

	wantKeys := []string{
		"config.error.cannot_connect",
		"config.step.user.data.host",
		"config.step.user.title",
		"issues.deprecated_light_fan_entity.description",
		"issues.deprecated_light_fan_entity.title",
	}
	if got := table.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}

	entries := table.Entries()
	for _, e := range entries {
		if e.Key == "config.error.cannot_connect" && e.Kind != KindReference {
			t.Errorf("entry %q kind = %v, want %v", e.Key, e.Kind, KindReference)
		}
		if e.Key == "config.step.user.title" && e.Kind != KindLiteral {
			t.Errorf("entry %q kind = %v, want %v", e.Key, e.Kind, KindLiteral)
		}
	}
}

func TestFromEntries(t *testing.T) {
	table := mustParse(t, sampleDoc)
	rebuilt, err := FromEntries(table.Entries())
	if err != nil {
		t.Fatalf("FromEntries() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rebuilt.Entries(), table.Entries()) {
		t.Error("FromEntries() did not reproduce the original entries")
	}
}

func TestFromEntriesConflicts(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{
			name: "duplicate key",
			entries: []Entry{
				{Key: "config.error.cannot_connect", Value: "a"},
				{Key: "config.error.cannot_connect", Value: "b"},
			},
			wantErr: ErrDuplicateKey,
		},
		{
			name: "leaf conflicts with subtree",
			entries: []Entry{
				{Key: "config.error", Value: "a"},
				{Key: "config.error.cannot_connect", Value: "b"},
			},
			wantErr: ErrDuplicateKey,
		},
		{
			name: "invalid key path",
			entries: []Entry{
				{Key: "config..error", Value: "a"},
			},
			wantErr: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEntries(tt.entries); !errors.Is(err, tt.wantErr) {
				t.Errorf("FromEntries() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	table := mustParse(t, sampleDoc)

	data, err := table.Serialize()
	if err != nil {
		t.Fatalf("Serialize() unexpected error: %v", err)
	}

	reparsed, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("Parse(Serialize()) unexpected error: %v", err)
	}

	if !reflect.DeepEqual(reparsed.Entries(), table.Entries()) {
		t.Error("round trip changed the key set or values")
	}

	// Serialization is stable: a second pass produces identical bytes.
	again, err := reparsed.Serialize()
	if err != nil {
		t.Fatalf("Serialize() unexpected error: %v", err)
	}
	if string(again) != string(data) {
		t.Error("Serialize() is not stable across round trips")
	}
}
