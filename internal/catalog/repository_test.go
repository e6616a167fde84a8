package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// setupTestDB creates an in-memory SQLite database with the string_entries table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE string_entries (
			integration  TEXT NOT NULL,
			locale       TEXT NOT NULL,
			key          TEXT NOT NULL,
			value        TEXT NOT NULL,
			is_reference INTEGER NOT NULL DEFAULT 0,
			compiled_at  TEXT NOT NULL,
			PRIMARY KEY (integration, locale, key)
		);
		CREATE INDEX idx_string_entries_table ON string_entries(integration, locale);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func testEntries() []strtab.Entry {
	return []strtab.Entry{
		{Key: "config.error.cannot_connect", Value: "[%key:common::config_flow::error::cannot_connect%]", Kind: strtab.KindReference},
		{Key: "config.step.user.title", Value: "Connect to the main repeater", Kind: strtab.KindLiteral},
		{Key: "issues.deprecated_light_fan_on.title", Value: "Deprecated", Kind: strtab.KindLiteral},
	}
}

func TestReplaceTableAndGetEntries(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.ReplaceTable(ctx, "lutron", "en", testEntries()); err != nil {
		t.Fatalf("ReplaceTable() unexpected error: %v", err)
	}

	entries, err := repo.GetEntries(ctx, "lutron", "en")
	if err != nil {
		t.Fatalf("GetEntries() unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("GetEntries() returned %d entries, want 3", len(entries))
	}
	// Sorted by key; the reference entry comes first and keeps its kind.
	if entries[0].Key != "config.error.cannot_connect" || entries[0].Kind != strtab.KindReference {
		t.Errorf("first entry = %+v, want reference config.error.cannot_connect", entries[0])
	}
	if entries[1].Kind != strtab.KindLiteral {
		t.Errorf("second entry kind = %v, want literal", entries[1].Kind)
	}
}

func TestReplaceTableIsWholesale(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.ReplaceTable(ctx, "lutron", "en", testEntries()); err != nil {
		t.Fatalf("ReplaceTable() unexpected error: %v", err)
	}

	replacement := []strtab.Entry{
		{Key: "config.step.user.title", Value: "New title", Kind: strtab.KindLiteral},
	}
	if err := repo.ReplaceTable(ctx, "lutron", "en", replacement); err != nil {
		t.Fatalf("ReplaceTable() unexpected error: %v", err)
	}

	entries, err := repo.GetEntries(ctx, "lutron", "en")
	if err != nil {
		t.Fatalf("GetEntries() unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != "New title" {
		t.Errorf("GetEntries() = %+v, want only the replacement entry", entries)
	}
}

func TestGetEntriesNotFound(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	_, err := repo.GetEntries(context.Background(), "lutron", "en")
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("GetEntries() error = %v, want %v", err, ErrTableNotFound)
	}
}

func TestList(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.ReplaceTable(ctx, "lutron", "en", testEntries()); err != nil {
		t.Fatalf("ReplaceTable() unexpected error: %v", err)
	}
	if err := repo.ReplaceTable(ctx, "lutron", "de", testEntries()[:1]); err != nil {
		t.Fatalf("ReplaceTable() unexpected error: %v", err)
	}

	infos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() returned %d tables, want 2", len(infos))
	}
	// Ordered by integration then locale.
	if infos[0].Locale != "de" || infos[0].EntryCount != 1 {
		t.Errorf("infos[0] = %+v, want lutron/de with 1 entry", infos[0])
	}
	if infos[1].Locale != "en" || infos[1].EntryCount != 3 {
		t.Errorf("infos[1] = %+v, want lutron/en with 3 entries", infos[1])
	}
	if infos[0].CompiledAt.IsZero() {
		t.Error("CompiledAt not recorded")
	}
}
