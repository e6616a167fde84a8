package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// TableInfo describes one compiled table in the catalog.
type TableInfo struct {
	Integration string    `json:"integration"`
	Locale      string    `json:"locale"`
	EntryCount  int       `json:"entry_count"`
	CompiledAt  time.Time `json:"compiled_at"`
}

// Repository defines the persistence interface for the compiled catalog.
// This abstraction allows for different implementations (SQLite, mock)
// and enables unit testing without database dependencies.
type Repository interface {
	// ReplaceTable atomically replaces all entries of one table.
	ReplaceTable(ctx context.Context, integration, locale string, entries []strtab.Entry) error

	// GetEntries retrieves the flattened entries of one table, sorted by key.
	// Returns ErrTableNotFound if no entries exist for the pair.
	GetEntries(ctx context.Context, integration, locale string) ([]strtab.Entry, error)

	// List retrieves metadata for every compiled table.
	List(ctx context.Context) ([]TableInfo, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection with the
// string_entries migration applied.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceTable atomically replaces all entries of one table.
// The delete and inserts run in a single transaction so readers never see
// a partially compiled table.
func (r *SQLiteRepository) ReplaceTable(ctx context.Context, integration, locale string, entries []strtab.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM string_entries WHERE integration = ? AND locale = ?`,
		integration, locale,
	); err != nil {
		return fmt.Errorf("clearing table %s/%s: %w", integration, locale, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO string_entries (integration, locale, key, value, is_reference, compiled_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // Read-only cleanup

	for _, entry := range entries {
		isRef := 0
		if entry.Kind == strtab.KindReference {
			isRef = 1
		}
		if _, err := stmt.ExecContext(ctx, integration, locale, entry.Key, entry.Value, isRef, now); err != nil {
			return fmt.Errorf("inserting %s/%s %s: %w", integration, locale, entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing table %s/%s: %w", integration, locale, err)
	}
	return nil
}

// GetEntries retrieves the flattened entries of one table, sorted by key.
func (r *SQLiteRepository) GetEntries(ctx context.Context, integration, locale string) ([]strtab.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value, is_reference
		FROM string_entries
		WHERE integration = ? AND locale = ?
		ORDER BY key`,
		integration, locale,
	)
	if err != nil {
		return nil, fmt.Errorf("querying table %s/%s: %w", integration, locale, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cleanup

	var entries []strtab.Entry
	for rows.Next() {
		var entry strtab.Entry
		var isRef int
		if err := rows.Scan(&entry.Key, &entry.Value, &isRef); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entry.Kind = strtab.KindLiteral
		if isRef != 0 {
			entry.Kind = strtab.KindReference
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrTableNotFound, integration, locale)
	}
	return entries, nil
}

// List retrieves metadata for every compiled table.
func (r *SQLiteRepository) List(ctx context.Context) ([]TableInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT integration, locale, COUNT(*), MAX(compiled_at)
		FROM string_entries
		GROUP BY integration, locale
		ORDER BY integration, locale`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cleanup

	var infos []TableInfo
	for rows.Next() {
		var info TableInfo
		var compiledAt string
		if err := rows.Scan(&info.Integration, &info.Locale, &info.EntryCount, &compiledAt); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, compiledAt)
		if err != nil {
			return nil, fmt.Errorf("parsing compiled_at %q: %w", compiledAt, err)
		}
		info.CompiledAt = ts
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table infos: %w", err)
	}
	return infos, nil
}
