package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// integrationNameRegex matches valid integration names (snake_case).
var integrationNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Logger is the optional logging interface for the registry.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Registry is the in-memory view of the compiled string catalog.
//
// It fronts the Repository with a cache of rebuilt Tables so that lookups
// after startup never touch the database. Compilation happens once at
// startup (redeployment is the only update path), after which the registry
// is effectively read-only.
//
// Thread Safety: all methods are safe for concurrent use; the cache is
// guarded by a read-write mutex.
type Registry struct {
	repo Repository

	mu    sync.RWMutex
	cache map[string]map[string]*strtab.Table // integration -> locale -> table

	logger   Logger
	loggerMu sync.RWMutex
}

// NewRegistry creates a registry backed by the given repository.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:  repo,
		cache: make(map[string]map[string]*strtab.Table),
	}
}

// SetLogger sets an optional logger for compile and cache events.
func (r *Registry) SetLogger(logger Logger) {
	r.loggerMu.Lock()
	r.logger = logger
	r.loggerMu.Unlock()
}

// getLogger returns the current logger (may be nil).
func (r *Registry) getLogger() Logger {
	r.loggerMu.RLock()
	defer r.loggerMu.RUnlock()
	return r.logger
}

// Compile flattens a parsed table, persists it, and caches it.
//
// The table should already have passed strtab.Validate; Compile only
// checks the catalog-level constraints (valid names, non-empty table).
//
// Parameters:
//   - ctx: Context for the database write
//   - integration: Integration the table belongs to (e.g. "lutron")
//   - locale: BCP 47 locale of the table
//   - table: Parsed string table
func (r *Registry) Compile(ctx context.Context, integration, locale string, table *strtab.Table) error {
	if !integrationNameRegex.MatchString(integration) {
		return fmt.Errorf("%w: %q", ErrInvalidIntegration, integration)
	}
	if locale == "" {
		return ErrInvalidLocale
	}

	entries := table.Entries()
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s/%s", ErrEmptyTable, integration, locale)
	}

	if err := r.repo.ReplaceTable(ctx, integration, locale, entries); err != nil {
		return err
	}

	r.mu.Lock()
	locales, ok := r.cache[integration]
	if !ok {
		locales = make(map[string]*strtab.Table)
		r.cache[integration] = locales
	}
	locales[locale] = table
	r.mu.Unlock()

	if logger := r.getLogger(); logger != nil {
		logger.Info("compiled string table",
			"integration", integration,
			"locale", locale,
			"entries", len(entries),
		)
	}
	return nil
}

// GetTable returns the compiled table for an integration and locale.
//
// Cache misses fall through to the repository and rebuild the table from
// its flattened entries. Returns ErrTableNotFound if the table was never
// compiled.
func (r *Registry) GetTable(ctx context.Context, integration, locale string) (*strtab.Table, error) {
	r.mu.RLock()
	if locales, ok := r.cache[integration]; ok {
		if table, ok := locales[locale]; ok {
			r.mu.RUnlock()
			return table, nil
		}
	}
	r.mu.RUnlock()

	entries, err := r.repo.GetEntries(ctx, integration, locale)
	if err != nil {
		return nil, err
	}
	table, err := strtab.FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("rebuilding table %s/%s: %w", integration, locale, err)
	}

	r.mu.Lock()
	locales, ok := r.cache[integration]
	if !ok {
		locales = make(map[string]*strtab.Table)
		r.cache[integration] = locales
	}
	locales[locale] = table
	r.mu.Unlock()

	return table, nil
}

// List returns metadata for every compiled table.
func (r *Registry) List(ctx context.Context) ([]TableInfo, error) {
	return r.repo.List(ctx)
}

// RefreshCache rebuilds the in-memory cache from the repository.
// Called on startup so the first lookups are served from memory.
func (r *Registry) RefreshCache(ctx context.Context) error {
	infos, err := r.repo.List(ctx)
	if err != nil {
		return err
	}

	cache := make(map[string]map[string]*strtab.Table, len(infos))
	for _, info := range infos {
		entries, err := r.repo.GetEntries(ctx, info.Integration, info.Locale)
		if err != nil {
			return err
		}
		table, err := strtab.FromEntries(entries)
		if err != nil {
			return fmt.Errorf("rebuilding table %s/%s: %w", info.Integration, info.Locale, err)
		}
		locales, ok := cache[info.Integration]
		if !ok {
			locales = make(map[string]*strtab.Table)
			cache[info.Integration] = locales
		}
		locales[info.Locale] = table
	}

	r.mu.Lock()
	r.cache = cache
	r.mu.Unlock()

	if logger := r.getLogger(); logger != nil {
		logger.Info("string catalog cache refreshed", "tables", len(infos))
	}
	return nil
}
