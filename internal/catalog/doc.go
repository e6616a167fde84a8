// Package catalog provides the compiled string catalog for Gray Logic
// Strings.
//
// The catalog is the persisted, queryable form of the string tables the
// service ships: each table is flattened to (integration, locale, key,
// value) rows in SQLite at startup, then served from an in-memory cache.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                          catalog                              │
//	│                                                               │
//	│  ┌──────────────────┐        ┌──────────────────┐            │
//	│  │     Registry     │        │    Repository    │            │
//	│  │  (registry.go)   │───────▶│ (repository.go)  │            │
//	│  │                  │        │                  │            │
//	│  │ • Compile        │        │ • SQLite rows    │            │
//	│  │ • RWMutex cache  │        │ • Transactions   │            │
//	│  │ • GetTable/List  │        │ • ReplaceTable   │            │
//	│  └──────────────────┘        └──────────────────┘            │
//	│           │                           │                       │
//	└───────────│───────────────────────────│───────────────────────┘
//	            ▼                           ▼
//	   REST API / Resolver          SQLite (string_entries)
//
// # Usage
//
//	repo := catalog.NewSQLiteRepository(db.DB)
//	registry := catalog.NewRegistry(repo)
//	registry.SetLogger(log)
//
//	registry.Compile(ctx, "lutron", "en", table)
//	table, _ := registry.GetTable(ctx, "lutron", "en")
//
// # Lifecycle
//
// Tables are compiled once at startup from the embedded resources and are
// never mutated at runtime; updates arrive only through redeployment. The
// SQLite rows exist so operators can inspect the deployed catalog with
// ordinary tooling and so a cold cache can be rebuilt without reparsing.
package catalog
