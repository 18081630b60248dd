// Package store implements the data access layer backing the dictionary
// processor.
//
// Storage is a DuckDB database, in memory by default or on disk when a path
// is configured. Schema changes live in migrations/sql and are applied by
// migrations.Run at startup.
//
// # Architecture Overview
//
//	┌──────────────────────────────────────────┐
//	│              Store (facade)              │
//	├──────────────────────────────────────────┤
//	│             DictionaryStore              │
//	│                    ▼                     │
//	│               dictionary                 │
//	└──────────────────────────────────────────┘
//
// # Tables
//
//	┌────────────────────┬──────────────────────────────────────────┐
//	│  Table             │  Purpose                                 │
//	├────────────────────┼──────────────────────────────────────────┤
//	│  dictionary        │  One row per word with its add count     │
//	│  schema_migrations │  Migration version tracking              │
//	└────────────────────┴──────────────────────────────────────────┘
//
// # DictionaryStore
//
// Schema:
//
//	dictionary (
//	    word VARCHAR PRIMARY KEY,
//	    count BIGINT NOT NULL DEFAULT 0,
//	    created_at TIMESTAMP,
//	    updated_at TIMESTAMP
//	)
//
// Methods:
//   - Add(ctx, word) → new count (UPSERT ... RETURNING count)
//   - Get(ctx, word) → *models.DictionaryEntry or ErrEntryNotFound
//   - List(ctx, opts...) → []models.DictionaryEntry ordered by word
//   - Count(ctx, opts...) → int
//
// Add is serialized inside the store: DuckDB uses optimistic concurrency and
// two concurrent upserts of the same key fail with a transaction conflict.
//
// # List Options
//
// List and Count take functional options that modify the squirrel builder:
//
//	entries, err := st.Dictionary().List(ctx,
//	    store.ByPrefix("app"),
//	    store.WithLimit(20),
//	    store.WithOffset(40),
//	)
//
// # Usage
//
//	db, err := store.NewDB(cfg.Store.Path)
//	if err != nil {
//	    return err
//	}
//	if err := migrations.Run(ctx, db); err != nil {
//	    return err
//	}
//	st := store.NewStore(db)
//	defer st.Close()
package store
