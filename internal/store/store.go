package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// QueryInterceptor is the subset of *sql.DB used by the sub-stores.
type QueryInterceptor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewDB opens a DuckDB database. An empty path or ":memory:" opens an
// in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb at %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb at %q: %w", path, err)
	}
	return db, nil
}

// Store provides access to all storage repositories.
type Store struct {
	db         *sql.DB
	dictionary *DictionaryStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:         db,
		dictionary: NewDictionaryStore(db),
	}
}

func (s *Store) Dictionary() *DictionaryStore {
	return s.dictionary
}

func (s *Store) Close() error {
	return s.db.Close()
}
