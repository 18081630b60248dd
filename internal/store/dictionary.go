package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/ipc-worker/internal/models"
)

// ErrEntryNotFound is returned by Get when the word was never added.
var ErrEntryNotFound = errors.New("dictionary entry not found")

// DictionaryStore keeps a count of every word added to the dictionary.
type DictionaryStore struct {
	db QueryInterceptor
	mu sync.Mutex
}

func NewDictionaryStore(db QueryInterceptor) *DictionaryStore {
	return &DictionaryStore{db: db}
}

// Add inserts word or increments its count, returning the new count.
func (s *DictionaryStore) Add(ctx context.Context, word string) (int64, error) {
	// duckdb reports a transaction conflict on concurrent upserts of one key
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.QueryRowContext(ctx, queryUpsertEntry, word).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *DictionaryStore) Get(ctx context.Context, word string) (*models.DictionaryEntry, error) {
	query, args, err := sq.Select("word", "count").
		From("dictionary").
		Where(sq.Eq{"word": word}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var e models.DictionaryEntry
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&e.Word, &e.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *DictionaryStore) List(ctx context.Context, opts ...ListOption) ([]models.DictionaryEntry, error) {
	builder := sq.Select("word", "count").From("dictionary").OrderBy("word")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DictionaryEntry
	for rows.Next() {
		var e models.DictionaryEntry
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *DictionaryStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("dictionary")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// ByPrefix keeps words starting with prefix. The prefix is matched
// literally, LIKE wildcards included.
func ByPrefix(prefix string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if prefix == "" {
			return b
		}
		return b.Where(sq.Expr("starts_with(word, ?)", prefix))
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
