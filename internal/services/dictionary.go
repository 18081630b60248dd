package services

import (
	"context"

	"github.com/kubev2v/ipc-worker/internal/models"
	"github.com/kubev2v/ipc-worker/internal/store"
)

type DictionaryService struct {
	store *store.Store
}

func NewDictionaryService(st *store.Store) *DictionaryService {
	return &DictionaryService{store: st}
}

type DictionaryListParams struct {
	Prefix string
	Limit  uint64
	Offset uint64
}

type DictionaryListResult struct {
	Entries []models.DictionaryEntry
	Total   int
}

func (s *DictionaryService) List(ctx context.Context, params DictionaryListParams) (*DictionaryListResult, error) {
	entries, err := s.store.Dictionary().List(ctx, s.buildListOptions(params)...)
	if err != nil {
		return nil, err
	}

	// total ignores pagination
	total, err := s.store.Dictionary().Count(ctx, s.buildListOptions(DictionaryListParams{Prefix: params.Prefix})...)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.DictionaryEntry{}
	}

	return &DictionaryListResult{
		Entries: entries,
		Total:   total,
	}, nil
}

// Get returns store.ErrEntryNotFound for unknown words. The word is looked up
// as given; callers normalize it first.
func (s *DictionaryService) Get(ctx context.Context, word string) (*models.DictionaryEntry, error) {
	return s.store.Dictionary().Get(ctx, word)
}

func (s *DictionaryService) buildListOptions(params DictionaryListParams) []store.ListOption {
	var opts []store.ListOption

	if params.Prefix != "" {
		opts = append(opts, store.ByPrefix(params.Prefix))
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	return opts
}
