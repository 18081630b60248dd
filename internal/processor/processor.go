// Package processor holds the processing collaborators invoked once per
// request. The worker treats their result as opaque.
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/store"
)

var ErrEmptyEntry = errors.New("empty dictionary entry")

// Processor computes a result from a request payload.
type Processor interface {
	Process(ctx context.Context, payload string) (string, error)
}

// Func adapts a plain function to Processor.
type Func func(ctx context.Context, payload string) (string, error)

func (f Func) Process(ctx context.Context, payload string) (string, error) {
	return f(ctx, payload)
}

// Identity returns the payload unchanged.
var Identity = Func(func(_ context.Context, payload string) (string, error) {
	return payload, nil
})

// Dictionary adds every payload to the dictionary store and answers with
// "<entry>:<count>", count being how many times the entry has been added.
type Dictionary struct {
	store *store.DictionaryStore
}

func NewDictionary(st *store.DictionaryStore) *Dictionary {
	return &Dictionary{store: st}
}

func (d *Dictionary) Process(ctx context.Context, payload string) (string, error) {
	entry := Normalize(payload)
	if entry == "" {
		return "", ErrEmptyEntry
	}

	count, err := d.store.Add(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("failed to add %q to dictionary: %w", entry, err)
	}

	zap.S().Named("dictionary").Debugw("entry added", "entry", entry, "count", count)
	return fmt.Sprintf("%s:%d", entry, count), nil
}

// Normalize trims and lower-cases a dictionary entry.
func Normalize(payload string) string {
	return strings.ToLower(strings.TrimSpace(payload))
}
