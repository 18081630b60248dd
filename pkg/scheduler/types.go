package scheduler

import (
	"context"
)

// Work is a function executed by a scheduler worker.
type Work[T any] func(ctx context.Context) (T, error)
