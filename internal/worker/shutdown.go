package worker

import "context"

// OnShutdown runs fn once, in its own goroutine, when ctx is done. The
// returned function unregisters the hook and reports whether it did so
// before fn started.
func OnShutdown(ctx context.Context, fn func()) (stop func() bool) {
	return context.AfterFunc(ctx, fn)
}
