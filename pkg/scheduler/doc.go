// Package scheduler runs asynchronous work on a bounded pool of workers.
//
// Work is submitted with AddWork, which never waits for the work to run: it
// hands the request to the scheduler's event loop and returns a Future right
// away. The event loop pairs queued requests with idle workers, so at most N
// work functions execute at the same time while the queue itself is unbounded.
//
// # Architecture Overview
//
//	          AddWork(fn)                         Future.C()
//	              │                                   ▲
//	              ▼                                   │
//	┌──────────────────────────────────────────────────┴──────────┐
//	│                        run() event loop                      │
//	│                                                              │
//	│  work ──► workQueue [r1][r2][r3]...                          │
//	│                 │                                            │
//	│             dispatch() ──► idle worker ──► go worker.Work(r) │
//	│                 ▲                               │            │
//	│                 └────────── done ◄──────────────┘            │
//	└──────────────────────────────────────────────────────────────┘
//
// Completion order is not submission order: every request gets its own
// goroutine once a worker is free, and a request that finishes early resolves
// its Future regardless of what was submitted before it.
//
// # Futures
//
// AddWork returns a *models.Future[models.Result[any]]. The channel returned
// by C() receives exactly one Result:
//
//	future := sched.AddWork(func(ctx context.Context) (any, error) {
//	    return process(payload)
//	})
//
//	select {
//	case result := <-future.C():
//	    // result.Data / result.Err
//	case <-ctx.Done():
//	    future.Stop()
//	}
//
// Stop cancels the context handed to that single work function.
//
// # Panics
//
// A panic inside a work function is recovered by the worker and delivered as
// Result{Err: "worker panicked: ..."}. The worker goes back to the pool.
//
// # Pending
//
// Pending reports how many requests are queued or running. Callers use it to
// apply their own admission limits on top of the unbounded queue.
//
// # Close
//
// Close is idempotent and:
//
//  1. cancels the main context, so every running work function sees ctx.Done()
//  2. stops dispatching and fails every queued request with context.Canceled
//  3. waits for in-flight workers to return
//
// AddWork after Close resolves immediately with context.Canceled.
package scheduler
