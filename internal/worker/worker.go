package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/models"
	"github.com/kubev2v/ipc-worker/internal/processor"
	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/pkg/scheduler"
	"github.com/kubev2v/ipc-worker/pkg/simulator"
)

const drainPollInterval = 10 * time.Millisecond

var (
	ErrOverloaded     = errors.New("worker overloaded")
	ErrProcessorPanic = errors.New("processor panicked")
)

type counters struct {
	received  atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	abandoned atomic.Uint64
	rejected  atomic.Uint64
	dropped   atomic.Uint64
}

// Worker schedules one task per request and emits a response tagged with the
// request id once the task completes.
type Worker[ID comparable] struct {
	id         string
	ctx        context.Context
	scheduler  *scheduler.Scheduler
	processor  processor.Processor
	sender     transport.Sender[ID]
	delays     simulator.DelaySource
	maxPending int
	sendTries  uint
	sendDelay  time.Duration
	counters   counters
	metrics    *metrics
	stopped    chan struct{}
}

// New starts a worker. ctx is the termination signal: once it is done the
// shutdown hook logs, pending tasks are abandoned and no further response is
// emitted.
func New[ID comparable](ctx context.Context, sender transport.Sender[ID], proc processor.Processor, opts ...Option) *Worker[ID] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &Worker[ID]{
		id:         uuid.NewString(),
		ctx:        ctx,
		scheduler:  scheduler.NewScheduler(o.numWorkers),
		processor:  proc,
		sender:     sender,
		delays:     o.delays,
		maxPending: o.maxPending,
		sendTries:  o.sendMaxTries,
		sendDelay:  o.sendInitialDelay,
		stopped:    make(chan struct{}),
	}
	w.metrics = newMetrics(o.registerer, func() float64 { return float64(w.scheduler.Pending()) })

	OnShutdown(ctx, w.shutdown)

	return w
}

// Submit schedules the request and returns immediately. Ids are not
// deduplicated: every call yields its own task and its own response.
func (w *Worker[ID]) Submit(id ID, payload string) {
	w.counters.received.Add(1)
	w.metrics.received.Inc()

	if w.ctx.Err() != nil {
		w.abandon(id, "worker is shutting down")
		return
	}

	if w.maxPending > 0 && w.scheduler.Pending() >= w.maxPending {
		w.counters.rejected.Add(1)
		w.metrics.rejected.Inc()
		zap.S().Named("worker").Warnw("rejecting request", "id", id, "pending", w.scheduler.Pending(), "max_pending", w.maxPending)
		go w.emit(w.ctx, models.NewErrorResponse(id, ErrOverloaded))
		return
	}

	now := time.Now()
	task := models.PendingTask[ID]{
		ID:          id,
		Payload:     payload,
		ScheduledAt: now,
		DueAt:       now.Add(w.delays.Next()),
	}

	future := w.scheduler.AddWork(func(ctx context.Context) (any, error) {
		w.run(ctx, task)
		return nil, nil
	})
	go w.watch(id, future)
}

// watch reports tasks the scheduler never ran, either because it was
// already closed or because they were still queued when it closed.
func (w *Worker[ID]) watch(id ID, future *models.Future[models.Result[any]]) {
	res := <-future.C()
	switch {
	case res.Err == nil:
	case errors.Is(res.Err, context.Canceled):
		w.abandon(id, "scheduler closed before the task ran")
	default:
		zap.S().Named("worker").Errorw("task failed in scheduler", "id", id, "error", res.Err)
	}
}

// Pending returns the number of tasks waiting for completion.
func (w *Worker[ID]) Pending() int {
	return w.scheduler.Pending()
}

func (w *Worker[ID]) Stats() models.WorkerStats {
	return models.WorkerStats{
		InstanceID: w.id,
		Received:   w.counters.received.Load(),
		Completed:  w.counters.completed.Load(),
		Failed:     w.counters.failed.Load(),
		Abandoned:  w.counters.abandoned.Load(),
		Rejected:   w.counters.rejected.Load(),
		Dropped:    w.counters.dropped.Load(),
		Pending:    w.scheduler.Pending(),
	}
}

// Drain blocks until no task is pending or ctx is done. Requests submitted
// while draining extend the wait.
func (w *Worker[ID]) Drain(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for w.scheduler.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopped:
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// Stopped is closed once the shutdown hook has run.
func (w *Worker[ID]) Stopped() <-chan struct{} {
	return w.stopped
}

func (w *Worker[ID]) run(ctx context.Context, task models.PendingTask[ID]) {
	timer := time.NewTimer(time.Until(task.DueAt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		w.abandon(task.ID, "shutdown during delay")
		return
	case <-w.ctx.Done():
		w.abandon(task.ID, "shutdown during delay")
		return
	case <-timer.C:
	}

	result, err := w.process(ctx, task.Payload)
	if ctx.Err() != nil || w.ctx.Err() != nil {
		w.abandon(task.ID, "shutdown during processing")
		return
	}

	resp := models.NewResponse(task.ID, result)
	if err != nil {
		zap.S().Named("worker").Errorw("processing failed", "id", task.ID, "payload", task.Payload, "error", err)
		resp = models.NewErrorResponse(task.ID, err)
	}

	if !w.emit(ctx, resp) {
		return
	}

	if resp.Failed() {
		w.counters.failed.Add(1)
		w.metrics.failed.Inc()
	} else {
		w.counters.completed.Add(1)
		w.metrics.completed.Inc()
	}
	w.metrics.latency.Observe(time.Since(task.ScheduledAt).Seconds())
	zap.S().Named("worker").Infow("worker done processing message", "id", task.ID, "payload", task.Payload, "elapsed", time.Since(task.ScheduledAt))
}

func (w *Worker[ID]) process(ctx context.Context, payload string) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrProcessorPanic, rec)
		}
	}()
	return w.processor.Process(ctx, payload)
}

// emit sends resp, retrying with exponential backoff. A response that still
// cannot be sent is logged and dropped. It reports whether resp was sent;
// outcome counters are left to the caller.
func (w *Worker[ID]) emit(ctx context.Context, resp models.Response[ID]) bool {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.sendDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := w.sender.Send(ctx, resp)
		if err != nil && (ctx.Err() != nil || w.ctx.Err() != nil) {
			return struct{}{}, backoff.Permanent(context.Canceled)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(w.sendTries))

	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		w.abandon(resp.ID, "shutdown during send")
	default:
		w.counters.dropped.Add(1)
		w.metrics.dropped.Inc()
		zap.S().Named("worker").Errorw("dropping response after send failures", "id", resp.ID, "tries", w.sendTries, "error", err)
	}
	return false
}

func (w *Worker[ID]) abandon(id ID, reason string) {
	w.counters.abandoned.Add(1)
	w.metrics.abandoned.Inc()
	zap.S().Named("worker").Debugw("task abandoned", "id", id, "reason", reason)
}

func (w *Worker[ID]) shutdown() {
	defer close(w.stopped)
	zap.S().Named("worker").Infow("worker exiting", "pending", w.scheduler.Pending(), "instance", w.id)
	w.scheduler.Close()
}
