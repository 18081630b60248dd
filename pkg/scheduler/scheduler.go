package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/models"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest struct {
	fn  Work[any]
	c   chan models.Result[any]
	ctx context.Context
}

type worker struct {
	done    chan any
	wg      *sync.WaitGroup
	pending *atomic.Int64
}

func (w worker) Work(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("worker recovered from panic", "panic", rec)
			r.c <- models.Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		w.pending.Add(-1)
		w.done <- struct{}{}
		w.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- models.Result[any]{Data: v, Err: err}
}

func newWorker(done chan any, wg *sync.WaitGroup, pending *atomic.Int64) worker {
	return worker{done: done, wg: wg, pending: pending}
}

type Scheduler struct {
	workers    *queue[worker]
	workQueue  *queue[workRequest]
	close      chan any
	done       chan any
	stopped    chan any
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
	pending    atomic.Int64
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler(nbWorkers int) *Scheduler {
	if nbWorkers <= 0 {
		nbWorkers = 1
	}

	done := make(chan any, nbWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    &queue[worker]{},
		workQueue:  &queue[workRequest]{},
		close:      make(chan any),
		done:       done,
		stopped:    make(chan any),
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(newWorker(done, &s.wg, &s.pending))
	}
	go s.run()
	return s
}

func (s *Scheduler) AddWork(w Work[any]) *models.Future[models.Result[any]] {
	c := make(chan models.Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	s.pending.Add(1)
	select {
	case <-s.mainCtx.Done():
		// we're closing here so send a result with an error
		s.pending.Add(-1)
		c <- models.Result[any]{Err: context.Canceled}
	case s.work <- workRequest{w, c, ctx}:
	}

	return models.NewFuture(c, cancel)
}

// Pending returns the number of work items queued or running.
func (s *Scheduler) Pending() int {
	return int(s.pending.Load())
}

func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.stopped
	})
}

func (s *Scheduler) run() {
	defer close(s.stopped)
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			s.dispatch()
		case <-s.done:
			s.workers.Push(newWorker(s.done, &s.wg, &s.pending))
			s.dispatch()
		case <-s.close:
			s.drain()
			s.wg.Wait()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers
func (s *Scheduler) dispatch() {
	if s.mainCtx.Err() != nil {
		// closing: whatever is still queued is drained by run
		return
	}
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		worker := s.workers.Pop()
		s.wg.Add(1)
		go worker.Work(r)
	}
}

// drain fails every queued request that never reached a worker.
func (s *Scheduler) drain() {
	for s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		s.pending.Add(-1)
		r.c <- models.Result[any]{Err: context.Canceled}
	}
}
