package scheduler_test

import (
	"context"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/models"
	"github.com/kubev2v/ipc-worker/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler(1)

			work := func(ctx context.Context) (any, error) {
				return "done", nil
			}

			future := s.AddWork(work)
			Expect(future).NotTo(BeNil())

			var result models.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				work := func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				}
				s.AddWork(work)
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result models.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})

	Describe("Completion order", func() {
		// Given two work items where the first one takes longer
		// When both are submitted on a pool with two workers
		// Then the second future should resolve before the first one
		It("should not tie completion order to submission order", func() {
			s = scheduler.NewScheduler(2)

			order := make(chan string, 2)
			slow := s.AddWork(func(ctx context.Context) (any, error) {
				time.Sleep(200 * time.Millisecond)
				order <- "slow"
				return "slow", nil
			})
			fast := s.AddWork(func(ctx context.Context) (any, error) {
				order <- "fast"
				return "fast", nil
			})

			Eventually(fast.C(), 1*time.Second).Should(Receive())
			Eventually(slow.C(), 1*time.Second).Should(Receive())
			Expect(<-order).To(Equal("fast"))
			Expect(<-order).To(Equal("slow"))
		})
	})

	Describe("Panic recovery", func() {
		It("should report a panic as an error result and keep the worker", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result models.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("worker panicked: boom")))

			next := s.AddWork(func(ctx context.Context) (any, error) {
				return "still alive", nil
			})
			Eventually(next.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("still alive"))
		})
	})

	Describe("Pending", func() {
		// Given a single worker blocked on a work item
		// When two more items are queued
		// Then Pending should count the running and the queued items
		It("should count queued and running work", func() {
			s = scheduler.NewScheduler(1)

			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				<-unblock
				return nil, nil
			}

			for range 3 {
				s.AddWork(work)
			}
			Eventually(s.Pending, 1*time.Second).Should(Equal(3))

			close(unblock)
			Eventually(s.Pending, 1*time.Second).Should(Equal(0))
		})

		It("should cancel queued work that never started when closing", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			running := s.AddWork(func(ctx context.Context) (any, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			Eventually(started, 1*time.Second).Should(BeClosed())

			ran := make(chan struct{}, 1)
			queued := s.AddWork(func(ctx context.Context) (any, error) {
				ran <- struct{}{}
				return nil, nil
			})

			s.Close()
			s = nil // prevent AfterEach from closing again

			var result models.Result[any]
			Eventually(running.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
			Eventually(queued.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
			Consistently(ran, 100*time.Millisecond).ShouldNot(Receive())
		})
	})
})
