package worker_test

import (
	"context"
	"errors"
	"sync"

	"github.com/kubev2v/ipc-worker/internal/models"
)

// recordingSender captures every response it is asked to send. The first
// failures sends return an error.
type recordingSender[ID comparable] struct {
	mu        sync.Mutex
	failures  int
	attempts  int
	responses chan models.Response[ID]
}

func newRecordingSender[ID comparable]() *recordingSender[ID] {
	return &recordingSender[ID]{responses: make(chan models.Response[ID], 1024)}
}

func (s *recordingSender[ID]) Send(ctx context.Context, resp models.Response[ID]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if s.failures != 0 {
		if s.failures > 0 {
			s.failures--
		}
		return errors.New("broken pipe")
	}
	s.responses <- resp
	return nil
}

func (s *recordingSender[ID]) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []models.Request[string]
}

func (f *fakeSubmitter) Submit(id string, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, models.Request[string]{ID: id, Payload: payload})
}
