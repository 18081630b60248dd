package worker

import (
	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/models"
)

// Submitter schedules a request for asynchronous processing.
type Submitter[ID comparable] interface {
	Submit(id ID, payload string)
}

// Listener receives requests from the transport and forwards them to the
// scheduler in arrival order. It never waits for processing.
type Listener[ID comparable] struct {
	submitter Submitter[ID]
}

func NewListener[ID comparable](s Submitter[ID]) *Listener[ID] {
	return &Listener[ID]{submitter: s}
}

// Handle is registered as the transport's message hook.
func (l *Listener[ID]) Handle(req models.Request[ID]) {
	zap.S().Named("listener").Infow("worker receiving message", "id", req.ID, "payload", req.Payload)
	l.submitter.Submit(req.ID, req.Payload)
}
