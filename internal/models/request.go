package models

import "time"

// Request is an inbound unit of work as delivered by the parent process.
// ID is an opaque correlation token: it is never inspected, only copied.
type Request[ID comparable] struct {
	ID      ID
	Payload string
}

// Response carries the outcome of a Request back to the parent.
// Err is empty on success.
type Response[ID comparable] struct {
	ID     ID
	Result string
	Err    string
}

func (r Response[ID]) Failed() bool {
	return r.Err != ""
}

// NewResponse builds a successful response for id.
func NewResponse[ID comparable](id ID, result string) Response[ID] {
	return Response[ID]{ID: id, Result: result}
}

// NewErrorResponse builds a failure response for id.
func NewErrorResponse[ID comparable](id ID, err error) Response[ID] {
	return Response[ID]{ID: id, Err: err.Error()}
}

// PendingTask is the scheduler-side view of a request waiting for completion.
type PendingTask[ID comparable] struct {
	ID          ID
	Payload     string
	ScheduledAt time.Time
	DueAt       time.Time
}
