// Package transport moves requests and responses between the worker and its
// parent process as newline-delimited JSON arrays.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/models"
)

// Handler is invoked once per inbound request.
type Handler[ID comparable] func(req models.Request[ID])

// Sender is the send primitive used to emit responses.
type Sender[ID comparable] interface {
	Send(ctx context.Context, resp models.Response[ID]) error
}

// Stdio is the worker side of the channel: requests are read from r and
// responses written to w.
type Stdio struct {
	r *FrameReader
	w *FrameWriter
}

func NewStdio(r io.Reader, w io.Writer) *Stdio {
	return &Stdio{
		r: NewFrameReader(r),
		w: NewFrameWriter(w),
	}
}

// Listen calls handler for every request until the reader is exhausted or
// ctx is done. Malformed frames are logged and skipped. A clean end of input
// returns nil.
func (s *Stdio) Listen(ctx context.Context, handler Handler[Token]) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frame, err := s.r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, ErrMalformedFrame) {
			zap.S().Named("transport").Warnw("dropping malformed frame", "error", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read frame: %w", err)
		}

		req, err := UnmarshalRequest(frame)
		if err != nil {
			zap.S().Named("transport").Warnw("dropping malformed frame", "frame", string(frame), "error", err)
			continue
		}

		handler(req)
	}
}

func (s *Stdio) Send(ctx context.Context, resp models.Response[Token]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frame, err := MarshalResponse(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return s.w.Write(frame)
}
