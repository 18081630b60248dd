// Package client is the parent side of the worker channel. It writes
// requests to the worker and matches each response to the caller waiting
// for its id, whatever order responses come back in.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/models"
	"github.com/kubev2v/ipc-worker/internal/transport"
)

var ErrClosed = errors.New("worker channel closed")

type Response = models.Response[transport.Token]

type Client struct {
	w       *transport.FrameWriter
	r       *transport.FrameReader
	mu      sync.Mutex
	pending map[transport.Token][]chan Response
	done    chan struct{}
	err     error
}

// New starts reading responses from r. Requests are written to w.
func New(w io.Writer, r io.Reader) *Client {
	c := &Client{
		w:       transport.NewFrameWriter(w),
		r:       transport.NewFrameReader(r),
		pending: make(map[transport.Token][]chan Response),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Send writes the request and returns a channel receiving its response.
// Requests sharing an id are answered in the order their responses arrive.
func (c *Client) Send(id transport.Token, payload string) (<-chan Response, error) {
	ch := make(chan Response, 1)

	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return nil, c.err
	}
	c.pending[id] = append(c.pending[id], ch)
	c.mu.Unlock()

	frame, err := transport.MarshalRequest(models.Request[transport.Token]{ID: id, Payload: payload})
	if err == nil {
		err = c.w.Write(frame)
	}
	if err != nil {
		c.forget(id, ch)
		return nil, fmt.Errorf("failed to send request %s: %w", id, err)
	}
	return ch, nil
}

// Call sends the request and waits for its response. The worker gives no
// delivery guarantee, so ctx is the caller's only timeout.
func (c *Client) Call(ctx context.Context, id transport.Token, payload string) (Response, error) {
	ch, err := c.Send(id, payload)
	if err != nil {
		return Response{}, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-c.done:
		select {
		case resp := <-ch:
			return resp, nil
		default:
			return Response{}, c.Err()
		}
	case <-ctx.Done():
		c.forget(id, ch)
		return Response{}, ctx.Err()
	}
}

// InFlight returns how many requests are still waiting for a response.
func (c *Client) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, waiters := range c.pending {
		n += len(waiters)
	}
	return n
}

// Done is closed once the response stream has ended.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		frame, err := c.r.Next()
		if errors.Is(err, transport.ErrMalformedFrame) {
			zap.S().Named("client").Warnw("dropping malformed response", "error", err)
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrClosed
			}
			c.mu.Lock()
			c.err = err
			c.pending = map[transport.Token][]chan Response{}
			c.mu.Unlock()
			return
		}

		resp, err := transport.UnmarshalResponse(frame)
		if err != nil {
			zap.S().Named("client").Warnw("dropping malformed response", "frame", string(frame), "error", err)
			continue
		}

		if ch, ok := c.take(resp.ID); ok {
			ch <- resp
			continue
		}
		zap.S().Named("client").Warnw("response for unknown id", "id", resp.ID)
	}
}

func (c *Client) take(id transport.Token) (chan Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	waiters := c.pending[id]
	if len(waiters) == 0 {
		return nil, false
	}
	ch := waiters[0]
	if len(waiters) == 1 {
		delete(c.pending, id)
	} else {
		c.pending[id] = waiters[1:]
	}
	return ch, true
}

func (c *Client) forget(id transport.Token, ch <-chan Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	waiters := c.pending[id]
	for i, w := range waiters {
		if w == ch {
			waiters = append(waiters[:i:i], waiters[i+1:]...)
			break
		}
	}
	if len(waiters) == 0 {
		delete(c.pending, id)
	} else {
		c.pending[id] = waiters
	}
}
