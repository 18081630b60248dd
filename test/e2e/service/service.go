package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/ipc-worker/api/v1"
	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/pkg/client"
)

// WorkerSvc talks to the worker over its stdin/stdout channel.
type WorkerSvc struct {
	client *client.Client
}

func NewWorkerService(c *client.Client) *WorkerSvc {
	return &WorkerSvc{client: c}
}

// Submit sends payload under a fresh id and returns the id with the channel
// receiving its response.
func (s *WorkerSvc) Submit(payload string) (transport.Token, <-chan client.Response, error) {
	id := transport.StringToken(uuid.NewString())
	ch, err := s.client.Send(id, payload)
	if err != nil {
		return id, nil, err
	}
	zap.S().Debugw("request sent", "id", id, "payload", payload)
	return id, ch, nil
}

func (s *WorkerSvc) Call(ctx context.Context, payload string) (client.Response, error) {
	return s.client.Call(ctx, transport.StringToken(uuid.NewString()), payload)
}

func (s *WorkerSvc) InFlight() int {
	return s.client.InFlight()
}

// AdminSvc is an HTTP client for the worker admin API.
type AdminSvc struct {
	baseURL string
	http    *http.Client
}

func NewAdminService(baseURL string) *AdminSvc {
	return &AdminSvc{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *AdminSvc) Health() error {
	resp, err := a.http.Get(a.baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func (a *AdminSvc) Status() (*v1.WorkerStatus, error) {
	resp, err := a.http.Get(a.baseURL + "/api/v1/worker")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("worker stats returned %d", resp.StatusCode)
	}

	var status v1.WorkerStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode worker status: %w", err)
	}
	return &status, nil
}
