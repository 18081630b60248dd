package infra

import (
	"os"
	"time"

	"github.com/kubev2v/ipc-worker/pkg/client"
)

// InfraManager abstracts the lifecycle of the worker under test.
type InfraManager interface {
	StartWorker(cfg WorkerConfig) (*client.Client, error)
	// CloseInput closes the worker's stdin, which lets it drain and exit.
	CloseInput() error
	Signal(sig os.Signal) error
	Wait(timeout time.Duration) error
	Logs() string
	RemoveWorker() error
}

// WorkerConfig holds the flags used to start a worker instance.
type WorkerConfig struct {
	Processor  string // "dictionary" or "identity"
	MinDelay   string // e.g. "100ms"
	MaxDelay   string
	MaxPending int
	HTTPPort   int // 0 keeps the admin server disabled
}

func (c WorkerConfig) args() []string {
	args := []string{"run", "--log-level", "debug"}
	if c.Processor != "" {
		args = append(args, "--processor", c.Processor)
	}
	if c.MinDelay != "" {
		args = append(args, "--min-delay", c.MinDelay)
	}
	if c.MaxDelay != "" {
		args = append(args, "--max-delay", c.MaxDelay)
	}
	if c.MaxPending > 0 {
		args = append(args, "--max-pending", itoa(c.MaxPending))
	}
	if c.HTTPPort > 0 {
		args = append(args, "--http-port", itoa(c.HTTPPort))
	}
	return args
}
