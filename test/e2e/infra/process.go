package infra

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/pkg/client"
)

// ProcessInfraManager runs the worker binary as a child process.
type ProcessInfraManager struct {
	binary string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	logs   *lockedBuffer
	waitCh chan error
}

func NewProcessInfraManager(binary string) *ProcessInfraManager {
	return &ProcessInfraManager{binary: binary}
}

func (p *ProcessInfraManager) StartWorker(cfg WorkerConfig) (*client.Client, error) {
	if p.cmd != nil {
		return nil, errors.New("worker already started")
	}

	cmd := exec.Command(p.binary, cfg.args()...)
	logs := &lockedBuffer{}
	cmd.Stderr = logs

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", p.binary, err)
	}
	zap.S().Infow("worker started", "pid", cmd.Process.Pid, "args", cmd.Args)

	p.cmd = cmd
	p.stdin = stdin
	p.logs = logs
	p.waitCh = make(chan error, 1)

	c := client.New(stdin, stdout)
	go func() {
		// stdout must be fully read before Wait
		<-c.Done()
		p.waitCh <- cmd.Wait()
	}()

	return c, nil
}

func (p *ProcessInfraManager) CloseInput() error {
	if p.stdin == nil {
		return errors.New("worker not started")
	}
	return p.stdin.Close()
}

func (p *ProcessInfraManager) Signal(sig os.Signal) error {
	if p.cmd == nil {
		return errors.New("worker not started")
	}
	return p.cmd.Process.Signal(sig)
}

func (p *ProcessInfraManager) Wait(timeout time.Duration) error {
	if p.cmd == nil {
		return errors.New("worker not started")
	}
	select {
	case err := <-p.waitCh:
		p.waitCh <- err
		return err
	case <-time.After(timeout):
		return fmt.Errorf("worker still running after %s", timeout)
	}
}

func (p *ProcessInfraManager) Logs() string {
	if p.logs == nil {
		return ""
	}
	return p.logs.String()
}

// RemoveWorker kills the worker if it is still running and forgets it.
func (p *ProcessInfraManager) RemoveWorker() error {
	if p.cmd == nil {
		return nil
	}
	if err := p.Wait(0); err != nil {
		_ = p.cmd.Process.Kill()
		_ = p.stdin.Close()
	}
	p.cmd = nil
	p.stdin = nil
	return nil
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
