package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/config"
	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/pkg/client"
)

type driveOptions struct {
	count    int
	payloads []string
	timeout  time.Duration
}

func NewDriveCmd(cfg *config.Configuration) *cobra.Command {
	opts := driveOptions{
		count:    10,
		payloads: []string{"hello", "world", "gopher"},
		timeout:  30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Spawn a worker and send it generated requests",
		Long: `Starts "ipc-worker run" as a child process, sends --count requests with
random ids cycling over --payload, and prints each response as it arrives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return drive(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	registerWorkerFlags(cmd.Flags(), cfg)
	cmd.Flags().IntVar(&opts.count, "count", opts.count, "number of requests to send")
	cmd.Flags().StringSliceVar(&opts.payloads, "payload", opts.payloads, "payloads to cycle through")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "time allowed for all responses")

	return cmd
}

func drive(ctx context.Context, cfg *config.Configuration, opts driveOptions, out io.Writer) error {
	log := zap.S().Named("drive")

	if opts.count <= 0 || len(opts.payloads) == 0 {
		return errors.New("drive needs a positive count and at least one payload")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	child := exec.Command(exe, append([]string{"run"}, workerArgs(cfg)...)...)
	child.Stderr = os.Stderr
	stdin, err := child.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := child.StdoutPipe()
	if err != nil {
		return err
	}
	if err := child.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	log.Infow("worker started", "pid", child.Process.Pid, "requests", opts.count)

	c := client.New(stdin, stdout)

	type outcome struct {
		id      transport.Token
		payload string
		resp    client.Response
		err     error
		elapsed time.Duration
	}
	results := make(chan outcome, opts.count)

	start := time.Now()
	for i := range opts.count {
		id := transport.StringToken(uuid.NewString())
		payload := opts.payloads[i%len(opts.payloads)]

		go func() {
			resp, err := c.Call(ctx, id, payload)
			results <- outcome{id: id, payload: payload, resp: resp, err: err, elapsed: time.Since(start)}
		}()
	}

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var failures int
	for range opts.count {
		o := <-results
		switch {
		case o.err != nil:
			failures++
			fmt.Fprintf(out, "%s %s %q: %v\n", bad("✗"), o.id, o.payload, o.err)
		case o.resp.Failed():
			failures++
			fmt.Fprintf(out, "%s %s %q: %s %s\n", bad("✗"), o.id, o.payload, o.resp.Err, dim(o.elapsed.Round(time.Millisecond)))
		default:
			fmt.Fprintf(out, "%s %s %q -> %s %s\n", ok("✓"), o.id, o.payload, o.resp.Result, dim(o.elapsed.Round(time.Millisecond)))
		}
	}

	// closing stdin lets the worker drain and exit
	_ = stdin.Close()
	select {
	case <-c.Done():
	case <-ctx.Done():
		log.Warnw("worker did not exit in time, killing it", "pid", child.Process.Pid)
		_ = child.Process.Kill()
	}
	waitErr := child.Wait()

	fmt.Fprintf(out, "%d/%d succeeded in %s\n", opts.count-failures, opts.count, time.Since(start).Round(time.Millisecond))

	if waitErr != nil {
		return fmt.Errorf("worker exited: %w", waitErr)
	}
	if failures > 0 {
		return fmt.Errorf("%d requests failed", failures)
	}
	return nil
}
