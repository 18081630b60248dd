package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/internal/config"
	"github.com/kubev2v/ipc-worker/internal/handlers"
	"github.com/kubev2v/ipc-worker/internal/processor"
	"github.com/kubev2v/ipc-worker/internal/server"
	"github.com/kubev2v/ipc-worker/internal/services"
	"github.com/kubev2v/ipc-worker/internal/store"
	"github.com/kubev2v/ipc-worker/internal/store/migrations"
	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/internal/worker"
	"github.com/kubev2v/ipc-worker/pkg/simulator"
)

// stopTimeout bounds the wait for the shutdown hook once the worker is told
// to stop.
const stopTimeout = 2 * time.Second

func NewRunCmd(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve requests read from stdin and write responses to stdout",
		Long: `Reads newline-delimited JSON requests [id, payload] from stdin and writes
[id, result] (or [id, null, error]) to stdout once each task completes.
Responses may arrive in any order. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWorker(ctx, cfg, os.Stdin, os.Stdout)
		},
	}

	registerWorkerFlags(cmd.Flags(), cfg)
	cmd.Flags().StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "admin server mode (dev, prod)")
	cmd.Flags().IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "admin server port (0 disables the server)")

	return cmd
}

// runWorker serves until in is exhausted or ctx is done. On end of input the
// pending tasks get DrainTimeout to complete; on ctx cancellation they are
// abandoned.
func runWorker(ctx context.Context, cfg *config.Configuration, in io.Reader, out io.Writer) error {
	log := zap.S().Named("run")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.Infow("starting worker", "config", cfg.DebugMap())

	proc, dictSrv, closeStore, err := newProcessor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stdio := transport.NewStdio(in, out)
	w := worker.New[transport.Token](workerCtx, stdio, proc,
		worker.WithNumWorkers(cfg.Worker.NumWorkers),
		worker.WithMaxPending(cfg.Worker.MaxPending),
		worker.WithDelaySource(simulator.NewUniform(cfg.Worker.MinDelay, cfg.Worker.MaxDelay)),
		worker.WithSendRetry(cfg.Worker.SendMaxTries, cfg.Worker.SendRetryDelay),
		worker.WithRegisterer(reg),
	)
	listener := worker.NewListener[transport.Token](w)

	if cfg.Server.HTTPPort > 0 {
		// gin prints debug output to stdout, which carries the frames
		gin.DefaultWriter = os.Stderr
		gin.DefaultErrorWriter = os.Stderr

		h := handlers.New(w, dictSrv)
		srv, err := server.NewServer(cfg, reg, func(router *gin.RouterGroup) {
			h.RegisterRoutes(router)
		})
		if err != nil {
			return fmt.Errorf("failed to create admin server: %w", err)
		}
		go func() {
			if err := srv.Start(workerCtx); err != nil {
				log.Errorw("admin server failed", "error", err)
			}
		}()
		defer func() {
			if err := srv.Stop(context.Background()); err != nil {
				log.Warnw("failed to stop admin server", "error", err)
			}
		}()
	}

	// a read blocked on stdin does not observe ctx
	listenDone := make(chan error, 1)
	go func() {
		listenDone <- stdio.Listen(workerCtx, listener.Handle)
	}()

	var listenErr error
	select {
	case <-ctx.Done():
		log.Infow("termination requested", "pending", w.Pending())
	case listenErr = <-listenDone:
		if listenErr != nil {
			log.Errorw("channel failed", "error", listenErr)
		}
	}

	if ctx.Err() == nil && listenErr == nil {
		log.Infow("channel closed, draining pending tasks", "pending", w.Pending(), "timeout", cfg.Worker.DrainTimeout)
		drainCtx, drainCancel := context.WithTimeout(ctx, cfg.Worker.DrainTimeout)
		if err := w.Drain(drainCtx); err != nil {
			log.Warnw("drain interrupted", "pending", w.Pending(), "error", err)
		}
		drainCancel()
	}

	cancel()
	select {
	case <-w.Stopped():
	case <-time.After(stopTimeout):
		log.Warnw("worker did not stop in time", "pending", w.Pending())
	}

	stats := w.Stats()
	log.Infow("worker stopped",
		"received", stats.Received,
		"completed", stats.Completed,
		"failed", stats.Failed,
		"abandoned", stats.Abandoned,
		"rejected", stats.Rejected,
		"dropped", stats.Dropped,
	)

	return listenErr
}

func newProcessor(ctx context.Context, cfg *config.Configuration) (processor.Processor, *services.DictionaryService, func(), error) {
	if cfg.Worker.Processor == config.ProcessorIdentity {
		return processor.Identity, nil, func() {}, nil
	}

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		return nil, nil, nil, errors.Join(fmt.Errorf("failed to migrate store: %w", err), db.Close())
	}

	st := store.NewStore(db)
	closeStore := func() {
		if err := st.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			zap.S().Named("run").Warnw("failed to close store", "error", err)
		}
	}

	return processor.NewDictionary(st.Dictionary()), services.NewDictionaryService(st), closeStore, nil
}
