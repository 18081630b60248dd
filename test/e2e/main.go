package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kubev2v/ipc-worker/test/e2e/infra"
)

type configuration struct {
	WorkerBinary string
	AdminPort    int
}

var (
	cfg          configuration
	infraManager infra.InfraManager
)

func (c configuration) Validate() error {
	if c.WorkerBinary == "" {
		return errors.New("worker binary is empty")
	}
	if _, err := os.Stat(c.WorkerBinary); err != nil {
		return err
	}
	if c.AdminPort <= 0 || c.AdminPort > 65535 {
		return errors.New("admin port out of range")
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.WorkerBinary, "worker-binary", "bin/ipc-worker", "Path to the ipc-worker binary under test")
	flag.IntVar(&cfg.AdminPort, "admin-port", 18080, "Port used when a test enables the admin server")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	infraManager = infra.NewProcessInfraManager(cfg.WorkerBinary)

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
