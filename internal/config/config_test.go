package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/config"
)

var _ = Describe("Configuration", func() {
	It("should apply defaults", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults()

		Expect(cfg.Worker.NumWorkers).To(Equal(64))
		Expect(cfg.Worker.MaxPending).To(Equal(0))
		Expect(cfg.Worker.MinDelay).To(Equal(time.Second))
		Expect(cfg.Worker.MaxDelay).To(Equal(4 * time.Second))
		Expect(cfg.Worker.SendMaxTries).To(Equal(uint(3)))
		Expect(cfg.Worker.SendRetryDelay).To(Equal(50 * time.Millisecond))
		Expect(cfg.Worker.Processor).To(Equal(config.ProcessorDictionary))
		Expect(cfg.Worker.DrainTimeout).To(Equal(5 * time.Second))
		Expect(cfg.Server.ServerMode).To(Equal("dev"))
		Expect(cfg.Server.HTTPPort).To(Equal(0))
		Expect(cfg.Store.Path).To(BeEmpty())
		Expect(cfg.LogFormat).To(Equal(config.LogFormatConsole))
		Expect(cfg.LogLevel).To(Equal("info"))

		Expect(cfg.Validate()).To(Succeed())
	})

	It("should let options override defaults", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.WithWorker(*config.NewWorkerWithOptionsAndDefaults(
				config.WithNumWorkers(8),
				config.WithProcessor(config.ProcessorIdentity),
			)),
			config.WithLogLevel("debug"),
		)

		Expect(cfg.Worker.NumWorkers).To(Equal(8))
		Expect(cfg.Worker.Processor).To(Equal(config.ProcessorIdentity))
		Expect(cfg.Worker.MaxDelay).To(Equal(4 * time.Second))
		Expect(cfg.LogLevel).To(Equal("debug"))
	})

	It("should expose every section in the debug map", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults()
		Expect(cfg.DebugMap()).To(HaveKey("Worker"))
		Expect(cfg.DebugMap()).To(HaveKey("Server"))
		Expect(cfg.DebugMap()).To(HaveKey("Store"))
		Expect(cfg.Worker.DebugMap()).To(HaveKey("NumWorkers"))
	})

	DescribeTable("Validate",
		func(mutate func(*config.Configuration), valid bool) {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			mutate(cfg)
			if valid {
				Expect(cfg.Validate()).To(Succeed())
			} else {
				Expect(cfg.Validate()).To(HaveOccurred())
			}
		},
		Entry("zero workers", func(c *config.Configuration) { c.Worker.NumWorkers = 0 }, false),
		Entry("negative max pending", func(c *config.Configuration) { c.Worker.MaxPending = -1 }, false),
		Entry("inverted delay interval", func(c *config.Configuration) {
			c.Worker.MinDelay = 5 * time.Second
		}, false),
		Entry("equal delay bounds", func(c *config.Configuration) {
			c.Worker.MinDelay = time.Second
			c.Worker.MaxDelay = time.Second
		}, true),
		Entry("zero send tries", func(c *config.Configuration) { c.Worker.SendMaxTries = 0 }, false),
		Entry("single send try", func(c *config.Configuration) { c.Worker.SendMaxTries = 1 }, true),
		Entry("negative drain timeout", func(c *config.Configuration) { c.Worker.DrainTimeout = -time.Second }, false),
		Entry("unknown processor", func(c *config.Configuration) { c.Worker.Processor = "upper" }, false),
		Entry("unknown server mode", func(c *config.Configuration) { c.Server.ServerMode = "staging" }, false),
		Entry("port out of range", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }, false),
		Entry("json log format", func(c *config.Configuration) { c.LogFormat = config.LogFormatJSON }, true),
		Entry("unknown log format", func(c *config.Configuration) { c.LogFormat = "xml" }, false),
	)
})
