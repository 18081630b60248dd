// Package config defines the configuration structure of the ipc-worker.
//
// Configuration is organized into sections and uses code generation via
// optgen to create functional option helpers.
//
//	Configuration
//	├── Worker         - task scheduling, simulated delay, send retry
//	├── Server         - optional admin HTTP server
//	├── Store          - dictionary storage (DuckDB)
//	├── LogFormat      - console or json
//	└── LogLevel       - logging verbosity
//
// # Worker Configuration
//
//	┌────────────────┬──────────────┬──────────────────────────────────────────┐
//	│ Field          │ Default      │ Description                              │
//	├────────────────┼──────────────┼──────────────────────────────────────────┤
//	│ NumWorkers     │ 64           │ Tasks processed concurrently             │
//	│ MaxPending     │ 0            │ Reject above this many pending (0 = off) │
//	│ MinDelay       │ 1s           │ Lower bound of the simulated delay       │
//	│ MaxDelay       │ 4s           │ Upper bound (exclusive)                  │
//	│ SendMaxTries   │ 3            │ Send attempts before dropping a response │
//	│ SendRetryDelay │ 50ms         │ Initial backoff between attempts         │
//	│ Processor      │ "dictionary" │ "dictionary" or "identity"               │
//	│ DrainTimeout   │ 5s           │ Grace period after stdin closes          │
//	└────────────────┴──────────────┴──────────────────────────────────────────┘
//
// # Server Configuration
//
//	┌────────────┬─────────┬──────────────────────────────────────┐
//	│ Field      │ Default │ Description                          │
//	├────────────┼─────────┼──────────────────────────────────────┤
//	│ ServerMode │ "dev"   │ "prod" or "dev" (gin mode)           │
//	│ HTTPPort   │ 0       │ Admin server port, 0 disables it     │
//	└────────────┴─────────┴──────────────────────────────────────┘
//
// # Store Configuration
//
// Path is the DuckDB file backing the dictionary. Empty keeps it in memory
// for the lifetime of the process.
//
// # Code Generation
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Worker Server Store
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithWorker(*config.NewWorkerWithOptionsAndDefaults(
//	        config.WithNumWorkers(8),
//	        config.WithProcessor(config.ProcessorIdentity),
//	    )),
//	    config.WithLogLevel("debug"),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// All fields are tagged with `debugmap:"visible"` so the whole tree can be
// logged at startup:
//
//	zap.S().Infow("starting worker", "config", cfg.DebugMap())
package config
