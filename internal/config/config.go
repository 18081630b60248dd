package config

import (
	"errors"
	"fmt"
	"time"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Worker Server Store

const (
	ProcessorDictionary = "dictionary"
	ProcessorIdentity   = "identity"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Configuration struct {
	Worker    Worker `debugmap:"visible"`
	Server    Server `debugmap:"visible"`
	Store     Store  `debugmap:"visible"`
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"info"`
}

type Worker struct {
	NumWorkers     int           `debugmap:"visible" default:"64"`
	MaxPending     int           `debugmap:"visible" default:"0"`
	MinDelay       time.Duration `debugmap:"visible" default:"1s"`
	MaxDelay       time.Duration `debugmap:"visible" default:"4s"`
	SendMaxTries   uint          `debugmap:"visible" default:"3"`
	SendRetryDelay time.Duration `debugmap:"visible" default:"50ms"`
	Processor      string        `debugmap:"visible" default:"dictionary"`
	DrainTimeout   time.Duration `debugmap:"visible" default:"5s"`
}

type Server struct {
	ServerMode string `debugmap:"visible" default:"dev"`
	HTTPPort   int    `debugmap:"visible" default:"0"`
}

type Store struct {
	Path string `debugmap:"visible" default:""`
}

func (c *Configuration) Validate() error {
	var errs []error

	if c.Worker.NumWorkers <= 0 {
		errs = append(errs, fmt.Errorf("num-workers must be positive, got %d", c.Worker.NumWorkers))
	}
	if c.Worker.MaxPending < 0 {
		errs = append(errs, fmt.Errorf("max-pending must not be negative, got %d", c.Worker.MaxPending))
	}
	if c.Worker.MinDelay < 0 || c.Worker.MaxDelay < c.Worker.MinDelay {
		errs = append(errs, fmt.Errorf("invalid delay interval [%s, %s)", c.Worker.MinDelay, c.Worker.MaxDelay))
	}
	if c.Worker.SendMaxTries < 1 {
		errs = append(errs, errors.New("send-max-tries must be at least 1"))
	}
	if c.Worker.DrainTimeout < 0 {
		errs = append(errs, fmt.Errorf("drain-timeout must not be negative, got %s", c.Worker.DrainTimeout))
	}
	switch c.Worker.Processor {
	case ProcessorDictionary, ProcessorIdentity:
	default:
		errs = append(errs, fmt.Errorf("unknown processor %q", c.Worker.Processor))
	}
	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode))
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid http port %d", c.Server.HTTPPort))
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
