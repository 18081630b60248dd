package main

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/ipc-worker/internal/config"
)

const envPrefix = "IPC_WORKER"

func NewRootCmd() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "ipc-worker",
		Short:        "Asynchronous worker answering (id, payload) messages over stdin/stdout",
		SilenceUsage: true,
		PersistentPreRunE: cobrautil.CommandStack(
			readConfigFile(&configFile),
			cobrautil.SyncViperPreRunE(envPrefix),
			func(cmd *cobra.Command, args []string) error {
				return initLogger(cfg.LogLevel, cfg.LogFormat)
			},
		),
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a configuration file whose keys are flag names")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")

	rootCmd.AddCommand(NewRunCmd(cfg))
	rootCmd.AddCommand(NewDriveCmd(cfg))

	return rootCmd
}

func readConfigFile(path *string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		if *path == "" {
			return nil
		}
		viper.SetConfigFile(*path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", *path, err)
		}
		return nil
	}
}

// registerWorkerFlags binds the worker settings shared by run and drive.
func registerWorkerFlags(flags *pflag.FlagSet, cfg *config.Configuration) {
	flags.IntVar(&cfg.Worker.NumWorkers, "num-workers", cfg.Worker.NumWorkers, "number of tasks processed concurrently")
	flags.IntVar(&cfg.Worker.MaxPending, "max-pending", cfg.Worker.MaxPending, "reject requests once this many tasks are pending (0 means unlimited)")
	flags.DurationVar(&cfg.Worker.MinDelay, "min-delay", cfg.Worker.MinDelay, "lower bound of the simulated work delay")
	flags.DurationVar(&cfg.Worker.MaxDelay, "max-delay", cfg.Worker.MaxDelay, "upper bound (exclusive) of the simulated work delay")
	flags.UintVar(&cfg.Worker.SendMaxTries, "send-max-tries", cfg.Worker.SendMaxTries, "attempts to send a response before dropping it")
	flags.DurationVar(&cfg.Worker.SendRetryDelay, "send-retry-delay", cfg.Worker.SendRetryDelay, "initial backoff between send attempts")
	flags.StringVar(&cfg.Worker.Processor, "processor", cfg.Worker.Processor, "payload processor (dictionary, identity)")
	flags.DurationVar(&cfg.Worker.DrainTimeout, "drain-timeout", cfg.Worker.DrainTimeout, "time allowed to finish pending tasks once stdin is closed")
	flags.StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "duckdb file backing the dictionary (empty means in memory)")
}

// workerArgs renders the worker settings as flags for a child process.
func workerArgs(cfg *config.Configuration) []string {
	return []string{
		"--log-level", cfg.LogLevel,
		"--log-format", cfg.LogFormat,
		"--num-workers", fmt.Sprint(cfg.Worker.NumWorkers),
		"--max-pending", fmt.Sprint(cfg.Worker.MaxPending),
		"--min-delay", cfg.Worker.MinDelay.String(),
		"--max-delay", cfg.Worker.MaxDelay.String(),
		"--send-max-tries", fmt.Sprint(cfg.Worker.SendMaxTries),
		"--send-retry-delay", cfg.Worker.SendRetryDelay.String(),
		"--processor", cfg.Worker.Processor,
		"--drain-timeout", cfg.Worker.DrainTimeout.String(),
		"--store-path", cfg.Store.Path,
	}
}

// initLogger installs the global logger. Logs go to stderr, stdout carries
// the IPC frames.
func initLogger(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	switch format {
	case config.LogFormatJSON:
		zcfg = zap.NewProductionConfig()
	case config.LogFormatConsole:
		zcfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}
