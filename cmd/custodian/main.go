package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/custodian/cleaners/demo"
	"github.com/wdm0006/custodian/internal/logging"
	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/pipeline"
	"github.com/wdm0006/custodian/pkg/registry"
)

var version = "0.1.0-dev"

var (
	flagConfig  string
	flagJSON    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "custodian",
	Short: "Run data cleaners and validate their output",
	Long: `custodian discovers registered data cleaners, runs them, validates the
cleaned output against standard and per-cleaner checks, and persists the
result. One broken cleaner never sinks the rest.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app is the composition root: every registry is built here, once, and
// read-only afterwards.
type app struct {
	log    *zap.SugaredLogger
	cfg    pipeline.Config
	reg    *registry.Registry
	checks *check.Registry
	runner *pipeline.Runner
}

func newApp() (*app, error) {
	log, err := logging.New(flagJSON, flagVerbose)
	if err != nil {
		return nil, err
	}
	cfg, err := pipeline.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	checks := check.Builtins()
	reg := registry.New(log, builtinSource())
	runner := pipeline.New(reg, check.NewRunner(checks, log), cfg, log)
	return &app{log: log, cfg: cfg, reg: reg, checks: checks, runner: runner}, nil
}

func builtinSource() registry.Source {
	return registry.Source{
		Name: "builtin",
		Registrations: []registry.Registration{
			demo.Registration(),
		},
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "custodian.toml", "path to orchestrator config")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json-logs", false, "emit JSON logs")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(listCmd, infoCmd, runCmd, checkCmd, checksCmd)
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
