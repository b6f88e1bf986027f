package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"qtermsim/internal/config"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	cfgPath  string
	logLevel string
	logFile  string

	cfg      config.Config
	logger   *log.Logger
	logSink  io.Writer
	closeLog func() error
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qtermsim",
		Short: "Simulate quantum circuits on dense statevectors",
		Long: `qtermsim builds n-qubit circuits from Hadamard, Pauli, Phase, CNOT and
Swap gates and evolves statevectors through them.

Without a subcommand it opens the interactive console.

Examples:
  qtermsim                                   # interactive console
  qtermsim run --qubits 2 --op h:0 --op cx:0,1
  qtermsim run --qasm bell.qasm --all-basis
  qtermsim gates                             # gate matrices
  qtermsim basis --qubits 3 --bell           # standard and Bell bases`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/qtermsim/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides the config file)")
	pf.StringVar(&a.logFile, "log-file", "", "append logs to this file instead of stderr")

	root.AddCommand(
		a.newRunCmd(),
		a.newGatesCmd(),
		a.newBasisCmd(),
		a.newTUICmd(),
		a.newConfigCmd(),
	)
	return root
}

// configPath returns the --config value or the per-user default.
func (a *app) configPath() (string, error) {
	if a.cfgPath != "" {
		return a.cfgPath, nil
	}
	return config.DefaultPath()
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, err := a.configPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.logSink = cmd.ErrOrStderr()
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open the log file: %w", err)
		}
		a.logSink = f
		a.closeLog = f.Close
	}
	a.logger = log.NewWithOptions(a.logSink, log.Options{
		Prefix:          "qtermsim",
		Level:           cfg.Level(),
		ReportTimestamp: a.logFile != "",
	})
	a.logger.Debug("config loaded", "path", path, "qubits", cfg.Qubits, "max_qubits", cfg.MaxQubits)
	return nil
}

// execute runs root, then closes the log file even when RunE failed.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}
