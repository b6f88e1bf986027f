package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"qtermsim/internal/tui"
)

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive console (the default)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

// runTUI starts the console. The terminal owns stderr while it runs, so logs
// are kept only when --log-file is set.
func (a *app) runTUI(*cobra.Command, []string) error {
	logger := a.logger
	if a.logFile == "" {
		logger = log.New(io.Discard)
	}
	logger.Info("console started", "qubits", a.cfg.Qubits)
	return tui.Run(a.cfg, logger)
}
