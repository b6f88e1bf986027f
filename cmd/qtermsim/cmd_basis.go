package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qtermsim/internal/qerr"
	"qtermsim/internal/render"
)

func (a *app) newBasisCmd() *cobra.Command {
	var (
		qubits int
		bell   bool
	)
	cmd := &cobra.Command{
		Use:   "basis",
		Short: "Print the standard basis, and optionally the Bell basis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("qubits") {
				qubits = a.cfg.Qubits
			}
			if qubits < 1 {
				return fmt.Errorf("%w: --qubits must be at least 1", qerr.ErrInvalidArgument)
			}
			if qubits > a.cfg.MaxQubits {
				return fmt.Errorf("%w: %d qubits exceeds the configured maximum of %d", qerr.ErrResourceExhausted, qubits, a.cfg.MaxQubits)
			}
			out := cmd.OutOrStdout()
			std, err := render.StdBasis(qubits, a.cfg.Precision)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, std)
			if bell {
				b, err := render.BellBasis(a.cfg.Precision)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, b)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&qubits, "qubits", "n", 0, "number of qubits (default from config)")
	cmd.Flags().BoolVar(&bell, "bell", false, "also print the Bell basis")
	return cmd
}
