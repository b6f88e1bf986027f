package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qtermsim/internal/circuit"
	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/statevector"
)

func (a *app) newGatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "Print the supported gates and their matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			prec := a.cfg.Precision
			for _, g := range circuit.GateInfo() {
				m := g.Matrix
				fmt.Fprintf(out, "%s  %s\n%s\n", g.Name, g.Spec, g.Description)
				fmt.Fprintln(out, format.Matrix(m.Rows(), m.Cols(), m.Elements(), prec))
			}

			h := gate.Hadamard2()
			hh, err := h.Mul(h)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "H × H equals I: %t\n", hh.ApproxEqual(gate.Identity2(), statevector.Epsilon))
			return nil
		},
	}
}
