package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"qtermsim/internal/circuit"
	"qtermsim/internal/format"
	"qtermsim/internal/qerr"
	"qtermsim/internal/render"
	"qtermsim/internal/statevector"
)

type runOptions struct {
	qubits   int
	ops      []string
	qasmPath string
	state    string
	trace    bool
	allBasis bool
	workers  int
	diagram  bool
	compact  bool
}

// newRunCmd builds "run", which evolves a state through a circuit given as
// op flags, a QASM file, or both.
func (a *app) newRunCmd() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a circuit and print the evolved state",
		Long: `Build a circuit from --op flags and/or an OpenQASM file and evolve an
initial state through it.

Ops are applied in flag order after any QASM statements:
  h:0,1      Hadamard on qubits 0 and 1
  x:1        Pauli-X (also y:, z:)
  cx:0,1     CNOT with control 0 and target 1
  swap:0,2   Swap qubits 0 and 2
  p:0:pi/4   Phase on qubit 0 (degrees with 45deg or angle_unit: degrees)

States: 010, std:010, bell:00, ghz, w, random, amps:0.7071,0,0,0.7071`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("qubits") && o.qubits < 1 {
				return fmt.Errorf("%w: --qubits must be at least 1", qerr.ErrInvalidArgument)
			}
			if !cmd.Flags().Changed("trace") {
				o.trace = a.cfg.Trace
			}
			return a.run(cmd, o)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.qubits, "qubits", "n", 0, "circuit width (default from config, or the QASM qreg)")
	f.StringArrayVar(&o.ops, "op", nil, "gate to append, e.g. h:0 or cx:0,1 (repeatable)")
	f.StringVar(&o.qasmPath, "qasm", "", "read the circuit from an OpenQASM 2.0 file")
	f.StringVar(&o.state, "state", "", "initial state (default all zeros)")
	f.BoolVar(&o.trace, "trace", false, "print the state after every gate")
	f.BoolVar(&o.allBasis, "all-basis", false, "evolve every standard basis state")
	f.IntVar(&o.workers, "workers", runtime.NumCPU(), "parallel evolutions for --all-basis")
	f.BoolVar(&o.diagram, "diagram", false, "draw the circuit before the results")
	f.BoolVar(&o.compact, "compact", false, "pack gates on disjoint qubits into one diagram column")
	cmd.MarkFlagsMutuallyExclusive("state", "all-basis")
	cmd.MarkFlagsMutuallyExclusive("trace", "all-basis")
	return cmd
}

func (a *app) run(cmd *cobra.Command, o *runOptions) error {
	c, err := a.buildCircuit(o)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	prec := a.cfg.Precision
	n := c.Qubits()

	if o.diagram {
		fmt.Fprintln(out, render.Diagram(c.Ops(), n, render.Options{Compact: o.compact}))
	}

	if o.allBasis {
		return a.runAllBasis(cmd, out, c, o.workers)
	}

	initial, err := statevector.ParseSpec(n, o.state)
	if err != nil {
		return err
	}
	opts := []circuit.Option{circuit.WithContext(cmd.Context())}
	if o.trace {
		fmt.Fprintf(out, "Initial state: %s\n", format.Row(initial.Amplitudes(), prec))
		opts = append(opts, circuit.WithTrace(func(st circuit.Step) {
			a.logger.Debug("step", "step", st.Index, "kind", st.Op.Kind, "targets", st.Op.Targets)
			fmt.Fprintf(out, "Step %d: %s %v\n%s\n", st.Index+1, st.Op.Kind, st.Op.Targets, format.Row(st.State.Amplitudes(), prec))
		}))
	}
	final, err := circuit.Evolve(initial, c, opts...)
	if err != nil {
		return err
	}
	a.logger.Debug("evolved", "qubits", n, "gates", c.Len(), "norm", final.Norm())

	fmt.Fprintln(out, "Final state:")
	fmt.Fprint(out, format.Column(final.Amplitudes(), prec))
	fmt.Fprintln(out, "Probabilities:")
	fmt.Fprintln(out, render.Probabilities(final, prec))
	fmt.Fprintln(out, "Qubits:")
	fmt.Fprintln(out, render.QubitMarginals(final, prec))
	return nil
}

func (a *app) runAllBasis(cmd *cobra.Command, out io.Writer, c *circuit.Circuit, workers int) error {
	n := c.Qubits()
	labels, err := statevector.BasisLabels(n)
	if err != nil {
		return err
	}
	states := make([]*statevector.Statevector, len(labels))
	for i := range labels {
		if states[i], err = statevector.BasisState(n, i); err != nil {
			return err
		}
	}
	a.logger.Debug("evolving basis", "states", len(states), "workers", workers)
	results, err := circuit.EvolveBatch(cmd.Context(), states, c, workers)
	if err != nil {
		return err
	}
	for i, l := range labels {
		fmt.Fprintf(out, "|%s⟩ -> %s\n", l, format.Row(results[i].Amplitudes(), a.cfg.Precision))
	}
	return nil
}

// buildCircuit reads the QASM file, if any, then appends every --op.
func (a *app) buildCircuit(o *runOptions) (*circuit.Circuit, error) {
	var c *circuit.Circuit
	if o.qasmPath != "" {
		data, err := os.ReadFile(o.qasmPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read the QASM file: %w", err)
		}
		if c, err = circuit.ParseQASMLimit(string(data), a.cfg.MaxQubits); err != nil {
			return nil, fmt.Errorf("%s: %w", o.qasmPath, err)
		}
		if o.qubits != 0 && o.qubits != c.Qubits() {
			return nil, fmt.Errorf("%w: --qubits %d but %s declares %d", qerr.ErrInvalidArgument, o.qubits, o.qasmPath, c.Qubits())
		}
	} else {
		n := o.qubits
		if n == 0 {
			n = a.cfg.Qubits
		}
		if n > a.cfg.MaxQubits {
			return nil, fmt.Errorf("%w: %d qubits exceeds the configured maximum of %d", qerr.ErrResourceExhausted, n, a.cfg.MaxQubits)
		}
		var err error
		if c, err = circuit.New(n); err != nil {
			return nil, err
		}
	}
	if c.Qubits() > a.cfg.MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits exceeds the configured maximum of %d", qerr.ErrResourceExhausted, c.Qubits(), a.cfg.MaxQubits)
	}

	for _, raw := range o.ops {
		spec, err := circuit.ParseOpSpecIn(raw, a.cfg.Unit())
		if err != nil {
			return nil, err
		}
		if err := spec.Apply(c); err != nil {
			return nil, fmt.Errorf("op %q: %w", raw, err)
		}
		a.logger.Debug("op added", "op", spec.String())
	}
	a.logger.Debug("circuit built", "qubits", c.Qubits(), "gates", c.Len())
	return c, nil
}
