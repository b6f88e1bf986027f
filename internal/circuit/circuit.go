// Package circuit records an ordered, append-only list of gate operations on a
// fixed number of qubits and evolves statevectors through it.
package circuit

import (
	"fmt"
	"slices"

	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
)

// Op is one entry of the operation log: the materialized 2^n x 2^n gate and
// the qubits it was built for.
type Op struct {
	Targets []int
	Gate    *gate.Matrix
	Angle   float64 // Phase only

	custom bool
}

// OpInfo is the metadata a renderer needs for one operation. For CNOT the
// targets are (control, target); for Swap they are the two exchanged qubits.
type OpInfo struct {
	Kind    gate.Kind
	Targets []int
	Angle   float64
	Custom  bool
}

// Circuit holds the operation log for n qubits.
type Circuit struct {
	numQubits int
	ops       []Op
}

// New returns an empty circuit on n qubits.
func New(n int) (*Circuit, error) {
	if err := gate.CheckWidth(n); err != nil {
		return nil, err
	}
	return &Circuit{numQubits: n}, nil
}

func (c *Circuit) Qubits() int { return c.numQubits }

// Len returns the number of operations.
func (c *Circuit) Len() int { return len(c.ops) }

// Ops returns the metadata of every operation in execution order.
func (c *Circuit) Ops() []OpInfo {
	out := make([]OpInfo, len(c.ops))
	for i, op := range c.ops {
		out[i] = OpInfo{Kind: op.Gate.Kind(), Targets: slices.Clone(op.Targets), Angle: op.Angle, Custom: op.custom}
	}
	return out
}

// GateAt returns a copy of operation i.
func (c *Circuit) GateAt(i int) (Op, error) {
	if i < 0 || i >= len(c.ops) {
		return Op{}, fmt.Errorf("%w: operation %d of %d", qerr.ErrIndex, i, len(c.ops))
	}
	op := c.ops[i]
	return Op{Targets: slices.Clone(op.Targets), Gate: op.Gate.Clone(), Angle: op.Angle, custom: op.custom}, nil
}

func (c *Circuit) push(m *gate.Matrix, angle float64, targets ...int) {
	c.ops = append(c.ops, Op{Targets: slices.Clone(targets), Gate: m, Angle: angle})
}

// AddHadamard appends H on every target, built as one Kronecker chain.
func (c *Circuit) AddHadamard(targets ...int) error {
	m, err := gate.Hadamard(c.numQubits, targets...)
	if err != nil {
		return err
	}
	c.push(m, 0, targets...)
	return nil
}

// AddSwap appends a swap of q1 and q2.
func (c *Circuit) AddSwap(q1, q2 int) error {
	m, err := gate.Swap(c.numQubits, q1, q2)
	if err != nil {
		return err
	}
	c.push(m, 0, q1, q2)
	return nil
}

// AddCNOT appends a controlled NOT.
func (c *Circuit) AddCNOT(control, target int) error {
	m, err := gate.CNOT(c.numQubits, control, target)
	if err != nil {
		return err
	}
	c.push(m, 0, control, target)
	return nil
}

// AddPauli appends the Pauli operator for axis on target.
func (c *Circuit) AddPauli(target int, axis gate.Axis) error {
	return c.AddPauliParallel(axis, target)
}

// AddPauliParallel appends the same Pauli operator on every target.
func (c *Circuit) AddPauliParallel(axis gate.Axis, targets ...int) error {
	m, err := gate.PauliParallel(c.numQubits, axis, targets...)
	if err != nil {
		return err
	}
	c.push(m, 0, targets...)
	return nil
}

// AddPhase appends diag(1, e^{iθ}) on target. theta is in radians.
func (c *Circuit) AddPhase(target int, theta float64) error {
	m, err := gate.PhaseDirect(c.numQubits, target, theta)
	if err != nil {
		return err
	}
	c.push(m, theta, target)
	return nil
}

// AddCustom appends a caller-built operator. m must be 2^n x 2^n and targets
// must be valid qubits; they are recorded for rendering only.
func (c *Circuit) AddCustom(targets []int, m *gate.Matrix) error {
	size := 1 << c.numQubits
	if m.Rows() != size || m.Cols() != size {
		return fmt.Errorf("%w: %dx%d gate on a %d-qubit circuit", qerr.ErrDimension, m.Rows(), m.Cols(), c.numQubits)
	}
	if err := gate.CheckTargets(c.numQubits, targets...); err != nil {
		return err
	}
	c.push(m.Clone(), 0, targets...)
	c.ops[len(c.ops)-1].custom = true
	return nil
}
