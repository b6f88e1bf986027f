package circuit

import (
	"math"

	"qtermsim/internal/gate"
)

// GateDoc describes one supported gate for the gate-info screen and the
// gates command.
type GateDoc struct {
	Name        string
	Kind        gate.Kind
	Spec        string // op-spec form
	Description string
	Matrix      *gate.Matrix
}

// GateInfo lists the supported primitives with their local matrices. The
// phase entry shows θ = π/2.
func GateInfo() []GateDoc {
	return []GateDoc{
		{"Hadamard", gate.KindHadamard, "h:q[,q...]", "Maps |0> to (|0>+|1>)/√2 and |1> to (|0>-|1>)/√2.", gate.Hadamard2()},
		{"Pauli-X", gate.KindPauliX, "x:q[,q...]", "Bit flip.", gate.PauliX()},
		{"Pauli-Y", gate.KindPauliY, "y:q[,q...]", "Bit and phase flip.", gate.PauliY()},
		{"Pauli-Z", gate.KindPauliZ, "z:q[,q...]", "Phase flip.", gate.PauliZ()},
		{"Phase", gate.KindPhase, "p:q:θ", "Multiplies the |1> amplitude by e^{iθ}.", gate.PhaseLocal(math.Pi / 2)},
		{"CNOT", gate.KindCNOT, "cx:control,target", "Flips the target when the control is 1.", gate.CNOT4()},
		{"Swap", gate.KindSwap, "swap:q1,q2", "Exchanges two qubits.", gate.Swap4()},
	}
}
