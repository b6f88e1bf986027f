package gate

import (
	"fmt"
	"math/cmplx"
	"strings"

	"qtermsim/internal/qerr"
	"qtermsim/internal/statevector"
)

// MaxQubits is the widest system a builder will materialize: a 2^13 x 2^13
// matrix already holds 2^26 elements.
const MaxQubits = 13

// Axis selects a Pauli operator.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts x, y or z in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: unknown Pauli axis %q", qerr.ErrInvalidArgument, s)
}

func (a Axis) local() (*Matrix, Kind, error) {
	switch a {
	case AxisX:
		return pauliX, KindPauliX, nil
	case AxisY:
		return pauliY, KindPauliY, nil
	case AxisZ:
		return pauliZ, KindPauliZ, nil
	}
	return nil, 0, fmt.Errorf("%w: unknown Pauli axis %d", qerr.ErrInvalidArgument, int(a))
}

// CheckWidth reports whether an n-qubit operator can be built.
func CheckWidth(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: a gate needs at least one qubit, got %d", qerr.ErrInvalidArgument, n)
	}
	if n > MaxQubits {
		return fmt.Errorf("%w: %d-qubit gate exceeds the %d-qubit limit", qerr.ErrResourceExhausted, n, MaxQubits)
	}
	return nil
}

// CheckTargets validates that every target lies in [0, n) and that no target
// repeats.
func CheckTargets(n int, targets ...int) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: no target qubits", qerr.ErrInvalidTarget)
	}
	seen := make(map[int]bool, len(targets))
	for _, t := range targets {
		if t < 0 || t >= n {
			return fmt.Errorf("%w: qubit %d outside [0, %d)", qerr.ErrInvalidTarget, t, n)
		}
		if seen[t] {
			return fmt.Errorf("%w: qubit %d listed twice", qerr.ErrInvalidTarget, t)
		}
		seen[t] = true
	}
	return nil
}

// Embed builds the n-qubit operator that applies the 2x2 local gate to every
// target and identity elsewhere, as the Kronecker chain of n factors with
// qubit 0 leftmost. The result is tagged KindCustom.
func Embed(n int, local *Matrix, targets ...int) (*Matrix, error) {
	if err := CheckWidth(n); err != nil {
		return nil, err
	}
	if err := CheckTargets(n, targets...); err != nil {
		return nil, err
	}
	if local.rows != 2 || local.cols != 2 {
		return nil, fmt.Errorf("%w: local gate is %dx%d, want 2x2", qerr.ErrDimension, local.rows, local.cols)
	}
	onTarget := make([]bool, n)
	for _, t := range targets {
		onTarget[t] = true
	}
	factor := func(q int) *Matrix {
		if onTarget[q] {
			return local
		}
		return identity2
	}

	acc := factor(0).Clone()
	for q := 1; q < n; q++ {
		next, err := Kron(acc, factor(q))
		if err != nil {
			return nil, err
		}
		acc = next
	}
	acc.kind = KindCustom
	return acc, nil
}

// Hadamard applies H to each target in a single Kronecker pass.
func Hadamard(n int, targets ...int) (*Matrix, error) {
	m, err := Embed(n, hadamard2, targets...)
	if err != nil {
		return nil, err
	}
	m.kind = KindHadamard
	return m, nil
}

// HadamardAll returns H applied to every one of n qubits.
func HadamardAll(n int) (*Matrix, error) {
	if err := CheckWidth(n); err != nil {
		return nil, err
	}
	targets := make([]int, n)
	for i := range targets {
		targets[i] = i
	}
	return Hadamard(n, targets...)
}

// Pauli applies the Pauli operator for axis to a single target.
func Pauli(n, target int, axis Axis) (*Matrix, error) {
	return PauliParallel(n, axis, target)
}

// PauliParallel applies the same Pauli operator to every target.
func PauliParallel(n int, axis Axis, targets ...int) (*Matrix, error) {
	local, kind, err := axis.local()
	if err != nil {
		return nil, err
	}
	m, err := Embed(n, local, targets...)
	if err != nil {
		return nil, err
	}
	m.kind = kind
	return m, nil
}

// PhaseLocal returns diag(1, e^{iθ}).
func PhaseLocal(theta float64) *Matrix {
	return mustConst(KindPhase, 2, 1, 0, 0, cmplx.Exp(complex(0, theta)))
}

// Phase applies diag(1, e^{iθ}) to target via the Kronecker chain.
func Phase(n, target int, theta float64) (*Matrix, error) {
	m, err := Embed(n, PhaseLocal(theta), target)
	if err != nil {
		return nil, err
	}
	m.kind = KindPhase
	return m, nil
}

// PhaseDirect builds the same operator as Phase without the chain: it is
// diagonal, with e^{iθ} wherever the target bit of the basis index is 1.
func PhaseDirect(n, target int, theta float64) (*Matrix, error) {
	if err := CheckWidth(n); err != nil {
		return nil, err
	}
	if err := CheckTargets(n, target); err != nil {
		return nil, err
	}
	m, err := Identity(1 << n)
	if err != nil {
		return nil, err
	}
	phase := statevector.Snap(cmplx.Exp(complex(0, theta)))
	mask := 1 << (n - 1 - target)
	for i := range m.rows {
		if i&mask != 0 {
			m.data[m.idx(i, i)] = phase
		}
	}
	m.kind = KindPhase
	return m, nil
}

// CNOT flips target wherever control is 1.
func CNOT(n, control, target int) (*Matrix, error) {
	if err := CheckWidth(n); err != nil {
		return nil, err
	}
	if err := CheckTargets(n, control, target); err != nil {
		return nil, err
	}
	return permutation(n, KindCNOT, func(bits []byte) {
		if bits[control] != '1' {
			return
		}
		if bits[target] == '1' {
			bits[target] = '0'
		} else {
			bits[target] = '1'
		}
	})
}

// Swap exchanges qubits q1 and q2.
func Swap(n, q1, q2 int) (*Matrix, error) {
	if err := CheckWidth(n); err != nil {
		return nil, err
	}
	if err := CheckTargets(n, q1, q2); err != nil {
		return nil, err
	}
	return permutation(n, KindSwap, func(bits []byte) {
		bits[q1], bits[q2] = bits[q2], bits[q1]
	})
}

// permutation sums |image><original| over the standard basis, where image is
// the label produced by rewriting original's bits with rule. Basis vectors
// are materialized one pair at a time so memory stays O(2^n) beyond the
// result.
func permutation(n int, kind Kind, rule func(bits []byte)) (*Matrix, error) {
	labels, err := statevector.BasisLabels(n)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	m, err := Zeros(len(labels))
	if err != nil {
		return nil, err
	}
	for i, label := range labels {
		bits := []byte(label)
		rule(bits)
		j, ok := index[string(bits)]
		if !ok {
			return nil, fmt.Errorf("%w: no basis state %q", qerr.ErrIndex, bits)
		}
		orig, err := statevector.BasisState(n, i)
		if err != nil {
			return nil, err
		}
		image, err := statevector.BasisState(n, j)
		if err != nil {
			return nil, err
		}
		addOuter(m, image.Amplitudes(), orig.Amplitudes())
	}
	m.Round()
	m.kind = kind
	return m, nil
}
