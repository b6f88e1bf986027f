// Package statevector holds the dense amplitude vector of an n-qubit pure state.
//
// Amplitudes are ordered by binary index with qubit 0 as the most significant
// bit, so the basis label "010" for three qubits sits at index 2. Every
// constructor and arithmetic result snaps components smaller than Epsilon to
// exact zero.
package statevector

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"qtermsim/internal/qerr"
)

// Epsilon is the magnitude below which a real or imaginary component is
// replaced by exact zero.
const Epsilon = 1e-10

// MaxQubits bounds the vector length so that allocation stays within 1 GiB
// (2^26 amplitudes of 16 bytes).
const MaxQubits = 26

// MaxBasisQubits bounds StdBasis, which holds 2^n vectors of 2^n amplitudes,
// to the same 1 GiB.
const MaxBasisQubits = 13

// Complex is the unit of computation for amplitudes and matrix elements.
type Complex = complex128

// Statevector is a complex vector of length 2^n. Arithmetic methods return new
// instances; the receiver is never modified except through Set.
type Statevector struct {
	numQubits  int
	amplitudes []Complex
}

// Snap zeroes each component of c whose magnitude is below Epsilon.
func Snap(c Complex) Complex {
	re, im := real(c), imag(c)
	if math.Abs(re) < Epsilon {
		re = 0
	}
	if math.Abs(im) < Epsilon {
		im = 0
	}
	return complex(re, im)
}

// CheckQubits reports whether a vector of n qubits can be allocated.
func CheckQubits(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: qubit count %d is negative", qerr.ErrInvalidArgument, n)
	}
	if n > MaxQubits {
		return fmt.Errorf("%w: %d qubits requested, limit is %d", qerr.ErrResourceExhausted, n, MaxQubits)
	}
	return nil
}

// New returns the all-zero vector of n qubits.
func New(n int) (*Statevector, error) {
	if err := CheckQubits(n); err != nil {
		return nil, err
	}
	return &Statevector{numQubits: n, amplitudes: make([]Complex, 1<<n)}, nil
}

// FromBits returns the one-hot vector whose index is the integer value of
// qubits read most significant bit first.
func FromBits(qubits []int) (*Statevector, error) {
	s, err := New(len(qubits))
	if err != nil {
		return nil, err
	}
	pos := 0
	for i, b := range qubits {
		if b != 0 && b != 1 {
			return nil, fmt.Errorf("%w: qubit %d has value %d, want 0 or 1", qerr.ErrInvalidArgument, i, b)
		}
		pos = pos<<1 | b
	}
	s.amplitudes[pos] = 1
	return s, nil
}

// FromBitString is FromBits for a label such as "010".
func FromBitString(label string) (*Statevector, error) {
	qubits := make([]int, len(label))
	for i, r := range label {
		switch r {
		case '0':
		case '1':
			qubits[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q is not a bit string", qerr.ErrInvalidArgument, label)
		}
	}
	return FromBits(qubits)
}

// FromAmplitudes copies amps into a new vector. The length must be a power of
// two; the qubit count is its base-2 logarithm.
func FromAmplitudes(amps []Complex) (*Statevector, error) {
	l := len(amps)
	if l == 0 || l&(l-1) != 0 {
		return nil, fmt.Errorf("%w: %d amplitudes is not a power of two", qerr.ErrInvalidArgument, l)
	}
	n := bits.TrailingZeros(uint(l))
	if err := CheckQubits(n); err != nil {
		return nil, err
	}
	s := &Statevector{numQubits: n, amplitudes: make([]Complex, l)}
	copy(s.amplitudes, amps)
	s.Round()
	return s, nil
}

// Qubits returns n.
func (s *Statevector) Qubits() int { return s.numQubits }

// Len returns 2^n.
func (s *Statevector) Len() int { return len(s.amplitudes) }

// At returns the amplitude at index i.
func (s *Statevector) At(i int) (Complex, error) {
	if i < 0 || i >= len(s.amplitudes) {
		return 0, fmt.Errorf("%w: amplitude %d of %d", qerr.ErrIndex, i, len(s.amplitudes))
	}
	return s.amplitudes[i], nil
}

// Set replaces the amplitude at index i, snapping it to zero when tiny.
func (s *Statevector) Set(i int, v Complex) error {
	if i < 0 || i >= len(s.amplitudes) {
		return fmt.Errorf("%w: amplitude %d of %d", qerr.ErrIndex, i, len(s.amplitudes))
	}
	s.amplitudes[i] = Snap(v)
	return nil
}

// Amplitudes returns a copy of the amplitude buffer.
func (s *Statevector) Amplitudes() []Complex {
	out := make([]Complex, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

// Clone returns a deep copy.
func (s *Statevector) Clone() *Statevector {
	amps := make([]Complex, len(s.amplitudes))
	copy(amps, s.amplitudes)
	c := &Statevector{numQubits: s.numQubits, amplitudes: amps}
	c.Round()
	return c
}

// Round snaps every amplitude component below Epsilon to zero.
func (s *Statevector) Round() {
	for i, a := range s.amplitudes {
		s.amplitudes[i] = Snap(a)
	}
}

// Add returns s + o element-wise.
func (s *Statevector) Add(o *Statevector) (*Statevector, error) {
	return s.combine(o, "add", func(a, b Complex) Complex { return a + b })
}

// Sub returns s - o element-wise.
func (s *Statevector) Sub(o *Statevector) (*Statevector, error) {
	return s.combine(o, "subtract", func(a, b Complex) Complex { return a - b })
}

func (s *Statevector) combine(o *Statevector, op string, f func(a, b Complex) Complex) (*Statevector, error) {
	if s.numQubits != o.numQubits {
		return nil, fmt.Errorf("%w: cannot %s %d-qubit and %d-qubit vectors", qerr.ErrDimension, op, s.numQubits, o.numQubits)
	}
	out := &Statevector{numQubits: s.numQubits, amplitudes: make([]Complex, len(s.amplitudes))}
	for i := range s.amplitudes {
		out.amplitudes[i] = f(s.amplitudes[i], o.amplitudes[i])
	}
	out.Round()
	return out, nil
}

// Div returns s / c element-wise. Division by zero follows IEEE semantics and
// yields Inf or NaN components.
func (s *Statevector) Div(c Complex) *Statevector {
	out := &Statevector{numQubits: s.numQubits, amplitudes: make([]Complex, len(s.amplitudes))}
	for i, a := range s.amplitudes {
		out.amplitudes[i] = a / c
	}
	out.Round()
	return out
}

// Scale returns c * s element-wise.
func (s *Statevector) Scale(c Complex) *Statevector {
	out := &Statevector{numQubits: s.numQubits, amplitudes: make([]Complex, len(s.amplitudes))}
	for i, a := range s.amplitudes {
		out.amplitudes[i] = a * c
	}
	out.Round()
	return out
}

// Norm returns the Euclidean norm.
func (s *Statevector) Norm() float64 {
	var sum float64
	for _, a := range s.amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	return math.Sqrt(sum)
}

// Normalized returns s scaled to unit norm. The zero vector is returned as a
// copy since it has no direction.
func (s *Statevector) Normalized() *Statevector {
	n := s.Norm()
	if n == 0 {
		return s.Clone()
	}
	return s.Div(complex(n, 0))
}

// ApproxEqual reports whether both vectors have the same qubit count and every
// amplitude differs by at most tol in each component.
func (s *Statevector) ApproxEqual(o *Statevector, tol float64) bool {
	if s.numQubits != o.numQubits {
		return false
	}
	for i, a := range s.amplitudes {
		b := o.amplitudes[i]
		if math.Abs(real(a)-real(b)) > tol || math.Abs(imag(a)-imag(b)) > tol {
			return false
		}
	}
	return true
}

// Probabilities returns |a_i|^2 for every basis index.
func (s *Statevector) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// QubitProbability is the marginal measurement distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of every qubit.
func (s *Statevector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, a := range s.amplitudes {
		p := real(a * cmplx.Conj(a))
		for q := range s.numQubits {
			if i&bitFor(q, s.numQubits) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// bitFor returns the index mask of qubit q when qubit 0 is the most
// significant of n bits.
func bitFor(q, n int) int {
	return 1 << (n - 1 - q)
}
