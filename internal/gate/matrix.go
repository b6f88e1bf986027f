// Package gate implements dense complex matrices and the builders that embed
// single- and two-qubit primitives into n-qubit operators.
//
// All public indices are 0-based. A gate on n qubits is a 2^n x 2^n matrix
// whose row and column order matches statevector amplitude order (qubit 0 is
// the most significant bit).
package gate

import (
	"fmt"
	"math"
	"math/cmplx"

	"qtermsim/internal/qerr"
	"qtermsim/internal/statevector"
)

// Complex is the element type shared with statevector.
type Complex = statevector.Complex

// maxElements bounds rows*cols so a single matrix stays within 1 GiB.
const maxElements = 1 << 26

// Kind tags the primitive a matrix was built from.
type Kind int

const (
	KindCustom Kind = iota
	KindIdentity
	KindHadamard
	KindPauliX
	KindPauliY
	KindPauliZ
	KindPhase
	KindCNOT
	KindSwap
)

var kindNames = map[Kind]string{
	KindCustom:   "Custom",
	KindIdentity: "Identity",
	KindHadamard: "Hadamard",
	KindPauliX:   "PauliX",
	KindPauliY:   "PauliY",
	KindPauliZ:   "PauliZ",
	KindPhase:    "Phase",
	KindCNOT:     "CNOT",
	KindSwap:     "Swap",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Matrix is a dense row-major complex matrix. Rows and columns are stored
// separately so non-square intermediates keep their shape.
type Matrix struct {
	rows int
	cols int
	kind Kind
	data []Complex
}

func checkShape(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%w: matrix shape %dx%d", qerr.ErrInvalidArgument, rows, cols)
	}
	if rows != 0 && cols > maxElements/rows {
		return fmt.Errorf("%w: %dx%d matrix exceeds %d elements", qerr.ErrResourceExhausted, rows, cols, maxElements)
	}
	return nil
}

func alloc(rows, cols int, kind Kind) (*Matrix, error) {
	if err := checkShape(rows, cols); err != nil {
		return nil, err
	}
	return &Matrix{rows: rows, cols: cols, kind: kind, data: make([]Complex, rows*cols)}, nil
}

// Zeros returns the size x size zero matrix tagged KindCustom.
func Zeros(size int) (*Matrix, error) {
	return alloc(size, size, KindCustom)
}

// NewMatrix fills a size x size matrix row-major from elems. The element
// count must be exactly size*size.
func NewMatrix(kind Kind, size int, elems []Complex) (*Matrix, error) {
	m, err := NewDense(size, size, elems)
	if err != nil {
		return nil, err
	}
	m.kind = kind
	return m, nil
}

// NewDense fills a rows x cols matrix row-major from elems.
func NewDense(rows, cols int, elems []Complex) (*Matrix, error) {
	m, err := alloc(rows, cols, KindCustom)
	if err != nil {
		return nil, err
	}
	if len(elems) != rows*cols {
		return nil, fmt.Errorf("%w: %d elements for a %dx%d matrix", qerr.ErrDimension, len(elems), rows, cols)
	}
	copy(m.data, elems)
	m.Round()
	return m, nil
}

// Identity returns the size x size identity.
func Identity(size int) (*Matrix, error) {
	m, err := alloc(size, size, KindIdentity)
	if err != nil {
		return nil, err
	}
	for i := range size {
		m.data[i*size+i] = 1
	}
	return m, nil
}

func (m *Matrix) Rows() int  { return m.rows }
func (m *Matrix) Cols() int  { return m.cols }
func (m *Matrix) Kind() Kind { return m.kind }

func (m *Matrix) idx(r, c int) int { return r*m.cols + c }

func (m *Matrix) inBounds(r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("%w: element (%d,%d) of %dx%d matrix", qerr.ErrIndex, r, c, m.rows, m.cols)
	}
	return nil
}

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) (Complex, error) {
	if err := m.inBounds(r, c); err != nil {
		return 0, err
	}
	return m.data[m.idx(r, c)], nil
}

// Set replaces the element at row r, column c.
func (m *Matrix) Set(r, c int, v Complex) error {
	if err := m.inBounds(r, c); err != nil {
		return err
	}
	m.data[m.idx(r, c)] = statevector.Snap(v)
	return nil
}

// Elements returns a row-major copy of the data.
func (m *Matrix) Elements() []Complex {
	out := make([]Complex, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]Complex, len(m.data))
	copy(data, m.data)
	c := &Matrix{rows: m.rows, cols: m.cols, kind: m.kind, data: data}
	c.Round()
	return c
}

// Round snaps every element component below statevector.Epsilon to zero.
func (m *Matrix) Round() {
	for i, v := range m.data {
		m.data[i] = statevector.Snap(v)
	}
}

// Add returns m + o.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	return m.elementwise(o, "add", func(a, b Complex) Complex { return a + b })
}

// Sub returns m - o.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	return m.elementwise(o, "subtract", func(a, b Complex) Complex { return a - b })
}

func (m *Matrix) elementwise(o *Matrix, op string, f func(a, b Complex) Complex) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, fmt.Errorf("%w: cannot %s %dx%d and %dx%d", qerr.ErrDimension, op, m.rows, m.cols, o.rows, o.cols)
	}
	out := &Matrix{rows: m.rows, cols: m.cols, kind: KindCustom, data: make([]Complex, len(m.data))}
	for i := range m.data {
		out.data[i] = f(m.data[i], o.data[i])
	}
	out.Round()
	return out, nil
}

// Mul returns the matrix product m * o. cols(m) must equal rows(o).
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", qerr.ErrDimension, m.rows, m.cols, o.rows, o.cols)
	}
	out, err := alloc(m.rows, o.cols, KindCustom)
	if err != nil {
		return nil, err
	}
	for i := range m.rows {
		for k := range m.cols {
			a := m.data[m.idx(i, k)]
			if a == 0 {
				continue
			}
			for j := range o.cols {
				out.data[out.idx(i, j)] += a * o.data[o.idx(k, j)]
			}
		}
	}
	out.Round()
	return out, nil
}

// Scale returns c * m. The kind is preserved.
func (m *Matrix) Scale(c Complex) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, kind: m.kind, data: make([]Complex, len(m.data))}
	for i, v := range m.data {
		out.data[i] = v * c
	}
	out.Round()
	return out
}

// Kron returns the Kronecker product a ⊗ b. Element (i*rows(b)+k, j*cols(b)+l)
// of the result is a(i,j)*b(k,l).
func Kron(a, b *Matrix) (*Matrix, error) {
	rows, cols := a.rows*b.rows, a.cols*b.cols
	if a.rows != 0 && b.rows > maxElements/a.rows || a.cols != 0 && b.cols > maxElements/a.cols {
		return nil, fmt.Errorf("%w: kronecker product of %dx%d and %dx%d", qerr.ErrResourceExhausted, a.rows, a.cols, b.rows, b.cols)
	}
	out, err := alloc(rows, cols, KindCustom)
	if err != nil {
		return nil, err
	}
	for i := range a.rows {
		for j := range a.cols {
			av := a.data[a.idx(i, j)]
			if av == 0 {
				continue
			}
			for k := range b.rows {
				for l := range b.cols {
					out.data[out.idx(i*b.rows+k, j*b.cols+l)] = av * b.data[b.idx(k, l)]
				}
			}
		}
	}
	out.Round()
	return out, nil
}

// MulVec returns m * s. cols(m) must equal the length of s.
func (m *Matrix) MulVec(s *statevector.Statevector) (*statevector.Statevector, error) {
	if m.cols != s.Len() {
		return nil, fmt.Errorf("%w: %dx%d gate applied to a vector of length %d", qerr.ErrDimension, m.rows, m.cols, s.Len())
	}
	in := s.Amplitudes()
	out := make([]Complex, m.rows)
	for i := range m.rows {
		var acc Complex
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, g := range row {
			if g != 0 {
				acc += g * in[j]
			}
		}
		out[i] = acc
	}
	res, err := statevector.FromAmplitudes(out)
	if err != nil {
		return nil, fmt.Errorf("%w: product has %d rows", qerr.ErrDimension, m.rows)
	}
	return res, nil
}

// Dyad returns the outer product |v1><v2|, conjugating v2.
func Dyad(v1, v2 *statevector.Statevector) (*Matrix, error) {
	out, err := alloc(v1.Len(), v2.Len(), KindCustom)
	if err != nil {
		return nil, err
	}
	addOuter(out, v1.Amplitudes(), v2.Amplitudes())
	out.Round()
	return out, nil
}

// addOuter accumulates |u><w| into dst, skipping zero rows so one-hot
// projectors cost O(len(w)).
func addOuter(dst *Matrix, u, w []Complex) {
	for i, a := range u {
		if a == 0 {
			continue
		}
		for j, b := range w {
			if b != 0 {
				dst.data[dst.idx(i, j)] += a * cmplx.Conj(b)
			}
		}
	}
}

// Adjoint returns the conjugate transpose.
func (m *Matrix) Adjoint() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, kind: KindCustom, data: make([]Complex, len(m.data))}
	for i := range m.rows {
		for j := range m.cols {
			out.data[out.idx(j, i)] = cmplx.Conj(m.data[m.idx(i, j)])
		}
	}
	switch m.kind {
	case KindIdentity, KindHadamard, KindPauliX, KindPauliY, KindPauliZ, KindCNOT, KindSwap:
		out.kind = m.kind
	}
	return out
}

// Trace returns the sum of the diagonal of a square matrix.
func (m *Matrix) Trace() (Complex, error) {
	if m.rows != m.cols {
		return 0, fmt.Errorf("%w: trace of %dx%d matrix", qerr.ErrDimension, m.rows, m.cols)
	}
	var t Complex
	for i := range m.rows {
		t += m.data[m.idx(i, i)]
	}
	return statevector.Snap(t), nil
}

// ApproxEqual reports whether both matrices have the same shape and every
// element differs by at most tol in each component. Kinds are ignored.
func (m *Matrix) ApproxEqual(o *Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, a := range m.data {
		b := o.data[i]
		if math.Abs(real(a)-real(b)) > tol || math.Abs(imag(a)-imag(b)) > tol {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m equals the identity within tol.
func (m *Matrix) IsUnitary(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	p, err := m.Adjoint().Mul(m)
	if err != nil {
		return false
	}
	id, err := Identity(m.rows)
	if err != nil {
		return false
	}
	return p.ApproxEqual(id, tol)
}
