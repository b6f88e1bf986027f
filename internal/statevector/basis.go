package statevector

import (
	"fmt"

	"qtermsim/internal/qerr"
)

// Label returns the bit-string label of basis index i for n qubits, qubit 0
// first.
func Label(i, n int) string {
	b := make([]byte, n)
	for q := range n {
		if i&bitFor(q, n) != 0 {
			b[q] = '1'
		} else {
			b[q] = '0'
		}
	}
	return string(b)
}

// BasisLabels returns the 2^n labels in index order.
func BasisLabels(n int) ([]string, error) {
	if err := CheckQubits(n); err != nil {
		return nil, err
	}
	labels := make([]string, 1<<n)
	for i := range labels {
		labels[i] = Label(i, n)
	}
	return labels, nil
}

// BasisState returns the one-hot vector |i> for n qubits.
func BasisState(n, i int) (*Statevector, error) {
	s, err := New(n)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: basis index %d for %d qubits", qerr.ErrIndex, i, n)
	}
	s.amplitudes[i] = 1
	return s, nil
}

// StdBasis enumerates the computational basis for n qubits, keyed by label.
// The map is rebuilt on every call.
func StdBasis(n int) (map[string]*Statevector, error) {
	if n > MaxBasisQubits {
		return nil, fmt.Errorf("%w: a %d-qubit basis needs 4^%d amplitudes, limit is %d qubits", qerr.ErrResourceExhausted, n, n, MaxBasisQubits)
	}
	labels, err := BasisLabels(n)
	if err != nil {
		return nil, err
	}
	basis := make(map[string]*Statevector, len(labels))
	for i, label := range labels {
		s, err := BasisState(n, i)
		if err != nil {
			return nil, err
		}
		basis[label] = s
	}
	return basis, nil
}
