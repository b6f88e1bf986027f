package render

import (
	"fmt"
	"strings"

	"qtermsim/internal/format"
	"qtermsim/internal/statevector"
)

// Probabilities lists |label⟩ and its measurement probability for every basis
// state that can be observed, one per line.
func Probabilities(s *statevector.Statevector, prec int) string {
	var sb strings.Builder
	n := s.Qubits()
	for i, p := range s.Probabilities() {
		if p < statevector.Epsilon {
			continue
		}
		fmt.Fprintf(&sb, "|%s⟩  %.*f\n", statevector.Label(i, n), prec, p)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// StdBasis lists the n-qubit standard basis as "|label⟩ = [ ... ]" rows.
func StdBasis(n, prec int) (string, error) {
	basis, err := statevector.StdBasis(n)
	if err != nil {
		return "", err
	}
	labels, err := statevector.BasisLabels(n)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Standard basis for %d qubits\n\n", n)
	for _, l := range labels {
		fmt.Fprintf(&sb, "|%s⟩ = %s\n", l, format.Row(basis[l].Amplitudes(), prec))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

var bellNames = []struct{ label, name string }{
	{"00", "Φ+"},
	{"01", "Φ-"},
	{"10", "Ψ+"},
	{"11", "Ψ-"},
}

// BellBasis lists the four Bell states in label order.
func BellBasis(prec int) (string, error) {
	var sb strings.Builder
	sb.WriteString("Bell basis\n\n")
	for _, b := range bellNames {
		s, err := statevector.Bell(b.label)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "|%s⟩ = %s\n", b.name, format.Row(s.Amplitudes(), prec))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// QubitMarginals lists P(0) and P(1) for every qubit, one per line.
func QubitMarginals(s *statevector.Statevector, prec int) string {
	var sb strings.Builder
	for q, p := range s.QubitProbabilities() {
		fmt.Fprintf(&sb, "q%d  P(0)=%.*f  P(1)=%.*f\n", q, prec, p.Prob0, prec, p.Prob1)
	}
	return strings.TrimRight(sb.String(), "\n")
}
