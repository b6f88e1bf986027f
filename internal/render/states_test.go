package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermsim/internal/statevector"
)

func TestProbabilitiesSkipsZeros(t *testing.T) {
	s, err := statevector.Bell("10")
	require.NoError(t, err)
	assert.Equal(t, "|01⟩  0.500\n|10⟩  0.500", Probabilities(s, 3))

	one, err := statevector.FromBitString("110")
	require.NoError(t, err)
	assert.Equal(t, "|110⟩  1.0", Probabilities(one, 1))
}

func TestStdBasisTable(t *testing.T) {
	got, err := StdBasis(2, 3)
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Standard basis for 2 qubits", lines[0])
	assert.Equal(t, "|00⟩ = [ 1  0  0  0 ]", lines[2])
	assert.Equal(t, "|10⟩ = [ 0  0  1  0 ]", lines[4])

	_, err = StdBasis(-1, 3)
	assert.Error(t, err)
}

func TestBellBasisTable(t *testing.T) {
	got, err := BellBasis(3)
	require.NoError(t, err)
	assert.Contains(t, got, "|Φ+⟩ = [ 0.707  0  0  0.707 ]")
	assert.Contains(t, got, "|Φ-⟩ = [ 0.707  0  0  -0.707 ]")
	assert.Contains(t, got, "|Ψ+⟩ = [ 0  0.707  0.707  0 ]")
	assert.Contains(t, got, "|Ψ-⟩ = [ 0  0.707  -0.707  0 ]")
}

func TestQubitMarginals(t *testing.T) {
	s, err := statevector.FromAmplitudes([]complex128{0, 0, 0.6, 0.8})
	require.NoError(t, err)
	// q0 is the leading bit, so it is 1 with certainty; q1 splits 0.36/0.64.
	assert.Equal(t, "q0  P(0)=0.00  P(1)=1.00\nq1  P(0)=0.36  P(1)=0.64", QubitMarginals(s, 2))
}
