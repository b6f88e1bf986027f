package render

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermsim/internal/circuit"
	"qtermsim/internal/gate"
)

func bellOps(t *testing.T) []circuit.OpInfo {
	t.Helper()
	c, err := circuit.New(2)
	require.NoError(t, err)
	require.NoError(t, c.AddHadamard(0))
	require.NoError(t, c.AddCNOT(0, 1))
	return c.Ops()
}

func TestDiagramBell(t *testing.T) {
	got := Diagram(bellOps(t), 2, Options{})
	sp := func(n int) string { return strings.Repeat(" ", n) }
	dash := func(n int) string { return strings.Repeat("─", n) }

	want := strings.Join([]string{
		sp(6) + "┌───┐",
		"q0 " + dash(3) + "┤ H ├" + dash(4) + "•" + dash(3),
		sp(6) + "└───┘" + sp(4) + "│",
		sp(15) + "│",
		"q1 " + dash(12) + "⊕" + dash(3),
		"",
	}, "\n") + "\n"

	assert.Equal(t, want, got)
}

func TestDiagramRowsHaveEqualWidth(t *testing.T) {
	c, err := circuit.New(4)
	require.NoError(t, err)
	require.NoError(t, c.AddHadamard(0, 3))
	require.NoError(t, c.AddSwap(3, 0))
	require.NoError(t, c.AddPhase(2, math.Pi/2))
	require.NoError(t, c.AddCNOT(3, 1))
	require.NoError(t, c.AddPauli(1, gate.AxisZ))

	for _, compact := range []bool{false, true} {
		out := Diagram(c.Ops(), 4, Options{Compact: compact})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 12)
		width := ansi.StringWidth(lines[1])
		for q := range 4 {
			assert.Equal(t, width, ansi.StringWidth(lines[q*3+1]), "compact=%v qubit %d", compact, q)
		}
	}
}

func TestDiagramSymbols(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.AddCNOT(2, 0))
	require.NoError(t, c.AddSwap(0, 2))
	require.NoError(t, c.AddPauliParallel(gate.AxisX, 0, 1))
	require.NoError(t, c.AddPhase(1, math.Pi))
	require.NoError(t, c.AddPhase(1, 0.3))

	out := Diagram(c.Ops(), 3, Options{})
	lines := strings.Split(out, "\n")

	// control below the target, passing through qubit 1
	assert.Contains(t, lines[1], "⊕")
	assert.Contains(t, lines[4], "┼")
	assert.Contains(t, lines[7], "•")
	assert.Equal(t, 2, strings.Count(out, "x"))
	assert.Equal(t, 2, strings.Count(out, "P_X"))
	assert.Contains(t, out, "┤ π ├")
	assert.Contains(t, out, "┤Phi├")
}

func TestLayoutColumns(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.AddPauli(0, gate.AxisX))
	require.NoError(t, c.AddPauli(2, gate.AxisX))
	require.NoError(t, c.AddCNOT(0, 2))
	require.NoError(t, c.AddHadamard(1))

	ops := c.Ops()
	assert.Equal(t, 4, Columns(ops, 3, false))
	// X0 and X2 share a column; the CNOT span blocks qubit 1 so H follows it.
	assert.Equal(t, 3, Columns(ops, 3, true))

	assert.Equal(t, 2, Columns(bellOps(t), 2, true))
	assert.Equal(t, 0, Columns(nil, 2, true))
}

func TestDiagramStyledMatchesPlain(t *testing.T) {
	ops := bellOps(t)
	plain := Diagram(ops, 2, Options{Compact: true})
	styled := Diagram(ops, 2, Options{Compact: true, Styled: true})
	assert.Equal(t, plain, ansi.Strip(styled))
}

func TestDiagramEmptyCircuit(t *testing.T) {
	out := Diagram(nil, 2, Options{})
	assert.Equal(t, "\nq0 ──\n\n\nq1 ──\n\n", out)
}

func TestGateList(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.AddHadamard(0, 1))
	require.NoError(t, c.AddCNOT(0, 2))
	require.NoError(t, c.AddPhase(1, math.Pi/2))

	want := "{ 0 1 } Hadamard\n" +
		"{ 0 2 } CNOT\n" +
		"{ 1 } Phase(pi/2)\n"
	assert.Equal(t, want, GateList(c.Ops()))
}
