package circuit

import (
	"errors"
	"math"
	"strings"
	"testing"

	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
	"qtermsim/internal/statevector"
)

func TestParseQASM(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

// prepare GHZ
h q[0];
cx q[0], q[1];
barrier q[0], q[1], q[2];
cx q[1],q[2];
z q[2];
p(pi/2) q[1];
u1(-pi/4) q[0];
swap q[0], q[2];`

	c, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.Qubits() != 3 {
		t.Fatalf("expected 3 qubits, got %d", c.Qubits())
	}

	want := []struct {
		kind    gate.Kind
		targets []int
		angle   float64
	}{
		{gate.KindHadamard, []int{0}, 0},
		{gate.KindCNOT, []int{0, 1}, 0},
		{gate.KindCNOT, []int{1, 2}, 0},
		{gate.KindPauliZ, []int{2}, 0},
		{gate.KindPhase, []int{1}, math.Pi / 2},
		{gate.KindPhase, []int{0}, -math.Pi / 4},
		{gate.KindSwap, []int{0, 2}, 0},
	}
	ops := c.Ops()
	if len(ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(ops))
	}
	for i, w := range want {
		got := ops[i]
		if got.Kind != w.kind {
			t.Errorf("op %d: kind %s, want %s", i, got.Kind, w.kind)
		}
		if len(got.Targets) != len(w.targets) {
			t.Errorf("op %d: targets %v, want %v", i, got.Targets, w.targets)
			continue
		}
		for j := range w.targets {
			if got.Targets[j] != w.targets[j] {
				t.Errorf("op %d: targets %v, want %v", i, got.Targets, w.targets)
				break
			}
		}
		if math.Abs(got.Angle-w.angle) > 1e-10 {
			t.Errorf("op %d: angle %g, want %g", i, got.Angle, w.angle)
		}
	}
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want error
	}{
		{"no qreg", "h q[0];", qerr.ErrInvalidArgument},
		{"empty", "", qerr.ErrInvalidArgument},
		{"unsupported gate", "qreg q[2];\nccx q[0], q[1];", qerr.ErrInvalidArgument},
		{"measure", "qreg q[2];\nmeasure q[0] -> c[0];", qerr.ErrInvalidArgument},
		{"rx", "qreg q[1];\nrx(pi) q[0];", qerr.ErrInvalidArgument},
		{"target out of range", "qreg q[2];\nh q[2];", qerr.ErrInvalidTarget},
		{"cx on one qubit", "qreg q[2];\ncx q[1], q[1];", qerr.ErrInvalidTarget},
		{"two qregs", "qreg q[2];\nqreg r[2];", qerr.ErrInvalidArgument},
		{"too wide", "qreg q[64];", qerr.ErrResourceExhausted},
	}

	for _, tt := range tests {
		_, err := ParseQASM(tt.qasm)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err=%v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseQASMLimitRejectsWideRegister(t *testing.T) {
	text := "qreg q[11];\n" + strings.Repeat("h q[0];\n", 20)
	c, err := ParseQASMLimit(text, 2)
	if !errors.Is(err, qerr.ErrResourceExhausted) {
		t.Fatalf("err=%v, want %v", err, qerr.ErrResourceExhausted)
	}
	if c != nil {
		t.Errorf("expected no circuit, got %d qubits", c.Qubits())
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected error mentioning line 1, got %v", err)
	}

	c, err = ParseQASMLimit("qreg q[2];\nh q[0];", 2)
	if err != nil {
		t.Fatalf("ParseQASMLimit at the limit: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestParseQASMReportsLine(t *testing.T) {
	_, err := ParseQASM("qreg q[2];\n\nh q[0];\nfoo q[1];")
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error mentioning line 4, got %v", err)
	}
}

func TestRoundTripQASM(t *testing.T) {
	c, _ := New(3)
	steps := []error{
		c.AddHadamard(0, 2),
		c.AddCNOT(2, 1),
		c.AddPauliParallel(gate.AxisX, 0, 1),
		c.AddPauli(2, gate.AxisY),
		c.AddPhase(1, 3*math.Pi/4),
		c.AddPhase(0, 0.3),
		c.AddSwap(0, 1),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("building step %d: %v", i, err)
		}
	}

	qasm, err := c.ToQASM()
	if err != nil {
		t.Fatalf("ToQASM: %v", err)
	}
	for _, line := range []string{"qreg q[3];", "h q[0];", "h q[2];", "cx q[2], q[1];", "x q[1];", "y q[2];", "p(3*pi/4) q[1];", "p(0.3) q[0];", "swap q[0], q[1];"} {
		if !strings.Contains(qasm, line) {
			t.Errorf("expected %q in QASM, got:\n%s", line, qasm)
		}
	}

	c2, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}

	// parallel ops expand to one statement per target
	if c2.Len() != c.Len()+2 {
		t.Errorf("expected %d ops after round trip, got %d", c.Len()+2, c2.Len())
	}

	labels, _ := statevector.BasisLabels(3)
	for _, l := range labels {
		in, _ := statevector.FromBitString(l)
		a, err := Evolve(in, c)
		if err != nil {
			t.Fatalf("Evolve original: %v", err)
		}
		b, err := Evolve(in, c2)
		if err != nil {
			t.Fatalf("Evolve parsed: %v", err)
		}
		if !a.ApproxEqual(b, 1e-10) {
			t.Errorf("|%s>: round trip changed the result\n%v\n%v", l, a.Amplitudes(), b.Amplitudes())
		}
	}
}

func TestToQASMRejectsCustom(t *testing.T) {
	c, _ := New(1)
	if err := c.AddCustom([]int{0}, gate.Hadamard2()); err != nil {
		t.Fatalf("AddCustom: %v", err)
	}
	if _, err := c.ToQASM(); !errors.Is(err, qerr.ErrInvalidArgument) {
		t.Errorf("ToQASM on custom op: err=%v, want ErrInvalidArgument", err)
	}
}
