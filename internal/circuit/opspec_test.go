package circuit

import (
	"errors"
	"math"
	"testing"

	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
)

func TestParseOpSpec(t *testing.T) {
	tests := []struct {
		input   string
		name    string
		targets []int
		angle   float64
	}{
		{"h:0", "h", []int{0}, 0},
		{"H:0,1", "h", []int{0, 1}, 0},
		{"x:1", "x", []int{1}, 0},
		{"z:0,2", "z", []int{0, 2}, 0},
		{"cx:0,1", "cx", []int{0, 1}, 0},
		{"cnot:1,0", "cx", []int{1, 0}, 0},
		{"swap:0,2", "swap", []int{0, 2}, 0},
		{"p:0:pi/2", "p", []int{0}, math.Pi / 2},
		{"phase:1:0.5", "p", []int{1}, 0.5},
		{"p:0:90deg", "p", []int{0}, math.Pi / 2},
	}

	for _, tt := range tests {
		got, err := ParseOpSpec(tt.input)
		if err != nil {
			t.Errorf("ParseOpSpec(%q): %v", tt.input, err)
			continue
		}
		if got.Name != tt.name {
			t.Errorf("ParseOpSpec(%q).Name = %q, want %q", tt.input, got.Name, tt.name)
		}
		if len(got.Targets) != len(tt.targets) {
			t.Errorf("ParseOpSpec(%q).Targets = %v, want %v", tt.input, got.Targets, tt.targets)
			continue
		}
		for i := range tt.targets {
			if got.Targets[i] != tt.targets[i] {
				t.Errorf("ParseOpSpec(%q).Targets = %v, want %v", tt.input, got.Targets, tt.targets)
				break
			}
		}
		if math.Abs(got.Angle-tt.angle) > 1e-10 {
			t.Errorf("ParseOpSpec(%q).Angle = %g, want %g", tt.input, got.Angle, tt.angle)
		}
	}
}

func TestParseOpSpecInDegrees(t *testing.T) {
	got, err := ParseOpSpecIn("p:0:180", format.Degrees)
	if err != nil {
		t.Fatalf("ParseOpSpecIn: %v", err)
	}
	if math.Abs(got.Angle-math.Pi) > 1e-10 {
		t.Errorf("angle = %g, want pi", got.Angle)
	}
}

func TestParseOpSpecErrors(t *testing.T) {
	for _, bad := range []string{"", "h", "h:", "h:a", "h:0:pi", "cx:0", "cx:0,1,2", "swap:1", "p:0", "p:0,1:pi", "p:0:abc", "p:0:nan", "p:0:inf", "rx:0:pi"} {
		if _, err := ParseOpSpec(bad); !errors.Is(err, qerr.ErrInvalidArgument) {
			t.Errorf("ParseOpSpec(%q): err=%v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestOpSpecApply(t *testing.T) {
	c, _ := New(3)
	for _, s := range []string{"h:0,1", "cx:0,2", "swap:1,2", "y:0", "p:2:pi/4"} {
		spec, err := ParseOpSpec(s)
		if err != nil {
			t.Fatalf("ParseOpSpec(%q): %v", s, err)
		}
		if err := spec.Apply(c); err != nil {
			t.Fatalf("Apply(%q): %v", s, err)
		}
		if spec.String() != s {
			t.Errorf("String() = %q, want %q", spec.String(), s)
		}
	}

	kinds := []gate.Kind{gate.KindHadamard, gate.KindCNOT, gate.KindSwap, gate.KindPauliY, gate.KindPhase}
	ops := c.Ops()
	if len(ops) != len(kinds) {
		t.Fatalf("expected %d ops, got %d", len(kinds), len(ops))
	}
	for i, k := range kinds {
		if ops[i].Kind != k {
			t.Errorf("op %d kind %s, want %s", i, ops[i].Kind, k)
		}
	}

	spec, _ := ParseOpSpec("h:5")
	if err := spec.Apply(c); !errors.Is(err, qerr.ErrInvalidTarget) {
		t.Errorf("Apply(h:5) on 3 qubits: err=%v, want ErrInvalidTarget", err)
	}
}

func TestGateInfo(t *testing.T) {
	docs := GateInfo()
	if len(docs) != 7 {
		t.Fatalf("expected 7 gates, got %d", len(docs))
	}
	for _, d := range docs {
		if !d.Matrix.IsUnitary(1e-10) {
			t.Errorf("%s matrix is not unitary", d.Name)
		}
		if d.Matrix.Kind() != d.Kind {
			t.Errorf("%s matrix kind %s, want %s", d.Name, d.Matrix.Kind(), d.Kind)
		}
	}
}
