package circuit

import (
	"fmt"
	"strings"

	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
)

// OpSpec is a gate request in the short command-line form
//
//	h:0,1   x:1   y:0,2   z:3   cx:0,1   swap:0,2   p:0:pi/2
type OpSpec struct {
	Name    string
	Targets []int
	Angle   float64
}

// ParseOpSpec parses s reading bare phase angles as radians.
func ParseOpSpec(s string) (OpSpec, error) {
	return ParseOpSpecIn(s, format.Radians)
}

// ParseOpSpecIn parses s reading bare phase angles in unit.
func ParseOpSpecIn(s string, unit format.Unit) (OpSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 {
		return OpSpec{}, fmt.Errorf("%w: op %q, want name:targets", qerr.ErrInvalidArgument, s)
	}
	spec := OpSpec{Name: normalizeName(parts[0])}
	targets, err := format.ParseTargets(parts[1])
	if err != nil {
		return OpSpec{}, fmt.Errorf("op %q: %w", s, err)
	}
	spec.Targets = targets

	switch spec.Name {
	case "h", "x", "y", "z":
		if len(parts) == 3 {
			return OpSpec{}, fmt.Errorf("%w: op %q takes no angle", qerr.ErrInvalidArgument, s)
		}
	case "cx", "swap":
		if len(parts) == 3 || len(targets) != 2 {
			return OpSpec{}, fmt.Errorf("%w: op %q needs exactly two qubits", qerr.ErrInvalidArgument, s)
		}
	case "p":
		if len(parts) != 3 || len(targets) != 1 {
			return OpSpec{}, fmt.Errorf("%w: op %q, want p:qubit:angle", qerr.ErrInvalidArgument, s)
		}
		if spec.Angle, err = format.ParseAngleIn(parts[2], unit); err != nil {
			return OpSpec{}, fmt.Errorf("op %q: %w", s, err)
		}
	default:
		return OpSpec{}, fmt.Errorf("%w: unknown gate %q", qerr.ErrInvalidArgument, parts[0])
	}
	return spec, nil
}

func normalizeName(s string) string {
	switch n := strings.ToLower(strings.TrimSpace(s)); n {
	case "cnot":
		return "cx"
	case "phase", "u1":
		return "p"
	default:
		return n
	}
}

// Apply appends the requested operation to c.
func (s OpSpec) Apply(c *Circuit) error {
	switch s.Name {
	case "h":
		return c.AddHadamard(s.Targets...)
	case "x", "y", "z":
		axis, err := gate.ParseAxis(s.Name)
		if err != nil {
			return err
		}
		return c.AddPauliParallel(axis, s.Targets...)
	case "cx":
		return c.AddCNOT(s.Targets[0], s.Targets[1])
	case "swap":
		return c.AddSwap(s.Targets[0], s.Targets[1])
	case "p":
		return c.AddPhase(s.Targets[0], s.Angle)
	}
	return fmt.Errorf("%w: unknown gate %q", qerr.ErrInvalidArgument, s.Name)
}

func (s OpSpec) String() string {
	qs := make([]string, len(s.Targets))
	for i, t := range s.Targets {
		qs[i] = fmt.Sprint(t)
	}
	out := s.Name + ":" + strings.Join(qs, ",")
	if s.Name == "p" {
		out += ":" + format.FormatAngle(s.Angle)
	}
	return out
}
