package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + format.AnglePattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
)

// ToQASM writes the circuit as OpenQASM 2.0. Parallel Hadamard and Pauli
// operations become one statement per target. Custom operators have no QASM
// form and make the export fail.
func (c *Circuit) ToQASM() (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.numQubits)

	for i, op := range c.ops {
		if op.custom {
			return "", fmt.Errorf("%w: operation %d is a custom %s gate with no QASM form", qerr.ErrInvalidArgument, i, op.Gate.Kind())
		}
		switch kind := op.Gate.Kind(); kind {
		case gate.KindHadamard, gate.KindPauliX, gate.KindPauliY, gate.KindPauliZ:
			name := qasmNames[kind]
			for _, t := range op.Targets {
				fmt.Fprintf(&sb, "%s q[%d];\n", name, t)
			}
		case gate.KindPhase:
			fmt.Fprintf(&sb, "p(%s) q[%d];\n", format.FormatAngle(op.Angle), op.Targets[0])
		case gate.KindCNOT:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", op.Targets[0], op.Targets[1])
		case gate.KindSwap:
			fmt.Fprintf(&sb, "swap q[%d], q[%d];\n", op.Targets[0], op.Targets[1])
		default:
			return "", fmt.Errorf("%w: operation %d has kind %s with no QASM form", qerr.ErrInvalidArgument, i, kind)
		}
	}
	return sb.String(), nil
}

var qasmNames = map[gate.Kind]string{
	gate.KindHadamard: "h",
	gate.KindPauliX:   "x",
	gate.KindPauliY:   "y",
	gate.KindPauliZ:   "z",
}

// ParseQASM builds a circuit from OpenQASM 2.0 text using the gate set
// h, x, y, z, p/u1, cx and swap. The qreg declaration sets the qubit count
// and must precede the first gate. creg, barrier and comments are ignored.
func ParseQASM(text string) (*Circuit, error) {
	return ParseQASMLimit(text, gate.MaxQubits)
}

// ParseQASMLimit is ParseQASM with a qreg width limit. A wider register fails
// with ErrResourceExhausted before any gate is built.
func ParseQASMLimit(text string, maxQubits int) (*Circuit, error) {
	var c *Circuit

	for n, line := range strings.Split(text, "\n") {
		lineNo := n + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if c != nil {
				return nil, fmt.Errorf("%w: line %d: only one qreg is supported", qerr.ErrInvalidArgument, lineNo)
			}
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("%w: line %d: malformed qreg %q", qerr.ErrInvalidArgument, lineNo, line)
			}
			size, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: qreg size %q", qerr.ErrInvalidArgument, lineNo, matches[2])
			}
			if size > maxQubits {
				return nil, fmt.Errorf("%w: line %d: %d qubits exceeds the maximum of %d", qerr.ErrResourceExhausted, lineNo, size, maxQubits)
			}
			if c, err = New(size); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		if c == nil {
			return nil, fmt.Errorf("%w: line %d: gate before qreg declaration", qerr.ErrInvalidArgument, lineNo)
		}
		if err := c.parseGateLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no qreg declaration", qerr.ErrInvalidArgument)
	}
	return c, nil
}

func (c *Circuit) parseGateLine(line string) error {
	// Two-qubit gates: cx, swap
	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		q1, _ := strconv.Atoi(matches[2])
		q2, _ := strconv.Atoi(matches[3])
		switch strings.ToLower(matches[1]) {
		case "cx", "cnot":
			return c.AddCNOT(q1, q2)
		case "swap":
			return c.AddSwap(q1, q2)
		}
		return fmt.Errorf("%w: unsupported two-qubit gate %q", qerr.ErrInvalidArgument, matches[1])
	}

	// Phase: p(θ), u1(θ)
	if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
		switch strings.ToLower(matches[1]) {
		case "p", "u1", "phase":
		default:
			return fmt.Errorf("%w: unsupported parameterized gate %q", qerr.ErrInvalidArgument, matches[1])
		}
		theta, err := format.ParseAngle(matches[2])
		if err != nil {
			return err
		}
		target, _ := strconv.Atoi(matches[3])
		return c.AddPhase(target, theta)
	}

	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		target, _ := strconv.Atoi(matches[2])
		switch name := strings.ToLower(matches[1]); name {
		case "h":
			return c.AddHadamard(target)
		case "x", "y", "z":
			axis, err := gate.ParseAxis(name)
			if err != nil {
				return err
			}
			return c.AddPauli(target, axis)
		}
		return fmt.Errorf("%w: unsupported gate %q", qerr.ErrInvalidArgument, matches[1])
	}

	return fmt.Errorf("%w: unsupported statement %q", qerr.ErrInvalidArgument, line)
}
