package statevector

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"qtermsim/internal/qerr"
)

// Kind names a family of initial states.
type Kind string

const (
	KindStd    Kind = "std"
	KindBell   Kind = "bell"
	KindGHZ    Kind = "ghz"
	KindW      Kind = "w"
	KindRandom Kind = "random"
)

// Kinds lists the named state families in menu order.
var Kinds = []Kind{KindStd, KindBell, KindGHZ, KindW, KindRandom}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown state kind %q", qerr.ErrInvalidArgument, s)
}

// Basis returns the standard basis state with the given label; the label
// length must equal n.
func Basis(n int, label string) (*Statevector, error) {
	if len(label) != n {
		return nil, fmt.Errorf("%w: label %q has %d bits, circuit has %d qubits", qerr.ErrInvalidArgument, label, len(label), n)
	}
	return FromBitString(label)
}

// Bell returns one of the four 2-qubit Bell states:
//
//	00: (|00> + |11>)/√2    01: (|00> - |11>)/√2
//	10: (|01> + |10>)/√2    11: (|01> - |10>)/√2
func Bell(label string) (*Statevector, error) {
	var a, b string
	var sign complex128 = 1
	switch label {
	case "00":
		a, b = "00", "11"
	case "01":
		a, b, sign = "00", "11", -1
	case "10":
		a, b = "01", "10"
	case "11":
		a, b, sign = "01", "10", -1
	default:
		return nil, fmt.Errorf("%w: invalid Bell label %q", qerr.ErrInvalidArgument, label)
	}
	sa, err := FromBitString(a)
	if err != nil {
		return nil, err
	}
	sb, err := FromBitString(b)
	if err != nil {
		return nil, err
	}
	sum, err := sa.Add(sb.Scale(sign))
	if err != nil {
		return nil, err
	}
	return sum.Div(complex(math.Sqrt2, 0)), nil
}

// GHZ returns (|000> + |111>)/√2.
func GHZ() (*Statevector, error) {
	return superpose("000", "111")
}

// W returns (|001> + |010> + |100>)/√3.
func W() (*Statevector, error) {
	return superpose("001", "010", "100")
}

func superpose(labels ...string) (*Statevector, error) {
	acc, err := New(len(labels[0]))
	if err != nil {
		return nil, err
	}
	for _, l := range labels {
		s, err := FromBitString(l)
		if err != nil {
			return nil, err
		}
		if acc, err = acc.Add(s); err != nil {
			return nil, err
		}
	}
	return acc.Div(complex(math.Sqrt(float64(len(labels))), 0)), nil
}

// Random fills n qubits with real and imaginary parts drawn uniformly from
// [0, 1). The result is not normalized. A nil rng uses the global source.
func Random(n int, rng *rand.Rand) (*Statevector, error) {
	s, err := New(n)
	if err != nil {
		return nil, err
	}
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	for i := range s.amplitudes {
		s.amplitudes[i] = complex(draw(), draw())
	}
	s.Round()
	return s, nil
}

// Generate builds a named initial state for an n-qubit circuit. Bell states
// need n = 2 and GHZ/W need n = 3; other counts fail with ErrInvalidArgument.
func Generate(n int, kind Kind, label string) (*Statevector, error) {
	switch kind {
	case KindStd:
		return Basis(n, label)
	case KindBell:
		if n != 2 {
			return nil, fmt.Errorf("%w: Bell states need 2 qubits, circuit has %d", qerr.ErrInvalidArgument, n)
		}
		return Bell(label)
	case KindGHZ:
		if n != 3 {
			return nil, fmt.Errorf("%w: the GHZ state needs 3 qubits, circuit has %d", qerr.ErrInvalidArgument, n)
		}
		return GHZ()
	case KindW:
		if n != 3 {
			return nil, fmt.Errorf("%w: the W state needs 3 qubits, circuit has %d", qerr.ErrInvalidArgument, n)
		}
		return W()
	case KindRandom:
		return Random(n, nil)
	default:
		return nil, fmt.Errorf("%w: unknown state kind %q", qerr.ErrInvalidArgument, kind)
	}
}

// ParseSpec turns a command-line state description into a vector for n qubits.
//
// Accepted forms: "010" or "std:010", "bell:00", "ghz", "w", "random", and
// "amps:a0,a1,..." where each amplitude is a Go complex literal such as
// "0.7071" or "0+1i".
func ParseSpec(n int, spec string) (*Statevector, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Basis(n, strings.Repeat("0", n))
	}
	name, arg, hasArg := strings.Cut(spec, ":")
	if !hasArg && strings.Trim(spec, "01") == "" {
		return Basis(n, spec)
	}
	if strings.EqualFold(name, "amps") {
		return parseAmplitudes(n, arg)
	}
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return Generate(n, kind, arg)
}

func parseAmplitudes(n int, list string) (*Statevector, error) {
	fields := strings.Split(list, ",")
	amps := make([]Complex, len(fields))
	for i, f := range fields {
		c, err := strconv.ParseComplex(strings.TrimSpace(f), 128)
		if err != nil {
			return nil, fmt.Errorf("%w: amplitude %d %q: %v", qerr.ErrInvalidArgument, i, f, err)
		}
		amps[i] = c
	}
	s, err := FromAmplitudes(amps)
	if err != nil {
		return nil, err
	}
	if s.Qubits() != n {
		return nil, fmt.Errorf("%w: %d amplitudes describe %d qubits, circuit has %d", qerr.ErrInvalidArgument, len(amps), s.Qubits(), n)
	}
	return s, nil
}
