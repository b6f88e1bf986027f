package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"qtermsim/internal/qerr"
)

// AnglePattern matches a single angle literal inside a larger expression, such
// as the argument of a QASM phase gate.
// Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "-2*pi/3", "3.14e-2", "90deg"
const AnglePattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?(?:deg)?)`

// piExprRegex matches pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// Unit says how a bare number is read.
type Unit string

const (
	Radians Unit = "radians"
	Degrees Unit = "degrees"
)

// ParseUnit accepts "radians"/"rad" and "degrees"/"deg".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "radians", "rad":
		return Radians, nil
	case "degrees", "deg":
		return Degrees, nil
	}
	return "", fmt.Errorf("%w: unknown angle unit %q", qerr.ErrInvalidArgument, s)
}

// ParseAngle parses s as radians. See ParseAngleIn.
func ParseAngle(s string) (float64, error) {
	return ParseAngleIn(s, Radians)
}

// ParseAngleIn parses an angle expression and returns radians.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", read in unit
//   - Degree suffix: "90deg", "45°", always degrees
//   - Pi expressions: "pi", "pi/2", "2pi", "3*pi/4", "-pi/2", always radians
//
// NaN, infinities and hexadecimal literals are rejected.
func ParseAngleIn(s string, unit Unit) (float64, error) {
	val, err := parseAngle(strings.ToLower(strings.TrimSpace(s)), unit)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("%w: angle %q is not finite", qerr.ErrInvalidArgument, s)
	}
	return val, nil
}

// parseFloat is strconv.ParseFloat restricted to decimal notation.
func parseFloat(s string) (float64, error) {
	if strings.Contains(s, "x") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

func parseAngle(s string, unit Unit) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty angle", qerr.ErrInvalidArgument)
	}

	for _, suffix := range []string{"deg", "°"} {
		if d, ok := strings.CutSuffix(s, suffix); ok {
			val, err := parseFloat(strings.TrimSpace(d))
			if err != nil {
				return 0, fmt.Errorf("%w: angle %q", qerr.ErrInvalidArgument, s)
			}
			return val * math.Pi / 180, nil
		}
	}

	if val, err := parseFloat(s); err == nil {
		if unit == Degrees {
			return val * math.Pi / 180, nil
		}
		return val, nil
	}

	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: angle %q", qerr.ErrInvalidArgument, s)
	}
	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, fmt.Errorf("%w: angle %q", qerr.ErrInvalidArgument, s)
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("%w: angle %q", qerr.ErrInvalidArgument, s)
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, nil
}

// piForms are the fractions FormatAngle recognizes, largest first.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{3 * math.Pi / 2, "3*pi/2"},
	{math.Pi, "pi"},
	{3 * math.Pi / 4, "3*pi/4"},
	{2 * math.Pi / 3, "2*pi/3"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
}

// FormatAngle renders radians, using pi notation for common fractions.
func FormatAngle(val float64) string {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// ParseTargets reads a comma or space separated list of qubit indices.
func ParseTargets(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no qubit indices in %q", qerr.ErrInvalidArgument, s)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		q, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: qubit index %q", qerr.ErrInvalidArgument, f)
		}
		out[i] = q
	}
	return out, nil
}
