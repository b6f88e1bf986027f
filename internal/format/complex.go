// Package format turns amplitudes, vectors and matrices into the compact text
// shown by the console and the CLI.
package format

import (
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant digits used when a caller
// passes a precision below 1.
const DefaultPrecision = 3

func num(v float64, prec int) string {
	if prec < 1 {
		prec = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// Complex renders c with prec significant digits. Pure imaginary units print
// as "i" and "-i", zero prints as "0", and a zero part is omitted.
func Complex(c complex128, prec int) string {
	re, im := real(c), imag(c)
	switch {
	case re == 0 && im == 0:
		return "0"
	case im == 0:
		return num(re, prec)
	case re == 0:
		return imagPart(im, prec, false)
	default:
		return num(re, prec) + imagPart(im, prec, true)
	}
}

func imagPart(im float64, prec int, signed bool) string {
	var s string
	switch im {
	case 1:
		s = "i"
	case -1:
		s = "-i"
	default:
		s = num(im, prec) + "i"
	}
	if signed && im > 0 {
		s = "+" + s
	}
	return s
}

// Row renders amps as "[ a  b  c ]".
func Row(amps []complex128, prec int) string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, a := range amps {
		sb.WriteString(" ")
		sb.WriteString(Complex(a, prec))
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	return sb.String()
}

// Column renders amps one per line, right-aligned inside bracket glyphs.
func Column(amps []complex128, prec int) string {
	cells := make([]string, len(amps))
	width := 0
	for i, a := range amps {
		cells[i] = Complex(a, prec)
		width = max(width, len(cells[i]))
	}
	var sb strings.Builder
	for i, c := range cells {
		left, right := brackets(i, len(cells))
		sb.WriteString(left)
		sb.WriteString(" ")
		sb.WriteString(padLeft(c, width))
		sb.WriteString(" ")
		sb.WriteString(right)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Matrix renders a row-major rows x cols grid with every column right-aligned
// to its widest entry.
func Matrix(rows, cols int, elems []complex128, prec int) string {
	if rows*cols != len(elems) {
		return ""
	}
	cells := make([]string, len(elems))
	widths := make([]int, cols)
	for i, e := range elems {
		cells[i] = Complex(e, prec)
		widths[i%cols] = max(widths[i%cols], len(cells[i]))
	}
	var sb strings.Builder
	for r := range rows {
		left, right := brackets(r, rows)
		sb.WriteString(left)
		sb.WriteString(" ")
		for c := range cols {
			sb.WriteString(padLeft(cells[r*cols+c], widths[c]))
			sb.WriteString(" ")
		}
		sb.WriteString(right)
		sb.WriteString("\n")
	}
	return sb.String()
}

func brackets(i, n int) (string, string) {
	switch {
	case i == 0:
		return "┌", "┐"
	case i == n-1:
		return "└", "┘"
	default:
		return "│", "│"
	}
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
