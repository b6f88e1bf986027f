// Package render draws circuit metadata as a text diagram and lays out
// statevectors as labelled tables. The diagram knows nothing about matrices:
// everything it needs comes from circuit.OpInfo.
package render

import (
	"fmt"
	"math"
	"strings"

	"qtermsim/internal/circuit"
	"qtermsim/internal/format"
	"qtermsim/internal/gate"
)

// Options controls diagram layout.
type Options struct {
	// Compact packs operations on disjoint qubits into the same column.
	// Otherwise every operation gets its own column, in log order.
	Compact bool
	// Styled colours boxes and symbols with lipgloss.
	Styled bool
}

// cell describes what occupies one qubit row of one column.
type cell struct {
	label       string // boxed gate text, exactly labelW runes
	symbol      string // control, target or swap glyph
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

type column struct {
	cells []cell
	boxed bool
}

// Diagram renders ops on n qubit wires, three text lines per qubit.
func Diagram(ops []circuit.OpInfo, n int, opts Options) string {
	cols := layout(ops, n, opts.Compact)
	p := painter{styled: opts.Styled}

	digits := len(fmt.Sprint(max(n-1, 0)))
	labelPad := strings.Repeat(" ", digits+2)

	var sb strings.Builder
	for q := range n {
		var top, mid, bot strings.Builder
		top.WriteString(labelPad)
		bot.WriteString(labelPad)
		mid.WriteString(p.label(fmt.Sprintf("q%-*d ", digits, q)))
		mid.WriteString(p.wire("─"))
		top.WriteString(" ")
		bot.WriteString(" ")

		for _, col := range cols {
			w := wireCol
			if col.boxed {
				w = boxCol
			}
			t, m, b := renderCell(col.cells[q], w, p)
			top.WriteString(t)
			mid.WriteString(m)
			bot.WriteString(b)
		}
		mid.WriteString(p.wire("─"))

		sb.WriteString(strings.TrimRight(top.String(), " "))
		sb.WriteString("\n")
		sb.WriteString(mid.String())
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(bot.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// layout assigns every operation to a column. In compact mode an operation
// lands in the first column after the last one touching any qubit in its
// span, so log order is preserved per wire.
func layout(ops []circuit.OpInfo, n int, compact bool) []column {
	var cols []column
	next := make([]int, n)

	for _, op := range ops {
		span := occupied(op)
		idx := len(cols)
		if compact {
			idx = 0
			for _, q := range span {
				if q >= 0 && q < n {
					idx = max(idx, next[q])
				}
			}
		}
		for idx >= len(cols) {
			cols = append(cols, column{cells: make([]cell, n)})
		}
		for _, q := range span {
			if q >= 0 && q < n {
				next[q] = idx + 1
			}
		}
		place(&cols[idx], op, n)
	}
	return cols
}

// isPair reports whether op is drawn as two linked symbols.
func isPair(op circuit.OpInfo) bool {
	return !op.Custom && len(op.Targets) == 2 &&
		(op.Kind == gate.KindCNOT || op.Kind == gate.KindSwap)
}

func occupied(op circuit.OpInfo) []int {
	if !isPair(op) {
		return op.Targets
	}
	lo, hi := min(op.Targets[0], op.Targets[1]), max(op.Targets[0], op.Targets[1])
	span := make([]int, 0, hi-lo+1)
	for q := lo; q <= hi; q++ {
		span = append(span, q)
	}
	return span
}

func place(col *column, op circuit.OpInfo, n int) {
	if !isPair(op) {
		label := boxLabel(op)
		for _, q := range op.Targets {
			if q >= 0 && q < n {
				col.cells[q].label = label
				col.boxed = true
			}
		}
		return
	}

	a, b := op.Targets[0], op.Targets[1]
	if a < 0 || a >= n || b < 0 || b >= n {
		return
	}
	if op.Kind == gate.KindCNOT {
		col.cells[a].symbol = "•"
		col.cells[b].symbol = "⊕"
	} else {
		col.cells[a].symbol = "x"
		col.cells[b].symbol = "x"
	}
	lo, hi := min(a, b), max(a, b)
	col.cells[lo].vertBelow = true
	col.cells[hi].vertAbove = true
	for q := lo + 1; q < hi; q++ {
		col.cells[q].passThrough = true
		col.cells[q].vertAbove = true
		col.cells[q].vertBelow = true
	}
}

func boxLabel(op circuit.OpInfo) string {
	if op.Custom {
		return " U "
	}
	switch op.Kind {
	case gate.KindHadamard:
		return " H "
	case gate.KindPauliX:
		return "P_X"
	case gate.KindPauliY:
		return "P_Y"
	case gate.KindPauliZ:
		return "P_Z"
	case gate.KindIdentity:
		return " I "
	case gate.KindPhase:
		switch {
		case math.Abs(op.Angle-math.Pi) < 1e-10:
			return " π "
		case math.Abs(op.Angle-math.Pi/2) < 1e-10:
			return "π/2"
		case math.Abs(op.Angle-math.Pi/4) < 1e-10:
			return "π/4"
		}
		return "Phi"
	}
	return " U "
}

// renderCell returns the three lines of one cell, each exactly w columns wide.
func renderCell(c cell, w int, p painter) (top, mid, bot string) {
	centre := w / 2
	empty := strings.Repeat(" ", w)
	vert := strings.Repeat(" ", centre) + p.connector("│") + strings.Repeat(" ", w-centre-1)
	dashL := strings.Repeat("─", centre)
	dashR := strings.Repeat("─", w-centre-1)

	switch {
	case c.label != "":
		margin := (w - boxW) / 2
		right := w - boxW - margin
		top = strings.Repeat(" ", margin) + p.gate("┌"+strings.Repeat("─", labelW)+"┐") + strings.Repeat(" ", right)
		mid = p.wire(strings.Repeat("─", margin)) + p.gate("┤"+c.label+"├") + p.wire(strings.Repeat("─", right))
		bot = strings.Repeat(" ", margin) + p.gate("└"+strings.Repeat("─", labelW)+"┘") + strings.Repeat(" ", right)

	case c.symbol != "":
		top, bot = empty, empty
		if c.vertAbove {
			top = vert
		}
		if c.vertBelow {
			bot = vert
		}
		mid = p.wire(dashL) + p.control(c.symbol) + p.wire(dashR)

	case c.passThrough:
		top, bot = vert, vert
		mid = p.wire(dashL) + p.connector("┼") + p.wire(dashR)

	default:
		top, bot = empty, empty
		mid = p.wire(strings.Repeat("─", w))
	}
	return top, mid, bot
}

// GateList renders one line per operation, e.g. "{ 0 2 } CNOT".
func GateList(ops []circuit.OpInfo) string {
	var sb strings.Builder
	for _, op := range ops {
		sb.WriteString("{ ")
		for _, t := range op.Targets {
			fmt.Fprintf(&sb, "%d ", t)
		}
		sb.WriteString("} ")
		sb.WriteString(op.Kind.String())
		if op.Kind == gate.KindPhase && !op.Custom {
			fmt.Fprintf(&sb, "(%s)", format.FormatAngle(op.Angle))
		}
		if op.Custom {
			sb.WriteString(" (custom)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Columns reports how many columns Diagram would draw.
func Columns(ops []circuit.OpInfo, n int, compact bool) int {
	return len(layout(ops, n, compact))
}

type painter struct {
	styled bool
}

func (p painter) render(style interface{ Render(...string) string }, s string) string {
	if !p.styled || s == "" {
		return s
	}
	return style.Render(s)
}

func (p painter) gate(s string) string      { return p.render(gateStyle, s) }
func (p painter) control(s string) string   { return p.render(controlStyle, s) }
func (p painter) connector(s string) string { return p.render(connectorStyle, s) }
func (p painter) label(s string) string     { return p.render(qubitLabelStyle, s) }
func (p painter) wire(s string) string      { return p.render(wireStyle, s) }
