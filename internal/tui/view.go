package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qtermsim/internal/render"
)

const menuWidth = 34

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := titleStyle.Render("qtermsim") + dimStyle.Render("  dense statevector circuit simulator")
	menu := m.renderMenu()
	outW := max(m.width-lipgloss.Width(menu)-4, 20)
	output := outputPanelStyle.Width(outW).Render(m.renderOutput())

	body := lipgloss.JoinHorizontal(lipgloss.Top, menu, output)
	frame := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus())

	if m.prompting {
		frame = overlayAt(frame, m.renderPrompt(), 2, 2)
	}
	return frame
}

// renderOutput shows the packed circuit diagram above the latest result on the
// circuit screen, and the latest result alone elsewhere.
func (m Model) renderOutput() string {
	if m.screen != screenCircuit || m.circ == nil {
		return m.output
	}
	var sb strings.Builder
	ops, n := m.circ.Ops(), m.circ.Qubits()
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%d qubits, %d gates, %d columns", n, len(ops), render.Columns(ops, n, true))))
	sb.WriteString("\n")
	sb.WriteString(render.Diagram(ops, n, render.Options{Compact: true, Styled: true}))
	if m.output != "" {
		sb.WriteString("\n")
		sb.WriteString(m.output)
	}
	return sb.String()
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("✗ " + m.statusMsg)
	}
	return statusStyle.Render(m.statusMsg)
}

// renderPrompt renders the input overlay for the pending action.
func (m Model) renderPrompt() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.pending.prompt))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	if m.statusErr && m.statusMsg != "" {
		sb.WriteString(errorStyle.Render(m.statusMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("⏎ Ok  Esc ✕"))
	return promptBorderStyle.Render(sb.String())
}

// overlayAt draws overlay on top of bg with its top-left corner at visible
// column x, line y.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		bgLines[row] = spliceLineAt(bgLines[row], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine covered by overlay,
// keeping escape sequences on both sides intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
