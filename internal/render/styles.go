package render

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	labelW  = 3 // width of the text inside a gate box
	boxW    = 5 // ┌ + labelW + ┐
	boxCol  = 9 // column width when a gate box is present
	wireCol = 5 // column width for control, target and swap symbols only
)

// Lipgloss styles used for the coloured diagram.
var (
	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	controlStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	connectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	wireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
