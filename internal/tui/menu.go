package tui

import (
	"fmt"
	"strings"
)

// screen is the page currently shown.
type screen int

const (
	screenMain screen = iota
	screenCircuit
	screenGates
	screenVectors
	screenAbout
)

var screenTitles = map[screen]string{
	screenMain:    "Main Menu",
	screenCircuit: "Circuit Operations",
	screenGates:   "Gate Information",
	screenVectors: "Vector Operations",
	screenAbout:   "About",
}

// action identifies what a menu item does when chosen.
type action int

const (
	actNone action = iota
	actCreateCircuit
	actGateInfo
	actVectorOps
	actAbout
	actQuit
	actAddHadamard
	actAddSwap
	actAddCNOT
	actAddPauli
	actAddPhase
	actShowCircuit
	actExportQASM
	actSimulate
	actNewCircuit
	actBack
	actShowGate
	actHH
	actStdBasis
	actBellBasis
)

// menuItem is one selectable line. Items with a prompt collect input before
// the action runs.
type menuItem struct {
	label       string
	act         action
	prompt      string
	placeholder string
	arg         int
}

var menus = map[screen][]menuItem{
	screenMain: {
		{label: "Create a circuit", act: actCreateCircuit, prompt: "Number of qubits", placeholder: "2"},
		{label: "Gate information", act: actGateInfo},
		{label: "Vector operations", act: actVectorOps},
		{label: "About", act: actAbout},
		{label: "Quit", act: actQuit},
	},
	screenCircuit: {
		{label: "Add Hadamard", act: actAddHadamard, prompt: "Target qubits", placeholder: "0,1"},
		{label: "Add Swap", act: actAddSwap, prompt: "Qubits to swap", placeholder: "0,1"},
		{label: "Add CNOT", act: actAddCNOT, prompt: "Control and target", placeholder: "0,1"},
		{label: "Add Pauli", act: actAddPauli, prompt: "Axis and targets", placeholder: "x:0,1"},
		{label: "Add Phase", act: actAddPhase, prompt: "Target and angle", placeholder: "0:pi/2"},
		{label: "Show circuit", act: actShowCircuit},
		{label: "Export QASM", act: actExportQASM},
		{label: "Simulate", act: actSimulate, prompt: "Initial state", placeholder: "00, bell:00, ghz, w, random"},
		{label: "New circuit", act: actNewCircuit, prompt: "Number of qubits", placeholder: "2"},
		{label: "Back", act: actBack},
	},
	screenVectors: {
		{label: "Standard basis, 2 qubits", act: actStdBasis, arg: 2},
		{label: "Standard basis, 3 qubits", act: actStdBasis, arg: 3},
		{label: "Standard basis, 4 qubits", act: actStdBasis, arg: 4},
		{label: "Bell basis", act: actBellBasis},
		{label: "Back", act: actBack},
	},
	screenAbout: {
		{label: "Back", act: actBack},
	},
}

// items returns the menu for s. The gate screen is built from the gate
// catalogue so it always lists every supported primitive.
func (m Model) items(s screen) []menuItem {
	if s != screenGates {
		return menus[s]
	}
	out := make([]menuItem, 0, len(m.gates)+2)
	for i, g := range m.gates {
		out = append(out, menuItem{label: g.Name, act: actShowGate, arg: i})
	}
	out = append(out,
		menuItem{label: "H × H", act: actHH},
		menuItem{label: "Back", act: actBack},
	)
	return out
}

// renderMenu renders the menu panel for the current screen.
func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(screenTitles[m.screen]))
	sb.WriteString("\n\n")
	for i, item := range m.items(m.screen) {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + label))
		} else {
			sb.WriteString(menuNormalStyle.Render("   " + label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Select  ⏎ Ok  Esc Back  q Quit"))
	return menuPanelStyle.Render(sb.String())
}
