// Package tui is the interactive console: a menu-driven bubbletea program for
// building circuits, simulating them and browsing gates and bases.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"qtermsim/internal/circuit"
	"qtermsim/internal/config"
	"qtermsim/internal/format"
	"qtermsim/internal/gate"
	"qtermsim/internal/qerr"
	"qtermsim/internal/render"
	"qtermsim/internal/statevector"
)

const aboutText = `qtermsim simulates n-qubit circuits on dense statevectors.

Build a circuit from Hadamard, Pauli, Phase, CNOT and Swap gates,
then evolve a named initial state through it and inspect the
amplitudes and measurement probabilities.

Qubit 0 is the most significant bit of every basis label.`

// Model represents the console state.
type Model struct {
	cfg    config.Config
	logger *log.Logger

	screen screen
	cursor int
	width  int
	height int

	circ  *circuit.Circuit
	gates []circuit.GateDoc

	// Prompt state
	input     textinput.Model
	prompting bool
	pending   menuItem

	output    string
	statusMsg string
	statusErr bool
}

// New returns the console at the main menu. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "› "

	return Model{
		cfg:    cfg,
		logger: logger,
		screen: screenMain,
		gates:  circuit.GateInfo(),
		input:  ti,
	}
}

// Run starts the console on the alternate screen and blocks until it exits.
func Run(cfg config.Config, logger *log.Logger) error {
	p := tea.NewProgram(New(cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		m.statusMsg = ""
		m.statusErr = false
		return m.updateMenu(key)
	}
	return m, nil
}

func (m Model) updateMenu(key string) (tea.Model, tea.Cmd) {
	items := m.items(m.screen)
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		m.back()
	case "enter":
		return m.choose(items[m.cursor])
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(items) {
				m.cursor = i
				return m.choose(items[i])
			}
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.statusMsg = ""
		m.statusErr = false
		if err := m.perform(m.pending, text); err != nil {
			m.logger.Debug("input rejected", "action", m.pending.label, "input", text, "err", err)
			m.statusMsg = err.Error()
			m.statusErr = true
			return m, nil
		}
		m.closePrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// choose runs item, opening its prompt first when it needs input.
func (m Model) choose(item menuItem) (tea.Model, tea.Cmd) {
	if item.act == actQuit {
		return m, tea.Quit
	}
	if item.prompt == "" {
		if err := m.perform(item, ""); err != nil {
			m.statusMsg = err.Error()
			m.statusErr = true
		}
		return m, nil
	}

	m.pending = item
	m.prompting = true
	m.input.Reset()
	m.input.Placeholder = item.placeholder
	if item.act == actCreateCircuit || item.act == actNewCircuit {
		m.input.Placeholder = strconv.Itoa(m.cfg.Qubits)
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) back() {
	if m.screen == screenMain {
		return
	}
	m.screen = screenMain
	m.cursor = 0
	m.output = ""
}

func (m *Model) enter(s screen, output string) {
	m.screen = s
	m.cursor = 0
	m.output = output
}

// perform carries out a menu action. On error the model is left unchanged.
func (m *Model) perform(item menuItem, text string) error {
	prec := m.cfg.Precision

	switch item.act {
	case actCreateCircuit, actNewCircuit:
		n, err := m.parseQubits(text)
		if err != nil {
			return err
		}
		c, err := circuit.New(n)
		if err != nil {
			return err
		}
		m.circ = c
		m.enter(screenCircuit, "")
		m.statusMsg = fmt.Sprintf("Created a %d-qubit circuit", n)
		m.logger.Debug("circuit created", "qubits", n)

	case actGateInfo:
		m.enter(screenGates, "Select a gate to show its matrix.")
	case actVectorOps:
		m.enter(screenVectors, "Select a basis to list its vectors.")
	case actAbout:
		m.enter(screenAbout, aboutText)
	case actBack:
		m.back()

	case actAddHadamard, actAddSwap, actAddCNOT, actAddPauli, actAddPhase:
		spec, err := m.opSpec(item.act, text)
		if err != nil {
			return err
		}
		if err := spec.Apply(m.circ); err != nil {
			return err
		}
		m.output = ""
		m.statusMsg = "Added " + spec.String()
		m.logger.Debug("gate added", "op", spec.String(), "gates", m.circ.Len())

	case actShowCircuit:
		m.output = render.GateList(m.circ.Ops())
		if m.output == "" {
			m.output = "The circuit is empty."
		}
	case actExportQASM:
		q, err := m.circ.ToQASM()
		if err != nil {
			return err
		}
		m.output = q

	case actSimulate:
		out, err := m.simulate(text)
		if err != nil {
			return err
		}
		m.output = out

	case actShowGate:
		g := m.gates[item.arg]
		m.output = fmt.Sprintf("%s (%s)\n%s\n\n%s", g.Name, g.Spec, g.Description,
			format.Matrix(g.Matrix.Rows(), g.Matrix.Cols(), g.Matrix.Elements(), prec))
	case actHH:
		h := gate.Hadamard2()
		hh, err := h.Mul(h)
		if err != nil {
			return err
		}
		m.output = fmt.Sprintf("H × H =\n%s\n\nEquals I: %t",
			format.Matrix(hh.Rows(), hh.Cols(), hh.Elements(), prec),
			hh.ApproxEqual(gate.Identity2(), statevector.Epsilon))

	case actStdBasis:
		out, err := render.StdBasis(item.arg, prec)
		if err != nil {
			return err
		}
		m.output = out
	case actBellBasis:
		out, err := render.BellBasis(prec)
		if err != nil {
			return err
		}
		m.output = out
	}
	return nil
}

func (m *Model) parseQubits(text string) (int, error) {
	if text == "" {
		return m.cfg.Qubits, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a qubit count", qerr.ErrInvalidArgument, text)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: a circuit needs at least one qubit", qerr.ErrInvalidArgument)
	}
	if n > m.cfg.MaxQubits {
		return 0, fmt.Errorf("%w: %d qubits exceeds the configured maximum of %d", qerr.ErrResourceExhausted, n, m.cfg.MaxQubits)
	}
	return n, nil
}

var opPrefixes = map[action]string{
	actAddHadamard: "h:",
	actAddSwap:     "swap:",
	actAddCNOT:     "cx:",
	actAddPhase:    "p:",
}

func (m *Model) opSpec(act action, text string) (circuit.OpSpec, error) {
	spec, err := circuit.ParseOpSpecIn(opPrefixes[act]+text, m.cfg.Unit())
	if err != nil {
		return circuit.OpSpec{}, err
	}
	if act == actAddPauli && spec.Name != "x" && spec.Name != "y" && spec.Name != "z" {
		return circuit.OpSpec{}, fmt.Errorf("%w: Pauli axis must be x, y or z", qerr.ErrInvalidArgument)
	}
	return spec, nil
}

func (m *Model) simulate(text string) (string, error) {
	n := m.circ.Qubits()
	initial, err := statevector.ParseSpec(n, text)
	if err != nil {
		return "", err
	}
	final, steps, err := circuit.EvolveTrace(initial, m.circ)
	if err != nil {
		return "", err
	}
	m.logger.Debug("simulated", "qubits", n, "gates", m.circ.Len(), "norm", final.Norm())

	prec := m.cfg.Precision
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Initial state"))
	sb.WriteString("\n")
	sb.WriteString(format.Column(initial.Amplitudes(), prec))
	if m.cfg.Trace {
		for _, st := range steps {
			fmt.Fprintf(&sb, "\nStep %d: %s %v\n", st.Index+1, st.Op.Kind, st.Op.Targets)
			sb.WriteString(format.Row(st.State.Amplitudes(), prec))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Final state"))
	sb.WriteString("\n")
	sb.WriteString(format.Column(final.Amplitudes(), prec))
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Probabilities"))
	sb.WriteString("\n")
	sb.WriteString(render.Probabilities(final, prec))
	sb.WriteString("\n\n")
	sb.WriteString(render.QubitMarginals(final, prec))
	return sb.String(), nil
}
