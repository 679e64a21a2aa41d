package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdaxt/quasar"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControls
	focusInputParam
)

// Model represents the TUI application state.
type Model struct {
	circuit       *quasar.Circuit
	cursorQubit   int
	cursorCol     int // instruction column under the cursor
	viewStartCol  int
	width         int
	height        int
	qasmEditor    textarea.Model
	focus         focus
	lastQASM      string
	statusMsg     string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int

	// Placement state for multi-qubit gates
	pendingGate   quasar.GateType
	pendingParams []float64
	paramInput    string
	targetQubit   int
	controlQubits []int

	// Simulation state
	seed    uint64
	hasSeed bool
	shots   int
	state   *quasar.StateVector
	counts  map[string]int
}

func initialModel(numQubits, shots int, seed uint64, hasSeed bool, circuit *quasar.Circuit) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	if circuit == nil {
		circuit = quasar.NewCircuitWithClbits(numQubits, numQubits)
	}

	m := Model{
		circuit:    circuit,
		qasmEditor: ta,
		focus:      focusCircuit,
		shots:      shots,
		seed:       seed,
		hasSeed:    hasSeed,
	}

	m.syncQASM()
	return m
}

func (m *Model) simulator() *quasar.Simulator {
	if m.hasSeed {
		return quasar.NewSimulatorWithSeed(m.seed)
	}
	return quasar.NewSimulator()
}

func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	parsed, err := quasar.ParseQASM(qasm)
	if err != nil {
		m.statusMsg = fmt.Sprintf("QASM error: %v", err)
		return
	}
	m.circuit = parsed
	m.lastQASM = qasm
	m.cursorCol = min(m.cursorCol, m.circuit.Len())
	m.cursorQubit = min(m.cursorQubit, max(m.circuit.NumQubits()-1, 0))
	m.state = nil
	m.counts = nil
	m.statusMsg = ""
}

// rebuildCircuit re-creates the circuit from an edited instruction list.
func (m *Model) rebuildCircuit(numQubits int, instructions []quasar.Instruction) {
	next := quasar.NewCircuitWithClbits(numQubits, numQubits)
	for _, inst := range instructions {
		next.Append(inst)
	}
	m.circuit = next
	m.state = nil
	m.counts = nil
	m.syncQASM()
}

func gateArity(t quasar.GateType) int {
	return quasar.Gate{Type: t}.NumQubits()
}

// placeGate inserts the pending gate at the cursor column. The qubit order
// is controls first, target last, matching the executor's convention.
func (m *Model) placeGate(target int) {
	var qubits []int
	switch gateArity(m.pendingGate) {
	case 3:
		qubits = []int{m.cursorQubit, m.controlQubits[0], target}
	case 2:
		qubits = []int{m.cursorQubit, target}
	case 0:
		// barrier spans the full register
	default:
		qubits = []int{m.cursorQubit}
	}

	inst := quasar.Instruction{
		Gate:   quasar.NewGate(m.pendingGate, m.pendingParams...),
		Qubits: qubits,
	}
	if m.pendingGate == quasar.GateMeasure {
		inst.Clbits = []int{m.cursorQubit}
	}

	instructions := append([]quasar.Instruction{}, m.circuit.Instructions()...)
	col := min(m.cursorCol, len(instructions))
	instructions = append(instructions[:col], append([]quasar.Instruction{inst}, instructions[col:]...)...)
	m.rebuildCircuit(m.circuit.NumQubits(), instructions)

	m.cursorCol = col + 1
	m.pendingParams = nil
	m.controlQubits = nil
	m.paramInput = ""
}

// deleteAtCursor removes the instruction under the cursor column.
func (m *Model) deleteAtCursor() {
	instructions := m.circuit.Instructions()
	if m.cursorCol >= len(instructions) {
		return
	}
	kept := append([]quasar.Instruction{}, instructions[:m.cursorCol]...)
	kept = append(kept, instructions[m.cursorCol+1:]...)
	m.rebuildCircuit(m.circuit.NumQubits(), kept)
}

// resizeRegister grows or shrinks the qubit register, dropping instructions
// that touch removed qubits.
func (m *Model) resizeRegister(numQubits int) {
	if numQubits < 1 || numQubits > quasar.MaxQubits {
		return
	}
	var kept []quasar.Instruction
	for _, inst := range m.circuit.Instructions() {
		fits := true
		for _, q := range inst.Qubits {
			if q >= numQubits {
				fits = false
				break
			}
		}
		if fits {
			kept = append(kept, inst)
		}
	}
	m.rebuildCircuit(numQubits, kept)
	m.cursorQubit = min(m.cursorQubit, numQubits-1)
	m.cursorCol = min(m.cursorCol, m.circuit.Len())
}

func (m *Model) runSimulation() {
	state, err := m.simulator().Run(m.circuit)
	if err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("Run failed: %v", err))
		return
	}
	m.state = state
	m.statusMsg = "Simulation complete"
}

func (m *Model) sample() {
	counts, err := m.simulator().Sample(m.circuit, m.shots)
	if err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("Sampling failed: %v", err))
		return
	}
	m.counts = counts
	m.statusMsg = fmt.Sprintf("Sampled %d shots", m.shots)
}

// firstFreeQubit returns the lowest qubit index not already chosen as an
// operand, or -1.
func (m *Model) firstFreeQubit() int {
	for q := 0; q < m.circuit.NumQubits(); q++ {
		if q != m.cursorQubit && !slicesContains(m.controlQubits, q) {
			return q
		}
	}
	return -1
}

// stepOperand moves the operand selection up or down, skipping qubits
// already used by the pending gate.
func (m *Model) stepOperand(delta int) {
	for next := m.targetQubit + delta; next >= 0 && next < m.circuit.NumQubits(); next += delta {
		if next != m.cursorQubit && !slicesContains(m.controlQubits, next) {
			m.targetQubit = next
			return
		}
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.rebuildCircuit(m.circuit.NumQubits(), nil)
				m.cursorCol = 0
				m.viewStartCol = 0
			case "ctrl+s":
				qasm := m.circuit.ToQASM()
				if err := os.WriteFile("circuit.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "r":
				m.runSimulation()
			case "s":
				m.sample()
			case "m":
				m.circuit.MeasureAll()
				m.syncQASM()
				m.cursorCol = m.circuit.Len()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits()-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorCol > 0 {
					m.cursorCol--
					if m.cursorCol < m.viewStartCol {
						m.viewStartCol = m.cursorCol
					}
				}
			case "right", "l":
				if m.cursorCol < m.circuit.Len() {
					m.cursorCol++
				}
			case "+", "=":
				m.resizeRegister(m.circuit.NumQubits() + 1)
			case "-":
				m.resizeRegister(m.circuit.NumQubits() - 1)
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.deleteAtCursor()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingGate = item.gateType
				m.pendingParams = nil
				m.controlQubits = nil

				if item.needsParams {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				m.startPlacement()
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.controlQubits = nil
			case "up", "k":
				m.stepOperand(-1)
			case "down", "j":
				m.stepOperand(1)
			case "enter":
				m.placeGate(m.targetQubit)
				m.focus = focusCircuit
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.controlQubits = nil
			case "up", "k":
				m.stepOperand(-1)
			case "down", "j":
				m.stepOperand(1)
			case "enter":
				m.controlQubits = append(m.controlQubits, m.targetQubit)
				m.focus = focusSelectTarget
				if free := m.firstFreeQubit(); free >= 0 {
					m.targetQubit = free
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				params, ok := m.parseParams(m.paramInput)
				if !ok {
					m.statusMsg = "Invalid parameter: use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
					break
				}
				m.pendingParams = params
				m.startPlacement()
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' || ch == '-' || ch == 'e' || ch == 'E' || ch == '+' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.paramInput += key
					}
				}
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// startPlacement routes the pending gate to operand selection or places it
// immediately for single-qubit gates.
func (m *Model) startPlacement() {
	arity := gateArity(m.pendingGate)
	if arity > m.circuit.NumQubits() {
		m.statusMsg = fmt.Sprintf("Not enough qubits for %s", m.pendingGate)
		m.focus = focusCircuit
		return
	}
	switch arity {
	case 3:
		m.focus = focusSelectControls
		if free := m.firstFreeQubit(); free >= 0 {
			m.targetQubit = free
		}
	case 2:
		m.focus = focusSelectTarget
		if free := m.firstFreeQubit(); free >= 0 {
			m.targetQubit = free
		}
	default:
		m.placeGate(-1)
		m.focus = focusCircuit
	}
}

// parseParams parses a comma-separated parameter list.
func (m *Model) parseParams(input string) ([]float64, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, true
	}
	var params []float64
	for _, part := range strings.Split(input, ",") {
		val, ok := quasar.ParseParamExpr(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		params = append(params, val)
	}
	return params, true
}

// Helper function
func slicesContains(slice []int, val int) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	sidePanel := m.renderSidePanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, sidePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	if m.focus == focusInputParam {
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}

// renderParamInput renders parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Value: %s_", m.paramInput))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
