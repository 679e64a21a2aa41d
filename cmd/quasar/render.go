package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdaxt/quasar"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width, counting runes so
// multi-byte gate names like |0⟩ stay aligned.
func padCenter(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	total := width - len(runes)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(t quasar.GateType) string {
	switch t {
	case quasar.GateMeasure:
		return "M"
	case quasar.GateReset:
		return "|0⟩"
	default:
		return t.String()
	}
}

// operandSymbol returns the wire symbol for one operand of a multi-qubit
// gate. Controls render as ●, swap operands as ×, flip targets as ⊕.
func operandSymbol(t quasar.GateType, position, arity int) string {
	switch t {
	case quasar.GateSwap:
		return "×"
	case quasar.GateCSwap:
		if position == 0 {
			return "●"
		}
		return "×"
	case quasar.GateCZ:
		return "●"
	case quasar.GateCH:
		if position == arity-1 {
			return "H"
		}
		return "●"
	case quasar.GateCP:
		if position == arity-1 {
			return "P"
		}
		return "●"
	default:
		if position == arity-1 {
			return "⊕"
		}
		return "●"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// cellInfo describes what one (column, qubit) cell of the grid shows.
type cellInfo struct {
	inst        *quasar.Instruction
	operandIdx  int // index into inst.Qubits, -1 when not an operand
	isBarrier   bool
	passThrough bool // a vertical connector crosses this wire
}

// cellAt derives the cell contents for the instruction at column col.
func (m Model) cellAt(col, qubit int) cellInfo {
	instructions := m.circuit.Instructions()
	if col >= len(instructions) {
		return cellInfo{operandIdx: -1}
	}
	inst := &instructions[col]

	if inst.Gate.Type == quasar.GateBarrier {
		if len(inst.Qubits) == 0 || slicesContains(inst.Qubits, qubit) {
			return cellInfo{inst: inst, operandIdx: -1, isBarrier: true}
		}
		return cellInfo{operandIdx: -1}
	}

	for i, q := range inst.Qubits {
		if q == qubit {
			return cellInfo{inst: inst, operandIdx: i}
		}
	}

	// Between the lowest and highest operand a connector passes through.
	if len(inst.Qubits) > 1 {
		lo, hi := inst.Qubits[0], inst.Qubits[0]
		for _, q := range inst.Qubits[1:] {
			lo = min(lo, q)
			hi = max(hi, q)
		}
		if qubit > lo && qubit < hi {
			return cellInfo{inst: inst, operandIdx: -1, passThrough: true}
		}
	}
	return cellInfo{operandIdx: -1}
}

// connectsUp reports whether the cell needs a vertical wire toward qubit-1.
func (info cellInfo) connectsUp(qubit int) bool {
	if info.inst == nil || len(info.inst.Qubits) < 2 {
		return false
	}
	for _, q := range info.inst.Qubits {
		if q < qubit {
			return true
		}
	}
	return info.passThrough
}

// connectsDown reports whether the cell needs a vertical wire toward qubit+1.
func (info cellInfo) connectsDown(qubit int) bool {
	if info.inst == nil || len(info.inst.Qubits) < 2 {
		return false
	}
	for _, q := range info.inst.Qubits {
		if q > qubit {
			return true
		}
	}
	return info.passThrough
}

// renderCell returns 3 lines (top, mid, bot) for a single cell. Each line
// is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight, qubit int) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.inst != nil && info.operandIdx >= 0 && len(info.inst.Qubits) > 1:
			sym := operandSymbol(info.inst.Gate.Type, info.operandIdx, len(info.inst.Qubits))
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.inst != nil && info.operandIdx >= 0:
			name := padCenter(gateDisplayName(info.inst.Gate.Type), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.inst != nil && info.operandIdx >= 0 && len(info.inst.Qubits) > 1:
		sym := operandSymbol(info.inst.Gate.Type, info.operandIdx, len(info.inst.Qubits))
		top = emptyRow
		if info.connectsUp(qubit) {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.connectsDown(qubit) {
			bot = vertRow
		}

	case info.inst != nil && info.operandIdx >= 0:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.inst.Gate.Type), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	// How many columns fit
	availWidth := width - labelVisualW - 4
	maxCols := max(availWidth/cellW, 1)

	startCol := m.viewStartCol
	if m.cursorCol >= startCol+maxCols {
		startCol = m.cursorCol - maxCols + 1
	}

	if startCol > 0 {
		fmt.Fprintf(&sb, "  ◀ showing columns %d–%d\n", startCol, startCol+maxCols-1)
	}

	// Column number header
	header := strings.Repeat(" ", labelVisualW)
	for col := startCol; col < startCol+maxCols; col++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", col), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := 0; qubit < m.circuit.NumQubits(); qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for col := startCol; col < startCol+maxCols; col++ {
			info := m.cellAt(col, qubit)

			hl := hlNone
			if col == m.cursorCol && qubit == m.cursorQubit && (m.focus == focusCircuit || m.focus == focusMenu || m.focus == focusSelectTarget || m.focus == focusSelectControls) {
				hl = hlCursor
			} else if col == m.cursorCol && qubit == m.targetQubit && (m.focus == focusSelectTarget || m.focus == focusSelectControls) {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl, qubit)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	switch m.focus {
	case focusSelectTarget:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingGate.String()))
		sb.WriteString("  Select target qubit: ")
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	case focusSelectControls:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingGate.String()))
		sb.WriteString("  Select second operand: ")
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	default:
		fmt.Fprintf(&sb, "\n  Position: Column %d, Qubit %d  │  Depth %d", m.cursorCol, m.cursorQubit, m.circuit.Depth())
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderSidePanel renders the QASM editor with simulation results below it.
func (m Model) renderSidePanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	if m.state != nil {
		sb.WriteString("\n\n")
		sb.WriteString(titleStyle.Render("Probabilities"))
		sb.WriteString("\n")
		sb.WriteString(m.renderProbabilities())
	}
	if m.counts != nil {
		sb.WriteString("\n\n")
		sb.WriteString(titleStyle.Render(fmt.Sprintf("Counts (%d shots)", m.shots)))
		sb.WriteString("\n")
		sb.WriteString(m.renderHistogram())
	}

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// renderProbabilities renders a bar per basis state, largest first,
// capped at eight rows.
func (m Model) renderProbabilities() string {
	probs := m.state.Probabilities()
	type entry struct {
		index int
		p     float64
	}
	entries := make([]entry, 0, len(probs))
	for i, p := range probs {
		if p > 1e-6 {
			entries = append(entries, entry{i, p})
		}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].p != entries[b].p {
			return entries[a].p > entries[b].p
		}
		return entries[a].index < entries[b].index
	})
	if len(entries) > 8 {
		entries = entries[:8]
	}

	var sb strings.Builder
	n := m.circuit.NumQubits()
	for _, e := range entries {
		label := fmt.Sprintf("|%0*b⟩", n, e.index)
		bar := strings.Repeat("█", max(int(e.p*barW), 1))
		sb.WriteString(barLabelStyle.Render(label))
		fmt.Fprintf(&sb, " %s %.4f\n", barStyle.Render(bar), e.p)
	}
	return sb.String()
}

// renderHistogram renders sampled counts sorted by frequency.
func (m Model) renderHistogram() string {
	type entry struct {
		bits  string
		count int
	}
	entries := make([]entry, 0, len(m.counts))
	total := 0
	for bits, count := range m.counts {
		entries = append(entries, entry{bits, count})
		total += count
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].count != entries[b].count {
			return entries[a].count > entries[b].count
		}
		return entries[a].bits < entries[b].bits
	})
	if len(entries) > 8 {
		entries = entries[:8]
	}

	var sb strings.Builder
	for _, e := range entries {
		frac := float64(e.count) / float64(total)
		bar := strings.Repeat("█", max(int(frac*barW), 1))
		sb.WriteString(barLabelStyle.Render(e.bits))
		fmt.Fprintf(&sb, " %s %d\n", barStyle.Render(bar), e.count)
	}
	return sb.String()
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move column  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("r Run  s Sample  m Measure all  Tab Focus  Bksp Delete  ^R Clear  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y). It handles ANSI escape sequences by tracking visible
// column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in
// a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
