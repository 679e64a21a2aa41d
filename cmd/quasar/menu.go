package main

import (
	"fmt"
	"strings"

	"github.com/pdaxt/quasar"
)

// parameterHint provides a hint for parameter input
type parameterHint struct {
	example string
}

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateType    quasar.GateType
	symbol      string
	needsParams bool
	paramHint   parameterHint
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items. Only gates the
// simulator can execute are listed.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gateType: quasar.GateH, symbol: "H"},
			{name: "Pauli-X (NOT)", gateType: quasar.GateX, symbol: "X"},
			{name: "Pauli-Y", gateType: quasar.GateY, symbol: "Y"},
			{name: "Pauli-Z", gateType: quasar.GateZ, symbol: "Z"},
			{name: "Identity", gateType: quasar.GateI, symbol: "I"},
			{name: "Phase (S)", gateType: quasar.GateS, symbol: "S"},
			{name: "Phase Dagger (S†)", gateType: quasar.GateSdg, symbol: "S†"},
			{name: "T Gate", gateType: quasar.GateT, symbol: "T"},
			{name: "T Dagger (T†)", gateType: quasar.GateTdg, symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gateType: quasar.GateRx, symbol: "RX", needsParams: true, paramHint: parameterHint{example: "pi/2"}},
			{name: "Rotate Y", gateType: quasar.GateRy, symbol: "RY", needsParams: true, paramHint: parameterHint{example: "pi/2"}},
			{name: "Rotate Z", gateType: quasar.GateRz, symbol: "RZ", needsParams: true, paramHint: parameterHint{example: "pi/2"}},
			{name: "Phase Shift", gateType: quasar.GateP, symbol: "P", needsParams: true, paramHint: parameterHint{example: "pi/4"}},
			{name: "Universal U", gateType: quasar.GateU, symbol: "U", needsParams: true, paramHint: parameterHint{example: "theta,phi,lambda"}},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", gateType: quasar.GateCX, symbol: "●─⊕"},
			{name: "Controlled-Y", gateType: quasar.GateCY, symbol: "●─Y"},
			{name: "Controlled-Z", gateType: quasar.GateCZ, symbol: "●─●"},
			{name: "Controlled-H", gateType: quasar.GateCH, symbol: "●─H"},
			{name: "C-Phase (CP)", gateType: quasar.GateCP, symbol: "●─P", needsParams: true, paramHint: parameterHint{example: "pi/4"}},
			{name: "SWAP", gateType: quasar.GateSwap, symbol: "×─×"},
			{name: "Toffoli (CCX)", gateType: quasar.GateCCX, symbol: "●─●─⊕"},
			{name: "Fredkin (CSWAP)", gateType: quasar.GateCSwap, symbol: "●─×─×"},
		},
	},
	{
		name: "Special",
		items: []menuItem{
			{name: "Measure", gateType: quasar.GateMeasure, symbol: "M"},
			{name: "Reset", gateType: quasar.GateReset, symbol: "|0⟩"},
			{name: "Barrier", gateType: quasar.GateBarrier, symbol: "┃"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if (quasar.Gate{Type: item.gateType}).NumQubits() > 1 {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
