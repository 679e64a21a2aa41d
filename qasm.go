package quasar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	resetRegex           = regexp.MustCompile(`^reset\s+q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
	cregRegex            = regexp.MustCompile(`creg\s+\w+\[(\d+)\]`)
	barrierRegex         = regexp.MustCompile(`^barrier\b`)
)

var qasmGateNames = map[GateType]string{
	GateI: "id", GateX: "x", GateY: "y", GateZ: "z", GateH: "h",
	GateS: "s", GateSdg: "sdg", GateT: "t", GateTdg: "tdg",
	GateRx: "rx", GateRy: "ry", GateRz: "rz", GateP: "p", GateU: "u",
	GateCX: "cx", GateCY: "cy", GateCZ: "cz", GateCH: "ch", GateCP: "cp",
	GateSwap: "swap", GateCCX: "ccx", GateCSwap: "cswap",
}

var qasmGateTypes = func() map[string]GateType {
	m := make(map[string]GateType, len(qasmGateNames))
	for t, name := range qasmGateNames {
		m[name] = t
	}
	// Aliases seen in the wild.
	m["i"] = GateI
	m["u1"] = GateP
	m["cu1"] = GateCP
	m["u3"] = GateU
	m["toffoli"] = GateCCX
	return m
}()

// ToQASM renders the circuit as OpenQASM 2.0.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(c.numQubits, 1))
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(c.numClbits, 1))

	for _, inst := range c.instructions {
		switch inst.Gate.Type {
		case GateBarrier:
			if len(inst.Qubits) == 0 {
				sb.WriteString("barrier q;\n")
				continue
			}
			parts := make([]string, len(inst.Qubits))
			for i, q := range inst.Qubits {
				parts[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(parts, ", "))
		case GateMeasure:
			cl := inst.Qubits[0]
			if len(inst.Clbits) > 0 {
				cl = inst.Clbits[0]
			}
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", inst.Qubits[0], cl)
		case GateReset:
			fmt.Fprintf(&sb, "reset q[%d];\n", inst.Qubits[0])
		default:
			name, ok := qasmGateNames[inst.Gate.Type]
			if !ok {
				// iSWAP and friends have no qelib1 spelling; keep the
				// line readable rather than dropping it.
				name = strings.ToLower(inst.Gate.Type.String())
			}
			sb.WriteString(name)
			if len(inst.Gate.Params) > 0 {
				parts := make([]string, len(inst.Gate.Params))
				for i, p := range inst.Gate.Params {
					parts[i] = FormatParam(p)
				}
				fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
			}
			sb.WriteString(" ")
			parts := make([]string, len(inst.Qubits))
			for i, q := range inst.Qubits {
				parts[i] = fmt.Sprintf("q[%d]", q)
			}
			sb.WriteString(strings.Join(parts, ", "))
			sb.WriteString(";\n")
		}
	}

	return sb.String()
}

// ParseQASM parses an OpenQASM 2.0 subset into a circuit. Statements the
// simulator cannot execute are rejected rather than skipped.
func ParseQASM(src string) (*Circuit, error) {
	c := &Circuit{}

	for lineNum, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if m := qregRegex.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[1])
				c.numQubits = n
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			if m := cregRegex.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[1])
				c.numClbits = n
			}
			continue
		}
		if barrierRegex.MatchString(line) {
			c.BarrierAll()
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[1])
			cl, _ := strconv.Atoi(m[2])
			if cl >= c.numClbits {
				c.numClbits = cl + 1
			}
			c.Measure(q, cl)
			continue
		}

		if m := resetRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[1])
			c.Reset(q)
			continue
		}

		if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
			t, ok := qasmGateTypes[strings.ToLower(m[1])]
			if !ok || t.numQubitsBare() != 3 {
				return nil, qasmError(lineNum, line)
			}
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			q3, _ := strconv.Atoi(m[4])
			c.Append(NewInstruction(NewGate(t), q1, q2, q3))
			continue
		}

		if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
			t, ok := qasmGateTypes[strings.ToLower(m[1])]
			if !ok || t.numQubitsBare() != 2 {
				return nil, qasmError(lineNum, line)
			}
			theta, okParam := ParseParamExpr(m[2])
			if !okParam {
				return nil, qasmError(lineNum, line)
			}
			q1, _ := strconv.Atoi(m[3])
			q2, _ := strconv.Atoi(m[4])
			c.Append(NewInstruction(NewGate(t, theta), q1, q2))
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			t, ok := qasmGateTypes[strings.ToLower(m[1])]
			if !ok || t.numQubitsBare() != 2 {
				return nil, qasmError(lineNum, line)
			}
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			c.Append(NewInstruction(NewGate(t), q1, q2))
			continue
		}

		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			t, ok := qasmGateTypes[strings.ToLower(m[1])]
			if !ok || t.numQubitsBare() != 1 {
				return nil, qasmError(lineNum, line)
			}
			var params []float64
			for _, part := range strings.Split(m[2], ",") {
				val, okParam := ParseParamExpr(strings.TrimSpace(part))
				if !okParam {
					return nil, qasmError(lineNum, line)
				}
				params = append(params, val)
			}
			q, _ := strconv.Atoi(m[3])
			c.Append(NewInstruction(NewGate(t, params...), q))
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			t, ok := qasmGateTypes[strings.ToLower(m[1])]
			if !ok || t.numQubitsBare() != 1 {
				return nil, qasmError(lineNum, line)
			}
			q, _ := strconv.Atoi(m[2])
			c.Append(NewInstruction(NewGate(t), q))
			continue
		}

		return nil, qasmError(lineNum, line)
	}

	return c, nil
}

func qasmError(lineNum int, line string) error {
	return &NotSupportedError{Operation: fmt.Sprintf("QASM line %d: %q", lineNum+1, line)}
}

// numQubitsBare returns the arity of a bare gate type, treating Measure
// and Reset as single-qubit statements.
func (t GateType) numQubitsBare() int {
	return Gate{Type: t}.NumQubits()
}
