package quasar

// Instruction is one gate application: the gate plus the qubits it touches.
// Qubit order is significant: controls come first, the acted-upon qubit last.
// Clbits is populated only for measurements.
type Instruction struct {
	Gate   Gate
	Qubits []int
	Clbits []int
}

// NewInstruction builds an instruction with no classical bits.
func NewInstruction(g Gate, qubits ...int) Instruction {
	return Instruction{Gate: g, Qubits: qubits}
}

// Circuit is an ordered instruction list over a fixed qubit/clbit register.
// It is pure data: the builder performs no bounds validation, the executor
// validates indices at dispatch time.
type Circuit struct {
	numQubits    int
	numClbits    int
	instructions []Instruction
	name         string
}

// NewCircuit creates a circuit with the given number of qubits and no
// classical bits.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{numQubits: numQubits}
}

// NewCircuitWithClbits creates a circuit with qubits and classical bits.
func NewCircuitWithClbits(numQubits, numClbits int) *Circuit {
	return &Circuit{numQubits: numQubits, numClbits: numClbits}
}

// Named sets the circuit name.
func (c *Circuit) Named(name string) *Circuit {
	c.name = name
	return c
}

// Name returns the circuit name, empty if unset.
func (c *Circuit) Name() string { return c.name }

// NumQubits returns the qubit register size.
func (c *Circuit) NumQubits() int { return c.numQubits }

// NumClbits returns the classical register size.
func (c *Circuit) NumClbits() int { return c.numClbits }

// Instructions returns the ordered instruction list.
func (c *Circuit) Instructions() []Instruction { return c.instructions }

// Len returns the number of instructions.
func (c *Circuit) Len() int { return len(c.instructions) }

// IsEmpty reports whether the circuit has no instructions.
func (c *Circuit) IsEmpty() bool { return len(c.instructions) == 0 }

// Append adds a raw instruction to the circuit.
func (c *Circuit) Append(inst Instruction) *Circuit {
	c.instructions = append(c.instructions, inst)
	return c
}

// Depth returns the critical path length, counting per-qubit gate chains.
// Barriers do not contribute.
func (c *Circuit) Depth() int {
	if len(c.instructions) == 0 {
		return 0
	}
	qubitDepth := make([]int, c.numQubits)
	for _, inst := range c.instructions {
		if inst.Gate.Type == GateBarrier {
			continue
		}
		maxDepth := 0
		for _, q := range inst.Qubits {
			if q >= 0 && q < c.numQubits && qubitDepth[q] > maxDepth {
				maxDepth = qubitDepth[q]
			}
		}
		for _, q := range inst.Qubits {
			if q >= 0 && q < c.numQubits {
				qubitDepth[q] = maxDepth + 1
			}
		}
	}
	depth := 0
	for _, d := range qubitDepth {
		if d > depth {
			depth = d
		}
	}
	return depth
}

// CountGates tallies instructions by gate type.
func (c *Circuit) CountGates() map[GateType]int {
	counts := make(map[GateType]int)
	for _, inst := range c.instructions {
		counts[inst.Gate.Type]++
	}
	return counts
}

// I applies the identity gate.
func (c *Circuit) I(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateI), q)) }

// X applies the Pauli-X (NOT) gate.
func (c *Circuit) X(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateX), q)) }

// Y applies the Pauli-Y gate.
func (c *Circuit) Y(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateY), q)) }

// Z applies the Pauli-Z gate.
func (c *Circuit) Z(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateZ), q)) }

// H applies the Hadamard gate.
func (c *Circuit) H(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateH), q)) }

// S applies the S gate (√Z).
func (c *Circuit) S(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateS), q)) }

// Sdg applies the S-dagger gate.
func (c *Circuit) Sdg(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateSdg), q)) }

// T applies the T gate (√S).
func (c *Circuit) T(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateT), q)) }

// Tdg applies the T-dagger gate.
func (c *Circuit) Tdg(q int) *Circuit { return c.Append(NewInstruction(NewGate(GateTdg), q)) }

// Rx applies a rotation around the X axis.
func (c *Circuit) Rx(theta float64, q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateRx, theta), q))
}

// Ry applies a rotation around the Y axis.
func (c *Circuit) Ry(theta float64, q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateRy, theta), q))
}

// Rz applies a rotation around the Z axis.
func (c *Circuit) Rz(theta float64, q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateRz, theta), q))
}

// P applies a phase gate.
func (c *Circuit) P(theta float64, q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateP, theta), q))
}

// U applies the general single-qubit unitary U(θ, φ, λ).
func (c *Circuit) U(theta, phi, lambda float64, q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateU, theta, phi, lambda), q))
}

// CX applies a CNOT with the given control and target.
func (c *Circuit) CX(control, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCX), control, target))
}

// CY applies a controlled-Y gate.
func (c *Circuit) CY(control, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCY), control, target))
}

// CZ applies a controlled-Z gate.
func (c *Circuit) CZ(control, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCZ), control, target))
}

// CH applies a controlled-Hadamard gate.
func (c *Circuit) CH(control, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCH), control, target))
}

// CP applies a controlled-phase gate.
func (c *Circuit) CP(theta float64, control, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCP, theta), control, target))
}

// Swap exchanges two qubits.
func (c *Circuit) Swap(q1, q2 int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateSwap), q1, q2))
}

// CCX applies a Toffoli gate with two controls.
func (c *Circuit) CCX(c1, c2, target int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCCX), c1, c2, target))
}

// CSwap applies a Fredkin (controlled-SWAP) gate.
func (c *Circuit) CSwap(control, t1, t2 int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateCSwap), control, t1, t2))
}

// Measure measures qubit q into classical bit cl.
func (c *Circuit) Measure(q, cl int) *Circuit {
	return c.Append(Instruction{Gate: NewGate(GateMeasure), Qubits: []int{q}, Clbits: []int{cl}})
}

// MeasureAll measures every qubit into the classical bit of the same index,
// growing the classical register if needed.
func (c *Circuit) MeasureAll() *Circuit {
	if c.numClbits < c.numQubits {
		c.numClbits = c.numQubits
	}
	for q := 0; q < c.numQubits; q++ {
		c.Measure(q, q)
	}
	return c
}

// Reset forces qubit q to |0⟩.
func (c *Circuit) Reset(q int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateReset), q))
}

// Barrier adds a timing marker spanning the given qubits. It never affects
// amplitudes.
func (c *Circuit) Barrier(qubits ...int) *Circuit {
	return c.Append(NewInstruction(NewGate(GateBarrier), qubits...))
}

// BarrierAll adds a barrier across every qubit.
func (c *Circuit) BarrierAll() *Circuit {
	qubits := make([]int, c.numQubits)
	for q := range qubits {
		qubits[q] = q
	}
	return c.Append(NewInstruction(NewGate(GateBarrier), qubits...))
}

// Compose appends the instructions of another circuit. The other circuit
// must not use more qubits than this one.
func (c *Circuit) Compose(other *Circuit) (*Circuit, error) {
	if other.numQubits > c.numQubits {
		return nil, &QubitMismatchError{Expected: c.numQubits, Got: other.numQubits}
	}
	if other.numClbits > c.numClbits {
		c.numClbits = other.numClbits
	}
	c.instructions = append(c.instructions, other.instructions...)
	return c, nil
}

// Repeat appends the current instruction sequence so the circuit runs n
// times in total.
func (c *Circuit) Repeat(n int) *Circuit {
	original := make([]Instruction, len(c.instructions))
	copy(original, c.instructions)
	for i := 1; i < n; i++ {
		c.instructions = append(c.instructions, original...)
	}
	return c
}

// Inverse returns a new circuit that applies the adjoint of every gate in
// reverse order, so circuit.Compose(circuit.Inverse()) acts as the
// identity. Circuits containing Measure or Reset have no inverse.
func (c *Circuit) Inverse() (*Circuit, error) {
	inv := &Circuit{
		numQubits:    c.numQubits,
		numClbits:    c.numClbits,
		instructions: make([]Instruction, 0, len(c.instructions)),
		name:         c.name,
	}
	for i := len(c.instructions) - 1; i >= 0; i-- {
		inst := c.instructions[i]
		g, err := inverseGate(inst.Gate)
		if err != nil {
			return nil, err
		}
		qubits := make([]int, len(inst.Qubits))
		copy(qubits, inst.Qubits)
		inv.instructions = append(inv.instructions, Instruction{Gate: g, Qubits: qubits})
	}
	return inv, nil
}

// inverseGate returns the adjoint of a unitary gate.
func inverseGate(g Gate) (Gate, error) {
	switch g.Type {
	case GateI, GateX, GateY, GateZ, GateH,
		GateCX, GateCY, GateCZ, GateCH,
		GateSwap, GateCCX, GateCSwap, GateBarrier:
		return g, nil
	case GateS:
		return NewGate(GateSdg), nil
	case GateSdg:
		return NewGate(GateS), nil
	case GateT:
		return NewGate(GateTdg), nil
	case GateTdg:
		return NewGate(GateT), nil
	case GateRx, GateRy, GateRz, GateP, GateCP:
		if len(g.Params) < 1 {
			return Gate{}, &NotSupportedError{Operation: g.Type.String() + " gate is missing its angle"}
		}
		return NewGate(g.Type, -g.Params[0]), nil
	case GateU:
		if len(g.Params) < 3 {
			return Gate{}, &NotSupportedError{Operation: "U gate is missing its parameters"}
		}
		return NewGate(GateU, -g.Params[0], -g.Params[2], -g.Params[1]), nil
	default:
		return Gate{}, &NotSupportedError{Operation: "inverse of " + g.Type.String()}
	}
}
