package quasar

import "math"

// QFT builds the quantum Fourier transform on numQubits qubits: the
// Hadamard/controlled-phase ladder followed by the qubit-order reversal
// swaps.
func QFT(numQubits int) *Circuit {
	c := NewCircuit(numQubits)
	for j := 0; j < numQubits; j++ {
		c.H(j)
		for k := j + 1; k < numQubits; k++ {
			c.CP(math.Pi/float64(int(1)<<(k-j)), k, j)
		}
	}
	for i := 0; i < numQubits/2; i++ {
		c.Swap(i, numQubits-1-i)
	}
	return c
}

// GroverSearch builds circuits for Grover's unstructured search over
// 2^numQubits items, marking a single target index.
type GroverSearch struct {
	numQubits int
	target    int
}

// NewGroverSearch creates a search over numQubits qubits for the given
// target basis index.
func NewGroverSearch(numQubits, target int) *GroverSearch {
	return &GroverSearch{numQubits: numQubits, target: target}
}

// OptimalIterations returns the iteration count that maximizes the success
// probability, ⌊π/4·√N⌋ rounded to at least one.
func (g *GroverSearch) OptimalIterations() int {
	n := float64(int(1) << g.numQubits)
	iters := int(math.Floor(math.Pi / 4 * math.Sqrt(n)))
	if iters < 1 {
		iters = 1
	}
	return iters
}

// SuccessProbability returns the theoretical probability of measuring the
// target after OptimalIterations iterations.
func (g *GroverSearch) SuccessProbability() float64 {
	n := float64(int(1) << g.numQubits)
	theta := math.Asin(1 / math.Sqrt(n))
	r := float64(g.OptimalIterations())
	s := math.Sin((2*r + 1) * theta)
	return s * s
}

// Build emits the Grover circuit: uniform superposition, then
// OptimalIterations rounds of oracle plus diffusion, then full measurement.
// Registers above three qubits need a general multi-controlled Z and are
// not supported.
func (g *GroverSearch) Build() (*Circuit, error) {
	if g.numQubits < 1 || g.numQubits > 3 {
		return nil, &NotSupportedError{Operation: "Grover search beyond 3 qubits"}
	}
	if g.target < 0 || g.target >= 1<<g.numQubits {
		return nil, &QubitOutOfRangeError{Qubit: g.target, Max: 1 << g.numQubits}
	}

	c := NewCircuit(g.numQubits).Named("grover")
	for q := 0; q < g.numQubits; q++ {
		c.H(q)
	}

	for i := 0; i < g.OptimalIterations(); i++ {
		g.oracle(c)
		g.diffusion(c)
	}

	return c.MeasureAll(), nil
}

// oracle flips the phase of the target basis state: X on every qubit whose
// target bit is 0, a multi-controlled Z, then the X's undone.
func (g *GroverSearch) oracle(c *Circuit) {
	for q := 0; q < g.numQubits; q++ {
		if g.target&(1<<q) == 0 {
			c.X(q)
		}
	}
	multiControlledZ(c, g.numQubits)
	for q := 0; q < g.numQubits; q++ {
		if g.target&(1<<q) == 0 {
			c.X(q)
		}
	}
}

// diffusion reflects amplitudes about the mean: H-X sandwich around a
// multi-controlled Z.
func (g *GroverSearch) diffusion(c *Circuit) {
	for q := 0; q < g.numQubits; q++ {
		c.H(q)
	}
	for q := 0; q < g.numQubits; q++ {
		c.X(q)
	}
	multiControlledZ(c, g.numQubits)
	for q := 0; q < g.numQubits; q++ {
		c.X(q)
	}
	for q := 0; q < g.numQubits; q++ {
		c.H(q)
	}
}

// multiControlledZ appends a Z controlled on all qubits being 1. CCZ is
// synthesized as H·CCX·H on the last qubit.
func multiControlledZ(c *Circuit, numQubits int) {
	switch numQubits {
	case 1:
		c.Z(0)
	case 2:
		c.CZ(0, 1)
	case 3:
		c.H(2)
		c.CCX(0, 1, 2)
		c.H(2)
	}
}

// OracleKind classifies the hidden function in Deutsch-Jozsa.
type OracleKind int

const (
	// OracleConstant is a function returning the same bit for all inputs.
	OracleConstant OracleKind = iota
	// OracleBalanced is a function returning 1 on exactly half the inputs.
	OracleBalanced
)

// DeutschJozsa builds the Deutsch-Jozsa circuit distinguishing a constant
// oracle from a balanced one on numQubits input qubits with one ancilla.
// Measuring the input register all-zero means constant.
func DeutschJozsa(numQubits int, kind OracleKind) *Circuit {
	c := NewCircuitWithClbits(numQubits+1, numQubits).Named("deutsch-jozsa")
	ancilla := numQubits

	c.X(ancilla)
	for q := 0; q <= numQubits; q++ {
		c.H(q)
	}

	switch kind {
	case OracleConstant:
		// f(x) = 0: identity oracle.
	case OracleBalanced:
		// f(x) = x_0 ⊕ … ⊕ x_{n-1}
		for q := 0; q < numQubits; q++ {
			c.CX(q, ancilla)
		}
	}

	for q := 0; q < numQubits; q++ {
		c.H(q)
	}
	for q := 0; q < numQubits; q++ {
		c.Measure(q, q)
	}
	return c
}

// BernsteinVazirani builds the circuit that recovers a hidden bitstring s
// from a single query to the oracle f(x) = s·x mod 2. Bit q of secret is
// read out on classical bit q.
func BernsteinVazirani(numQubits int, secret uint64) *Circuit {
	c := NewCircuitWithClbits(numQubits+1, numQubits).Named("bernstein-vazirani")
	ancilla := numQubits

	c.X(ancilla)
	for q := 0; q <= numQubits; q++ {
		c.H(q)
	}

	for q := 0; q < numQubits; q++ {
		if secret&(1<<q) != 0 {
			c.CX(q, ancilla)
		}
	}

	for q := 0; q < numQubits; q++ {
		c.H(q)
	}
	for q := 0; q < numQubits; q++ {
		c.Measure(q, q)
	}
	return c
}
