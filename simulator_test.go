package quasar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCircuit(t *testing.T, c *Circuit) *StateVector {
	t.Helper()
	state, err := NewSimulator().Run(c)
	require.NoError(t, err)
	return state
}

func probSum(state *StateVector) float64 {
	sum := 0.0
	for _, p := range state.Probabilities() {
		sum += p
	}
	return sum
}

func TestUnitaryCircuitsStayNormalized(t *testing.T) {
	circuits := map[string]*Circuit{
		"empty": NewCircuit(3),
		"all-h": NewCircuit(3).H(0).H(1).H(2),
		"bell":  NewCircuit(2).H(0).CX(0, 1),
		"ghz":   NewCircuit(3).H(0).CX(0, 1).CX(1, 2),
		"mixed rotations": NewCircuit(2).
			Rx(0.3, 0).Ry(1.1, 1).Rz(2.2, 0).P(0.7, 1).
			U(0.4, 1.3, 2.1, 0).CP(math.Pi/3, 0, 1),
	}
	for name, c := range circuits {
		state := runCircuit(t, c)
		assert.InDelta(t, 1.0, probSum(state), 1e-10, "circuit %q", name)
	}
}

func TestHadamardInvolution(t *testing.T) {
	state := runCircuit(t, NewCircuit(1).H(0).H(0))
	assert.InDelta(t, 1.0, state.Probability(0), 1e-10)
	assert.Less(t, state.Probability(1), 0.001)
}

func TestXInvolution(t *testing.T) {
	state := runCircuit(t, NewCircuit(1).X(0).X(0))
	assert.InDelta(t, 1.0, state.Probability(0), 1e-10)
	assert.Less(t, state.Probability(1), 0.001)
}

func TestRxFullTurn(t *testing.T) {
	// Rx(2π) = -I: the global phase must not affect probabilities.
	state := runCircuit(t, NewCircuit(1).Rx(2*math.Pi, 0))
	assert.GreaterOrEqual(t, state.Probability(0), 0.999)
}

func TestRxPiActsAsX(t *testing.T) {
	state := runCircuit(t, NewCircuit(1).Rx(math.Pi, 0))
	assert.Less(t, state.Probability(0), 0.01)
	assert.Greater(t, state.Probability(1), 0.99)
}

func TestBellState(t *testing.T) {
	state := runCircuit(t, NewCircuit(2).H(0).CX(0, 1))

	assert.InDelta(t, 0.5, state.Probability(0b00), 1e-10)
	assert.InDelta(t, 0.0, state.Probability(0b01), 1e-10)
	assert.InDelta(t, 0.0, state.Probability(0b10), 1e-10)
	assert.InDelta(t, 0.5, state.Probability(0b11), 1e-10)
}

func TestGHZState(t *testing.T) {
	state := runCircuit(t, NewCircuit(3).H(0).CX(0, 1).CX(1, 2))

	assert.GreaterOrEqual(t, state.Probability(0), 0.49)
	assert.GreaterOrEqual(t, state.Probability(7), 0.49)
	for i := 1; i < 7; i++ {
		assert.LessOrEqual(t, state.Probability(i), 0.01, "index %d", i)
	}
}

func TestCXTruthTable(t *testing.T) {
	// CX flips the target iff the control bit is 1. Qubit 0 is the
	// control, qubit 1 the target.
	tests := []struct {
		input, want int
	}{
		{0b00, 0b00},
		{0b01, 0b11},
		{0b10, 0b10},
		{0b11, 0b01},
	}
	for _, tc := range tests {
		c := NewCircuit(2)
		if tc.input&0b01 != 0 {
			c.X(0)
		}
		if tc.input&0b10 != 0 {
			c.X(1)
		}
		c.CX(0, 1)

		state := runCircuit(t, c)
		assert.Greater(t, state.Probability(tc.want), 0.99,
			"input %02b should map to %02b", tc.input, tc.want)
	}
}

func TestToffoliTruthTable(t *testing.T) {
	// CCX flips the target (qubit 2) iff both controls are 1.
	for input := 0; input < 8; input++ {
		c := NewCircuit(3)
		for q := 0; q < 3; q++ {
			if input&(1<<q) != 0 {
				c.X(q)
			}
		}
		c.CCX(0, 1, 2)

		want := input
		if input&0b011 == 0b011 {
			want ^= 0b100
		}

		state := runCircuit(t, c)
		assert.Greater(t, state.Probability(want), 0.99,
			"input %03b should map to %03b", input, want)
	}
}

func TestFredkinSwapsWhenControlSet(t *testing.T) {
	// |101⟩ with control q0=1 swaps q1,q2 → |011⟩.
	state := runCircuit(t, NewCircuit(3).X(0).X(2).CSwap(0, 1, 2))
	assert.Greater(t, state.Probability(0b011), 0.99)

	// Control clear: targets untouched.
	state = runCircuit(t, NewCircuit(3).X(2).CSwap(0, 1, 2))
	assert.Greater(t, state.Probability(0b100), 0.99)
}

func TestSwapMovesExcitation(t *testing.T) {
	state := runCircuit(t, NewCircuit(2).X(0).Swap(0, 1))
	assert.Greater(t, state.Probability(0b10), 0.99)
}

func TestControlledPhaseOnlyInControlSubspace(t *testing.T) {
	// CP(π) on |11⟩ = -|11⟩; on |01⟩ no phase. Verified through
	// interference: H(0)·CP(π)·H(0) with control q1 set acts as Z-flip.
	state := runCircuit(t, NewCircuit(2).X(1).H(0).CP(math.Pi, 1, 0).H(0))
	assert.Greater(t, state.Probability(0b11), 0.99)

	state = runCircuit(t, NewCircuit(2).H(0).CP(math.Pi, 1, 0).H(0))
	assert.Greater(t, state.Probability(0b00), 0.99)
}

func TestControlledGates(t *testing.T) {
	// CZ, CY and CH leave the control-0 subspace alone.
	for _, build := range []func(*Circuit) *Circuit{
		func(c *Circuit) *Circuit { return c.CZ(0, 1) },
		func(c *Circuit) *Circuit { return c.CY(0, 1) },
		func(c *Circuit) *Circuit { return c.CH(0, 1) },
	} {
		state := runCircuit(t, build(NewCircuit(2)))
		assert.InDelta(t, 1.0, state.Probability(0), 1e-10)
	}

	// CY with control set: |01⟩ → i|11⟩.
	state := runCircuit(t, NewCircuit(2).X(0).CY(0, 1))
	assert.InDelta(t, 1.0, state.Probability(0b11), 1e-10)
}

func TestBarrierIsNoop(t *testing.T) {
	a := runCircuit(t, NewCircuit(2).H(0).BarrierAll().CX(0, 1))
	b := runCircuit(t, NewCircuit(2).H(0).CX(0, 1))
	assert.True(t, a.Equal(b))
}

func TestRunWithMeasurements(t *testing.T) {
	sim := NewSimulatorWithSeed(7)
	state, record, err := sim.RunWithMeasurements(NewCircuit(2).H(0).CX(0, 1).MeasureAll())
	require.NoError(t, err)
	require.Len(t, record.Bits, 2)

	// The two bits agree, and the state has collapsed onto them.
	assert.Equal(t, record.Bits[0], record.Bits[1])
	index := int(record.AsInt())
	assert.InDelta(t, 1.0, state.Probability(index), 1e-10)
}

func TestMeasurementRecordBitstring(t *testing.T) {
	r := NewMeasurementRecord(4)
	r.Bits[1] = 1
	r.Bits[3] = 1
	assert.Equal(t, "0101", r.Bitstring())
	assert.Equal(t, uint64(0b1010), r.AsInt())
}

func TestResetInstruction(t *testing.T) {
	state := runCircuit(t, NewCircuit(1).X(0).Reset(0))
	assert.InDelta(t, 1.0, state.Probability(0), 1e-10)
}

func TestRunFromStateQubitMismatch(t *testing.T) {
	state := mustState(t, 3)
	_, err := NewSimulator().RunFromState(NewCircuit(2).H(0), state)
	var mismatch *QubitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Got)
}

func TestUnsupportedGate(t *testing.T) {
	for _, gt := range []GateType{GateISwap, GateSqrtSwap, GateCU} {
		c := NewCircuit(2).Append(NewInstruction(NewGate(gt), 0, 1))
		_, err := NewSimulator().Run(c)
		var notSupported *NotSupportedError
		assert.ErrorAs(t, err, &notSupported, "gate %s", gt)
	}
}

func TestQubitBoundsChecked(t *testing.T) {
	_, err := NewSimulator().Run(NewCircuit(2).H(5))
	var outOfRange *QubitOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, 5, outOfRange.Qubit)
	assert.Equal(t, 2, outOfRange.Max)

	_, err = NewSimulator().Run(NewCircuit(2).CX(0, -1))
	assert.ErrorAs(t, err, &outOfRange)
}

func TestDuplicateQubitRejected(t *testing.T) {
	_, err := NewSimulator().Run(NewCircuit(2).CX(1, 1))
	var dup *DuplicateQubitError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.Qubit)
}

func TestClbitBoundsChecked(t *testing.T) {
	c := NewCircuitWithClbits(1, 1).Measure(0, 3)
	_, err := NewSimulator().Run(c)
	var outOfRange *ClbitOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, 3, outOfRange.Clbit)
}

func TestCircuitTooLarge(t *testing.T) {
	_, err := NewSimulator().Run(NewCircuit(MaxQubits + 1))
	var tooLarge *CircuitTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestNegativeRegisterSizes(t *testing.T) {
	_, err := NewSimulator().Run(NewCircuit(-1))
	var tooLarge *CircuitTooLargeError
	require.ErrorAs(t, err, &tooLarge)

	// A negative classical register behaves as an empty one, so the
	// circuit runs but any Measure into it fails the clbit range check.
	state, err := NewSimulator().Run(NewCircuitWithClbits(1, -1).H(0))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, probSum(state), 1e-10)

	_, err = NewSimulator().Run(NewCircuitWithClbits(1, -1).Measure(0, 0))
	var outOfRange *ClbitOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
}

func TestCPMissingAngle(t *testing.T) {
	c := NewCircuit(2).Append(NewInstruction(NewGate(GateCP), 0, 1))
	_, err := NewSimulator().Run(c)
	var notSupported *NotSupportedError
	assert.ErrorAs(t, err, &notSupported)
}

func TestSamplingConvergence(t *testing.T) {
	circuit := NewCircuit(2).H(0).CX(0, 1).MeasureAll()
	sim := NewSimulatorWithSeed(42)

	counts, err := sim.Sample(circuit, 10000)
	require.NoError(t, err)

	assert.InDelta(t, 5000, counts["00"], 300)
	assert.InDelta(t, 5000, counts["11"], 300)
	assert.Less(t, counts["01"], 1)
	assert.Less(t, counts["10"], 1)
}

func TestSamplingIsDeterministicForFixedSeed(t *testing.T) {
	circuit := NewCircuit(2).H(0).CX(0, 1).MeasureAll()

	first, err := NewSimulatorWithSeed(1234).Sample(circuit, 500)
	require.NoError(t, err)
	second, err := NewSimulatorWithSeed(1234).Sample(circuit, 500)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A seeded simulator rewinds before every Sample call, so back-to-back
	// calls on one instance agree too.
	sim := NewSimulatorWithSeed(1234)
	third, err := sim.Sample(circuit, 500)
	require.NoError(t, err)
	fourth, err := sim.Sample(circuit, 500)
	require.NoError(t, err)
	assert.Equal(t, third, fourth)
}

func TestUnseededSimulatorIsReproducible(t *testing.T) {
	// The default seed is fixed, not time-based.
	circuit := NewCircuit(1).H(0).MeasureAll()

	_, a, err := NewSimulator().RunWithMeasurements(circuit)
	require.NoError(t, err)
	_, b, err := NewSimulator().RunWithMeasurements(circuit)
	require.NoError(t, err)
	assert.Equal(t, a.Bits, b.Bits)
}

func TestMidCircuitMeasurementCollapsesFollowingGates(t *testing.T) {
	// Measure between the H and the CX: the second qubit copies the
	// collapsed value, so the final state is a basis state.
	circuit := NewCircuitWithClbits(2, 2).H(0).Measure(0, 0).CX(0, 1).Measure(1, 1)
	state, record, err := NewSimulatorWithSeed(99).RunWithMeasurements(circuit)
	require.NoError(t, err)

	assert.Equal(t, record.Bits[0], record.Bits[1])
	assert.InDelta(t, 1.0, state.Probability(int(record.AsInt())), 1e-10)
}
