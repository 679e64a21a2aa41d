package quasar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQFTOfZeroIsUniform(t *testing.T) {
	for n := 1; n <= 4; n++ {
		state := runCircuit(t, QFT(n))
		uniform, err := Uniform(n)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, state.Fidelity(uniform), 1e-10, "n=%d", n)
	}
}

func TestQFTPreservesNorm(t *testing.T) {
	prep, err := NewCircuit(3).X(0).H(1).T(2).Compose(QFT(3))
	require.NoError(t, err)
	state := runCircuit(t, prep)
	assert.InDelta(t, 1.0, probSum(state), 1e-10)
}

func TestGroverTwoQubits(t *testing.T) {
	// N=4 with one marked item: a single iteration finds it with
	// certainty.
	for target := 0; target < 4; target++ {
		g := NewGroverSearch(2, target)
		assert.Equal(t, 1, g.OptimalIterations())
		assert.InDelta(t, 1.0, g.SuccessProbability(), 1e-10)

		circuit, err := g.Build()
		require.NoError(t, err)

		counts, err := NewSimulatorWithSeed(5).Sample(circuit, 200)
		require.NoError(t, err)

		record := NewMeasurementRecord(2)
		record.Bits[0] = byte(target & 1)
		record.Bits[1] = byte(target >> 1)
		assert.Equal(t, 200, counts[record.Bitstring()], "target %d", target)
	}
}

func TestGroverThreeQubits(t *testing.T) {
	g := NewGroverSearch(3, 5)
	circuit, err := g.Build()
	require.NoError(t, err)

	counts, err := NewSimulatorWithSeed(11).Sample(circuit, 1000)
	require.NoError(t, err)

	// Theoretical success is ~94.5% for N=8 after two iterations.
	assert.Greater(t, g.SuccessProbability(), 0.9)
	assert.Greater(t, counts["101"], 850)
}

func TestGroverRejectsLargeRegisters(t *testing.T) {
	_, err := NewGroverSearch(4, 0).Build()
	var notSupported *NotSupportedError
	assert.ErrorAs(t, err, &notSupported)
}

func TestGroverRejectsBadTarget(t *testing.T) {
	_, err := NewGroverSearch(2, 4).Build()
	assert.Error(t, err)
	_, err = NewGroverSearch(2, -1).Build()
	assert.Error(t, err)
}

func TestDeutschJozsaConstant(t *testing.T) {
	for n := 1; n <= 3; n++ {
		_, record, err := NewSimulator().RunWithMeasurements(DeutschJozsa(n, OracleConstant))
		require.NoError(t, err)
		assert.Equal(t, uint64(0), record.AsInt(), "n=%d", n)
	}
}

func TestDeutschJozsaBalanced(t *testing.T) {
	for n := 1; n <= 3; n++ {
		_, record, err := NewSimulator().RunWithMeasurements(DeutschJozsa(n, OracleBalanced))
		require.NoError(t, err)
		// The parity oracle drives every input qubit to 1.
		assert.Equal(t, uint64(1<<n)-1, record.AsInt(), "n=%d", n)
	}
}

func TestBernsteinVaziraniRecoversSecret(t *testing.T) {
	for _, secret := range []uint64{0b0, 0b1, 0b101, 0b1101, 0b1111} {
		_, record, err := NewSimulator().RunWithMeasurements(BernsteinVazirani(4, secret))
		require.NoError(t, err)
		assert.Equal(t, secret, record.AsInt(), "secret %04b", secret)
	}
}
