package quasar

import "math"

// defaultSeed is the fixed PRNG seed used when no explicit seed is given,
// so unseeded simulators are still reproducible.
const defaultSeed uint64 = 0x853c49e6748fea9b

// MeasurementRecord holds the classical-bit values written by Measure
// instructions during one circuit execution. Unwritten bits stay 0.
type MeasurementRecord struct {
	Bits []byte
}

// NewMeasurementRecord creates a record with numClbits zeroed bits. A
// negative count is treated as an empty register.
func NewMeasurementRecord(numClbits int) *MeasurementRecord {
	if numClbits < 0 {
		numClbits = 0
	}
	return &MeasurementRecord{Bits: make([]byte, numClbits)}
}

// Bitstring renders the record as a '0'/'1' string in classical-bit index
// order.
func (r *MeasurementRecord) Bitstring() string {
	out := make([]byte, len(r.Bits))
	for i, b := range r.Bits {
		if b == 0 {
			out[i] = '0'
		} else {
			out[i] = '1'
		}
	}
	return string(out)
}

// AsInt packs the record into an integer, little-endian (bit 0 is the
// least significant).
func (r *MeasurementRecord) AsInt() uint64 {
	var v uint64
	for i, b := range r.Bits {
		v |= uint64(b) << i
	}
	return v
}

// Simulator executes circuits by state-vector evolution. It owns the
// pseudo-random source used for measurement outcomes, so reproducibility is
// a property of the simulator instance, not of process-wide state.
type Simulator struct {
	seed     uint64
	hasSeed  bool
	rngState uint64
}

// NewSimulator creates a simulator with the fixed default seed.
func NewSimulator() *Simulator {
	return &Simulator{rngState: defaultSeed}
}

// NewSimulatorWithSeed creates a simulator that reproduces the same random
// sequence for every call with the same seed.
func NewSimulatorWithSeed(seed uint64) *Simulator {
	return &Simulator{seed: seed, hasSeed: true, rngState: seed}
}

// nextRandom advances the xorshift64 generator and returns a uniform
// float64 in [0, 1).
func (s *Simulator) nextRandom() float64 {
	x := s.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.rngState = x
	return float64(x) / float64(math.MaxUint64)
}

// Run executes the circuit from |0…0⟩ and returns the final state.
func (s *Simulator) Run(circuit *Circuit) (*StateVector, error) {
	state, err := NewStateVector(circuit.NumQubits())
	if err != nil {
		return nil, err
	}
	return s.RunFromState(circuit, state)
}

// RunFromState executes the circuit starting from the given state. The
// state is mutated in place and returned. An error encountered mid-circuit
// leaves it partially evolved and unusable.
func (s *Simulator) RunFromState(circuit *Circuit, state *StateVector) (*StateVector, error) {
	if state.NumQubits() != circuit.NumQubits() {
		return nil, &QubitMismatchError{Expected: circuit.NumQubits(), Got: state.NumQubits()}
	}
	record := NewMeasurementRecord(circuit.NumClbits())
	for _, inst := range circuit.Instructions() {
		if err := s.applyInstruction(state, inst, record); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// RunWithMeasurements executes the circuit from |0…0⟩ and returns both the
// final state and the classical measurement record.
func (s *Simulator) RunWithMeasurements(circuit *Circuit) (*StateVector, *MeasurementRecord, error) {
	state, err := NewStateVector(circuit.NumQubits())
	if err != nil {
		return nil, nil, err
	}
	record := NewMeasurementRecord(circuit.NumClbits())
	for _, inst := range circuit.Instructions() {
		if err := s.applyInstruction(state, inst, record); err != nil {
			return nil, nil, err
		}
	}
	return state, record, nil
}

// Sample re-executes the full circuit from |0…0⟩ once per shot and counts
// the resulting classical bitstrings. A seeded simulator rewinds to its
// seed first, so a given (seed, circuit, shots) triple always produces the
// same histogram. Cost is O(shots × circuit); amplitudes are never reused
// across shots, which keeps mid-circuit Measure/Reset semantics exact.
func (s *Simulator) Sample(circuit *Circuit, shots int) (map[string]int, error) {
	if s.hasSeed {
		s.rngState = s.seed
	}
	counts := make(map[string]int)
	for i := 0; i < shots; i++ {
		_, record, err := s.RunWithMeasurements(circuit)
		if err != nil {
			return nil, err
		}
		counts[record.Bitstring()]++
	}
	return counts, nil
}

// validateQubits checks every qubit index of an instruction against the
// register and rejects duplicates for multi-qubit gates.
func validateQubits(state *StateVector, inst Instruction) error {
	n := state.NumQubits()
	for _, q := range inst.Qubits {
		if q < 0 || q >= n {
			return &QubitOutOfRangeError{Qubit: q, Max: n}
		}
	}
	if inst.Gate.NumQubits() > 1 {
		for i, q := range inst.Qubits {
			for _, p := range inst.Qubits[i+1:] {
				if p == q {
					return &DuplicateQubitError{Qubit: q}
				}
			}
		}
	}
	return nil
}

// applyInstruction dispatches one instruction to the state-vector kernels.
func (s *Simulator) applyInstruction(state *StateVector, inst Instruction, record *MeasurementRecord) error {
	if inst.Gate.Type == GateBarrier {
		return nil
	}
	if len(inst.Qubits) < inst.Gate.NumQubits() {
		return &NotSupportedError{Operation: "instruction is missing target qubits"}
	}
	if err := validateQubits(state, inst); err != nil {
		return err
	}

	xMatrix := Matrix2{{0, 1}, {1, 0}}

	switch inst.Gate.Type {
	case GateI, GateX, GateY, GateZ, GateH, GateS, GateSdg, GateT, GateTdg,
		GateRx, GateRy, GateRz, GateP, GateU:
		m, ok := inst.Gate.Matrix()
		if !ok {
			return &NotSupportedError{Operation: "gate has no 2x2 matrix"}
		}
		state.ApplySingle(inst.Qubits[0], m)

	case GateCX:
		state.ApplyControlled(inst.Qubits[0], inst.Qubits[1], xMatrix)

	case GateCY:
		i := complex(0, 1)
		state.ApplyControlled(inst.Qubits[0], inst.Qubits[1], Matrix2{{0, -i}, {i, 0}})

	case GateCZ:
		state.ApplyControlled(inst.Qubits[0], inst.Qubits[1], Matrix2{{1, 0}, {0, -1}})

	case GateCH:
		h := complex(InvSqrt2, 0)
		state.ApplyControlled(inst.Qubits[0], inst.Qubits[1], Matrix2{{h, h}, {h, -h}})

	case GateCP:
		if len(inst.Gate.Params) < 1 {
			return &NotSupportedError{Operation: "CP gate is missing its angle"}
		}
		phase := FromPolar(1, inst.Gate.Params[0])
		state.ApplyControlled(inst.Qubits[0], inst.Qubits[1], Matrix2{{1, 0}, {0, phase}})

	case GateSwap:
		swap := Matrix4{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}
		state.ApplyTwo(inst.Qubits[0], inst.Qubits[1], swap)

	case GateCCX:
		applyCCX(state, inst.Qubits[0], inst.Qubits[1], inst.Qubits[2])

	case GateCSwap:
		applyCSwap(state, inst.Qubits[0], inst.Qubits[1], inst.Qubits[2])

	case GateMeasure:
		outcome := state.Measure(inst.Qubits[0], s.nextRandom())
		if len(inst.Clbits) > 0 {
			cl := inst.Clbits[0]
			if cl < 0 || cl >= len(record.Bits) {
				return &ClbitOutOfRangeError{Clbit: cl, Max: len(record.Bits)}
			}
			record.Bits[cl] = byte(outcome)
		}

	case GateReset:
		state.Reset(inst.Qubits[0], s.nextRandom())

	default:
		return &NotSupportedError{Operation: "gate type " + inst.Gate.Type.String() + " not implemented"}
	}

	return nil
}

// applyCCX applies a Toffoli gate via the standard Clifford+T decomposition.
// The step order is fixed: changing it changes global phases and breaks
// bit-exact agreement with recorded amplitudes.
func applyCCX(state *StateVector, c1, c2, target int) {
	h := complex(InvSqrt2, 0)
	hMatrix := Matrix2{{h, h}, {h, -h}}
	tMatrix := Matrix2{{1, 0}, {0, FromPolar(1, math.Pi/4)}}
	tdgMatrix := Matrix2{{1, 0}, {0, FromPolar(1, -math.Pi/4)}}
	xMatrix := Matrix2{{0, 1}, {1, 0}}
	sMatrix := Matrix2{{1, 0}, {0, complex(0, 1)}}

	state.ApplySingle(target, hMatrix)
	state.ApplyControlled(c2, target, xMatrix)
	state.ApplySingle(target, tdgMatrix)
	state.ApplyControlled(c1, target, xMatrix)
	state.ApplySingle(target, tMatrix)
	state.ApplyControlled(c2, target, xMatrix)
	state.ApplySingle(target, tdgMatrix)
	state.ApplyControlled(c1, target, xMatrix)
	state.ApplySingle(c2, tMatrix)
	state.ApplySingle(target, tMatrix)
	state.ApplySingle(target, hMatrix)
	state.ApplyControlled(c1, c2, xMatrix)
	state.ApplySingle(c2, tdgMatrix)
	state.ApplyControlled(c1, c2, xMatrix)
	state.ApplySingle(c1, tMatrix)
	state.ApplySingle(c2, sMatrix)
}

// applyCSwap applies a Fredkin gate as CX(t2,t1) · CCX(control,t1,t2) ·
// CX(t2,t1), reusing the Toffoli decomposition.
func applyCSwap(state *StateVector, control, t1, t2 int) {
	xMatrix := Matrix2{{0, 1}, {1, 0}}
	state.ApplyControlled(t2, t1, xMatrix)
	applyCCX(state, control, t1, t2)
	state.ApplyControlled(t2, t1, xMatrix)
}
