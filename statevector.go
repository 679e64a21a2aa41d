package quasar

import "math"

// MaxQubits caps the register size. The amplitude array holds 2^n complex
// values at 16 bytes each, so 30 qubits is already 16 GiB.
const MaxQubits = 30

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
//
// Basis index i is read as a bitstring where bit q of i is the value of
// qubit q (qubit 0 is the least significant bit). The amplitudes always
// sum to unit norm except while a kernel is mid-application.
//
// Gate kernels mutate in place and touch only the amplitude pairs or
// quadruples selected by the targeted qubit bits; they require every qubit
// index to be in range. The Simulator validates indices before dispatching,
// so only direct kernel callers need to care.
type StateVector struct {
	numQubits int
	amps      []Complex
}

// NewStateVector creates the |0…0⟩ state on numQubits qubits.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 0 || numQubits > MaxQubits {
		return nil, &CircuitTooLargeError{Qubits: numQubits, Max: MaxQubits}
	}
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{numQubits: numQubits, amps: amps}, nil
}

// NewStateVectorFromAmplitudes wraps a raw amplitude vector. The length
// must be a nonzero power of two and the vector must be unit-normalized
// within tolerance.
func NewStateVectorFromAmplitudes(amps []Complex) (*StateVector, error) {
	dim := len(amps)
	if dim == 0 || dim&(dim-1) != 0 {
		return nil, &StateDimensionError{Dim: dim}
	}
	numQubits := 0
	for d := dim; d > 1; d >>= 1 {
		numQubits++
	}
	if numQubits > MaxQubits {
		return nil, &CircuitTooLargeError{Qubits: numQubits, Max: MaxQubits}
	}
	normSqr := 0.0
	for _, a := range amps {
		normSqr += NormSqr(a)
	}
	if math.Abs(normSqr-1.0) > Epsilon {
		return nil, &StateNotNormalizedError{Norm: math.Sqrt(normSqr)}
	}
	owned := make([]Complex, dim)
	copy(owned, amps)
	return &StateVector{numQubits: numQubits, amps: owned}, nil
}

// Uniform creates the equal superposition over all basis states.
func Uniform(numQubits int) (*StateVector, error) {
	if numQubits < 0 || numQubits > MaxQubits {
		return nil, &CircuitTooLargeError{Qubits: numQubits, Max: MaxQubits}
	}
	dim := 1 << numQubits
	amp := complex(1.0/math.Sqrt(float64(dim)), 0)
	amps := make([]Complex, dim)
	for i := range amps {
		amps[i] = amp
	}
	return &StateVector{numQubits: numQubits, amps: amps}, nil
}

// NumQubits returns the register size.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Dim returns the amplitude count, 2^n.
func (s *StateVector) Dim() int { return len(s.amps) }

// Amplitudes returns the underlying amplitude slice. Callers mutating it
// are responsible for keeping the state normalized.
func (s *StateVector) Amplitudes() []Complex { return s.amps }

// Amplitude returns the amplitude of basis state index.
func (s *StateVector) Amplitude(index int) Complex { return s.amps[index] }

// Probability returns |amp[index]|², the Born-rule probability of the
// basis state.
func (s *StateVector) Probability(index int) float64 { return NormSqr(s.amps[index]) }

// Probabilities returns all basis-state probabilities in index order.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = NormSqr(a)
	}
	return probs
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.amps))
	copy(amps, s.amps)
	return &StateVector{numQubits: s.numQubits, amps: amps}
}

// Normalize rescales the state to unit norm in place. A zero vector is
// left untouched.
func (s *StateVector) Normalize() {
	normSqr := 0.0
	for _, a := range s.amps {
		normSqr += NormSqr(a)
	}
	if normSqr > 0 {
		inv := complex(1.0/math.Sqrt(normSqr), 0)
		for i := range s.amps {
			s.amps[i] *= inv
		}
	}
}

// ApplySingle applies a 2×2 unitary to qubit q. Each pair of amplitudes
// differing only in bit q is replaced by the matrix-vector product; the
// pair is driven once, from its bit-q=0 member.
func (s *StateVector) ApplySingle(q int, m Matrix2) {
	dim := len(s.amps)
	mask := 1 << q
	for i := 0; i < dim; i++ {
		if i&mask == 0 {
			i1 := i | mask
			a0 := s.amps[i]
			a1 := s.amps[i1]
			s.amps[i] = m[0][0]*a0 + m[0][1]*a1
			s.amps[i1] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// ApplyTwo applies a 4×4 unitary to the qubit pair (q0, q1). The 2-bit
// sub-basis is ordered with q0 as the more significant bit: index i|mask0
// is the "01" slot.
func (s *StateVector) ApplyTwo(q0, q1 int, m Matrix4) {
	dim := len(s.amps)
	mask0 := 1 << q0
	mask1 := 1 << q1
	for i := 0; i < dim; i++ {
		if i&mask0 == 0 && i&mask1 == 0 {
			i00 := i
			i01 := i | mask0
			i10 := i | mask1
			i11 := i | mask0 | mask1

			a00 := s.amps[i00]
			a01 := s.amps[i01]
			a10 := s.amps[i10]
			a11 := s.amps[i11]

			s.amps[i00] = m[0][0]*a00 + m[0][1]*a01 + m[0][2]*a10 + m[0][3]*a11
			s.amps[i01] = m[1][0]*a00 + m[1][1]*a01 + m[1][2]*a10 + m[1][3]*a11
			s.amps[i10] = m[2][0]*a00 + m[2][1]*a01 + m[2][2]*a10 + m[2][3]*a11
			s.amps[i11] = m[3][0]*a00 + m[3][1]*a01 + m[3][2]*a10 + m[3][3]*a11
		}
	}
}

// ApplyControlled applies a 2×2 unitary to the target qubit in the
// subspace where the control qubit is 1. Amplitudes with control bit 0 are
// untouched, which makes this cheaper than a 4×4 application for CX-style
// gates.
func (s *StateVector) ApplyControlled(control, target int, m Matrix2) {
	dim := len(s.amps)
	controlMask := 1 << control
	targetMask := 1 << target
	for i := 0; i < dim; i++ {
		if i&controlMask != 0 && i&targetMask == 0 {
			i1 := i | targetMask
			a0 := s.amps[i]
			a1 := s.amps[i1]
			s.amps[i] = m[0][0]*a0 + m[0][1]*a1
			s.amps[i1] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// Measure collapses qubit q using the uniform draw r in [0, 1) and returns
// the outcome bit. Amplitudes inconsistent with the outcome are zeroed and
// the survivors rescaled back to unit norm.
func (s *StateVector) Measure(q int, r float64) int {
	mask := 1 << q

	prob0 := 0.0
	for i, a := range s.amps {
		if i&mask == 0 {
			prob0 += NormSqr(a)
		}
	}

	outcome := 1
	if r < prob0 {
		outcome = 0
	}

	norm := prob0
	if outcome == 1 {
		norm = 1.0 - prob0
	}
	invSqrtNorm := complex(1.0/math.Sqrt(norm), 0)

	for i := range s.amps {
		qubitIsOne := i&mask != 0
		if (outcome == 0 && qubitIsOne) || (outcome == 1 && !qubitIsOne) {
			s.amps[i] = 0
		} else {
			s.amps[i] *= invSqrtNorm
		}
	}

	return outcome
}

// Reset measures qubit q and flips it back with X if the outcome was 1,
// leaving the qubit in |0⟩ with the rest of the register's conditional
// state preserved.
func (s *StateVector) Reset(q int, r float64) {
	if s.Measure(q, r) == 1 {
		x := Matrix2{{0, 1}, {1, 0}}
		s.ApplySingle(q, x)
	}
}

// Sample draws one basis-state index by inverse-CDF over the probability
// distribution, without collapsing the state. Rounding at the tail clamps
// to the last index.
func (s *StateVector) Sample(r float64) int {
	cumulative := 0.0
	for i, a := range s.amps {
		cumulative += NormSqr(a)
		if r < cumulative {
			return i
		}
	}
	return len(s.amps) - 1
}

// InnerProduct returns ⟨s|other⟩.
func (s *StateVector) InnerProduct(other *StateVector) Complex {
	var sum Complex
	for i, a := range s.amps {
		sum += Conj(a) * other.amps[i]
	}
	return sum
}

// Fidelity returns |⟨s|other⟩|².
func (s *StateVector) Fidelity(other *StateVector) float64 {
	return NormSqr(s.InnerProduct(other))
}

// Equal reports amplitude-wise equality within the default tolerance.
func (s *StateVector) Equal(other *StateVector) bool {
	if s.numQubits != other.numQubits {
		return false
	}
	for i, a := range s.amps {
		if !ApproxEq(a, other.amps[i], Epsilon) {
			return false
		}
	}
	return true
}
