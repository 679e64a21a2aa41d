package quasar

import "fmt"

// QubitOutOfRangeError reports a qubit index outside the register.
type QubitOutOfRangeError struct {
	Qubit int
	Max   int
}

func (e *QubitOutOfRangeError) Error() string {
	return fmt.Sprintf("qubit index %d out of range (max %d)", e.Qubit, e.Max-1)
}

// ClbitOutOfRangeError reports a classical-bit index outside the record.
type ClbitOutOfRangeError struct {
	Clbit int
	Max   int
}

func (e *ClbitOutOfRangeError) Error() string {
	return fmt.Sprintf("classical bit index %d out of range (max %d)", e.Clbit, e.Max-1)
}

// QubitMismatchError reports a qubit-count disagreement between a circuit
// and a supplied state.
type QubitMismatchError struct {
	Expected int
	Got      int
}

func (e *QubitMismatchError) Error() string {
	return fmt.Sprintf("qubit count mismatch: expected %d, got %d", e.Expected, e.Got)
}

// DuplicateQubitError reports the same qubit used twice in one instruction.
type DuplicateQubitError struct {
	Qubit int
}

func (e *DuplicateQubitError) Error() string {
	return fmt.Sprintf("duplicate qubit %d in instruction", e.Qubit)
}

// CircuitTooLargeError reports a register above the simulable maximum.
type CircuitTooLargeError struct {
	Qubits int
	Max    int
}

func (e *CircuitTooLargeError) Error() string {
	return fmt.Sprintf("circuit with %d qubits exceeds maximum of %d", e.Qubits, e.Max)
}

// StateDimensionError reports a raw amplitude vector whose length is not a
// power of two.
type StateDimensionError struct {
	Dim int
}

func (e *StateDimensionError) Error() string {
	return fmt.Sprintf("state dimension %d is not a power of two", e.Dim)
}

// StateNotNormalizedError reports a raw amplitude vector that is not unit
// norm within tolerance.
type StateNotNormalizedError struct {
	Norm float64
}

func (e *StateNotNormalizedError) Error() string {
	return fmt.Sprintf("state not normalized (norm = %v)", e.Norm)
}

// NotSupportedError reports a gate or operation with no implemented path.
type NotSupportedError struct {
	Operation string
}

func (e *NotSupportedError) Error() string {
	return "operation not supported: " + e.Operation
}

// SimulationError carries a free-form failure from an execution backend.
type SimulationError struct {
	Message string
}

func (e *SimulationError) Error() string {
	return "simulation error: " + e.Message
}
