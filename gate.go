package quasar

import "math"

// GateType identifies a quantum gate.
type GateType int

const (
	// Single-qubit gates
	GateI GateType = iota
	GateX
	GateY
	GateZ
	GateH
	GateS
	GateSdg
	GateT
	GateTdg
	GateRx
	GateRy
	GateRz
	GateP
	GateU

	// Two-qubit gates
	GateCX
	GateCY
	GateCZ
	GateCH
	GateCP
	GateCU
	GateSwap
	GateISwap
	GateSqrtSwap

	// Three-qubit gates
	GateCCX
	GateCSwap

	// Non-unitary operations
	GateMeasure
	GateReset
	GateBarrier
)

var gateNames = map[GateType]string{
	GateI: "I", GateX: "X", GateY: "Y", GateZ: "Z", GateH: "H",
	GateS: "S", GateSdg: "Sdg", GateT: "T", GateTdg: "Tdg",
	GateRx: "Rx", GateRy: "Ry", GateRz: "Rz", GateP: "P", GateU: "U",
	GateCX: "CX", GateCY: "CY", GateCZ: "CZ", GateCH: "CH", GateCP: "CP",
	GateCU: "CU", GateSwap: "SWAP", GateISwap: "iSWAP", GateSqrtSwap: "sqrtSWAP",
	GateCCX: "CCX", GateCSwap: "CSWAP",
	GateMeasure: "measure", GateReset: "reset", GateBarrier: "barrier",
}

func (t GateType) String() string {
	if name, ok := gateNames[t]; ok {
		return name
	}
	return "unknown"
}

// Matrix2 is a 2×2 unitary acting on a single qubit.
type Matrix2 [2][2]Complex

// Matrix4 is a 4×4 unitary acting on a qubit pair.
type Matrix4 [4][4]Complex

// Gate is a gate identity with its numeric parameters. Rotation and phase
// gates carry one angle; U carries theta, phi, lambda in that order.
type Gate struct {
	Type   GateType
	Params []float64
}

// NewGate builds a gate from its type and parameters.
func NewGate(t GateType, params ...float64) Gate {
	return Gate{Type: t, Params: params}
}

// Matrix returns the 2×2 matrix of a single-qubit gate. The second return
// is false for multi-qubit gates, non-unitary operations, and parameterized
// gates missing their required parameters.
func (g Gate) Matrix() (Matrix2, bool) {
	var zero Complex
	one := complex(1, 0)
	i := complex(0, 1)
	h := complex(InvSqrt2, 0)

	switch g.Type {
	case GateI:
		return Matrix2{{one, zero}, {zero, one}}, true
	case GateX:
		return Matrix2{{zero, one}, {one, zero}}, true
	case GateY:
		return Matrix2{{zero, -i}, {i, zero}}, true
	case GateZ:
		return Matrix2{{one, zero}, {zero, -one}}, true
	case GateH:
		return Matrix2{{h, h}, {h, -h}}, true
	case GateS:
		return Matrix2{{one, zero}, {zero, i}}, true
	case GateSdg:
		return Matrix2{{one, zero}, {zero, -i}}, true
	case GateT:
		return Matrix2{{one, zero}, {zero, FromPolar(1, math.Pi/4)}}, true
	case GateTdg:
		return Matrix2{{one, zero}, {zero, FromPolar(1, -math.Pi/4)}}, true
	case GateRx:
		if len(g.Params) < 1 {
			return Matrix2{}, false
		}
		theta := g.Params[0]
		cos := complex(math.Cos(theta/2), 0)
		sin := complex(0, -math.Sin(theta/2))
		return Matrix2{{cos, sin}, {sin, cos}}, true
	case GateRy:
		if len(g.Params) < 1 {
			return Matrix2{}, false
		}
		theta := g.Params[0]
		cos := complex(math.Cos(theta/2), 0)
		sin := complex(math.Sin(theta/2), 0)
		return Matrix2{{cos, -sin}, {sin, cos}}, true
	case GateRz:
		if len(g.Params) < 1 {
			return Matrix2{}, false
		}
		theta := g.Params[0]
		return Matrix2{
			{FromPolar(1, -theta/2), zero},
			{zero, FromPolar(1, theta/2)},
		}, true
	case GateP:
		if len(g.Params) < 1 {
			return Matrix2{}, false
		}
		return Matrix2{{one, zero}, {zero, FromPolar(1, g.Params[0])}}, true
	case GateU:
		if len(g.Params) < 3 {
			return Matrix2{}, false
		}
		theta, phi, lambda := g.Params[0], g.Params[1], g.Params[2]
		cos := math.Cos(theta / 2)
		sin := math.Sin(theta / 2)
		return Matrix2{
			{complex(cos, 0), -FromPolar(1, lambda) * complex(sin, 0)},
			{FromPolar(1, phi) * complex(sin, 0), FromPolar(1, phi+lambda) * complex(cos, 0)},
		}, true
	default:
		return Matrix2{}, false
	}
}

// NumQubits returns the arity of the gate. Barrier returns 0: it may span
// any set of qubits and has no semantic effect.
func (g Gate) NumQubits() int {
	switch g.Type {
	case GateI, GateX, GateY, GateZ, GateH, GateS, GateSdg, GateT, GateTdg,
		GateRx, GateRy, GateRz, GateP, GateU, GateMeasure, GateReset:
		return 1
	case GateCX, GateCY, GateCZ, GateCH, GateCP, GateCU,
		GateSwap, GateISwap, GateSqrtSwap:
		return 2
	case GateCCX, GateCSwap:
		return 3
	default:
		return 0
	}
}

// IsControlled reports whether the gate acts conditionally on control qubits.
func (g Gate) IsControlled() bool {
	switch g.Type {
	case GateCX, GateCY, GateCZ, GateCH, GateCP, GateCU, GateCCX, GateCSwap:
		return true
	}
	return false
}

// IsUnitary reports whether the gate is a norm-preserving linear map.
// Measure, Reset and Barrier are control operations, not linear maps.
func (g Gate) IsUnitary() bool {
	switch g.Type {
	case GateMeasure, GateReset, GateBarrier:
		return false
	}
	return true
}
