package quasar

import (
	"math"
	"math/cmplx"
)

// Complex is the amplitude type used throughout the simulator. Dividing
// by a zero-norm value is a precondition violation with the usual
// complex128 semantics, not a handled case.
type Complex = complex128

// Epsilon is the default tolerance for amplitude comparisons. Exact
// floating-point equality is never meaningful for evolved amplitudes.
const Epsilon = 1e-10

// InvSqrt2 is 1/√2, the Hadamard normalization factor.
const InvSqrt2 = 0.7071067811865476

// FromPolar builds a complex number from magnitude r and phase theta.
func FromPolar(r, theta float64) Complex {
	return complex(r*math.Cos(theta), r*math.Sin(theta))
}

// NormSqr returns |z|². Cheaper than Abs when only comparing magnitudes.
func NormSqr(z Complex) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

// Abs returns the magnitude |z|.
func Abs(z Complex) float64 {
	return math.Sqrt(NormSqr(z))
}

// Arg returns the phase angle of z in radians.
func Arg(z Complex) float64 {
	return cmplx.Phase(z)
}

// Exp returns the complex exponential e^z.
func Exp(z Complex) Complex {
	return cmplx.Exp(z)
}

// Conj returns the complex conjugate of z.
func Conj(z Complex) Complex {
	return cmplx.Conj(z)
}

// IsZero reports whether z is zero within eps.
func IsZero(z Complex, eps float64) bool {
	return NormSqr(z) < eps*eps
}

// ApproxEq reports whether a and b are equal within eps.
func ApproxEq(a, b Complex, eps float64) bool {
	return IsZero(a-b, eps)
}
