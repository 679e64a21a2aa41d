package quasar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexBasicOperations(t *testing.T) {
	a := complex(1.0, 2.0)
	b := complex(3.0, 4.0)

	assert.Equal(t, complex(4.0, 6.0), a+b)
	assert.Equal(t, complex(-5.0, 10.0), a*b)
	assert.Equal(t, complex(1.0, -2.0), Conj(a))
}

func TestComplexMagnitude(t *testing.T) {
	c := complex(3.0, 4.0)
	assert.InDelta(t, 5.0, Abs(c), 1e-10)
	assert.InDelta(t, 25.0, NormSqr(c), 1e-10)
}

func TestFromPolar(t *testing.T) {
	c := FromPolar(1.0, math.Pi/4)
	assert.InDelta(t, InvSqrt2, real(c), 1e-10)
	assert.InDelta(t, InvSqrt2, imag(c), 1e-10)
}

func TestArg(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Arg(complex(0, 1)), 1e-10)
	assert.InDelta(t, math.Pi, Arg(complex(-1, 0)), 1e-10)
}

func TestExpOfIPi(t *testing.T) {
	// e^(iπ) = -1
	result := Exp(complex(0, math.Pi))
	assert.InDelta(t, -1.0, real(result), 1e-10)
	assert.InDelta(t, 0.0, imag(result), 1e-10)
}

func TestApproxEq(t *testing.T) {
	a := complex(1.0, 0.0)
	assert.True(t, ApproxEq(a, complex(1.0+1e-12, 0.0), Epsilon))
	assert.False(t, ApproxEq(a, complex(1.0+1e-9, 0.0), Epsilon))
	assert.True(t, IsZero(complex(1e-12, -1e-12), Epsilon))
	assert.False(t, IsZero(complex(1e-9, 0), Epsilon))
}

func TestInvSqrt2Constant(t *testing.T) {
	assert.InDelta(t, 1.0, InvSqrt2*math.Sqrt2, 1e-15)
}
