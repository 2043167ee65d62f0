package buffer

import "math"

// RealScalar is the scalar-shape, real-valued Buffer instantiation. Every
// operation returns a fresh value; the receiver is never mutated.
type RealScalar float64

// Set returns x. The receiver is not mutated (there is nothing to mutate:
// Go passes RealScalar by value).
func (s RealScalar) Set(x RealScalar) RealScalar { return x }

// AddScaled returns s + alpha*x.
func (s RealScalar) AddScaled(alpha float64, x RealScalar) RealScalar {
	return s + RealScalar(alpha)*x
}

// Scale returns alpha*s.
func (s RealScalar) Scale(alpha float64) RealScalar { return RealScalar(alpha) * s }

// Sub returns s - x.
func (s RealScalar) Sub(x RealScalar) RealScalar { return s - x }

// Clone returns s.
func (s RealScalar) Clone() RealScalar { return s }

// Zero returns 0.
func (s RealScalar) Zero() RealScalar { return 0 }

// RealScalarErrorNorm implements NormFunc for RealScalar: plain absolute
// value of the tolerance-scaled difference, per spec §4.1. scratch is
// ignored; scalar shape has nothing to reuse a buffer for.
func RealScalarErrorNorm(utilde, u, uprev RealScalar, abstol, reltol float64, scratch RealScalar) float64 {
	sc := abstol + math.Max(math.Abs(float64(uprev)), math.Abs(float64(u)))*reltol
	return math.Abs(float64(utilde-u)) / sc
}

// ComplexScalar is the scalar-shape, complex-valued Buffer instantiation.
type ComplexScalar complex128

// Set returns x.
func (s ComplexScalar) Set(x ComplexScalar) ComplexScalar { return x }

// AddScaled returns s + alpha*x. alpha is real: Butcher coefficients never
// carry an imaginary part even when the state does.
func (s ComplexScalar) AddScaled(alpha float64, x ComplexScalar) ComplexScalar {
	return s + ComplexScalar(complex(alpha, 0))*x
}

// Scale returns alpha*s.
func (s ComplexScalar) Scale(alpha float64) ComplexScalar {
	return ComplexScalar(complex(alpha, 0)) * s
}

// Sub returns s - x.
func (s ComplexScalar) Sub(x ComplexScalar) ComplexScalar { return s - x }

// Clone returns s.
func (s ComplexScalar) Clone() ComplexScalar { return s }

// Zero returns 0.
func (s ComplexScalar) Zero() ComplexScalar { return 0 }

// ComplexScalarErrorNorm implements NormFunc for ComplexScalar using the
// complex modulus in place of absolute value. scratch is ignored.
func ComplexScalarErrorNorm(utilde, u, uprev ComplexScalar, abstol, reltol float64, scratch ComplexScalar) float64 {
	sc := abstol + math.Max(cmplxAbs(uprev), cmplxAbs(u))*reltol
	return cmplxAbs(utilde-u) / sc
}

func cmplxAbs(z ComplexScalar) float64 {
	return math.Hypot(real(complex128(z)), imag(complex128(z)))
}
