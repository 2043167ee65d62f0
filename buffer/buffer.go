// Package buffer implements the state algebra capability sketched in the
// core's design notes: a single generic Buffer[S] surface that every
// stepper is written against once, instantiated separately for scalar and
// array shapes and for real and complex element domains.
//
// Butcher coefficients (the alpha arguments below) are always float64: a
// Runge-Kutta tableau is real-valued regardless of whether the state it
// advances is real or complex. Only the state/slope values carry the
// element domain.
package buffer

// Buffer is the capability a stepper needs from a state representation S.
// Array-shape implementations mutate the receiver in place and return it;
// scalar-shape implementations are immutable values and return a fresh
// result, leaving the receiver untouched.
type Buffer[S any] interface {
	// Set assigns x's value to the receiver, returning the receiver (array
	// shape, copied in place) or x itself (scalar shape).
	Set(x S) S
	// AddScaled computes receiver += alpha*x (array shape, in place) or
	// returns receiver + alpha*x (scalar shape).
	AddScaled(alpha float64, x S) S
	// Scale computes receiver *= alpha (array shape) or returns
	// alpha*receiver (scalar shape).
	Scale(alpha float64) S
	// Sub computes receiver -= x (array shape) or returns receiver - x
	// (scalar shape).
	Sub(x S) S
	// Clone returns an independent copy of the receiver.
	Clone() S
	// Zero returns a zero-valued buffer shaped like the receiver: for array
	// shape this allocates a same-length buffer of zeros once; for scalar
	// shape it is the zero value.
	Zero() S
}

// Func is the right-hand side f(t, u) of the differential equation. Array
// shape implementations write their result into out and return out; scalar
// shape implementations ignore out and return a fresh value. Callers should
// always use the returned S, not assume out was mutated.
type Func[S any] func(t float64, u S, out S) S

// NormFunc reduces the embedded-pair error ratio to a single non-negative,
// unit-free scalar: the elementwise internalnorm reduction for array shape,
// plain absolute value for scalar shape. It implements
//
//	EEst = ||(utilde - u) / (abstol + max(|uprev|, |u|)*reltol)||
//
// scratch is a workspace-owned buffer (the "atmp" buffer of spec §3) that
// the array-shape instantiation writes the elementwise ratio into, so that
// no array-shape NormFunc ever allocates inside a step; scalar-shape
// instantiations ignore it.
type NormFunc[S any] func(utilde, u, uprev S, abstol, reltol float64, scratch S) float64
