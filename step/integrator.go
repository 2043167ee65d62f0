// Package step implements the explicit Runge-Kutta stepping engine: the
// Integrator handle a driver maintains across steps, and the family of
// Stepper variants (Euler, Midpoint, RK4, BS3, DP5, Tsit5, BS5) that advance
// it one step at a time.
package step

import "github.com/solvecore/rkphi/buffer"

// Integrator is the external handle a driver maintains across steps. It is
// passed by pointer to Initialize/PerformStep; the stepper reads T, Dt,
// Uprev, FSALFirst, F and the tolerance/flag fields, and writes U, FSALLast,
// EEst (if Adaptive) and K (if Calck).
type Integrator[S buffer.Buffer[S]] struct {
	T, Dt float64
	// Uprev is the state at the start of the step; the stepper never
	// mutates it.
	Uprev S
	// U is the destination for the advancing (higher-order, for embedded
	// pairs) solution.
	U S
	F buffer.Func[S]

	Abstol, Reltol float64
	ErrNorm        buffer.NormFunc[S]

	Adaptive bool
	Calck    bool

	// FSALFirst holds f(T, Uprev) on entry to PerformStep. For a true FSAL
	// method it is the caller's promoted FSALLast from the prior accepted
	// step; the stepper aliases it into the first stage slot rather than
	// copying it.
	FSALFirst S
	// FSALLast holds f(T+Dt, U) after a successful step, ready to become
	// the next step's FSALFirst without recomputation.
	FSALLast S
	// K holds the dense-output slope list populated when Calck is set.
	K []S

	// EEst is the embedded error estimate, set only when Adaptive.
	EEst float64
}

// Stepper is the per-method capability: initialize the handle's FSAL state
// once, then advance one step at a time. Each concrete type wraps a fixed
// *tableau.Tableau and is instantiated once per (method, Buffer) pair; the
// generic parameter S monomorphizes away any interface dispatch inside the
// stage loop.
type Stepper[S buffer.Buffer[S]] interface {
	Initialize(in *Integrator[S])
	PerformStep(in *Integrator[S])
}
