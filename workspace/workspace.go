// Package workspace holds the per-method preallocated scratch a Stepper
// reuses across every perform_step invocation without zeroing between
// steps: every internal buffer is fully overwritten within each step (spec
// §4.5).
package workspace

import "github.com/solvecore/rkphi/buffer"

// Workspace is sized once at creation from a zero-valued template buffer
// and never resized. It is bound to exactly one stepper instance for its
// lifetime (spec §3 invariant).
type Workspace[S buffer.Buffer[S]] struct {
	// K holds exactly the stage slopes k_1..k_s. Dense-output scratch
	// lives in Update, Bspl and Dense, not in extra K slots (see dp5.go).
	K []S
	// Tmp is the provisional stage state y_i.
	Tmp S
	// Utilde is the embedded-order solution estimate uprev + dt*sum(bhat*k).
	Utilde S
	// Uhat is BS5's second embedded solution estimate. New allocates it for
	// every method; only BS5 writes to it.
	Uhat S
	// Atmp and AtmpTilde are scratch buffers for the error-ratio
	// computation; AtmpTilde is only used by BS5's double estimator.
	Atmp, AtmpTilde S
	// Update and Bspl are DP5's named dense-output scratch slopes.
	Update, Bspl S
	// Dense holds the per-method dense-output slope/coefficient results
	// populated when Integrator.Calck is set (spec §4.1's "k[…]").
	Dense []S
}

// New allocates a Workspace for a method with the given stage count and
// dense-output slot count, sizing every buffer from zero, a zero-valued
// template shaped like the state the integration will run over (e.g.
// zero.Zero() for an already-zeroed buffer, or simply zero itself if the
// caller passes a fresh Zero()).
func New[S buffer.Buffer[S]](stages, denseSlots int, zero S) *Workspace[S] {
	k := make([]S, stages)
	for i := range k {
		k[i] = zero.Zero()
	}
	dense := make([]S, denseSlots)
	for i := range dense {
		dense[i] = zero.Zero()
	}
	return &Workspace[S]{
		K:         k,
		Tmp:       zero.Zero(),
		Utilde:    zero.Zero(),
		Uhat:      zero.Zero(),
		Atmp:      zero.Zero(),
		AtmpTilde: zero.Zero(),
		Update:    zero.Zero(),
		Bspl:      zero.Zero(),
		Dense:     dense,
	}
}
