package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// Euler is the fixed-step, first-order explicit Euler method.
type Euler[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

// NewEuler builds an Euler stepper with a freshly sized workspace, shaped
// from zero (e.g. a zero-valued *RealArray of the caller's problem size,
// or a RealScalar(0)).
func NewEuler[S buffer.Buffer[S]](zero S) *Euler[S] {
	tb := tableau.Euler()
	return &Euler[S]{tb: tb, ws: workspace.New[S](tb.S, 1, zero)}
}

func (e *Euler[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (e *Euler[S]) PerformStep(in *Integrator[S]) {
	advance(e.ws, e.tb, in)
	finishFSAL(e.ws, e.tb, in, e.ws.Dense[0])
}
