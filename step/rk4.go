package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// RK4 is the classical fourth-order, fixed-step Runge-Kutta method. It is
// not FSAL, but performs an extra end-of-step evaluation, so a caller
// wanting dense interpolation has f(t+dt, u) available via FSALLast
// without a second Step call. in.K (when Calck is set) holds only the four
// stage slopes; the end-of-step evaluation is not part of it.
type RK4[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

func NewRK4[S buffer.Buffer[S]](zero S) *RK4[S] {
	tb := tableau.RK4()
	return &RK4[S]{tb: tb, ws: workspace.New[S](tb.S, 1, zero)}
}

func (r *RK4[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (r *RK4[S]) PerformStep(in *Integrator[S]) {
	advance(r.ws, r.tb, in)
	finishFSAL(r.ws, r.tb, in, r.ws.Dense[0])
}
