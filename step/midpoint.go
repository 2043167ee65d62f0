package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// Midpoint is the fixed-step, second-order explicit midpoint method. Not
// FSAL: its dense output is linear, so no end-of-step slope is needed for
// interpolation, but FSALLast is still produced for handle uniformity.
type Midpoint[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

func NewMidpoint[S buffer.Buffer[S]](zero S) *Midpoint[S] {
	tb := tableau.Midpoint()
	return &Midpoint[S]{tb: tb, ws: workspace.New[S](tb.S, 1, zero)}
}

func (m *Midpoint[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (m *Midpoint[S]) PerformStep(in *Integrator[S]) {
	advance(m.ws, m.tb, in)
	finishFSAL(m.ws, m.tb, in, m.ws.Dense[0])
}
