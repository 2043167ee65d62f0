package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// Tsit5 is Tsitouras' 5(4) embedded pair, FSAL, with 7-slope dense output
// (the raw stage slopes, exposed unchanged via in.K).
type Tsit5[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

func NewTsit5[S buffer.Buffer[S]](zero S) *Tsit5[S] {
	tb := tableau.Tsit5()
	return &Tsit5[S]{tb: tb, ws: workspace.New[S](tb.S, 0, zero)}
}

func (ts *Tsit5[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (ts *Tsit5[S]) PerformStep(in *Integrator[S]) {
	advance(ts.ws, ts.tb, in)
	var unused S
	finishFSAL(ts.ws, ts.tb, in, unused)
}
