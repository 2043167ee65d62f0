package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// BS5 is the Bogacki-Shampine 5(4) pair with two embedded estimators,
// FSAL, 8-slope dense output. The double error estimate
// (EEst = max(EEst1, EEst2)) is handled generically by advance, since
// tableau.BS5 carries a non-nil Btilde. tableau.BS5 derives Btilde as
// 2B - Bhat, so EEst2 equals EEst1 up to rounding.
type BS5[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

func NewBS5[S buffer.Buffer[S]](zero S) *BS5[S] {
	tb := tableau.BS5()
	return &BS5[S]{tb: tb, ws: workspace.New[S](tb.S, 0, zero)}
}

func (b *BS5[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (b *BS5[S]) PerformStep(in *Integrator[S]) {
	advance(b.ws, b.tb, in)
	var unused S
	finishFSAL(b.ws, b.tb, in, unused)
}
