package step

import (
	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// DP5 is the Dormand-Prince 5(4) embedded pair, FSAL, with the classical
// four-slope dense output (Shampine 1986).
type DP5[S buffer.Buffer[S]] struct {
	tb *tableau.Tableau
	ws *workspace.Workspace[S]
}

// NewDP5 sizes a workspace with four extra dense-output slots, matching
// the four reconstructed slopes of spec §4.1's "DP5 dense output" note.
func NewDP5[S buffer.Buffer[S]](zero S) *DP5[S] {
	tb := tableau.DP5()
	return &DP5[S]{tb: tb, ws: workspace.New[S](tb.S, 4, zero)}
}

func (d *DP5[S]) Initialize(in *Integrator[S]) {
	in.FSALFirst = in.F(in.T, in.Uprev, in.FSALFirst)
}

func (d *DP5[S]) PerformStep(in *Integrator[S]) {
	advance(d.ws, d.tb, in)
	var unused S
	finishFSAL(d.ws, d.tb, in, unused)

	if !in.Calck {
		return
	}
	ws, k := d.ws, d.ws.K
	// 1. update = a71*k1 + a73*k3 + a74*k4 + a75*k5 + a76*k6
	a7 := d.tb.A[6]
	ws.Update = ws.Update.Set(k[0]).Scale(a7[0])
	ws.Update = ws.Update.AddScaled(a7[2], k[2])
	ws.Update = ws.Update.AddScaled(a7[3], k[3])
	ws.Update = ws.Update.AddScaled(a7[4], k[4])
	ws.Update = ws.Update.AddScaled(a7[5], k[5])

	// 2. bspl = k1 - update
	ws.Bspl = ws.Bspl.Set(k[0]).Sub(ws.Update)

	// 3. update - k7 - bspl
	ws.Dense[0] = ws.Dense[0].Set(ws.Update).Sub(k[6]).Sub(ws.Bspl)

	// 4. sum(d_i*k_i)
	d4 := d.tb.D
	ws.Dense[1] = ws.Dense[1].Set(k[0]).Scale(d4[0])
	ws.Dense[1] = ws.Dense[1].AddScaled(d4[2], k[2])
	ws.Dense[1] = ws.Dense[1].AddScaled(d4[3], k[3])
	ws.Dense[1] = ws.Dense[1].AddScaled(d4[4], k[4])
	ws.Dense[1] = ws.Dense[1].AddScaled(d4[5], k[5])
	ws.Dense[1] = ws.Dense[1].AddScaled(d4[6], k[6])

	ws.Dense[2] = ws.Update
	ws.Dense[3] = ws.Bspl
	in.K = ws.Dense
}
