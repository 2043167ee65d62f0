package step

import (
	"math"

	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/tableau"
	"github.com/solvecore/rkphi/workspace"
)

// advance runs the general adaptive stage form of spec §4.1 for a tableau
// of any stage count: for i >= 2, y_i = uprev + dt*sum_{j<i} a_ij*k_j,
// k_i = f(t+c_i*dt, y_i); then u and (if tb.Bhat is set and in.Adaptive)
// utilde and EEst. Stage 1's slope is always in.FSALFirst, which advance
// seats in ws.K[0] by aliasing (no copy, no evaluation). It performs no
// allocation: every intermediate lives in ws.
//
// ws.K[0] and (via finishFSAL) ws.K[tb.S-1] alias in.FSALFirst and
// in.FSALLast respectively for the lifetime of a single PerformStep call;
// that aliasing is the whole point of FSAL (no copy, no extra evaluation).
// It is only safe because the driver's between-step promotion
// (in.FSALFirst <- in.FSALLast) copies into FSALFirst's own buffer via
// Set() rather than reassigning the pointer/value outright - otherwise
// in.FSALFirst would become the very workspace slot advance() overwrites
// as ws.K[tb.S-1] on the next call, and the stage-1 read above would see
// the new step's last-stage slope instead of the old one. See facade.go's
// Run and the promotion lines in step_test.go for the call-site contract.
func advance[S buffer.Buffer[S]](ws *workspace.Workspace[S], tb *tableau.Tableau, in *Integrator[S]) {
	ws.K[0] = in.FSALFirst

	for i := 1; i < tb.S; i++ {
		ws.Tmp = ws.Tmp.Set(in.Uprev)
		row := tb.A[i]
		for j, aij := range row {
			if aij == 0 {
				continue
			}
			ws.Tmp = ws.Tmp.AddScaled(in.Dt*aij, ws.K[j])
		}
		ws.K[i] = in.F(in.T+tb.C[i]*in.Dt, ws.Tmp, ws.K[i])
	}

	in.U = in.U.Set(in.Uprev)
	for i, bi := range tb.B {
		if bi == 0 {
			continue
		}
		in.U = in.U.AddScaled(in.Dt*bi, ws.K[i])
	}

	if tb.Bhat != nil && in.Adaptive {
		ws.Utilde = ws.Utilde.Set(in.Uprev)
		for i, bhi := range tb.Bhat {
			if bhi == 0 {
				continue
			}
			ws.Utilde = ws.Utilde.AddScaled(in.Dt*bhi, ws.K[i])
		}
		eest := in.ErrNorm(ws.Utilde, in.U, in.Uprev, in.Abstol, in.Reltol, ws.Atmp)

		if tb.Btilde != nil {
			ws.Uhat = ws.Uhat.Set(in.Uprev)
			for i, bti := range tb.Btilde {
				if bti == 0 {
					continue
				}
				ws.Uhat = ws.Uhat.AddScaled(in.Dt*bti, ws.K[i])
			}
			eest2 := in.ErrNorm(ws.Uhat, in.U, in.Uprev, in.Abstol, in.Reltol, ws.AtmpTilde)
			eest = math.Max(eest, eest2)
		}
		in.EEst = eest
	}

	if in.Calck {
		in.K = ws.K
	}
}

// finishFSAL seats in.FSALLast for the next step. Genuine multi-stage FSAL
// tableaus (c_s = 1, a_{s,:} = b) already hold f(t+dt, u) in their last
// stage; this aliases it rather than recomputing. Methods that are not
// structurally FSAL this way (Euler, Midpoint, RK4) get a fresh evaluation
// into extra, a workspace scratch slot dedicated to that purpose.
func finishFSAL[S buffer.Buffer[S]](ws *workspace.Workspace[S], tb *tableau.Tableau, in *Integrator[S], extra S) {
	if tb.FSAL && tb.S > 1 {
		in.FSALLast = ws.K[tb.S-1]
		return
	}
	in.FSALLast = in.F(in.T+in.Dt, in.U, extra)
}
