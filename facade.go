// Package rkphi is the runnable, non-GUI facade that exercises the
// tableau/workspace/step core end to end (spec §10/§4.8). It is
// deliberately a thin fixed-step harness: for embedded pairs it exposes
// EEst, but it never changes dt or rejects a step. Step-size control,
// event detection and tstops handling remain the external driver's
// responsibility, out of scope for this module.
package rkphi

import (
	"fmt"
	"time"

	"github.com/solvecore/rkphi/buffer"
	"github.com/solvecore/rkphi/config"
	"github.com/solvecore/rkphi/step"
)

// Func is the right-hand side of the problem the Facade integrates.
type Func func(t float64, u, out []float64) []float64

// Facade runs a named method over a real array state, echoing the
// string-keyed method-selection convention observed in the retrieved
// corpus's gosl/ode package ("fweuler", "dopri5", ...) without copying its
// code (only test files for that package were retrieved).
type Facade struct {
	Config config.Config
	Logger Logger

	method string
	st     step.Stepper[*buffer.RealArray]
	in     *step.Integrator[*buffer.RealArray]
}

// Names of the methods NewFixedStep recognizes, matching the corpus's
// lower-case, no-punctuation naming convention.
const (
	MethodEuler    = "fweuler"
	MethodMidpoint = "midpoint"
	MethodRK4      = "rk4"
	MethodBS3      = "bs32"
	MethodDP5      = "dopri5"
	MethodTsit5    = "tsit5"
	MethodBS5      = "bs54"
)

// NewFixedStep builds a Facade for the named method, wrapping f as the
// array-shape buffer.Func and seeding the integrator at (t0, u0).
func NewFixedStep(method string, f Func, u0 []float64, t0, dt float64) *Facade {
	zero := buffer.NewRealArray(make([]float64, len(u0)))
	wrapped := func(t float64, u, out *buffer.RealArray) *buffer.RealArray {
		f(t, u.X, out.X)
		return out
	}

	fa := &Facade{method: method, Config: config.Default(), Logger: NewLogger(nil)}
	fa.in = &step.Integrator[*buffer.RealArray]{
		T: t0, Dt: dt,
		Uprev: buffer.NewRealArray(append([]float64(nil), u0...)),
		U:     buffer.NewRealArray(make([]float64, len(u0))),
		F:     wrapped,
	}
	fa.in.FSALFirst = buffer.NewRealArray(make([]float64, len(u0)))
	fa.in.FSALLast = buffer.NewRealArray(make([]float64, len(u0)))

	switch method {
	case MethodEuler:
		fa.st = step.NewEuler[*buffer.RealArray](zero)
	case MethodMidpoint:
		fa.st = step.NewMidpoint[*buffer.RealArray](zero)
	case MethodRK4:
		fa.st = step.NewRK4[*buffer.RealArray](zero)
	case MethodBS3:
		fa.st = step.NewBS3[*buffer.RealArray](zero)
		fa.in.Adaptive = true
		fa.in.ErrNorm = buffer.RealArrayErrorNorm(buffer.RMSNorm)
	case MethodDP5:
		fa.st = step.NewDP5[*buffer.RealArray](zero)
		fa.in.Adaptive = true
		fa.in.ErrNorm = buffer.RealArrayErrorNorm(buffer.RMSNorm)
	case MethodTsit5:
		fa.st = step.NewTsit5[*buffer.RealArray](zero)
		fa.in.Adaptive = true
		fa.in.ErrNorm = buffer.RealArrayErrorNorm(buffer.RMSNorm)
	case MethodBS5:
		fa.st = step.NewBS5[*buffer.RealArray](zero)
		fa.in.Adaptive = true
		fa.in.ErrNorm = buffer.RealArrayErrorNorm(buffer.RMSNorm)
	default:
		throwf("rkphi: unrecognized method %q", method)
	}
	fa.in.Abstol, fa.in.Reltol = 1e-6, 1e-3
	fa.st.Initialize(fa.in)
	return fa
}

// SetConfig replaces the Facade's configuration.
func (fa *Facade) SetConfig(cfg config.Config) *Facade {
	fa.Config = cfg
	return fa
}

// Run advances n steps, logging one accepted-step line per iteration if
// Config.Log.Results is set, and returns the state trajectory including
// the initial condition.
func (fa *Facade) Run(n int) [][]float64 {
	out := make([][]float64, n+1)
	out[0] = append([]float64(nil), fa.in.Uprev.X...)
	for i := 0; i < n; i++ {
		if fa.Config.Behaviour.StepDelay > 0 {
			time.Sleep(fa.Config.Behaviour.StepDelay)
		}
		fa.st.PerformStep(fa.in)
		if fa.Config.Log.Results {
			fa.Logger.Logf("t=%.6f dt=%.6f eest=%.3e", fa.in.T+fa.in.Dt, fa.in.Dt, fa.in.EEst)
		}
		fa.in.T += fa.in.Dt
		fa.in.Uprev.Set(fa.in.U)
		// Copy, don't pointer-alias: a genuine FSAL stepper aliases
		// FSALLast to its last stage slot (a workspace-owned buffer that
		// gets overwritten next step), so promoting FSALFirst by pointer
		// assignment would have the next step's stage-1 read silently
		// clobbered by its own last-stage write. Set() copies into
		// FSALFirst's own distinct buffer instead.
		fa.in.FSALFirst.Set(fa.in.FSALLast)
		out[i+1] = append([]float64(nil), fa.in.U.X...)
	}
	fa.Logger.flush()
	return out
}

// EEst returns the last step's embedded error estimate (0 for non-adaptive
// methods), letting a caller build its own adaptivity on top of the
// facade's fixed-step loop.
func (fa *Facade) EEst() float64 { return fa.in.EEst }

func throwf(format string, a ...interface{}) {
	panic(fmt.Errorf(format, a...))
}
