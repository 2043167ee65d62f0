package step

import (
	"math"
	"testing"

	"github.com/solvecore/rkphi/buffer"
)

// decayFunc and growthFunc close over no state: f(t,u) = +-u.
func growthFunc(t float64, u buffer.RealScalar, out buffer.RealScalar) buffer.RealScalar {
	return u
}

func decayFunc(t float64, u buffer.RealScalar, out buffer.RealScalar) buffer.RealScalar {
	return -u
}

// TestEulerScenarioS2 reproduces spec scenario S2: u' = -u, u(0) = 1, fixed
// dt = 0.01, 100 steps with explicit Euler. The exact accumulated product
// (1-0.01)^100 must be reproduced, not merely approximated.
func TestEulerScenarioS2(t *testing.T) {
	st := NewEuler[buffer.RealScalar](0)
	in := &Integrator[buffer.RealScalar]{
		T: 0, Dt: 0.01, Uprev: 1, F: decayFunc,
	}
	st.Initialize(in)
	want := math.Pow(0.99, 100)
	for i := 0; i < 100; i++ {
		st.PerformStep(in)
		in.T += in.Dt
		in.Uprev = in.U
		in.FSALFirst = in.FSALFirst.Set(in.FSALLast)
	}
	if diff := float64(in.U) - want; math.Abs(diff) > 1e-12 {
		t.Errorf("u(1) = %v, want %v", in.U, want)
	}
}

// TestTsit5ScenarioS1 reproduces spec scenario S1: u' = u, u(0) = 1,
// integrate to t=1 with Tsit5, dt=0.1, non-adaptive. Expect u(1) ~= e.
func TestTsit5ScenarioS1(t *testing.T) {
	st := NewTsit5[buffer.RealScalar](0)
	in := &Integrator[buffer.RealScalar]{
		T: 0, Dt: 0.1, Uprev: 1, F: growthFunc,
	}
	st.Initialize(in)
	for i := 0; i < 10; i++ {
		st.PerformStep(in)
		in.T += in.Dt
		in.Uprev = in.U
		in.FSALFirst = in.FSALFirst.Set(in.FSALLast)
	}
	if diff := float64(in.U) - math.E; math.Abs(diff) > 1e-4 {
		t.Errorf("u(1) = %v, want ~%v", in.U, math.E)
	}
}

// TestRK4ScenarioS3 reproduces spec scenario S3: the 2D harmonic oscillator
// u' = [u2, -u1], u(0) = [1,0], RK4, dt=pi/100, 200 steps -> u ~= [1,0].
func TestRK4ScenarioS3(t *testing.T) {
	f := func(t float64, u *buffer.RealArray, out *buffer.RealArray) *buffer.RealArray {
		out.X[0] = u.X[1]
		out.X[1] = -u.X[0]
		return out
	}
	zero := buffer.NewRealArray([]float64{0, 0})
	st := NewRK4[*buffer.RealArray](zero)
	in := &Integrator[*buffer.RealArray]{
		T: 0, Dt: math.Pi / 100,
		Uprev: buffer.NewRealArray([]float64{1, 0}),
		U:     buffer.NewRealArray([]float64{0, 0}),
		F:     f,
	}
	in.FSALFirst = buffer.NewRealArray([]float64{0, 0})
	in.FSALLast = buffer.NewRealArray([]float64{0, 0})
	st.Initialize(in)
	for i := 0; i < 200; i++ {
		st.PerformStep(in)
		in.T += in.Dt
		in.Uprev.Set(in.U)
		in.FSALFirst.Set(in.FSALLast)
	}
	if math.Abs(in.U.X[0]-1) > 1e-8 || math.Abs(in.U.X[1]) > 1e-8 {
		t.Errorf("u = %v, want [1 0]", in.U.X)
	}
}

// TestScalarArrayEquivalence checks property 2: scalar and array-of-length-1
// instantiations of the same method and the same problem must agree to
// within a handful of ulps.
func TestScalarArrayEquivalence(t *testing.T) {
	scalarSt := NewRK4[buffer.RealScalar](0)
	sin := &Integrator[buffer.RealScalar]{T: 0, Dt: 0.05, Uprev: 1, F: growthFunc}
	scalarSt.Initialize(sin)

	arrF := func(t float64, u *buffer.RealArray, out *buffer.RealArray) *buffer.RealArray {
		out.X[0] = u.X[0]
		return out
	}
	zero := buffer.NewRealArray([]float64{0})
	arrSt := NewRK4[*buffer.RealArray](zero)
	ain := &Integrator[*buffer.RealArray]{
		T: 0, Dt: 0.05,
		Uprev: buffer.NewRealArray([]float64{1}),
		U:     buffer.NewRealArray([]float64{0}),
		F:     arrF,
	}
	ain.FSALFirst = buffer.NewRealArray([]float64{0})
	ain.FSALLast = buffer.NewRealArray([]float64{0})
	arrSt.Initialize(ain)

	for i := 0; i < 20; i++ {
		scalarSt.PerformStep(sin)
		sin.T += sin.Dt
		sin.Uprev = sin.U
		sin.FSALFirst = sin.FSALFirst.Set(sin.FSALLast)

		arrSt.PerformStep(ain)
		ain.T += ain.Dt
		ain.Uprev.Set(ain.U)
		ain.FSALFirst.Set(ain.FSALLast)
	}
	const ulpTol = 8 * 2.220446049250313e-16
	if diff := float64(sin.U) - ain.U.X[0]; math.Abs(diff) > ulpTol*math.Abs(float64(sin.U)) {
		t.Errorf("scalar u = %v, array u = %v, differ beyond tolerance", sin.U, ain.U.X[0])
	}
}

// TestFSALScalarArrayEquivalence checks property 2 for a genuine multi-stage
// FSAL method (DP5): the array-shape instantiation aliases fsalfirst/k1 with
// the previous step's last-stage slope the same way the scalar instantiation
// does, and must agree with it step for step, not just on step one. This
// reproduces the regression where array-shape FSAL promotion pointer-aliased
// fsalfirst to the workspace's own last-stage buffer instead of copying into
// it, so k1 got overwritten by k_last before the b-weighted update read it.
func TestFSALScalarArrayEquivalence(t *testing.T) {
	scalarSt := NewDP5[buffer.RealScalar](0)
	sin := &Integrator[buffer.RealScalar]{T: 0, Dt: 0.05, Uprev: 1, F: growthFunc}
	scalarSt.Initialize(sin)

	arrF := func(t float64, u *buffer.RealArray, out *buffer.RealArray) *buffer.RealArray {
		out.X[0] = u.X[0]
		return out
	}
	zero := buffer.NewRealArray([]float64{0})
	arrSt := NewDP5[*buffer.RealArray](zero)
	ain := &Integrator[*buffer.RealArray]{
		T: 0, Dt: 0.05,
		Uprev: buffer.NewRealArray([]float64{1}),
		U:     buffer.NewRealArray([]float64{0}),
		F:     arrF,
	}
	ain.FSALFirst = buffer.NewRealArray([]float64{0})
	ain.FSALLast = buffer.NewRealArray([]float64{0})
	arrSt.Initialize(ain)

	const ulpTol = 8 * 2.220446049250313e-16
	for i := 0; i < 20; i++ {
		scalarSt.PerformStep(sin)
		sin.T += sin.Dt
		sin.Uprev = sin.U
		sin.FSALFirst = sin.FSALFirst.Set(sin.FSALLast)

		arrSt.PerformStep(ain)
		ain.T += ain.Dt
		ain.Uprev.Set(ain.U)
		ain.FSALFirst.Set(ain.FSALLast)

		if diff := float64(sin.U) - ain.U.X[0]; math.Abs(diff) > ulpTol*math.Abs(float64(sin.U)) {
			t.Fatalf("step %d: scalar u = %v, array u = %v, differ beyond tolerance", i, sin.U, ain.U.X[0])
		}
	}
}

// TestBS3FSALIdentity checks property 3: after a step, FSALLast is exactly
// f(t+dt, u), recomputed independently here, for a genuine FSAL method.
func TestBS3FSALIdentity(t *testing.T) {
	st := NewBS3[buffer.RealScalar](0)
	in := &Integrator[buffer.RealScalar]{T: 0, Dt: 0.1, Uprev: 1, F: growthFunc}
	st.Initialize(in)
	st.PerformStep(in)
	want := growthFunc(in.T+in.Dt, in.U, 0)
	if in.FSALLast != want {
		t.Errorf("FSALLast = %v, want %v (bit-identical to f(t+dt,u))", in.FSALLast, want)
	}
}

// TestDP5EmbeddedErrorConsistency checks property 4: EEst must equal the
// norm recomputed directly from utilde/u/uprev using the same formula.
func TestDP5EmbeddedErrorConsistency(t *testing.T) {
	st := NewDP5[buffer.RealScalar](0)
	in := &Integrator[buffer.RealScalar]{
		T: 0, Dt: 0.1, Uprev: 1, F: growthFunc,
		Adaptive: true, Abstol: 1e-6, Reltol: 1e-3,
		ErrNorm: buffer.RealScalarErrorNorm,
	}
	st.Initialize(in)
	st.PerformStep(in)
	utilde := st.ws.Utilde
	want := buffer.RealScalarErrorNorm(utilde, in.U, in.Uprev, in.Abstol, in.Reltol, 0)
	if diff := in.EEst - want; math.Abs(diff) > 1e-15 {
		t.Errorf("EEst = %v, want %v", in.EEst, want)
	}
}

// TestOrderOfAccuracy checks property 1 for Euler and RK4 on u'=lambda*u:
// halving dt repeatedly must shrink the global error by ~2^p.
func TestOrderOfAccuracy(t *testing.T) {
	const lambda = -1.0
	exact := math.Exp(lambda)

	run := func(newStepper func() Stepper[buffer.RealScalar], dt float64) float64 {
		st := newStepper()
		in := &Integrator[buffer.RealScalar]{
			T: 0, Dt: dt, Uprev: 1,
			F: func(t float64, u, out buffer.RealScalar) buffer.RealScalar { return lambda * u },
		}
		st.Initialize(in)
		n := int(math.Round(1 / dt))
		for i := 0; i < n; i++ {
			st.PerformStep(in)
			in.T += in.Dt
			in.Uprev = in.U
			in.FSALFirst = in.FSALFirst.Set(in.FSALLast)
		}
		return math.Abs(float64(in.U) - exact)
	}

	cases := []struct {
		name    string
		newStep func() Stepper[buffer.RealScalar]
		order   int
	}{
		{"Euler", func() Stepper[buffer.RealScalar] { return NewEuler[buffer.RealScalar](0) }, 1},
		{"RK4", func() Stepper[buffer.RealScalar] { return NewRK4[buffer.RealScalar](0) }, 4},
	}
	for _, c := range cases {
		dt := 0.1
		prevErr := run(c.newStep, dt)
		for i := 0; i < 5; i++ {
			dt /= 2
			errv := run(c.newStep, dt)
			if errv == 0 {
				prevErr = errv
				continue
			}
			ratio := prevErr / errv
			want := math.Pow(2, float64(c.order))
			if ratio < want/2 || ratio > want*2 {
				t.Errorf("%s: halving ratio = %v, want ~%v (order %d)", c.name, ratio, want, c.order)
			}
			prevErr = errv
		}
	}
}
