// Package tableau holds the frozen Butcher coefficient tables for every
// method the core's stepper family implements. Coefficients are stored as
// float64 (the unit-free numeric type of spec §3) and built once by each
// constructor; a precision change requires constructing a new Tableau.
package tableau

// Tableau is an immutable Butcher tableau plus whatever embedded and
// dense-output weights the method defines. Stages are numbered 1..S; A is
// strictly lower triangular (A[i][j] is only meaningful for j < i), indexed
// from stage 2 (A[0] is unused and left nil).
type Tableau struct {
	Name string
	// S is the stage count.
	S int
	// A[i][j] is a_{i+1,j+1} for j <= i-1 (i.e. A is indexed from the
	// second stage; A[0] is always nil since stage 1 has no predecessors).
	A [][]float64
	// C[i] is c_{i+1}; C[0] is always 0 (the tableau's first node).
	C []float64
	// B is the main (advancing) weight vector, length S.
	B []float64
	// Bhat is the embedded weight vector for adaptive methods, length S,
	// or nil for fixed-step methods.
	Bhat []float64
	// Btilde, when non-nil, is a second embedded weight vector used by
	// BS5's double error estimate (Bhat is the first); BS5 derives it from
	// B and Bhat (see BS5).
	Btilde []float64
	// D holds DP5's dense-output coefficients d_1..d_7, one vector of
	// length S, used for the last of the DP5 stepper's four dense-output
	// slopes (see step/dp5.go).
	D []float64
	// FSAL reports whether the method's last stage slope is f(t+dt, u),
	// reusable as the next step's first slope.
	FSAL bool
	// Order is the method's design order (the higher order of an embedded
	// pair).
	Order int
}

// Euler is the first-order, one-stage explicit Euler method. It is marked
// FSAL, but its single stage slope is f(t, uprev), not f(t+dt, u), so the
// stepper evaluates f(t+dt, u) afresh at the end of each step (see
// step.finishFSAL, which only aliases the last stage when S > 1).
func Euler() *Tableau {
	return &Tableau{
		Name:  "Euler",
		S:     1,
		A:     [][]float64{nil},
		C:     []float64{0},
		B:     []float64{1},
		FSAL:  true,
		Order: 1,
	}
}

// Midpoint is the second-order explicit midpoint method.
func Midpoint() *Tableau {
	return &Tableau{
		Name:  "Midpoint",
		S:     2,
		A:     [][]float64{nil, {0.5}},
		C:     []float64{0, 0.5},
		B:     []float64{0, 1},
		FSAL:  false,
		Order: 2,
	}
}

// RK4 is the classical fourth-order Runge-Kutta method. Not FSAL: its last
// stage slope k_4 is not f(t+dt, u). The stepper performs a final
// evaluation of f(t+dt, u) into FSALLast, which the caller promotes to the
// next step's FSALFirst; that evaluation is not added to the dense-output
// slope list K, which holds only k_1..k_4.
func RK4() *Tableau {
	return &Tableau{
		Name: "RK4",
		S:    4,
		A: [][]float64{
			nil,
			{0.5},
			{0, 0.5},
			{0, 0, 1},
		},
		C:     []float64{0, 0.5, 0.5, 1},
		B:     []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
		FSAL:  false,
		Order: 4,
	}
}

// BS3 is the Bogacki-Shampine 3(2) embedded pair, FSAL.
func BS3() *Tableau {
	return &Tableau{
		Name: "BS3",
		S:    4,
		A: [][]float64{
			nil,
			{0.5},
			{0, 0.75},
			{2.0 / 9, 1.0 / 3, 4.0 / 9},
		},
		C:     []float64{0, 0.5, 0.75, 1},
		B:     []float64{2.0 / 9, 1.0 / 3, 4.0 / 9, 0},
		Bhat:  []float64{7.0 / 24, 1.0 / 4, 1.0 / 3, 1.0 / 8},
		FSAL:  true,
		Order: 3,
	}
}

// DP5 is the Dormand-Prince 5(4) embedded pair with the classical
// four-slope dense output (Shampine 1986), FSAL.
func DP5() *Tableau {
	return &Tableau{
		Name: "DP5",
		S:    7,
		A: [][]float64{
			nil,
			{1.0 / 5},
			{3.0 / 40, 9.0 / 40},
			{44.0 / 45, -56.0 / 15, 32.0 / 9},
			{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
			{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
			{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
		},
		C: []float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1},
		B: []float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0},
		Bhat: []float64{
			5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640,
			-92097.0 / 339200, 187.0 / 2100, 1.0 / 40,
		},
		D: []float64{
			-12715105075.0 / 11282082432.0,
			0,
			87487479700.0 / 32700410799.0,
			-10690763975.0 / 1880347072.0,
			701980252875.0 / 199316789632.0,
			-1453857185.0 / 822651844.0,
			69997945.0 / 29380423.0,
		},
		FSAL:  true,
		Order: 5,
	}
}

// Tsit5 is Tsitouras' 5(4) embedded pair (Tsitouras, 2011), FSAL. Bhat is
// derived as B - Btilde from the tableau's published error coefficients,
// so the stepper's general adaptive form (spec §4.1) applies unmodified.
func Tsit5() *Tableau {
	b := []float64{
		0.09646076681806523, 0.01, 0.4798896504144996,
		1.379008574103742, -3.290069515436080, 2.324710524099774, 0,
	}
	btilde := []float64{
		-0.00178001105222577714, -0.0008164344596567469, 0.007880878010261995,
		-0.1447110071732629, 0.5823571654525552, -0.45808210592918697, 0.01515151515151515,
	}
	bhat := make([]float64, 7)
	for i := range bhat {
		bhat[i] = b[i] - btilde[i]
	}
	return &Tableau{
		Name: "Tsit5",
		S:    7,
		A: [][]float64{
			nil,
			{0.161},
			{-0.008480655492356989, 0.335480655492357},
			{2.8971530571054935, -6.359448489975075, 4.3622954328695815},
			{5.325864828439257, -11.748883564062828, 7.4955393428898365, -0.09249506636175525},
			{5.86145544294642, -12.92096931784711, 8.159367898576159, -0.071584973281401, -0.028269050394068383},
			{0.09646076681806523, 0.01, 0.4798896504144996, 1.379008574103742, -3.290069515436080, 2.324710524099774},
		},
		C:     []float64{0, 0.161, 0.327, 0.9, 0.9800255409045097, 1, 1},
		B:     b,
		Bhat:  bhat,
		FSAL:  true,
		Order: 5,
	}
}

// BS5 is the Bogacki-Shampine 5(4) pair (Bogacki & Shampine, "An efficient
// Runge-Kutta (4,5) pair", Computers & Mathematics with Applications 32(6),
// 1996), eight stages, FSAL. A and B/Bhat below are the paper's published
// rational coefficients; Btilde is this module's second embedded
// estimator, derived rather than transcribed (see its doc comment).
func BS5() *Tableau {
	b := []float64{
		587.0 / 8064, 0, 4440339.0 / 15491840, 24353.0 / 124800,
		387.0 / 44800, 2152.0 / 5985, 7267.0 / 94080, 0,
	}
	bhat := []float64{
		2479.0 / 34992, 0, 123.0 / 416, 612941.0 / 3411720,
		43.0 / 1440, 2272.0 / 6561, 79937.0 / 1113912, 3293.0 / 556956,
	}
	// Btilde: the paper's own secondary, cheaper error estimate (used to
	// avoid an extra evaluation on the first step) could not be
	// transcribed bit-for-bit without a runnable reference to check it
	// against, so rather than guess its digits this module derives an
	// independent second order-4-consistent estimator via the standard
	// affine-combination trick: since B and Bhat both satisfy the same
	// (linear) order conditions through order 4, so does any affine
	// combination of them that still sums to 1. btilde = 2B - Bhat is
	// such a combination and is still order-4 consistent. Because
	// btilde - B = B - Bhat, the second estimate uhat - u is exactly the
	// negation of utilde - u, so EEst2 equals EEst1 up to rounding and
	// max(EEst1, EEst2) carries no information beyond the Bhat pair. See
	// DESIGN.md.
	btilde := make([]float64, len(b))
	for i := range btilde {
		btilde[i] = 2*b[i] - bhat[i]
	}
	return &Tableau{
		Name: "BS5",
		S:    8,
		A: [][]float64{
			nil,
			{1.0 / 6},
			{2.0 / 27, 4.0 / 27},
			{183.0 / 1372, -162.0 / 343, 1053.0 / 1372},
			{68.0 / 297, -4.0 / 11, 42.0 / 143, 1960.0 / 3861},
			{597.0 / 22528, 81.0 / 352, 63099.0 / 585728, 58653.0 / 366080, 4617.0 / 20480},
			{174197.0 / 959244, -30942.0 / 79937, 8152137.0 / 19744439, 666106.0 / 1039181, -29421.0 / 29068, 482048.0 / 414219},
			b[:7],
		},
		C:      []float64{0, 1.0 / 6, 2.0 / 9, 3.0 / 7, 2.0 / 3, 3.0 / 4, 1, 1},
		B:      b,
		Bhat:   bhat,
		Btilde: btilde,
		FSAL:   true,
		Order:  5,
	}
}
