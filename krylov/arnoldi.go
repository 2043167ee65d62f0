// Package krylov builds orthonormal Krylov bases via the Arnoldi process,
// scoped to real-valued operators (see DESIGN.md for why the complex case
// is out of scope for this implementation).
package krylov

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Op applies a linear operator A: dst = A*src. Implementations must not
// alias dst and src.
type Op func(dst, src []float64)

// Result holds the Arnoldi basis V (n x m, orthonormal columns) and the
// upper-Hessenberg projection H (m x m). M is the basis size actually
// produced, which may be smaller than the requested m if breakdown was
// detected.
type Result struct {
	V *mat.Dense
	H *mat.Dense
	M int
}

// ErrBreakdown is wrapped with context and returned when the Arnoldi
// recurrence detects H[j+1,j] ~= 0 before reaching the requested subspace
// size. Per the resolved open question in spec §9, this implementation
// early-stops and returns the truncated basis rather than continuing with
// a zero vector.
var ErrBreakdown = errors.New("krylov: Arnoldi breakdown, basis truncated")

const breakdownTol = 1e-14

// Arnoldi runs m steps of modified Gram-Schmidt Arnoldi on operator a with
// seed vector b, producing an n x m basis V and m x m Hessenberg H. A
// single MGS pass is used, with no reorthogonalization, matching the
// reference's documented behavior. On breakdown it returns a Result with
// M < m and ErrBreakdown; the caller must check Result.M.
func Arnoldi(a Op, b []float64, m int) (*Result, error) {
	n := len(b)
	beta := norm2(b)
	if beta == 0 {
		panic("krylov: Arnoldi seed vector has zero norm")
	}

	V := mat.NewDense(n, m, nil)
	H := mat.NewDense(m, m, nil)

	v1 := make([]float64, n)
	for i, x := range b {
		v1[i] = x / beta
	}
	setCol(V, 0, v1)

	w := make([]float64, n)
	vj := make([]float64, n)
	actual := m
	for j := 0; j < m; j++ {
		col(V, j, vj)
		a(w, vj)
		for i := 0; i <= j; i++ {
			col(V, i, vj)
			hij := dot(vj, w)
			H.Set(i, j, hij)
			axpy(w, -hij, vj)
		}
		hNext := norm2(w)
		if j+1 < m {
			if hNext < breakdownTol {
				actual = j + 1
				return &Result{V: sliceCols(V, actual), H: sliceSquare(H, actual), M: actual},
					errors.Wrapf(ErrBreakdown, "at stage %d of %d, ||w|| = %g", j+1, m, hNext)
			}
			H.Set(j+1, j, hNext)
			vNext := make([]float64, n)
			for i, wi := range w {
				vNext[i] = wi / hNext
			}
			setCol(V, j+1, vNext)
		}
	}
	return &Result{V: V, H: H, M: actual}, nil
}

func norm2(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

func col(m *mat.Dense, j int, dst []float64) {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		dst[i] = m.At(i, j)
	}
}

func setCol(m *mat.Dense, j int, src []float64) {
	for i, v := range src {
		m.Set(i, j, v)
	}
}

func sliceCols(m *mat.Dense, cols int) *mat.Dense {
	n, _ := m.Dims()
	out := mat.NewDense(n, cols, nil)
	out.Copy(m.Slice(0, n, 0, cols))
	return out
}

func sliceSquare(m *mat.Dense, size int) *mat.Dense {
	out := mat.NewDense(size, size, nil)
	out.Copy(m.Slice(0, size, 0, size))
	return out
}
