// Package phi evaluates the matrix phi-functions phi_0(A)v .. phi_k(A)v
// used by exponential integrators, via Sidje's augmented-matrix
// exponential (dense, built on gonum's real *mat.Dense.Exp) and via
// Arnoldi-projected Krylov approximation for large operators.
package phi

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/solvecore/rkphi/krylov"
)

// Scalar evaluates [phi_0(z), .., phi_k(z)] by building a (k+1)x(k+1)
// matrix with z on the diagonal's first entry and a superdiagonal of ones,
// then reading the first row of its exponential (spec §4.3 scalar
// specialization).
func Scalar(z float64, k int) []float64 {
	size := k + 1
	m := mat.NewDense(size, size, nil)
	m.Set(0, 0, z)
	for i := 0; i < size-1; i++ {
		m.Set(i, i+1, 1)
	}
	var exp mat.Dense
	exp.Exp(m)
	out := make([]float64, size)
	for j := 0; j < size; j++ {
		out[j] = exp.At(0, j)
	}
	return out
}

// DenseMV computes [phi_0(A)v, .., phi_k(A)v] as the columns of an
// n x (k+1) matrix, via Sidje's augmented exponential: the (n+k) x (n+k)
// block matrix with A in the top-left n x n block, v in column n (rows
// 0..n-1), and a superdiagonal of ones in the trailing k x k block.
func DenseMV(a *mat.Dense, v []float64, k int) *mat.Dense {
	n, nc := a.Dims()
	if n != nc {
		panic(errors.Errorf("phi: DenseMV: A must be square, got %dx%d", n, nc))
	}
	if len(v) != n {
		panic(errors.Errorf("phi: DenseMV: len(v) = %d, want %d", len(v), n))
	}
	out := mat.NewDense(n, k+1, nil)
	vVec := mat.NewVecDense(n, v)

	if k == 0 {
		// No augmentation needed: phi_0(A)v = exp(A)v directly.
		var exp mat.Dense
		exp.Exp(a)
		var col mat.VecDense
		col.MulVec(&exp, vVec)
		for i := 0; i < n; i++ {
			out.Set(i, 0, col.AtVec(i))
		}
		return out
	}

	size := n + k
	m := mat.NewDense(size, size, nil)
	m.Slice(0, n, 0, n).(*mat.Dense).Copy(a)
	for i, vi := range v {
		m.Set(i, n, vi)
	}
	for i := 0; i < k-1; i++ {
		m.Set(n+i, n+i+1, 1)
	}

	var exp mat.Dense
	exp.Exp(m)

	// phi_0(A)v = exp(A)v, read off the augmented exponential's top-left
	// n x n block (which equals exp(A) exactly, a property of
	// block-triangular matrix exponentials), not one of its columns.
	var col0 mat.VecDense
	col0.MulVec(exp.Slice(0, n, 0, n), vVec)
	for i := 0; i < n; i++ {
		out.Set(i, 0, col0.AtVec(i))
	}

	// phi_1(A)v .. phi_k(A)v: columns n..n+k-1 of the augmented exponential.
	for col := 1; col <= k; col++ {
		for i := 0; i < n; i++ {
			out.Set(i, col, exp.At(i, n+col-1))
		}
	}
	return out
}

// Mat computes the full operators phi_0(A) .. phi_k(A), one dense matrix
// each, by invoking DenseMV once per standard basis vector and assembling
// columns (spec §4.3's "matrix-of-matrices variant").
func Mat(a *mat.Dense, k int) []*mat.Dense {
	n, _ := a.Dims()
	out := make([]*mat.Dense, k+1)
	for j := range out {
		out[j] = mat.NewDense(n, n, nil)
	}
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		r := DenseMV(a, e, k)
		for j := 0; j <= k; j++ {
			for i := 0; i < n; i++ {
				out[j].Set(i, col, r.At(i, j))
			}
		}
	}
	return out
}

// Krylov computes phi_j(A)*b for j=0..k via an m-dimensional Arnoldi
// projection (spec §4.4): run Arnoldi on (a, b, m) to get (V, H), form
// C = phi_j(H)*e1 via DenseMV on H, and return ||b||*V*C written
// column-wise.
func Krylov(a krylov.Op, b []float64, k, m int) (*mat.Dense, error) {
	res, err := krylov.Arnoldi(a, b, m)
	truncated := res.M
	e1 := make([]float64, truncated)
	e1[0] = 1
	c := DenseMV(res.H, e1, k)

	var sumsq float64
	for _, x := range b {
		sumsq += x * x
	}
	beta := math.Sqrt(sumsq)

	n := len(b)
	var vc mat.Dense
	vc.Mul(res.V, c)
	out := mat.NewDense(n, k+1, nil)
	out.Scale(beta, &vc)
	return out, err
}
