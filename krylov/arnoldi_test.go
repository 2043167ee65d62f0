package krylov

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// diagOp builds an Op for a diagonal matrix with the given entries.
func diagOp(diag []float64) Op {
	return func(dst, src []float64) {
		for i, d := range diag {
			dst[i] = d * src[i]
		}
	}
}

// TestArnoldiOrthonormal checks property 7's orthonormality clause:
// ||V[:,i]|| = 1 and <V[:,i],V[:,j]> = delta_ij to 1e-10.
func TestArnoldiOrthonormal(t *testing.T) {
	n := 6
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = -float64(i + 1)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	res, err := Arnoldi(diagOp(diag), b, 4)
	if err != nil {
		t.Fatalf("unexpected breakdown: %v", err)
	}
	rows, cols := res.V.Dims()
	for i := 0; i < cols; i++ {
		vi := mat.Col(nil, i, res.V)
		for j := 0; j < cols; j++ {
			vj := mat.Col(nil, j, res.V)
			var dot float64
			for k := 0; k < rows; k++ {
				dot += vi[k] * vj[k]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-10 {
				t.Errorf("<V[:,%d],V[:,%d]> = %v, want %v", i, j, dot, want)
			}
		}
	}
}

// TestArnoldiRecurrence checks property 7's core identity: A v_j =
// sum_{i<=j+1} H[i,j] v_i for j = 0..m-2.
func TestArnoldiRecurrence(t *testing.T) {
	n := 6
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = -float64(i + 1)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	m := 4
	res, err := Arnoldi(diagOp(diag), b, m)
	if err != nil {
		t.Fatalf("unexpected breakdown: %v", err)
	}
	op := diagOp(diag)
	for j := 0; j < m-1; j++ {
		vj := mat.Col(nil, j, res.V)
		avj := make([]float64, n)
		op(avj, vj)

		recon := make([]float64, n)
		for i := 0; i <= j+1; i++ {
			vi := mat.Col(nil, i, res.V)
			hij := res.H.At(i, j)
			for k := range recon {
				recon[k] += hij * vi[k]
			}
		}
		for k := range avj {
			if math.Abs(avj[k]-recon[k]) > 1e-10 {
				t.Errorf("j=%d: A*v_j[%d] = %v, reconstructed = %v", j, k, avj[k], recon[k])
			}
		}
	}
}

// TestArnoldiBreakdown checks that an operator driving the seed into an
// invariant subspace of size < m triggers early truncation.
func TestArnoldiBreakdown(t *testing.T) {
	// A = diag(1,1,1): every Krylov vector is parallel to b, so the
	// second MGS step immediately breaks down.
	diag := []float64{1, 1, 1}
	b := []float64{1, 0, 0}
	res, err := Arnoldi(diagOp(diag), b, 3)
	if err == nil {
		t.Fatal("expected breakdown error")
	}
	if res.M != 1 {
		t.Errorf("M = %d, want 1 (truncated basis)", res.M)
	}
}
