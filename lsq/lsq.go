// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lsq implements regularized (truncated-SVD) linear least-squares
// solves. The force-balance Jacobian is rank deficient near the magnetic
// axis, so every linear solve in the Newton loop, the transform fit and the
// perturbation engine goes through the truncation here instead of a plain
// factorization.
package lsq

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// SingularError reports a matrix that is singular beyond the regularization
// tolerance: no singular value survives the truncation. The caller must fall
// back (e.g. re-solve from scratch) rather than retry.
type SingularError struct {
	Msg string
}

func (e *SingularError) Error() string {
	return e.Msg
}

// IsSingular tells whether err reports a singular matrix
func IsSingular(err error) bool {
	var e *SingularError
	return errors.As(err, &e)
}

// Factor caches the thin SVD of an m×n matrix for repeated solves
type Factor struct {
	m, n int
	u    mat.Dense // m×k
	v    mat.Dense // n×k
	s    []float64 // k singular values, descending
}

// NewFactor computes the thin SVD of A
func NewFactor(A *la.Matrix) (o *Factor, err error) {
	m, n := A.M, A.N
	if m < 1 || n < 1 {
		err = chk.Err("lsq: empty matrix")
		return
	}
	a := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, A.Get(i, j))
		}
	}
	o = &Factor{m: m, n: n}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, &SingularError{"lsq: SVD factorization failed"}
	}
	o.s = svd.Values(nil)
	svd.UTo(&o.u)
	svd.VTo(&o.v)
	return
}

// Cond returns the 2-norm condition number (∞ if the matrix is singular)
func (o *Factor) Cond() float64 {
	k := len(o.s)
	if o.s[k-1] == 0 {
		return math.Inf(1)
	}
	return o.s[0] / o.s[k-1]
}

// Solve solves min ‖A·x − b‖₂ discarding singular values below rcond·smax
//  Output:
//   x    -- solution [n]
//   rank -- number of singular values kept
func (o *Factor) Solve(b []float64, rcond float64) (x []float64, rank int, err error) {
	if len(b) != o.m {
		err = chk.Err("lsq: rhs has length %d but matrix has %d rows", len(b), o.m)
		return
	}
	k := len(o.s)
	cut := rcond * o.s[0]
	for _, sv := range o.s {
		if sv > cut && sv > 0 {
			rank++
		}
	}
	if rank == 0 {
		err = &SingularError{io.Sf("lsq: matrix is singular beyond regularization tolerance (smax=%g, rcond=%g)", o.s[0], rcond)}
		return
	}
	// x = V·diag(1/s)·Uᵀ·b over the kept values
	y := make([]float64, k)
	for j := 0; j < rank; j++ {
		d := 0.0
		for i := 0; i < o.m; i++ {
			d += o.u.At(i, j) * b[i]
		}
		y[j] = d / o.s[j]
	}
	x = make([]float64, o.n)
	for i := 0; i < o.n; i++ {
		d := 0.0
		for j := 0; j < rank; j++ {
			d += o.v.At(i, j) * y[j]
		}
		x[i] = d
	}
	return
}

// Solve factorizes A and solves min ‖A·x − b‖₂ in one call
func Solve(A *la.Matrix, b []float64, rcond float64) (x []float64, rank int, err error) {
	f, err := NewFactor(A)
	if err != nil {
		return
	}
	return f.Solve(b, rcond)
}
