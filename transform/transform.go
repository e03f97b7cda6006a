// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package transform implements the operator mapping spectral coefficients to
// values/derivatives on a grid, with its adjoint and a weighted least-squares
// fit back to coefficient space. A transform is built once per (grid, basis,
// derivative set), is immutable afterwards and is read-shared across residual
// evaluations; changing the resolution means building a new transform.
package transform

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/DarkStarStrix/DESC/basis"
	"github.com/DarkStarStrix/DESC/grid"
	"github.com/DarkStarStrix/DESC/lsq"
)

// FitRcond is the relative singular-value cutoff for the least-squares fit
const FitRcond = 1e-12

// Transform holds one precomputed (node × mode) matrix per derivative order
type Transform struct {
	Gr   *grid.Grid
	Ba   basis.Basis
	mats map[basis.Deriv]*la.Matrix

	// fit operator, built on first use (safe under read-sharing)
	fitOnce sync.Once
	fit     *lsq.Factor // SVD of diag(√w)·A₀
	fitErr  error
}

// New builds a transform for the union of the requested derivative orders.
// The plain evaluation (0,0,0) is always included.
func New(g *grid.Grid, b basis.Basis, derivs []basis.Deriv) (o *Transform, err error) {
	o = &Transform{Gr: g, Ba: b, mats: make(map[basis.Deriv]*la.Matrix)}
	want := append([]basis.Deriv{basis.D000}, derivs...)
	for _, d := range want {
		if _, ok := o.mats[d]; ok {
			continue
		}
		A, e := b.Evaluate(g, d)
		if e != nil {
			return nil, e
		}
		o.mats[d] = la.NewMatrixDeep2(A)
	}
	return
}

// Has tells whether the derivative order d was precomputed
func (o *Transform) Has(d basis.Deriv) bool {
	_, ok := o.mats[d]
	return ok
}

// Derivs returns the precomputed derivative orders (unordered)
func (o *Transform) Derivs() (res []basis.Deriv) {
	for d := range o.mats {
		res = append(res, d)
	}
	return
}

// Apply maps coefficients to grid-point values of the d-th derivative
func (o *Transform) Apply(c []float64, d basis.Deriv) (v []float64, err error) {
	v = make([]float64, o.Gr.Nnodes())
	err = o.ApplyTo(v, c, d)
	return
}

// ApplyTo is Apply into a preallocated vector v [nnodes]
func (o *Transform) ApplyTo(v, c []float64, d basis.Deriv) (err error) {
	A, ok := o.mats[d]
	if !ok {
		return chk.Err("transform: derivative order (%d,%d,%d) was not precomputed", d.Rho, d.Tta, d.Zta)
	}
	if len(c) != o.Ba.Nmodes() {
		return chk.Err("transform: coefficient vector has length %d but basis has %d modes", len(c), o.Ba.Nmodes())
	}
	la.MatVecMul(v, 1, A, c)
	return
}

// Adjoint maps a grid-point vector back to coefficient space through the
// quadrature-weighted adjoint: c = Aᵀ·(w∘v). Forward followed by adjoint
// reproduces inner products under the grid weights.
func (o *Transform) Adjoint(v []float64, d basis.Deriv) (c []float64, err error) {
	A, ok := o.mats[d]
	if !ok {
		err = chk.Err("transform: derivative order (%d,%d,%d) was not precomputed", d.Rho, d.Tta, d.Zta)
		return
	}
	if len(v) != o.Gr.Nnodes() {
		err = chk.Err("transform: grid vector has length %d but grid has %d nodes", len(v), o.Gr.Nnodes())
		return
	}
	wv := make([]float64, len(v))
	for k, w := range o.Gr.W {
		wv[k] = w * v[k]
	}
	c = make([]float64, o.Ba.Nmodes())
	la.MatTrVecMul(c, 1, A, wv)
	return
}

// Fit returns the coefficients whose forward transform best reproduces the
// given grid values, in the quadrature-weighted least-squares sense. When the
// grid exactly resolves the basis this inverts Apply up to truncation error
// (discrete orthogonality).
func (o *Transform) Fit(vals []float64) (c []float64, err error) {
	if len(vals) != o.Gr.Nnodes() {
		err = chk.Err("transform: grid vector has length %d but grid has %d nodes", len(vals), o.Gr.Nnodes())
		return
	}
	o.fitOnce.Do(func() {
		A := o.mats[basis.D000]
		nn := o.Gr.Nnodes()
		nm := o.Ba.Nmodes()
		Aw := la.NewMatrix(nn, nm)
		for k := 0; k < nn; k++ {
			sw := math.Sqrt(o.Gr.W[k])
			for i := 0; i < nm; i++ {
				Aw.Set(k, i, sw*A.Get(k, i))
			}
		}
		o.fit, o.fitErr = lsq.NewFactor(Aw)
	})
	if o.fitErr != nil {
		err = o.fitErr
		return
	}
	b := make([]float64, len(vals))
	for k, w := range o.Gr.W {
		b[k] = math.Sqrt(w) * vals[k]
	}
	c, _, err = o.fit.Solve(b, FitRcond)
	return
}
