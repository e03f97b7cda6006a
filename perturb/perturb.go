// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package perturb implements Taylor-step warm starts for continuation: when
// the boundary or pressure ratio changes, the state is shifted along the
// linearized solution manifold instead of restarting the Newton iteration
// cold.
package perturb

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/inp"
	"github.com/DarkStarStrix/DESC/lsq"
	"github.com/DarkStarStrix/DESC/obj"
	"github.com/DarkStarStrix/DESC/solver"
)

// Engine computes perturbed states. Only the solver tunables for the
// finite-difference Jacobian and the regularized solve are used.
type Engine struct {
	Cf *inp.SolverData
}

// NewEngine returns an engine with the given tunables
func NewEngine(cf *inp.SolverData) *Engine {
	return &Engine{Cf: cf}
}

// IsSingularJacobian tells whether err reports a Jacobian singular beyond
// the regularization tolerance; the caller should fall back to a full
// re-solve instead of retrying the perturbation
func IsSingularJacobian(err error) bool {
	return lsq.IsSingular(err)
}

// First computes the first-order state shift toward the solution at the new
// continuation ratios: J·δx = −r with the residual evaluated at (bdry,pres)
// and the Jacobian factorization returned for Second. The state itself is
// not modified.
func (o *Engine) First(stk *obj.Stack, st *equil.State, bdry, pres float64) (dx []float64, fac *lsq.Factor, err error) {
	sys := stk.WithRatios(bdry, pres).Bind(st.Copy())
	ndof, nres := sys.Ndof(), sys.Nres()
	x := st.Pack()
	r := make([]float64, nres)
	if err = sys.Resid(r, x); err != nil {
		return
	}
	J := la.NewMatrix(nres, ndof)
	if _, err = solver.Jacobian(J, sys, x, r, o.Cf.FdEps, o.Cf.Central); err != nil {
		return
	}
	if fac, err = lsq.NewFactor(J); err != nil {
		return
	}
	dx, err = o.step(fac, r)
	return
}

// Second computes the chord correction after the first-order shift: the
// residual is re-evaluated at x+δx and solved through the factorization
// cached by First, picking up the curvature of the solution manifold
func (o *Engine) Second(stk *obj.Stack, st *equil.State, bdry, pres float64, dx []float64, fac *lsq.Factor) (dx2 []float64, err error) {
	sys := stk.WithRatios(bdry, pres).Bind(st.Copy())
	x := st.Pack()
	la.VecAdd(x, 1, x, 1, dx)
	r := make([]float64, sys.Nres())
	if err = sys.Resid(r, x); err != nil {
		return
	}
	return o.step(fac, r)
}

// Warm shifts st toward the solution at the new continuation ratios,
// applying First and, with Cf.Second, the chord correction. The state is
// modified in place; on error it is left unchanged.
func (o *Engine) Warm(stk *obj.Stack, st *equil.State, bdry, pres float64) (err error) {
	dx, fac, err := o.First(stk, st, bdry, pres)
	if err != nil {
		return
	}
	if o.Cf.Second {
		var dx2 []float64
		if dx2, err = o.Second(stk, st, bdry, pres, dx, fac); err != nil {
			return
		}
		la.VecAdd(dx, 1, dx, 1, dx2)
	}
	x := st.Pack()
	la.VecAdd(x, 1, x, 1, dx)
	return st.Unpack(x)
}

// step solves J·dx = −r through the cached factorization
func (o *Engine) step(fac *lsq.Factor, r []float64) (dx []float64, err error) {
	rhs := make([]float64, len(r))
	for i, v := range r {
		rhs[i] = -v
	}
	dx, _, err = fac.Solve(rhs, o.Cf.RegTol)
	if err != nil && !lsq.IsSingular(err) {
		err = chk.Err("perturb: linear step failed:\n%v", err)
	}
	return
}
