// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/ana"
	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/grid"
)

func Test_eval01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eval01. field quantities vs circular tokamak")

	ct := &ana.CircTok{R0: 10, A: 1, Psi: 1, Iota0: 0.5, Iota2: 0.3}
	st := ct.State(2, 0)
	g, err := grid.NewLinearGrid(3, 4, 0, 1)
	if err != nil {
		tst.Errorf("grid failed:\n%v", err)
		return
	}

	stk, err := NewStack(g, st, Weighted{NewForceBalance(), 1})
	if err != nil {
		tst.Errorf("stack failed:\n%v", err)
		return
	}
	ev, err := stk.Field(st)
	if err != nil {
		tst.Errorf("field failed:\n%v", err)
		return
	}

	for k := 0; k < g.Nnodes(); k++ {
		rho, tta := g.Rho[k], g.Tta[k]
		R := ct.R(rho, tta)
		iota := ct.Iota0 + ct.Iota2*rho*rho

		chk.Float64(tst, "√g", 1e-10, ev.Sqg[k], ct.Sqg(rho, tta))
		chk.Float64(tst, "∂√g/∂ρ", 1e-10, ev.Sqgr[k], ct.A*ct.A*(R+rho*ct.A*math.Cos(tta)))
		chk.Float64(tst, "B^θ", 1e-10, ev.Bt[k], ct.BTta(rho, tta))
		chk.Float64(tst, "B^ζ", 1e-10, ev.Bz[k], ct.BZta(rho, tta))
		chk.Float64(tst, "|∇ρ|", 1e-10, ev.GradRho[k], ct.GradRho())

		// exact current projections for this geometry
		fbetaAna := -ct.Psi * rho * math.Sin(tta) / (math.Pi * ct.A * Mu0)
		chk.Float64(tst, "F_β", 1e-6, ev.Fbeta[k], fbetaAna)

		dBcovT := ct.Psi / math.Pi * ((2*ct.Iota2*rho*rho*rho+2*iota*rho)/R -
			iota*rho*rho*ct.A*math.Cos(tta)/(R*R))
		sgMJt := -ct.Psi * math.Cos(tta) / (math.Pi * ct.A)
		frhoAna := (sgMJt*ct.BZta(rho, tta) - dBcovT*ct.BTta(rho, tta)) / Mu0
		chk.Float64(tst, "F_ρ", 1e-6, ev.Frho[k], frhoAna)
	}
}

func Test_stack01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stack01. residual layout, boundary fit and gauge")

	ct := &ana.CircTok{R0: 10, A: 1, Psi: 1, Iota0: 0.5}
	pres, iota := ct.Profiles()
	st := equil.NewState(2, 0, 1, false, ct.Psi, pres, iota)
	st.CR[st.RB.IndexOf(0, 0, 0)] = ct.R0
	st.CR[st.RB.IndexOf(1, 1, 0)] = ct.A
	st.CZ[st.ZB.IndexOf(1, -1, 0)] = ct.A
	bnd := ct.Boundary()

	g, err := grid.NewLinearGrid(3, 4, 0, 1)
	if err != nil {
		tst.Errorf("grid failed:\n%v", err)
		return
	}
	force, bfit, gauge := NewForceBalance(), NewBoundaryFit(bnd), NewGaugeLambda()
	stk, err := NewStack(g, st, Weighted{force, 1}, Weighted{bfit, 2}, Weighted{gauge, 3})
	if err != nil {
		tst.Errorf("stack failed:\n%v", err)
		return
	}
	nn := g.Nnodes()
	chk.IntAssert(stk.Nres(), 2*nn+2*len(bnd.Modes)+1)

	// perturb the surface and the λ gauge mode; the blocks pick it up with
	// their weights applied
	st.CR[st.RB.IndexOf(2, 0, 0)] += 0.1
	st.CL[st.LB.IndexOf(0, 0)] = 0.7
	fb := make([]float64, stk.Nres())
	if err = stk.Resid(fb, st); err != nil {
		tst.Errorf("resid failed:\n%v", err)
		return
	}
	chk.Float64(tst, "boundary (0,0) R", 1e-14, fb[2*nn], 2*0.1)
	chk.Float64(tst, "boundary (1,0) R", 1e-14, fb[2*nn+2], 0)
	chk.Float64(tst, "gauge λ00", 1e-14, fb[stk.Nres()-1], 3*0.7)

	// a gauge-only stack is underdetermined
	if _, err = NewStack(g, st, Weighted{gauge, 1}); err == nil {
		tst.Errorf("underdetermined stack not caught")
	}
}

func Test_stack02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stack02. bound system, clones and continuation ratios")

	ct := &ana.CircTok{R0: 10, A: 1, Psi: 1, Iota0: 0.5}
	pres, iota := ct.Profiles()
	st := equil.NewState(2, 1, 2, true, ct.Psi, pres, iota)
	st.CR[st.RB.IndexOf(0, 0, 0)] = ct.R0
	st.CR[st.RB.IndexOf(1, 1, 0)] = ct.A
	st.CZ[st.ZB.IndexOf(1, -1, 0)] = ct.A

	bnd := &equil.Boundary{NFP: 2, Modes: []equil.BdryMode{
		{M: 0, N: 0, R: ct.R0},
		{M: 1, N: 0, R: ct.A},
		{M: -1, N: 0, Z: ct.A},
		{M: 1, N: 1, R: 0.05},
	}}
	g, err := grid.NewLinearGrid(3, 4, 2, 2)
	if err != nil {
		tst.Errorf("grid failed:\n%v", err)
		return
	}
	stk, err := NewStack(g, st, Weighted{NewForceBalance(), 1}, Weighted{NewBoundaryFit(bnd), 1})
	if err != nil {
		tst.Errorf("stack failed:\n%v", err)
		return
	}

	// the n≠0 target is scaled by the boundary ratio
	idx := 2*g.Nnodes() + 2*3 // R entry of the (1,1) mode
	fb := make([]float64, stk.Nres())
	if err = stk.Resid(fb, st); err != nil {
		tst.Errorf("resid failed:\n%v", err)
		return
	}
	chk.Float64(tst, "full target", 1e-14, fb[idx], -0.05)
	half := stk.WithRatios(0.5, 1)
	if err = half.Resid(fb, st); err != nil {
		tst.Errorf("resid failed:\n%v", err)
		return
	}
	chk.Float64(tst, "half target", 1e-14, fb[idx], -0.025)

	// the bound system unpacks x and clones keep independent states
	sys := stk.Bind(st.Copy())
	x := st.Pack()
	x[0] += 0.01
	fb2 := make([]float64, sys.Nres())
	if err := sys.Resid(fb2, x); err != nil {
		tst.Errorf("bound resid failed:\n%v", err)
		return
	}
	cl := sys.Clone().(*Bound)
	if &cl.St.CR[0] == &sys.St.CR[0] {
		tst.Errorf("clone shares coefficient storage")
		return
	}
	chk.Float64(tst, "clone state copied", 1e-14, cl.St.CR[0], sys.St.CR[0])
}
