// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cont implements the continuation driver: it walks the resolution
// ladder of a problem definition, expanding the spectral state between rungs
// and ramping the boundary and pressure ratios toward the physical problem,
// with automatic increment halving when a Newton solve fails.
package cont

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/grid"
	"github.com/DarkStarStrix/DESC/inp"
	"github.com/DarkStarStrix/DESC/lsq"
	"github.com/DarkStarStrix/DESC/obj"
	"github.com/DarkStarStrix/DESC/solver"
)

// WarmStarter shifts a state toward the solution at new continuation ratios
type WarmStarter interface {
	Warm(stk *obj.Stack, st *equil.State, bdry, pres float64) error
}

// RungReport records the outcome of one ladder rung
type RungReport struct {
	Rung    inp.Rung
	Nsolves int             // Newton solves run on this rung (≥1 with halving)
	Reports []solver.Report // one per solve
}

// Driver walks the continuation ladder of a configuration
type Driver struct {

	// input
	Cf    *inp.Config
	Warm  WarmStarter // optional; nil disables warm starts
	StopF func() bool // optional cancellation callback

	// results
	Rungs []RungReport
}

// NewDriver returns a driver after defaulting and validating cf
func NewDriver(cf *inp.Config) (*Driver, error) {
	cf.SetDefaults()
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return &Driver{Cf: cf}, nil
}

// Run walks the ladder and returns the final state
func (o *Driver) Run() (st *equil.State, err error) {
	cf := o.Cf
	pres, iota := cf.Profiles()

	// initial guess at the first rung's resolution
	r0 := cf.Ladder[0]
	st = equil.NewState(r0.M, r0.N, cf.NFP, cf.Sym, cf.PsiTotal, pres, iota)
	if err = st.InitialGuess(&cf.Boundary, cf.RAxis, cf.ZAxis); err != nil {
		return nil, err
	}

	// the initial guess already matches the full boundary shape; the first
	// rung therefore starts from its own target ratios
	curB, curP := r0.BdryRatio, r0.PresRatio

	for i, rung := range cf.Ladder {
		if o.StopF != nil && o.StopF() {
			return st, chk.Err("continuation stopped before rung %d", i)
		}
		if M, N := st.RB.Res(); rung.M != M || rung.N != N {
			st = st.Expand(rung.M, rung.N)
		}

		g, gerr := o.makeGrid(rung)
		if gerr != nil {
			return nil, gerr
		}
		stk, serr := obj.NewStack(g, st,
			obj.Weighted{Term: obj.NewForceBalance(), W: 1},
			obj.Weighted{Term: obj.NewBoundaryFit(&cf.Boundary), W: cf.BdryWeight},
			obj.Weighted{Term: obj.NewGaugeLambda(), W: cf.GaugeWeight},
		)
		if serr != nil {
			return nil, serr
		}

		if cf.Solver.ShowR {
			io.Pf("rung %d: M=%d N=%d nodes=%d bdry=%g pres=%g\n",
				i, rung.M, rung.N, g.Nnodes(), rung.BdryRatio, rung.PresRatio)
		}
		if curB, curP, err = o.ramp(stk, st, rung, curB, curP, i); err != nil {
			return st, err
		}
	}
	return
}

// ramp moves the ratios from (curB,curP) to the rung targets, halving the
// increment when a solve fails and growing it back after success
func (o *Driver) ramp(stk *obj.Stack, st *equil.State, rung inp.Rung, curB, curP float64, irung int) (float64, float64, error) {
	cfs := o.Cf.Solver
	cfs.FbTol = rung.FbTol
	cfs.NmaxIt = rung.NmaxIt

	rrep := RungReport{Rung: rung}
	defer func() { o.Rungs = append(o.Rungs, rrep) }()

	frac, nhalf := 1.0, 0
	for {
		tb := curB + frac*(rung.BdryRatio-curB)
		tp := curP + frac*(rung.PresRatio-curP)

		// a singular warm start falls back to the cold state
		trial := st.Copy()
		if o.Warm != nil && cfs.WarmStart && (tb != curB || tp != curP) {
			if err := o.Warm.Warm(stk, trial, tb, tp); err != nil && !lsq.IsSingular(err) {
				return curB, curP, err
			}
		}

		sys := stk.WithRatios(tb, tp).Bind(trial.Copy())
		nl := solver.NewNewton(sys, &cfs)
		nl.StopF = o.StopF
		x := trial.Pack()
		rep, err := nl.Run(x)
		rrep.Nsolves++
		rrep.Reports = append(rrep.Reports, rep)
		// a singular Jacobian carries Diverged status and is handled by
		// halving the increment below; other errors abort the rung
		if err != nil && rep.Status != solver.Diverged {
			return curB, curP, err
		}

		switch rep.Status {
		case solver.Converged:
			if uerr := st.Unpack(x); uerr != nil {
				return curB, curP, uerr
			}
			curB, curP = tb, tp
			if tb == rung.BdryRatio && tp == rung.PresRatio {
				return curB, curP, nil
			}
			frac = 1.0 // remaining distance in one go
		case solver.Stopped:
			return curB, curP, chk.Err("continuation stopped at rung %d (bdry=%g pres=%g)", irung, tb, tp)
		default:
			if tb == curB && tp == curP {
				return curB, curP, chk.Err("rung %d failed with status %q and no parameter increment to halve", irung, rep.Status)
			}
			nhalf++
			if nhalf > cfs.NhalfMax {
				return curB, curP, chk.Err("rung %d stalled after %d increment halvings (status %q)", irung, nhalf-1, rep.Status)
			}
			frac /= 2.0
		}
	}
}

// makeGrid builds the collocation grid of one rung
func (o *Driver) makeGrid(rung inp.Rung) (*grid.Grid, error) {
	switch o.Cf.GridKind {
	case "linear":
		return grid.NewLinearGrid(rung.GridM, rung.GridM, rung.GridN, o.Cf.NFP)
	case "concentric":
		return grid.NewConcentricGrid(rung.GridM, rung.GridN, o.Cf.NFP, o.Cf.GridSpacing)
	case "quadrature":
		return grid.NewQuadratureGrid(rung.GridM, rung.GridM, rung.GridN, o.Cf.NFP)
	}
	return nil, chk.Err("unknown grid kind %q", o.Cf.GridKind)
}
