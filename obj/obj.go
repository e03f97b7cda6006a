// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package obj implements the residual stack: weighted objective terms
// (force balance, boundary fit, λ gauge) assembled into one flat residual
// vector for the nonlinear solver.
package obj

import (
	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/basis"
	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/grid"
	"github.com/DarkStarStrix/DESC/solver"
	"github.com/DarkStarStrix/DESC/transform"
)

// DerivReq lists the derivative orders a term needs per coefficient group
type DerivReq struct {
	R []basis.Deriv // on the R geometry group
	Z []basis.Deriv // on the Z geometry group
	L []basis.Deriv // on the λ group
}

// Term is one block of the residual vector
type Term interface {
	Name() string                             // short identifier for reports
	Derivs() DerivReq                         // transform derivatives required
	Nres(st *equil.State, g *grid.Grid) int   // number of residual entries
	AddToRhs(fb []float64, ev *Eval) error    // writes the block (unweighted)
}

// Weighted pairs a term with its weight in the stack
type Weighted struct {
	Term Term
	W    float64
}

// Stack owns the transforms for one (grid, basis-set) pair and assembles the
// residual blocks of its terms. A stack is read-only during Resid, so clones
// of a bound system can share it across goroutines.
type Stack struct {

	// input
	G     *grid.Grid
	Terms []Weighted

	// continuation parameters
	BdryRatio float64 // scale on non-axisymmetric boundary modes
	PresRatio float64 // scale on the pressure profile

	// transforms (nil when no term needs field evaluation)
	TR, TZ, TL *transform.Transform

	// assembly layout
	needField bool
	offs      []int
	nres      int
}

// NewStack builds the transforms required by terms and fixes the residual
// layout. The state st provides the bases; later Resid calls must use states
// carrying the same bases.
func NewStack(g *grid.Grid, st *equil.State, terms ...Weighted) (o *Stack, err error) {
	if err = st.Check(); err != nil {
		return
	}
	if len(terms) == 0 {
		return nil, chk.Err("stack: no terms")
	}
	o = &Stack{G: g, Terms: terms, BdryRatio: 1, PresRatio: 1}

	var dR, dZ, dL []basis.Deriv
	for _, wt := range terms {
		req := wt.Term.Derivs()
		dR = unionDerivs(dR, req.R)
		dZ = unionDerivs(dZ, req.Z)
		dL = unionDerivs(dL, req.L)
	}
	o.needField = len(dR)+len(dZ)+len(dL) > 0
	if o.needField {
		if o.TR, err = transform.New(g, st.RB, dR); err != nil {
			return nil, err
		}
		if o.TZ, err = transform.New(g, st.ZB, dZ); err != nil {
			return nil, err
		}
		if o.TL, err = transform.New(g, st.LB, dL); err != nil {
			return nil, err
		}
	}

	o.offs = make([]int, len(terms)+1)
	for i, wt := range terms {
		o.offs[i+1] = o.offs[i] + wt.Term.Nres(st, g)
	}
	o.nres = o.offs[len(terms)]
	if o.nres < st.Ndof() {
		return nil, chk.Err("stack: %d residuals for %d unknowns; system is underdetermined", o.nres, st.Ndof())
	}
	return
}

// Nres returns the total residual length
func (o *Stack) Nres() int { return o.nres }

// WithRatios returns a shallow copy sharing the transforms but carrying
// different continuation parameters. The receiver is not modified.
func (o *Stack) WithRatios(bdry, pres float64) *Stack {
	c := *o
	c.BdryRatio = bdry
	c.PresRatio = pres
	return &c
}

// Field evaluates the field quantities of st on the stack's grid, e.g. for
// diagnostics. The stack must contain at least one field term.
func (o *Stack) Field(st *equil.State) (*Eval, error) {
	if !o.needField {
		return nil, chk.Err("stack: no term requires field evaluation")
	}
	ev := &Eval{St: st, Stk: o}
	return ev, ev.compute()
}

// Resid assembles the full weighted residual vector for state st
func (o *Stack) Resid(fb []float64, st *equil.State) (err error) {
	if len(fb) != o.nres {
		return chk.Err("stack: len(fb)=%d differs from nres=%d", len(fb), o.nres)
	}
	ev := &Eval{St: st, Stk: o}
	if o.needField {
		if err = ev.compute(); err != nil {
			return
		}
	}
	for i, wt := range o.Terms {
		blk := fb[o.offs[i]:o.offs[i+1]]
		if err = wt.Term.AddToRhs(blk, ev); err != nil {
			return
		}
		if wt.W != 1 {
			for k := range blk {
				blk[k] *= wt.W
			}
		}
	}
	return
}

// Bound adapts a stack and a working state to the solver's system interface
type Bound struct {
	Stk *Stack
	St  *equil.State
}

// Bind wraps st as the working state of a solver system. The state is
// mutated by Resid; pass a copy to keep the original intact.
func (o *Stack) Bind(st *equil.State) *Bound {
	return &Bound{Stk: o, St: st}
}

func (o *Bound) Ndof() int { return o.St.Ndof() }
func (o *Bound) Nres() int { return o.Stk.Nres() }

func (o *Bound) Resid(fb, x []float64) error {
	if err := o.St.Unpack(x); err != nil {
		return err
	}
	return o.Stk.Resid(fb, o.St)
}

// Clone copies the working state and shares the read-only stack
func (o *Bound) Clone() solver.System {
	return &Bound{Stk: o.Stk, St: o.St.Copy()}
}

// unionDerivs merges b into a without duplicates
func unionDerivs(a, b []basis.Deriv) []basis.Deriv {
	for _, d := range b {
		found := false
		for _, e := range a {
			if e == d {
				found = true
				break
			}
		}
		if !found {
			a = append(a, d)
		}
	}
	return a
}
