// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/grid"
)

// BoundaryFit constrains the outermost flux surface to the prescribed shape.
// The Zernike radial polynomials all equal one at ρ=1, so the surface
// spectrum is the plain sum of coefficients over the radial degrees and the
// residual is purely spectral; no boundary grid is involved. Non-axisymmetric
// (n≠0) target modes are scaled by the stack's boundary ratio so continuation
// can grow a stellarator shape out of an axisymmetric one.
type BoundaryFit struct {
	Bnd *equil.Boundary
}

// NewBoundaryFit returns the boundary term for the given target shape
func NewBoundaryFit(bnd *equil.Boundary) *BoundaryFit {
	return &BoundaryFit{Bnd: bnd}
}

func (o *BoundaryFit) Name() string { return "boundary-fit" }

func (o *BoundaryFit) Derivs() DerivReq { return DerivReq{} }

func (o *BoundaryFit) Nres(st *equil.State, g *grid.Grid) int {
	return 2 * len(o.Bnd.Modes)
}

func (o *BoundaryFit) AddToRhs(fb []float64, ev *Eval) error {
	st := ev.St
	for i, bm := range o.Bnd.Modes {
		sumR, sumZ := 0.0, 0.0
		okR, okZ := false, false
		for j, md := range st.RB.Modes() {
			if md.M == bm.M && md.N == bm.N {
				sumR += st.CR[j]
				okR = true
			}
		}
		for j, md := range st.ZB.Modes() {
			if md.M == bm.M && md.N == bm.N {
				sumZ += st.CZ[j]
				okZ = true
			}
		}
		if !okR && bm.R != 0 {
			return chk.Err("boundary: mode (m=%d,n=%d) with R=%g is not representable in the R basis", bm.M, bm.N, bm.R)
		}
		if !okZ && bm.Z != 0 {
			return chk.Err("boundary: mode (m=%d,n=%d) with Z=%g is not representable in the Z basis", bm.M, bm.N, bm.Z)
		}
		ratio := 1.0
		if bm.N != 0 {
			ratio = ev.Stk.BdryRatio
		}
		fb[2*i] = sumR - ratio*bm.R
		fb[2*i+1] = sumZ - ratio*bm.Z
	}
	return nil
}

// GaugeLambda pins the constant λ mode to zero. Without it the (0,0) mode is
// a null direction of the force balance and the Jacobian is always singular.
// With stellarator symmetry the mode is absent and the term is empty.
type GaugeLambda struct{}

// NewGaugeLambda returns the λ gauge term
func NewGaugeLambda() *GaugeLambda { return &GaugeLambda{} }

func (o *GaugeLambda) Name() string { return "gauge-lambda" }

func (o *GaugeLambda) Derivs() DerivReq { return DerivReq{} }

func (o *GaugeLambda) Nres(st *equil.State, g *grid.Grid) int {
	if st.LB.IndexOf(0, 0) >= 0 {
		return 1
	}
	return 0
}

func (o *GaugeLambda) AddToRhs(fb []float64, ev *Eval) error {
	if len(fb) == 0 {
		return nil
	}
	fb[0] = ev.St.CL[ev.St.LB.IndexOf(0, 0)]
	return nil
}
