// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"math"

	"github.com/DarkStarStrix/DESC/basis"
	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/grid"
)

// derivative orders entering the current density (second order on geometry,
// angular only on λ)
var (
	geomDerivs = []basis.Deriv{
		{Rho: 0, Tta: 0, Zta: 0},
		{Rho: 1, Tta: 0, Zta: 0},
		{Rho: 0, Tta: 1, Zta: 0},
		{Rho: 0, Tta: 0, Zta: 1},
		{Rho: 2, Tta: 0, Zta: 0},
		{Rho: 1, Tta: 1, Zta: 0},
		{Rho: 1, Tta: 0, Zta: 1},
		{Rho: 0, Tta: 2, Zta: 0},
		{Rho: 0, Tta: 1, Zta: 1},
		{Rho: 0, Tta: 0, Zta: 2},
	}
	lamDerivs = []basis.Deriv{
		{Rho: 0, Tta: 1, Zta: 0},
		{Rho: 0, Tta: 0, Zta: 1},
		{Rho: 0, Tta: 2, Zta: 0},
		{Rho: 0, Tta: 1, Zta: 1},
		{Rho: 0, Tta: 0, Zta: 2},
	}
)

// ForceBalance is the MHD force-balance residual J×B − ∇p collocated on the
// grid nodes. Each node contributes two entries: the radial projection F_ρ
// scaled by |∇ρ|, and the helical projection F_β scaled by |β|. Both carry
// the volume element |√g|·w so quadrature grids integrate the force density.
// Axis nodes contribute zeros; force balance is trivially satisfied there.
type ForceBalance struct{}

// NewForceBalance returns the force-balance term
func NewForceBalance() *ForceBalance { return &ForceBalance{} }

func (o *ForceBalance) Name() string { return "force-balance" }

func (o *ForceBalance) Derivs() DerivReq {
	return DerivReq{R: geomDerivs, Z: geomDerivs, L: lamDerivs}
}

func (o *ForceBalance) Nres(st *equil.State, g *grid.Grid) int {
	return 2 * g.Nnodes()
}

func (o *ForceBalance) AddToRhs(fb []float64, ev *Eval) error {
	nn := ev.Stk.G.Nnodes()
	for k := 0; k < nn; k++ {
		if ev.OnAxis[k] {
			fb[k], fb[nn+k] = 0, 0
			continue
		}
		vol := math.Abs(ev.Sqg[k]) * ev.Stk.G.W[k]
		fb[k] = ev.Frho[k] * ev.GradRho[k] * vol
		fb[nn+k] = ev.Fbeta[k] * ev.BetaMag[k] * vol
	}
	return nil
}
