// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form reference solutions for verification
package ana

import (
	"math"

	"github.com/DarkStarStrix/DESC/equil"
)

// CircTok is a zero-pressure circular-cross-section tokamak with concentric
// flux surfaces:
//  R(ρ,θ) = R0 + a·ρ·cos(θ)
//  Z(ρ,θ) = a·ρ·sin(θ)
//  λ = 0,  ι(ρ) = Iota0 + Iota2·ρ²
// The geometry is spectrally exact at any resolution M ≥ 1, which makes the
// derived field quantities below exact references for collocation output.
// It is not an exact force-balance solution; the residual is O(a/R0).
type CircTok struct {
	R0    float64 // major radius [m]
	A     float64 // minor radius [m]
	Psi   float64 // total enclosed toroidal flux [Wb]
	Iota0 float64 // rotational transform on axis
	Iota2 float64 // ρ² coefficient of the rotational transform
}

// Profiles returns the (zero) pressure and the rotational-transform profile
func (o *CircTok) Profiles() (pres, iota *equil.PowerProfile) {
	return equil.NewPowerProfile(nil),
		equil.NewPowerProfile([]float64{o.Iota0, 0, o.Iota2})
}

// State builds the exact spectral representation at resolution (M,N)
func (o *CircTok) State(M, N int) *equil.State {
	pres, iota := o.Profiles()
	st := equil.NewState(M, N, 1, true, o.Psi, pres, iota)
	st.CR[st.RB.IndexOf(0, 0, 0)] = o.R0
	st.CR[st.RB.IndexOf(1, 1, 0)] = o.A
	st.CZ[st.ZB.IndexOf(1, -1, 0)] = o.A
	return st
}

// Boundary returns the outer-surface shape
func (o *CircTok) Boundary() *equil.Boundary {
	return &equil.Boundary{
		NFP: 1,
		Modes: []equil.BdryMode{
			{M: 0, N: 0, R: o.R0, Z: 0},
			{M: 1, N: 0, R: o.A, Z: 0},
			{M: -1, N: 0, R: 0, Z: o.A},
		},
	}
}

// R returns the cylindrical radius at (ρ,θ)
func (o *CircTok) R(rho, tta float64) float64 {
	return o.R0 + o.A*rho*math.Cos(tta)
}

// Sqg returns the coordinate jacobian √g = a²·ρ·R
func (o *CircTok) Sqg(rho, tta float64) float64 {
	return o.A * o.A * rho * o.R(rho, tta)
}

// BTta returns the contravariant poloidal field B^θ = Ψ·ι/(π·a²·R)
func (o *CircTok) BTta(rho, tta float64) float64 {
	iota := o.Iota0 + o.Iota2*rho*rho
	return o.Psi * iota / (math.Pi * o.A * o.A * o.R(rho, tta))
}

// BZta returns the contravariant toroidal field B^ζ = Ψ/(π·a²·R)
func (o *CircTok) BZta(rho, tta float64) float64 {
	return o.Psi / (math.Pi * o.A * o.A * o.R(rho, tta))
}

// GradRho returns |∇ρ| = 1/a, uniform for concentric circular surfaces
func (o *CircTok) GradRho() float64 {
	return 1.0 / o.A
}
