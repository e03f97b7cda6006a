// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/DarkStarStrix/DESC/grid"
)

func Test_basis01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis01. mode sets: uniqueness and ordering")

	zb := NewFourierZernike(4, 2, 3, SymNone)
	seen := make(map[Mode]bool)
	for _, md := range zb.Modes() {
		if seen[md] {
			tst.Errorf("duplicated mode %v", md)
			return
		}
		seen[md] = true
		if (md.L-iabs(md.M))%2 != 0 || iabs(md.M) > md.L {
			tst.Errorf("invalid zernike mode %v", md)
			return
		}
	}
	io.Pforan("nmodes(M=4,N=2) = %v\n", zb.Nmodes())
	// (M+1)(M+3)/2 zernike modes for M even, times 2N+1 toroidal factors
	chk.IntAssert(zb.Nmodes(), 15*5)

	df := NewDoubleFourier(2, 1, 1, SymNone)
	chk.IntAssert(df.Nmodes(), 5*3)

	// symmetric pair partitions the full set
	dc := NewDoubleFourier(2, 1, 1, SymCos)
	ds := NewDoubleFourier(2, 1, 1, SymSin)
	chk.IntAssert(dc.Nmodes()+ds.Nmodes(), df.Nmodes())
}

func Test_basis02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis02. zernike radial polynomials")

	// known low-order polynomials at sample radii
	zb := NewFourierZernike(4, 0, 1, SymNone)
	for _, rho := range []float64{0, 0.3, 0.7, 1} {
		i20 := zb.IndexOf(2, 0, 0)
		chk.Float64(tst, "R₂⁰", 1e-14, zb.EvalMode(i20, rho, 0, 0, D000), 2*rho*rho-1)
		i31 := zb.IndexOf(3, 1, 0)
		chk.Float64(tst, "R₃¹cosθ@θ=0", 1e-14, zb.EvalMode(i31, rho, 0, 0, D000), 3*rho*rho*rho-2*rho)
		i44 := zb.IndexOf(4, 4, 0)
		chk.Float64(tst, "R₄⁴cos4θ@θ=0", 1e-14, zb.EvalMode(i44, rho, 0, 0, D000), math.Pow(rho, 4))
	}

	// edge value is one for every radial degree
	for i := range zb.Modes() {
		chk.Float64(tst, "R_l^m(1)", 1e-13, zb.rad[i].eval(1, 0), 1)
	}
}

func Test_basis03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis03. analytic derivatives vs central differences")

	zb := NewFourierZernike(4, 2, 2, SymNone)
	rho, tta, zta := 0.6, 1.1, 0.4
	for _, i := range []int{0, 3, 7, zb.Nmodes() - 1} {
		dr := num.DerivCen5(rho, 1e-3, func(t float64) float64 {
			return zb.EvalMode(i, t, tta, zta, D000)
		})
		chk.AnaNum(tst, io.Sf("∂/∂ρ mode %d", i), 1e-5, zb.EvalMode(i, rho, tta, zta, Deriv{1, 0, 0}), dr, chk.Verbose)

		dt := num.DerivCen5(tta, 1e-3, func(t float64) float64 {
			return zb.EvalMode(i, rho, t, zta, D000)
		})
		chk.AnaNum(tst, io.Sf("∂/∂θ mode %d", i), 1e-5, zb.EvalMode(i, rho, tta, zta, Deriv{0, 1, 0}), dt, chk.Verbose)

		dz := num.DerivCen5(zta, 1e-3, func(t float64) float64 {
			return zb.EvalMode(i, rho, tta, t, D000)
		})
		chk.AnaNum(tst, io.Sf("∂/∂ζ mode %d", i), 1e-5, zb.EvalMode(i, rho, tta, zta, Deriv{0, 0, 1}), dz, chk.Verbose)

		drt := num.DerivCen5(rho, 1e-3, func(t float64) float64 {
			return zb.EvalMode(i, t, tta, zta, Deriv{0, 1, 0})
		})
		chk.AnaNum(tst, io.Sf("∂²/∂ρ∂θ mode %d", i), 1e-4, zb.EvalMode(i, rho, tta, zta, Deriv{1, 1, 0}), drt, chk.Verbose)
	}
}

func Test_basis04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis04. error conditions")

	zb := NewFourierZernike(2, 1, 2, SymNone)
	g, err := grid.NewLinearGrid(2, 2, 1, 2)
	if err != nil {
		tst.Errorf("grid failed:\n%v", err)
		return
	}

	// derivative order beyond the analytic limit
	_, err = zb.Evaluate(g, Deriv{MaxDeriv + 1, 0, 0})
	if !IsUnsupportedDeriv(err) {
		tst.Errorf("expected UnsupportedDeriv, got: %v", err)
		return
	}
	_, err = zb.Evaluate(g, Deriv{-1, 0, 0})
	if !IsUnsupportedDeriv(err) {
		tst.Errorf("expected UnsupportedDeriv for negative order, got: %v", err)
		return
	}

	// field-period mismatch
	gBad, _ := grid.NewLinearGrid(2, 2, 1, 3)
	_, err = zb.Evaluate(gBad, D000)
	if !IsCoordMismatch(err) {
		tst.Errorf("expected CoordMismatch, got: %v", err)
		return
	}

	// valid request
	A, err := zb.Evaluate(g, D000)
	if err != nil {
		tst.Errorf("Evaluate failed:\n%v", err)
		return
	}
	chk.IntAssert(len(A), g.Nnodes())
	chk.IntAssert(len(A[0]), zb.Nmodes())
}

func Test_basis05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis05. symmetry parity of double-Fourier modes")

	dc := NewDoubleFourier(3, 2, 4, SymCos)
	ds := NewDoubleFourier(3, 2, 4, SymSin)
	tta, zta := 0.7, 0.2
	for i := range dc.Modes() {
		a := dc.EvalMode(i, 0, tta, zta, D000)
		b := dc.EvalMode(i, 0, -tta, -zta, D000)
		chk.Float64(tst, "cos parity", 1e-14, a, b)
	}
	for i := range ds.Modes() {
		a := ds.EvalMode(i, 0, tta, zta, D000)
		b := ds.EvalMode(i, 0, -tta, -zta, D000)
		chk.Float64(tst, "sin parity", 1e-14, a, -b)
	}
}
