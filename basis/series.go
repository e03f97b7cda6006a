// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/grid"
)

// PowerSeries is the radial family {ρ^l : 0 ≤ l ≤ L}, used for profiles
type PowerSeries struct {
	modes []Mode
}

// NewPowerSeries returns a power-series basis of maximum degree L
func NewPowerSeries(L int) *PowerSeries {
	if L < 0 {
		chk.Panic("power series: negative degree L=%d", L)
	}
	o := new(PowerSeries)
	o.modes = make([]Mode, L+1)
	for l := 0; l <= L; l++ {
		o.modes[l] = Mode{L: l}
	}
	return o
}

func (o *PowerSeries) Modes() []Mode { return o.modes }
func (o *PowerSeries) Nmodes() int   { return len(o.modes) }
func (o *PowerSeries) NFP() int      { return 1 }

// EvalMode computes the d-th derivative of mode i at the given coordinates
func (o *PowerSeries) EvalMode(i int, rho, tta, zta float64, d Deriv) float64 {
	if d.Tta > 0 || d.Zta > 0 {
		return 0
	}
	return powDeriv(o.modes[i].L, rho, d.Rho)
}

// Evaluate returns the (node × mode) derivative matrix
func (o *PowerSeries) Evaluate(g *grid.Grid, d Deriv) ([][]float64, error) {
	return evaluate(o, g, d)
}

// FourierSeries is the toroidal family {cos(n·NFP·ζ), sin(|n|·NFP·ζ)}
type FourierSeries struct {
	modes []Mode
	nfp   int
}

// NewFourierSeries returns a toroidal Fourier basis with modes |n| ≤ N
func NewFourierSeries(N, nfp int) *FourierSeries {
	if N < 0 || nfp < 1 {
		chk.Panic("fourier series: invalid N=%d nfp=%d", N, nfp)
	}
	o := &FourierSeries{nfp: nfp}
	for n := -N; n <= N; n++ {
		o.modes = append(o.modes, Mode{N: n})
	}
	sortModes(o.modes)
	return o
}

func (o *FourierSeries) Modes() []Mode { return o.modes }
func (o *FourierSeries) Nmodes() int   { return len(o.modes) }
func (o *FourierSeries) NFP() int      { return o.nfp }

// EvalMode computes the d-th derivative of mode i at the given coordinates
func (o *FourierSeries) EvalMode(i int, rho, tta, zta float64, d Deriv) float64 {
	if d.Rho > 0 || d.Tta > 0 {
		return 0
	}
	n := o.modes[i].N
	return fourier(n*o.nfp, zta, d.Zta)
}

// Evaluate returns the (node × mode) derivative matrix
func (o *FourierSeries) Evaluate(g *grid.Grid, d Deriv) ([][]float64, error) {
	return evaluate(o, g, d)
}

// DoubleFourier is the angular family F_m(θ)·F_n(NFP·ζ) on a flux surface,
// used for the poloidal stream function λ and for boundary surfaces
type DoubleFourier struct {
	modes []Mode
	nfp   int
}

// NewDoubleFourier returns a double-Fourier basis with |m| ≤ M, |n| ≤ N,
// optionally filtered to one stellarator-symmetry parity
func NewDoubleFourier(M, N, nfp int, sym string) *DoubleFourier {
	if M < 0 || N < 0 || nfp < 1 {
		chk.Panic("double fourier: invalid M=%d N=%d nfp=%d", M, N, nfp)
	}
	o := &DoubleFourier{nfp: nfp}
	for m := -M; m <= M; m++ {
		for n := -N; n <= N; n++ {
			if !keepSym(m, n, sym) {
				continue
			}
			o.modes = append(o.modes, Mode{M: m, N: n})
		}
	}
	sortModes(o.modes)
	return o
}

func (o *DoubleFourier) Modes() []Mode { return o.modes }
func (o *DoubleFourier) Nmodes() int   { return len(o.modes) }
func (o *DoubleFourier) NFP() int      { return o.nfp }

// IndexOf returns the position of mode (m,n) or -1
func (o *DoubleFourier) IndexOf(m, n int) int {
	for i, md := range o.modes {
		if md.M == m && md.N == n {
			return i
		}
	}
	return -1
}

// EvalMode computes the d-th derivative of mode i at the given coordinates
func (o *DoubleFourier) EvalMode(i int, rho, tta, zta float64, d Deriv) float64 {
	if d.Rho > 0 {
		return 0
	}
	md := o.modes[i]
	return fourier(md.M, tta, d.Tta) * fourier(md.N*o.nfp, zta, d.Zta)
}

// Evaluate returns the (node × mode) derivative matrix
func (o *DoubleFourier) Evaluate(g *grid.Grid, d Deriv) ([][]float64, error) {
	return evaluate(o, g, d)
}
