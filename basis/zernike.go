// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/grid"
)

// zpoly holds one Zernike radial polynomial R_l^|m| as sparse power-series
// coefficients: R(ρ) = Σ_k coefs[k]·ρ^powers[k]
type zpoly struct {
	powers []int
	coefs  []float64
}

// zernikeRadial builds R_l^|m| from the explicit factorial formula. Requires
// l ≥ |m| and l−|m| even (the caller guarantees this).
func zernikeRadial(l, m int) (p zpoly) {
	mm := iabs(m)
	kmax := (l - mm) / 2
	for k := 0; k <= kmax; k++ {
		c := fact(l-k) / (fact(k) * fact((l+mm)/2-k) * fact((l-mm)/2-k))
		if k%2 == 1 {
			c = -c
		}
		p.powers = append(p.powers, l-2*k)
		p.coefs = append(p.coefs, c)
	}
	return
}

// eval computes the dv-th radial derivative of the polynomial at ρ
func (o zpoly) eval(rho float64, dv int) (res float64) {
	for k, p := range o.powers {
		res += o.coefs[k] * powDeriv(p, rho, dv)
	}
	return
}

// fact returns n! as float64 (n is small: bounded by the radial degree)
func fact(n int) (r float64) {
	r = 1.0
	for i := 2; i <= n; i++ {
		r *= float64(i)
	}
	return
}

// FourierZernike is the full 3D family: Zernike polynomial Z_l^m(ρ,θ) times
// toroidal Fourier factor F_n(NFP·ζ). This is the basis for the flux-surface
// geometry groups R and Z. Mode set (ANSI pyramid): 0 ≤ l ≤ M, |m| ≤ l,
// l−|m| even, |n| ≤ N. Each radial polynomial satisfies R_l^|m|(1) = 1, so
// an edge evaluation reduces to a plain sum over the radial degrees.
type FourierZernike struct {
	modes []Mode
	rad   []zpoly
	nfp   int
	M, N  int
	sym   string
}

// NewFourierZernike returns a Fourier-Zernike basis with the given poloidal
// resolution M, toroidal resolution N, field periods and symmetry parity
func NewFourierZernike(M, N, nfp int, sym string) *FourierZernike {
	if M < 0 || N < 0 || nfp < 1 {
		chk.Panic("fourier-zernike: invalid M=%d N=%d nfp=%d", M, N, nfp)
	}
	o := &FourierZernike{nfp: nfp, M: M, N: N, sym: sym}
	for l := 0; l <= M; l++ {
		for m := -l; m <= l; m++ {
			if (l-iabs(m))%2 != 0 {
				continue
			}
			for n := -N; n <= N; n++ {
				if !keepSym(m, n, sym) {
					continue
				}
				o.modes = append(o.modes, Mode{L: l, M: m, N: n})
			}
		}
	}
	sortModes(o.modes)
	o.rad = make([]zpoly, len(o.modes))
	for i, md := range o.modes {
		o.rad[i] = zernikeRadial(md.L, md.M)
	}
	return o
}

func (o *FourierZernike) Modes() []Mode { return o.modes }
func (o *FourierZernike) Nmodes() int   { return len(o.modes) }
func (o *FourierZernike) NFP() int      { return o.nfp }

// Sym returns the symmetry parity this basis was built with
func (o *FourierZernike) Sym() string { return o.sym }

// Res returns the spectral resolution (M, N)
func (o *FourierZernike) Res() (M, N int) { return o.M, o.N }

// IndexOf returns the position of mode (l,m,n) or -1
func (o *FourierZernike) IndexOf(l, m, n int) int {
	for i, md := range o.modes {
		if md.L == l && md.M == m && md.N == n {
			return i
		}
	}
	return -1
}

// EvalMode computes the d-th partial derivative of mode i at (ρ,θ,ζ)
func (o *FourierZernike) EvalMode(i int, rho, tta, zta float64, d Deriv) float64 {
	md := o.modes[i]
	r := o.rad[i].eval(rho, d.Rho)
	if r == 0 {
		return 0
	}
	return r * fourier(md.M, tta, d.Tta) * fourier(md.N*o.nfp, zta, d.Zta)
}

// Evaluate returns the (node × mode) derivative matrix
func (o *FourierZernike) Evaluate(g *grid.Grid, d Deriv) ([][]float64, error) {
	return evaluate(o, g, d)
}
