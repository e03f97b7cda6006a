// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package basis implements spectral basis families: Fourier series in the
// angular coordinates and Zernike/power polynomials in the radial coordinate.
// A basis is an ordered, immutable set of modes; evaluation at a grid node is
// a pure function of the mode index and the coordinates.
package basis

import (
	"errors"
	"math"
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/DarkStarStrix/DESC/grid"
)

// MaxDeriv is the highest analytic derivative order every family supports
const MaxDeriv = 4

// symmetry options for double-Fourier and Fourier-Zernike bases
const (
	SymNone = ""    // keep all modes
	SymCos  = "cos" // stellarator-symmetric, even under (θ,ζ)→(−θ,−ζ); used for R
	SymSin  = "sin" // stellarator-antisymmetric, odd; used for Z and λ
)

// Mode holds the integer indices of one basis function: radial degree L,
// poloidal mode number M (M<0 selects the sin branch) and toroidal mode
// number N (N<0 likewise)
type Mode struct {
	L, M, N int
}

// Deriv selects a partial derivative order per coordinate
type Deriv struct {
	Rho, Tta, Zta int
}

// D000 is the plain evaluation (no derivative)
var D000 = Deriv{0, 0, 0}

// Basis is an enumerable ordered set of basis functions
type Basis interface {
	Modes() []Mode
	Nmodes() int
	NFP() int
	EvalMode(i int, rho, tta, zta float64, d Deriv) float64
	Evaluate(g *grid.Grid, d Deriv) ([][]float64, error)
}

// UnsupportedDerivError reports a derivative order outside what the basis
// family analytically supports. Programmer error; never retried.
type UnsupportedDerivError struct {
	D Deriv
}

func (e *UnsupportedDerivError) Error() string {
	return io.Sf("unsupported derivative order (%d,%d,%d); analytic derivatives go up to %d", e.D.Rho, e.D.Tta, e.D.Zta, MaxDeriv)
}

// IsUnsupportedDeriv tells whether err is an UnsupportedDerivError
func IsUnsupportedDeriv(err error) bool {
	var e *UnsupportedDerivError
	return errors.As(err, &e)
}

// CoordMismatchError reports grid/basis coordinate-convention disagreement
// (e.g. different numbers of field periods). Programmer error; never retried.
type CoordMismatchError struct {
	Msg string
}

func (e *CoordMismatchError) Error() string {
	return e.Msg
}

// IsCoordMismatch tells whether err is a CoordMismatchError
func IsCoordMismatch(err error) bool {
	var e *CoordMismatchError
	return errors.As(err, &e)
}

// checkDeriv validates a derivative request
func checkDeriv(d Deriv) error {
	if d.Rho < 0 || d.Tta < 0 || d.Zta < 0 || d.Rho > MaxDeriv || d.Tta > MaxDeriv || d.Zta > MaxDeriv {
		return &UnsupportedDerivError{d}
	}
	return nil
}

// checkGrid validates grid/basis coordinate conventions
func checkGrid(g *grid.Grid, nfp int) error {
	if g == nil {
		return &CoordMismatchError{"basis: nil grid"}
	}
	if g.NFP != nfp {
		return &CoordMismatchError{io.Sf("basis: grid has NFP=%d but basis has NFP=%d", g.NFP, nfp)}
	}
	return nil
}

// evaluate assembles the (node × mode) matrix of the d-th partial derivative
func evaluate(b Basis, g *grid.Grid, d Deriv) (A [][]float64, err error) {
	if err = checkDeriv(d); err != nil {
		return
	}
	if err = checkGrid(g, b.NFP()); err != nil {
		return
	}
	nn := g.Nnodes()
	nm := b.Nmodes()
	A = make([][]float64, nn)
	for k := 0; k < nn; k++ {
		A[k] = make([]float64, nm)
		for i := 0; i < nm; i++ {
			A[k][i] = b.EvalMode(i, g.Rho[k], g.Tta[k], g.Zta[k], d)
		}
	}
	return
}

// fourier computes dⁿ/dxⁿ of cos(m·x) for m ≥ 0 or sin(|m|·x) for m < 0
func fourier(m int, x float64, dv int) float64 {
	a := math.Abs(float64(m))
	s := math.Pow(a, float64(dv))
	arg := a*x + float64(dv)*math.Pi/2.0
	if m >= 0 {
		return s * math.Cos(arg)
	}
	return s * math.Sin(arg)
}

// powDeriv computes dⁿ/dρⁿ of ρ^p
func powDeriv(p int, rho float64, dv int) float64 {
	if dv > p {
		return 0
	}
	c := 1.0
	for j := 0; j < dv; j++ {
		c *= float64(p - j)
	}
	if p-dv == 0 {
		return c
	}
	return c * math.Pow(rho, float64(p-dv))
}

// keepSym tells whether the double-Fourier factor F_m(θ)F_n(ζ) has the
// requested parity under (θ,ζ) → (−θ,−ζ)
func keepSym(m, n int, sym string) bool {
	switch sym {
	case SymNone:
		return true
	case SymCos: // cos·cos or sin·sin
		return (m >= 0 && n >= 0) || (m < 0 && n < 0)
	case SymSin: // cos·sin or sin·cos, never the constant
		if m == 0 && n == 0 {
			return false
		}
		return (m >= 0 && n < 0) || (m < 0 && n >= 0)
	}
	return false
}

// sortModes puts modes in the canonical graded order (L, then M, then N)
func sortModes(modes []Mode) {
	sort.Slice(modes, func(i, j int) bool {
		if modes[i].L != modes[j].L {
			return modes[i].L < modes[j].L
		}
		if modes[i].M != modes[j].M {
			return modes[i].M < modes[j].M
		}
		return modes[i].N < modes[j].N
	})
}

// iabs returns |i|
func iabs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
