// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements collocation/quadrature node patterns in flux coordinates
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// node-pattern kinds
const (
	KindLinear     = "linear"     // tensor product, uniform angles, uniform radii
	KindConcentric = "concentric" // per-surface poloidal counts growing with radius
	KindQuadrature = "quadrature" // Gauss-Legendre radii, uniform angles
)

// radial spacing options for concentric grids
const (
	SpacingLinear = "linear" // uniform radii
	SpacingCheb1  = "cheb1"  // Chebyshev-Gauss radii, clustered near axis and edge
	SpacingCheb2  = "cheb2"  // Chebyshev-Lobatto radii, includes the edge
)

// Grid holds an ordered set of collocation nodes (ρ,θ,ζ) with quadrature weights.
// The node ordering is stable and acts as the index contract between transform
// outputs and residual evaluation. Weights sum to (2π)²/NFP times the radial
// extent, i.e. the coordinate volume of one field period. Immutable after
// construction.
type Grid struct {
	Kind string    // one of Kind...
	NFP  int       // number of (toroidal) field periods
	Rho  []float64 // [nn] radial coordinate of each node, in [0,1]
	Tta  []float64 // [nn] poloidal angle θ of each node, in [0,2π)
	Zta  []float64 // [nn] toroidal angle ζ of each node, in [0,2π/NFP)
	W    []float64 // [nn] quadrature weights
}

// Nnodes returns the number of nodes
func (o *Grid) Nnodes() int {
	return len(o.Rho)
}

// HasAxis tells whether any node sits at the magnetic axis ρ=0
func (o *Grid) HasAxis() bool {
	for _, r := range o.Rho {
		if r == 0 {
			return true
		}
	}
	return false
}

// NewLinearGrid returns a tensor-product grid with nr uniform radii at the
// cell midpoints (i+½)/nr, 2M+1 poloidal and 2N+1 toroidal angles
func NewLinearGrid(nr, M, N, nfp int) (o *Grid, err error) {
	if nr < 1 || M < 0 || N < 0 || nfp < 1 {
		err = chk.Err("linear grid: invalid resolution: nr=%d M=%d N=%d nfp=%d", nr, M, N, nfp)
		return
	}
	rhos := make([]float64, nr)
	for i := 0; i < nr; i++ {
		rhos[i] = (float64(i) + 0.5) / float64(nr)
	}
	return NewLinearGridRho(rhos, M, N, nfp)
}

// NewLinearGridRho returns a tensor-product grid over the given radii. The
// radii may include ρ=0; consumers must handle the axis without crashing.
func NewLinearGridRho(rhos []float64, M, N, nfp int) (o *Grid, err error) {
	if len(rhos) < 1 || M < 0 || N < 0 || nfp < 1 {
		err = chk.Err("linear grid: invalid resolution: nr=%d M=%d N=%d nfp=%d", len(rhos), M, N, nfp)
		return
	}
	for _, r := range rhos {
		if r < 0 || r > 1 {
			err = chk.Err("linear grid: radius ρ=%g out of [0,1]", r)
			return
		}
	}
	nt := 2*M + 1
	nz := 2*N + 1
	nn := len(rhos) * nt * nz
	o = &Grid{Kind: KindLinear, NFP: nfp}
	o.alloc(nn)
	wr := radialShares(rhos)
	wt := 2.0 * math.Pi / float64(nt)
	wz := 2.0 * math.Pi / float64(nfp*nz)
	k := 0
	for iz := 0; iz < nz; iz++ {
		for it := 0; it < nt; it++ {
			for ir, r := range rhos {
				o.Rho[k] = r
				o.Tta[k] = 2.0 * math.Pi * float64(it) / float64(nt)
				o.Zta[k] = 2.0 * math.Pi * float64(iz) / float64(nfp*nz)
				o.W[k] = wr[ir] * wt * wz
				k++
			}
		}
	}
	return
}

// NewConcentricGrid returns a grid with M radial surfaces where surface i
// carries 2i+3 poloidal nodes, so the poloidal resolution grows with radius
// in step with the modes a Fourier-Zernike basis supports there. Each surface
// is replicated over 2N+1 toroidal planes.
func NewConcentricGrid(M, N, nfp int, spacing string) (o *Grid, err error) {
	if M < 1 || N < 0 || nfp < 1 {
		err = chk.Err("concentric grid: invalid resolution: M=%d N=%d nfp=%d", M, N, nfp)
		return
	}
	rhos := make([]float64, M)
	for i := 0; i < M; i++ {
		x := (float64(i) + 1.0) / float64(M) // linear, excludes axis
		switch spacing {
		case SpacingLinear, "":
			rhos[i] = x
		case SpacingCheb1:
			rhos[i] = 0.5 * (1.0 - math.Cos(math.Pi*(2.0*float64(i)+1.0)/(2.0*float64(M))))
		case SpacingCheb2:
			rhos[i] = 0.5 * (1.0 - math.Cos(math.Pi*(float64(i)+1.0)/float64(M)))
		default:
			err = chk.Err("concentric grid: unknown radial spacing %q", spacing)
			return
		}
	}
	nz := 2*N + 1
	nn := 0
	for i := 0; i < M; i++ {
		nn += (2*i + 3) * nz
	}
	o = &Grid{Kind: KindConcentric, NFP: nfp}
	o.alloc(nn)
	wr := radialShares(rhos)
	wz := 2.0 * math.Pi / float64(nfp*nz)
	k := 0
	for iz := 0; iz < nz; iz++ {
		zta := 2.0 * math.Pi * float64(iz) / float64(nfp*nz)
		for i := 0; i < M; i++ {
			nt := 2*i + 3
			wt := 2.0 * math.Pi / float64(nt)
			for it := 0; it < nt; it++ {
				o.Rho[k] = rhos[i]
				o.Tta[k] = 2.0 * math.Pi * float64(it) / float64(nt)
				o.Zta[k] = zta
				o.W[k] = wr[i] * wt * wz
				k++
			}
		}
	}
	return
}

// NewQuadratureGrid returns a grid with nr Gauss-Legendre radial nodes on
// [0,1] and uniform angles; radial quadrature is then exact for the
// polynomial degrees a spectral basis of matching resolution produces
func NewQuadratureGrid(nr, M, N, nfp int) (o *Grid, err error) {
	if nr < 1 || M < 0 || N < 0 || nfp < 1 {
		err = chk.Err("quadrature grid: invalid resolution: nr=%d M=%d N=%d nfp=%d", nr, M, N, nfp)
		return
	}
	xr := make([]float64, nr)
	wr := make([]float64, nr)
	quad.Legendre{}.FixedLocations(xr, wr, 0, 1)
	nt := 2*M + 1
	nz := 2*N + 1
	nn := nr * nt * nz
	o = &Grid{Kind: KindQuadrature, NFP: nfp}
	o.alloc(nn)
	wt := 2.0 * math.Pi / float64(nt)
	wz := 2.0 * math.Pi / float64(nfp*nz)
	k := 0
	for iz := 0; iz < nz; iz++ {
		for it := 0; it < nt; it++ {
			for ir := 0; ir < nr; ir++ {
				o.Rho[k] = xr[ir]
				o.Tta[k] = 2.0 * math.Pi * float64(it) / float64(nt)
				o.Zta[k] = 2.0 * math.Pi * float64(iz) / float64(nfp*nz)
				o.W[k] = wr[ir] * wt * wz
				k++
			}
		}
	}
	return
}

// alloc allocates node arrays
func (o *Grid) alloc(nn int) {
	o.Rho = make([]float64, nn)
	o.Tta = make([]float64, nn)
	o.Zta = make([]float64, nn)
	o.W = make([]float64, nn)
}

// radialShares returns midpoint-interval radial weights for sorted radii in
// [0,1]; the shares sum to 1 regardless of spacing
func radialShares(rhos []float64) (w []float64) {
	n := len(rhos)
	w = make([]float64, n)
	if n == 1 {
		w[0] = 1.0
		return
	}
	for i := 0; i < n; i++ {
		var lo, hi float64
		if i == 0 {
			lo = 0.0
		} else {
			lo = 0.5 * (rhos[i-1] + rhos[i])
		}
		if i == n-1 {
			hi = 1.0
		} else {
			hi = 0.5 * (rhos[i] + rhos[i+1])
		}
		w[i] = hi - lo
	}
	return
}
