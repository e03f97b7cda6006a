// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"github.com/cpmech/gosl/chk"
)

// BdryMode holds one Fourier mode of the prescribed outer flux surface.
// The sign convention matches the basis package: m ≥ 0 selects cos(mθ),
// m < 0 selects sin(|m|θ); likewise n for the toroidal angle.
type BdryMode struct {
	M int     `json:"m"` // poloidal mode number
	N int     `json:"n"` // toroidal mode number
	R float64 `json:"r"` // R coefficient
	Z float64 `json:"z"` // Z coefficient
}

// Boundary is the fixed outer flux-surface shape, given as already-decoded
// spectral coefficients in the same convention as the geometry groups
type Boundary struct {
	NFP   int        `json:"nfp"`
	Modes []BdryMode `json:"modes"`
}

// Check verifies mode uniqueness and field-period consistency with a state
func (o *Boundary) Check(st *State) error {
	if o.NFP != st.NFP {
		return chk.Err("boundary: NFP=%d does not match state NFP=%d", o.NFP, st.NFP)
	}
	seen := make(map[[2]int]bool)
	for _, bm := range o.Modes {
		key := [2]int{bm.M, bm.N}
		if seen[key] {
			return chk.Err("boundary: duplicated mode (m=%d,n=%d)", bm.M, bm.N)
		}
		seen[key] = true
	}
	return nil
}

// Get returns the (R, Z) coefficients of mode (m, n), or zeros
func (o *Boundary) Get(m, n int) (r, z float64) {
	for _, bm := range o.Modes {
		if bm.M == m && bm.N == n {
			return bm.R, bm.Z
		}
	}
	return
}

// InitialGuess fills the geometry groups by scaling the boundary surface
// linearly in ρ towards the axis guess (rax, zax): each boundary mode (m,n)
// lands on the lowest-degree Zernike mode l=|m| that reaches the edge with
// value one, and the two m=0 modes of degree 0 and 2 split the axis/edge
// values. λ starts at zero.
func (o *State) InitialGuess(bnd *Boundary, rax, zax float64) (err error) {
	if err = bnd.Check(o); err != nil {
		return
	}
	zero := func(c []float64) {
		for i := range c {
			c[i] = 0
		}
	}
	zero(o.CR)
	zero(o.CZ)
	zero(o.CL)

	for _, bm := range bnd.Modes {
		// R group
		if bm.M == 0 && bm.N == 0 {
			i0 := o.RB.IndexOf(0, 0, 0)
			i2 := o.RB.IndexOf(2, 0, 0)
			if i0 < 0 {
				return chk.Err("initial guess: R basis lacks mode (0,0,0)")
			}
			if i2 >= 0 {
				o.CR[i0] = 0.5 * (bm.R + rax)
				o.CR[i2] = 0.5 * (bm.R - rax)
			} else {
				o.CR[i0] = bm.R
			}
			// Z axis offset
			j0 := o.ZB.IndexOf(0, 0, 0)
			j2 := o.ZB.IndexOf(2, 0, 0)
			if j0 >= 0 && j2 >= 0 {
				o.CZ[j0] = 0.5 * (bm.Z + zax)
				o.CZ[j2] = 0.5 * (bm.Z - zax)
			} else if j0 >= 0 {
				o.CZ[j0] = bm.Z
			}
			continue
		}
		mm := bm.M
		if mm < 0 {
			mm = -mm
		}
		if bm.R != 0 {
			i := o.RB.IndexOf(mm, bm.M, bm.N)
			if i < 0 {
				return chk.Err("initial guess: R basis cannot represent boundary mode (m=%d,n=%d)", bm.M, bm.N)
			}
			o.CR[i] = bm.R
		}
		if bm.Z != 0 {
			j := o.ZB.IndexOf(mm, bm.M, bm.N)
			if j < 0 {
				return chk.Err("initial guess: Z basis cannot represent boundary mode (m=%d,n=%d)", bm.M, bm.N)
			}
			o.CZ[j] = bm.Z
		}
	}
	return
}
