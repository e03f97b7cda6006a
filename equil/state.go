// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package equil implements the equilibrium state: the named spectral
// coefficient groups for the flux-surface geometry (R, Z), the poloidal
// stream function (λ) and the global parameters of one solve. The state is
// the sole mutable object updated by the nonlinear solver.
package equil

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/DarkStarStrix/DESC/basis"
)

// State holds the unknowns of one equilibrium solve. Coefficient group
// lengths always match the bases; the flat unknown vector is x = [CR|CZ|CL].
type State struct {

	// bases
	RB *basis.FourierZernike // basis for the R geometry group
	ZB *basis.FourierZernike // basis for the Z geometry group
	LB *basis.DoubleFourier  // basis for the λ group

	// coefficient groups
	CR []float64 // R coefficients [RB.Nmodes()]
	CZ []float64 // Z coefficients [ZB.Nmodes()]
	CL []float64 // λ coefficients [LB.Nmodes()]

	// global parameters
	NFP      int      // number of field periods
	PsiTotal float64  // total enclosed toroidal flux [Wb]
	Sym      bool     // stellarator symmetry enforced
	Pres     dbf.T // pressure profile p(ρ) [Pa]
	Iota     dbf.T // rotational transform ι(ρ)

	// backup for divergence control
	bkCR, bkCZ, bkCL []float64
}

// NewState allocates a zeroed state at spectral resolution (M, N).
// With sym=true the R group keeps the stellarator-symmetric (cos) parity and
// the Z and λ groups the antisymmetric (sin) parity.
func NewState(M, N, nfp int, sym bool, psi float64, pres, iota dbf.T) *State {
	symR, symZ := basis.SymNone, basis.SymNone
	if sym {
		symR, symZ = basis.SymCos, basis.SymSin
	}
	o := &State{
		RB:       basis.NewFourierZernike(M, N, nfp, symR),
		ZB:       basis.NewFourierZernike(M, N, nfp, symZ),
		LB:       basis.NewDoubleFourier(M, N, nfp, symZ),
		NFP:      nfp,
		PsiTotal: psi,
		Sym:      sym,
		Pres:     pres,
		Iota:     iota,
	}
	o.CR = make([]float64, o.RB.Nmodes())
	o.CZ = make([]float64, o.ZB.Nmodes())
	o.CL = make([]float64, o.LB.Nmodes())
	return o
}

// Check verifies the group-length invariant
func (o *State) Check() error {
	if len(o.CR) != o.RB.Nmodes() || len(o.CZ) != o.ZB.Nmodes() || len(o.CL) != o.LB.Nmodes() {
		return chk.Err("state: coefficient group lengths (%d,%d,%d) do not match bases (%d,%d,%d)",
			len(o.CR), len(o.CZ), len(o.CL), o.RB.Nmodes(), o.ZB.Nmodes(), o.LB.Nmodes())
	}
	return nil
}

// Ndof returns the number of free coefficients
func (o *State) Ndof() int {
	return len(o.CR) + len(o.CZ) + len(o.CL)
}

// Pack returns the flat unknown vector x = [CR|CZ|CL]
func (o *State) Pack() (x []float64) {
	x = make([]float64, o.Ndof())
	o.PackTo(x)
	return
}

// PackTo writes the flat unknown vector into x
func (o *State) PackTo(x []float64) {
	n := copy(x, o.CR)
	n += copy(x[n:], o.CZ)
	copy(x[n:], o.CL)
}

// Unpack reads the flat unknown vector back into the coefficient groups
func (o *State) Unpack(x []float64) error {
	if len(x) != o.Ndof() {
		return chk.Err("state: unknown vector has length %d but state has %d dofs", len(x), o.Ndof())
	}
	n := copy(o.CR, x)
	n += copy(o.CZ, x[n:])
	copy(o.CL, x[n:])
	return nil
}

// Backup saves the coefficient groups for a later Restore
func (o *State) Backup() {
	if o.bkCR == nil {
		o.bkCR = make([]float64, len(o.CR))
		o.bkCZ = make([]float64, len(o.CZ))
		o.bkCL = make([]float64, len(o.CL))
	}
	copy(o.bkCR, o.CR)
	copy(o.bkCZ, o.CZ)
	copy(o.bkCL, o.CL)
}

// Restore recovers the last backup
func (o *State) Restore() {
	if o.bkCR == nil {
		chk.Panic("state: Restore called before Backup")
	}
	copy(o.CR, o.bkCR)
	copy(o.CZ, o.bkCZ)
	copy(o.CL, o.bkCL)
}

// Copy returns a deep copy of the coefficient groups; bases and profiles are
// immutable and therefore shared
func (o *State) Copy() *State {
	p := new(State)
	*p = *o
	p.CR = la.Vector(o.CR).GetCopy()
	p.CZ = la.Vector(o.CZ).GetCopy()
	p.CL = la.Vector(o.CL).GetCopy()
	p.bkCR, p.bkCZ, p.bkCL = nil, nil, nil
	return p
}

// Expand returns a new state at resolution (M, N), preserving coefficients
// of matching modes and zero-filling the new ones
func (o *State) Expand(M, N int) *State {
	p := NewState(M, N, o.NFP, o.Sym, o.PsiTotal, o.Pres, o.Iota)
	mapCoefs := func(src []float64, srcModes, dstModes []basis.Mode, dst []float64) {
		idx := make(map[basis.Mode]int)
		for i, md := range dstModes {
			idx[md] = i
		}
		for i, md := range srcModes {
			if j, ok := idx[md]; ok {
				dst[j] = src[i]
			}
		}
	}
	mapCoefs(o.CR, o.RB.Modes(), p.RB.Modes(), p.CR)
	mapCoefs(o.CZ, o.ZB.Modes(), p.ZB.Modes(), p.CZ)
	mapCoefs(o.CL, o.LB.Modes(), p.LB.Modes(), p.CL)
	return p
}
