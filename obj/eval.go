// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"math"

	"github.com/DarkStarStrix/DESC/basis"
	"github.com/DarkStarStrix/DESC/equil"
	"github.com/DarkStarStrix/DESC/transform"
)

// Mu0 is the vacuum permeability [H/m]
const Mu0 = 4e-7 * math.Pi

// axisTol is the |√g| threshold below which a node is treated as sitting on
// the magnetic axis; field quantities are left zero there
const axisTol = 1e-12

// Eval holds the field quantities on the stack's grid nodes for one state.
// All slices have length G.Nnodes(). Subscripts r,t,z denote partial
// derivatives in (ρ,θ,ζ); quantities are in straight field-line flux
// coordinates with Ψ = Ψtot·ρ².
type Eval struct {

	// access
	St  *equil.State
	Stk *Stack

	// cylindrical geometry R(ρ,θ,ζ), Z(ρ,θ,ζ)
	R, Rr, Rt, Rz, Rrr, Rrt, Rrz, Rtt, Rtz, Rzz []float64
	Zv, Zr, Zt, Zz, Zrr, Zrt, Zrz, Ztt, Ztz, Zzz []float64

	// stream function λ(ρ,θ,ζ) angular derivatives
	Lt, Lz, Ltt, Ltz, Lzz []float64

	// coordinate jacobian √g = R·(R_ρZ_θ − R_θZ_ρ) and its derivatives;
	// this orientation makes √g positive when θ runs counter-clockwise in
	// the poloidal plane, the opposite sign of e_ρ·(e_θ×e_ζ) taken in
	// right-handed cylindrical (R,φ,Z) components
	Sqg, Sqgr, Sqgt, Sqgz []float64

	// contravariant magnetic field components
	Bt, Bz []float64 // B^θ, B^ζ [T/m]

	// contravariant current density scaled by μ0
	MJr, MJt, MJz []float64 // μ0·J^ρ, μ0·J^θ, μ0·J^ζ

	// force-balance residual densities and direction magnitudes
	Frho, Fbeta      []float64 // F_ρ [N/m³·m], F_β
	GradRho, BetaMag []float64 // |∇ρ|, |β| with β = B^ζ∇θ − B^θ∇ζ

	// axis flags
	OnAxis []bool
}

// compute fills every field quantity from the state's coefficients
func (o *Eval) compute() (err error) {
	st, g := o.St, o.Stk.G
	nn := g.Nnodes()

	ap := func(t *transform.Transform, c []float64, dr, dt, dz int) []float64 {
		if err != nil {
			return nil
		}
		var v []float64
		v, err = t.Apply(c, basis.Deriv{Rho: dr, Tta: dt, Zta: dz})
		return v
	}

	o.R = ap(o.Stk.TR, st.CR, 0, 0, 0)
	o.Rr = ap(o.Stk.TR, st.CR, 1, 0, 0)
	o.Rt = ap(o.Stk.TR, st.CR, 0, 1, 0)
	o.Rz = ap(o.Stk.TR, st.CR, 0, 0, 1)
	o.Rrr = ap(o.Stk.TR, st.CR, 2, 0, 0)
	o.Rrt = ap(o.Stk.TR, st.CR, 1, 1, 0)
	o.Rrz = ap(o.Stk.TR, st.CR, 1, 0, 1)
	o.Rtt = ap(o.Stk.TR, st.CR, 0, 2, 0)
	o.Rtz = ap(o.Stk.TR, st.CR, 0, 1, 1)
	o.Rzz = ap(o.Stk.TR, st.CR, 0, 0, 2)

	o.Zv = ap(o.Stk.TZ, st.CZ, 0, 0, 0)
	o.Zr = ap(o.Stk.TZ, st.CZ, 1, 0, 0)
	o.Zt = ap(o.Stk.TZ, st.CZ, 0, 1, 0)
	o.Zz = ap(o.Stk.TZ, st.CZ, 0, 0, 1)
	o.Zrr = ap(o.Stk.TZ, st.CZ, 2, 0, 0)
	o.Zrt = ap(o.Stk.TZ, st.CZ, 1, 1, 0)
	o.Zrz = ap(o.Stk.TZ, st.CZ, 1, 0, 1)
	o.Ztt = ap(o.Stk.TZ, st.CZ, 0, 2, 0)
	o.Ztz = ap(o.Stk.TZ, st.CZ, 0, 1, 1)
	o.Zzz = ap(o.Stk.TZ, st.CZ, 0, 0, 2)

	o.Lt = ap(o.Stk.TL, st.CL, 0, 1, 0)
	o.Lz = ap(o.Stk.TL, st.CL, 0, 0, 1)
	o.Ltt = ap(o.Stk.TL, st.CL, 0, 2, 0)
	o.Ltz = ap(o.Stk.TL, st.CL, 0, 1, 1)
	o.Lzz = ap(o.Stk.TL, st.CL, 0, 0, 2)
	if err != nil {
		return
	}

	o.Sqg = make([]float64, nn)
	o.Sqgr = make([]float64, nn)
	o.Sqgt = make([]float64, nn)
	o.Sqgz = make([]float64, nn)
	o.Bt = make([]float64, nn)
	o.Bz = make([]float64, nn)
	o.MJr = make([]float64, nn)
	o.MJt = make([]float64, nn)
	o.MJz = make([]float64, nn)
	o.Frho = make([]float64, nn)
	o.Fbeta = make([]float64, nn)
	o.GradRho = make([]float64, nn)
	o.BetaMag = make([]float64, nn)
	o.OnAxis = make([]bool, nn)

	for k := 0; k < nn; k++ {
		o.node(k)
	}
	return
}

// node computes the field quantities at node k
func (o *Eval) node(k int) {
	st := o.St
	rho := o.Stk.G.Rho[k]

	R, Rr, Rt, Rz := o.R[k], o.Rr[k], o.Rt[k], o.Rz[k]
	Rrr, Rrt, Rrz, Rtt, Rtz, Rzz := o.Rrr[k], o.Rrt[k], o.Rrz[k], o.Rtt[k], o.Rtz[k], o.Rzz[k]
	Zr, Zt, Zz := o.Zr[k], o.Zt[k], o.Zz[k]
	Zrr, Zrt, Zrz, Ztt, Ztz, Zzz := o.Zrr[k], o.Zrt[k], o.Zrz[k], o.Ztt[k], o.Ztz[k], o.Zzz[k]
	Lt, Lz, Ltt, Ltz, Lzz := o.Lt[k], o.Lz[k], o.Ltt[k], o.Ltz[k], o.Lzz[k]

	// jacobian √g = R·(R_ρ·Z_θ − R_θ·Z_ρ) and partials
	q := Rr*Zt - Rt*Zr
	qr := Rrr*Zt + Rr*Zrt - Rrt*Zr - Rt*Zrr
	qt := Rrt*Zt + Rr*Ztt - Rtt*Zr - Rt*Zrt
	qz := Rrz*Zt + Rr*Ztz - Rtz*Zr - Rt*Zrz
	sqg := R * q
	o.Sqg[k] = sqg
	o.Sqgr[k] = Rr*q + R*qr
	o.Sqgt[k] = Rt*q + R*qt
	o.Sqgz[k] = Rz*q + R*qz

	if math.Abs(sqg) < axisTol {
		o.OnAxis[k] = true
		return
	}

	// Ψ'(ρ)/(2π) and profiles
	C := st.PsiTotal * rho / math.Pi
	Cr := st.PsiTotal / math.Pi
	iota := st.Iota.F(rho, nil)
	diota := st.Iota.G(rho, nil)
	dpres := st.Pres.G(rho, nil) * o.Stk.PresRatio

	// contravariant field: B^θ = Ψ'(ι − λ_ζ)/(2π√g), B^ζ = Ψ'(1 + λ_θ)/(2π√g)
	nt := C * (iota - Lz)
	nz := C * (1.0 + Lt)
	Bt := nt / sqg
	Bz := nz / sqg
	o.Bt[k] = Bt
	o.Bz[k] = Bz

	// partials of the contravariant components (λ has no ρ dependence)
	BtR := (Cr*(iota-Lz) + C*diota - Bt*o.Sqgr[k]) / sqg
	BtT := (-C*Ltz - Bt*o.Sqgt[k]) / sqg
	BtZ := (-C*Lzz - Bt*o.Sqgz[k]) / sqg
	BzR := (Cr*(1.0+Lt) - Bz*o.Sqgr[k]) / sqg
	BzT := (C*Ltt - Bz*o.Sqgt[k]) / sqg
	BzZ := (C*Ltz - Bz*o.Sqgz[k]) / sqg

	// metric coefficients and the partials entering the curl
	grt := Rr*Rt + Zr*Zt
	grz := Rr*Rz + Zr*Zz
	gtt := Rt*Rt + Zt*Zt
	gtz := Rt*Rz + Zt*Zz
	gzz := Rz*Rz + Zz*Zz + R*R

	gttR := 2.0 * (Rt*Rrt + Zt*Zrt)
	gttZ := 2.0 * (Rt*Rtz + Zt*Ztz)
	gtzR := Rrt*Rz + Rt*Rrz + Zrt*Zz + Zt*Zrz
	gtzT := Rtt*Rz + Rt*Rtz + Ztt*Zz + Zt*Ztz
	gtzZ := Rtz*Rz + Rt*Rzz + Ztz*Zz + Zt*Zzz
	gzzR := 2.0 * (Rz*Rrz + Zz*Zrz + R*Rr)
	gzzT := 2.0 * (Rz*Rtz + Zz*Ztz + R*Rt)
	grtT := Rrt*Rt + Rr*Rtt + Zrt*Zt + Zr*Ztt
	grtZ := Rrz*Rt + Rr*Rtz + Zrz*Zt + Zr*Ztz
	grzT := Rrt*Rz + Rr*Rtz + Zrt*Zz + Zr*Ztz
	grzZ := Rrz*Rz + Rr*Rzz + Zrz*Zz + Zr*Zzz

	// covariant field partials via B_i = B^θ·g_θi + B^ζ·g_ζi
	BcovRT := BtT*grt + Bt*grtT + BzT*grz + Bz*grzT
	BcovRZ := BtZ*grt + Bt*grtZ + BzZ*grz + Bz*grzZ
	BcovTR := BtR*gtt + Bt*gttR + BzR*gtz + Bz*gtzR
	BcovTZ := BtZ*gtt + Bt*gttZ + BzZ*gtz + Bz*gtzZ
	BcovZR := BtR*gtz + Bt*gtzR + BzR*gzz + Bz*gzzR
	BcovZT := BtT*gtz + Bt*gtzT + BzT*gzz + Bz*gzzT

	// μ0·J = ∇×B/√g in contravariant components
	o.MJr[k] = (BcovZT - BcovTZ) / sqg
	o.MJt[k] = (BcovRZ - BcovZR) / sqg
	o.MJz[k] = (BcovTR - BcovRT) / sqg

	// force balance: F_ρ = √g(J^θB^ζ − J^ζB^θ) − p', F_β = √g·J^ρ
	o.Frho[k] = sqg*(o.MJt[k]*Bz-o.MJz[k]*Bt)/Mu0 - dpres
	o.Fbeta[k] = sqg * o.MJr[k] / Mu0

	// direction magnitudes from the dual-basis cross products
	ctz0, ctz1, ctz2 := -R*Zt, Zt*Rz-Rt*Zz, R*Rt // e_θ×e_ζ
	czr0, czr1, czr2 := R*Zr, Zz*Rr-Rz*Zr, -R*Rr // e_ζ×e_ρ
	asqg := math.Abs(sqg)
	o.GradRho[k] = math.Sqrt(ctz0*ctz0+ctz1*ctz1+ctz2*ctz2) / asqg
	gradTta2 := (czr0*czr0 + czr1*czr1 + czr2*czr2) / (sqg * sqg)
	gradTtaZta := czr1 / (sqg * R) // ∇θ·∇ζ, ∇ζ = φ̂/R
	gradZta2 := 1.0 / (R * R)
	b2 := Bz*Bz*gradTta2 - 2.0*Bt*Bz*gradTtaZta + Bt*Bt*gradZta2
	if b2 < 0 {
		b2 = 0
	}
	o.BetaMag[k] = math.Sqrt(b2)
}
