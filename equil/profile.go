// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerProfile is a power-series profile f(ρ) = Σ_k C[k]·ρ^k implementing
// dbf.T, for pressure and rotational-transform inputs given as
// already-decoded coefficient vectors
type PowerProfile struct {
	C []float64
}

// NewPowerProfile returns a power-series profile with the given coefficients
func NewPowerProfile(coefs []float64) *PowerProfile {
	if len(coefs) == 0 {
		coefs = []float64{0}
	}
	return &PowerProfile{C: coefs}
}

// Init initialises the profile from parameters named c0, c1, ...
func (o *PowerProfile) Init(prms dbf.Params) (err error) {
	nmax := -1
	for _, p := range prms {
		if len(p.N) < 2 || p.N[0] != 'c' {
			return chk.Err("power profile: unknown parameter %q", p.N)
		}
		k := 0
		for _, ch := range p.N[1:] {
			if ch < '0' || ch > '9' {
				return chk.Err("power profile: unknown parameter %q", p.N)
			}
			k = 10*k + int(ch-'0')
		}
		if k > nmax {
			nmax = k
		}
	}
	o.C = make([]float64, nmax+1)
	for _, p := range prms {
		k := 0
		for _, ch := range p.N[1:] {
			k = 10*k + int(ch-'0')
		}
		o.C[k] = p.V
	}
	return
}

// F returns f(t)
func (o *PowerProfile) F(t float64, x []float64) (res float64) {
	for k := len(o.C) - 1; k >= 0; k-- {
		res = res*t + o.C[k]
	}
	return
}

// G returns df/dt
func (o *PowerProfile) G(t float64, x []float64) (res float64) {
	for k := len(o.C) - 1; k >= 1; k-- {
		res = res*t + float64(k)*o.C[k]
	}
	return
}

// H returns d²f/dt²
func (o *PowerProfile) H(t float64, x []float64) (res float64) {
	for k := len(o.C) - 1; k >= 2; k-- {
		res = res*t + float64(k*(k-1))*o.C[k]
	}
	return
}

// Grad returns the (empty) gradient wrt x
func (o *PowerProfile) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

// ScaledProfile wraps a profile and multiplies its value and derivatives by
// a constant ratio; continuation uses it to ramp the pressure
type ScaledProfile struct {
	Ref   dbf.T
	Ratio float64
}

func (o *ScaledProfile) Init(prms dbf.Params) error { return o.Ref.Init(prms) }

func (o *ScaledProfile) F(t float64, x []float64) float64 { return o.Ratio * o.Ref.F(t, x) }
func (o *ScaledProfile) G(t float64, x []float64) float64 { return o.Ratio * o.Ref.G(t, x) }
func (o *ScaledProfile) H(t float64, x []float64) float64 { return o.Ratio * o.Ref.H(t, x) }

func (o *ScaledProfile) Grad(v []float64, t float64, x []float64) {
	o.Ref.Grad(v, t, x)
	for i := range v {
		v[i] *= o.Ratio
	}
}
