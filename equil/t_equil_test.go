// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/DarkStarStrix/DESC/basis"
)

func Test_equil01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil01. pack/unpack round trip and invariants")

	st := NewState(3, 1, 2, false, 1.0, NewPowerProfile(nil), NewPowerProfile([]float64{0.5}))
	if err := st.Check(); err != nil {
		tst.Errorf("Check failed:\n%v", err)
		return
	}
	io.Pforan("ndof = %v\n", st.Ndof())
	chk.IntAssert(st.Ndof(), len(st.CR)+len(st.CZ)+len(st.CL))

	rnd := rand.New(rand.NewSource(42))
	x := make([]float64, st.Ndof())
	for i := range x {
		x[i] = rnd.Float64() - 0.5
	}
	if err := st.Unpack(x); err != nil {
		tst.Errorf("Unpack failed:\n%v", err)
		return
	}
	chk.Array(tst, "pack∘unpack", 1e-17, st.Pack(), x)

	// length mismatch is reported
	if err := st.Unpack(x[1:]); err == nil {
		tst.Errorf("unpacking a short vector must fail")
	}
}

func Test_equil02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil02. backup/restore and deep copy")

	st := NewState(2, 0, 1, false, 1.0, NewPowerProfile(nil), NewPowerProfile([]float64{0.4}))
	st.CR[0] = 10.0
	st.Backup()
	cp := st.Copy()

	st.CR[0] = -1.0
	st.CZ[0] = 99.0
	st.Restore()
	chk.Float64(tst, "restored CR₀", 1e-17, st.CR[0], 10.0)
	chk.Float64(tst, "restored CZ₀", 1e-17, st.CZ[0], 0.0)

	cp.CR[0] = 123.0
	chk.Float64(tst, "copy is independent", 1e-17, st.CR[0], 10.0)
}

func Test_equil03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil03. resolution expansion preserves matching modes")

	st := NewState(2, 1, 3, false, 1.0, NewPowerProfile(nil), NewPowerProfile([]float64{0.4}))
	rnd := rand.New(rand.NewSource(7))
	for i := range st.CR {
		st.CR[i] = rnd.Float64()
	}
	ex := st.Expand(4, 2)
	if ex.RB.Nmodes() <= st.RB.Nmodes() {
		tst.Errorf("expansion must add modes")
		return
	}
	for i, md := range st.RB.Modes() {
		j := ex.RB.IndexOf(md.L, md.M, md.N)
		if j < 0 {
			tst.Errorf("mode %v lost in expansion", md)
			return
		}
		chk.Float64(tst, io.Sf("c%v", md), 1e-17, ex.CR[j], st.CR[i])
	}

	// shrinking discards the extra modes and keeps the rest
	sh := ex.Expand(2, 1)
	chk.Array(tst, "shrink recovers", 1e-17, sh.CR, st.CR)
}

func Test_equil04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil04. boundary-scaled initial guess")

	// circular boundary: R = 10 + cosθ, Z = -sinθ (m=-1 is the sin branch)
	bnd := &Boundary{NFP: 1, Modes: []BdryMode{
		{M: 0, N: 0, R: 10.0},
		{M: 1, N: 0, R: 1.0},
		{M: -1, N: 0, Z: -1.0},
	}}
	st := NewState(3, 0, 1, false, 1.0, NewPowerProfile(nil), NewPowerProfile([]float64{0.3}))
	if err := st.InitialGuess(bnd, 10.0, 0.0); err != nil {
		tst.Errorf("InitialGuess failed:\n%v", err)
		return
	}

	// edge values: every Zernike radial polynomial is one at ρ=1
	edgeR := func(tta float64) (res float64) {
		for i := range st.CR {
			res += st.CR[i] * st.RB.EvalMode(i, 1, tta, 0, basis.D000)
		}
		return
	}
	for _, tta := range []float64{0, 1.3, math.Pi, 5.1} {
		chk.Float64(tst, "R(1,θ)", 1e-13, edgeR(tta), 10.0+math.Cos(tta))
	}

	// axis value of the m=0 part
	i0 := st.RB.IndexOf(0, 0, 0)
	i2 := st.RB.IndexOf(2, 0, 0)
	chk.Float64(tst, "R on axis", 1e-15, st.CR[i0]-st.CR[i2], 10.0)

	// profile callables
	chk.Float64(tst, "ι(0.5)", 1e-15, st.Iota.F(0.5, nil), 0.3)
}

func Test_equil05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil05. power-series and scaled profiles")

	p := NewPowerProfile([]float64{1, 0, -1}) // 1 - ρ²
	chk.Float64(tst, "p(0)", 1e-15, p.F(0, nil), 1.0)
	chk.Float64(tst, "p(1)", 1e-15, p.F(1, nil), 0.0)
	chk.Float64(tst, "p'(0.5)", 1e-15, p.G(0.5, nil), -1.0)
	chk.Float64(tst, "p''(0.5)", 1e-15, p.H(0.5, nil), -2.0)

	s := &ScaledProfile{Ref: p, Ratio: 0.5}
	chk.Float64(tst, "½p(0)", 1e-15, s.F(0, nil), 0.5)
	chk.Float64(tst, "½p'(0.5)", 1e-15, s.G(0.5, nil), -0.5)

	var q PowerProfile
	err := q.Init(dbf.Params{
		&dbf.P{N: "c0", V: 2.0},
		&dbf.P{N: "c2", V: -2.0},
	})
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Float64(tst, "q(1)", 1e-15, q.F(1, nil), 0.0)
}
