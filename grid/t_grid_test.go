// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. linear grid: counts and weight sum")

	g, err := NewLinearGrid(4, 3, 2, 5)
	if err != nil {
		tst.Errorf("NewLinearGrid failed:\n%v", err)
		return
	}
	chk.IntAssert(g.Nnodes(), 4*7*5)

	sum := 0.0
	for _, w := range g.W {
		sum += w
	}
	vol := 4.0 * math.Pi * math.Pi / 5.0
	io.Pforan("Σw = %v  (2π)²/NFP = %v\n", sum, vol)
	chk.Float64(tst, "Σw", 1e-13, sum, vol)

	if g.HasAxis() {
		tst.Errorf("midpoint linear grid must not contain the axis")
	}
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. concentric grid: spacing and weight sum")

	for _, spacing := range []string{SpacingLinear, SpacingCheb1, SpacingCheb2} {
		g, err := NewConcentricGrid(5, 2, 3, spacing)
		if err != nil {
			tst.Errorf("NewConcentricGrid failed:\n%v", err)
			return
		}
		nn := 0
		for i := 0; i < 5; i++ {
			nn += (2*i + 3) * 5
		}
		chk.IntAssert(g.Nnodes(), nn)
		sum := 0.0
		for _, w := range g.W {
			sum += w
		}
		io.Pforan("%-8s Σw = %v\n", spacing, sum)
		chk.Float64(tst, "Σw", 1e-13, sum, 4.0*math.Pi*math.Pi/3.0)
		for _, r := range g.Rho {
			if r <= 0 || r > 1 {
				tst.Errorf("radius ρ=%g out of (0,1]", r)
				return
			}
		}
	}

	// unknown spacing
	_, err := NewConcentricGrid(5, 2, 3, "geometric")
	if err == nil {
		tst.Errorf("unknown spacing must fail")
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. quadrature grid integrates polynomials exactly")

	g, err := NewQuadratureGrid(6, 2, 0, 1)
	if err != nil {
		tst.Errorf("NewQuadratureGrid failed:\n%v", err)
		return
	}

	// ∫ρ⁷ dρ dθ dζ over [0,1]×[0,2π]² = (2π)²/8
	sum := 0.0
	for k := 0; k < g.Nnodes(); k++ {
		sum += g.W[k] * math.Pow(g.Rho[k], 7)
	}
	chk.Float64(tst, "∫ρ⁷", 1e-12, sum, 4.0*math.Pi*math.Pi/8.0)
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. ordering stability and axis nodes")

	rhos := []float64{0, 0.5, 1}
	a, err := NewLinearGridRho(rhos, 1, 0, 1)
	if err != nil {
		tst.Errorf("NewLinearGridRho failed:\n%v", err)
		return
	}
	b, _ := NewLinearGridRho(rhos, 1, 0, 1)
	chk.Array(tst, "ρ(a)==ρ(b)", 1e-17, a.Rho, b.Rho)
	chk.Array(tst, "θ(a)==θ(b)", 1e-17, a.Tta, b.Tta)
	if !a.HasAxis() {
		tst.Errorf("grid must report the ρ=0 node")
	}
}
