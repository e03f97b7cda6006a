// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_lsq01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lsq01. well-posed square solve")

	A := la.NewMatrixDeep2([][]float64{
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 4},
	})
	b := []float64{2, 6, 12}
	x, rank, err := Solve(A, b, 1e-12)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.IntAssert(rank, 3)
	chk.Array(tst, "x", 1e-13, x, []float64{1, 2, 3})
}

func Test_lsq02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lsq02. overdetermined least squares")

	// fit a line through (0,1), (1,3), (2,5): y = 1 + 2t
	A := la.NewMatrixDeep2([][]float64{
		{1, 0},
		{1, 1},
		{1, 2},
	})
	b := []float64{1, 3, 5}
	x, _, err := Solve(A, b, 1e-12)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-12, x, []float64{1, 2})
}

func Test_lsq03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lsq03. rank-deficient matrix regularizes deterministically")

	// second column is a copy of the first
	A := la.NewMatrixDeep2([][]float64{
		{1, 1},
		{2, 2},
	})
	b := []float64{1, 2}
	x1, rank, err := Solve(A, b, 1e-10)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.IntAssert(rank, 1)
	x2, _, _ := Solve(A, b, 1e-10)
	chk.Array(tst, "deterministic", 1e-15, x1, x2)
	// minimum-norm solution splits the coefficient evenly
	chk.Array(tst, "min-norm x", 1e-12, x1, []float64{0.5, 0.5})

	// zero matrix is singular beyond tolerance
	Z := la.NewMatrixDeep2([][]float64{{0, 0}, {0, 0}})
	_, _, err = Solve(Z, b, 1e-10)
	if !IsSingular(err) {
		tst.Errorf("expected SingularError, got: %v", err)
		return
	}
	io.Pforan("singular error: %v\n", err)
}
