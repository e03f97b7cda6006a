// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the decoded input data defining one equilibrium
// problem: resolution ladder, boundary shape, profile coefficients and solver
// tunables. The core never parses equilibrium file formats; this is the
// already-decoded form the external I/O layer hands over.
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/DarkStarStrix/DESC/equil"
)

// SolverData holds the nonlinear solver tunables. All of these are
// deliberately configurable; the defaults below are starting points, not
// physics.
type SolverData struct {

	// newton iterations
	NmaxIt int     `json:"nmaxit"` // max number of iterations
	FbTol  float64 `json:"fbtol"`  // relative tolerance on ‖fb‖/‖fb₀‖
	FbMin  float64 `json:"fbmin"`  // absolute convergence floor on ‖fb‖
	DxMin  float64 `json:"dxmin"`  // converged when ‖δx‖ ≤ DxMin·(1+‖x‖): the step has vanished
	StgTol float64 `json:"stgtol"` // converged when a full accepted step improves ‖fb‖ by less than StgTol·‖fb‖

	// line search
	BkAccept float64 `json:"bkaccept"` // accept fraction: step taken when ‖fb‖ drops below (1−BkAccept)·previous
	BkFac    float64 `json:"bkfac"`    // backtracking factor applied to the step length
	NbkMax   int     `json:"nbkmax"`   // max number of backtracks per iteration

	// divergence control
	DvgMax float64 `json:"dvgmax"` // diverged when ‖fb‖ exceeds DvgMax·‖fb₀‖

	// regularized linear solve
	RegTol float64 `json:"regtol"` // relative singular-value cutoff for the Jacobian solve

	// finite-difference jacobian
	FdEps   float64 `json:"fdeps"`   // forward-difference step scale
	Central bool    `json:"central"` // use central differences (twice the cost)

	// continuation
	NhalfMax  int  `json:"nhalfmax"`  // max parameter-increment halvings per continuation step
	WarmStart bool `json:"warmstart"` // perturb the state to warm-start each continuation step
	Second    bool `json:"second"`    // include the second-order perturbation term

	// reporting
	ShowR bool `json:"showr"` // print the iteration table
}

// SetDefaults fills zero-valued tunables
func (o *SolverData) SetDefaults() {
	if o.NmaxIt == 0 {
		o.NmaxIt = 30
	}
	if o.FbTol == 0 {
		o.FbTol = 1e-6
	}
	if o.FbMin == 0 {
		o.FbMin = 1e-10
	}
	if o.DxMin == 0 {
		o.DxMin = 1e-9
	}
	if o.StgTol == 0 {
		o.StgTol = 1e-3
	}
	if o.BkAccept == 0 {
		o.BkAccept = 1e-4
	}
	if o.BkFac == 0 {
		o.BkFac = 0.5
	}
	if o.NbkMax == 0 {
		o.NbkMax = 8
	}
	if o.DvgMax == 0 {
		o.DvgMax = 1e4
	}
	if o.RegTol == 0 {
		o.RegTol = 1e-6
	}
	if o.FdEps == 0 {
		o.FdEps = 1e-7
	}
	if o.NhalfMax == 0 {
		o.NhalfMax = 4
	}
}

// Rung is one step of the continuation ladder: a spectral/grid resolution
// and the continuation parameter targets to solve at
type Rung struct {
	M         int     `json:"m"`         // spectral resolution (poloidal/radial)
	N         int     `json:"n"`         // spectral resolution (toroidal)
	GridM     int     `json:"gridm"`     // node resolution (0 means M+1)
	GridN     int     `json:"gridn"`     // node resolution (0 means N)
	BdryRatio float64 `json:"bdryratio"` // scale on non-axisymmetric boundary modes
	PresRatio float64 `json:"presratio"` // scale on the pressure profile
	FbTol     float64 `json:"fbtol"`     // per-rung override (0 means SolverData.FbTol)
	NmaxIt    int     `json:"nmaxit"`    // per-rung override (0 means SolverData.NmaxIt)
}

// Config holds the full decoded problem definition
type Config struct {

	// global information
	Desc string `json:"desc"` // description of the problem

	// physics
	NFP      int       `json:"nfp"`      // number of field periods
	Sym      bool      `json:"sym"`      // enforce stellarator symmetry
	PsiTotal float64   `json:"psitotal"` // total enclosed toroidal flux [Wb]
	PresCofs []float64 `json:"prescofs"` // pressure power-series coefficients [Pa]
	IotaCofs []float64 `json:"iotacofs"` // rotational-transform power-series coefficients

	// geometry
	Boundary equil.Boundary `json:"boundary"` // outer flux-surface shape
	RAxis    float64        `json:"raxis"`    // initial-guess magnetic axis R
	ZAxis    float64        `json:"zaxis"`    // initial-guess magnetic axis Z

	// grid
	GridKind    string `json:"gridkind"`    // "linear", "concentric" or "quadrature"
	GridSpacing string `json:"gridspacing"` // radial spacing for concentric grids

	// weights on residual blocks
	BdryWeight  float64 `json:"bdryweight"`  // boundary-fit weight (0 means 10)
	GaugeWeight float64 `json:"gaugeweight"` // λ gauge weight (0 means 1)

	// solver and continuation
	Solver SolverData `json:"solver"`
	Ladder []Rung     `json:"ladder"`
}

// SetDefaults fills zero-valued entries
func (o *Config) SetDefaults() {
	o.Solver.SetDefaults()
	if o.GridKind == "" {
		o.GridKind = "concentric"
	}
	if o.BdryWeight == 0 {
		o.BdryWeight = 10.0
	}
	if o.GaugeWeight == 0 {
		o.GaugeWeight = 1.0
	}
	for i := range o.Ladder {
		if o.Ladder[i].GridM == 0 {
			o.Ladder[i].GridM = o.Ladder[i].M + 1
		}
		if o.Ladder[i].GridN == 0 {
			o.Ladder[i].GridN = o.Ladder[i].N
		}
		if o.Ladder[i].FbTol == 0 {
			o.Ladder[i].FbTol = o.Solver.FbTol
		}
		if o.Ladder[i].NmaxIt == 0 {
			o.Ladder[i].NmaxIt = o.Solver.NmaxIt
		}
	}
}

// Validate checks the problem definition
func (o *Config) Validate() error {
	if o.NFP < 1 {
		return chk.Err("config: NFP must be ≥ 1 (got %d)", o.NFP)
	}
	if o.PsiTotal == 0 {
		return chk.Err("config: PsiTotal must be nonzero")
	}
	if len(o.Ladder) == 0 {
		return chk.Err("config: continuation ladder is empty")
	}
	if o.Boundary.NFP != o.NFP {
		return chk.Err("config: boundary NFP=%d does not match NFP=%d", o.Boundary.NFP, o.NFP)
	}
	if len(o.Boundary.Modes) == 0 {
		return chk.Err("config: boundary has no modes")
	}
	for i, r := range o.Ladder {
		if r.M < 1 || r.N < 0 {
			return chk.Err("config: ladder rung %d has invalid resolution M=%d N=%d", i, r.M, r.N)
		}
		if i > 0 && (r.M < o.Ladder[i-1].M || r.N < o.Ladder[i-1].N) {
			return chk.Err("config: ladder rung %d lowers the resolution", i)
		}
	}
	return nil
}

// Profiles returns the pressure and rotational-transform callables
func (o *Config) Profiles() (pres, iota *equil.PowerProfile) {
	return equil.NewPowerProfile(o.PresCofs), equil.NewPowerProfile(o.IotaCofs)
}

// ReadConfig reads a configuration from a JSON file, for external tooling;
// library callers construct Config directly
func ReadConfig(filename string) (o *Config, err error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, chk.Err("cannot read configuration file %q:\n%v", filename, err)
	}
	o = new(Config)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot decode configuration file %q:\n%v", filename, err)
	}
	o.SetDefaults()
	err = o.Validate()
	return
}
