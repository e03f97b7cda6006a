// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/DarkStarStrix/DESC/inp"
	"github.com/DarkStarStrix/DESC/lsq"
)

// Report collects the outcome of one nonlinear solve
type Report struct {
	Status Status    // final state
	It     int       // number of Newton iterations taken
	Nfeval int       // number of residual evaluations
	Norms  []float64 // ‖fb‖ history, Norms[0] is the initial norm
	Cond   float64   // condition estimate of the last Jacobian factorization
}

// Newton solves fb(x) = 0 in the least-squares sense. The Jacobian is
// assembled by finite differences and each step solves the regularized
// normal problem through a truncated SVD, so rank-deficient Jacobians
// produce minimum-norm steps instead of failures.
type Newton struct {

	// input
	Sys   System          // the residual map
	Cf    *inp.SolverData // tunables
	StopF func() bool     // optional cancellation callback, polled once per iteration

	// auxiliary
	fb, fb1, dx, x1 []float64
	jac             *la.Matrix
}

// NewNewton returns a solver ready for Run
func NewNewton(sys System, cf *inp.SolverData) *Newton {
	ndof, nres := sys.Ndof(), sys.Nres()
	return &Newton{
		Sys: sys,
		Cf:  cf,
		fb:  make([]float64, nres),
		fb1: make([]float64, nres),
		dx:  make([]float64, ndof),
		x1:  make([]float64, ndof),
		jac: la.NewMatrix(nres, ndof),
	}
}

// Run iterates from x, overwriting it with the solution estimate. The
// returned report is valid for every status; err is non-nil only for
// singular Jacobians (which also carry a Diverged status) and residual
// evaluation failures.
func (o *Newton) Run(x []float64) (rep Report, err error) {
	ndof := o.Sys.Ndof()
	if len(x) != ndof {
		return rep, chk.Err("newton: len(x)=%d differs from ndof=%d", len(x), ndof)
	}

	// initial residual
	if err = o.Sys.Resid(o.fb, x); err != nil {
		return
	}
	rep.Nfeval = 1
	largFb0 := la.Vector(o.fb).Norm()
	rep.Norms = append(rep.Norms, largFb0)
	if largFb0 < o.Cf.FbMin {
		rep.Status = Converged
		return
	}
	if o.Cf.ShowR {
		io.Pf("%6s%12s%12s%12s\n", "it", "‖fb‖", "‖fb‖/‖fb0‖", "α")
		io.Pf("%6d%12.3e%12.3e%12s\n", 0, largFb0, 1.0, "-")
	}

	rep.Status = Iterating
	largFb := largFb0
	for it := 1; it <= o.Cf.NmaxIt; it++ {
		rep.It = it

		if o.StopF != nil && o.StopF() {
			rep.Status = Stopped
			return
		}

		// assemble and factorize
		var nfe int
		nfe, err = Jacobian(o.jac, o.Sys, x, o.fb, o.Cf.FdEps, o.Cf.Central)
		if err != nil {
			return
		}
		rep.Nfeval += nfe
		// a failed factorization counts as divergence so continuation can
		// halve the parameter increment; the error type is kept intact so
		// callers can detect singularity
		fac, ferr := lsq.NewFactor(o.jac)
		if ferr != nil {
			rep.Status = Diverged
			return rep, ferr
		}
		rep.Cond = fac.Cond()

		// step solves J·dx = −fb
		for i := range o.fb1 {
			o.fb1[i] = -o.fb[i]
		}
		dx, _, serr := fac.Solve(o.fb1, o.Cf.RegTol)
		if serr != nil {
			rep.Status = Diverged
			return rep, serr
		}
		copy(o.dx, dx)

		// a vanished step means x is a stationary point of the least-squares
		// residual: the attainable minimum has been reached
		if la.Vector(o.dx).Norm() <= o.Cf.DxMin*(1.0+la.Vector(x).Norm()) {
			rep.Status = Converged
			return
		}

		// backtracking line search: only strictly reducing trials are taken
		alpha := 1.0
		bestAlpha := 0.0
		fullNorm := math.Inf(1)
		accepted := false
		for k := 0; k <= o.Cf.NbkMax; k++ {
			for i := 0; i < ndof; i++ {
				o.x1[i] = x[i] + alpha*o.dx[i]
			}
			if err = o.Sys.Resid(o.fb1, o.x1); err != nil {
				return
			}
			rep.Nfeval++
			norm1 := la.Vector(o.fb1).Norm()
			if k == 0 {
				fullNorm = norm1
			}
			if norm1 <= (1.0-o.Cf.BkAccept*alpha)*largFb {
				bestAlpha = alpha
				accepted = true
				break
			}
			alpha *= o.Cf.BkFac
		}
		if !accepted {
			if fullNorm < largFb {
				// the full step still reduces the residual, just below the
				// acceptance margin: the attainable floor has been reached
				bestAlpha = 1.0
				rep.Status = Converged
			} else {
				// no trial reduces the residual: the step is rejected and
				// the iteration stalls
				rep.Status = Diverged
				return
			}
		}
		prevFb := largFb
		for i := 0; i < ndof; i++ {
			x[i] += bestAlpha * o.dx[i]
		}
		if err = o.Sys.Resid(o.fb, x); err != nil {
			return
		}
		rep.Nfeval++
		largFb = la.Vector(o.fb).Norm()
		rep.Norms = append(rep.Norms, largFb)

		if o.Cf.ShowR {
			io.Pf("%6d%12.3e%12.3e%12.3e\n", it, largFb, largFb/largFb0, bestAlpha)
		}
		if rep.Status == Converged {
			return
		}

		// convergence and divergence checks
		if largFb < o.Cf.FbMin || largFb <= o.Cf.FbTol*largFb0 {
			rep.Status = Converged
			return
		}
		if bestAlpha == 1.0 && prevFb-largFb <= o.Cf.StgTol*prevFb {
			// full steps no longer make meaningful progress: the residual
			// has stagnated at its least-squares floor
			rep.Status = Converged
			return
		}
		if largFb > o.Cf.DvgMax*largFb0 {
			rep.Status = Diverged
			return
		}
	}
	rep.Status = MaxIters
	return
}
