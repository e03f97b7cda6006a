// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements a damped Newton iteration for overdetermined
// nonlinear least-squares systems, with a finite-difference Jacobian and a
// truncated-SVD linear step.
package solver

// Status indicates the state of a nonlinear solve
type Status int

const (
	Initialized Status = iota // no iteration run yet
	Iterating                 // solve in progress
	Converged                 // residual norm below tolerance
	Diverged                  // residual norm grew past the divergence limit
	MaxIters                  // iteration limit hit before convergence
	Stopped                   // cancelled by the caller
)

// String returns a human-readable status name
func (o Status) String() string {
	switch o {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxIters:
		return "max-iterations"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Done tells whether the solve has finished, for whatever reason
func (o Status) Done() bool {
	return o == Converged || o == Diverged || o == MaxIters || o == Stopped
}
