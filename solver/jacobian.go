// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// System defines a nonlinear residual map fb(x) with nres ≥ ndof.
// Clone must return an independent copy safe for concurrent Resid calls;
// the Jacobian assembly evaluates columns in parallel.
type System interface {
	Ndof() int                     // number of unknowns
	Nres() int                     // number of residual entries
	Resid(fb, x []float64) error   // computes fb(x)
	Clone() System                 // deep copy for concurrent evaluation
}

// fdStep returns the forward-difference step for one unknown
func fdStep(eps, xi float64) float64 {
	return eps * math.Max(math.Abs(xi), 1.0)
}

// Jacobian fills J (nres × ndof) with finite differences of sys.Resid about
// x, where fx holds the residual already computed at x. Columns are evaluated
// concurrently on clones of sys. With central=true the reference residual fx
// is unused and twice as many evaluations are performed.
func Jacobian(J *la.Matrix, sys System, x, fx []float64, eps float64, central bool) (nfeval int, err error) {
	ndof, nres := sys.Ndof(), sys.Nres()
	if len(x) != ndof || len(fx) != nres {
		return 0, chk.Err("jacobian: dimensions mismatch: len(x)=%d ndof=%d len(fx)=%d nres=%d", len(x), ndof, len(fx), nres)
	}

	nw := runtime.GOMAXPROCS(0)
	if nw > ndof {
		nw = ndof
	}
	if nw < 1 {
		nw = 1
	}

	var wg sync.WaitGroup
	errs := make([]error, nw)
	cols := make(chan int, ndof)
	for j := 0; j < ndof; j++ {
		cols <- j
	}
	close(cols)

	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s := sys
			if nw > 1 {
				s = sys.Clone()
			}
			xw := make([]float64, ndof)
			fw := make([]float64, nres)
			var bw []float64
			if central {
				bw = make([]float64, nres)
			}
			for j := range cols {
				copy(xw, x)
				h := fdStep(eps, x[j])
				xw[j] = x[j] + h
				if e := s.Resid(fw, xw); e != nil {
					errs[w] = e
					return
				}
				if central {
					xw[j] = x[j] - h
					if e := s.Resid(bw, xw); e != nil {
						errs[w] = e
						return
					}
					for i := 0; i < nres; i++ {
						J.Set(i, j, (fw[i]-bw[i])/(2.0*h))
					}
				} else {
					for i := 0; i < nres; i++ {
						J.Set(i, j, (fw[i]-fx[i])/h)
					}
				}
				xw[j] = x[j]
			}
		}(w)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return 0, e
		}
	}
	nfeval = ndof
	if central {
		nfeval = 2 * ndof
	}
	return
}
