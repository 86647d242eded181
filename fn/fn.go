// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fn defines the contract shared by every (x,u) ↦ ℝⁿ map used in
// the trajectory optimization core: dynamics, costs and constraints all
// expose analytic derivatives through this interface.
package fn

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// Base defines the contract for any (x,u) ↦ ℝⁿ map with an analytic
// Jacobian. Evaluate and Jacobian write into caller-supplied buffers
// sized according to OutputDimension/StateDimension/ControlDimension so
// that solvers never allocate in the hot loop.
type Base interface {
	OutputDimension() int
	StateDimension() int
	ControlDimension() int

	// Evaluate writes f(x,u) into out. len(out) must equal OutputDimension().
	Evaluate(x, u, out []float64)

	// Jacobian writes ∂f/∂[x,u] into out, a (OutputDimension x (StateDimension+ControlDimension))
	// row-major dense matrix. Columns [0,n) are ∂f/∂x, columns [n,n+m) are ∂f/∂u.
	Jacobian(x, u []float64, out [][]float64)

	// HasHessian reports whether Hessian is implemented; many models are
	// first-order only (e.g. linear dynamics, quadratic costs consumed
	// through CostFunction.Hessian directly) and return false here.
	HasHessian() bool

	// Hessian contracts the second derivative tensor with b ∈ ℝ^OutputDimension,
	// writing the ((n+m) x (n+m)) result into out. Only called when HasHessian() is true.
	Hessian(x, u, b []float64, out [][]float64)
}

// CheckDimensions panics with a DimensionMismatch error if any of the
// supplied buffers do not match the dimensions declared by b. This is a
// programmer error (a caller wiring bug), not a recoverable configuration
// fault, so it panics rather than returning an error.
func CheckDimensions(b Base, x, u []float64) {
	n, m, p := b.StateDimension(), b.ControlDimension(), b.OutputDimension()
	if len(x) != n {
		chk.Panic("DimensionMismatch: state vector has length %d; expected %d", len(x), n)
	}
	if len(u) != m && len(u) != 0 {
		chk.Panic("DimensionMismatch: control vector has length %d; expected %d or 0", len(u), m)
	}
	_ = p
}

// CheckJacobian compares the analytic Jacobian returned by b.Jacobian at
// (x,u) against a central finite-difference estimate using step eps, and
// returns the maximum infinity-norm error over all entries. It is the
// implementation of §4.1's "CheckJacobian" utility and grounds Testable
// Property 4/5 (finite-difference round-trip) for any Base implementer.
func CheckJacobian(b Base, x, u []float64, eps float64) (maxErr float64) {
	n, m, p := b.StateDimension(), b.ControlDimension(), b.OutputDimension()
	CheckDimensions(b, x, u)

	ana := make([][]float64, p)
	for i := range ana {
		ana[i] = make([]float64, n+m)
	}
	b.Jacobian(x, u, ana)

	out := make([]float64, p)
	eval := func(xx, uu []float64, row int) float64 {
		b.Evaluate(xx, uu, out)
		return out[row]
	}

	xw := append([]float64(nil), x...)
	uw := append([]float64(nil), u...)

	for row := 0; row < p; row++ {
		for j := 0; j < n; j++ {
			dnum := num.DerivCen5(xw[j], eps, func(xj float64) float64 {
				old := xw[j]
				xw[j] = xj
				v := eval(xw, uw, row)
				xw[j] = old
				return v
			})
			d := abs(dnum - ana[row][j])
			if d > maxErr {
				maxErr = d
			}
		}
		for j := 0; j < m; j++ {
			dnum := num.DerivCen5(uw[j], eps, func(uj float64) float64 {
				old := uw[j]
				uw[j] = uj
				v := eval(xw, uw, row)
				uw[j] = old
				return v
			})
			d := abs(dnum - ana[row][n+j])
			if d > maxErr {
				maxErr = d
			}
		}
	}
	return
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
