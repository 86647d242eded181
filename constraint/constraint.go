// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package constraint implements the polymorphic g(x,u) ∈ K wrapper used
// by Problem and the augmented Lagrangian solver. Constraints expose a
// fixed capability set (Evaluate, Jacobian, OutputDimension, Cone,
// Label) as an interface abstraction over concrete structs; the cone
// tag travels with the value, not the static type, matching the
// tagged-variant design of the cones package.
package constraint

import "github.com/rocketman123456/altro-go/cones"

// Constraint is the interface every concrete constraint (ControlBound,
// Goal, Circle, ...) implements.
type Constraint interface {
	// OutputDimension returns p, the dimension of c(x,u).
	OutputDimension() int
	// Evaluate writes c(x,u) into out (len(out) == OutputDimension()).
	Evaluate(x, u []float64, out []float64)
	// Jacobian writes ∂c/∂[x,u] into out, a p×(n+m) dense matrix.
	Jacobian(x, u []float64, out [][]float64)
	// Cone returns the cone K such that feasibility is c(x,u) ∈ K.
	Cone() cones.Kind
	// GetLabel returns a short human-readable name for diagnostics.
	GetLabel() string
}

// Violation computes the scalar infeasibility of a single constraint
// evaluation c with respect to its cone: 0 if c ∈ K, otherwise the
// infinity norm of the part of c outside K. For Zero (equality) this is
// max|c_i|; for NegativeOrthant (inequality c ≤ 0) this is max(0, c_i).
// Identity is never used as a primal constraint cone (it is the dual of
// Zero) but is handled for completeness.
func Violation(k cones.Kind, c []float64) (v float64) {
	switch k {
	case cones.Zero:
		for _, ci := range c {
			a := ci
			if a < 0 {
				a = -a
			}
			if a > v {
				v = a
			}
		}
	case cones.NegativeOrthant:
		for _, ci := range c {
			if ci > v {
				v = ci
			}
		}
	case cones.Identity:
		for _, ci := range c {
			a := ci
			if a < 0 {
				a = -a
			}
			if a > v {
				v = a
			}
		}
	}
	return
}
