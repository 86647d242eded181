// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cones implements the three convex cones used by the augmented
// Lagrangian solver to express equality and inequality constraints:
// Zero (equality), Identity (dual of Zero) and NegativeOrthant
// (inequality c ≤ 0, self-dual). Cones are expressed as a tagged variant
// with a dispatch table, not an inheritance hierarchy: a Kind value
// travels with the constraint, never the static type.
package cones

import "github.com/cpmech/gosl/chk"

// Kind tags one of the three supported cones.
type Kind int

const (
	// Zero is the equality cone K = {0}; Π(v) = 0.
	Zero Kind = iota
	// Identity is the dual of Zero; Π(v) = v.
	Identity
	// NegativeOrthant is the inequality cone {v : v ≤ 0}, self-dual;
	// Π(v)_i = min(0, v_i).
	NegativeOrthant
)

// String returns a human-readable label, used in solver trace lines.
func (k Kind) String() string {
	switch k {
	case Zero:
		return "Zero"
	case Identity:
		return "Identity"
	case NegativeOrthant:
		return "NegativeOrthant"
	}
	return "Unknown"
}

// Dual returns the dual cone K* used by the AL solver for multiplier
// projections: Dual(Zero)=Identity, Dual(Identity)=Zero,
// Dual(NegativeOrthant)=NegativeOrthant (self-dual).
func (k Kind) Dual() Kind {
	switch k {
	case Zero:
		return Identity
	case Identity:
		return Zero
	case NegativeOrthant:
		return NegativeOrthant
	}
	chk.Panic("cones: unknown cone kind %d", int(k))
	return Zero
}

// Project computes Π_K(v) in place into out (len(out) == len(v)).
func Project(k Kind, v, out []float64) {
	switch k {
	case Zero:
		for i := range out {
			out[i] = 0
		}
	case Identity:
		copy(out, v)
	case NegativeOrthant:
		for i, vi := range v {
			if vi < 0 {
				out[i] = vi
			} else {
				out[i] = 0
			}
		}
	default:
		chk.Panic("cones: unknown cone kind %d", int(k))
	}
}

// ProjectionJacobian writes the Jacobian of Π_K at v into the p×p dense
// matrix out (p == len(v)).
func ProjectionJacobian(k Kind, v []float64, out [][]float64) {
	p := len(v)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			out[i][j] = 0
		}
	}
	switch k {
	case Zero:
		// J ≡ 0, already zeroed above.
	case Identity:
		for i := 0; i < p; i++ {
			out[i][i] = 1
		}
	case NegativeOrthant:
		for i, vi := range v {
			if vi <= 0 {
				out[i][i] = 1
			}
		}
	default:
		chk.Panic("cones: unknown cone kind %d", int(k))
	}
}

// ProjectionHessian writes the second-derivative contraction of Π_K at v
// with direction b into the p×p dense matrix out. All three cones used
// here have linear (Zero, Identity) or piecewise-linear
// (NegativeOrthant) projections, so the Hessian is identically zero for
// all of them; the function exists to complete the §4.2 contract and to
// keep the call site uniform across cone kinds.
func ProjectionHessian(k Kind, v, b []float64, out [][]float64) {
	p := len(v)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			out[i][j] = 0
		}
	}
}
