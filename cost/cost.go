// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cost implements the polymorphic CostFunction contract and its
// LQR specialization, following the teacher's Model/State split: a
// CostFunction plays the role msolid's Small models play for stresses,
// except it returns a scalar plus 1st/2nd derivatives instead of a
// stress update.
package cost

import "github.com/cpmech/gosl/la"

// Function is the per-knot stage/terminal cost contract of §3: a scalar
// ℓ(x,u) with analytic gradient and Hessian.
type Function interface {
	StateDimension() int
	ControlDimension() int

	// Evaluate returns ℓ(x,u).
	Evaluate(x, u []float64) float64

	// Gradient writes ∇ₓℓ into gx (length n) and ∇ᵤℓ into gu (length m).
	Gradient(x, u []float64, gx, gu []float64)

	// Hessian writes Hxx (n×n), Huu (m×m) and Hxu (n×m) into the
	// supplied buffers.
	Hessian(x, u []float64, Hxx, Huu, Hxu [][]float64)

	// IsQuadratic reports whether ℓ is exactly quadratic (constant
	// Hessian). The iLQR solver does not read it: it re-evaluates every
	// Hessian at each iteration.
	IsQuadratic() bool

	// IsBlockDiagonal reports whether Hxu ≡ 0.
	IsBlockDiagonal() bool

	// IsTerminal reports whether this cost ignores u (Huu ≡ 0, u treated as 0).
	IsTerminal() bool
}

// LQR implements the quadratic stage/terminal cost of §3:
//
//	ℓ(x,u) = ½xᵀQx + ½uᵀRu + xᵀHu + qᵀx + rᵀu + c
//
// Terminal LQR costs are built with NewLQRTerminal, which fixes R, H and
// r to zero-sized/zero-valued and marks IsTerminal() true.
type LQR struct {
	n, m     int
	Q, R, H  [][]float64 // n×n, m×m, n×m
	q, r     []float64   // n, m
	c        float64
	terminal bool
}

// NewLQR builds a stage LQR cost. Q, R, H, q, r must have the dimensions
// implied by n, m; the caller owns the slices and LQR does not copy
// them, matching the teacher's shared-handle ownership model (§3).
func NewLQR(n, m int, Q, R, H [][]float64, q, r []float64, c float64) *LQR {
	return &LQR{n: n, m: m, Q: Q, R: R, H: H, q: q, r: r, c: c}
}

// NewLQRTerminal builds a terminal LQR cost ℓ_N(x) = ½xᵀQx + qᵀx + c,
// with u ≡ 0 and Huu ≡ 0 per §3.
func NewLQRTerminal(n int, Q [][]float64, q []float64, c float64) *LQR {
	return &LQR{n: n, m: 0, Q: Q, q: q, c: c, terminal: true}
}

// StateDimension returns n.
func (o *LQR) StateDimension() int { return o.n }

// ControlDimension returns m (0 for a terminal cost).
func (o *LQR) ControlDimension() int { return o.m }

// IsQuadratic is always true for LQR.
func (o *LQR) IsQuadratic() bool { return true }

// IsBlockDiagonal reports whether H ≡ 0 (no x-u cross term).
func (o *LQR) IsBlockDiagonal() bool { return o.terminal || o.H == nil }

// IsTerminal reports whether this is a terminal cost.
func (o *LQR) IsTerminal() bool { return o.terminal }

// Evaluate returns ℓ(x,u).
func (o *LQR) Evaluate(x, u []float64) float64 {
	Qx := make([]float64, o.n)
	la.MatVecMul(Qx, 1, o.Q, x)
	val := 0.5*la.VecDot(x, Qx) + la.VecDot(o.q, x) + o.c
	if o.terminal {
		return val
	}
	Ru := make([]float64, o.m)
	la.MatVecMul(Ru, 1, o.R, u)
	val += 0.5*la.VecDot(u, Ru) + la.VecDot(o.r, u)
	if o.H != nil {
		Hu := make([]float64, o.n)
		la.MatVecMul(Hu, 1, o.H, u)
		val += la.VecDot(x, Hu)
	}
	return val
}

// Gradient writes ∇ₓℓ = Qx + Hu + q and ∇ᵤℓ = Ru + Hᵀx + r.
func (o *LQR) Gradient(x, u []float64, gx, gu []float64) {
	la.MatVecMul(gx, 1, o.Q, x)
	la.VecAdd2(gx, 1, gx, 1, o.q)
	if o.terminal {
		return
	}
	la.MatVecMul(gu, 1, o.R, u)
	la.VecAdd2(gu, 1, gu, 1, o.r)
	if o.H != nil {
		Htx := make([]float64, o.m)
		la.MatTrVecMulAdd(Htx, 1, o.H, x)
		la.VecAdd2(gu, 1, gu, 1, Htx)
		Hu := make([]float64, o.n)
		la.MatVecMul(Hu, 1, o.H, u)
		la.VecAdd2(gx, 1, gx, 1, Hu)
	}
}

// Hessian writes the constant Hxx=Q, Huu=R, Hxu=H.
func (o *LQR) Hessian(x, u []float64, Hxx, Huu, Hxu [][]float64) {
	la.MatCopy(Hxx, 1, o.Q)
	if o.terminal {
		return
	}
	la.MatCopy(Huu, 1, o.R)
	if o.H != nil {
		la.MatCopy(Hxu, 1, o.H)
	} else {
		for i := range Hxu {
			for j := range Hxu[i] {
				Hxu[i][j] = 0
			}
		}
	}
}
