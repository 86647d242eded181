// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package al

import (
	"github.com/cpmech/gosl/la"
	"github.com/rocketman123456/altro-go/cones"
	"github.com/rocketman123456/altro-go/cost"
)

// term is the per-constraint working state of an AugmentedCost: the
// scratch buffers needed to evaluate the conic penalty term and its
// derivatives once per (x,u) without allocating.
type term struct {
	mult *Multiplier
	p    int

	c, a, w, diff, gradc []float64
	Jproj                [][]float64 // p×p
	Hcc                  [][]float64 // p×p
	jac                  [][]float64 // p×(n+m)
}

func newTerm(mult *Multiplier, n, m int) *term {
	p := mult.Con.OutputDimension()
	return &term{
		mult:  mult,
		p:     p,
		c:     make([]float64, p),
		a:     make([]float64, p),
		w:     make([]float64, p),
		diff:  make([]float64, p),
		gradc: make([]float64, p),
		Jproj: la.MatAlloc(p, p),
		Hcc:   la.MatAlloc(p, p),
		jac:   la.MatAlloc(p, n+m),
	}
}

// AugmentedCost wraps a base CostFunction with the conic augmented
// Lagrangian penalty terms of §4.5:
//
//	ℓ̃(x,u) = ℓ(x,u) + Σᵢ ( λᵢᵀcᵢ + (μᵢ/2) ‖Π_Kᵢ*(cᵢ+λᵢ/μᵢ) − λᵢ/μᵢ‖² )
//
// It holds a handle to the original cost plus the (λ,μ) state and
// constraint list, per the design note that AL wrapping never mutates
// the original Problem or its costs.
type AugmentedCost struct {
	base cost.Function
	n, m int

	terms []*term

	// scratch for propagating a term's p×p curvature back to (x,u)
	tmpXX [][]float64
	tmpUU [][]float64
	tmpXU [][]float64
}

// NewAugmentedCost builds the wrapped cost for one knot's base cost and
// its registered multipliers.
func NewAugmentedCost(base cost.Function, n, m int, mults []*Multiplier) *AugmentedCost {
	o := &AugmentedCost{base: base, n: n, m: m}
	for _, mult := range mults {
		o.terms = append(o.terms, newTerm(mult, n, m))
	}
	o.tmpXX = la.MatAlloc(n, n)
	if m > 0 {
		o.tmpUU = la.MatAlloc(m, m)
		o.tmpXU = la.MatAlloc(n, m)
	}
	return o
}

func (o *AugmentedCost) StateDimension() int   { return o.n }
func (o *AugmentedCost) ControlDimension() int { return o.m }
func (o *AugmentedCost) IsQuadratic() bool     { return false }
func (o *AugmentedCost) IsBlockDiagonal() bool { return false }
func (o *AugmentedCost) IsTerminal() bool      { return o.base.IsTerminal() }

// splitJac returns views into the p×(n+m) jac as its ∂/∂x (p×n) and
// ∂/∂u (p×m) blocks, without copying.
func splitJac(jac [][]float64, n, m int) (dx, du [][]float64) {
	dx = make([][]float64, len(jac))
	du = make([][]float64, len(jac))
	for i := range jac {
		dx[i] = jac[i][:n]
		du[i] = jac[i][n : n+m]
	}
	return
}

// evalTerm computes t.c, t.a, t.w, t.diff and returns the scalar penalty
// value λᵀc + (μ/2)‖w-λ/μ‖².
func evalTerm(t *term, x, u []float64) float64 {
	mult := t.mult
	mult.Con.Evaluate(x, u, t.c)
	for i := 0; i < t.p; i++ {
		t.a[i] = t.c[i] + mult.Lambda[i]/mult.Mu
	}
	cones.Project(mult.Con.Cone().Dual(), t.a, t.w)
	var quad float64
	var lin float64
	for i := 0; i < t.p; i++ {
		t.diff[i] = t.w[i] - mult.Lambda[i]/mult.Mu
		quad += t.diff[i] * t.diff[i]
		lin += mult.Lambda[i] * t.c[i]
	}
	return lin + 0.5*mult.Mu*quad
}

// Evaluate returns ℓ̃(x,u).
func (o *AugmentedCost) Evaluate(x, u []float64) float64 {
	val := o.base.Evaluate(x, u)
	for _, t := range o.terms {
		val += evalTerm(t, x, u)
	}
	return val
}

// Gradient writes ∇ₓℓ̃ into gx and ∇ᵤℓ̃ into gu.
func (o *AugmentedCost) Gradient(x, u []float64, gx, gu []float64) {
	o.base.Gradient(x, u, gx, gu)
	for _, t := range o.terms {
		evalTerm(t, x, u)
		mult := t.mult
		cones.ProjectionJacobian(mult.Con.Cone().Dual(), t.a, t.Jproj)

		// gradc = λ + μ·Jproj^T·diff
		copy(t.gradc, mult.Lambda)
		la.MatTrVecMulAdd(t.gradc, mult.Mu, t.Jproj, t.diff)

		mult.Con.Jacobian(x, u, t.jac)
		Jx, Ju := splitJac(t.jac, o.n, o.m)
		la.MatTrVecMulAdd(gx, 1, Jx, t.gradc)
		if o.m > 0 {
			la.MatTrVecMulAdd(gu, 1, Ju, t.gradc)
		}
	}
}

// Hessian writes the Gauss-Newton approximation of ∇²ℓ̃. All three cone
// kinds of §4.2 have a piecewise-constant projection Jacobian, so
// ProjectionHessian ≡ 0 and no cone curvature is lost. The second
// derivatives of the constraint functions themselves are not included,
// so the result is exact (almost everywhere) only for constraints that
// are linear in (x,u), such as ControlBound and Goal; for Circle it is
// an approximation.
func (o *AugmentedCost) Hessian(x, u []float64, Hxx, Huu, Hxu [][]float64) {
	o.base.Hessian(x, u, Hxx, Huu, Hxu)
	for _, t := range o.terms {
		mult := t.mult
		evalTerm(t, x, u)
		cones.ProjectionJacobian(mult.Con.Cone().Dual(), t.a, t.Jproj)
		mult.Con.Jacobian(x, u, t.jac)
		Jx, Ju := splitJac(t.jac, o.n, o.m)

		matMulTransAScaled(t.Hcc, mult.Mu, t.Jproj)

		la.MatTrMul3(o.tmpXX, 1, Jx, t.Hcc, Jx)
		addInPlace(Hxx, o.tmpXX)
		if o.m > 0 {
			la.MatTrMul3(o.tmpUU, 1, Ju, t.Hcc, Ju)
			addInPlace(Huu, o.tmpUU)
			la.MatTrMul3(o.tmpXU, 1, Jx, t.Hcc, Ju)
			addInPlace(Hxu, o.tmpXU)
		}
	}
}
