// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package problem implements the Problem data model of §3: per-knot
// dynamics, cost and constraints plus the initial state x₀, following
// the teacher's factory/shared-handle ownership model (msolid.GetModel,
// ele.Factory): the same cost or dynamics object may be registered at
// many knots, and Problem holds reference-counted-by-convention handles
// to them rather than owning copies.
package problem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/constraint"
	"github.com/rocketman123456/altro-go/cost"
	"github.com/rocketman123456/altro-go/model"
)

// Problem holds, per knot k ∈ [0,N], a shared dynamics model (k<N), a
// shared cost function, and an unordered collection of constraints,
// plus the initial state x₀.
type Problem struct {
	N int
	n int
	m int

	dynamics    []model.Discretized // length N; dynamics[k] is never set beyond N-1
	costs       []cost.Function     // length N+1
	constraints [][]constraint.Constraint

	x0 []float64
}

// New allocates an empty Problem for horizon N with state/control
// dimensions n, m. All per-knot slots start unset.
func New(N, n, m int) *Problem {
	return &Problem{
		N:           N,
		n:           n,
		m:           m,
		dynamics:    make([]model.Discretized, N),
		costs:       make([]cost.Function, N+1),
		constraints: make([][]constraint.Constraint, N+1),
	}
}

// StateDimension returns n.
func (o *Problem) StateDimension() int { return o.n }

// ControlDimension returns m.
func (o *Problem) ControlDimension() int { return o.m }

// Dynamics returns the dynamics model registered at knot k, or nil.
func (o *Problem) Dynamics(k int) model.Discretized { return o.dynamics[k] }

// Cost returns the cost function registered at knot k, or nil.
func (o *Problem) Cost(k int) cost.Function { return o.costs[k] }

// Constraints returns the constraints registered at knot k (may be empty).
func (o *Problem) Constraints(k int) []constraint.Constraint { return o.constraints[k] }

// InitialState returns x₀.
func (o *Problem) InitialState() []float64 { return o.x0 }

// SetDynamics registers model at knot k ∈ [0,N-1]; rejects k=N (§4.3).
func (o *Problem) SetDynamics(m model.Discretized, k int) error {
	if k < 0 || k >= o.N {
		return chk.Err("problem: SetDynamics: knot index %d out of range [0,%d)", k, o.N)
	}
	if m == nil {
		return chk.Err("problem: SetDynamics: model is nil")
	}
	if m.StateDimension() != o.n || m.ControlDimension() != o.m {
		return chk.Err("problem: SetDynamics: model dimensions (%d,%d) do not match problem (%d,%d)",
			m.StateDimension(), m.ControlDimension(), o.n, o.m)
	}
	o.dynamics[k] = m
	return nil
}

// SetCostFunction registers c at knot k ∈ [0,N] (§4.3). Callers are
// responsible for marking the k=N cost as terminal (cost.Function's
// IsTerminal()); Problem does not enforce that itself beyond dimensions.
func (o *Problem) SetCostFunction(c cost.Function, k int) error {
	if k < 0 || k > o.N {
		return chk.Err("problem: SetCostFunction: knot index %d out of range [0,%d]", k, o.N)
	}
	if c == nil {
		return chk.Err("problem: SetCostFunction: cost is nil")
	}
	if c.StateDimension() != o.n {
		return chk.Err("problem: SetCostFunction: cost state dimension %d does not match problem %d", c.StateDimension(), o.n)
	}
	o.costs[k] = c
	return nil
}

// SetConstraint appends con to knot k ∈ [0,N] (§4.3); rejects null.
func (o *Problem) SetConstraint(con constraint.Constraint, k int) error {
	if k < 0 || k > o.N {
		return chk.Err("problem: SetConstraint: knot index %d out of range [0,%d]", k, o.N)
	}
	if con == nil {
		return chk.Err("problem: SetConstraint: constraint is nil")
	}
	o.constraints[k] = append(o.constraints[k], con)
	return nil
}

// SetInitialState sets x₀.
func (o *Problem) SetInitialState(x0 []float64) error {
	if len(x0) != o.n {
		return chk.Err("problem: SetInitialState: x0 has dimension %d; expected %d", len(x0), o.n)
	}
	o.x0 = append([]float64(nil), x0...)
	return nil
}

// NumConstraints returns the sum of OutputDimension over all constraints
// registered at knot k (§4.3, Testable Property 2).
func (o *Problem) NumConstraints(k int) int {
	var n int
	for _, c := range o.constraints[k] {
		n += c.OutputDimension()
	}
	return n
}

// IsFullyDefined implements Testable Property 1 of §8: true iff x₀ has
// dimension n and every k ∈ [0,N-1] has non-nil dynamics and cost, and
// k=N has a non-nil cost.
func (o *Problem) IsFullyDefined() bool {
	if len(o.x0) != o.n {
		return false
	}
	for k := 0; k < o.N; k++ {
		if o.dynamics[k] == nil || o.costs[k] == nil {
			return false
		}
	}
	return o.costs[o.N] != nil
}
