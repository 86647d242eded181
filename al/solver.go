// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package al implements the augmented Lagrangian outer loop of §4.5:
// dual ascent, penalty growth, and constraint-violation tracking wrapped
// around the inner iLQR solver of package ilqr, following the same
// assemble/check/update iteration idiom as the teacher's
// fem.run_iterations driver.
package al

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/rocketman123456/altro-go/cones"
	"github.com/rocketman123456/altro-go/constraint"
	"github.com/rocketman123456/altro-go/ilqr"
	"github.com/rocketman123456/altro-go/problem"
	"github.com/rocketman123456/altro-go/trajectory"
)

// Solver is the AL_iLQR engine of §6: it builds an unconstrained Problem
// P̃ wrapping the caller's Problem with penalty+multiplier cost terms,
// without mutating the original, and drives an inner iLQR solve to
// convergence once per outer iteration.
type Solver struct {
	Orig *problem.Problem
	Opts Options

	N, n, m int

	mults   [][]*Multiplier // per knot k ∈ [0,N]
	wrapped *problem.Problem
	inner   *ilqr.Solver

	cScratch   []float64 // reused by the per-knot constraint evaluation pass
	rawScratch []float64 // reused by the dual-ascent pre-projection sum
}

// New builds the AL wrapper around prob. Every constraint registered on
// prob at construction time becomes one Multiplier; constraints added to
// prob afterward are not picked up (the wrapping is a snapshot, matching
// §3's "AL builds a new Problem" design note).
func New(prob *problem.Problem) *Solver {
	o := &Solver{Orig: prob, Opts: DefaultOptions()}
	o.N, o.n, o.m = prob.N, prob.StateDimension(), prob.ControlDimension()

	o.mults = make([][]*Multiplier, o.N+1)
	o.wrapped = problem.New(o.N, o.n, o.m)
	maxP := 0
	for k := 0; k <= o.N; k++ {
		for _, con := range prob.Constraints(k) {
			o.mults[k] = append(o.mults[k], NewMultiplier(con, o.Opts.PenaltyInit))
			if con.OutputDimension() > maxP {
				maxP = con.OutputDimension()
			}
		}
		baseCost := prob.Cost(k)
		wc := NewAugmentedCost(baseCost, o.n, baseCost.ControlDimension(), o.mults[k])
		o.wrapped.SetCostFunction(wc, k)
		if k < o.N {
			o.wrapped.SetDynamics(prob.Dynamics(k), k)
		}
	}
	o.wrapped.SetInitialState(prob.InitialState())
	o.cScratch = make([]float64, maxP)
	o.rawScratch = make([]float64, maxP)

	o.inner = ilqr.New(o.wrapped)
	return o
}

// SetTrajectory installs the initial guess for the inner solver.
func (o *Solver) SetTrajectory(z *trajectory.Trajectory) {
	o.inner.SetTrajectory(z)
}

// GetTrajectory returns the current optimized trajectory.
func (o *Solver) GetTrajectory() *trajectory.Trajectory {
	return o.inner.GetTrajectory()
}

// resetDuals reinitializes every multiplier's λ to zero and μ to
// PenaltyInit, so repeated Solve() calls start the outer loop fresh.
func (o *Solver) resetDuals() {
	for _, row := range o.mults {
		for _, mult := range row {
			for i := range mult.Lambda {
				mult.Lambda[i] = 0
			}
			mult.Mu = o.Opts.PenaltyInit
			mult.Violation = 0
		}
	}
}

// updateDuals walks every registered constraint at the current
// trajectory, performing in one pass: the violation measurement of
// §4.5 step 2, the dual ascent of step 4 (λ ← Π_K*(λ+μc)), and the
// penalty growth of step 4 (μ ← min(μ·φμ, μ_max), gated on whether
// violation decreased by at least γ since the previous outer
// iteration). Returns the worst violation observed.
func (o *Solver) updateDuals(ascend bool) float64 {
	z := o.inner.GetTrajectory()
	var worst float64
	for k := 0; k <= o.N; k++ {
		x := z.Points[k].X
		var u []float64
		if k < o.N {
			u = z.Points[k].U
		}
		for _, mult := range o.mults[k] {
			p := mult.Con.OutputDimension()
			c := o.cScratch[:p]
			mult.Con.Evaluate(x, u, c)
			v := constraint.Violation(mult.Con.Cone(), c)
			if v > worst {
				worst = v
			}
			if !ascend {
				continue
			}
			prevViol := mult.Violation
			raw := o.rawScratch[:p]
			for i := 0; i < p; i++ {
				raw[i] = mult.Lambda[i] + mult.Mu*c[i]
			}
			cones.Project(mult.Con.Cone().Dual(), raw, mult.Lambda)
			if prevViol == 0 || v > o.Opts.ViolationDecreaseRatio*prevViol {
				mult.Mu = math.Min(mult.Mu*o.Opts.PenaltyScale, o.Opts.PenaltyMax)
			}
			mult.Violation = v
		}
	}
	return worst
}

// Solve runs the outer AL loop of §4.5: inner iLQR solve, violation
// check, dual ascent and penalty growth, until convergence or the outer
// iteration cap.
func (o *Solver) Solve() (ilqr.Status, ilqr.Stats) {
	o.resetDuals()
	tolInner := o.Opts.TolInner
	o.inner.Opts = o.Opts.Inner

	var lastStatus ilqr.Status
	var lastStats ilqr.Stats
	for outer := 0; outer < o.Opts.MaxIterationsOuter; outer++ {
		if o.Opts.Abort != nil && o.Opts.Abort() {
			return ilqr.UserAborted, lastStats
		}

		o.inner.Opts.TolGrad = tolInner
		lastStatus, lastStats = o.inner.Solve()

		viol := o.updateDuals(false)
		if o.Opts.Verbose {
			io.Pf("AL  outer=%3d  inner=%-22s viol=%10.3e  tolInner=%10.3e\n", outer, lastStatus, viol, tolInner)
		}

		if viol < o.Opts.TolViol && lastStatus == ilqr.Converged {
			return ilqr.Converged, lastStats
		}

		o.updateDuals(true)
		tolInner *= 0.1
		if tolInner < o.Opts.Inner.TolGrad {
			tolInner = o.Opts.Inner.TolGrad
		}
	}
	return ilqr.MaxIterations, lastStats
}
