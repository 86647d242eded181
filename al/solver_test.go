// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package al

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/constraint"
	"github.com/rocketman123456/altro-go/cost"
	"github.com/rocketman123456/altro-go/ilqr"
	"github.com/rocketman123456/altro-go/model"
	"github.com/rocketman123456/altro-go/problem"
	"github.com/rocketman123456/altro-go/trajectory"
)

// tripleIntegrator1D is dof=1 triple-integrator dynamics: ẋ = (v, a, jerk=u).
type tripleIntegrator1D struct{}

func (tripleIntegrator1D) StateDimension() int   { return 3 }
func (tripleIntegrator1D) ControlDimension() int { return 1 }

func (tripleIntegrator1D) Evaluate(x, u, xdot []float64) {
	xdot[0] = x[1]
	xdot[1] = x[2]
	xdot[2] = u[0]
}

func (tripleIntegrator1D) Jacobian(x, u []float64, out [][]float64) {
	for i := range out {
		for j := range out[i] {
			out[i][j] = 0
		}
	}
	out[0][1] = 1
	out[1][2] = 1
	out[2][3] = 1
}

func buildGoalProblem(N int, ubnd float64) *problem.Problem {
	n, m := 3, 1
	prob := problem.New(N, n, m)
	dyn := model.NewRK4(tripleIntegrator1D{})
	Q := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	R := [][]float64{{0.01}}
	stage := cost.NewLQR(n, m, Q, R, nil, make([]float64, n), make([]float64, m), 0)
	QN := [][]float64{{50, 0, 0}, {0, 50, 0}, {0, 0, 50}}
	xf := []float64{1, 0, 0}
	qN := make([]float64, n)
	for i := range qN {
		qN[i] = -QN[i][i] * xf[i]
	}
	term := cost.NewLQRTerminal(n, QN, qN, 0)
	for k := 0; k < N; k++ {
		prob.SetDynamics(dyn, k)
		prob.SetCostFunction(stage, k)
		if ubnd > 0 {
			cb, err := constraint.NewControlBound(m, []float64{-ubnd}, []float64{ubnd})
			if err != nil {
				panic(err)
			}
			prob.SetConstraint(cb, k)
		}
	}
	prob.SetCostFunction(term, N)
	prob.SetInitialState([]float64{0, 0, 0})
	return prob
}

func TestALConvergesUnconstrained(tst *testing.T) {
	chk.PrintTitle("al: unconstrained triple integrator converges")
	N := 10
	prob := buildGoalProblem(N, 0)
	z := trajectory.New(N, 3, 1)
	z.SetUniformStep(0.1)

	solver := New(prob)
	solver.SetTrajectory(z)
	status, _ := solver.Solve()
	if status != ilqr.Converged {
		tst.Fatalf("expected Converged, got %s", status)
	}
}

func TestALRespectsControlBound(tst *testing.T) {
	chk.PrintTitle("al: control-bounded triple integrator respects bound")
	N := 10
	ubnd := 1.0
	prob := buildGoalProblem(N, ubnd)
	z := trajectory.New(N, 3, 1)
	z.SetUniformStep(0.1)

	solver := New(prob)
	solver.Opts.MaxIterationsOuter = 30
	solver.SetTrajectory(z)
	status, _ := solver.Solve()
	if status != ilqr.Converged && status != ilqr.MaxIterations {
		tst.Fatalf("expected Converged or MaxIterations, got %s", status)
	}

	zf := solver.GetTrajectory()
	for k := 0; k < N; k++ {
		u := math.Abs(zf.Points[k].U[0])
		if u > ubnd+1e-3 {
			tst.Errorf("knot %d: |u|=%v exceeds bound %v", k, u, ubnd)
		}
	}
}
