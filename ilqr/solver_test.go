// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ilqr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/cost"
	"github.com/rocketman123456/altro-go/model"
	"github.com/rocketman123456/altro-go/problem"
	"github.com/rocketman123456/altro-go/trajectory"
)

// doubleIntegrator3D is a 6-state (position+velocity in 3 axes), 3-control
// linear dynamics model: ẋ = Ax + Bu with A the usual integrator chain and
// B mapping control directly to acceleration.
type doubleIntegrator3D struct{}

func (doubleIntegrator3D) StateDimension() int   { return 6 }
func (doubleIntegrator3D) ControlDimension() int { return 3 }

func (doubleIntegrator3D) Evaluate(x, u, xdot []float64) {
	for i := 0; i < 3; i++ {
		xdot[i] = x[3+i]
		xdot[3+i] = u[i]
	}
}

func (doubleIntegrator3D) Jacobian(x, u []float64, out [][]float64) {
	for i := range out {
		for j := range out[i] {
			out[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		out[i][3+i] = 1
		out[3+i][6+i] = 1
	}
}

func buildLQRProblem(n, m, N int) *problem.Problem {
	Q := identity(n, 1.0)
	R := identity(m, 0.1)
	prob := problem.New(N, n, m)
	dyn := model.NewRK4(doubleIntegrator3D{})
	stage := cost.NewLQR(n, m, Q, R, nil, make([]float64, n), make([]float64, m), 0)
	term := cost.NewLQRTerminal(n, identity(n, 10.0), make([]float64, n), 0)
	for k := 0; k < N; k++ {
		prob.SetDynamics(dyn, k)
		prob.SetCostFunction(stage, k)
	}
	prob.SetCostFunction(term, N)
	x0 := make([]float64, n)
	for i := 0; i < 3; i++ {
		x0[i] = 1.0
	}
	prob.SetInitialState(x0)
	return prob
}

func identity(n int, scale float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = scale
	}
	return m
}

func TestSolveUnconstrainedLQRConverges(tst *testing.T) {
	chk.PrintTitle("ilqr: unconstrained LQR converges in few iterations")
	n, m, N := 6, 3, 10
	prob := buildLQRProblem(n, m, N)

	z := trajectory.New(N, n, m)
	z.SetUniformStep(0.1)
	for i := 0; i < 3; i++ {
		z.Points[0].X[i] = 1.0
	}
	for k := 1; k <= N; k++ {
		copy(z.Points[k].X, z.Points[0].X)
	}

	solver := New(prob)
	solver.SetTrajectory(z)
	status, stats := solver.Solve()

	if status != Converged {
		tst.Fatalf("expected Converged, got %s (iterations=%d cost=%v grad=%v)", status, stats.Iterations, stats.FinalCost, stats.FinalGrad)
	}
	if stats.Iterations > 5 {
		tst.Errorf("expected a linear-quadratic problem to converge quickly, took %d iterations", stats.Iterations)
	}
	if stats.FinalGrad >= 1e-6 {
		tst.Errorf("expected small final gradient norm, got %v", stats.FinalGrad)
	}

	zf := solver.GetTrajectory()
	for i := 0; i < n; i++ {
		if a := zf.Points[N].X[i]; a > 0.5 || a < -0.5 {
			tst.Errorf("expected terminal state to be driven toward the origin, x[%d]=%v", i, a)
		}
	}
}

func TestSolveRespectsMaxIterations(tst *testing.T) {
	chk.PrintTitle("ilqr: iteration cap is honored")
	n, m, N := 6, 3, 5
	prob := buildLQRProblem(n, m, N)
	z := trajectory.New(N, n, m)
	z.SetUniformStep(0.1)

	solver := New(prob)
	solver.Opts.MaxIterationsInner = 1
	solver.Opts.TolGrad = 0 // unreachable, forces the iteration cap
	solver.SetTrajectory(z)
	status, stats := solver.Solve()
	if status != MaxIterations && status != Converged {
		tst.Errorf("expected MaxIterations or an early Converged, got %s", status)
	}
	if stats.Iterations > 1 {
		tst.Errorf("expected at most 1 iteration, got %d", stats.Iterations)
	}
}
