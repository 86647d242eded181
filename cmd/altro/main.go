// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command altro is a small demonstration driver: it builds the
// control-bounded triple-integrator fixture of package
// examples/tripleintegrator, solves it with the AL/iLQR engine, and
// prints the resulting trajectory trace. It is not part of the
// engine's external interface (the library is driven programmatically,
// per §1); this binary exists only as a runnable worked example, the
// same role the teacher's own standalone examples play.
package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/rocketman123456/altro-go/al"
	"github.com/rocketman123456/altro-go/examples/tripleintegrator"
)

func main() {
	dof, N := 2, 20
	h := 0.1
	x0 := []float64{-1, 0, 0, -2, 0, 0}
	xf := []float64{1, 0, 0, 2, 0, 0}
	ubnd := []float64{5, 5}

	prob := tripleintegrator.Problem(dof, N, h, x0, xf, ubnd)
	z := tripleintegrator.InitialTrajectory(N, 3*dof, dof, h, x0)

	solver := al.New(prob)
	solver.Opts.Inner.Verbose = true
	solver.Opts.Verbose = true
	solver.SetTrajectory(z)

	status, stats := solver.Solve()
	io.Pf("\nstatus=%s iterations=%d final_cost=%10.6e final_grad=%10.6e\n",
		status, stats.Iterations, stats.FinalCost, stats.FinalGrad)

	zf := solver.GetTrajectory()
	io.Pf("terminal state: %v\n", zf.Points[N].X)
}
