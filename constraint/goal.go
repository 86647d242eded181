// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/cones"
)

// Goal implements the terminal equality constraint x_N - x_f = 0, with
// output dimension n as named in §6.
type Goal struct {
	n  int
	xf []float64
}

// NewGoal builds a Goal constraint targeting xf. Returns an error only
// if xf is empty; len(xf) is not checked against any state dimension,
// here or in Problem.SetConstraint.
func NewGoal(xf []float64) (*Goal, error) {
	if len(xf) == 0 {
		return nil, chk.Err("Goal: xf must not be empty")
	}
	return &Goal{n: len(xf), xf: append([]float64(nil), xf...)}, nil
}

// OutputDimension returns n.
func (o *Goal) OutputDimension() int { return o.n }

// Cone is the equality cone.
func (o *Goal) Cone() cones.Kind { return cones.Zero }

// GetLabel returns a short diagnostic name.
func (o *Goal) GetLabel() string { return "Goal" }

// Evaluate writes c(x,u) = x - xf into out.
func (o *Goal) Evaluate(x, u []float64, out []float64) {
	for i := 0; i < o.n; i++ {
		out[i] = x[i] - o.xf[i]
	}
}

// Jacobian writes ∂c/∂[x,u] = [I 0] into out.
func (o *Goal) Jacobian(x, u []float64, out [][]float64) {
	for i := 0; i < o.n; i++ {
		for j := range out[i] {
			out[i][j] = 0
		}
		out[i][i] = 1
	}
}
