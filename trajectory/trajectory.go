// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package trajectory implements the KnotPoint / Trajectory data model of
// §3: an ordered horizon of (x_k, u_k, h_k) triples sharing common
// state/control dimensions, the optimization variable the iLQR and AL
// solvers read and write.
package trajectory

import "github.com/cpmech/gosl/chk"

// KnotPoint holds the state, control and time step at discrete index k.
// At k=N, U and H are unused (U is allocated with length m and left
// zero-valued, H is left zero).
type KnotPoint struct {
	X []float64 // state, length n
	U []float64 // control, length m (unused at k=N)
	H float64   // time step to k+1, non-negative (unused at k=N)
}

// Trajectory Z is a horizon of N+1 knot points sharing common n, m.
type Trajectory struct {
	N      int // number of dynamics segments; N+1 knots
	n, m   int
	Points []*KnotPoint
}

// New allocates a Trajectory of N+1 knots with state dimension n and
// control dimension m, all zero-valued.
func New(N, n, m int) *Trajectory {
	pts := make([]*KnotPoint, N+1)
	for k := 0; k <= N; k++ {
		pts[k] = &KnotPoint{X: make([]float64, n), U: make([]float64, m), H: 0}
	}
	return &Trajectory{N: N, n: n, m: m, Points: pts}
}

// StateDimension returns n.
func (o *Trajectory) StateDimension() int { return o.n }

// ControlDimension returns m.
func (o *Trajectory) ControlDimension() int { return o.m }

// SetUniformStep assigns the same step h to every knot point (k < N;
// k=N's H is left unused per the invariant of §3).
func (o *Trajectory) SetUniformStep(h float64) {
	for k := 0; k < o.N; k++ {
		o.Points[k].H = h
	}
}

// Clone returns a deep copy of the trajectory, used by the iLQR solver
// to hold a separate candidate Z̃ without aliasing the nominal Z.
func (o *Trajectory) Clone() *Trajectory {
	c := New(o.N, o.n, o.m)
	c.CopyFrom(o)
	return c
}

// CopyFrom overwrites this trajectory's knot points with other's. Both
// trajectories must share N, n, m.
func (o *Trajectory) CopyFrom(other *Trajectory) {
	for k := range o.Points {
		copy(o.Points[k].X, other.Points[k].X)
		copy(o.Points[k].U, other.Points[k].U)
		o.Points[k].H = other.Points[k].H
	}
}

// Check verifies the invariant of §3: every knot point has state
// dimension n and control dimension m, and no step is negative.
// Returns a configuration error (not a panic) since a caller may build
// a Trajectory incrementally and want to validate it before use.
func (o *Trajectory) Check() error {
	for k, p := range o.Points {
		if len(p.X) != o.n {
			return chk.Err("trajectory: knot %d has state dimension %d; expected %d", k, len(p.X), o.n)
		}
		if k < o.N {
			if len(p.U) != o.m {
				return chk.Err("trajectory: knot %d has control dimension %d; expected %d", k, len(p.U), o.m)
			}
			if p.H < 0 {
				return chk.Err("trajectory: knot %d has negative step h=%v", k, p.H)
			}
		}
	}
	return nil
}

// MaxControlNorm returns max_k ‖u_k‖∞ over k ∈ [0,N-1], used by the
// iLQR convergence check ‖d‖∞/(1+‖u‖∞).
func (o *Trajectory) MaxControlNorm() float64 {
	var max float64
	for k := 0; k < o.N; k++ {
		for _, ui := range o.Points[k].U {
			a := ui
			if a < 0 {
				a = -a
			}
			if a > max {
				max = a
			}
		}
	}
	return max
}
