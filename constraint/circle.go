// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/cones"
)

// Circle implements a single keep-out circular obstacle constraint in
// the (xIdx, yIdx) plane of the state vector: the signed distance to the
// obstacle boundary must stay non-positive, i.e.
//
//	c(x,u) = radius² - (x[xIdx]-cx)² - (x[yIdx]-cy)² ≤ 0
//
// supplementing spec.md's unicycle-with-obstacles seed scenario (Testable
// Property scenario 5), which the distilled spec names but leaves the
// constraint implementation to the engine's generic Constraint surface.
type Circle struct {
	n          int
	xIdx, yIdx int
	cx, cy     float64
	radius     float64
}

// NewCircle builds a Circle constraint over a state vector of dimension
// n, with the obstacle center at (cx,cy); the planar position is read
// from state components xIdx and yIdx.
func NewCircle(n, xIdx, yIdx int, cx, cy, radius float64) (*Circle, error) {
	if xIdx < 0 || xIdx >= n || yIdx < 0 || yIdx >= n {
		return nil, chk.Err("Circle: xIdx/yIdx out of range for state dimension %d", n)
	}
	if radius <= 0 {
		return nil, chk.Err("Circle: radius must be positive; got %v", radius)
	}
	return &Circle{n: n, xIdx: xIdx, yIdx: yIdx, cx: cx, cy: cy, radius: radius}, nil
}

// OutputDimension is always 1.
func (o *Circle) OutputDimension() int { return 1 }

// Cone is the self-dual inequality cone (c ≤ 0).
func (o *Circle) Cone() cones.Kind { return cones.NegativeOrthant }

// GetLabel returns a short diagnostic name.
func (o *Circle) GetLabel() string { return "Circle" }

// Evaluate writes c(x,u) into out[0].
func (o *Circle) Evaluate(x, u []float64, out []float64) {
	dx := x[o.xIdx] - o.cx
	dy := x[o.yIdx] - o.cy
	out[0] = o.radius*o.radius - dx*dx - dy*dy
}

// Jacobian writes ∂c/∂[x,u] into out[0].
func (o *Circle) Jacobian(x, u []float64, out [][]float64) {
	for j := range out[0] {
		out[0][j] = 0
	}
	dx := x[o.xIdx] - o.cx
	dy := x[o.yIdx] - o.cy
	out[0][o.xIdx] = -2 * dx
	out[0][o.yIdx] = -2 * dy
}

// Distance returns the current Euclidean distance from (x[xIdx],
// x[yIdx]) to the obstacle center, a convenience for test assertions
// against the seed scenario's "dist to centers ≥ radii - 1e-4" check.
func (o *Circle) Distance(x []float64) float64 {
	dx := x[o.xIdx] - o.cx
	dy := x[o.yIdx] - o.cy
	return math.Sqrt(dx*dx + dy*dy)
}
