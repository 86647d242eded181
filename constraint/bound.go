// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/cones"
)

// inf is the "treat as unbounded" threshold of §6: a bound with
// magnitude at or above this value is omitted from the output rows.
const inf = math.MaxFloat64

// ControlBound implements a per-dimension box constraint on the control
// u, lb_i ≤ u_i ≤ ub_i, expressed in the NegativeOrthant (c ≤ 0)
// convention as one row per finite bound: (lb_i - u_i) ≤ 0 for a finite
// lb_i and (u_i - ub_i) ≤ 0 for a finite ub_i. Infinite bounds (|bound| ≥ math.MaxFloat64) are
// omitted, per §6's constraint output dimension conventions.
type ControlBound struct {
	m      int       // control dimension
	lb, ub []float64 // length m, may contain ±inf sentinels
	rows   []boundRow
}

type boundRow struct {
	dim    int
	isLow  bool // true: (lb - u_dim) <= 0; false: (u_dim - ub) <= 0
	bound  float64
}

// NewControlBound builds a ControlBound constraint for the given
// control dimension m with per-dimension bounds lb,ub. Returns an error
// if len(lb) != m, len(ub) != m, or any lb_i > ub_i (a configuration
// fault per §7).
func NewControlBound(m int, lb, ub []float64) (*ControlBound, error) {
	if len(lb) != m || len(ub) != m {
		return nil, chk.Err("ControlBound: lb/ub must have length %d; got %d/%d", m, len(lb), len(ub))
	}
	o := &ControlBound{m: m, lb: append([]float64(nil), lb...), ub: append([]float64(nil), ub...)}
	for i := 0; i < m; i++ {
		if lb[i] > ub[i] {
			return nil, chk.Err("ControlBound: lb[%d]=%v > ub[%d]=%v", i, lb[i], i, ub[i])
		}
		if math.Abs(lb[i]) < inf {
			o.rows = append(o.rows, boundRow{dim: i, isLow: true, bound: lb[i]})
		}
		if math.Abs(ub[i]) < inf {
			o.rows = append(o.rows, boundRow{dim: i, isLow: false, bound: ub[i]})
		}
	}
	return o, nil
}

// OutputDimension returns one row per finite bound.
func (o *ControlBound) OutputDimension() int { return len(o.rows) }

// Cone is the self-dual inequality cone (c ≤ 0).
func (o *ControlBound) Cone() cones.Kind { return cones.NegativeOrthant }

// GetLabel returns a short diagnostic name.
func (o *ControlBound) GetLabel() string { return "ControlBound" }

// Evaluate writes c(x,u) into out.
func (o *ControlBound) Evaluate(x, u []float64, out []float64) {
	for i, r := range o.rows {
		if r.isLow {
			out[i] = r.bound - u[r.dim]
		} else {
			out[i] = u[r.dim] - r.bound
		}
	}
}

// Jacobian writes ∂c/∂[x,u] into out; rows are constant (linear
// constraint), columns [0,n) are zero, column n+r.dim is ±1.
func (o *ControlBound) Jacobian(x, u []float64, out [][]float64) {
	n := len(x)
	for i, r := range o.rows {
		for j := range out[i] {
			out[i][j] = 0
		}
		if r.isLow {
			out[i][n+r.dim] = -1
		} else {
			out[i][n+r.dim] = 1
		}
	}
}
