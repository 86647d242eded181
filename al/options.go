// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package al

import "github.com/rocketman123456/altro-go/ilqr"

// Options holds the outer-loop configuration keys of §6, plus the
// Options governing each inner iLQR solve.
type Options struct {
	MaxIterationsOuter int

	TolViol  float64 // tol_viol
	TolInner float64 // tol_inner, the inner gradient tolerance; shrunk each outer iteration

	PenaltyInit  float64 // penalty_init
	PenaltyScale float64 // penalty_scale (φμ)
	PenaltyMax   float64 // penalty_max

	ViolationDecreaseRatio float64 // γ

	Inner ilqr.Options

	Verbose bool

	// Abort is an optional cooperative cancellation check invoked between
	// outer AL iterations (§5).
	Abort func() bool
}

// DefaultOptions returns the documented defaults of §6.
func DefaultOptions() Options {
	return Options{
		MaxIterationsOuter: 30,

		TolViol:  1e-4,
		TolInner: 1e-2,

		PenaltyInit:  1.0,
		PenaltyScale: 10.0,
		PenaltyMax:   1e8,

		ViolationDecreaseRatio: 0.25,

		Inner: ilqr.DefaultOptions(),
	}
}
