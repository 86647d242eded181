// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package al

import "github.com/rocketman123456/altro-go/constraint"

// Multiplier holds the dual variable λ and penalty μ the AL outer loop
// maintains for one registered Constraint, per §4.5's design note that
// multiplier/penalty state lives in the AL wrapper, not in the
// constraint itself (constraints stay pure functions of x,u).
type Multiplier struct {
	Con       constraint.Constraint
	Lambda    []float64
	Mu        float64
	Violation float64 // ‖v‖∞ at this constraint from the most recent outer iteration
}

// NewMultiplier allocates a zero-initialized multiplier for con with
// initial penalty muInit.
func NewMultiplier(con constraint.Constraint, muInit float64) *Multiplier {
	return &Multiplier{
		Con:    con,
		Lambda: make([]float64, con.OutputDimension()),
		Mu:     muInit,
	}
}
