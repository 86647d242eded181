// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cost

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/fun"
)

// NewLQRFromPrms builds a diagonal-Q/diagonal-R stage LQR cost from a
// named parameter list, the same fun.Prms convention the teacher's
// constitutive models (msolid/mdl) use in their Init(prms) constructors.
// Recognized names are "q0".."q{n-1}" (state weight diagonal) and
// "r0".."r{m-1}" (control weight diagonal); unrecognized or malformed
// names are ignored, leaving the corresponding weight at zero.
func NewLQRFromPrms(n, m int, prms fun.Prms) *LQR {
	Q := zeros(n, n)
	R := zeros(m, m)
	for _, p := range prms {
		switch {
		case strings.HasPrefix(p.N, "q"):
			if i, err := strconv.Atoi(p.N[1:]); err == nil && i >= 0 && i < n {
				Q[i][i] = p.V
			}
		case strings.HasPrefix(p.N, "r"):
			if i, err := strconv.Atoi(p.N[1:]); err == nil && i >= 0 && i < m {
				R[i][i] = p.V
			}
		}
	}
	return NewLQR(n, m, Q, R, nil, make([]float64, n), make([]float64, m), 0)
}

// Prms exports the diagonal of Q (named "q0".."q{n-1}") and, for a stage
// cost, the diagonal of R (named "r0".."r{m-1}") as a fun.Prms list, the
// read-only counterpart to NewLQRFromPrms and to the teacher's
// GetPrms() diagnostic accessor.
func (o *LQR) Prms() fun.Prms {
	var prms fun.Prms
	for i := 0; i < o.n; i++ {
		prms = append(prms, &fun.Prm{N: "q" + strconv.Itoa(i), V: o.Q[i][i]})
	}
	if o.terminal {
		return prms
	}
	for i := 0; i < o.m; i++ {
		prms = append(prms, &fun.Prm{N: "r" + strconv.Itoa(i), V: o.R[i][i]})
	}
	return prms
}

func zeros(r, c int) [][]float64 {
	m := make([][]float64, r)
	for i := range m {
		m[i] = make([]float64, c)
	}
	return m
}
