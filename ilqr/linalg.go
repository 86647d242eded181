// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ilqr

import "math"

// Small dense-matrix helpers not covered by gosl/la's observed routines
// (la.MatTrMul3 computes T^T M T for a single operand T; the backward
// pass also needs a plain two-operand transpose product and a
// Cholesky-based positive-definiteness test, neither of which appears
// in the teacher/pack call sites -- see DESIGN.md).

// matMulTransA computes dst = A^T * B, where A is k×r and B is k×c, dst is r×c.
func matMulTransA(dst, A, B [][]float64) {
	r := len(dst)
	c := len(dst[0])
	k := len(A)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			var s float64
			for l := 0; l < k; l++ {
				s += A[l][i] * B[l][j]
			}
			dst[i][j] = s
		}
	}
}

// matMulTransAVec computes dst = A^T * v, where A is k×r and v has length k.
func matMulTransAVec(dst []float64, A [][]float64, v []float64) {
	r := len(dst)
	k := len(A)
	for i := 0; i < r; i++ {
		var s float64
		for l := 0; l < k; l++ {
			s += A[l][i] * v[l]
		}
		dst[i] = s
	}
}

// addInPlace computes dst += src, elementwise.
func addInPlace(dst, src [][]float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] += src[i][j]
		}
	}
}

// addDiag adds rho to every diagonal entry of m in place.
func addDiag(m [][]float64, rho float64) {
	for i := range m {
		m[i][i] += rho
	}
}

// transpose writes dst = src^T, where src is n×m and dst is m×n.
func transpose(dst, src [][]float64) {
	for i := range src {
		for j := range src[i] {
			dst[j][i] = src[i][j]
		}
	}
}

// cholesky attempts the Cholesky factorization of symmetric m (lower
// triangular L with m = L L^T), writing L into L and returning false as
// soon as a non-positive pivot is found -- the standard way to test
// positive-definiteness without a dedicated eigenvalue routine.
func cholesky(m [][]float64, L [][]float64) bool {
	n := len(m)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var s float64
			for k := 0; k < j; k++ {
				s += L[i][k] * L[j][k]
			}
			if i == j {
				d := m[i][i] - s
				if d <= 0 {
					return false
				}
				L[i][j] = math.Sqrt(d)
			} else {
				L[i][j] = (m[i][j] - s) / L[j][j]
			}
		}
		for j := i + 1; j < n; j++ {
			L[i][j] = 0
		}
	}
	return true
}
