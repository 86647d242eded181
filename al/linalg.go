// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package al

// matMulTransAScaled computes dst = scale * A^T * A, where A is p×c and
// dst is c×c (the Gauss-Newton-style Gram matrix used to propagate the
// cone projection's curvature back through a constraint's Jacobian).
func matMulTransAScaled(dst [][]float64, scale float64, A [][]float64) {
	p := len(A)
	c := len(dst)
	for i := 0; i < c; i++ {
		for j := 0; j < c; j++ {
			var s float64
			for l := 0; l < p; l++ {
				s += A[l][i] * A[l][j]
			}
			dst[i][j] = scale * s
		}
	}
}

func addInPlace(dst, src [][]float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] += src[i][j]
		}
	}
}
