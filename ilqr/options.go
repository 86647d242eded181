// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ilqr

// RegularizationMode selects which block of the backward-pass quadratic
// expansion absorbs the Levenberg-Marquardt-style damping ρ, resolving
// Open Question 2 of spec.md §9.
type RegularizationMode int

const (
	// RegularizationControl adds ρI to Q_uu only; the default, matching
	// the backward-pass pseudocode of spec.md §4.4 verbatim.
	RegularizationControl RegularizationMode = iota
	// RegularizationState adds ρI to the propagated value-function
	// Hessian P before forming Q_xx, Q_ux and Q_uu.
	RegularizationState
	// RegularizationBoth applies both.
	RegularizationBoth
)

// Options holds the documented, defaulted configuration keys of §6.
type Options struct {
	MaxIterationsInner int // max_iterations_inner

	TolCost float64 // tol_cost
	TolGrad float64 // tol_grad

	RhoMin   float64 // rho_min
	RhoMax   float64 // rho_max
	RhoInit  float64 // rho_init
	RhoScale float64 // rho_scale (φ)

	LinesearchDecreaseLow  float64 // c₁
	LinesearchDecreaseHigh float64 // c₂
	LinesearchStepMin      float64 // α_min
	LinesearchContraction  float64 // τ

	RegularizationMode RegularizationMode

	// Verbose enables the per-iteration trace line (cost, ΔJ, gradient
	// norm, ρ), printed through gosl/io, mirroring fem.run_iterations'
	// residual trace.
	Verbose bool

	// Abort is an optional cooperative cancellation check, invoked at
	// each inner iteration boundary (§5). A nil Abort is never checked.
	Abort func() bool
}

// DefaultOptions returns the documented defaults of §6.
func DefaultOptions() Options {
	return Options{
		MaxIterationsInner: 100,

		TolCost: 1e-7,
		TolGrad: 1e-8,

		RhoMin:   1e-8,
		RhoMax:   1e8,
		RhoInit:  0,
		RhoScale: 1.6,

		LinesearchDecreaseLow:  1e-4,
		LinesearchDecreaseHigh: 10,
		LinesearchStepMin:      1e-8,
		LinesearchContraction:  0.5,

		RegularizationMode: RegularizationControl,
	}
}
