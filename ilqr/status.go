// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ilqr

// Status is the solver exit status of §4.4/§7.
type Status int

const (
	// Converged means all convergence criteria (|ΔJ|, ‖d‖∞/(1+‖u‖∞),
	// and, under the AL layer, constraint violation) were met.
	Converged Status = iota
	// MaxIterations means the inner iteration cap was reached without
	// converging; the best-so-far trajectory is still returned.
	MaxIterations
	// BackwardPassRegFailure means ρ saturated at ρ_max while trying to
	// restore positive-definiteness of Q_uu.
	BackwardPassRegFailure
	// LineSearchFailure means α fell below α_min without an accepted
	// step.
	LineSearchFailure
	// CostIncrease means the line search could not find a step that
	// decreased cost (reported distinctly from LineSearchFailure since
	// it is surfaced before regularization is raised).
	CostIncrease
	// StateNotFinite means a forward rollout produced a non-finite
	// state.
	StateNotFinite
	// UserAborted means the caller's cooperative Abort check returned true.
	UserAborted
)

// String returns a human-readable label for trace lines and tests.
func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	case MaxIterations:
		return "MaxIterations"
	case BackwardPassRegFailure:
		return "BackwardPassRegFailure"
	case LineSearchFailure:
		return "LineSearchFailure"
	case CostIncrease:
		return "CostIncrease"
	case StateNotFinite:
		return "StateNotFinite"
	case UserAborted:
		return "UserAborted"
	}
	return "Unknown"
}

// Stats reports solve diagnostics alongside the exit status, mirroring
// gosl/ode's Stat struct (Nfeval/Nsteps/...) adapted to iLQR.
type Stats struct {
	Iterations int
	FinalCost  float64
	FinalGrad  float64
	FinalRho   float64
}
