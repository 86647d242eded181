// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ilqr implements the iterative LQR solver of §4.4: forward
// rollout, backward Riccati sweep with regularization, line search and
// convergence detection, following the teacher's iteration-loop idiom
// (fem.run_iterations: assemble, check convergence, update, repeat) with
// gosl/la supplying the dense linear algebra.
package ilqr

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/rocketman123456/altro-go/problem"
	"github.com/rocketman123456/altro-go/trajectory"
)

// Solver is the iLQR engine described in §4.4. It owns the trajectory
// being optimized and a fixed set of per-knot workspace buffers sized
// once at construction, so the solver's own workspace is never
// reallocated during a solve (§5); cost and dynamics implementations
// may still allocate (cost.LQR's Evaluate and Gradient do).
type Solver struct {
	Prob *problem.Problem
	Opts Options

	n, m, N int

	Z  *trajectory.Trajectory // nominal trajectory
	Zn *trajectory.Trajectory // forward-rollout candidate

	// per-knot cost expansion, k ∈ [0,N]
	Qxx    [][][]float64 // n×n
	qx     [][]float64   // n
	Quu    [][][]float64 // m×m, k ∈ [0,N-1]
	qu     [][]float64   // m, k ∈ [0,N-1]
	Qxu    [][][]float64 // n×m (cost Hxu), k ∈ [0,N-1]

	// dynamics Jacobians, k ∈ [0,N-1]
	A [][][]float64 // n×n
	B [][][]float64 // n×m

	// backward-pass outputs
	d [][]float64   // m, k ∈ [0,N-1]
	K [][][]float64 // m×n, k ∈ [0,N-1]
	P [][][]float64 // n×n, k ∈ [0,N]
	p [][]float64   // n, k ∈ [0,N]

	dV1, dV2                 float64
	expectedDV1, expectedDV2 float64
	rho                      float64

	// scratch, reused every backward-pass knot
	Qx, Qu           []float64
	QxxK, QuxK, QuuK [][]float64 // knot-local assembled Q blocks
	Hux              [][]float64 // transpose of cost Hxu, m×n
	Peff             [][]float64 // P or P+ρI depending on RegularizationMode
	QuuInv           [][]float64
	L                [][]float64 // Cholesky factor, for the PD test
	KtQux            [][]float64 // K^T Qux, n×n
	Kd               []float64
	quadTmp          []float64 // scratch for quadForm, length m

	jacScratch [][]float64 // n×(n+m), reused by expand
	dx         []float64   // x_k - xbar_k, reused by rollout
	Kdx        []float64   // K_k (x_k - xbar_k), reused by rollout
}

// New allocates a Solver for prob with default options.
func New(prob *problem.Problem) *Solver {
	o := &Solver{Prob: prob, Opts: DefaultOptions()}
	o.n, o.m, o.N = prob.StateDimension(), prob.ControlDimension(), prob.N
	n, m, N := o.n, o.m, o.N

	o.Qxx = make([][][]float64, N+1)
	o.qx = make([][]float64, N+1)
	o.P = make([][][]float64, N+1)
	o.p = make([][]float64, N+1)
	for k := 0; k <= N; k++ {
		o.Qxx[k] = la.MatAlloc(n, n)
		o.qx[k] = make([]float64, n)
		o.P[k] = la.MatAlloc(n, n)
		o.p[k] = make([]float64, n)
	}

	o.Quu = make([][][]float64, N)
	o.qu = make([][]float64, N)
	o.Qxu = make([][][]float64, N)
	o.A = make([][][]float64, N)
	o.B = make([][][]float64, N)
	o.d = make([][]float64, N)
	o.K = make([][][]float64, N)
	for k := 0; k < N; k++ {
		o.Quu[k] = la.MatAlloc(m, m)
		o.qu[k] = make([]float64, m)
		o.Qxu[k] = la.MatAlloc(n, m)
		o.A[k] = la.MatAlloc(n, n)
		o.B[k] = la.MatAlloc(n, m)
		o.d[k] = make([]float64, m)
		o.K[k] = la.MatAlloc(m, n)
	}

	o.Qx = make([]float64, n)
	o.Qu = make([]float64, m)
	o.QxxK = la.MatAlloc(n, n)
	o.QuxK = la.MatAlloc(m, n)
	o.QuuK = la.MatAlloc(m, m)
	o.Hux = la.MatAlloc(m, n)
	o.Peff = la.MatAlloc(n, n)
	o.QuuInv = la.MatAlloc(m, m)
	o.L = la.MatAlloc(m, m)
	o.KtQux = la.MatAlloc(n, n)
	o.Kd = make([]float64, n)
	o.quadTmp = make([]float64, m)

	o.jacScratch = la.MatAlloc(n, n+m)
	o.dx = make([]float64, n)
	o.Kdx = make([]float64, m)

	o.Z = trajectory.New(N, n, m)
	o.Zn = trajectory.New(N, n, m)
	return o
}

// SetTrajectory installs z as the nominal trajectory; the solver keeps
// its own copy so the caller may continue to mutate z afterward.
func (o *Solver) SetTrajectory(z *trajectory.Trajectory) {
	o.Z.CopyFrom(z)
}

// GetTrajectory returns the current nominal trajectory.
func (o *Solver) GetTrajectory() *trajectory.Trajectory {
	return o.Z
}

// totalCost sums ℓ_k(x_k,u_k) over k ∈ [0,N-1] plus ℓ_N(x_N).
func (o *Solver) totalCost(z *trajectory.Trajectory) float64 {
	var J float64
	for k := 0; k < o.N; k++ {
		J += o.Prob.Cost(k).Evaluate(z.Points[k].X, z.Points[k].U)
	}
	J += o.Prob.Cost(o.N).Evaluate(z.Points[o.N].X, nil)
	return J
}

// Solve runs the inner iLQR loop to convergence, an iteration cap, or a
// numerical failure, per §4.4 and §7.
func (o *Solver) Solve() (Status, Stats) {
	J := o.totalCost(o.Z)
	o.rho = o.Opts.RhoMin
	if o.Opts.RhoInit > o.rho {
		o.rho = o.Opts.RhoInit
	}

	var iter int
	var gradNorm float64
	for iter = 0; iter < o.Opts.MaxIterationsInner; iter++ {
		if o.Opts.Abort != nil && o.Opts.Abort() {
			return UserAborted, Stats{Iterations: iter, FinalCost: J, FinalRho: o.rho}
		}

		o.expand()

		status, ok := o.backwardPass()
		if !ok {
			return status, Stats{Iterations: iter, FinalCost: J, FinalGrad: gradNorm, FinalRho: o.rho}
		}
		o.expectedDV1, o.expectedDV2 = o.dV1, o.dV2

		// already at a stationary point: the step and its predicted cost
		// change are both below tolerance, so no line search is needed
		gradNorm = o.feedforwardNorm() / (1 + o.Z.MaxControlNorm())
		if gradNorm < o.Opts.TolGrad && math.Abs(o.expectedDV1+o.expectedDV2) < o.Opts.TolCost {
			return Converged, Stats{Iterations: iter + 1, FinalCost: J, FinalGrad: gradNorm, FinalRho: o.rho}
		}

		newJ, lsStatus, lsOK := o.lineSearch(J)
		if !lsOK {
			return lsStatus, Stats{Iterations: iter, FinalCost: J, FinalGrad: gradNorm, FinalRho: o.rho}
		}
		dJ := J - newJ
		J = newJ
		o.Z.CopyFrom(o.Zn)

		gradNorm = o.feedforwardNorm() / (1 + o.Z.MaxControlNorm())

		if o.Opts.Verbose {
			io.Pf("iLQR it=%3d  J=%13.6e  dJ=%10.3e  |d|=%10.3e  rho=%8.2e\n", iter, J, dJ, gradNorm, o.rho)
		}

		if math.Abs(dJ) < o.Opts.TolCost && gradNorm < o.Opts.TolGrad {
			return Converged, Stats{Iterations: iter + 1, FinalCost: J, FinalGrad: gradNorm, FinalRho: o.rho}
		}
	}
	return MaxIterations, Stats{Iterations: iter, FinalCost: J, FinalGrad: gradNorm, FinalRho: o.rho}
}

// feedforwardNorm returns max_k ‖d_k‖∞.
func (o *Solver) feedforwardNorm() float64 {
	var max float64
	for k := 0; k < o.N; k++ {
		for _, di := range o.d[k] {
			a := di
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

// expand recomputes, at the current nominal Z, the per-knot cost
// expansion (Qxx,qx,Quu,qu,Qxu) and dynamics Jacobians (A,B). Per §5
// this per-knot work is independent across k and can be fanned out;
// this implementation runs it sequentially.
func (o *Solver) expand() {
	for k := 0; k < o.N; k++ {
		x, u := o.Z.Points[k].X, o.Z.Points[k].U
		c := o.Prob.Cost(k)
		gx := o.qx[k]
		gu := o.qu[k]
		c.Gradient(x, u, gx, gu)
		c.Hessian(x, u, o.Qxx[k], o.Quu[k], o.Qxu[k])

		dyn := o.Prob.Dynamics(k)
		dyn.StepJacobian(x, u, o.Z.Points[k].H, o.jacScratch)
		for i := 0; i < o.n; i++ {
			copy(o.A[k][i], o.jacScratch[i][:o.n])
			copy(o.B[k][i], o.jacScratch[i][o.n:o.n+o.m])
		}
	}
	xN := o.Z.Points[o.N].X
	cN := o.Prob.Cost(o.N)
	cN.Gradient(xN, nil, o.qx[o.N], nil)
	cN.Hessian(xN, nil, o.Qxx[o.N], nil, nil)
}

// backwardPass implements the Riccati recursion of §4.4, restarting
// from the terminal condition and raising ρ whenever Q_uu fails the
// Cholesky-based positive-definiteness test, until ρ saturates at
// ρ_max (BackwardPassRegFailure).
func (o *Solver) backwardPass() (Status, bool) {
	for {
		copy(o.p[o.N], o.qx[o.N])
		la.MatCopy(o.P[o.N], 1, o.Qxx[o.N])
		o.dV1, o.dV2 = 0, 0

		ok := true
		for k := o.N - 1; k >= 0; k-- {
			if !o.backwardStep(k) {
				ok = false
				break
			}
		}
		if ok {
			o.rho = math.Max(o.rho/o.Opts.RhoScale, o.Opts.RhoMin)
			return Converged, true
		}
		o.rho = math.Min(o.rho*o.Opts.RhoScale, o.Opts.RhoMax)
		if o.rho >= o.Opts.RhoMax {
			return BackwardPassRegFailure, false
		}
	}
}

// backwardStep performs one k-step of the Riccati recursion, writing
// d[k], K[k], P[k], p[k] and accumulating ΔV. Returns false if Q_uu (with
// the current ρ applied per RegularizationMode) is not positive
// definite.
func (o *Solver) backwardStep(k int) bool {
	n, m := o.n, o.m
	A, B := o.A[k], o.B[k]
	Pnext, pnext := o.P[k+1], o.p[k+1]

	// effective P for the "state"/"both" regularization modes
	la.MatCopy(o.Peff, 1, Pnext)
	if o.Opts.RegularizationMode == RegularizationState || o.Opts.RegularizationMode == RegularizationBoth {
		addDiag(o.Peff, o.rho)
	}

	// Q_x = q + A^T p_next ; Q_u = r + B^T p_next
	matMulTransAVec(o.Qx, A, pnext)
	for i := 0; i < n; i++ {
		o.Qx[i] = o.qx[k][i] + o.Qx[i]
	}
	matMulTransAVec(o.Qu, B, pnext)
	for i := 0; i < m; i++ {
		o.Qu[i] = o.qu[k][i] + o.Qu[i]
	}

	// Q_xx = Q + A^T Peff A ; Q_uu = R + B^T Peff B ; Q_ux = Hux + B^T Peff A
	la.MatTrMul3(o.QxxK, 1, A, o.Peff, A)
	addInPlace(o.QxxK, o.Qxx[k])

	la.MatTrMul3(o.QuuK, 1, B, o.Peff, B)
	addInPlace(o.QuuK, o.Quu[k])

	transpose(o.Hux, o.Qxu[k])
	la.MatTrMul3(o.QuxK, 1, B, o.Peff, A)
	addInPlace(o.QuxK, o.Hux)

	// control-mode (and "both") regularization: ρI added directly to Q_uu
	if o.Opts.RegularizationMode == RegularizationControl || o.Opts.RegularizationMode == RegularizationBoth {
		addDiag(o.QuuK, o.rho)
	}

	if !cholesky(o.QuuK, o.L) {
		return false
	}

	if err := la.MatInvG(o.QuuInv, o.QuuK, 1e-12); err != nil {
		return false
	}

	// d = -Quu^-1 Qu ; K = -Quu^-1 Qux
	la.MatVecMul(o.d[k], -1, o.QuuInv, o.Qu)
	la.MatMul(o.K[k], -1, o.QuuInv, o.QuxK)

	// P = Qxx + Qux^T K ; p = Qx + Qux^T d  (Quu K = -Qux cancels the
	// K^T Quu K / K^T Quu d terms of the textbook recursion).
	matMulTransA(o.KtQux, o.QuxK, o.K[k])
	la.MatCopy(o.P[k], 1, o.QxxK)
	addInPlace(o.P[k], o.KtQux)

	matMulTransAVec(o.Kd, o.QuxK, o.d[k])
	for i := 0; i < n; i++ {
		o.p[k][i] = o.Qx[i] + o.Kd[i]
	}

	o.dV1 += la.VecDot(o.d[k], o.Qu)
	la.MatVecMul(o.quadTmp, 1, o.QuuK, o.d[k])
	o.dV2 += 0.5 * la.VecDot(o.d[k], o.quadTmp)
	return true
}

// lineSearch implements §4.4's backtracking line search: starting from
// α=1, accept the first step whose actual-to-expected improvement ratio
// falls in [c1,c2] and whose cost strictly decreases; otherwise contract
// α by τ until α_min is reached.
func (o *Solver) lineSearch(J float64) (float64, Status, bool) {
	alpha := 1.0
	for alpha >= o.Opts.LinesearchStepMin {
		newJ, ok := o.rollout(alpha)
		if !ok {
			alpha *= o.Opts.LinesearchContraction
			continue
		}
		// expectedDV1 ≤ 0 and expectedDV2 ≥ 0 (d minimizes the PD quadratic
		// model), so alpha*dV1 + alpha^2*dV2 is the model's predicted
		// change in cost, negative for an improving step; negate it here
		// so both expected and actual are positive predicted/actual cost
		// decreases and their ratio is well-defined.
		expected := -(alpha*o.expectedDV1 + alpha*alpha*o.expectedDV2)
		actual := J - newJ
		if expected != 0 {
			ratio := actual / expected
			if ratio >= o.Opts.LinesearchDecreaseLow && ratio <= o.Opts.LinesearchDecreaseHigh && newJ < J {
				return newJ, Converged, true
			}
		} else if newJ < J {
			return newJ, Converged, true
		}
		alpha *= o.Opts.LinesearchContraction
	}
	return J, LineSearchFailure, false
}

// rollout simulates the candidate trajectory Zn from x₀ using the
// affine feedback policy u_k = ū_k + α d_k + K_k(x_k - x̄_k), returning
// its total cost and false if any state becomes non-finite (§4.4,
// Testable Property 6's rollout step).
func (o *Solver) rollout(alpha float64) (float64, bool) {
	n, m := o.n, o.m
	copy(o.Zn.Points[0].X, o.Prob.InitialState())
	for k := 0; k < o.N; k++ {
		xbar := o.Z.Points[k].X
		xk := o.Zn.Points[k].X
		for i := 0; i < n; i++ {
			o.dx[i] = xk[i] - xbar[i]
		}
		la.MatVecMul(o.Kdx, 1, o.K[k], o.dx)

		u := o.Zn.Points[k].U
		ubar := o.Z.Points[k].U
		for i := 0; i < m; i++ {
			u[i] = ubar[i] + alpha*o.d[k][i] + o.Kdx[i]
		}

		h := o.Z.Points[k].H
		o.Zn.Points[k].H = h
		xnext := o.Zn.Points[k+1].X
		o.Prob.Dynamics(k).Step(xk, u, h, xnext)
		for i := 0; i < n; i++ {
			if math.IsNaN(xnext[i]) || math.IsInf(xnext[i], 0) {
				return 0, false
			}
		}
	}
	return o.totalCost(o.Zn), true
}
