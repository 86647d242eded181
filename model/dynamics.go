// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements the continuous DynamicsModel contract and
// its fixed-step explicit discretization (DiscretizedModel), following
// the teacher's Model/Small split (continuous constitutive law vs. its
// discrete, time-stepped update) in msolid/mdl: a DynamicsModel is the
// continuous-time analogue of a Small/Model's Update, and
// DiscretizedModel is the per-knot analogue of a Driver advancing the
// state by one increment.
package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Dynamics is the continuous-time contract: ẋ = F(x,u) plus its
// Jacobian ∂F/∂[x,u].
type Dynamics interface {
	StateDimension() int
	ControlDimension() int

	// Evaluate writes ẋ = F(x,u) into xdot (length StateDimension()).
	Evaluate(x, u []float64, xdot []float64)

	// Jacobian writes ∂F/∂[x,u] into out, an n×(n+m) dense matrix.
	Jacobian(x, u []float64, out [][]float64)
}

// Discretized wraps a continuous Dynamics with a fixed-step explicit
// integrator producing x_{k+1} = F(x_k, u_k, h_k) and its Jacobian
// ∂F/∂[x_k,u_k], an n×(n+m) matrix per §3's DiscretizedModel invariant.
type Discretized interface {
	StateDimension() int
	ControlDimension() int

	// Step writes x_{k+1} into xnext given (x_k, u_k, h_k).
	Step(x, u []float64, h float64, xnext []float64)

	// StepJacobian writes ∂F/∂[x_k,u_k] into out, dimensions
	// (n × (n+m)), per §3.
	StepJacobian(x, u []float64, h float64, out [][]float64)
}

// RK4 discretizes a continuous Dynamics model using the classical
// explicit 4-stage Runge-Kutta scheme, the reference integrator named
// in §3. It is explicit and fixed-step, satisfying §1's non-goal that
// excludes implicit/adaptive integration (gosl/ode's adaptive solvers
// are deliberately not used here; see DESIGN.md).
type RK4 struct {
	f Dynamics
	n int
	m int

	// scratch buffers, sized once at construction so Step allocates
	// nothing and StepJacobian allocates only the row-slice headers of
	// its splitJac views (§5).
	k1, k2, k3, k4 []float64
	x2, x3, x4     []float64
	j1, j2, j3, j4 [][]float64 // n x (n+m), stage Jacobians ∂F/∂[x,u]

	dx2dx, dx3dx, dx4dx [][]float64 // n x n, sensitivity of stage state to x_k
	dx2du, dx3du, dx4du [][]float64 // n x m, sensitivity of stage state to u_k
	dk2dx, dk3dx, dk4dx [][]float64 // n x n
	dk2du, dk3du, dk4du [][]float64 // n x m
}

// NewRK4 builds an RK4 discretization of f.
func NewRK4(f Dynamics) *RK4 {
	n, m := f.StateDimension(), f.ControlDimension()
	o := &RK4{f: f, n: n, m: m}
	o.k1, o.k2, o.k3, o.k4 = vec(n), vec(n), vec(n), vec(n)
	o.x2, o.x3, o.x4 = vec(n), vec(n), vec(n)
	o.j1, o.j2, o.j3, o.j4 = mat(n, n+m), mat(n, n+m), mat(n, n+m), mat(n, n+m)
	o.dx2dx, o.dx3dx, o.dx4dx = mat(n, n), mat(n, n), mat(n, n)
	o.dx2du, o.dx3du, o.dx4du = mat(n, m), mat(n, m), mat(n, m)
	o.dk2dx, o.dk3dx, o.dk4dx = mat(n, n), mat(n, n), mat(n, n)
	o.dk2du, o.dk3du, o.dk4du = mat(n, m), mat(n, m), mat(n, m)
	return o
}

func vec(n int) []float64 { return make([]float64, n) }

func mat(r, c int) [][]float64 { return la.MatAlloc(r, c) }

// StateDimension returns n.
func (o *RK4) StateDimension() int { return o.n }

// ControlDimension returns m.
func (o *RK4) ControlDimension() int { return o.m }

// Step advances the state by one step of size h using the classical
// RK4 update, holding the control fixed over the interval (zero-order
// hold), the standard assumption for discretizing general nonlinear
// dynamics over a sample period.
func (o *RK4) Step(x, u []float64, h float64, xnext []float64) {
	if len(x) != o.n {
		chk.Panic("RK4: state vector has length %d; expected %d", len(x), o.n)
	}
	n := o.n
	o.f.Evaluate(x, u, o.k1)
	for i := 0; i < n; i++ {
		o.x2[i] = x[i] + 0.5*h*o.k1[i]
	}
	o.f.Evaluate(o.x2, u, o.k2)
	for i := 0; i < n; i++ {
		o.x3[i] = x[i] + 0.5*h*o.k2[i]
	}
	o.f.Evaluate(o.x3, u, o.k3)
	for i := 0; i < n; i++ {
		o.x4[i] = x[i] + h*o.k3[i]
	}
	o.f.Evaluate(o.x4, u, o.k4)
	for i := 0; i < n; i++ {
		xnext[i] = x[i] + (h/6)*(o.k1[i]+2*o.k2[i]+2*o.k3[i]+o.k4[i])
	}
}

// StepJacobian computes ∂x_{k+1}/∂[x_k,u_k] by propagating the chain
// rule through the four RK4 stages. The caller's continuous Dynamics
// supplies ∂F/∂[x,u] at each stage; no automatic differentiation is
// used, per §1's non-goal excluding autodiff.
func (o *RK4) StepJacobian(x, u []float64, h float64, out [][]float64) {
	n, m := o.n, o.m

	// stage 1, evaluated at (x,u)
	o.f.Jacobian(x, u, o.j1)
	A1, B1 := splitJac(o.j1, n, m)

	// stage 2, evaluated at (x2,u), x2 = x + h/2*k1
	o.f.Evaluate(x, u, o.k1)
	for i := 0; i < n; i++ {
		o.x2[i] = x[i] + 0.5*h*o.k1[i]
	}
	o.f.Jacobian(o.x2, u, o.j2)
	A2, B2 := splitJac(o.j2, n, m)
	identityPlusScaled(o.dx2dx, A1, 0.5*h)
	scaleMat(o.dx2du, B1, 0.5*h)
	la.MatMul(o.dk2dx, 1, A2, o.dx2dx)
	la.MatMul(o.dk2du, 1, A2, o.dx2du)
	addMat(o.dk2du, B2)

	// stage 3, evaluated at (x3,u), x3 = x + h/2*k2
	o.f.Evaluate(o.x2, u, o.k2)
	for i := 0; i < n; i++ {
		o.x3[i] = x[i] + 0.5*h*o.k2[i]
	}
	o.f.Jacobian(o.x3, u, o.j3)
	A3, B3 := splitJac(o.j3, n, m)
	identityPlusScaled(o.dx3dx, o.dk2dx, 0.5*h)
	scaleMat(o.dx3du, o.dk2du, 0.5*h)
	la.MatMul(o.dk3dx, 1, A3, o.dx3dx)
	la.MatMul(o.dk3du, 1, A3, o.dx3du)
	addMat(o.dk3du, B3)

	// stage 4, evaluated at (x4,u), x4 = x + h*k3
	o.f.Evaluate(o.x3, u, o.k3)
	for i := 0; i < n; i++ {
		o.x4[i] = x[i] + h*o.k3[i]
	}
	o.f.Jacobian(o.x4, u, o.j4)
	A4, B4 := splitJac(o.j4, n, m)
	identityPlusScaled(o.dx4dx, o.dk3dx, h)
	scaleMat(o.dx4du, o.dk3du, h)
	la.MatMul(o.dk4dx, 1, A4, o.dx4dx)
	la.MatMul(o.dk4du, 1, A4, o.dx4du)
	addMat(o.dk4du, B4)

	// dx_{k+1}/dx = I + h/6*(A1 + 2 dk2dx + 2 dk3dx + dk4dx)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := (h / 6) * (A1[i][j] + 2*o.dk2dx[i][j] + 2*o.dk3dx[i][j] + o.dk4dx[i][j])
			if i == j {
				v += 1
			}
			out[i][j] = v
		}
		for j := 0; j < m; j++ {
			out[i][n+j] = (h / 6) * (B1[i][j] + 2*o.dk2du[i][j] + 2*o.dk3du[i][j] + o.dk4du[i][j])
		}
	}
}

// splitJac returns views into the n×(n+m) Jacobian jac as its ∂/∂x
// (n×n) and ∂/∂u (n×m) blocks, without copying.
func splitJac(jac [][]float64, n, m int) (dx, du [][]float64) {
	dx = make([][]float64, n)
	du = make([][]float64, n)
	for i := 0; i < n; i++ {
		dx[i] = jac[i][:n]
		du[i] = jac[i][n : n+m]
	}
	return
}

func identityPlusScaled(dst, src [][]float64, scale float64) {
	for i := range dst {
		for j := range dst[i] {
			v := scale * src[i][j]
			if i == j {
				v += 1
			}
			dst[i][j] = v
		}
	}
}

func scaleMat(dst, src [][]float64, scale float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] = scale * src[i][j]
		}
	}
}

func addMat(dst, src [][]float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] += src[i][j]
		}
	}
}
