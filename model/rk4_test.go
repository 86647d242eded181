package model

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// pendulum is a minimal nonlinear Dynamics fixture: a damped pendulum
// with state (θ, θdot) and scalar torque control.
type pendulum struct{}

func (pendulum) StateDimension() int   { return 2 }
func (pendulum) ControlDimension() int { return 1 }

func (pendulum) Evaluate(x, u, xdot []float64) {
	const g, l, b = 9.81, 1.0, 0.2
	xdot[0] = x[1]
	xdot[1] = -(g/l)*math.Sin(x[0]) - b*x[1] + u[0]
}

func (pendulum) Jacobian(x, u []float64, out [][]float64) {
	const g, l, b = 9.81, 1.0, 0.2
	out[0][0], out[0][1], out[0][2] = 0, 1, 0
	out[1][0], out[1][1], out[1][2] = -(g/l)*math.Cos(x[0]), -b, 1
}

func TestRK4StepJacobianFiniteDifference(tst *testing.T) {
	chk.PrintTitle("model: RK4 Jacobian vs finite difference")
	rk := NewRK4(pendulum{})
	x := []float64{0.3, -0.5}
	u := []float64{0.1}
	h := 0.05

	ana := make([][]float64, 2)
	for i := range ana {
		ana[i] = make([]float64, 3)
	}
	rk.StepJacobian(x, u, h, ana)

	xnext := make([]float64, 2)
	for row := 0; row < 2; row++ {
		for j := 0; j < 2; j++ {
			dnum := num.DerivCen5(x[j], 1e-4, func(xj float64) float64 {
				xx := append([]float64(nil), x...)
				xx[j] = xj
				rk.Step(xx, u, h, xnext)
				return xnext[row]
			})
			d := math.Abs(dnum - ana[row][j])
			if d > 1e-6 {
				tst.Errorf("StepJacobian[%d][%d] mismatch: ana=%v num=%v diff=%v", row, j, ana[row][j], dnum, d)
			}
		}
		dnum := num.DerivCen5(u[0], 1e-4, func(uj float64) float64 {
			uu := []float64{uj}
			rk.Step(x, uu, h, xnext)
			return xnext[row]
		})
		d := math.Abs(dnum - ana[row][2])
		if d > 1e-6 {
			tst.Errorf("StepJacobian[%d][2] (control) mismatch: ana=%v num=%v diff=%v", row, ana[row][2], dnum, d)
		}
	}
}

func TestRK4StepMatchesEuler(tst *testing.T) {
	chk.PrintTitle("model: RK4 reduces to forward Euler to first order for tiny steps")
	rk := NewRK4(pendulum{})
	x := []float64{0.1, 0.0}
	u := []float64{0}
	h := 1e-6
	xnext := make([]float64, 2)
	rk.Step(x, u, h, xnext)
	xdot := make([]float64, 2)
	pendulum{}.Evaluate(x, u, xdot)
	for i := range x {
		euler := x[i] + h*xdot[i]
		if math.Abs(xnext[i]-euler) > 1e-9 {
			tst.Errorf("RK4 step %d diverges from Euler limit: rk4=%v euler=%v", i, xnext[i], euler)
		}
	}
}
