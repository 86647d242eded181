package cost

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
)

func TestLQREvaluateAndGradient(tst *testing.T) {
	chk.PrintTitle("cost: LQR evaluate and gradient vs finite difference")
	n, m := 2, 1
	Q := [][]float64{{2, 0}, {0, 3}}
	R := [][]float64{{1}}
	H := [][]float64{{0.1}, {0.2}}
	q := []float64{0.5, -0.3}
	r := []float64{0.1}
	c := 1.5
	lqr := NewLQR(n, m, Q, R, H, q, r, c)

	x := []float64{0.3, -0.2}
	u := []float64{0.4}

	gx := make([]float64, n)
	gu := make([]float64, m)
	lqr.Gradient(x, u, gx, gu)

	for i := 0; i < n; i++ {
		dnum := num.DerivCen5(x[i], 1e-4, func(xi float64) float64 {
			xx := append([]float64(nil), x...)
			xx[i] = xi
			return lqr.Evaluate(xx, u)
		})
		if math.Abs(dnum-gx[i]) > 1e-6 {
			tst.Errorf("grad x[%d] mismatch: ana=%v num=%v", i, gx[i], dnum)
		}
	}
	for i := 0; i < m; i++ {
		dnum := num.DerivCen5(u[i], 1e-4, func(ui float64) float64 {
			uu := append([]float64(nil), u...)
			uu[i] = ui
			return lqr.Evaluate(x, uu)
		})
		if math.Abs(dnum-gu[i]) > 1e-6 {
			tst.Errorf("grad u[%d] mismatch: ana=%v num=%v", i, gu[i], dnum)
		}
	}
}

func TestLQRHessianConstant(tst *testing.T) {
	chk.PrintTitle("cost: LQR Hessian equals Q,R,H regardless of (x,u)")
	n, m := 2, 1
	Q := [][]float64{{2, 0}, {0, 3}}
	R := [][]float64{{1}}
	H := [][]float64{{0.1}, {0.2}}
	lqr := NewLQR(n, m, Q, R, H, []float64{0, 0}, []float64{0}, 0)

	Hxx := la.MatAlloc(n, n)
	Huu := la.MatAlloc(m, m)
	Hxu := la.MatAlloc(n, m)
	lqr.Hessian([]float64{1, 2}, []float64{3}, Hxx, Huu, Hxu)
	chk.Matrix(tst, "Hxx", 1e-15, Hxx, Q)
	chk.Matrix(tst, "Huu", 1e-15, Huu, R)
	chk.Matrix(tst, "Hxu", 1e-15, Hxu, H)
}

func TestLQRTerminalIgnoresControl(tst *testing.T) {
	chk.PrintTitle("cost: terminal LQR has zero control dimension")
	Q := [][]float64{{1, 0}, {0, 1}}
	term := NewLQRTerminal(2, Q, []float64{0, 0}, 0)
	if !term.IsTerminal() {
		tst.Errorf("expected IsTerminal() true")
	}
	if term.ControlDimension() != 0 {
		tst.Errorf("expected zero control dimension for terminal cost")
	}
}
