package problem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/rocketman123456/altro-go/constraint"
	"github.com/rocketman123456/altro-go/cost"
	"github.com/rocketman123456/altro-go/model"
)

type linDyn struct{ n, m int }

func (d linDyn) StateDimension() int   { return d.n }
func (d linDyn) ControlDimension() int { return d.m }
func (d linDyn) Evaluate(x, u, xdot []float64) {
	for i := range xdot {
		xdot[i] = 0
	}
}
func (d linDyn) Jacobian(x, u []float64, out [][]float64) {}

func TestIsFullyDefined(tst *testing.T) {
	chk.PrintTitle("problem: IsFullyDefined")
	n, m, N := 2, 1, 3
	p := New(N, n, m)
	if p.IsFullyDefined() {
		tst.Errorf("empty problem must not be fully defined")
	}

	Q := [][]float64{{1, 0}, {0, 1}}
	R := [][]float64{{1}}
	stageCost := cost.NewLQR(n, m, Q, R, nil, []float64{0, 0}, []float64{0}, 0)
	termCost := cost.NewLQRTerminal(n, Q, []float64{0, 0}, 0)
	dyn := model.NewRK4(linDyn{n, m})

	for k := 0; k < N; k++ {
		if err := p.SetDynamics(dyn, k); err != nil {
			tst.Fatal(err)
		}
		if err := p.SetCostFunction(stageCost, k); err != nil {
			tst.Fatal(err)
		}
	}
	if err := p.SetCostFunction(termCost, N); err != nil {
		tst.Fatal(err)
	}
	if p.IsFullyDefined() {
		tst.Errorf("must not be fully defined before x0 is set")
	}
	if err := p.SetInitialState([]float64{0, 0}); err != nil {
		tst.Fatal(err)
	}
	if !p.IsFullyDefined() {
		tst.Errorf("expected fully defined problem")
	}
}

func TestSetDynamicsRejectsTerminalKnot(tst *testing.T) {
	chk.PrintTitle("problem: SetDynamics rejects k=N")
	p := New(2, 2, 1)
	dyn := model.NewRK4(linDyn{2, 1})
	if err := p.SetDynamics(dyn, 2); err == nil {
		tst.Errorf("expected error setting dynamics at terminal knot")
	}
}

func TestNumConstraints(tst *testing.T) {
	chk.PrintTitle("problem: NumConstraints sums OutputDimension")
	p := New(2, 3, 2)
	cb, err := constraint.NewControlBound(2, []float64{-1, -1}, []float64{1, 1})
	if err != nil {
		tst.Fatal(err)
	}
	goal, err := constraint.NewGoal([]float64{0, 0, 0})
	if err != nil {
		tst.Fatal(err)
	}
	if err := p.SetConstraint(cb, 0); err != nil {
		tst.Fatal(err)
	}
	if err := p.SetConstraint(goal, 2); err != nil {
		tst.Fatal(err)
	}
	if p.NumConstraints(0) != cb.OutputDimension() {
		tst.Errorf("expected %d constraints at knot 0, got %d", cb.OutputDimension(), p.NumConstraints(0))
	}
	if p.NumConstraints(2) != 3 {
		tst.Errorf("expected 3 constraints at terminal knot, got %d", p.NumConstraints(2))
	}
	if p.NumConstraints(1) != 0 {
		tst.Errorf("expected 0 constraints at knot 1")
	}
}

func TestSetInitialStateDimensionMismatch(tst *testing.T) {
	chk.PrintTitle("problem: mismatched x0 keeps problem incomplete without crashing")
	p := New(2, 3, 1)
	err := p.SetInitialState([]float64{1, 2})
	if err == nil {
		tst.Errorf("expected dimension-mismatch error")
	}
	if p.IsFullyDefined() {
		tst.Errorf("problem must remain incomplete")
	}
}
