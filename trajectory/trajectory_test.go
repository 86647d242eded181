package trajectory

import "testing"

func TestSetUniformStep(tst *testing.T) {
	z := New(5, 3, 2)
	z.SetUniformStep(0.1)
	for k := 0; k < z.N; k++ {
		if z.Points[k].H != 0.1 {
			tst.Errorf("knot %d: expected h=0.1, got %v", k, z.Points[k].H)
		}
	}
	if z.Points[z.N].H != 0 {
		tst.Errorf("terminal knot H should be left unused (zero)")
	}
}

func TestCheckDetectsNegativeStep(tst *testing.T) {
	z := New(2, 2, 1)
	z.Points[0].H = -0.5
	if err := z.Check(); err == nil {
		tst.Errorf("expected error for negative step")
	}
}

func TestCheckDetectsDimensionMismatch(tst *testing.T) {
	z := New(2, 2, 1)
	z.Points[1].X = []float64{1, 2, 3}
	if err := z.Check(); err == nil {
		tst.Errorf("expected error for dimension mismatch")
	}
}

func TestCloneIsIndependent(tst *testing.T) {
	z := New(2, 2, 1)
	z.Points[0].X[0] = 1.23
	c := z.Clone()
	c.Points[0].X[0] = 9.99
	if z.Points[0].X[0] != 1.23 {
		tst.Errorf("mutating clone must not affect original")
	}
}
