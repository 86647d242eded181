package cones

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

func TestDualLinkage(tst *testing.T) {
	chk.PrintTitle("cones: dual linkage")
	if Zero.Dual() != Identity {
		tst.Errorf("Dual(Zero) should be Identity")
	}
	if Identity.Dual() != Zero {
		tst.Errorf("Dual(Identity) should be Zero")
	}
	if NegativeOrthant.Dual() != NegativeOrthant {
		tst.Errorf("Dual(NegativeOrthant) should be self-dual")
	}
}

func TestProjectionIdempotence(tst *testing.T) {
	chk.PrintTitle("cones: projection idempotence")
	v := []float64{1.5, -2.0, 0.0, 3.3}
	for _, k := range []Kind{Zero, Identity, NegativeOrthant} {
		p1 := make([]float64, len(v))
		p2 := make([]float64, len(v))
		Project(k, v, p1)
		Project(k, p1, p2)
		chk.Vector(tst, k.String()+": idempotence", 1e-15, p1, p2)
	}
}

func TestProjectionJacobianFiniteDifference(tst *testing.T) {
	chk.PrintTitle("cones: projection Jacobian vs finite difference")
	v := []float64{0.7, -1.3, 2.1}
	for _, k := range []Kind{Zero, Identity, NegativeOrthant} {
		p := len(v)
		jac := make([][]float64, p)
		for i := range jac {
			jac[i] = make([]float64, p)
		}
		ProjectionJacobian(k, v, jac)

		out := make([]float64, p)
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				dnum := num.DerivCen5(v[j], 1e-3, func(vj float64) float64 {
					vv := append([]float64(nil), v...)
					vv[j] = vj
					Project(k, vv, out)
					return out[i]
				})
				err := dnum - jac[i][j]
				if err < 0 {
					err = -err
				}
				if err > 1e-5 {
					tst.Errorf("%s: ProjectionJacobian[%d][%d] mismatch: ana=%v num=%v", k, i, j, jac[i][j], dnum)
				}
			}
		}
	}
}
