package taylorint_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
	"github.com/san-kum/taylorstep/internal/taylorint"
)

func pendulumRHS() jet.RHS {
	return jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		sin, _, err := poly.SinCos(x[0])
		if err != nil {
			return err
		}
		xdot[1] = poly.Neg(sin)
		return nil
	})
}

func pendulumEnergy(theta, omega float64) float64 {
	return omega*omega/2 - math.Cos(theta)
}

var _ = Describe("Simple pendulum energy conservation", func() {
	It("keeps the Hamiltonian constant across accepted steps", func() {
		theta0 := math.Pi - 1e-3
		traj, err := taylorint.IntegrateToTmax(
			context.Background(), pendulumRHS(), 16, 0,
			[]scalar.Scalar{scalar.Float64(theta0), scalar.Float64(0.0)},
			0.02, 20.0, 1e-14, 200000,
		)
		Expect(err).NotTo(HaveOccurred())

		e0 := pendulumEnergy(theta0, 0)
		for i, st := range traj.States {
			theta := float64(st[0].(scalar.Float64))
			omega := float64(st[1].(scalar.Float64))
			drift := math.Abs(pendulumEnergy(theta, omega) - e0)
			Expect(drift).To(BeNumerically("<", 1e-8), "energy drift at step %d, t=%g", i, traj.Times[i])
		}
	})
})

func keplerRHS() jet.RHS {
	return jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
		qx, qy, vx, vy := x[0], x[1], x[2], x[3]
		r2 := poly.Add(poly.Mul(qx, qx), poly.Mul(qy, qy))
		r3, err := poly.PowReal(r2, 1.5)
		if err != nil {
			return nil, err
		}
		ax, err := poly.Quo(poly.Neg(qx), r3)
		if err != nil {
			return nil, err
		}
		ay, err := poly.Quo(poly.Neg(qy), r3)
		if err != nil {
			return nil, err
		}
		return []*poly.Polynomial{vx.Clone(), vy.Clone(), ax, ay}, nil
	})
}

func keplerEnergy(q, v []float64) float64 {
	r := math.Hypot(q[0], q[1])
	speed2 := v[0]*v[0] + v[1]*v[1]
	return speed2/2 - 1/r
}

func keplerAngularMomentum(q, v []float64) float64 {
	return q[0]*v[1] - q[1]*v[0]
}

var _ = Describe("Kepler two-body problem", func() {
	It("conserves energy and angular momentum over one orbit", func() {
		q0 := []float64{0.2, 0}
		v0 := []float64{0, 3}

		traj, err := taylorint.IntegrateToTmax(
			context.Background(), keplerRHS(), 20, 0,
			[]scalar.Scalar{scalar.Float64(q0[0]), scalar.Float64(q0[1]), scalar.Float64(v0[0]), scalar.Float64(v0[1])},
			0.001, 2*math.Pi, 1e-14, 500000,
		)
		Expect(err).NotTo(HaveOccurred())

		e0 := keplerEnergy(q0, v0)
		l0 := keplerAngularMomentum(q0, v0)

		for i, st := range traj.States {
			q := []float64{float64(st[0].(scalar.Float64)), float64(st[1].(scalar.Float64))}
			v := []float64{float64(st[2].(scalar.Float64)), float64(st[3].(scalar.Float64))}
			Expect(math.Abs(keplerEnergy(q, v) - e0)).To(BeNumerically("<", 1e-6), "energy drift at step %d", i)
			Expect(math.Abs(keplerAngularMomentum(q, v) - l0)).To(BeNumerically("<", 1e-6), "angular momentum drift at step %d", i)
		}
	})
})

var _ = Describe("RHS form equivalence", func() {
	It("produces identical trajectories from the functional and in-place forms", func() {
		funcRHS := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			return []*poly.Polynomial{x[1].Clone(), poly.Neg(x[0])}, nil
		})
		inPlaceRHS := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
			xdot[0] = x[1].Clone()
			xdot[1] = poly.Neg(x[0])
			return nil
		})

		x0 := []scalar.Scalar{scalar.Float64(1.0), scalar.Float64(0.0)}
		trajF, err := taylorint.IntegrateToTmax(context.Background(), funcRHS, 10, 0, x0, 0.05, 5.0, 1e-12, 10000)
		Expect(err).NotTo(HaveOccurred())
		trajP, err := taylorint.IntegrateToTmax(context.Background(), inPlaceRHS, 10, 0, x0, 0.05, 5.0, 1e-12, 10000)
		Expect(err).NotTo(HaveOccurred())

		Expect(trajF.Times).To(Equal(trajP.Times))
		for i := range trajF.States {
			for j := range trajF.States[i] {
				a := float64(trajF.States[i][j].(scalar.Float64))
				b := float64(trajP.States[i][j].(scalar.Float64))
				Expect(a).To(Equal(b))
			}
		}
	})
})

var _ = Describe("General trajectory properties", func() {
	It("returns strictly increasing times ending exactly at tmax", func() {
		rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			return []*poly.Polynomial{x[1].Clone(), poly.Neg(x[0])}, nil
		})
		traj, err := taylorint.IntegrateToTmax(context.Background(), rhs, 10, 0,
			[]scalar.Scalar{scalar.Float64(1.0), scalar.Float64(0.0)}, 0.05, 5.0, 1e-12, 10000)
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(traj.Times); i++ {
			Expect(traj.Times[i]).To(BeNumerically(">", traj.Times[i-1]))
		}
		tf, _ := traj.Final()
		Expect(tf).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("lands exactly on every requested grid point", func() {
		rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			return []*poly.Polynomial{x[1].Clone(), poly.Neg(x[0])}, nil
		})
		grid := []float64{1.0, 2.0, 3.5, 5.0}
		traj, err := taylorint.IntegrateOnGrid(context.Background(), rhs, 10, 0,
			[]scalar.Scalar{scalar.Float64(1.0), scalar.Float64(0.0)}, 0.05, grid, 1e-12, 10000)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Times).To(HaveLen(len(grid) + 1))
		for i, want := range grid {
			Expect(traj.Times[i+1]).To(BeNumerically("~", want, 1e-12))
		}
	})
})
