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

var _ = Describe("Quadratic scalar convergence", func() {
	It("drives x toward sqrt(3) from x'=3-x^2, x(0)=1", func() {
		rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			three := poly.Constant(scalar.Float64(3.0), x[0].Order())
			sq, err := poly.PowReal(x[0], 2)
			if err != nil {
				return nil, err
			}
			return []*poly.Polynomial{poly.Sub(three, sq)}, nil
		})

		traj, err := taylorint.IntegrateToTmax(context.Background(), rhs, 12, 0, []scalar.Scalar{scalar.Float64(1.0)}, 0.05, 20, 1e-12, 100000)
		Expect(err).NotTo(HaveOccurred())

		_, final := traj.Final()
		got := float64(final[0].(scalar.Float64))
		Expect(math.Abs(got - math.Sqrt(3))).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("Constant drift", func() {
	It("matches the exact linear solution x(t) = 10 - 9.81*(t-1)", func() {
		rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			return []*poly.Polynomial{poly.Constant(scalar.Float64(-9.81), x[0].Order())}, nil
		})

		traj, err := taylorint.IntegrateToTmax(context.Background(), rhs, 4, 1.0, []scalar.Scalar{scalar.Float64(10.0)}, 1.0, 50.0, 1e-12, 1000)
		Expect(err).NotTo(HaveOccurred())

		for i, tm := range traj.Times {
			want := 10.0 - 9.81*(tm-1.0)
			got := float64(traj.States[i][0].(scalar.Float64))
			Expect(math.Abs(got - want)).To(BeNumerically("<", 1e-9))
		}
	})
})

var _ = Describe("Complex oscillator", func() {
	It("matches the exact solution x(t) = e^{it}", func() {
		i := scalar.Complex128(complex(0, 1))
		rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			iPoly := poly.Constant(i, x[0].Order())
			return []*poly.Polynomial{poly.Mul(x[0], iPoly)}, nil
		})

		traj, err := taylorint.IntegrateToTmax(context.Background(), rhs, 12, 0, []scalar.Scalar{scalar.Complex128(complex(1, 0))}, 0.1, 10.0, 1e-12, 100000)
		Expect(err).NotTo(HaveOccurred())

		tf, final := traj.Final()
		want := complex(math.Cos(tf), math.Sin(tf))
		got := complex128(final[0].(scalar.Complex128))
		Expect(math.Abs(real(got) - real(want))).To(BeNumerically("<", 1e-8))
		Expect(math.Abs(imag(got) - imag(want))).To(BeNumerically("<", 1e-8))
	})
})
