package taylorint_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
	"github.com/san-kum/taylorstep/internal/taylorint"
)

var _ = Describe("RunEnsemble", func() {
	rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
		return []*poly.Polynomial{poly.Constant(scalar.Float64(1.0), x[0].Order())}, nil
	})

	It("integrates every member independently and preserves labels", func() {
		members := []taylorint.EnsembleMember{
			{Label: "a", T0: 0, X0: []scalar.Scalar{scalar.Float64(0)}},
			{Label: "b", T0: 0, X0: []scalar.Scalar{scalar.Float64(5)}},
			{Label: "c", T0: 0, X0: []scalar.Scalar{scalar.Float64(-2)}},
		}

		results := taylorint.RunEnsemble(context.Background(), rhs, 4, members, 0.1, 3.0, 1e-9, 10_000)
		Expect(results).To(HaveLen(3))

		byLabel := map[string]taylorint.EnsembleResult{}
		for _, r := range results {
			Expect(r.Err).NotTo(HaveOccurred())
			byLabel[r.Label] = r
		}

		_, xa := byLabel["a"].Trajectory.Final()
		_, xb := byLabel["b"].Trajectory.Final()
		_, xc := byLabel["c"].Trajectory.Final()

		Expect(float64(xa[0].(scalar.Float64))).To(BeNumerically("~", 3.0, 1e-9))
		Expect(float64(xb[0].(scalar.Float64))).To(BeNumerically("~", 8.0, 1e-9))
		Expect(float64(xc[0].(scalar.Float64))).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("reports a per-member error without aborting the rest of the batch", func() {
		// x' = log(x): fine from x0=1, a domain error from x0=0.
		logRHS := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
			l, err := poly.Log(x[0])
			if err != nil {
				return nil, err
			}
			return []*poly.Polynomial{l}, nil
		})

		members := []taylorint.EnsembleMember{
			{Label: "ok", T0: 0, X0: []scalar.Scalar{scalar.Float64(1)}},
			{Label: "fails", T0: 0, X0: []scalar.Scalar{scalar.Float64(0)}},
		}

		results := taylorint.RunEnsemble(context.Background(), logRHS, 4, members, 0.1, 10.0, 1e-9, 10_000)
		Expect(results).To(HaveLen(2))

		byLabel := map[string]taylorint.EnsembleResult{}
		for _, r := range results {
			byLabel[r.Label] = r
		}

		Expect(byLabel["ok"].Err).NotTo(HaveOccurred())
		Expect(byLabel["fails"].Err).To(HaveOccurred())
	})
})
