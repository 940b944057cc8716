package taylorint_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/taylorstep/internal/systems"
	"github.com/san-kum/taylorstep/internal/variational"
)

func maxComponent(xs []float64) float64 {
	max := xs[0]
	for _, v := range xs[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

var _ = Describe("Lyapunov spectrum of a chaotic toy system", func() {
	It("finds a strictly positive leading exponent whose running estimate settles at a 1/t rate", func() {
		sys, err := systems.Get("lorenz")
		Expect(err).NotTo(HaveOccurred())

		fullIdx := []int{0, 1, 2}
		v := variational.NewSystem(sys.RHS, sys.Dim, fullIdx, fullIdx)

		spec, err := variational.ComputeSpectrum(
			context.Background(), v, 12, 0,
			[]float64{1.0, 1.0, 1.0}, 0.005, 40.0, 1e-10, 0.5, 500_000, true,
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Final).To(HaveLen(3))
		Expect(len(spec.Times)).To(BeNumerically(">", 4))

		leading := maxComponent(spec.Final)
		Expect(leading).To(BeNumerically(">", 0.2),
			"Lorenz's leading exponent is known to be strongly positive (~0.906); a non-chaotic implementation would settle near zero")

		mid := len(spec.Estimates) / 2
		last := len(spec.Estimates) - 2 // skip the final entry, which is spec.Final itself
		Expect(last).To(BeNumerically(">", mid))

		midErr := math.Abs(maxComponent(spec.Estimates[mid])-leading) * spec.Times[mid]
		lastErr := math.Abs(maxComponent(spec.Estimates[last])-leading) * spec.Times[last]

		// A running average converging at O(1/t) keeps t*|estimate-limit|
		// roughly bounded rather than growing as t increases; a generous
		// factor absorbs the noise a chaotic trajectory's finite-precision
		// renormalization introduces.
		Expect(lastErr).To(BeNumerically("<", 10*midErr+1e-6))
	})
})
