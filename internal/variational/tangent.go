package variational

import (
	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
)

// dualJets runs the physical right-hand side's unmodified order-N
// coefficient recurrence against a state seeded with dual numbers: each
// coordinate's real part is its physical value, its epsilon part is one
// column of the tangent matrix Phi. Because the recurrence never reads
// an epsilon part to produce a real part (Add/Mul/Sub on duals keep the
// two parts independent), the returned jets' Coeff(0) trees are exactly
// the physical trajectory's Taylor coefficients, and their Coeff(1)
// trees are the variational equation's solution Phi_dot = J*Phi to the
// same truncation order - a genuine Jacobian-vector product computed by
// the same core the physical trajectory uses, not a separately
// approximated matrix exponential.
func dualJets(driver *jet.Driver, baseDim int, t float64, x, col []float64) ([]*poly.Polynomial, error) {
	x0 := make([]scalar.Scalar, baseDim)
	for j := 0; j < baseDim; j++ {
		x0[j] = poly.Dual(scalar.Float64(x[j]), scalar.Float64(col[j]), 1)
	}
	return driver.Compute(t, x0)
}

// evalDual evaluates a dual-coefficient jet at a fixed real time offset
// dt, recovering the physical next state and the tangent column's next
// value via the same Horner evaluation taylorint uses for the physical
// trajectory, with dt itself carried as a dual constant (zero
// derivative) so its coefficient type matches the jet being evaluated.
func evalDual(jets []*poly.Polynomial, dt float64) (xNext, colNext []float64) {
	delta := poly.Dual(scalar.Float64(dt), scalar.Float64(0), 1)
	xNext = make([]float64, len(jets))
	colNext = make([]float64, len(jets))
	for j, p := range jets {
		val := p.Eval(delta).(*poly.Polynomial)
		xNext[j] = float64(val.Coeff(0).(scalar.Float64))
		colNext[j] = float64(val.Coeff(1).(scalar.Float64))
	}
	return xNext, colNext
}

// dualTailMagnitudes is tailMagnitudes' counterpart for dual-coefficient
// jets: it reads only the real part of each tail coefficient, so the
// tangent columns riding along in the epsilon part never perturb the
// physical step-size choice.
func dualTailMagnitudes(jets []*poly.Polynomial, n int) (aNm1, aN float64) {
	for _, p := range jets {
		if n >= 1 {
			if a := p.Coeff(n - 1).(*poly.Polynomial).Coeff(0).Abs(); a > aNm1 {
				aNm1 = a
			}
		}
		if a := p.Coeff(n).(*poly.Polynomial).Coeff(0).Abs(); a > aN {
			aN = a
		}
	}
	return aNm1, aN
}
