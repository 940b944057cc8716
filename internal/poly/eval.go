package poly

import "github.com/san-kum/taylorstep/internal/scalar"

// Eval evaluates p at delta using Horner's method: sum_k coeffs[k]*delta^k.
func (p *Polynomial) Eval(delta scalar.Scalar) scalar.Scalar {
	acc := p.coeffs[p.order]
	for k := p.order - 1; k >= 0; k-- {
		acc = acc.Mul(delta).Add(p.coeffs[k])
	}
	return acc
}

// EvalVector evaluates every polynomial in xs at delta, returning the
// vector of scalar values - the operation the integrator loop uses to
// advance a state vector by one accepted step.
func EvalVector(xs []*Polynomial, delta scalar.Scalar) []scalar.Scalar {
	out := make([]scalar.Scalar, len(xs))
	for i, p := range xs {
		out[i] = p.Eval(delta)
	}
	return out
}
