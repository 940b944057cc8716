package poly

import (
	"fmt"

	"github.com/san-kum/taylorstep/internal/scalar"
)

// The functions in this file are the order-k mutating forms: each
// writes dst's coefficient k assuming coefficients 0..k of the operands
// and 0..k-1 of dst are already valid. They are unexported because the
// allocating forms below are the kernel's public contract; every caller
// outside this package, the jet driver in internal/jet included (through
// the right-hand sides it evaluates), goes through the allocating forms.

func blank(order int, zero scalar.Scalar) *Polynomial {
	cs := make([]scalar.Scalar, order+1)
	for k := range cs {
		cs[k] = zero
	}
	return &Polynomial{order: order, coeffs: cs}
}

func addAt(dst, a, b *Polynomial, k int) { dst.coeffs[k] = a.coeffs[k].Add(b.coeffs[k]) }
func subAt(dst, a, b *Polynomial, k int) { dst.coeffs[k] = a.coeffs[k].Sub(b.coeffs[k]) }

func mulAt(dst, a, b *Polynomial, k int) {
	sum := a.coeffs[0].Zero()
	for j := 0; j <= k; j++ {
		sum = sum.Add(a.coeffs[j].Mul(b.coeffs[k-j]))
	}
	dst.coeffs[k] = sum
}

func negAt(dst, a *Polynomial, k int) { dst.coeffs[k] = a.coeffs[k].Neg() }

// quoAt implements c[k] = (a[k] - sum_{j=0}^{k-1} c[j]*b[k-j]) / b[0].
func quoAt(dst, a, b *Polynomial, k int) error {
	acc := a.coeffs[k]
	for j := 0; j < k; j++ {
		acc = acc.Sub(dst.coeffs[j].Mul(b.coeffs[k-j]))
	}
	div, ok := acc.(scalar.Divider)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support division", acc)
	}
	q, err := div.Quo(b.coeffs[0])
	if err != nil {
		return err
	}
	dst.coeffs[k] = q
	return nil
}

// powRealAt implements the power recurrence:
//
//	c[0] = a[0]^p
//	c[k] = 1/(k*a[0]) * sum_{j=0}^{k-1} ((p*(k-j) - j) * c[j] * a[k-j])
func powRealAt(dst, a *Polynomial, p float64, k int) error {
	trans, ok := a.coeffs[0].(scalar.Transcendental)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support PowReal", a.coeffs[0])
	}
	if k == 0 {
		c0, err := trans.PowReal(p)
		if err != nil {
			return err
		}
		dst.coeffs[0] = c0
		return nil
	}
	if a.coeffs[0].IsZero() {
		return scalar.ErrDomain
	}
	sum := a.coeffs[0].Zero()
	for j := 0; j < k; j++ {
		coeff := p*float64(k-j) - float64(j)
		sum = sum.Add(dst.coeffs[j].Mul(a.coeffs[k-j]).Scale(coeff))
	}
	div, ok := sum.(scalar.Divider)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support division", sum)
	}
	denom := a.coeffs[0].Scale(float64(k))
	q, err := div.Quo(denom)
	if err != nil {
		return err
	}
	dst.coeffs[k] = q
	return nil
}

func expAt(dst, a *Polynomial, k int) error {
	trans, ok := a.coeffs[0].(scalar.Transcendental)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support Exp", a.coeffs[0])
	}
	if k == 0 {
		dst.coeffs[0] = trans.Exp()
		return nil
	}
	sum := a.coeffs[0].Zero()
	for j := 1; j <= k; j++ {
		sum = sum.Add(a.coeffs[j].Mul(dst.coeffs[k-j]).Scale(float64(j) / float64(k)))
	}
	dst.coeffs[k] = sum
	return nil
}

func logAt(dst, a *Polynomial, k int) error {
	trans, ok := a.coeffs[0].(scalar.Transcendental)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support Log", a.coeffs[0])
	}
	if k == 0 {
		c0, err := trans.Log()
		if err != nil {
			return err
		}
		dst.coeffs[0] = c0
		return nil
	}
	sum := a.coeffs[0].Zero()
	for j := 1; j < k; j++ {
		sum = sum.Add(a.coeffs[j].Mul(dst.coeffs[k-j]).Scale(float64(k-j) / float64(k)))
	}
	numerator := a.coeffs[k].Sub(sum)
	div, ok := numerator.(scalar.Divider)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support division", numerator)
	}
	q, err := div.Quo(a.coeffs[0])
	if err != nil {
		return err
	}
	dst.coeffs[k] = q
	return nil
}

// sinCosAt implements the paired sin/cos recurrence: both scratch
// polynomials are produced together since each order's sine coefficient
// needs the previous orders' cosine coefficients and vice versa.
func sinCosAt(s, c, a *Polynomial, k int) error {
	trans, ok := a.coeffs[0].(scalar.Transcendental)
	if !ok {
		return fmt.Errorf("poly: coefficient type %T does not support SinCos", a.coeffs[0])
	}
	if k == 0 {
		sinV, cosV := trans.SinCos()
		s.coeffs[0] = sinV
		c.coeffs[0] = cosV
		return nil
	}
	sinSum := a.coeffs[0].Zero()
	cosSum := a.coeffs[0].Zero()
	for j := 1; j <= k; j++ {
		ratio := float64(j) / float64(k)
		sinSum = sinSum.Add(a.coeffs[j].Mul(c.coeffs[k-j]).Scale(ratio))
		cosSum = cosSum.Add(a.coeffs[j].Mul(s.coeffs[k-j]).Scale(ratio))
	}
	s.coeffs[k] = sinSum
	c.coeffs[k] = cosSum.Neg()
	return nil
}

// --- allocating forms: drive the order-k recurrences across the whole
// buffer. These are what every caller outside this package uses.

func addP(a, b *Polynomial) *Polynomial {
	a.requireSameOrder(b)
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		addAt(dst, a, b, k)
	}
	return dst
}

func subP(a, b *Polynomial) *Polynomial {
	a.requireSameOrder(b)
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		subAt(dst, a, b, k)
	}
	return dst
}

func mulP(a, b *Polynomial) *Polynomial {
	a.requireSameOrder(b)
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		mulAt(dst, a, b, k)
	}
	return dst
}

func negP(a *Polynomial) *Polynomial {
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		negAt(dst, a, k)
	}
	return dst
}

func quoP(a, b *Polynomial) (*Polynomial, error) {
	a.requireSameOrder(b)
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		if err := quoAt(dst, a, b, k); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Add returns a fresh polynomial equal to a+b.
func Add(a, b *Polynomial) *Polynomial { return addP(a, b) }

// Sub returns a fresh polynomial equal to a-b.
func Sub(a, b *Polynomial) *Polynomial { return subP(a, b) }

// Mul returns a fresh polynomial equal to a*b.
func Mul(a, b *Polynomial) *Polynomial { return mulP(a, b) }

// Neg returns a fresh polynomial equal to -a.
func Neg(a *Polynomial) *Polynomial { return negP(a) }

// Quo returns a fresh polynomial equal to a/b, failing with
// scalar.ErrDivByZero when b's constant term is zero.
func Quo(a, b *Polynomial) (*Polynomial, error) { return quoP(a, b) }

// ScaleBy returns a fresh polynomial with every coefficient of a scaled
// by the real factor f.
func ScaleBy(a *Polynomial, f float64) *Polynomial {
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		dst.coeffs[k] = a.coeffs[k].Scale(f)
	}
	return dst
}

// PowReal returns a fresh polynomial equal to a^p for real p. It fails
// with scalar.ErrDomain when a's constant term is zero and p is not a
// non-negative integer.
func PowReal(a *Polynomial, p float64) (*Polynomial, error) {
	if a.coeffs[0].IsZero() && p >= 0 && p == float64(int(p)) {
		r := Constant(a.coeffs[0].One(), a.order)
		for i := 0; i < int(p); i++ {
			r = mulP(r, a)
		}
		return r, nil
	}
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		if err := powRealAt(dst, a, p, k); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Exp returns a fresh polynomial equal to exp(a).
func Exp(a *Polynomial) (*Polynomial, error) {
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		if err := expAt(dst, a, k); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Log returns a fresh polynomial equal to log(a), failing with
// scalar.ErrDomain when a's constant term is not positive.
func Log(a *Polynomial) (*Polynomial, error) {
	dst := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		if err := logAt(dst, a, k); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// SinCos returns fresh polynomials equal to sin(a) and cos(a), computed
// together since the recurrence for each needs the other's coefficients.
func SinCos(a *Polynomial) (sin, cos *Polynomial, err error) {
	s := blank(a.order, a.coeffs[0].Zero())
	c := blank(a.order, a.coeffs[0].Zero())
	for k := 0; k <= a.order; k++ {
		if err := sinCosAt(s, c, a, k); err != nil {
			return nil, nil, err
		}
	}
	return s, c, nil
}
