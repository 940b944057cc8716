package poly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/taylorstep/internal/scalar"
)

// ErrOrderMismatch is the value every operation panics with when two
// polynomials participating in it do not share a degree bound; no
// function returns it as an error.
var ErrOrderMismatch = errors.New("poly: mismatched polynomial orders")

// Polynomial is a degree-<=N univariate truncated polynomial over a
// scalar.Scalar coefficient type. The buffer length is always Order()+1
// and never changes after construction.
type Polynomial struct {
	order  int
	coeffs []scalar.Scalar
}

// Constant builds "c at order N": the buffer [c, 0, 0, ...].
func Constant(c scalar.Scalar, order int) *Polynomial {
	p := &Polynomial{order: order, coeffs: make([]scalar.Scalar, order+1)}
	p.coeffs[0] = c
	zero := c.Zero()
	for k := 1; k <= order; k++ {
		p.coeffs[k] = zero
	}
	return p
}

// Variable builds "the independent variable at order N" seeded at value
// c: the buffer [c, 1, 0, 0, ...]. (jet.Driver seeds state coordinates
// with Constant, not Variable.)
func Variable(c scalar.Scalar, order int) *Polynomial {
	p := Constant(c, order)
	if order >= 1 {
		p.coeffs[1] = c.One()
	}
	return p
}

// Dual builds "the independent variable at order N" seeded at value c
// with first-order coefficient d: the buffer [c, d, 0, 0, ...]. Unlike
// Variable, whose derivative is fixed at One(), Dual lets the caller
// pick an arbitrary directional derivative - this is how a tangent
// vector's component seeds a state coordinate before jet.Driver.Compute
// propagates it through the same order-N recurrence as the trajectory
// itself.
func Dual(c, d scalar.Scalar, order int) *Polynomial {
	p := Constant(c, order)
	if order >= 1 {
		p.coeffs[1] = d
	}
	return p
}

// FromCoeffs takes ownership of an existing coefficient slice; len(cs)-1
// becomes the degree bound. It does not copy cs.
func FromCoeffs(cs []scalar.Scalar) *Polynomial {
	return &Polynomial{order: len(cs) - 1, coeffs: cs}
}

// Order returns the polynomial's fixed degree bound N.
func (p *Polynomial) Order() int { return p.order }

// Coeff returns coefficient k. It panics if k is out of range, the same
// contract as a plain slice index.
func (p *Polynomial) Coeff(k int) scalar.Scalar { return p.coeffs[k] }

// SetCoeff overwrites coefficient k.
func (p *Polynomial) SetCoeff(k int, v scalar.Scalar) { p.coeffs[k] = v }

// Coeffs returns the backing coefficient slice directly; callers that
// need an independent copy should use Clone.
func (p *Polynomial) Coeffs() []scalar.Scalar { return p.coeffs }

// Clone returns a polynomial with an independent coefficient buffer.
func (p *Polynomial) Clone() *Polynomial {
	cs := make([]scalar.Scalar, len(p.coeffs))
	copy(cs, p.coeffs)
	return &Polynomial{order: p.order, coeffs: cs}
}

// Prefix returns a zero-padded scratch polynomial of the same order as p
// whose first n coefficients equal p's and whose remaining coefficients
// are zero. This is the "prefix view at order n-1" the jet driver needs
// at each stage of the coefficient recurrence.
func (p *Polynomial) Prefix(n int) *Polynomial {
	cs := make([]scalar.Scalar, len(p.coeffs))
	zero := p.coeffs[0].Zero()
	for k := range cs {
		if k < n {
			cs[k] = p.coeffs[k]
		} else {
			cs[k] = zero
		}
	}
	return &Polynomial{order: p.order, coeffs: cs}
}

func (p *Polynomial) requireSameOrder(q *Polynomial) {
	if p.order != q.order {
		panic(fmt.Errorf("%w: %d vs %d", ErrOrderMismatch, p.order, q.order))
	}
}

func (p *Polynomial) String() string {
	parts := make([]string, len(p.coeffs))
	for k, c := range p.coeffs {
		parts[k] = fmt.Sprintf("%s*t^%d", c.String(), k)
	}
	return strings.Join(parts, " + ")
}

// --- scalar.Scalar adapter: lets a Polynomial sit as a coefficient of
// another Polynomial, the mechanism internal/variational uses to nest
// a first-order directional-derivative jet inside the physical one.

func (p *Polynomial) Add(other scalar.Scalar) scalar.Scalar { return addP(p, other.(*Polynomial)) }
func (p *Polynomial) Sub(other scalar.Scalar) scalar.Scalar { return subP(p, other.(*Polynomial)) }
func (p *Polynomial) Mul(other scalar.Scalar) scalar.Scalar { return mulP(p, other.(*Polynomial)) }
func (p *Polynomial) Neg() scalar.Scalar                    { return negP(p) }

func (p *Polynomial) Scale(f float64) scalar.Scalar {
	cs := make([]scalar.Scalar, len(p.coeffs))
	for k, c := range p.coeffs {
		cs[k] = c.Scale(f)
	}
	return &Polynomial{order: p.order, coeffs: cs}
}

func (p *Polynomial) Abs() float64 {
	// Sup-norm over coefficients: a reasonable notion of "size" for a
	// nested polynomial scalar, used only by the step controller's tail
	// estimate when T itself is *Polynomial (the variational system).
	max := 0.0
	for _, c := range p.coeffs {
		if a := c.Abs(); a > max {
			max = a
		}
	}
	return max
}

func (p *Polynomial) IsZero() bool {
	for _, c := range p.coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

func (p *Polynomial) Zero() scalar.Scalar { return Constant(p.coeffs[0].Zero(), p.order) }
func (p *Polynomial) One() scalar.Scalar  { return Constant(p.coeffs[0].One(), p.order) }

func (p *Polynomial) Equal(other scalar.Scalar) bool {
	q := other.(*Polynomial)
	if p.order != q.order {
		return false
	}
	for k := range p.coeffs {
		if !p.coeffs[k].Equal(q.coeffs[k]) {
			return false
		}
	}
	return true
}

// Quo implements scalar.Divider so a *Polynomial can be used as the
// coefficient type of an outer polynomial whose recurrence divides.
func (p *Polynomial) Quo(other scalar.Scalar) (scalar.Scalar, error) { return quoP(p, other.(*Polynomial)) }

// --- scalar.Transcendental adapter: lets a Polynomial nest inside a
// Polynomial through an RHS that calls Exp/Log/SinCos/PowReal/Sqrt, the
// same way internal/variational nests one through Add/Mul/Sub. The
// interface has no room for an error return, so failures here panic,
// same convention as requireSameOrder above.

func (p *Polynomial) Exp() scalar.Scalar {
	r, err := Exp(p)
	if err != nil {
		panic(err)
	}
	return r
}

func (p *Polynomial) Log() (scalar.Scalar, error) {
	r, err := Log(p)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Polynomial) SinCos() (sin, cos scalar.Scalar) {
	s, c, err := SinCos(p)
	if err != nil {
		panic(err)
	}
	return s, c
}

func (p *Polynomial) PowReal(exp float64) (scalar.Scalar, error) {
	r, err := PowReal(p, exp)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Polynomial) Sqrt() (scalar.Scalar, error) { return p.PowReal(0.5) }
