package jet

import (
	"fmt"

	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
)

// Func is the allocating right-hand side form: given the current time
// and a state of order-N jets, it returns a fresh slice of order-N
// jets for the derivative.
type Func func(t float64, x []*poly.Polynomial) ([]*poly.Polynomial, error)

// InPlaceFunc is the mutating right-hand side form: it writes the
// derivative jets into the caller-supplied xdot slice, which is
// pre-allocated to the same order and length as x. Driver.Evaluate
// allocates a fresh xdot on each call.
type InPlaceFunc func(t float64, x, xdot []*poly.Polynomial) error

// RHS is the sum type jet.Driver dispatches on. Callers never implement
// it directly; they wrap a Func or InPlaceFunc with FuncRHS or
// InPlaceRHS.
type RHS interface {
	isRHS()
}

// FuncRHS adapts a Func to RHS.
type FuncRHS Func

func (FuncRHS) isRHS() {}

// InPlaceRHS adapts an InPlaceFunc to RHS.
type InPlaceRHS InPlaceFunc

func (InPlaceRHS) isRHS() {}

// Driver runs the order-by-order coefficient recurrence described in
// the package doc, against a fixed right-hand side and truncation
// order N.
type Driver struct {
	N   int
	RHS RHS
}

// NewDriver builds a Driver for the given truncation order and
// right-hand side.
func NewDriver(n int, rhs RHS) *Driver {
	return &Driver{N: n, RHS: rhs}
}

// Compute fills in orders 1..N of the Taylor jet for every state
// coordinate, seeded at x0 and evaluated at the fixed time t0. The
// returned polynomials' coefficient k equals the k-th Taylor
// coefficient of the corresponding state coordinate around t0, i.e.
// x_j^(k)(t0)/k!.
func (d *Driver) Compute(t0 float64, x0 []scalar.Scalar) ([]*poly.Polynomial, error) {
	x := make([]*poly.Polynomial, len(x0))
	for j, c := range x0 {
		x[j] = poly.Constant(c, d.N)
	}

	for ord := 1; ord <= d.N; ord++ {
		prefix := make([]*poly.Polynomial, len(x))
		for j := range x {
			prefix[j] = x[j].Prefix(ord)
		}

		xdot, err := d.Evaluate(t0, prefix)
		if err != nil {
			return nil, fmt.Errorf("jet: evaluating right-hand side at order %d: %w", ord, err)
		}

		for j := range x {
			next := xdot[j].Coeff(ord - 1).Scale(1.0 / float64(ord))
			x[j].SetCoeff(ord, next)
		}
	}

	return x, nil
}

// Evaluate runs the right-hand side once at (t, x), dispatching to
// whichever concrete form - allocating or in-place - d.RHS wraps. It
// is exported so callers that need a single right-hand-side
// evaluation without a full coefficient recurrence (internal/variational's
// Jacobian-by-dual-numbers technique) can reuse the same dispatch.
func (d *Driver) Evaluate(t float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
	switch rhs := d.RHS.(type) {
	case FuncRHS:
		return Func(rhs)(t, x)
	case InPlaceRHS:
		xdot := make([]*poly.Polynomial, len(x))
		for j := range xdot {
			xdot[j] = poly.Constant(x[j].Coeff(0).Zero(), d.N)
		}
		if err := InPlaceFunc(rhs)(t, x, xdot); err != nil {
			return nil, err
		}
		return xdot, nil
	default:
		return nil, fmt.Errorf("jet: unsupported RHS implementation %T", d.RHS)
	}
}
