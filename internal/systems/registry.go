// Package systems is a small named registry of built-in right-hand
// sides, so the CLI and config presets can refer to a system by string
// without every caller re-deriving its polynomial arithmetic by hand.
package systems

import (
	"fmt"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
)

// System pairs a right-hand side with the dimension it expects.
type System struct {
	Dim int
	RHS jet.RHS
}

var registry = map[string]func() System{
	"quadratic":          quadratic,
	"constant_drift":     constantDrift,
	"pendulum":           pendulum,
	"complex_oscillator": complexOscillator,
	"kepler":             kepler,
	"lorenz":             lorenz,
}

// Get looks up a built-in system by name.
func Get(name string) (System, error) {
	fn, ok := registry[name]
	if !ok {
		return System{}, fmt.Errorf("systems: unknown system %q", name)
	}
	return fn(), nil
}

// Names lists every registered system name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// quadratic is x' = x^2, whose exact solution 1/(1-t) blows up at
// t=1: a canonical stress test for the step controller's tail estimate
// near a genuine singularity.
func quadratic() System {
	rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
		return []*poly.Polynomial{poly.Mul(x[0], x[0])}, nil
	})
	return System{Dim: 1, RHS: rhs}
}

// constantDrift is x' = 1, whose Taylor series has exactly two nonzero
// coefficients: a degenerate case the step controller's convergence-
// failure path (both tail coefficients zero) must handle by falling
// back to the caller's remaining time.
func constantDrift() System {
	rhs := jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
		one := poly.Constant(x[0].Coeff(0).One(), x[0].Order())
		return []*poly.Polynomial{one}, nil
	})
	return System{Dim: 1, RHS: rhs}
}

// pendulum is the simple undamped pendulum theta''=-sin(theta), written
// as the first-order pair (theta, omega).
func pendulum() System {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		sin, _, err := poly.SinCos(x[0])
		if err != nil {
			return err
		}
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(sin)
		return nil
	})
	return System{Dim: 2, RHS: rhs}
}

// complexOscillator is x'=v, v'=-x. The right-hand side works for any
// coefficient type; the coefficient type of the initial state decides
// whether it runs over real or complex values.
func complexOscillator() System {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(x[0])
		return nil
	})
	return System{Dim: 2, RHS: rhs}
}

// kepler is the planar two-body problem in relative coordinates
// (qx, qy, vx, vy) under an inverse-square force, GM=1.
func kepler() System {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		qx, qy := x[0], x[1]
		vx, vy := x[2], x[3]

		r2 := poly.Add(poly.Mul(qx, qx), poly.Mul(qy, qy))
		r3, err := poly.PowReal(r2, 1.5)
		if err != nil {
			return err
		}
		invR3, err := poly.Quo(poly.Constant(qx.Coeff(0).One(), qx.Order()), r3)
		if err != nil {
			return err
		}

		xdot[0] = vx.Clone()
		xdot[1] = vy.Clone()
		xdot[2] = poly.Neg(poly.Mul(qx, invR3))
		xdot[3] = poly.Neg(poly.Mul(qy, invR3))
		return nil
	})
	return System{Dim: 4, RHS: rhs}
}

// lorenz is the classical Lorenz attractor at its standard chaotic
// parameters (sigma=10, rho=28, beta=8/3): the canonical toy system for
// exercising a genuinely positive leading Lyapunov exponent; none of
// the other built-in systems here is chaotic.
func lorenz() System {
	const (
		sigma = 10.0
		rho   = 28.0
		beta  = 8.0 / 3.0
	)
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xx, yy, zz := x[0], x[1], x[2]
		xdot[0] = poly.ScaleBy(poly.Sub(yy, xx), sigma)
		xdot[1] = poly.Sub(poly.ScaleBy(xx, rho), poly.Add(poly.Mul(xx, zz), yy))
		xdot[2] = poly.Sub(poly.Mul(xx, yy), poly.ScaleBy(zz, beta))
		return nil
	})
	return System{Dim: 3, RHS: rhs}
}
