package step

import "math"

// Controller picks the next step size from the tail of a truncated
// Taylor series: the two highest-order coefficients each bound a
// candidate step under the tolerance, and the tighter one wins.
type Controller struct{}

// NewController returns a ready-to-use Controller. It carries no
// tunable state; the safety factors below are fixed by the algorithm.
func NewController() *Controller {
	return &Controller{}
}

// absoluteSafety and relativeSafety shrink the raw tail-coefficient
// bound into the series' actual region of convergence.
const absoluteSafety = 0.049787068367863944 // exp(-1) / exp(2)

func relativeSafety(n int) float64 {
	if n <= 1 {
		return absoluteSafety
	}
	return math.Exp(-7.0/(10.0*float64(n-1))) / math.Exp(2)
}

// Choose picks the next step size from the last two Taylor
// coefficients' magnitudes (aNm1 at order n-1, aN at order n) against
// an absolute tolerance. When both coefficients are zero the series
// gives no information to bound the step; Choose returns +Inf and
// ErrNoConstraint, leaving it to Clamp to cut the step down to
// whatever landing time the caller supplies.
func (c *Controller) Choose(aNm1, aN float64, n int, absTol float64) (float64, error) {
	return c.chooseWithSafety(aNm1, aN, n, absTol, absoluteSafety)
}

// ChooseRelative is Choose under the relative-tolerance regime: rho is
// the current state's norm (the infinity norm of the 0-th
// coefficients). When relTol*rho is no larger than absTol, the
// absolute-regime formula is used with an effective tolerance of 1;
// otherwise the effective tolerance is rho itself.
func (c *Controller) ChooseRelative(aNm1, aN float64, n int, rho, relTol, absTol float64) (float64, error) {
	var eps float64
	if relTol*rho <= absTol {
		eps = 1
	} else {
		eps = rho
	}
	return c.chooseWithSafety(aNm1, aN, n, eps, relativeSafety(n))
}

func (c *Controller) chooseWithSafety(aNm1, aN float64, n int, eps, safety float64) (float64, error) {
	haveCandidate := false
	dt := math.Inf(1)

	if n >= 2 && aNm1 != 0 {
		cand := math.Pow(eps/math.Abs(aNm1), 1.0/float64(n-1))
		if cand < dt {
			dt = cand
		}
		haveCandidate = true
	}
	if aN != 0 {
		cand := math.Pow(eps/math.Abs(aN), 1.0/float64(n))
		if cand < dt {
			dt = cand
		}
		haveCandidate = true
	}

	if !haveCandidate {
		return math.Inf(1), ErrNoConstraint
	}
	return dt * safety, nil
}

// Clamp shortens dt, if necessary, so that tNow+dt never overshoots
// tMax - applied before the step is taken, so a grid or fixed-endpoint
// integration lands exactly on its endpoint, and the mechanism that
// turns Choose's +Inf convergence-failure result into forward progress.
func (c *Controller) Clamp(dt, tNow, tMax float64) float64 {
	if tNow+dt > tMax || math.IsInf(dt, 1) {
		return tMax - tNow
	}
	return dt
}
