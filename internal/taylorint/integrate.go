package taylorint

import (
	"context"
	"math"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
	"github.com/san-kum/taylorstep/internal/step"
)

// DefaultMaxSteps bounds an integration that would otherwise run
// forever against a controller stuck picking tiny steps.
const DefaultMaxSteps = 1_000_000

type toleranceFn func(c *step.Controller, aNm1, aN float64, n int, rho float64) (float64, error)

func absoluteTol(tol float64) toleranceFn {
	return func(c *step.Controller, aNm1, aN float64, n int, _ float64) (float64, error) {
		return c.Choose(aNm1, aN, n, tol)
	}
}

func relativeTol(relTol, absTol float64) toleranceFn {
	return func(c *step.Controller, aNm1, aN float64, n int, rho float64) (float64, error) {
		return c.ChooseRelative(aNm1, aN, n, rho, relTol, absTol)
	}
}

// dynamicOrder computes the expansion order a relative-tolerance
// integration uses before taking its first step, from the tightest of
// the absolute and (state-scaled) relative tolerances.
func dynamicOrder(absTol, relTol, x0Norm float64) int {
	m := math.Min(absTol, relTol*x0Norm)
	if m <= 0 || math.IsNaN(m) {
		return 20
	}
	n := int(math.Ceil(1 - math.Log(m)/2))
	if n < 2 {
		n = 2
	}
	return n
}

// IntegrateToTmax advances the system from t0 to tmax under an
// absolute-tolerance step controller, recording every accepted step.
func IntegrateToTmax(ctx context.Context, rhs jet.RHS, n int, t0 float64, x0 []scalar.Scalar, dt0, tmax, absTol float64, maxSteps int) (*Trajectory, error) {
	return integrateToTmax(ctx, rhs, n, t0, x0, dt0, tmax, maxSteps, absoluteTol(absTol))
}

// IntegrateToTmaxRel is IntegrateToTmax under a relative tolerance
// scaled by the current state norm; the expansion order is chosen
// dynamically from absTol, relTol, and the norm of x0.
func IntegrateToTmaxRel(ctx context.Context, rhs jet.RHS, t0 float64, x0 []scalar.Scalar, dt0, tmax, relTol, absTol float64, maxSteps int) (*Trajectory, error) {
	n := dynamicOrder(absTol, relTol, infNorm(x0))
	return integrateToTmax(ctx, rhs, n, t0, x0, dt0, tmax, maxSteps, relativeTol(relTol, absTol))
}

// IntegrateOnGrid advances the system from t0, landing exactly on each
// time in grid (which must be strictly increasing and greater than
// t0), under an absolute-tolerance step controller. The trajectory
// holds the initial point followed by one entry per grid point;
// intermediate accepted steps taken to reach them are not recorded.
func IntegrateOnGrid(ctx context.Context, rhs jet.RHS, n int, t0 float64, x0 []scalar.Scalar, dt0 float64, grid []float64, absTol float64, maxSteps int) (*Trajectory, error) {
	return integrateOnGrid(ctx, rhs, n, t0, x0, dt0, grid, maxSteps, absoluteTol(absTol))
}

// IntegrateOnGridRel is IntegrateOnGrid under a relative tolerance
// scaled by the current state norm, with the expansion order chosen
// dynamically as in IntegrateToTmaxRel.
func IntegrateOnGridRel(ctx context.Context, rhs jet.RHS, t0 float64, x0 []scalar.Scalar, dt0 float64, grid []float64, relTol, absTol float64, maxSteps int) (*Trajectory, error) {
	n := dynamicOrder(absTol, relTol, infNorm(x0))
	return integrateOnGrid(ctx, rhs, n, t0, x0, dt0, grid, maxSteps, relativeTol(relTol, absTol))
}

func integrateToTmax(ctx context.Context, rhs jet.RHS, n int, t0 float64, x0 []scalar.Scalar, dt0, tmax float64, maxSteps int, tol toleranceFn) (*Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	driver := jet.NewDriver(n, rhs)
	controller := step.NewController()
	traj := newTrajectory(t0, x0, estimateCapacity(t0, tmax, dt0))

	t, x := t0, x0
	stepIdx := 0

	for t < tmax {
		select {
		case <-ctx.Done():
			return traj, ErrContextCanceled
		default:
		}

		if stepIdx >= maxSteps {
			traj.Warnings = append(traj.Warnings, StepCapWarning{Step: stepIdx, Time: t})
			break
		}

		tNew, xNew, err := advanceOneStep(driver, controller, n, t, x, tmax, tol)
		if err != nil {
			return traj, &StepError{Step: stepIdx, Time: t, Wrapped: err}
		}

		t, x = tNew, xNew
		stepIdx++
		traj.append(t, x)
	}

	traj.StepsTaken = stepIdx
	return traj, nil
}

func integrateOnGrid(ctx context.Context, rhs jet.RHS, n int, t0 float64, x0 []scalar.Scalar, dt0 float64, grid []float64, maxSteps int, tol toleranceFn) (*Trajectory, error) {
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}
	prev := t0
	for _, g := range grid {
		if g <= prev {
			return nil, ErrNonMonotonicGrid
		}
		prev = g
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	driver := jet.NewDriver(n, rhs)
	controller := step.NewController()
	traj := newTrajectory(t0, x0, len(grid)+1)

	t, x := t0, x0
	budget := maxSteps
	stepIdx := 0

outer:
	for _, target := range grid {
		for t < target {
			select {
			case <-ctx.Done():
				traj.StepsTaken = stepIdx
				return traj, ErrContextCanceled
			default:
			}

			if budget <= 0 {
				traj.Warnings = append(traj.Warnings, StepCapWarning{Step: stepIdx, Time: t})
				break outer
			}

			tNew, xNew, err := advanceOneStep(driver, controller, n, t, x, target, tol)
			if err != nil {
				traj.StepsTaken = stepIdx
				return traj, &StepError{Step: stepIdx, Time: t, Wrapped: err}
			}

			t, x = tNew, xNew
			stepIdx++
			budget--
		}
		traj.append(t, x)
	}

	traj.StepsTaken = stepIdx
	return traj, nil
}

// advanceOneStep computes the jet at (t, x), picks a step size from
// its tail, clamps it against hardLimit (the current segment's target
// time), and evaluates the accepted jet to produce the next state.
//
// The tail passed to the controller is the worst case (largest
// magnitude) coefficient across coordinates at each of the two tail
// orders, which is equivalent to computing every coordinate's own
// candidate step and taking the minimum, since the candidate-step
// formula is monotonically decreasing in coefficient magnitude.
func advanceOneStep(driver *jet.Driver, controller *step.Controller, n int, t float64, x []scalar.Scalar, hardLimit float64, tol toleranceFn) (float64, []scalar.Scalar, error) {
	jets, err := driver.Compute(t, x)
	if err != nil {
		return 0, nil, err
	}

	aNm1, aN := tailMagnitudes(jets, n)
	rho := infNorm(x)

	dt, tolErr := tol(controller, aNm1, aN, n, rho)
	if tolErr != nil && tolErr != step.ErrNoConstraint {
		return 0, nil, tolErr
	}
	dt = controller.Clamp(dt, t, hardLimit)
	if dt <= 0 {
		return 0, nil, ErrStepTooSmall
	}

	delta := x[0].One().Scale(dt)
	xNew := poly.EvalVector(jets, delta)

	for _, v := range xNew {
		if a := v.Abs(); math.IsNaN(a) || math.IsInf(a, 0) {
			return 0, nil, ErrInvalidState
		}
	}

	return t + dt, xNew, nil
}

func tailMagnitudes(jets []*poly.Polynomial, n int) (aNm1, aN float64) {
	for _, p := range jets {
		if n >= 1 {
			if a := p.Coeff(n - 1).Abs(); a > aNm1 {
				aNm1 = a
			}
		}
		if a := p.Coeff(n).Abs(); a > aN {
			aN = a
		}
	}
	return aNm1, aN
}

func infNorm(x []scalar.Scalar) float64 {
	max := 0.0
	for _, v := range x {
		if a := v.Abs(); a > max {
			max = a
		}
	}
	return max
}

func estimateCapacity(t0, tmax, dt0 float64) int {
	if dt0 <= 0 {
		return 64
	}
	n := int((tmax-t0)/dt0) + 2
	if n < 16 {
		return 16
	}
	if n > 1<<20 {
		return 1 << 20
	}
	return n
}
