package variational

import (
	"context"
	"math"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/step"
	"github.com/san-kum/taylorstep/internal/taylorint"
)

// Spectrum records the running Lyapunov-exponent estimate at every
// reorthonormalization checkpoint.
type Spectrum struct {
	Times     []float64
	Estimates [][]float64 // Estimates[i][d] is direction d's running exponent at Times[i]
	Final     []float64
}

// ComputeSpectrum estimates the Lyapunov spectrum of sys along the
// trajectory from x0 at t0 to tmax. Every accepted step advances both
// the physical state and the tangent matrix Phi together, by nesting a
// dual-number nested jet inside the same order-N coefficient recurrence
// the physical integrator runs (see dualJets) - there is no separate,
// less accurate propagation path for Phi. After each step whose
// elapsed time since the last checkpoint reaches reorthInterval, Phi is
// factored Q*R with the chosen Gram-Schmidt variant, log|R_ii| is
// accumulated per tracked direction, and Phi is replaced by Q so its
// columns cannot collapse onto the dominant growth direction.
func ComputeSpectrum(ctx context.Context, sys *System, order int, t0 float64, x0 []float64, dt0, tmax, absTol, reorthInterval float64, maxSteps int, useMGS bool) (*Spectrum, error) {
	dVar := sys.DVar()
	if len(x0) != sys.BaseDim {
		return nil, &taylorint.StepError{Time: t0, Wrapped: taylorint.ErrInvalidState}
	}

	driver := jet.NewDriver(order, sys.Base)
	controller := step.NewController()

	x := append([]float64(nil), x0...)
	phi := initialTangent(sys.BaseDim, sys.DirectionIdx)
	sumLogR := make([]float64, dVar)

	t := t0
	lastCheckpoint := t0
	spec := &Spectrum{
		Times:     []float64{t0},
		Estimates: [][]float64{make([]float64, dVar)},
	}

	for stepIdx := 0; t < tmax; stepIdx++ {
		select {
		case <-ctx.Done():
			return spec, ctx.Err()
		default:
		}
		if stepIdx >= maxSteps {
			break
		}

		tNext, xNext, phiNext, err := advanceStep(driver, controller, t, x, phi, absTol, tmax)
		if err != nil {
			return spec, &taylorint.StepError{Step: stepIdx, Time: t, Wrapped: err}
		}

		t, x, phi = tNext, xNext, phiNext

		if dVar > 0 && (t-lastCheckpoint >= reorthInterval || t >= tmax) {
			var q, r [][]float64
			if useMGS {
				q, r = ReorthonormalizeMGS(phi)
			} else {
				q, r = ReorthonormalizeCGS(phi)
			}
			for i := 0; i < dVar; i++ {
				sumLogR[i] += math.Log(math.Abs(r[i][i]))
			}
			phi = q
			lastCheckpoint = t

			snapshot := make([]float64, dVar)
			elapsed := t - t0
			for i := range snapshot {
				if elapsed > 0 {
					snapshot[i] = sumLogR[i] / elapsed
				}
			}
			spec.Times = append(spec.Times, t)
			spec.Estimates = append(spec.Estimates, snapshot)
		}
	}

	spec.Final = spec.Estimates[len(spec.Estimates)-1]
	return spec, nil
}

// advanceStep picks a step size from the physical tail coefficients
// exposed by column 0's dual jet (or, with no tracked directions, a
// zero-seeded dual jet whose epsilon part is simply unused), then
// evaluates the physical state and every tangent column at that step.
func advanceStep(driver *jet.Driver, controller *step.Controller, t float64, x []float64, phi [][]float64, absTol, hardLimit float64) (float64, []float64, [][]float64, error) {
	baseDim := len(x)
	dVar := 0
	if len(phi) > 0 {
		dVar = len(phi[0])
	}

	seed := make([]float64, baseDim)
	if dVar > 0 {
		seed = getColumn(phi, 0)
	}

	jets, err := dualJets(driver, baseDim, t, x, seed)
	if err != nil {
		return 0, nil, nil, err
	}

	aNm1, aN := dualTailMagnitudes(jets, driver.N)
	dt, tolErr := controller.Choose(aNm1, aN, driver.N, absTol)
	if tolErr != nil && tolErr != step.ErrNoConstraint {
		return 0, nil, nil, tolErr
	}
	dt = controller.Clamp(dt, t, hardLimit)
	if dt <= 0 {
		return 0, nil, nil, taylorint.ErrStepTooSmall
	}

	xNext, col0Next := evalDual(jets, dt)
	for _, v := range xNext {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nil, nil, taylorint.ErrInvalidState
		}
	}

	phiNext := make([][]float64, baseDim)
	for i := range phiNext {
		phiNext[i] = make([]float64, dVar)
	}
	if dVar > 0 {
		setColumn(phiNext, 0, col0Next)
	}
	for j := 1; j < dVar; j++ {
		colJets, err := dualJets(driver, baseDim, t, x, getColumn(phi, j))
		if err != nil {
			return 0, nil, nil, err
		}
		_, colNext := evalDual(colJets, dt)
		setColumn(phiNext, j, colNext)
	}

	return t + dt, xNext, phiNext, nil
}
