package variational

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/step"
)

// identityIdx returns [0, 1, ..., n-1], the direction/state index set a
// full-dimension System tracks.
func identityIdx(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// linearRHS builds x' = A*x for a constant matrix A, so its Jacobian
// is A itself everywhere - a good sanity check for the dual-number
// Jacobian technique independent of any integration error.
func linearRHS(a [][]float64) jet.RHS {
	return jet.FuncRHS(func(_ float64, x []*poly.Polynomial) ([]*poly.Polynomial, error) {
		n := len(x)
		out := make([]*poly.Polynomial, n)
		for i := 0; i < n; i++ {
			var sum *poly.Polynomial
			for j := 0; j < n; j++ {
				term := poly.ScaleBy(x[j], a[i][j])
				if sum == nil {
					sum = term
				} else {
					sum = poly.Add(sum, term)
				}
			}
			out[i] = sum
		}
		return out, nil
	})
}

func TestJacobianMatchesConstantMatrix(t *testing.T) {
	a := [][]float64{
		{2, 3},
		{0, -1},
	}
	sys := NewSystem(linearRHS(a), 2, identityIdx(2), identityIdx(2))

	J, err := sys.Jacobian(0, []float64{1.5, -0.7})
	if err != nil {
		t.Fatalf("Jacobian: unexpected error: %v", err)
	}

	for i := range a {
		for j := range a[i] {
			if math.Abs(J[i][j]-a[i][j]) > 1e-12 {
				t.Errorf("J[%d][%d] = %.15g, want %.15g", i, j, J[i][j], a[i][j])
			}
		}
	}
}

func TestJacobianHarmonicOscillator(t *testing.T) {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(x[0])
		return nil
	})
	sys := NewSystem(rhs, 2, identityIdx(2), identityIdx(2))

	J, err := sys.Jacobian(0, []float64{0.3, -0.1})
	if err != nil {
		t.Fatalf("Jacobian: unexpected error: %v", err)
	}

	want := [][]float64{{0, 1}, {-1, 0}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(J[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("J[%d][%d] = %.15g, want %.15g", i, j, J[i][j], want[i][j])
			}
		}
	}
}

// TestJacobianReducedDirectionsIndependentOfDState checks that d_var
// (the number of tracked columns) can be smaller than d_state (the
// number of reported rows), and that a caller may report a state row
// not itself among the tracked directions: a genuinely rectangular
// Jacobian block, not a square one restricted after the fact.
func TestJacobianReducedDirectionsIndependentOfDState(t *testing.T) {
	a := [][]float64{
		{1, 2, 0},
		{0, 3, 4},
		{5, 0, 6},
	}
	sys := NewSystem(linearRHS(a), 3, []int{0, 2}, []int{0, 1, 2})

	J, err := sys.Jacobian(0, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("Jacobian: unexpected error: %v", err)
	}
	if len(J) != 3 {
		t.Fatalf("expected 3 reported rows, got %d", len(J))
	}
	if len(J[0]) != 2 {
		t.Fatalf("expected 2 tracked columns, got %d", len(J[0]))
	}

	want := [][]float64{
		{a[0][0], a[0][2]},
		{a[1][0], a[1][2]},
		{a[2][0], a[2][2]},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(J[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("J[%d][%d] = %.15g, want %.15g", i, j, J[i][j], want[i][j])
			}
		}
	}
}

func checkOrthonormal(t *testing.T, name string, q [][]float64, tol float64) {
	if len(q) == 0 {
		return
	}
	cols := len(q[0])
	for i := 0; i < cols; i++ {
		for j := 0; j < cols; j++ {
			got := dotColumns(getColumn(q, i), getColumn(q, j))
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(got-want) > tol {
				t.Errorf("%s: Q columns %d,%d dot = %.3g, want %.3g", name, i, j, got, want)
			}
		}
	}
}

func checkReconstructs(t *testing.T, name string, a, q, r [][]float64, tol float64) {
	got := matMul(q, r)
	for i := range a {
		for j := range a[i] {
			if math.Abs(got[i][j]-a[i][j]) > tol {
				t.Errorf("%s: (Q*R)[%d][%d] = %.6g, want %.6g", name, i, j, got[i][j], a[i][j])
			}
		}
	}
}

func TestReorthonormalizeMGSRoundTrip(t *testing.T) {
	a := [][]float64{
		{4, 2, 1},
		{0, 3, 1},
		{1, 1, 5},
	}
	q, r := ReorthonormalizeMGS(a)
	checkOrthonormal(t, "MGS", q, 1e-10)
	checkReconstructs(t, "MGS", a, q, r, 1e-10)
}

func TestReorthonormalizeCGSRoundTrip(t *testing.T) {
	a := [][]float64{
		{4, 2, 1},
		{0, 3, 1},
		{1, 1, 5},
	}
	q, r := ReorthonormalizeCGS(a)
	checkOrthonormal(t, "CGS", q, 1e-8)
	checkReconstructs(t, "CGS", a, q, r, 1e-8)
}

// TestReorthonormalizeMGSTallMatrix exercises a genuinely rectangular
// Phi: five ambient rows, two tracked columns, the shape a reduced
// direction set produces.
func TestReorthonormalizeMGSTallMatrix(t *testing.T) {
	a := [][]float64{
		{1, 0},
		{2, 1},
		{0, 3},
		{1, 1},
		{4, 0},
	}
	q, r := ReorthonormalizeMGS(a)
	if len(q) != 5 || len(q[0]) != 2 {
		t.Fatalf("Q shape = %dx%d, want 5x2", len(q), len(q[0]))
	}
	if len(r) != 2 || len(r[0]) != 2 {
		t.Fatalf("R shape = %dx%d, want 2x2", len(r), len(r[0]))
	}
	checkOrthonormal(t, "MGS tall", q, 1e-10)
	checkReconstructs(t, "MGS tall", a, q, r, 1e-10)
}

// TestAdvanceStepTangentMatchesJacobianForLinearSystem checks the
// nested-dual tangent propagation directly: for a linear system x'=A*x,
// the tangent column ought to advance by exactly the same matrix
// exponential the physical state does, to within the truncated series'
// own accuracy - but here it is produced by dualJets/evalDual, the same
// order-N recurrence and Horner evaluation the physical trajectory
// uses, not a separate matrix-exponential approximation.
func TestAdvanceStepTangentMatchesJacobianForLinearSystem(t *testing.T) {
	a := [][]float64{
		{0, 1},
		{-1, 0},
	}
	driver := jet.NewDriver(14, linearRHS(a))
	controller := step.NewController()

	x := []float64{1, 0}
	phi := initialTangent(2, identityIdx(2))

	tNext, xNext, phiNext, err := advanceStep(driver, controller, 0, x, phi, 1e-12, 1.0)
	if err != nil {
		t.Fatalf("advanceStep: unexpected error: %v", err)
	}
	if tNext <= 0 {
		t.Fatalf("expected forward progress, got t=%g", tNext)
	}

	// The exact flow is a pure rotation: x(t) = R(t)*x0, and since the
	// system is linear its own flow Jacobian is R(t) too, so Phi(t)
	// should equal R(t) exactly (to truncation accuracy).
	want := [][]float64{
		{math.Cos(tNext), math.Sin(tNext)},
		{-math.Sin(tNext), math.Cos(tNext)},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(phiNext[i][j]-want[i][j]) > 1e-8 {
				t.Errorf("Phi[%d][%d] = %.10g, want %.10g", i, j, phiNext[i][j], want[i][j])
			}
		}
	}
	if math.Abs(xNext[0]-math.Cos(tNext)) > 1e-8 || math.Abs(xNext[1]+math.Sin(tNext)) > 1e-8 {
		t.Errorf("x(t) = %v, want (cos t, -sin t) at t=%g", xNext, tNext)
	}
}

// TestComputeSpectrumHarmonicOscillatorSumsToZero checks the textbook
// consistency condition for a Hamiltonian system: the sum of the
// Lyapunov exponents equals the phase-space divergence of the flow,
// which is zero for the harmonic oscillator (x'=v, v'=-x has
// divergence d(v)/dx + d(-x)/dv = 0).
func TestComputeSpectrumHarmonicOscillatorSumsToZero(t *testing.T) {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(x[0])
		return nil
	})
	sys := NewSystem(rhs, 2, identityIdx(2), identityIdx(2))

	spec, err := ComputeSpectrum(context.Background(), sys, 10, 0, []float64{1, 0}, 0.05, 40, 1e-10, 2.0, 10_000, true)
	if err != nil {
		t.Fatalf("ComputeSpectrum: unexpected error: %v", err)
	}

	sum := 0.0
	for _, v := range spec.Final {
		sum += v
	}
	if math.Abs(sum) > 0.05 {
		t.Errorf("sum of Lyapunov exponents = %.6g, want ~0", sum)
	}
}

func TestComputeSpectrumCGSAgreesWithMGS(t *testing.T) {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(x[0])
		return nil
	})
	sys := NewSystem(rhs, 2, identityIdx(2), identityIdx(2))

	specMGS, err := ComputeSpectrum(context.Background(), sys, 10, 0, []float64{1, 0}, 0.05, 20, 1e-10, 2.0, 10_000, true)
	if err != nil {
		t.Fatalf("ComputeSpectrum (MGS): unexpected error: %v", err)
	}
	specCGS, err := ComputeSpectrum(context.Background(), sys, 10, 0, []float64{1, 0}, 0.05, 20, 1e-10, 2.0, 10_000, false)
	if err != nil {
		t.Fatalf("ComputeSpectrum (CGS): unexpected error: %v", err)
	}

	for i := range specMGS.Final {
		if math.Abs(specMGS.Final[i]-specCGS.Final[i]) > 0.05 {
			t.Errorf("direction %d: MGS=%.6g CGS=%.6g disagree", i, specMGS.Final[i], specCGS.Final[i])
		}
	}
}

// TestComputeSpectrumReducedDirectionsRunsIndependentOfBaseDim checks
// that a caller tracking fewer directions than the ambient dimension
// gets a Spectrum sized to d_var, not d_state or BaseDim.
func TestComputeSpectrumReducedDirectionsRunsIndependentOfBaseDim(t *testing.T) {
	rhs := jet.InPlaceRHS(func(_ float64, x, xdot []*poly.Polynomial) error {
		xdot[0] = x[1].Clone()
		xdot[1] = poly.Neg(x[0])
		xdot[2] = poly.Neg(x[2])
		return nil
	})
	sys := NewSystem(rhs, 3, []int{0, 1}, []int{2})

	spec, err := ComputeSpectrum(context.Background(), sys, 10, 0, []float64{1, 0, 1}, 0.05, 10, 1e-10, 2.0, 10_000, true)
	if err != nil {
		t.Fatalf("ComputeSpectrum: unexpected error: %v", err)
	}
	if len(spec.Final) != 2 {
		t.Fatalf("Spectrum.Final has %d entries, want d_var=2", len(spec.Final))
	}
}
