package variational

import (
	"fmt"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/poly"
	"github.com/san-kum/taylorstep/internal/scalar"
)

// System wraps a physical right-hand side of known ambient dimension
// together with the subset of coordinates whose perturbation is
// tracked (DirectionIdx) and the subset whose sensitivity is reported
// (StateIdx). The two sets are independent: d_var = len(DirectionIdx)
// need not equal d_state = len(StateIdx), and neither needs to equal
// BaseDim - a caller tracking a handful of directions through a large
// ambient system never pays for the rest of it.
type System struct {
	Base         jet.RHS
	BaseDim      int
	DirectionIdx []int
	StateIdx     []int
}

// NewSystem builds a System over a baseDim-dimensional physical right-
// hand side, tracking a perturbation direction for every index in
// directionIdx and reporting Jacobian rows for every index in stateIdx.
func NewSystem(base jet.RHS, baseDim int, directionIdx, stateIdx []int) *System {
	return &System{
		Base:         base,
		BaseDim:      baseDim,
		DirectionIdx: directionIdx,
		StateIdx:     stateIdx,
	}
}

// DVar is the number of tracked perturbation directions (Phi's column
// count).
func (s *System) DVar() int { return len(s.DirectionIdx) }

// DState is the number of reported Jacobian rows.
func (s *System) DState() int { return len(s.StateIdx) }

// Jacobian computes the DState() x DVar() block of the physical right-
// hand side's ambient Jacobian at (t, x): row i is the derivative of
// coordinate StateIdx[i], column j is the derivative taken with
// respect to coordinate DirectionIdx[j]. Column j is obtained by
// seeding coordinate DirectionIdx[j] with an order-1 dual polynomial
// (value x[DirectionIdx[j]], derivative 1) and every other coordinate
// with the same order-1 polynomial holding a zero derivative, wrapping
// both as the coefficient type of an order-0 "time" polynomial so the
// ordinary right-hand side - written against the same poly kernel the
// physical integrator uses - can be evaluated unchanged. The
// coefficient-1 term of the resulting nested polynomial is exactly
// df_i/dx_dir.
func (s *System) Jacobian(t float64, x []float64) ([][]float64, error) {
	if len(x) != s.BaseDim {
		return nil, fmt.Errorf("variational: state has %d components, want %d", len(x), s.BaseDim)
	}
	driver := &jet.Driver{N: 0, RHS: s.Base}

	J := make([][]float64, s.DState())
	for i := range J {
		J[i] = make([]float64, s.DVar())
	}

	for col, dir := range s.DirectionIdx {
		xNested := make([]*poly.Polynomial, s.BaseDim)
		for j := 0; j < s.BaseDim; j++ {
			var inner *poly.Polynomial
			if j == dir {
				inner = poly.Variable(scalar.Float64(x[j]), 1)
			} else {
				inner = poly.Constant(scalar.Float64(x[j]), 1)
			}
			xNested[j] = poly.Constant(inner, 0)
		}

		xdot, err := driver.Evaluate(t, xNested)
		if err != nil {
			return nil, fmt.Errorf("variational: computing Jacobian column %d: %w", col, err)
		}

		for row, st := range s.StateIdx {
			inner := xdot[st].Coeff(0).(*poly.Polynomial)
			J[row][col] = float64(inner.Coeff(1).(scalar.Float64))
		}
	}

	return J, nil
}
