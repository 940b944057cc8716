package taylorint

import "github.com/san-kum/taylorstep/internal/scalar"

// Trajectory is the recorded result of a completed or partial
// integration: the initial time and state, then one time and state
// vector per accepted step (per grid point for the grid integrators),
// in order, plus any non-fatal warnings raised along the way.
type Trajectory struct {
	Times      []float64
	States     [][]scalar.Scalar
	StepsTaken int
	Warnings   []StepCapWarning
}

func newTrajectory(t0 float64, x0 []scalar.Scalar, capacity int) *Trajectory {
	traj := &Trajectory{
		Times:  make([]float64, 0, capacity),
		States: make([][]scalar.Scalar, 0, capacity),
	}
	traj.append(t0, x0)
	return traj
}

func (t *Trajectory) append(tm float64, x []scalar.Scalar) {
	t.Times = append(t.Times, tm)
	t.States = append(t.States, x)
}

// Final returns the trajectory's last recorded time and state.
func (t *Trajectory) Final() (float64, []scalar.Scalar) {
	last := len(t.Times) - 1
	return t.Times[last], t.States[last]
}
