package taylorint

import (
	"context"
	"sync"

	"github.com/san-kum/taylorstep/internal/jet"
	"github.com/san-kum/taylorstep/internal/scalar"
)

// EnsembleMember is one initial condition in a parallel batch: the
// runs share a right-hand side and controller settings but never share
// state, so no synchronization is needed within a single run's steps -
// only across the batch.
type EnsembleMember struct {
	Label string
	T0    float64
	X0    []scalar.Scalar
}

// EnsembleResult pairs a member's label with its outcome.
type EnsembleResult struct {
	Label      string
	Trajectory *Trajectory
	Err        error
}

// RunEnsemble integrates every member to tmax independently and
// concurrently, each on its own goroutine. Parallelism is only ever
// across members - a single trajectory's steps remain strictly
// sequential, since each step's jet depends on the previous step's
// accepted state.
func RunEnsemble(ctx context.Context, rhs jet.RHS, n int, members []EnsembleMember, dt0, tmax, absTol float64, maxSteps int) []EnsembleResult {
	results := make([]EnsembleResult, len(members))

	var wg sync.WaitGroup
	wg.Add(len(members))
	for i, m := range members {
		go func(idx int, member EnsembleMember) {
			defer wg.Done()
			traj, err := IntegrateToTmax(ctx, rhs, n, member.T0, member.X0, dt0, tmax, absTol, maxSteps)
			results[idx] = EnsembleResult{Label: member.Label, Trajectory: traj, Err: err}
		}(i, m)
	}
	wg.Wait()

	return results
}
