package dynamics

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/collision"
	"github.com/MTawhid7/try-on-xr/internal/physics/constraint"
	"github.com/MTawhid7/try-on-xr/internal/physics/sched"
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// SolveParams are the per-step tuning knobs of the constraint solve.
type SolveParams struct {
	Iterations     int
	SpectralRadius float32
	AreaCompliance float32
	Contact        collision.ContactParams
}

// Solver owns the four internal constraint sets, built once from the rest
// pose, and orchestrates their per-iteration order.
type Solver struct {
	Distance *constraint.PairConstraint
	Bending  *constraint.PairConstraint
	Tether   *constraint.TetherConstraint
	Area     *constraint.AreaConstraint

	scheduler sched.Scheduler
}

// NewSolver builds all constraint records from the rest geometry. Bending
// compliance scales with the square of the garment's uniform scale so a
// resized garment folds the same way.
func NewSolver(st *state.State, scaleFactor, distanceCompliance float32, scheduler sched.Scheduler) *Solver {
	if scheduler == nil {
		scheduler = sched.Serial{}
	}

	const baseBendCompliance = 1.0
	bendCompliance := baseBendCompliance * scaleFactor * scaleFactor

	return &Solver{
		Distance:  constraint.NewDistance(st, distanceCompliance),
		Bending:   constraint.NewBending(st, bendCompliance),
		Tether:    constraint.NewTether(st),
		Area:      constraint.NewArea(st),
		scheduler: scheduler,
	}
}

// Solve runs the configured iterations in fixed order: distance -> bending ->
// tether -> area, each scaled by the Chebyshev factor omega, then contact
// resolution from the resolver's cached list. Contacts always run at omega 1;
// accelerating them over-corrects and re-tunnels.
func (s *Solver) Solve(st *state.State, resolver *collision.Resolver, params SolveParams, dt float32) {
	omega := float32(1)
	rho := params.SpectralRadius

	for i := 0; i < params.Iterations; i++ {
		switch i {
		case 0:
			omega = 1
		case 1:
			omega = 2 / (2 - rho*rho)
		default:
			omega = 4 / (4 - rho*rho*omega)
		}

		s.Distance.Solve(st, omega, dt, s.scheduler)
		s.Bending.Solve(st, omega, dt, s.scheduler)
		s.Tether.Solve(st, omega, dt)
		s.Area.Solve(st, params.AreaCompliance, omega, dt)

		resolver.ResolveContacts(st, params.Contact)
	}
}
