package constraint

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// GrabConstraint pulls a single grabbed particle toward an external target,
// driving drag interaction. Solved once per sub-step alongside the internal
// constraints.
type GrabConstraint struct {
	index      int
	active     bool
	target     math.Vec3
	Compliance float32
}

// NewGrab returns an inactive grab with rigid (zero) compliance.
func NewGrab() *GrabConstraint {
	return &GrabConstraint{}
}

// Grab starts pulling particle index toward target.
func (g *GrabConstraint) Grab(index int, target math.Vec3) {
	g.index = index
	g.active = true
	g.target = target
}

// UpdateTarget moves the pull target of an active grab.
func (g *GrabConstraint) UpdateTarget(target math.Vec3) {
	g.target = target
}

// Release ends the interaction.
func (g *GrabConstraint) Release() {
	g.active = false
}

// Solve applies the XPBD pull: dx = (target - x) * w / (w + alpha).
func (g *GrabConstraint) Solve(st *state.State, dt float32) {
	if !g.active || g.index < 0 || g.index >= st.Count {
		return
	}

	w := st.InvMass[g.index]
	if w == 0 {
		return
	}

	alpha := g.Compliance / (dt * dt)
	diff := g.target.Sub(st.Positions[g.index])
	st.Positions[g.index] = st.Positions[g.index].Add(diff.Scale(w / (w + alpha)))
}
