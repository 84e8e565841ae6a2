// Package dynamics drives each sub-step: force accumulation, Verlet
// integration, and the XPBD constraint solve with Chebyshev acceleration.
package dynamics

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// Integrate advances particle positions one Verlet step:
// next = pos + (pos - prev) * damping + a * dt². Gravity is an acceleration;
// the per-particle forces are scaled by inverse mass. Pinned particles never
// move.
func Integrate(st *state.State, gravity math.Vec3, damping float32, forces []math.Vec3, dt float32) {
	dtSq := dt * dt

	for i := 0; i < st.Count; i++ {
		if st.InvMass[i] == 0 {
			continue
		}

		pos := st.Positions[i]
		prev := st.PrevPositions[i]

		accel := gravity
		if forces != nil {
			accel = accel.Add(forces[i].Scale(st.InvMass[i]))
		}

		next := pos.Add(pos.Sub(prev).Scale(damping)).Add(accel.Scale(dtSq))

		st.PrevPositions[i] = pos
		st.Positions[i] = next
	}
}
