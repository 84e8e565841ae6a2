package collision

import (
	gomath "math"

	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// discreteRadius bounds how far from a surface a discrete (closest-point)
// contact is still accepted.
const discreteRadius = 0.05

// NarrowPhase scans each particle's cached candidates and records at most one
// contact per particle. Continuous segment hits (previous -> current position)
// take priority over discrete closest-point results and are selected by
// earliest intersection parameter; among discrete candidates the smallest
// squared distance wins. Also applies the velocity clamp that bounds how far
// a fast particle can tunnel in one sub-step.
func (r *Resolver) NarrowPhase(st *state.State, collider *Collider, contactThickness, dt float32) {
	r.contacts = r.contacts[:0]

	// Airbag: cap the implicit normal velocity so one sub-step can never
	// carry a particle through more than most of the contact thickness.
	maxV := contactThickness * 0.9 / dt

	for i := 0; i < st.Count; i++ {
		count := r.candidateCounts[i]
		if count == 0 {
			continue
		}

		offset := r.candidateOffsets[i]
		pos := st.Positions[i]
		prev := st.PrevPositions[i]

		var (
			bestPoint  math.Vec3
			bestNormal math.Vec3
			found      bool
			continuous bool
		)
		bestT := float32(gomath.MaxFloat32)
		bestDistSq := float32(discreteRadius * discreteRadius)

		for j := 0; j < count; j++ {
			triIdx := r.candidateIndices[offset+j]
			tri := &collider.Triangles[triIdx]

			// A swept hit is the truth about what happened between
			// sub-steps, so it always beats discrete results.
			if point, normal, t, ok := tri.IntersectSegment(prev, pos); ok {
				if t < bestT {
					bestPoint = point
					bestNormal = normal
					bestT = t
					found = true
					continuous = true
				}
				continue
			}

			if continuous {
				continue
			}

			closest, bary := tri.ClosestPoint(pos)
			distSq := closest.DistanceSq(pos)
			if distSq < bestDistSq {
				bestPoint = closest
				bestNormal = collider.SmoothNormal(triIdx, bary)
				bestDistSq = distSq
				found = true
			}
		}

		if !found {
			continue
		}

		velocity := pos.Sub(prev).Scale(1 / dt)
		vNormal := velocity.Dot(bestNormal)
		if vNormal < -maxV {
			vTangent := velocity.Sub(bestNormal.Scale(vNormal))
			clamped := vTangent.Add(bestNormal.Scale(-maxV))
			st.PrevPositions[i] = pos.Sub(clamped.Scale(dt))
		}

		r.contacts = append(r.contacts, Contact{
			ParticleIndex: i,
			Normal:        bestNormal,
			SurfacePoint:  bestPoint,
		})
	}
}
