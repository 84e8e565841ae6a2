package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// broadBaseMargin is added to each particle's swept displacement when sizing
// its grid query; it covers the motion the sub-steps will add on top of the
// last frame's positions.
const broadBaseMargin = 0.02

// BroadPhase caches candidate collider triangles per particle. Runs once per
// frame, not per sub-step: the swept radius includes the displacement since
// the previous frame, so sub-step motion stays inside the cached set.
func (r *Resolver) BroadPhase(st *state.State, collider *Collider) {
	r.candidateIndices = r.candidateIndices[:0]

	for i := 0; i < st.Count; i++ {
		if st.InvMass[i] == 0 {
			r.candidateCounts[i] = 0
			continue
		}

		pos := st.Positions[i]
		prev := st.PrevPositions[i]
		searchRadius := broadBaseMargin + pos.Distance(prev)

		mid := pos.Add(prev).Scale(0.5)
		if !collider.Grid.Contains(pos) && !collider.Grid.Contains(prev) && !collider.Grid.Contains(mid) {
			r.candidateCounts[i] = 0
			continue
		}

		r.queryBuffer = collider.Grid.Query(pos, searchRadius, r.queryBuffer)

		start := len(r.candidateIndices)
		// Capacity guard: dropping a few candidates beats unbounded growth.
		if start+len(r.queryBuffer) < candidateCapacity {
			r.candidateIndices = append(r.candidateIndices, r.queryBuffer...)
			r.candidateOffsets[i] = start
			r.candidateCounts[i] = len(r.queryBuffer)
		} else {
			r.candidateCounts[i] = 0
		}
	}
}
