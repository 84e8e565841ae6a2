package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// detectPairs rebuilds the hierarchical hash from current positions and emits
// every non-excluded pair within the squared-distance threshold, i < j, once.
// Detection is read-only on positions. Stops at MaxPairs: bounded worst case
// over completeness under pathological density.
func (s *SelfCollision) detectPairs(st *state.State) bool {
	s.pairs = s.pairs[:0]

	s.hash.Clear()
	for i := 0; i < st.Count; i++ {
		s.hash.Insert(uint32(i), st.Positions[i])
	}

	thickness := s.Config.Thickness
	thicknessSq := thickness * thickness

	for i := 0; i < st.Count; i++ {
		pi := st.Positions[i]
		s.queryBuffer = s.hash.Query(pi, thickness, s.queryBuffer)

		for _, cand := range s.queryBuffer {
			j := int(cand)
			if i >= j {
				continue
			}
			if s.exclusion.ShouldExclude(i, j) {
				continue
			}

			distSq := pi.DistanceSq(st.Positions[j])
			// Lower floor guards the normalization divide downstream.
			if distSq < thicknessSq && distSq > 1e-9 {
				s.pairs = append(s.pairs, Pair{I: uint32(i), J: uint32(j)})
				if len(s.pairs) >= s.Config.MaxPairs {
					return true
				}
			}
		}
	}

	return len(s.pairs) > 0
}
