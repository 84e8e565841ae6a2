package collision

// TopologyExclusion precomputes, for every particle, the set of particles
// within ringDepth mesh-adjacency hops. Structurally connected particles sit
// inside the self-collision threshold at rest; colliding them would fight the
// distance and bending constraints, so they are filtered out in O(1).
type TopologyExclusion struct {
	// Bitmask fast path for neighbor ids < 64.
	masks []uint64
	// Set fallback for particles whose neighborhood reaches ids >= 64.
	extended []map[uint32]struct{}

	ringDepth int
}

// NewTopologyExclusion builds exclusion data from mesh triangles.
// ringDepth 1 excludes direct edge neighbors; 2 (the default used by the
// engine) also excludes neighbors of neighbors.
func NewTopologyExclusion(indices []uint32, particleCount, ringDepth int) *TopologyExclusion {
	adjacency := make([]map[uint32]struct{}, particleCount)
	for i := range adjacency {
		adjacency[i] = make(map[uint32]struct{})
	}

	numTriangles := len(indices) / 3
	for t := 0; t < numTriangles; t++ {
		i0 := indices[t*3]
		i1 := indices[t*3+1]
		i2 := indices[t*3+2]

		adjacency[i0][i1] = struct{}{}
		adjacency[i0][i2] = struct{}{}
		adjacency[i1][i0] = struct{}{}
		adjacency[i1][i2] = struct{}{}
		adjacency[i2][i0] = struct{}{}
		adjacency[i2][i1] = struct{}{}
	}

	masks := make([]uint64, particleCount)
	extended := make([]map[uint32]struct{}, particleCount)

	for i := 0; i < particleCount; i++ {
		visited := map[uint32]struct{}{uint32(i): {}}
		frontier := []uint32{uint32(i)}

		for ring := 0; ring < ringDepth; ring++ {
			var next []uint32
			for _, node := range frontier {
				for neighbor := range adjacency[node] {
					if _, seen := visited[neighbor]; !seen {
						visited[neighbor] = struct{}{}
						next = append(next, neighbor)
					}
				}
			}
			frontier = next
		}

		needsExtended := false
		for v := range visited {
			if v < 64 {
				masks[i] |= 1 << v
			} else {
				needsExtended = true
			}
		}
		if needsExtended {
			extended[i] = visited
		}
	}

	return &TopologyExclusion{
		masks:     masks,
		extended:  extended,
		ringDepth: ringDepth,
	}
}

// ShouldExclude reports whether particle j is within the exclusion ring of
// particle i. A particle always excludes itself.
func (e *TopologyExclusion) ShouldExclude(i, j int) bool {
	if i == j {
		return true
	}
	if j < 64 {
		return e.masks[i]&(1<<uint(j)) != 0
	}
	if set := e.extended[i]; set != nil {
		_, found := set[uint32(j)]
		return found
	}
	return false
}

// RingDepth returns the configured exclusion ring depth.
func (e *TopologyExclusion) RingDepth() int {
	return e.ringDepth
}
