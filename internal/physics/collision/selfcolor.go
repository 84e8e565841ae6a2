package collision

import "math/bits"

// colorPairs greedily colors the detected pairs so that no particle appears
// twice within a batch, then reorders them into contiguous color batches.
// Same CSR-adjacency bitmask scheme as the constraint coloring utility.
func (s *SelfCollision) colorPairs() {
	if len(s.pairs) == 0 {
		s.batchOffsets = s.batchOffsets[:0]
		return
	}

	degree := make([]int, s.particleCount)
	for _, pair := range s.pairs {
		degree[pair.I]++
		degree[pair.J]++
	}

	offset := make([]int, s.particleCount+1)
	for i := 0; i < s.particleCount; i++ {
		offset[i+1] = offset[i] + degree[i]
	}

	adj := make([]int, offset[s.particleCount])
	counter := make([]int, s.particleCount)
	copy(counter, offset[:s.particleCount])
	for idx, pair := range s.pairs {
		adj[counter[pair.I]] = idx
		counter[pair.I]++
		adj[counter[pair.J]] = idx
		counter[pair.J]++
	}

	colors := make([]int, len(s.pairs))
	for i := range colors {
		colors[i] = -1
	}
	var batches [][]int

	for idx, pair := range s.pairs {
		var used uint64
		for _, cIdx := range adj[offset[pair.I]:offset[pair.I+1]] {
			if c := colors[cIdx]; c >= 0 && c < 64 {
				used |= 1 << uint(c)
			}
		}
		for _, cIdx := range adj[offset[pair.J]:offset[pair.J+1]] {
			if c := colors[cIdx]; c >= 0 && c < 64 {
				used |= 1 << uint(c)
			}
		}

		color := bits.TrailingZeros64(^used)
		colors[idx] = color
		for color >= len(batches) {
			batches = append(batches, nil)
		}
		batches[color] = append(batches[color], idx)
	}

	sorted := make([]Pair, 0, len(s.pairs))
	s.batchOffsets = s.batchOffsets[:0]
	for _, batch := range batches {
		s.batchOffsets = append(s.batchOffsets, len(sorted))
		for _, idx := range batch {
			sorted = append(sorted, s.pairs[idx])
		}
	}
	s.batchOffsets = append(s.batchOffsets, len(sorted))
	s.pairs = sorted
}
