// Package constraint implements the XPBD constraints of the cloth: distance,
// bending, area and tether, plus the single-particle grab used for
// interaction. Constraint records are built once from rest geometry and
// colored into batches that never share a particle.
package constraint

import "math/bits"

// ColorPairs partitions 2-particle constraints into batches such that no two
// constraints in a batch share a particle. Greedy bitmask coloring over a CSR
// adjacency: each constraint takes the lowest color unused by any neighbor.
// Returns the constraint order (a permutation grouped by color) and the batch
// start offsets, with a trailing offset equal to len(pairs).
func ColorPairs(pairs [][2]int, particleCount int) (order []int, offsets []int) {
	degree := make([]int, particleCount)
	for _, p := range pairs {
		degree[p[0]]++
		degree[p[1]]++
	}

	offset := make([]int, particleCount+1)
	for i := 0; i < particleCount; i++ {
		offset[i+1] = offset[i] + degree[i]
	}

	adj := make([]int, offset[particleCount])
	counter := make([]int, particleCount)
	copy(counter, offset[:particleCount])
	for i, p := range pairs {
		adj[counter[p[0]]] = i
		counter[p[0]]++
		adj[counter[p[1]]] = i
		counter[p[1]]++
	}

	colors := make([]int, len(pairs))
	for i := range colors {
		colors[i] = -1
	}
	var batches [][]int

	for i, p := range pairs {
		used := usedColors(adj, offset, colors, p[0]) | usedColors(adj, offset, colors, p[1])
		color := bits.TrailingZeros64(^used)
		colors[i] = color
		for color >= len(batches) {
			batches = append(batches, nil)
		}
		batches[color] = append(batches[color], i)
	}

	return flattenBatches(batches, len(pairs))
}

// ColorTriples is ColorPairs for 3-particle constraints.
func ColorTriples(triples [][3]int, particleCount int) (order []int, offsets []int) {
	degree := make([]int, particleCount)
	for _, t := range triples {
		degree[t[0]]++
		degree[t[1]]++
		degree[t[2]]++
	}

	offset := make([]int, particleCount+1)
	for i := 0; i < particleCount; i++ {
		offset[i+1] = offset[i] + degree[i]
	}

	adj := make([]int, offset[particleCount])
	counter := make([]int, particleCount)
	copy(counter, offset[:particleCount])
	for i, t := range triples {
		for _, p := range t {
			adj[counter[p]] = i
			counter[p]++
		}
	}

	colors := make([]int, len(triples))
	for i := range colors {
		colors[i] = -1
	}
	var batches [][]int

	for i, t := range triples {
		used := usedColors(adj, offset, colors, t[0]) |
			usedColors(adj, offset, colors, t[1]) |
			usedColors(adj, offset, colors, t[2])
		color := bits.TrailingZeros64(^used)
		colors[i] = color
		for color >= len(batches) {
			batches = append(batches, nil)
		}
		batches[color] = append(batches[color], i)
	}

	return flattenBatches(batches, len(triples))
}

// usedColors collects the color bits of every constraint touching particle p.
func usedColors(adj, offset, colors []int, p int) uint64 {
	var used uint64
	for _, cIdx := range adj[offset[p]:offset[p+1]] {
		if c := colors[cIdx]; c >= 0 && c < 64 {
			used |= 1 << uint(c)
		}
	}
	return used
}

func flattenBatches(batches [][]int, total int) (order []int, offsets []int) {
	order = make([]int, 0, total)
	offsets = make([]int, 0, len(batches)+1)
	for _, batch := range batches {
		offsets = append(offsets, len(order))
		order = append(order, batch...)
	}
	offsets = append(offsets, len(order))
	return order, offsets
}
