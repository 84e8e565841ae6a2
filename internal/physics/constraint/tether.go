package constraint

import (
	gomath "math"
	"sort"

	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// TetherConstraint holds unilateral long-range anchors that bound cumulative
// stretch: local edge constraints each give a little, and over a long chain
// the garment sags or widens far past its rest shape. Tethers only ever pull
// back; a compressed pair is left alone.
type TetherConstraint struct {
	Pairs        [][2]int
	RestLengths  []float32
	BatchOffsets []int
}

// NewTether runs both generation passes over the rest pose: vertical anti-sag
// columns and horizontal anti-widen spans across the top band.
func NewTether(st *state.State) *TetherConstraint {
	pairs, rest := generateVertical(st)
	hPairs, hRest := generateHorizontal(st)
	pairs = append(pairs, hPairs...)
	rest = append(rest, hRest...)

	order, offsets := ColorPairs(pairs, st.Count)

	c := &TetherConstraint{
		Pairs:        make([][2]int, 0, len(pairs)),
		RestLengths:  make([]float32, 0, len(pairs)),
		BatchOffsets: offsets,
	}
	for _, idx := range order {
		c.Pairs = append(c.Pairs, pairs[idx])
		c.RestLengths = append(c.RestLengths, rest[idx])
	}
	return c
}

// generateVertical buckets particles into XZ columns and anchors each
// column's topmost particle to the lowest one whose normal agrees with it.
func generateVertical(st *state.State) ([][2]int, []float32) {
	const (
		cellSize    = 0.03
		minDistance = 0.10
		normalAgree = 0.8
	)

	type cell struct{ x, z int32 }
	columns := make(map[cell][]int)
	var order []cell

	for i := 0; i < st.Count; i++ {
		p := st.Positions[i]
		c := cell{
			x: int32(gomath.Floor(float64(p.X / cellSize))),
			z: int32(gomath.Floor(float64(p.Z / cellSize))),
		}
		if _, seen := columns[c]; !seen {
			order = append(order, c)
		}
		columns[c] = append(columns[c], i)
	}

	var pairs [][2]int
	var rest []float32

	for _, c := range order {
		indices := columns[c]
		if len(indices) < 2 {
			continue
		}

		sorted := append([]int(nil), indices...)
		sort.Slice(sorted, func(a, b int) bool {
			return st.Positions[sorted[a]].Y > st.Positions[sorted[b]].Y
		})

		topIdx := sorted[0]
		topN := st.Normals[topIdx]

		// Walk from the bottom up looking for a compatible anchor point.
		for k := len(sorted) - 1; k > 0; k-- {
			bottomIdx := sorted[k]
			if topN.Dot(st.Normals[bottomIdx]) <= normalAgree {
				continue
			}
			dist := st.Positions[topIdx].Distance(st.Positions[bottomIdx])
			if dist > minDistance {
				pairs = append(pairs, [2]int{topIdx, bottomIdx})
				rest = append(rest, dist)
				break
			}
		}
	}

	return pairs, rest
}

// generateHorizontal restricts to the top band of the mesh, buckets by depth
// slice and ties left-to-right mirrored particles together, outermost pairs
// first working inward.
func generateHorizontal(st *state.State) ([][2]int, []float32) {
	const (
		topBand     = 0.15
		zCellSize   = 0.04
		minDistance = 0.15
		normalAgree = 0.5
	)

	maxY := float32(gomath.Inf(-1))
	for _, p := range st.Positions {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	threshold := maxY - topBand

	rows := make(map[int32][]int)
	var order []int32

	for i := 0; i < st.Count; i++ {
		p := st.Positions[i]
		if p.Y < threshold {
			continue
		}
		cz := int32(gomath.Floor(float64(p.Z / zCellSize)))
		if _, seen := rows[cz]; !seen {
			order = append(order, cz)
		}
		rows[cz] = append(rows[cz], i)
	}

	var pairs [][2]int
	var rest []float32

	for _, cz := range order {
		indices := rows[cz]
		if len(indices) < 2 {
			continue
		}

		sorted := append([]int(nil), indices...)
		sort.Slice(sorted, func(a, b int) bool {
			return st.Positions[sorted[a]].X < st.Positions[sorted[b]].X
		})

		count := len(sorted)
		for i := 0; i < count/2; i++ {
			left := sorted[i]
			right := sorted[count-1-i]

			dist := st.Positions[left].Distance(st.Positions[right])
			if dist <= minDistance {
				continue
			}
			if st.Normals[left].Dot(st.Normals[right]) > normalAgree {
				pairs = append(pairs, [2]int{left, right})
				rest = append(rest, dist)
			}
		}
	}

	return pairs, rest
}

// Solve applies the unilateral correction batch by batch: only pairs
// stretched beyond rest length are pulled back, scaled by omega. Rigid
// (zero compliance).
func (c *TetherConstraint) Solve(st *state.State, omega, _ float32) {
	for b := 0; b+1 < len(c.BatchOffsets); b++ {
		for k := c.BatchOffsets[b]; k < c.BatchOffsets[b+1]; k++ {
			c.solveSingle(st, k, omega)
		}
	}
}

func (c *TetherConstraint) solveSingle(st *state.State, k int, omega float32) {
	i1, i2 := c.Pairs[k][0], c.Pairs[k][1]
	w1 := st.InvMass[i1]
	w2 := st.InvMass[i2]
	wSum := w1 + w2
	if wSum == 0 {
		return
	}

	delta := st.Positions[i1].Sub(st.Positions[i2])
	length := delta.Length()
	if length < 1e-6 {
		return
	}

	restLen := c.RestLengths[k]
	if length <= restLen {
		return
	}

	cErr := length - restLen
	scalar := -cErr / wSum * omega
	correction := delta.Scale(scalar / length)

	if w1 > 0 {
		st.Positions[i1] = st.Positions[i1].Add(correction.Scale(w1))
	}
	if w2 > 0 {
		st.Positions[i2] = st.Positions[i2].Sub(correction.Scale(w2))
	}
}
