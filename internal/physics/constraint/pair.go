package constraint

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/sched"
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/internal/physics/wide"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// PairConstraint is a colored set of 2-particle XPBD distance-style records.
// Distance (edge inextensibility) and bending (fold resistance) share this
// representation; they differ only in how records and compliances are built.
type PairConstraint struct {
	Pairs        [][2]int
	RestLengths  []float32
	Compliances  []float32
	BatchOffsets []int
}

// NewDistance builds one record per unique mesh edge, rest length from the
// initial positions. Near-zero compliance makes the cloth inextensible.
func NewDistance(st *state.State, compliance float32) *PairConstraint {
	seen := make(map[orderedEdgeKey]struct{})

	var rawPairs [][2]int
	var rawRest []float32

	numTriangles := st.TriangleCount()
	for i := 0; i < numTriangles; i++ {
		i0 := int(st.Indices[i*3])
		i1 := int(st.Indices[i*3+1])
		i2 := int(st.Indices[i*3+2])

		for _, e := range [3]orderedEdgeKey{
			orderedEdge(i0, i1),
			orderedEdge(i1, i2),
			orderedEdge(i2, i0),
		} {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			rawPairs = append(rawPairs, [2]int{e.a, e.b})
			rawRest = append(rawRest, st.Positions[e.a].Distance(st.Positions[e.b]))
		}
	}

	rawCompliance := make([]float32, len(rawPairs))
	for i := range rawCompliance {
		rawCompliance[i] = compliance
	}

	return newPairConstraint(st.Count, rawPairs, rawRest, rawCompliance)
}

// NewBending connects particles exactly two topology hops apart that are not
// directly connected, rest length from the initial positions. Compliance is
// anisotropic: pairs whose UV delta runs along the warp/weft axes resist
// folding harder than diagonal ("bias") pairs, like woven fabric.
func NewBending(st *state.State, complianceFactor float32) *PairConstraint {
	// Adjacency kept as insertion-ordered lists so record order (and with it
	// coloring and rounding) is reproducible run to run.
	adjSet := make([]map[int]struct{}, st.Count)
	adjList := make([][]int, st.Count)
	for i := range adjSet {
		adjSet[i] = make(map[int]struct{})
	}
	link := func(a, b int) {
		if _, dup := adjSet[a][b]; !dup {
			adjSet[a][b] = struct{}{}
			adjList[a] = append(adjList[a], b)
		}
	}

	numTriangles := st.TriangleCount()
	for i := 0; i < numTriangles; i++ {
		i0 := int(st.Indices[i*3])
		i1 := int(st.Indices[i*3+1])
		i2 := int(st.Indices[i*3+2])

		link(i0, i1)
		link(i0, i2)
		link(i1, i0)
		link(i1, i2)
		link(i2, i0)
		link(i2, i1)
	}

	processed := make(map[orderedEdgeKey]struct{})

	var rawPairs [][2]int
	var rawRest []float32
	var rawCompliance []float32

	for i := 0; i < st.Count; i++ {
		for _, neighbor := range adjList[i] {
			for _, far := range adjList[neighbor] {
				if far == i {
					continue
				}
				if _, direct := adjSet[i][far]; direct {
					continue
				}

				k := orderedEdge(i, far)
				if _, dup := processed[k]; dup {
					continue
				}
				processed[k] = struct{}{}

				rawPairs = append(rawPairs, [2]int{k.a, k.b})
				rawRest = append(rawRest, st.Positions[k.a].Distance(st.Positions[k.b]))

				du := abs32(st.UVs[k.a].X - st.UVs[k.b].X)
				dv := abs32(st.UVs[k.a].Y - st.UVs[k.b].Y)
				if du > 2*dv || dv > 2*du {
					// Fiber-aligned: stiffer.
					rawCompliance = append(rawCompliance, 0.5*complianceFactor)
				} else {
					rawCompliance = append(rawCompliance, complianceFactor)
				}
			}
		}
	}

	return newPairConstraint(st.Count, rawPairs, rawRest, rawCompliance)
}

type orderedEdgeKey struct{ a, b int }

func orderedEdge(a, b int) orderedEdgeKey {
	if a < b {
		return orderedEdgeKey{a, b}
	}
	return orderedEdgeKey{b, a}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// newPairConstraint colors the raw records and stores them reordered into
// contiguous batches.
func newPairConstraint(particleCount int, pairs [][2]int, rest, compliance []float32) *PairConstraint {
	order, offsets := ColorPairs(pairs, particleCount)

	c := &PairConstraint{
		Pairs:        make([][2]int, 0, len(pairs)),
		RestLengths:  make([]float32, 0, len(pairs)),
		Compliances:  make([]float32, 0, len(pairs)),
		BatchOffsets: offsets,
	}
	for _, idx := range order {
		c.Pairs = append(c.Pairs, pairs[idx])
		c.RestLengths = append(c.RestLengths, rest[idx])
		c.Compliances = append(c.Compliances, compliance[idx])
	}
	return c
}

// Solve runs one XPBD pass over all batches, corrections scaled by omega.
// Batches run in sequence; the 4-wide groups inside one batch are disjoint by
// construction and go through the scheduler.
func (c *PairConstraint) Solve(st *state.State, omega, dt float32, scheduler sched.Scheduler) {
	dtSqInv := 1 / (dt * dt)

	for b := 0; b+1 < len(c.BatchOffsets); b++ {
		start := c.BatchOffsets[b]
		end := c.BatchOffsets[b+1]
		count := end - start

		groups := count / wide.Lanes
		scheduler.Run(groups, func(g int) {
			c.solveWide(st, start+g*wide.Lanes, dtSqInv, omega)
		})

		for k := start + groups*wide.Lanes; k < end; k++ {
			c.solveSingle(st, k, dtSqInv, omega)
		}
	}
}

// solveWide applies the XPBD update to four records in lock-step.
func (c *PairConstraint) solveWide(st *state.State, base int, dtSqInv, omega float32) {
	var p1, p2 wide.Vec3
	var w1, w2, rest, compliance wide.F32
	var i1s, i2s [wide.Lanes]int

	for l := 0; l < wide.Lanes; l++ {
		pair := c.Pairs[base+l]
		i1, i2 := pair[0], pair[1]
		i1s[l], i2s[l] = i1, i2

		p1.X[l], p1.Y[l], p1.Z[l] = st.Positions[i1].X, st.Positions[i1].Y, st.Positions[i1].Z
		p2.X[l], p2.Y[l], p2.Z[l] = st.Positions[i2].X, st.Positions[i2].Y, st.Positions[i2].Z
		w1[l] = st.InvMass[i1]
		w2[l] = st.InvMass[i2]
		rest[l] = c.RestLengths[base+l]
		compliance[l] = c.Compliances[base+l]
	}

	delta := p1.Sub(p2)
	length := delta.Length()

	alpha := compliance.Mul(wide.Splat(dtSqInv))
	cErr := length.Sub(rest)

	denom := w1.Add(w2).Add(alpha).Max(wide.Splat(1e-8))
	deltaLambda := cErr.Neg().Div(denom)

	safeLen := length.Max(wide.Splat(1e-8))
	direction := delta.Div(safeLen)

	correction := direction.Scale(deltaLambda.Mul(wide.Splat(omega)))
	corr1 := correction.Scale(w1)
	corr2 := correction.Scale(w2)

	for l := 0; l < wide.Lanes; l++ {
		if w1[l] > 0 {
			st.Positions[i1s[l]] = st.Positions[i1s[l]].Add(math.Vec3{X: corr1.X[l], Y: corr1.Y[l], Z: corr1.Z[l]})
		}
		if w2[l] > 0 {
			st.Positions[i2s[l]] = st.Positions[i2s[l]].Sub(math.Vec3{X: corr2.X[l], Y: corr2.Y[l], Z: corr2.Z[l]})
		}
	}
}

// solveSingle is the scalar remainder path.
func (c *PairConstraint) solveSingle(st *state.State, k int, dtSqInv, omega float32) {
	i1, i2 := c.Pairs[k][0], c.Pairs[k][1]
	w1 := st.InvMass[i1]
	w2 := st.InvMass[i2]
	wSum := w1 + w2
	if wSum == 0 {
		return
	}

	delta := st.Positions[i1].Sub(st.Positions[i2])
	length := delta.Length()
	if length < 1e-8 {
		return
	}

	alpha := c.Compliances[k] * dtSqInv
	cErr := length - c.RestLengths[k]
	deltaLambda := -cErr / (wSum + alpha)

	correction := delta.Scale(1 / length).Scale(deltaLambda * omega)

	if w1 > 0 {
		st.Positions[i1] = st.Positions[i1].Add(correction.Scale(w1))
	}
	if w2 > 0 {
		st.Positions[i2] = st.Positions[i2].Sub(correction.Scale(w2))
	}
}
