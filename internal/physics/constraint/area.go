package constraint

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// AreaConstraint resists in-plane shearing by holding each triangle to its
// rest area. A 3-body constraint: per-vertex gradients come from the current
// triangle's cross product and normal.
type AreaConstraint struct {
	Triples      [][3]int
	RestAreas    []float32
	BatchOffsets []int
}

// NewArea builds one record per non-degenerate triangle; degenerate ones are
// dropped here and never reconsidered.
func NewArea(st *state.State) *AreaConstraint {
	numTriangles := st.TriangleCount()

	var rawTriples [][3]int
	var rawAreas []float32

	for i := 0; i < numTriangles; i++ {
		i0 := int(st.Indices[i*3])
		i1 := int(st.Indices[i*3+1])
		i2 := int(st.Indices[i*3+2])

		u := st.Positions[i1].Sub(st.Positions[i0])
		v := st.Positions[i2].Sub(st.Positions[i0])
		area := 0.5 * u.Cross(v).Length()

		if area > 1e-6 {
			rawTriples = append(rawTriples, [3]int{i0, i1, i2})
			rawAreas = append(rawAreas, area)
		}
	}

	order, offsets := ColorTriples(rawTriples, st.Count)

	c := &AreaConstraint{
		Triples:      make([][3]int, 0, len(rawTriples)),
		RestAreas:    make([]float32, 0, len(rawTriples)),
		BatchOffsets: offsets,
	}
	for _, idx := range order {
		c.Triples = append(c.Triples, rawTriples[idx])
		c.RestAreas = append(c.RestAreas, rawAreas[idx])
	}
	return c
}

// Solve runs one XPBD pass. Compliance is passed at solve time so material
// stiffness can change without rebuilding records.
func (c *AreaConstraint) Solve(st *state.State, compliance, omega, dt float32) {
	alpha := compliance / (dt * dt)

	for b := 0; b+1 < len(c.BatchOffsets); b++ {
		for k := c.BatchOffsets[b]; k < c.BatchOffsets[b+1]; k++ {
			c.solveSingle(st, k, alpha, omega)
		}
	}
}

func (c *AreaConstraint) solveSingle(st *state.State, k int, alpha, omega float32) {
	i0, i1, i2 := c.Triples[k][0], c.Triples[k][1], c.Triples[k][2]

	w0 := st.InvMass[i0]
	w1 := st.InvMass[i1]
	w2 := st.InvMass[i2]
	if w0+w1+w2 == 0 {
		return
	}

	p0 := st.Positions[i0]
	p1 := st.Positions[i1]
	p2 := st.Positions[i2]

	u := p1.Sub(p0)
	v := p2.Sub(p0)
	cross := u.Cross(v)
	currentArea := 0.5 * cross.Length()

	cErr := currentArea - c.RestAreas[k]
	if cErr > -1e-6 && cErr < 1e-6 {
		return
	}
	if currentArea < 1e-9 {
		return
	}

	n := cross.Scale(1 / (2 * currentArea))

	grad0 := p2.Sub(p1).Cross(n).Scale(0.5)
	grad1 := p0.Sub(p2).Cross(n).Scale(0.5)
	grad2 := p1.Sub(p0).Cross(n).Scale(0.5)

	denom := w0*grad0.LengthSq() + w1*grad1.LengthSq() + w2*grad2.LengthSq()
	if denom < 1e-9 {
		return
	}

	deltaLambda := -cErr / (denom + alpha) * omega

	if w0 > 0 {
		st.Positions[i0] = st.Positions[i0].Add(grad0.Scale(deltaLambda * w0))
	}
	if w1 > 0 {
		st.Positions[i1] = st.Positions[i1].Add(grad1.Scale(deltaLambda * w1))
	}
	if w2 > 0 {
		st.Positions[i2] = st.Positions[i2].Add(grad2.Scale(deltaLambda * w2))
	}
}
