package dynamics

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// Aerodynamics accumulates per-triangle wind and drag forces into a reusable
// per-particle buffer.
type Aerodynamics struct {
	forceBuffer []math.Vec3
}

// NewAerodynamics sizes the force buffer to the particle count.
func NewAerodynamics(particleCount int) *Aerodynamics {
	return &Aerodynamics{forceBuffer: make([]math.Vec3, particleCount)}
}

// Apply computes drag (normal) and lift (tangential) quadratic forces per
// triangle from its mean velocity relative to the wind, distributes them to
// the triangle's vertices and returns the buffer.
func (a *Aerodynamics) Apply(st *state.State, wind math.Vec3, dragCoeff, liftCoeff, dt float32) []math.Vec3 {
	if len(a.forceBuffer) != st.Count {
		a.forceBuffer = make([]math.Vec3, st.Count)
	} else {
		for i := range a.forceBuffer {
			a.forceBuffer[i] = math.Vec3{}
		}
	}

	numTriangles := st.TriangleCount()
	for i := 0; i < numTriangles; i++ {
		i0 := int(st.Indices[i*3])
		i1 := int(st.Indices[i*3+1])
		i2 := int(st.Indices[i*3+2])

		p0 := st.Positions[i0]
		p1 := st.Positions[i1]
		p2 := st.Positions[i2]

		v0 := p0.Sub(st.PrevPositions[i0]).Scale(1 / dt)
		v1 := p1.Sub(st.PrevPositions[i1]).Scale(1 / dt)
		v2 := p2.Sub(st.PrevPositions[i2]).Scale(1 / dt)
		triVel := v0.Add(v1).Add(v2).Scale(1.0 / 3.0)

		relVel := triVel.Sub(wind)
		if relVel.LengthSq() < 1e-6 {
			continue
		}

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		cross := edge1.Cross(edge2)
		areaX2 := cross.Length()
		if areaX2 < 1e-6 {
			continue
		}

		area := areaX2 * 0.5
		normal := cross.Scale(1 / areaX2)

		vDotN := relVel.Dot(normal)
		vNormal := normal.Scale(vDotN)
		vTangent := relVel.Sub(vNormal)

		fDrag := vNormal.Scale(-0.5 * dragCoeff * area * vNormal.Length())
		fLift := vTangent.Scale(-0.5 * liftCoeff * area * vTangent.Length())

		forcePerVert := fDrag.Add(fLift).Scale(1.0 / 3.0)
		a.forceBuffer[i0] = a.forceBuffer[i0].Add(forcePerVert)
		a.forceBuffer[i1] = a.forceBuffer[i1].Add(forcePerVert)
		a.forceBuffer[i2] = a.forceBuffer[i2].Add(forcePerVert)
	}

	return a.forceBuffer
}
