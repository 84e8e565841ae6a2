package physics

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// computeVertexNormals rebuilds the rendering normals from the current
// positions: area-weighted face normals accumulated per vertex, then
// normalized. Degenerate vertices fall back to straight up.
func computeVertexNormals(st *state.State) {
	for i := range st.Normals {
		st.Normals[i] = math.Vec3{}
	}

	count := st.Count
	numTriangles := st.TriangleCount()
	for t := 0; t < numTriangles; t++ {
		i0 := int(st.Indices[t*3])
		i1 := int(st.Indices[t*3+1])
		i2 := int(st.Indices[t*3+2])
		if i0 >= count || i1 >= count || i2 >= count {
			continue
		}

		e1 := st.Positions[i1].Sub(st.Positions[i0])
		e2 := st.Positions[i2].Sub(st.Positions[i0])
		faceNormal := e1.Cross(e2) // magnitude carries the area weight

		st.Normals[i0] = st.Normals[i0].Add(faceNormal)
		st.Normals[i1] = st.Normals[i1].Add(faceNormal)
		st.Normals[i2] = st.Normals[i2].Add(faceNormal)
	}

	for i := range st.Normals {
		if st.Normals[i].LengthSq() > 1e-12 {
			st.Normals[i] = st.Normals[i].Normalize()
		} else {
			st.Normals[i] = math.Vec3{Y: 1}
		}
	}
}
