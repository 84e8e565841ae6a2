package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/geom"
	"github.com/MTawhid7/try-on-xr/internal/physics/spatial"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// gridCellSize is the static grid's contact radius. Collider triangles on a
// body-scale mesh rarely exceed a few centimetres, so 10cm cells keep the
// per-cell lists short without exploding cell counts.
const gridCellSize = 0.1

// Collider is the static obstacle body: preprocessed triangle soup plus the
// uniform grid mapping cells to overlapping triangles. Topology is fixed for
// the collider's lifetime; vertices may move via Update.
type Collider struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
	Triangles []geom.Triangle
	Grid      *spatial.StaticGrid

	smoothingIterations int
	inflation           float32
}

// NewCollider preprocesses the raw mesh (smoothing, normals, inflation) and
// builds the spatial grid. The supplied normals are discarded; preprocessing
// recomputes them from the smoothed geometry.
func NewCollider(rawVertices []float32, _ []float32, indices []uint32, smoothingIterations int, inflation float32) *Collider {
	processed := ProcessMesh(rawVertices, indices, smoothingIterations, inflation)

	c := &Collider{
		Vertices:            processed.Vertices,
		Normals:             processed.Normals,
		Indices:             indices,
		smoothingIterations: smoothingIterations,
		inflation:           inflation,
	}
	c.rebuildGrid()
	return c
}

// Update re-runs preprocessing on new vertex positions and rebuilds the grid
// in place. Topology and the configured smoothing/inflation are preserved,
// so an animated body stays collidable frame to frame.
func (c *Collider) Update(rawVertices []float32) {
	processed := ProcessMesh(rawVertices, c.Indices, c.smoothingIterations, c.inflation)
	c.Vertices = processed.Vertices
	c.Normals = processed.Normals
	c.rebuildGrid()
}

// Transform applies a rigid transform to the collider in place. Positions go
// through the full matrix, normals through its rotation part only, so the
// transform must not contain shear or non-uniform scale. Unlike Update this
// skips re-preprocessing: smoothing and inflation are rotation-invariant, so
// rigid motion of an already processed mesh stays valid.
func (c *Collider) Transform(m math.Mat4) {
	for i, v := range c.Vertices {
		c.Vertices[i] = m.TransformVec3(v)
	}
	for i, n := range c.Normals {
		c.Normals[i] = m.TransformDirection(n).Normalize()
	}
	c.rebuildGrid()
}

func (c *Collider) rebuildGrid() {
	numTriangles := len(c.Indices) / 3
	c.Triangles = c.Triangles[:0]

	boundsMin := math.Splat(1e10)
	boundsMax := math.Splat(-1e10)
	for _, v := range c.Vertices {
		boundsMin = boundsMin.Min(v)
		boundsMax = boundsMax.Max(v)
	}
	if len(c.Vertices) == 0 {
		boundsMin, boundsMax = math.Vec3{}, math.Vec3{}
	}
	c.Grid = spatial.NewStaticGrid(boundsMin, boundsMax, gridCellSize)

	for i := 0; i < numTriangles; i++ {
		i0 := int(c.Indices[i*3])
		i1 := int(c.Indices[i*3+1])
		i2 := int(c.Indices[i*3+2])

		tri := geom.Triangle{
			V0:    c.Vertices[i0],
			V1:    c.Vertices[i1],
			V2:    c.Vertices[i2],
			Index: i,
		}
		min, max := tri.AABB()
		c.Triangles = append(c.Triangles, tri)
		c.Grid.InsertAABB(i, min, max)
	}
}

// SmoothNormal interpolates the three vertex normals of triangle triIdx at
// the given barycentric coordinates. Smooth normals avoid faceting artifacts
// on curved bodies.
func (c *Collider) SmoothNormal(triIdx int, bary [3]float32) math.Vec3 {
	i0 := int(c.Indices[triIdx*3])
	i1 := int(c.Indices[triIdx*3+1])
	i2 := int(c.Indices[triIdx*3+2])

	n := c.Normals[i0].Scale(bary[0]).
		Add(c.Normals[i1].Scale(bary[1])).
		Add(c.Normals[i2].Scale(bary[2]))
	return n.Normalize()
}
