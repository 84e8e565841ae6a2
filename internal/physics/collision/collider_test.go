package collision

import (
	gomath "math"
	"testing"

	"github.com/MTawhid7/try-on-xr/pkg/math"
)

func TestColliderTransformTranslate(t *testing.T) {
	positions, indices := tetraMesh()
	c := NewCollider(positions, nil, indices, 0, 0)

	before := append([]math.Vec3(nil), c.Vertices...)
	c.Transform(math.Translate(5, 0, 0))

	for i, v := range c.Vertices {
		want := before[i].Add(math.Vec3{X: 5})
		if v.Distance(want) > 1e-6 {
			t.Errorf("vertex %d = %v, want %v", i, v, want)
		}
	}
	// Normals are direction-only: translation must not touch them.
	for i, n := range c.Normals {
		if gomath.Abs(float64(n.Length()-1)) > 1e-5 {
			t.Errorf("normal %d length = %v, want 1", i, n.Length())
		}
	}
	if c.Grid.Contains(math.Vec3{}) {
		t.Error("grid still contains the old origin after translation")
	}
	if !c.Grid.Contains(math.Vec3{X: 5}) {
		t.Error("grid does not contain the translated centroid")
	}
}

func TestColliderTransformRotation(t *testing.T) {
	positions, indices := tetraMesh()
	c := NewCollider(positions, nil, indices, 0, 0)

	q := math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2)
	c.Transform(q.ToMat4())

	// Right-hand quarter turn about Y maps (x, y, z) to (z, y, -x).
	want := math.Vec3{X: 1, Y: 1, Z: -1}
	if c.Vertices[0].Distance(want) > 1e-5 {
		t.Errorf("vertex 0 = %v, want %v", c.Vertices[0], want)
	}
	for i, n := range c.Normals {
		if gomath.Abs(float64(n.Length()-1)) > 1e-5 {
			t.Errorf("normal %d length = %v after rotation", i, n.Length())
		}
	}
}

func TestColliderTransformRebuildsTriangles(t *testing.T) {
	positions, indices := tetraMesh()
	c := NewCollider(positions, nil, indices, 0, 0)

	q := math.QuatFromAxisAngle(math.Vec3{X: 1}, gomath.Pi/4)
	m := math.Translate(0, 2, 0).Mul(q.ToMat4())
	c.Transform(m)

	if len(c.Triangles) != 4 {
		t.Fatalf("triangle count = %d, want 4", len(c.Triangles))
	}
	for i, tri := range c.Triangles {
		i0 := int(c.Indices[i*3])
		if tri.V0.Distance(c.Vertices[i0]) > 1e-6 {
			t.Errorf("triangle %d V0 out of sync with transformed vertices", i)
		}
	}
	hits := c.Grid.Query(c.Vertices[0], 0.1, nil)
	if len(hits) == 0 {
		t.Error("grid query at a transformed vertex found no triangles")
	}
}
