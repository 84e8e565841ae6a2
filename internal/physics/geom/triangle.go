// Package geom provides the triangle primitives used by collision detection.
package geom

import (
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// Triangle is a collider triangle with its three current vertices
// and a stable index into the source mesh.
type Triangle struct {
	V0, V1, V2 math.Vec3
	Index      int
}

// AABB returns the axis-aligned bounding box of the triangle.
func (t Triangle) AABB() (min, max math.Vec3) {
	min = t.V0.Min(t.V1).Min(t.V2)
	max = t.V0.Max(t.V1).Max(t.V2)
	return min, max
}

// ClosestPoint finds the closest point on the triangle to p.
// Returns the point and its barycentric coordinates (u, v, w).
func (t Triangle) ClosestPoint(p math.Vec3) (math.Vec3, [3]float32) {
	ab := t.V1.Sub(t.V0)
	ac := t.V2.Sub(t.V0)
	ap := p.Sub(t.V0)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.V0, [3]float32{1, 0, 0}
	}

	bp := p.Sub(t.V1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.V1, [3]float32{0, 1, 0}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.V0.Add(ab.Scale(v)), [3]float32{1 - v, v, 0}
	}

	cp := p.Sub(t.V2)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.V2, [3]float32{0, 0, 1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.V0.Add(ac.Scale(w)), [3]float32{1 - w, 0, w}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.V1.Add(t.V2.Sub(t.V1).Scale(w)), [3]float32{0, 1 - w, w}
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	u := 1 - v - w
	return t.V0.Add(ab.Scale(v)).Add(ac.Scale(w)), [3]float32{u, v, w}
}

// IntersectSegment tests the segment p1->p2 against the triangle using the
// Möller–Trumbore algorithm. On a hit it returns the intersection point, the
// face normal re-oriented to oppose the segment direction, and the segment
// parameter t in (0, 1).
func (t Triangle) IntersectSegment(p1, p2 math.Vec3) (point, normal math.Vec3, tHit float32, ok bool) {
	const epsilon = 1e-7

	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)
	dir := p2.Sub(p1)

	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return point, normal, 0, false // segment parallel to triangle plane
	}

	f := 1 / a
	s := p1.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return point, normal, 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return point, normal, 0, false
	}

	tHit = f * edge2.Dot(q)
	if tHit <= epsilon || tHit >= 1 {
		return point, normal, 0, false
	}

	point = p1.Add(dir.Scale(tHit))
	normal = edge1.Cross(edge2).Normalize()
	if normal.Dot(dir) >= 0 {
		normal = normal.Neg()
	}
	return point, normal, tHit, true
}
