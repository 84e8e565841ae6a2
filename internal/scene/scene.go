// Package scene generates the demo meshes: a regular cloth sheet and a UV
// sphere collider. Both emit flat float32 buffers in the layout the physics
// engine consumes.
package scene

import (
	gomath "math"
)

// ClothGrid builds a square sheet of (resolution+1)^2 vertices in the XZ
// plane at the given height, centered on the origin, triangulated with
// alternating diagonals. UVs span [0,1] in both directions.
func ClothGrid(resolution int, size, height float32) (positions []float32, indices []uint32, uvs []float32) {
	if resolution < 1 {
		resolution = 1
	}
	n := resolution + 1

	positions = make([]float32, 0, n*n*3)
	uvs = make([]float32, 0, n*n*2)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			u := float32(col) / float32(resolution)
			v := float32(row) / float32(resolution)
			positions = append(positions,
				(u-0.5)*size,
				height,
				(v-0.5)*size,
			)
			uvs = append(uvs, u, v)
		}
	}

	indices = make([]uint32, 0, resolution*resolution*6)
	for row := 0; row < resolution; row++ {
		for col := 0; col < resolution; col++ {
			i0 := uint32(row*n + col)
			i1 := i0 + 1
			i2 := i0 + uint32(n)
			i3 := i2 + 1

			// Alternate the diagonal so fold behavior has no grid bias.
			if (row+col)%2 == 0 {
				indices = append(indices, i0, i2, i1, i1, i2, i3)
			} else {
				indices = append(indices, i0, i2, i3, i0, i3, i1)
			}
		}
	}

	return positions, indices, uvs
}

// Sphere builds a UV sphere of the given radius centered on the origin.
// Normals point outward. segments counts longitudinal slices; latitudinal
// rings are half that, clamped to a minimum of 3.
func Sphere(radius float32, segments int) (positions []float32, normals []float32, indices []uint32) {
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 3 {
		rings = 3
	}

	for ring := 0; ring <= rings; ring++ {
		phi := gomath.Pi * float64(ring) / float64(rings)
		y := float32(gomath.Cos(phi))
		r := float32(gomath.Sin(phi))
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * gomath.Pi * float64(seg) / float64(segments)
			x := r * float32(gomath.Cos(theta))
			z := r * float32(gomath.Sin(theta))

			positions = append(positions, x*radius, y*radius, z*radius)
			normals = append(normals, x, y, z)
		}
	}

	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			i0 := uint32(ring)*stride + uint32(seg)
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1

			if ring > 0 {
				indices = append(indices, i0, i2, i1)
			}
			if ring < rings-1 {
				indices = append(indices, i1, i2, i3)
			}
		}
	}

	return positions, normals, indices
}
