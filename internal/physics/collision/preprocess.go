// Package collision implements the collision pipeline: the static mesh
// collider, broad/narrow phase detection and contact response, and the
// hash-based self-collision engine.
package collision

import (
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// ProcessedMesh is the smoothed, inflated collider geometry.
type ProcessedMesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
}

// ProcessMesh converts flat vertex triples into collider geometry:
// Laplacian smoothing rounds off sharp creases that would snag the cloth,
// recomputed area-weighted normals replace whatever the host supplied, and
// inflation pushes vertices outward so the visual mesh keeps a gap.
func ProcessMesh(rawVertices []float32, indices []uint32, smoothingIterations int, inflation float32) ProcessedMesh {
	numVerts := len(rawVertices) / 3
	vertices := make([]math.Vec3, numVerts)
	for i := 0; i < numVerts; i++ {
		vertices[i] = math.Vec3{
			X: rawVertices[i*3],
			Y: rawVertices[i*3+1],
			Z: rawVertices[i*3+2],
		}
	}

	numTriangles := len(indices) / 3

	if smoothingIterations > 0 {
		adj := make([][]int, numVerts)
		for i := 0; i < numTriangles; i++ {
			i0 := int(indices[i*3])
			i1 := int(indices[i*3+1])
			i2 := int(indices[i*3+2])
			addNeighbor(adj, i0, i1)
			addNeighbor(adj, i0, i2)
			addNeighbor(adj, i1, i2)
		}

		const lambda = 0.5
		old := make([]math.Vec3, numVerts)
		for iter := 0; iter < smoothingIterations; iter++ {
			copy(old, vertices)
			for i := 0; i < numVerts; i++ {
				neighbors := adj[i]
				if len(neighbors) == 0 {
					continue
				}
				var sum math.Vec3
				for _, n := range neighbors {
					sum = sum.Add(old[n])
				}
				avg := sum.Scale(1 / float32(len(neighbors)))
				vertices[i] = old[i].Lerp(avg, lambda)
			}
		}
	}

	normals := make([]math.Vec3, numVerts)
	for i := 0; i < numTriangles; i++ {
		i0 := int(indices[i*3])
		i1 := int(indices[i*3+1])
		i2 := int(indices[i*3+2])

		edge1 := vertices[i1].Sub(vertices[i0])
		edge2 := vertices[i2].Sub(vertices[i0])
		faceNormal := edge1.Cross(edge2) // area-weighted

		normals[i0] = normals[i0].Add(faceNormal)
		normals[i1] = normals[i1].Add(faceNormal)
		normals[i2] = normals[i2].Add(faceNormal)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}

	if inflation > 1e-6 || inflation < -1e-6 {
		for i := range vertices {
			vertices[i] = vertices[i].Add(normals[i].Scale(inflation))
		}
	}

	return ProcessedMesh{Vertices: vertices, Normals: normals}
}

func addNeighbor(adj [][]int, a, b int) {
	if !containsInt(adj[a], b) {
		adj[a] = append(adj[a], b)
	}
	if !containsInt(adj[b], a) {
		adj[b] = append(adj[b], a)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
