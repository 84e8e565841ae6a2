// Package state holds the particle data mutated by every simulation sub-step.
package state

import (
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// State is a structure-of-arrays store for the garment particles.
// All per-particle slices have length Count; Indices values are always < Count.
type State struct {
	Count         int
	Positions     []math.Vec3
	PrevPositions []math.Vec3
	InvMass       []float32
	UVs           []math.Vec2
	Normals       []math.Vec3
	Indices       []uint32
}

// New builds a State from flat position triples, triangle indices and UV pairs.
// Every particle starts at rest (previous position equal to current) with unit
// inverse mass and an up-facing normal.
func New(rawPositions []float32, indices []uint32, rawUVs []float32) *State {
	count := len(rawPositions) / 3

	positions := make([]math.Vec3, count)
	prev := make([]math.Vec3, count)
	normals := make([]math.Vec3, count)
	invMass := make([]float32, count)
	uvs := make([]math.Vec2, count)

	for i := 0; i < count; i++ {
		v := math.Vec3{
			X: rawPositions[i*3],
			Y: rawPositions[i*3+1],
			Z: rawPositions[i*3+2],
		}
		positions[i] = v
		prev[i] = v
		normals[i] = math.Vec3{Y: 1}
		invMass[i] = 1
	}

	for i := 0; i < count && i*2+1 < len(rawUVs); i++ {
		uvs[i] = math.Vec2{X: rawUVs[i*2], Y: rawUVs[i*2+1]}
	}

	return &State{
		Count:         count,
		Positions:     positions,
		PrevPositions: prev,
		InvMass:       invMass,
		UVs:           uvs,
		Normals:       normals,
		Indices:       indices,
	}
}

// Pin fixes a particle in place by zeroing its inverse mass.
func (s *State) Pin(i int) {
	s.InvMass[i] = 0
}

// TriangleCount returns the number of triangles in the mesh topology.
func (s *State) TriangleCount() int {
	return len(s.Indices) / 3
}
