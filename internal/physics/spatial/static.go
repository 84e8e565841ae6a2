// Package spatial provides the grids used for collision broad phase:
// a fixed uniform grid sized to the static collider, and a two-level
// Morton-coded hash rebuilt every sub-step for self-collision.
package spatial

import (
	gomath "math"

	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// maxCellsPerAxis bounds grid memory on degenerate input.
const maxCellsPerAxis = 1000

// StaticGrid is a fixed-size uniform grid over the collider bounds.
// Triangles are inserted once per rebuild; queries are O(cells overlapped).
type StaticGrid struct {
	cellSize float32
	min, max math.Vec3
	width    int
	height   int
	depth    int
	cells    [][]int

	// Reusable set so hot-path queries dedup without sorting or allocating.
	dedup map[int]struct{}
}

// NewStaticGrid builds a grid covering [boundsMin, boundsMax] plus a
// two-cell padding on every side.
func NewStaticGrid(boundsMin, boundsMax math.Vec3, cellSize float32) *StaticGrid {
	padding := math.Splat(cellSize * 2)
	gmin := boundsMin.Sub(padding)
	gmax := boundsMax.Add(padding)
	size := gmax.Sub(gmin)

	width := clampAxis(int(gomath.Ceil(float64(size.X / cellSize))))
	height := clampAxis(int(gomath.Ceil(float64(size.Y / cellSize))))
	depth := clampAxis(int(gomath.Ceil(float64(size.Z / cellSize))))

	return &StaticGrid{
		cellSize: cellSize,
		min:      gmin,
		max:      gmax,
		width:    width,
		height:   height,
		depth:    depth,
		cells:    make([][]int, width*height*depth),
		dedup:    make(map[int]struct{}, 256),
	}
}

func clampAxis(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxCellsPerAxis {
		return maxCellsPerAxis
	}
	return n
}

// Contains reports whether p lies inside the padded grid bounds.
// Lets callers skip the grid entirely for particles known to be far away.
func (g *StaticGrid) Contains(p math.Vec3) bool {
	return p.X >= g.min.X && p.X <= g.max.X &&
		p.Y >= g.min.Y && p.Y <= g.max.Y &&
		p.Z >= g.min.Z && p.Z <= g.max.Z
}

// Clear empties all cells, keeping their capacity.
func (g *StaticGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// InsertAABB registers id in every cell overlapping the box [min, max].
func (g *StaticGrid) InsertAABB(id int, min, max math.Vec3) {
	start := min.Sub(g.min).Max(math.Vec3{})
	end := max.Sub(g.min)

	minX := int(start.X / g.cellSize)
	minY := int(start.Y / g.cellSize)
	minZ := int(start.Z / g.cellSize)

	maxX := capIndex(int(end.X/g.cellSize), g.width)
	maxY := capIndex(int(end.Y/g.cellSize), g.height)
	maxZ := capIndex(int(end.Z/g.cellSize), g.depth)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				idx := x + y*g.width + z*g.width*g.height
				g.cells[idx] = append(g.cells[idx], id)
			}
		}
	}
}

func capIndex(i, dim int) int {
	if i > dim-1 {
		return dim - 1
	}
	return i
}

// Query appends to buf the de-duplicated ids from all cells overlapping the
// AABB of radius around p. buf is cleared first and returned re-sliced.
func (g *StaticGrid) Query(p math.Vec3, radius float32, buf []int) []int {
	buf = buf[:0]
	for k := range g.dedup {
		delete(g.dedup, k)
	}

	min := p.Sub(math.Splat(radius))
	max := p.Add(math.Splat(radius))

	start := min.Sub(g.min).Max(math.Vec3{})
	end := max.Sub(g.min)

	minX := int(start.X / g.cellSize)
	minY := int(start.Y / g.cellSize)
	minZ := int(start.Z / g.cellSize)
	if minX >= g.width || minY >= g.height || minZ >= g.depth {
		return buf
	}

	maxX := capIndex(int(end.X/g.cellSize), g.width)
	maxY := capIndex(int(end.Y/g.cellSize), g.height)
	maxZ := capIndex(int(end.Z/g.cellSize), g.depth)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				idx := x + y*g.width + z*g.width*g.height
				for _, id := range g.cells[idx] {
					if _, seen := g.dedup[id]; !seen {
						g.dedup[id] = struct{}{}
						buf = append(buf, id)
					}
				}
			}
		}
	}
	return buf
}
