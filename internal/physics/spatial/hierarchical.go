package spatial

import (
	gomath "math"

	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// expandBits spreads the low 10 bits of v so they occupy every third bit.
func expandBits(v uint64) uint64 {
	v = (v | (v << 32)) & 0x1f00000000ffff
	v = (v | (v << 16)) & 0x1f0000ff0000ff
	v = (v | (v << 8)) & 0x100f00f00f00f00f
	v = (v | (v << 4)) & 0x10c30c30c30c30c3
	v = (v | (v << 2)) & 0x1249249249249249
	return v
}

// mortonEncode interleaves cell coordinates in ZYX order for spatial
// locality. Coordinates are offset into the positive range so grids
// spanning the origin still hash.
func mortonEncode(x, y, z int32) uint64 {
	ux := uint64(int64(x)+512) & 0x3ff
	uy := uint64(int64(y)+512) & 0x3ff
	uz := uint64(int64(z)+512) & 0x3ff
	return expandBits(ux) | expandBits(uy)<<1 | expandBits(uz)<<2
}

// HierarchicalHash is a two-level Morton-coded hash for moving points.
// The fine grid resolves actual candidates; the coarse grid (4x coarser)
// gives a cheap occupancy early-out where the cloth is locally sparse.
// It is cleared and rebuilt from scratch every time the positions move.
type HierarchicalHash struct {
	fineCellSize   float32
	coarseCellSize float32
	fine           map[uint64][]uint32
	coarse         map[uint64][]uint32
	dedup          map[uint32]struct{}
}

// NewHierarchicalHash sizes the fine grid to twice the collision radius.
func NewHierarchicalHash(collisionRadius float32) *HierarchicalHash {
	fine := collisionRadius * 2
	return &HierarchicalHash{
		fineCellSize:   fine,
		coarseCellSize: fine * 4,
		fine:           make(map[uint64][]uint32),
		coarse:         make(map[uint64][]uint32),
		dedup:          make(map[uint32]struct{}),
	}
}

// Clear empties every cell while keeping allocated slice capacity, so a
// rebuild stays O(point count) without churning the allocator.
func (h *HierarchicalHash) Clear() {
	for k, cell := range h.fine {
		h.fine[k] = cell[:0]
	}
	for k, cell := range h.coarse {
		h.coarse[k] = cell[:0]
	}
}

func cellCoord(v, cellSize float32) int32 {
	return int32(gomath.Floor(float64(v / cellSize)))
}

func (h *HierarchicalHash) fineCell(p math.Vec3) (int32, int32, int32) {
	return cellCoord(p.X, h.fineCellSize), cellCoord(p.Y, h.fineCellSize), cellCoord(p.Z, h.fineCellSize)
}

func (h *HierarchicalHash) coarseCell(p math.Vec3) (int32, int32, int32) {
	return cellCoord(p.X, h.coarseCellSize), cellCoord(p.Y, h.coarseCellSize), cellCoord(p.Z, h.coarseCellSize)
}

// Insert registers a point in both levels.
func (h *HierarchicalHash) Insert(id uint32, p math.Vec3) {
	fx, fy, fz := h.fineCell(p)
	fk := mortonEncode(fx, fy, fz)
	h.fine[fk] = append(h.fine[fk], id)

	cx, cy, cz := h.coarseCell(p)
	ck := mortonEncode(cx, cy, cz)
	h.coarse[ck] = append(h.coarse[ck], id)
}

// Query appends the de-duplicated ids near p within radius to buf and
// returns it. The coarse level is consulted first: if neither the point's
// coarse cell nor any of its 26 neighbors holds a point, the fine scan is
// skipped entirely.
func (h *HierarchicalHash) Query(p math.Vec3, radius float32, buf []uint32) []uint32 {
	buf = buf[:0]

	cx, cy, cz := h.coarseCell(p)
	if !h.coarseOccupied(cx, cy, cz) {
		return buf
	}

	for k := range h.dedup {
		delete(h.dedup, k)
	}

	min := p.Sub(math.Splat(radius))
	max := p.Add(math.Splat(radius))
	minX, minY, minZ := h.fineCell(min)
	maxX, maxY, maxZ := h.fineCell(max)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				cell, present := h.fine[mortonEncode(x, y, z)]
				if !present {
					continue
				}
				for _, id := range cell {
					if _, seen := h.dedup[id]; !seen {
						h.dedup[id] = struct{}{}
						buf = append(buf, id)
					}
				}
			}
		}
	}
	return buf
}

func (h *HierarchicalHash) coarseOccupied(cx, cy, cz int32) bool {
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if len(h.coarse[mortonEncode(cx+dx, cy+dy, cz+dz)]) > 0 {
					return true
				}
			}
		}
	}
	return false
}
