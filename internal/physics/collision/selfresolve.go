package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/internal/physics/wide"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// resolveBatched separates overlapping pairs batch by batch. Within a batch
// no particle appears twice, so the 4-wide groups are handed to the scheduler
// and may run concurrently; batches stay strictly ordered because later ones
// must observe earlier corrections.
func (s *SelfCollision) resolveBatched(st *state.State) {
	stiffness := s.Config.Stiffness
	thickness := s.Config.Thickness

	for b := 0; b+1 < len(s.batchOffsets); b++ {
		start := s.batchOffsets[b]
		end := s.batchOffsets[b+1]
		count := end - start

		groups := count / wide.Lanes
		s.scheduler.Run(groups, func(g int) {
			s.resolveWide(st, start+g*wide.Lanes, stiffness, thickness)
		})

		for k := start + groups*wide.Lanes; k < end; k++ {
			s.resolveSingle(st, k, stiffness, thickness)
		}
	}
}

// resolveWide handles four pairs in lock-step with the wide kernels.
func (s *SelfCollision) resolveWide(st *state.State, base int, stiffness, thickness float32) {
	var pi, pj wide.Vec3
	var wi, wj wide.F32
	var is, js [wide.Lanes]int

	for l := 0; l < wide.Lanes; l++ {
		pair := s.pairs[base+l]
		i, j := int(pair.I), int(pair.J)
		is[l], js[l] = i, j

		pi.X[l], pi.Y[l], pi.Z[l] = st.Positions[i].X, st.Positions[i].Y, st.Positions[i].Z
		pj.X[l], pj.Y[l], pj.Z[l] = st.Positions[j].X, st.Positions[j].Y, st.Positions[j].Z
		wi[l] = st.InvMass[i]
		wj[l] = st.InvMass[j]
	}

	delta := pi.Sub(pj)
	dist := delta.Length()

	overlap := wide.Splat(thickness).Sub(dist).Max(wide.Splat(0))
	safeDist := dist.Max(wide.Splat(1e-8))
	normal := delta.Div(safeDist)

	correctionMag := overlap.Mul(wide.Splat(stiffness))

	wSum := wi.Add(wj).Max(wide.Splat(1e-8))
	corrI := normal.Scale(correctionMag.Mul(wi.Div(wSum)))
	corrJ := normal.Scale(correctionMag.Mul(wj.Div(wSum)))

	for l := 0; l < wide.Lanes; l++ {
		if wi[l] > 0 {
			st.Positions[is[l]] = st.Positions[is[l]].Add(math.Vec3{X: corrI.X[l], Y: corrI.Y[l], Z: corrI.Z[l]})
		}
		if wj[l] > 0 {
			st.Positions[js[l]] = st.Positions[js[l]].Sub(math.Vec3{X: corrJ.X[l], Y: corrJ.Y[l], Z: corrJ.Z[l]})
		}
	}
}

// resolveSingle is the scalar remainder path.
func (s *SelfCollision) resolveSingle(st *state.State, k int, stiffness, thickness float32) {
	pair := s.pairs[k]
	i, j := int(pair.I), int(pair.J)

	delta := st.Positions[i].Sub(st.Positions[j])
	dist := delta.Length()
	if dist < 1e-9 {
		return
	}

	overlap := thickness - dist
	if overlap <= 0 {
		return
	}

	normal := delta.Scale(1 / dist)
	correction := normal.Scale(overlap * stiffness)

	w1 := st.InvMass[i]
	w2 := st.InvMass[j]
	wSum := w1 + w2
	if wSum <= 0 {
		return
	}

	if w1 > 0 {
		st.Positions[i] = st.Positions[i].Add(correction.Scale(w1 / wSum))
	}
	if w2 > 0 {
		st.Positions[j] = st.Positions[j].Sub(correction.Scale(w2 / wSum))
	}
}
