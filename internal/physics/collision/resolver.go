package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// Contact is one particle's contact with the static body for the current
// sub-step. At most one contact exists per particle; the narrow phase keeps
// the earliest continuous hit or, failing that, the closest discrete one.
type Contact struct {
	ParticleIndex int
	Normal        math.Vec3
	SurfacePoint  math.Vec3
}

// ContactParams are the response tuning knobs for contact resolution.
type ContactParams struct {
	Thickness       float32
	StaticFriction  float32
	DynamicFriction float32
	Stiffness       float32
}

// Resolver runs per-frame broad phase and per-sub-step narrow phase against
// the static collider, then resolves the cached contacts once per solver
// iteration.
type Resolver struct {
	contacts []Contact

	// Broad-phase cache: candidate triangle ranges per particle.
	queryBuffer      []int
	candidateIndices []int
	candidateOffsets []int
	candidateCounts  []int
}

// candidateCapacity caps the broad-phase cache. When a query would overflow
// it, that particle's candidates are dropped for the frame: a bounded,
// deterministic cost is preferred over completeness under pathological
// density.
const candidateCapacity = 10000

// NewResolver allocates caches sized to the particle count.
func NewResolver(particleCount int) *Resolver {
	return &Resolver{
		contacts:         make([]Contact, 0, 3000),
		queryBuffer:      make([]int, 0, 32),
		candidateIndices: make([]int, 0, candidateCapacity),
		candidateOffsets: make([]int, particleCount),
		candidateCounts:  make([]int, particleCount),
	}
}

// Contacts returns the contact list cached by the last narrow phase.
func (r *Resolver) Contacts() []Contact {
	return r.contacts
}

// ResolveContacts pushes contacting particles out of the surface and applies
// Coulomb friction. Runs once per solver iteration over the cached contact
// list, never with Chebyshev acceleration: over-relaxed contact response
// over-corrects and re-tunnels.
func (r *Resolver) ResolveContacts(st *state.State, params ContactParams) {
	for _, contact := range r.contacts {
		i := contact.ParticleIndex
		pos := st.Positions[i]
		normal := contact.Normal

		projection := pos.Sub(contact.SurfacePoint).Dot(normal)
		if projection >= params.Thickness {
			continue
		}

		penetration := params.Thickness - projection

		// Hard recovery: already interpenetrating means full stiffness so
		// the particle snaps back instead of easing out over iterations.
		stiffness := params.Stiffness
		if projection < 0 {
			stiffness = 1
		}

		pos = pos.Add(normal.Scale(penetration * stiffness))
		st.Positions[i] = pos

		// Coulomb friction on the implicit velocity.
		velocity := pos.Sub(st.PrevPositions[i])
		vnMag := velocity.Dot(normal)
		vn := normal.Scale(vnMag)
		vt := velocity.Sub(vn)
		vtLen := vt.Length()

		var frictionFactor float32
		if vtLen > 1e-9 {
			if vtLen < penetration*params.StaticFriction {
				frictionFactor = 1 // stick
			} else {
				frictionFactor = penetration * params.DynamicFriction / vtLen
				if frictionFactor > 1 {
					frictionFactor = 1
				}
			}
		}
		newVt := vt.Scale(1 - frictionFactor)

		// Inelastic: kill normal velocity only when it points into the body.
		newVn := vn
		if vnMag < 0 {
			newVn = math.Vec3{}
		}

		st.PrevPositions[i] = pos.Sub(newVn.Add(newVt))
	}
}
