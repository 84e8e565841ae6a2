package collision

import (
	"testing"

	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

func testContactParams() ContactParams {
	return ContactParams{
		Thickness:       0.01,
		StaticFriction:  0.3,
		DynamicFriction: 0.2,
		Stiffness:       0.9,
	}
}

// floorCollider is a large horizontal square at y=0, normal +Y, with no
// smoothing or inflation so geometry stays exact.
func floorCollider() *Collider {
	positions := []float32{
		-1, 0, -1,
		1, 0, -1,
		1, 0, 1,
		-1, 0, 1,
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	return NewCollider(positions, nil, indices, 0, 0)
}

func particleState(pos, prev math.Vec3) *state.State {
	st := state.New([]float32{pos.X, pos.Y, pos.Z}, nil, nil)
	st.PrevPositions[0] = prev
	return st
}

func TestResolveContactsPushOut(t *testing.T) {
	params := testContactParams()

	// Particle slightly above the surface but within thickness.
	st := particleState(math.Vec3{Y: 0.002}, math.Vec3{Y: 0.002})
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	// Partial stiffness: moved toward thickness but not all the way.
	got := st.Positions[0].Y
	want := float32(0.002 + (0.01-0.002)*0.9)
	if got < want-1e-6 || got > want+1e-6 {
		t.Errorf("pushed to y = %f, want %f", got, want)
	}
}

func TestResolveContactsHardRecovery(t *testing.T) {
	params := testContactParams()

	// Penetrating particle: below the surface entirely.
	st := particleState(math.Vec3{Y: -0.005}, math.Vec3{Y: -0.005})
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	// Full stiffness: snapped exactly to the thickness shell.
	got := st.Positions[0].Y
	if got < 0.01-1e-6 || got > 0.01+1e-6 {
		t.Errorf("hard recovery y = %f, want %f", got, 0.01)
	}
}

func TestResolveContactsKillsApproachVelocity(t *testing.T) {
	params := testContactParams()

	// Moving down into the surface.
	st := particleState(math.Vec3{Y: 0.001}, math.Vec3{Y: 0.02})
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	// Implicit velocity along the normal must be gone.
	vel := st.Positions[0].Sub(st.PrevPositions[0])
	if vn := vel.Y; vn < -1e-6 || vn > 1e-6 {
		t.Errorf("residual normal velocity = %f, want 0", vn)
	}
}

func TestResolveContactsKeepsSeparatingVelocity(t *testing.T) {
	params := testContactParams()

	// Moving up and away while still inside the thickness shell.
	st := particleState(math.Vec3{Y: 0.005}, math.Vec3{Y: 0.002})
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	vel := st.Positions[0].Sub(st.PrevPositions[0])
	if vel.Y <= 0 {
		t.Errorf("separating velocity was killed: vy = %f", vel.Y)
	}
}

func TestResolveContactsStaticFrictionSticks(t *testing.T) {
	params := testContactParams()
	params.StaticFriction = 10 // generous stick threshold

	// Deep contact sliding slowly sideways.
	st := particleState(
		math.Vec3{X: 0.001, Y: 0.001},
		math.Vec3{X: 0, Y: 0.001},
	)
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	vel := st.Positions[0].Sub(st.PrevPositions[0])
	if vt := vel.X; vt < -1e-7 || vt > 1e-7 {
		t.Errorf("tangential velocity survived static friction: %f", vt)
	}
}

func TestResolveContactsAboveThicknessUntouched(t *testing.T) {
	params := testContactParams()

	st := particleState(math.Vec3{Y: 0.05}, math.Vec3{Y: 0.05})
	r := NewResolver(1)
	r.contacts = append(r.contacts, Contact{
		ParticleIndex: 0,
		Normal:        math.Vec3{Y: 1},
		SurfacePoint:  math.Vec3{},
	})

	r.ResolveContacts(st, params)

	if st.Positions[0].Y != 0.05 {
		t.Errorf("particle outside thickness moved to %f", st.Positions[0].Y)
	}
}

func TestBroadNarrowDiscreteContact(t *testing.T) {
	collider := floorCollider()

	// Hovering just above the floor, at rest.
	st := particleState(math.Vec3{Y: 0.005}, math.Vec3{Y: 0.005})
	r := NewResolver(1)

	r.BroadPhase(st, collider)
	r.NarrowPhase(st, collider, 0.01, 1.0/60/8)

	contacts := r.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.Normal.Y < 0.99 {
		t.Errorf("contact normal = %v, want +Y", c.Normal)
	}
	if c.SurfacePoint.Y < -1e-5 || c.SurfacePoint.Y > 1e-5 {
		t.Errorf("surface point = %v, want on floor plane", c.SurfacePoint)
	}
}

func TestBroadNarrowContinuousContact(t *testing.T) {
	collider := floorCollider()

	// Fast particle that tunneled through the floor this sub-step.
	st := particleState(math.Vec3{Y: -0.05}, math.Vec3{Y: 0.05})
	r := NewResolver(1)

	r.BroadPhase(st, collider)
	r.NarrowPhase(st, collider, 0.01, 1.0/60/8)

	contacts := r.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}

	// Continuous-hit normal opposes the motion, so it points up.
	if contacts[0].Normal.Y < 0.99 {
		t.Errorf("contact normal = %v, want +Y", contacts[0].Normal)
	}

	// The velocity clamp rewrote the previous position: the implicit
	// approach speed may not exceed the airbag limit.
	dt := float32(1.0 / 60 / 8)
	maxV := 0.01 * 0.9 / dt
	vn := st.Positions[0].Sub(st.PrevPositions[0]).Scale(1 / dt).Y
	if vn < -maxV-1e-3 {
		t.Errorf("approach speed %f exceeds clamp %f", -vn, maxV)
	}
}

func TestBroadPhaseSkipsDistantParticles(t *testing.T) {
	collider := floorCollider()

	st := particleState(math.Vec3{Y: 100}, math.Vec3{Y: 100})
	r := NewResolver(1)

	r.BroadPhase(st, collider)
	r.NarrowPhase(st, collider, 0.01, 1.0/60/8)

	if len(r.Contacts()) != 0 {
		t.Errorf("distant particle produced contacts: %v", r.Contacts())
	}
}

func TestBroadPhaseSkipsPinned(t *testing.T) {
	collider := floorCollider()

	st := particleState(math.Vec3{Y: 0.001}, math.Vec3{Y: 0.001})
	st.Pin(0)
	r := NewResolver(1)

	r.BroadPhase(st, collider)
	r.NarrowPhase(st, collider, 0.01, 1.0/60/8)

	if len(r.Contacts()) != 0 {
		t.Errorf("pinned particle produced contacts: %v", r.Contacts())
	}
}

func TestContainmentOverFrames(t *testing.T) {
	collider := floorCollider()
	params := testContactParams()

	// Drop a particle under gravity with the full per-sub-step pipeline and
	// verify it never ends below the floor.
	st := particleState(math.Vec3{Y: 0.1}, math.Vec3{Y: 0.1})
	r := NewResolver(1)

	dt := float32(1.0 / 60 / 8)
	gravity := float32(-9.81)

	for step := 0; step < 600; step++ {
		pos := st.Positions[0]
		next := pos.Add(pos.Sub(st.PrevPositions[0])).Add(math.Vec3{Y: gravity * dt * dt})
		st.PrevPositions[0] = pos
		st.Positions[0] = next

		r.BroadPhase(st, collider)
		r.NarrowPhase(st, collider, params.Thickness, dt)
		for iter := 0; iter < 4; iter++ {
			r.ResolveContacts(st, params)
		}

		if st.Positions[0].Y < -1e-4 {
			t.Fatalf("particle below floor at step %d: y = %f", step, st.Positions[0].Y)
		}
	}

	// Settled in the thickness shell above the surface.
	y := st.Positions[0].Y
	if y < 0 || y > params.Thickness*2 {
		t.Errorf("settled at y = %f, want within [0, %f]", y, params.Thickness*2)
	}
}
