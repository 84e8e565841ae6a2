package dynamics

import (
	gomath "math"
	"testing"

	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

func TestIntegrateGravityFall(t *testing.T) {
	st := state.New([]float32{0, 0, 0}, nil, nil)
	gravity := math.Vec3{Y: -9.81}
	dt := float32(0.01)

	Integrate(st, gravity, 1, nil, dt)

	want := float32(-9.81 * 0.01 * 0.01)
	got := st.Positions[0].Y
	if gomath.Abs(float64(got-want)) > 1e-7 {
		t.Errorf("y after one step = %v, want %v", got, want)
	}
	if st.PrevPositions[0].Y != 0 {
		t.Errorf("previous position not advanced: %v", st.PrevPositions[0])
	}

	// Velocity accumulates: the second step falls further than the first.
	first := st.Positions[0].Y
	Integrate(st, gravity, 1, nil, dt)
	secondDrop := st.Positions[0].Y - first
	if secondDrop >= first {
		t.Errorf("fall not accelerating: first %f second %f", first, secondDrop)
	}
}

func TestIntegrateDamping(t *testing.T) {
	step := func(damping float32) float32 {
		st := state.New([]float32{0, 0, 0}, nil, nil)
		// Implicit velocity of 1 m/s along X.
		st.PrevPositions[0] = math.Vec3{X: -0.01}
		Integrate(st, math.Vec3{}, damping, nil, 0.01)
		return st.Positions[0].X
	}

	undamped := step(1)
	damped := step(0.9)

	if gomath.Abs(float64(undamped-0.01)) > 1e-7 {
		t.Errorf("undamped step = %f, want 0.01", undamped)
	}
	if damped >= undamped {
		t.Errorf("damping did not slow the particle: %f >= %f", damped, undamped)
	}
}

func TestIntegratePinnedStays(t *testing.T) {
	st := state.New([]float32{1, 2, 3}, nil, nil)
	st.Pin(0)

	Integrate(st, math.Vec3{Y: -9.81}, 0.99, nil, 0.01)

	want := math.Vec3{X: 1, Y: 2, Z: 3}
	if st.Positions[0] != want {
		t.Errorf("pinned particle moved to %v", st.Positions[0])
	}
}

func TestIntegrateExternalForce(t *testing.T) {
	st := state.New([]float32{0, 0, 0}, nil, nil)
	forces := []math.Vec3{{X: 2}}
	dt := float32(0.01)

	Integrate(st, math.Vec3{}, 1, forces, dt)

	want := float32(2 * 0.01 * 0.01) // unit inverse mass
	got := st.Positions[0].X
	if gomath.Abs(float64(got-want)) > 1e-7 {
		t.Errorf("x after forced step = %v, want %v", got, want)
	}
}
