// Package physics exposes the garment simulation engine: construction from
// raw mesh buffers, the per-frame Step, interaction grabbing, and read access
// to the resulting position and normal buffers.
package physics

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/collision"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// Config holds every tunable of the simulation. Zero values are not usable;
// start from DefaultConfig.
type Config struct {
	// Quality.
	Substeps         int
	SolverIterations int

	// Global forces.
	Gravity math.Vec3
	Wind    math.Vec3

	// Material.
	DragCoeff          float32
	LiftCoeff          float32
	Damping            float32
	AreaCompliance     float32
	DistanceCompliance float32

	// Convergence.
	SpectralRadius float32

	// Static-body collision.
	ContactThickness   float32
	StaticFriction     float32
	DynamicFriction    float32
	CollisionStiffness float32

	// Cloth-on-cloth.
	SelfCollision        collision.SelfCollisionConfig
	SelfCollisionEnabled bool
}

// DefaultConfig returns cotton-like material settings at human-garment scale.
func DefaultConfig() Config {
	return Config{
		Substeps:         8,
		SolverIterations: 25,

		Gravity: math.Vec3{Y: -9.81},
		Wind:    math.Vec3{},

		DragCoeff: 2.0,
		LiftCoeff: 0.05,
		Damping:   0.99,

		// Near-rigid rather than exactly rigid: keeps an initially invalid
		// mesh from blowing up numerically.
		AreaCompliance:     1e-6,
		DistanceCompliance: 0,

		SpectralRadius: 0.9,

		// 5mm thickness on top of the collider's visual inflation.
		ContactThickness:   0.005,
		StaticFriction:     0.3,
		DynamicFriction:    0.2,
		CollisionStiffness: 0.9,

		SelfCollision:        collision.DefaultSelfCollisionConfig(),
		SelfCollisionEnabled: true,
	}
}

func (c Config) contactParams() collision.ContactParams {
	return collision.ContactParams{
		Thickness:       c.ContactThickness,
		StaticFriction:  c.StaticFriction,
		DynamicFriction: c.DynamicFriction,
		Stiffness:       c.CollisionStiffness,
	}
}
