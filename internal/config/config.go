// Package config handles simulation configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Scene      SceneConfig      `yaml:"scene"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the solver and material tunables.
type SimulationConfig struct {
	Substeps         int        `yaml:"substeps"`
	SolverIterations int        `yaml:"solver_iterations"`
	Gravity          [3]float32 `yaml:"gravity"`
	Wind             [3]float32 `yaml:"wind"`

	DragCoeff          float32 `yaml:"drag_coeff"`
	LiftCoeff          float32 `yaml:"lift_coeff"`
	Damping            float32 `yaml:"damping"`
	AreaCompliance     float32 `yaml:"area_compliance"`
	DistanceCompliance float32 `yaml:"distance_compliance"`
	SpectralRadius     float32 `yaml:"spectral_radius"`

	ContactThickness   float32 `yaml:"contact_thickness"`
	StaticFriction     float32 `yaml:"static_friction"`
	DynamicFriction    float32 `yaml:"dynamic_friction"`
	CollisionStiffness float32 `yaml:"collision_stiffness"`

	SelfCollision SelfCollisionConfig `yaml:"self_collision"`

	Parallel bool `yaml:"parallel"`
}

// SelfCollisionConfig holds the cloth-on-cloth settings.
type SelfCollisionConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Thickness float32 `yaml:"thickness"`
	Stiffness float32 `yaml:"stiffness"`
	Frequency int     `yaml:"frequency"`
	MaxPairs  int     `yaml:"max_pairs"`
	RingDepth int     `yaml:"ring_depth"`
}

// SceneConfig holds the demo scene parameters: a square cloth sheet dropped
// onto a generated sphere collider.
type SceneConfig struct {
	ClothResolution int     `yaml:"cloth_resolution"`
	ClothSize       float32 `yaml:"cloth_size"`
	ClothHeight     float32 `yaml:"cloth_height"`
	ScaleFactor     float32 `yaml:"scale_factor"`

	SphereRadius   float32 `yaml:"sphere_radius"`
	SphereSegments int     `yaml:"sphere_segments"`

	ColliderSmoothing int     `yaml:"collider_smoothing"`
	ColliderInflation float32 `yaml:"collider_inflation"`

	Frames    int     `yaml:"frames"`
	FrameTime float32 `yaml:"frame_time"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Substeps:         8,
			SolverIterations: 25,
			Gravity:          [3]float32{0, -9.81, 0},
			Wind:             [3]float32{0, 0, 0},

			DragCoeff:          2.0,
			LiftCoeff:          0.05,
			Damping:            0.99,
			AreaCompliance:     1e-6,
			DistanceCompliance: 0,
			SpectralRadius:     0.9,

			ContactThickness:   0.005,
			StaticFriction:     0.3,
			DynamicFriction:    0.2,
			CollisionStiffness: 0.9,

			SelfCollision: SelfCollisionConfig{
				Enabled:   true,
				Thickness: 0.005,
				Stiffness: 0.5,
				Frequency: 2,
				MaxPairs:  10000,
				RingDepth: 2,
			},

			Parallel: false,
		},
		Scene: SceneConfig{
			ClothResolution: 40,
			ClothSize:       0.6,
			ClothHeight:     0.45,
			ScaleFactor:     1.0,

			SphereRadius:   0.2,
			SphereSegments: 24,

			ColliderSmoothing: 2,
			ColliderInflation: 0.003,

			Frames:    300,
			FrameTime: 1.0 / 60.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
