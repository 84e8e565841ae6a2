// Package main is the entry point for the try-on garment simulator.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/MTawhid7/try-on-xr/internal/config"
	"github.com/MTawhid7/try-on-xr/internal/logger"
	"github.com/MTawhid7/try-on-xr/internal/physics"
	"github.com/MTawhid7/try-on-xr/internal/physics/collision"
	"github.com/MTawhid7/try-on-xr/internal/physics/sched"
	"github.com/MTawhid7/try-on-xr/internal/scene"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Try-On XR Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	engine := buildEngine(cfg)

	runSimulation(engine, &cfg.Scene)

	logger.Info("simulation finished")
}

// buildEngine assembles the demo scene: a cloth sheet pinned at two corners,
// dropped onto a sphere collider.
func buildEngine(cfg *config.Config) *physics.Engine {
	sc := &cfg.Scene

	clothPos, clothIdx, clothUVs := scene.ClothGrid(sc.ClothResolution, sc.ClothSize, sc.ClothHeight)
	spherePos, sphereNorm, sphereIdx := scene.Sphere(sc.SphereRadius, sc.SphereSegments)

	logger.Info("scene generated",
		zap.Int("cloth_vertices", len(clothPos)/3),
		zap.Int("cloth_triangles", len(clothIdx)/3),
		zap.Int("collider_vertices", len(spherePos)/3),
		zap.Int("collider_triangles", len(sphereIdx)/3),
	)

	var scheduler sched.Scheduler = sched.Serial{}
	if cfg.Simulation.Parallel {
		scheduler = sched.NewParallel()
	}

	engine := physics.NewEngine(physics.EngineInput{
		GarmentPositions: clothPos,
		GarmentIndices:   clothIdx,
		GarmentUVs:       clothUVs,

		ColliderPositions: spherePos,
		ColliderNormals:   sphereNorm,
		ColliderIndices:   sphereIdx,

		SmoothingIterations: sc.ColliderSmoothing,
		Inflation:           sc.ColliderInflation,
		ScaleFactor:         sc.ScaleFactor,
	},
		physics.WithConfig(toPhysicsConfig(&cfg.Simulation)),
		physics.WithScheduler(scheduler),
	)

	// Pin the two far corners so the sheet drapes instead of sliding off.
	n := sc.ClothResolution + 1
	engine.Pin(0)
	engine.Pin(n - 1)

	return engine
}

func runSimulation(engine *physics.Engine, sc *config.SceneConfig) {
	start := time.Now()
	for frame := 0; frame < sc.Frames; frame++ {
		frameStart := time.Now()
		engine.Step(sc.FrameTime)

		if frame%60 == 0 {
			positions := engine.Positions()
			logger.Info("frame",
				zap.Int("n", frame),
				zap.Duration("step_time", time.Since(frameStart)),
				zap.Float32("sample_y", positions[1]),
			)
		}
	}

	logger.Info("simulation complete",
		zap.Int("frames", sc.Frames),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func toPhysicsConfig(sim *config.SimulationConfig) physics.Config {
	cfg := physics.DefaultConfig()

	cfg.Substeps = sim.Substeps
	cfg.SolverIterations = sim.SolverIterations
	cfg.Gravity = math.Vec3{X: sim.Gravity[0], Y: sim.Gravity[1], Z: sim.Gravity[2]}
	cfg.Wind = math.Vec3{X: sim.Wind[0], Y: sim.Wind[1], Z: sim.Wind[2]}

	cfg.DragCoeff = sim.DragCoeff
	cfg.LiftCoeff = sim.LiftCoeff
	cfg.Damping = sim.Damping
	cfg.AreaCompliance = sim.AreaCompliance
	cfg.DistanceCompliance = sim.DistanceCompliance
	cfg.SpectralRadius = sim.SpectralRadius

	cfg.ContactThickness = sim.ContactThickness
	cfg.StaticFriction = sim.StaticFriction
	cfg.DynamicFriction = sim.DynamicFriction
	cfg.CollisionStiffness = sim.CollisionStiffness

	cfg.SelfCollisionEnabled = sim.SelfCollision.Enabled
	cfg.SelfCollision = collision.SelfCollisionConfig{
		Thickness: sim.SelfCollision.Thickness,
		Stiffness: sim.SelfCollision.Stiffness,
		Frequency: sim.SelfCollision.Frequency,
		MaxPairs:  sim.SelfCollision.MaxPairs,
		RingDepth: sim.SelfCollision.RingDepth,
	}

	return cfg
}
