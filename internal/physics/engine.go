package physics

import (
	"go.uber.org/zap"

	"github.com/MTawhid7/try-on-xr/internal/logger"
	"github.com/MTawhid7/try-on-xr/internal/physics/collision"
	"github.com/MTawhid7/try-on-xr/internal/physics/constraint"
	"github.com/MTawhid7/try-on-xr/internal/physics/dynamics"
	"github.com/MTawhid7/try-on-xr/internal/physics/sched"
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
	"github.com/MTawhid7/try-on-xr/pkg/math"
)

// EngineInput carries the raw mesh buffers needed to construct an Engine.
// Positions are flat XYZ triples, UVs flat pairs. Array lengths and index
// ranges are the caller's responsibility; they are not re-validated here.
type EngineInput struct {
	GarmentPositions []float32
	GarmentIndices   []uint32
	GarmentUVs       []float32

	ColliderPositions []float32
	ColliderNormals   []float32
	ColliderIndices   []uint32

	// Collider preprocessing.
	SmoothingIterations int
	Inflation           float32

	// Uniform garment scale; bending compliance scales with its square.
	ScaleFactor float32
}

// Engine is the complete garment simulation: particle state, static-body
// collision, self-collision, internal constraints and the sub-stepped solve.
// One Engine owns its buffers exclusively; Step must not be called
// concurrently on the same instance.
type Engine struct {
	state    *state.State
	config   Config
	collider *collision.Collider
	resolver *collision.Resolver
	solver   *dynamics.Solver
	aero     *dynamics.Aerodynamics
	grab     *constraint.GrabConstraint
	selfColl *collision.SelfCollision

	substepCounter uint32

	// Flat 4-float-stride output buffers (w unused, kept zero).
	positionBuffer []float32
	normalBuffer   []float32
}

// Option customizes engine construction.
type Option func(*options)

type options struct {
	config    Config
	scheduler sched.Scheduler
}

// WithConfig overrides the default physics configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithScheduler selects the execution strategy for batched solving.
func WithScheduler(s sched.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// NewEngine builds the simulation: garment particle state, preprocessed
// collider with its spatial grid, all constraint records (colored), and the
// self-collision pipeline.
func NewEngine(input EngineInput, opts ...Option) *Engine {
	o := options{config: DefaultConfig(), scheduler: sched.Serial{}}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.config

	st := state.New(input.GarmentPositions, input.GarmentIndices, input.GarmentUVs)

	collider := collision.NewCollider(
		input.ColliderPositions,
		input.ColliderNormals,
		input.ColliderIndices,
		input.SmoothingIterations,
		input.Inflation,
	)

	scale := input.ScaleFactor
	if scale == 0 {
		scale = 1
	}

	selfCfg := cfg.SelfCollision

	e := &Engine{
		state:          st,
		config:         cfg,
		collider:       collider,
		resolver:       collision.NewResolver(st.Count),
		solver:         dynamics.NewSolver(st, scale, cfg.DistanceCompliance, o.scheduler),
		aero:           dynamics.NewAerodynamics(st.Count),
		grab:           constraint.NewGrab(),
		selfColl:       collision.NewSelfCollision(st, selfCfg, o.scheduler),
		positionBuffer: make([]float32, st.Count*4),
		normalBuffer:   make([]float32, st.Count*4),
	}

	if logger.Log != nil {
		logger.Log.Info("physics engine created",
			zap.Int("particles", st.Count),
			zap.Int("garment_triangles", st.TriangleCount()),
			zap.Int("collider_triangles", len(collider.Triangles)),
			zap.Int("distance_constraints", len(e.solver.Distance.Pairs)),
			zap.Int("bending_constraints", len(e.solver.Bending.Pairs)),
			zap.Int("tether_constraints", len(e.solver.Tether.Pairs)),
			zap.Int("area_constraints", len(e.solver.Area.Triples)),
		)
	}

	return e
}

// State exposes the particle store (read access for hosts and tests).
func (e *Engine) State() *state.State {
	return e.state
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Step advances the simulation by dt seconds, divided into the configured
// number of equal sub-steps. Broad phase runs once per frame; everything else
// per sub-step, in fixed order.
func (e *Engine) Step(dt float32) {
	if dt <= 0 {
		return
	}
	cfg := &e.config
	sdt := dt / float32(cfg.Substeps)

	e.resolver.BroadPhase(e.state, e.collider)

	solveParams := dynamics.SolveParams{
		Iterations:     cfg.SolverIterations,
		SpectralRadius: cfg.SpectralRadius,
		AreaCompliance: cfg.AreaCompliance,
		Contact:        cfg.contactParams(),
	}

	for s := 0; s < cfg.Substeps; s++ {
		forces := e.aero.Apply(e.state, cfg.Wind, cfg.DragCoeff, cfg.LiftCoeff, sdt)
		dynamics.Integrate(e.state, cfg.Gravity, cfg.Damping, forces, sdt)

		e.grab.Solve(e.state, sdt)

		e.resolver.NarrowPhase(e.state, e.collider, cfg.ContactThickness, sdt)
		e.solver.Solve(e.state, e.resolver, solveParams, sdt)

		if cfg.SelfCollisionEnabled {
			freq := uint32(e.selfColl.Config.Frequency)
			if freq <= 1 || e.substepCounter%freq == 0 {
				e.selfColl.Solve(e.state)
			}
		}
		e.substepCounter++
	}

	computeVertexNormals(e.state)
}

// Positions returns the current particle positions as a contiguous buffer
// with a 4-float stride (w kept zero), refreshed on each call.
func (e *Engine) Positions() []float32 {
	for i, p := range e.state.Positions {
		e.positionBuffer[i*4] = p.X
		e.positionBuffer[i*4+1] = p.Y
		e.positionBuffer[i*4+2] = p.Z
		e.positionBuffer[i*4+3] = 0
	}
	return e.positionBuffer
}

// Normals returns the current vertex normals with the same layout as
// Positions.
func (e *Engine) Normals() []float32 {
	for i, n := range e.state.Normals {
		e.normalBuffer[i*4] = n.X
		e.normalBuffer[i*4+1] = n.Y
		e.normalBuffer[i*4+2] = n.Z
		e.normalBuffer[i*4+3] = 0
	}
	return e.normalBuffer
}

// Grab starts dragging a particle toward target.
func (e *Engine) Grab(particleIndex int, target math.Vec3) {
	e.grab.Grab(particleIndex, target)
}

// UpdateTarget moves the drag target.
func (e *Engine) UpdateTarget(target math.Vec3) {
	e.grab.UpdateTarget(target)
}

// Release ends the drag interaction.
func (e *Engine) Release() {
	e.grab.Release()
}

// UpdateCollider re-runs preprocessing on new collider vertex positions and
// rebuilds the spatial grid in place. Topology and the configured
// smoothing/inflation parameters are preserved.
func (e *Engine) UpdateCollider(positions []float32) {
	e.collider.Update(positions)
}

// TransformCollider applies a rigid transform to the collider body and
// rebuilds its spatial grid. Cheaper than UpdateCollider for avatar motion
// that is pure rotation and translation, since preprocessing is skipped.
func (e *Engine) TransformCollider(m math.Mat4) {
	e.collider.Transform(m)
}

// Pin fixes a particle in place (inverse mass zero).
func (e *Engine) Pin(particleIndex int) {
	e.state.Pin(particleIndex)
}
