package collision

import (
	"github.com/MTawhid7/try-on-xr/internal/physics/sched"
	"github.com/MTawhid7/try-on-xr/internal/physics/spatial"
	"github.com/MTawhid7/try-on-xr/internal/physics/state"
)

// SelfCollisionConfig tunes the cloth-on-cloth pipeline.
type SelfCollisionConfig struct {
	// Thickness is the minimum separation between non-adjacent particles.
	Thickness float32
	// Stiffness scales the separation correction, 0 to 1.
	Stiffness float32
	// Frequency solves self-collision every N sub-steps (0 or 1 = every one).
	Frequency int
	// MaxPairs caps detection; excess candidates are silently dropped.
	MaxPairs int
	// RingDepth is the topology exclusion radius in mesh hops.
	RingDepth int
}

// DefaultSelfCollisionConfig returns the tuning used by the engine.
func DefaultSelfCollisionConfig() SelfCollisionConfig {
	return SelfCollisionConfig{
		Thickness: 0.005,
		Stiffness: 0.5,
		Frequency: 2,
		MaxPairs:  10000,
		RingDepth: 2,
	}
}

// Pair is a detected particle-particle collision, I < J, emitted once.
type Pair struct {
	I, J uint32
}

// SelfCollision runs the three-phase cloth-on-cloth pipeline: pair detection
// over a rebuilt spatial hash, conflict-graph coloring, and batched
// mass-weighted separation.
type SelfCollision struct {
	hash      *spatial.HierarchicalHash
	exclusion *TopologyExclusion
	Config    SelfCollisionConfig

	queryBuffer   []uint32
	pairs         []Pair
	batchOffsets  []int
	particleCount int
	scheduler     sched.Scheduler
}

// NewSelfCollision builds exclusion data from the mesh topology and sizes the
// hash to the configured thickness.
func NewSelfCollision(st *state.State, cfg SelfCollisionConfig, scheduler sched.Scheduler) *SelfCollision {
	if scheduler == nil {
		scheduler = sched.Serial{}
	}
	return &SelfCollision{
		hash:          spatial.NewHierarchicalHash(cfg.Thickness),
		exclusion:     NewTopologyExclusion(st.Indices, st.Count, cfg.RingDepth),
		Config:        cfg,
		queryBuffer:   make([]uint32, 0, 64),
		pairs:         make([]Pair, 0, 1024),
		batchOffsets:  make([]int, 0, 16),
		particleCount: st.Count,
		scheduler:     scheduler,
	}
}

// Solve detects, colors and resolves self-collision pairs for the current
// positions. Pairs are transient; everything is rebuilt on each call.
func (s *SelfCollision) Solve(st *state.State) {
	if !s.detectPairs(st) {
		return
	}
	s.colorPairs()
	s.resolveBatched(st)
}

// Exclusion exposes the topology filter (used by tests and detection).
func (s *SelfCollision) Exclusion() *TopologyExclusion {
	return s.exclusion
}
