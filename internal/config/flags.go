package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagFrames   = flag.Int("frames", 0, "Number of frames to simulate")
	flagSubsteps = flag.Int("substeps", 0, "Sub-steps per frame")
	flagParallel = flag.Bool("parallel", false, "Use the parallel scheduler")
	flagNoSelf   = flag.Bool("no-self-collision", false, "Disable cloth self-collision")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrames > 0 {
		cfg.Scene.Frames = *flagFrames
	}
	if *flagSubsteps > 0 {
		cfg.Simulation.Substeps = *flagSubsteps
	}
	if *flagParallel {
		cfg.Simulation.Parallel = true
	}
	if *flagNoSelf {
		cfg.Simulation.SelfCollision.Enabled = false
	}
}
