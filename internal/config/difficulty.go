package config

import "math"

// Progression types.
const (
	ProgressNone    = "none"
	ProgressSeconds = "seconds" // simulated seconds since the run started
	ProgressLaps    = "laps"    // laps the player has completed
)

// DifficultyManager maps run progress to a level in [0, 1]. The level starts
// at initial_level and climbs linearly to 1 at progression.max_at.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		floor: math.Max(0, math.Min(1, cfg.InitialLevel)),
	}
}

// Ramps reports whether the level changes as the run progresses.
func (d *DifficultyManager) Ramps() bool {
	switch d.cfg.Progression.Type {
	case ProgressSeconds, ProgressLaps:
		return d.cfg.Enabled
	}
	return false
}

// Unit returns the progression type the manager was configured with.
func (d *DifficultyManager) Unit() string {
	if d.cfg.Progression.Type == "" {
		return ProgressNone
	}
	return d.cfg.Progression.Type
}

// At returns the level after progress units of the configured type.
func (d *DifficultyManager) At(progress float64) float64 {
	if !d.Ramps() {
		return d.floor
	}
	span := float64(d.cfg.Progression.MaxAt)
	if span <= 0 {
		return 1
	}
	t := math.Max(0, math.Min(1, progress/span))
	return d.floor + t*(1-d.floor)
}

// Multiplier scales a base speed at the given progress: 1 at level zero and
// 1 + speed_multiplier at level one.
func (d *DifficultyManager) Multiplier(progress float64) float64 {
	return 1 + d.At(progress)*d.cfg.Scaling.SpeedMultiplier
}
