package core

const (
	defaultTickRate = 60
	defaultScreenW  = 80
	defaultScreenH  = 24
)

// RuntimeConfig is what the platform tells a game on Reset: the terminal
// size, the tick rate and the seed for its RNG. A zero Seed asks the
// platform to pick one from the wall clock.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int
	Seed     int64
}

// DefaultConfig returns an 80x24 screen ticking at 60 Hz.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: defaultScreenW, ScreenH: defaultScreenH, TickRate: defaultTickRate}
}

// Normalized replaces non-positive sizes and rates with the defaults.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = defaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = defaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = defaultTickRate
	}
	return c
}

// StepSeconds is the length of one tick.
func (c RuntimeConfig) StepSeconds() float64 {
	return 1 / float64(c.Normalized().TickRate)
}

// GameState is the part of a game the platform needs between ticks.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool // only meaningful once GameOver is set
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
