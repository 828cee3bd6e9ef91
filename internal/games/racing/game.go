// Package racing is a pseudo-3D lap race against AI traffic.
//
// The simulation runs on a fixed 1/60s step driven by a loop.Accumulator;
// each platform tick feeds it the time elapsed since the previous one.
package racing

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/loop"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

const hudHeight = 2

func init() {
	registry.Register("racing", func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for the racer.
type Game struct {
	cfg        config.RacingConfig
	configured bool

	runtime core.RuntimeConfig
	rng     *rand.Rand
	sim     *Sim
	ramp    *config.DifficultyManager
	acc     *loop.Accumulator
	clock   loop.Clock
	logger  *log.Logger

	over   bool
	won    bool
	score  int
	paused bool
}

// New creates a racer with configuration loaded on first Reset.
func New() *Game {
	return &Game{clock: loop.SystemClock}
}

// NewWithConfig creates a racer with an explicit configuration.
func NewWithConfig(cfg config.RacingConfig) *Game {
	return &Game{cfg: cfg, configured: true, clock: loop.SystemClock}
}

func (g *Game) ID() string    { return "racing" }
func (g *Game) Title() string { return "Turbo Racer" }
func (g *Game) Blurb() string { return "Pseudo-3D laps against traffic, boost on the straights" }

// Configure loads tuning from path (empty for the search path) and applies a preset.
func (g *Game) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadRacing(path)
	if err != nil {
		return err
	}
	if preset != "" {
		config.ApplyRacingPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.configured = true
	return nil
}

// SetClock replaces the frame clock. Headless runs use a loop.StepClock.
func (g *Game) SetClock(c loop.Clock) {
	g.clock = c
	if g.acc != nil {
		g.acc.Reset()
	}
}

// Reset starts a new race.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		cfg, err := config.LoadRacing("")
		if err != nil {
			cfg = config.DefaultRacingConfig()
		}
		g.cfg = cfg
		g.configured = true
	}

	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.logger = log.Default().WithPrefix("racing")
	g.over, g.won, g.score, g.paused = false, false, 0, false

	g.ramp = config.NewDifficultyManager(g.cfg.Difficulty)
	g.sim = NewSim(g.cfg, g.rng, g.ramp.Multiplier(0))
	g.acc = loop.NewAccumulator(g.cfg.Timing.Step, g.cfg.Timing.MaxFrame)

	g.logger.Debug("reset", "seed", rc.Seed, "cars", len(g.sim.Cars), "laps", g.cfg.Race.Laps, "level", g.ramp.At(0))
}

// Step feeds the accumulator the time since the last tick and runs the due
// fixed steps. Traffic keeps moving after the finish.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over {
		rc := g.runtime
		rc.Seed = g.rng.Int63()
		g.Reset(rc)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
		if g.paused {
			g.acc.Reset()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	n := g.acc.Frame(g.clock.Now())
	for i := 0; i < n; i++ {
		g.sim.Step(g.acc.Step(), in)
	}
	if g.ramp.Unit() == config.ProgressLaps {
		done := float64(min(g.sim.Lap, g.cfg.Race.Laps+1) - 1)
		if scale := g.ramp.Multiplier(done); scale != g.sim.TrafficScale() {
			g.sim.SetTrafficScale(scale)
			g.logger.Debug("traffic faster", "lap", g.sim.Lap, "scale", scale)
		}
	}

	if g.sim.Finished() && !g.over {
		g.over = true
		g.won = g.sim.FinishPlace() == 1
		g.score = g.sim.Score()
		g.logger.Info("finished", "place", g.sim.FinishPlace(), "best_lap", g.sim.BestLap, "score", g.score)
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Sim exposes the simulation for headless runs and tests.
func (g *Game) Sim() *Sim { return g.sim }

// Render draws the HUD, the projected road and the player's car.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.sim

	lap := min(s.Lap, g.cfg.Race.Laps)
	hud := fmt.Sprintf(" Turbo Racer  Speed: %3d  Pos: %d/%d  Lap: %d/%d  Time: %.2f",
		int(s.Speed/100), s.Place(), s.TotalCars(), lap, g.cfg.Race.Laps, s.LapTime())
	if s.LastLap > 0 {
		hud += fmt.Sprintf(" (Last: %.2f)", s.LastLap)
	}
	switch {
	case s.Boosting():
		hud += "  BOOST"
	case s.BoostReady():
		hud += "  Boost ready"
	}
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	h := dst.Height() - hudHeight
	if dst.Width() < 20 || h < 8 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}
	segs := s.Project(Viewport{Width: float64(dst.Width()), Height: float64(h)})
	drawRoad(dst, segs, hudHeight, h)
	drawPlayer(dst, dst.Height())

	switch {
	case g.over:
		title := fmt.Sprintf("Finished %s", humanize.Ordinal(s.FinishPlace()))
		dst.DrawDialog(title, fmt.Sprintf("Best lap: %.2f  Score: %d  R to restart", s.BestLap, g.score))
	case g.paused:
		dst.DrawDialog("Paused", "Press P to continue")
	}
}
