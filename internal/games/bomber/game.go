// Package bomber is a grid bomb game built on the ecs world.
//
// Systems run in the order Director, AI, Bomb, Movement, Damage, Particle;
// rendering reads the world afterwards from Game.Render.
package bomber

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

const hudHeight = 2

func init() {
	registry.Register("bomber", func() registry.Game {
		return New()
	})
}

// tally collects results reported by the systems during a step.
type tally struct {
	score int
	over  bool
	won   bool
}

func (t *tally) AddScore(points int) {
	if !t.over {
		t.score += points
	}
}

func (t *tally) GameOver(won bool) {
	if t.over {
		return
	}
	t.over = true
	t.won = won
}

// heldInput exposes the frame currently being simulated to the systems.
type heldInput struct {
	frame core.InputFrame
}

func (h *heldInput) Held(a core.Action) bool { return h.frame.Has(a) }

// Game implements registry.Game for the bomb game.
type Game struct {
	cfg        config.BomberConfig
	configured bool

	runtime  core.RuntimeConfig
	rng      *rand.Rand
	world    *ecs.World
	director *Director
	renderer Renderer
	input    heldInput
	tally    tally
	enemies  int
	ticks    int
	paused   bool
}

// New creates a bomb game with configuration loaded on first Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a bomb game with an explicit configuration.
func NewWithConfig(cfg config.BomberConfig) *Game {
	return &Game{cfg: cfg, configured: true}
}

func (g *Game) ID() string    { return "bomber" }
func (g *Game) Title() string { return "Bomber Legend" }
func (g *Game) Blurb() string { return "Clear the grid of AI bombers before they clear you" }

// Configure loads tuning from path (empty for the search path) and applies a preset.
func (g *Game) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadBomber(path)
	if err != nil {
		return err
	}
	if preset != "" {
		config.ApplyBomberPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.configured = true
	return nil
}

// Reset builds a fresh world: grid, player, configured enemies and systems.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		cfg, err := config.LoadBomber("")
		if err != nil {
			cfg = config.DefaultBomberConfig()
		}
		g.cfg = cfg
		g.configured = true
	}

	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tally = tally{}
	g.ticks = 0
	g.paused = false
	g.input.frame = core.NewInputFrame()

	logger := log.Default().WithPrefix("bomber")
	g.world = ecs.NewWorld(ecs.WithCapacity(g.cfg.Grid.Width * g.cfg.Grid.Height))
	g.director = NewDirector(g.cfg, g.rng, logger)
	g.renderer = Renderer{fuse: g.cfg.Bomb.Fuse}

	g.world.AddSystem(g.director)
	g.world.AddSystem(NewAISystem(g.cfg.AI, g.rng, g.director.Intensity))
	g.world.AddSystem(NewBombSystem(g.cfg, &g.input, &g.tally, g.rng))
	g.world.AddSystem(NewMovementSystem(&g.input, g.cfg.Movement.Hitbox))
	g.world.AddSystem(NewDamageSystem(&g.tally, g.cfg.Scoring.Kill))
	g.world.AddSystem(NewParticleSystem(g.cfg.Particles.Max))

	spawnGrid(g.world, g.rng, g.cfg)
	spawnPlayer(g.world, g.cfg)
	for _, en := range g.cfg.Enemies {
		spawnEnemy(g.world, g.cfg, en.X, en.Y, ecs.ParseBehavior(en.Behavior))
	}
	g.enemies = len(g.cfg.Enemies)

	logger.Debug("reset", "seed", rc.Seed, "enemies", g.enemies, "grid", fmt.Sprintf("%dx%d", g.cfg.Grid.Width, g.cfg.Grid.Height))
}

// Step advances the world by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.tally.over {
		rc := g.runtime
		rc.Seed = g.rng.Int63()
		g.Reset(rc)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.tally.over {
		g.paused = !g.paused
	}
	if g.paused || g.tally.over {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	g.input.frame = in
	g.world.Update(g.runtime.StepSeconds())

	if !g.tally.over && g.enemies > 0 && g.remainingEnemies() == 0 {
		g.tally.GameOver(true)
	}
	return core.StepResult{State: g.State()}
}

// remainingEnemies counts AI agents not already queued for removal.
func (g *Game) remainingEnemies() int {
	n := 0
	for _, e := range g.world.EntitiesWith(ecs.KindAI) {
		if !g.world.PendingRemoval(e.ID()) {
			n++
		}
	}
	return n
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.tally.score,
		GameOver: g.tally.over,
		Won:      g.tally.won,
		Paused:   g.paused,
	}
}

// World exposes the simulation for headless runs and tests.
func (g *Game) World() *ecs.World { return g.world }

// Intensity returns the director's current pacing level.
func (g *Game) Intensity() float64 { return g.director.Intensity() }

// Render draws the HUD and the board centered below it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Bomber Legend  Score: %d  Enemies: %d  Intensity: %3.0f%%  Time: %ds",
		g.tally.score, g.remainingEnemies(), g.director.Intensity()*100, int(g.director.Elapsed()))
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	grid := gridOf(g.world)
	if grid == nil {
		// the first Step commits the world
		grid = ecs.NewGrid(g.cfg.Grid.Width, g.cfg.Grid.Height, g.cfg.Grid.TileSize)
	}
	bw, bh := BoardSize(grid)
	if dst.Width() < bw || dst.Height() < bh+hudHeight {
		dst.DrawDialog("Window too small", fmt.Sprintf("Need %dx%d", bw, bh+hudHeight))
		return
	}
	ox := (dst.Width() - bw) / 2
	oy := hudHeight + (dst.Height()-hudHeight-bh)/2
	g.renderer.Draw(g.world, dst, ox, oy)

	switch {
	case g.tally.over && g.tally.won:
		dst.DrawDialog("Arena cleared!", fmt.Sprintf("Score: %d  R to restart", g.tally.score))
	case g.tally.over:
		dst.DrawDialog("Game Over", fmt.Sprintf("Score: %d  R to restart", g.tally.score))
	case g.paused:
		dst.DrawDialog("Paused", "Press P to continue")
	}
}

