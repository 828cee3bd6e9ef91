package bomber

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

func newTestGame(t *testing.T, cfg config.BomberConfig) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	rc := core.DefaultConfig()
	rc.Seed = 42
	g.Reset(rc)
	g.Step(core.NewInputFrame())
	return g
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("bomber") {
		t.Fatal("bomber should be registered")
	}
	g, err := registry.Create("bomber")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Bomber Legend" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameSystemOrder(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())

	var names []string
	for _, s := range g.World().Stats() {
		names = append(names, s.Name)
	}
	expected := "Director,AI,Bomb,Movement,Damage,Particle"
	if got := strings.Join(names, ","); got != expected {
		t.Errorf("system order = %s, expected %s", got, expected)
	}
}

func TestGameInitialWorld(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())
	w := g.World()

	if n := len(w.EntitiesWith(ecs.KindGrid)); n != 1 {
		t.Errorf("grids = %d, expected 1", n)
	}
	players := w.EntitiesWith(ecs.KindPlayer)
	if len(players) != 1 {
		t.Fatalf("players = %d, expected 1", len(players))
	}
	if len(w.EntitiesWith(ecs.KindAI)) != 1 {
		t.Errorf("expected one enemy from the default config")
	}

	grid := gridOf(w)
	for _, c := range [][2]int{{0, 0}, {14, 5}, {2, 2}, {4, 6}} {
		if grid.Tile(c[0], c[1]) != ecs.TileWall {
			t.Errorf("tile %v = %v, expected Wall", c, grid.Tile(c[0], c[1]))
		}
	}
	for _, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {13, 11}} {
		if grid.Tile(c[0], c[1]) != ecs.TileEmpty {
			t.Errorf("tile %v = %v, expected Empty start area", c, grid.Tile(c[0], c[1]))
		}
	}
}

func TestGameWinWhenEnemiesCleared(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())

	for _, e := range g.World().EntitiesWith(ecs.KindAI) {
		g.World().DestroyEntity(e.ID())
	}
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || !res.State.Won {
		t.Errorf("state = %+v, expected a win", res.State)
	}
}

func TestGameOwnBombKillsPlayer(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())

	g.Step(core.NewInputFrame(core.ActionFire))
	var state core.GameState
	for i := 0; i < 240 && !state.GameOver; i++ {
		state = g.Step(core.NewInputFrame()).State
	}
	if !state.GameOver || state.Won {
		t.Fatalf("state = %+v, expected a loss", state)
	}

	// frozen after game over until restart
	before := g.World().Elapsed()
	g.Step(core.NewInputFrame())
	if g.World().Elapsed() != before {
		t.Error("world advanced after game over")
	}

	g.Step(core.NewInputFrame(core.ActionRestart))
	if s := g.State(); s.GameOver || s.Score != 0 {
		t.Errorf("after restart state = %+v", s)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())

	g.Step(core.NewInputFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	before := g.World().Elapsed()
	g.Step(core.NewInputFrame(core.ActionRight))
	if g.World().Elapsed() != before {
		t.Error("world advanced while paused")
	}
	g.Step(core.NewInputFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, config.DefaultBomberConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Bomber Legend") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), '☻') {
		t.Error("player glyph not drawn")
	}
	if !strings.ContainsRune(screen.String(), '█') {
		t.Error("walls not drawn")
	}

	small := core.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected a too-small notice")
	}
}
