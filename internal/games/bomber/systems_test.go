package bomber

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

type recordOutcome struct {
	score int
	overs []bool
}

func (r *recordOutcome) AddScore(points int) { r.score += points }
func (r *recordOutcome) GameOver(won bool)   { r.overs = append(r.overs, won) }

// newArena returns a world with a committed empty grid of the given size.
func newArena(t *testing.T, w, h int) (*ecs.World, *ecs.Grid) {
	t.Helper()
	world := ecs.NewWorld()
	grid := ecs.NewGrid(w, h, 40)
	world.CreateEntity().Add(grid)
	world.Update(0)
	return world, grid
}

func TestBombPlacement(t *testing.T) {
	w, _ := newArena(t, 10, 10)
	player := w.CreateEntity().
		Add(&ecs.Position{X: 52, Y: 38}).
		Add(&ecs.Player{MaxBombs: 1, BombRange: 2})
	w.Update(0)

	sys := NewBombSystem(config.DefaultBomberConfig(), core.NewInputFrame(core.ActionFire), nil, nil)
	sys.Update(w, 0.1)
	if n := len(w.EntitiesWith(ecs.KindBomb)); n != 0 {
		t.Fatalf("bomb visible before commit, got %d", n)
	}
	w.Update(0)

	bombs := w.EntitiesWith(ecs.KindBomb, ecs.KindPosition)
	if len(bombs) != 1 {
		t.Fatalf("bombs = %d, expected 1", len(bombs))
	}
	b := bombs[0].Bomb()
	if !b.HasOwner || b.Owner != player.ID() {
		t.Errorf("owner = %v/%v, expected %v", b.Owner, b.HasOwner, player.ID())
	}
	if pos := bombs[0].Position(); pos.X != 40 || pos.Y != 40 {
		t.Errorf("bomb position = (%v, %v), expected snapped (40, 40)", pos.X, pos.Y)
	}
	if b.Timer != 3.0 || b.Range != 2 {
		t.Errorf("bomb = %+v, expected fuse 3 range 2", b)
	}
	if player.Player().BombsActive != 1 {
		t.Errorf("BombsActive = %d, expected 1", player.Player().BombsActive)
	}

	// holding fire at capacity places nothing more
	sys.Update(w, 0.1)
	w.Update(0)
	if n := len(w.EntitiesWith(ecs.KindBomb)); n != 1 {
		t.Errorf("bombs after second frame = %d, expected 1", n)
	}
}

func TestBombNotStackedOnSameCell(t *testing.T) {
	w, _ := newArena(t, 10, 10)
	player := w.CreateEntity().
		Add(&ecs.Position{X: 40, Y: 40}).
		Add(&ecs.Player{MaxBombs: 3, BombRange: 1})
	w.Update(0)

	sys := NewBombSystem(config.DefaultBomberConfig(), core.NewInputFrame(core.ActionFire), nil, nil)
	for i := 0; i < 3; i++ {
		sys.Update(w, 0.01)
		w.Update(0)
	}
	if n := len(w.EntitiesWith(ecs.KindBomb)); n != 1 {
		t.Errorf("bombs = %d, expected 1 per cell", n)
	}
	if player.Player().BombsActive != 1 {
		t.Errorf("BombsActive = %d, expected 1", player.Player().BombsActive)
	}
}

func TestBombDetonation(t *testing.T) {
	w, grid := newArena(t, 10, 10)
	grid.SetTile(2, 1, ecs.TileSoftBlock)

	player := w.CreateEntity().
		Add(&ecs.Position{X: 400, Y: 400}).
		Add(&ecs.Player{MaxBombs: 1, BombRange: 2, BombsActive: 1})
	w.CreateEntity().
		Add(&ecs.Position{X: 40, Y: 40}).
		Add(&ecs.Bomb{Timer: 0.01, Range: 2, Owner: player.ID(), HasOwner: true})
	w.Update(0)

	out := &recordOutcome{}
	sys := NewBombSystem(config.DefaultBomberConfig(), nil, out, nil)
	sys.Update(w, 0.1)
	// a second pass before removal must not detonate again
	sys.Update(w, 0.1)

	if grid.Tile(2, 1) != ecs.TileEmpty {
		t.Errorf("soft block = %v, expected Empty", grid.Tile(2, 1))
	}
	if out.score != 10 {
		t.Errorf("score = %d, expected 10 for one soft block", out.score)
	}
	if player.Player().BombsActive != 0 {
		t.Errorf("BombsActive = %d, expected 0", player.Player().BombsActive)
	}

	w.Update(0)
	if n := len(w.EntitiesWith(ecs.KindBomb)); n != 0 {
		t.Errorf("bombs = %d, expected 0", n)
	}
	// center, one up (row 0), two down, one left (column 0), one right (soft block)
	if n := len(w.EntitiesWith(ecs.KindExplosion)); n != 6 {
		t.Errorf("explosions = %d, expected 6", n)
	}
}

func TestBombOwnerGone(t *testing.T) {
	w, _ := newArena(t, 5, 5)
	w.CreateEntity().
		Add(&ecs.Position{X: 80, Y: 80}).
		Add(&ecs.Bomb{Timer: 0, Range: 1, Owner: 999, HasOwner: true})
	w.Update(0)

	NewBombSystem(config.DefaultBomberConfig(), nil, nil, nil).Update(w, 0.1)
	w.Update(0)
	if n := len(w.EntitiesWith(ecs.KindExplosion)); n != 5 {
		t.Errorf("explosions = %d, expected 5", n)
	}
}

func TestBlast(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(g *ecs.Grid)
		reach  int
		cells  int
		broken int
	}{
		{"open field", func(g *ecs.Grid) {}, 2, 9, 0},
		{"wall stops before itself", func(g *ecs.Grid) { g.SetTile(3, 2, ecs.TileWall) }, 2, 7, 0},
		{"soft block breaks and stops", func(g *ecs.Grid) { g.SetTile(4, 3, ecs.TileSoftBlock) }, 2, 8, 1},
		{"zero reach", func(g *ecs.Grid) {}, 0, 1, 0},
		{"edge of grid reads as wall", func(g *ecs.Grid) {}, 5, 13, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := ecs.NewGrid(7, 7, 40)
			tc.setup(g)
			cells := Blast(g, 3, 3, tc.reach)
			broken := 0
			for _, c := range cells {
				if c.Broke {
					broken++
				}
			}
			if len(cells) != tc.cells || broken != tc.broken {
				t.Errorf("Blast() = %d cells / %d broken, expected %d / %d", len(cells), broken, tc.cells, tc.broken)
			}
		})
	}
}

func TestExplosionExpires(t *testing.T) {
	w, _ := newArena(t, 3, 3)
	w.CreateEntity().Add(&ecs.Position{}).Add(&ecs.Explosion{Timer: 0.5, Duration: 0.5})
	w.Update(0)

	sys := NewBombSystem(config.DefaultBomberConfig(), nil, nil, nil)
	sys.Update(w, 0.3)
	w.Update(0)
	if n := len(w.EntitiesWith(ecs.KindExplosion)); n != 1 {
		t.Fatalf("explosion gone early")
	}
	sys.Update(w, 0.3)
	w.Update(0)
	if n := len(w.EntitiesWith(ecs.KindExplosion)); n != 0 {
		t.Errorf("explosions = %d, expected 0", n)
	}
}

func TestMovementOppositeKeys(t *testing.T) {
	tests := []struct {
		name   string
		held   []core.Action
		dx, dy float64
	}{
		{"up", []core.Action{core.ActionUp}, 0, -150},
		{"up and down resolves down", []core.Action{core.ActionUp, core.ActionDown}, 0, 150},
		{"left and right resolves right", []core.Action{core.ActionLeft, core.ActionRight}, 150, 0},
		{"diagonal", []core.Action{core.ActionLeft, core.ActionDown}, -150, 150},
		{"nothing held", nil, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newArena(t, 10, 10)
			e := w.CreateEntity().
				Add(&ecs.Position{X: 120, Y: 120}).
				Add(&ecs.Velocity{}).
				Add(&ecs.Player{Speed: 150})
			w.Update(0)

			NewMovementSystem(core.NewInputFrame(tc.held...), 30).Update(w, 0.1)
			vel, pos := e.Velocity(), e.Position()
			if vel.DX != tc.dx || vel.DY != tc.dy {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", vel.DX, vel.DY, tc.dx, tc.dy)
			}
			if pos.X != 120+tc.dx*0.1 || pos.Y != 120+tc.dy*0.1 {
				t.Errorf("position = (%v, %v)", pos.X, pos.Y)
			}
		})
	}
}

func TestMovementBlockedPerAxis(t *testing.T) {
	w, grid := newArena(t, 10, 10)
	grid.SetTile(2, 1, ecs.TileWall)
	grid.SetTile(1, 2, ecs.TileBomb)

	e := w.CreateEntity().
		Add(&ecs.Position{X: 40, Y: 40}).
		Add(&ecs.Velocity{DX: 150, DY: 150})
	w.Update(0)

	NewMovementSystem(nil, 30).Update(w, 0.1)
	pos := e.Position()
	if pos.X != 40 {
		t.Errorf("x = %v, expected blocked at 40", pos.X)
	}
	if pos.Y != 55 {
		t.Errorf("y = %v, expected 55 (bomb tiles are passable)", pos.Y)
	}
}

func TestMovementSkipsParticlesAndWorksWithoutGrid(t *testing.T) {
	w := ecs.NewWorld()
	mover := w.CreateEntity().Add(&ecs.Position{}).Add(&ecs.Velocity{DX: 10})
	spark := w.CreateEntity().Add(&ecs.Position{}).Add(&ecs.Velocity{DX: 10}).Add(&ecs.Particle{Lifetime: 1})
	w.Update(0)

	NewMovementSystem(nil, 30).Update(w, 1)
	if mover.Position().X != 10 {
		t.Errorf("mover x = %v, expected 10", mover.Position().X)
	}
	if spark.Position().X != 0 {
		t.Errorf("particle moved by movement system: x = %v", spark.Position().X)
	}
}

func TestDamage(t *testing.T) {
	w, _ := newArena(t, 10, 10)
	w.CreateEntity().Add(&ecs.Position{X: 80, Y: 40}).Add(&ecs.Explosion{Timer: 0.5})
	player := w.CreateEntity().Add(&ecs.Position{X: 70, Y: 40}).Add(&ecs.Player{})
	safe := w.CreateEntity().Add(&ecs.Position{X: 40, Y: 40}).Add(&ecs.AI{})
	doomed := w.CreateEntity().Add(&ecs.Position{X: 95, Y: 45}).Add(&ecs.AI{})
	w.Update(0)

	out := &recordOutcome{}
	NewDamageSystem(out, 100).Update(w, 0.1)

	if len(out.overs) != 1 || out.overs[0] {
		t.Errorf("game over calls = %v, expected one loss", out.overs)
	}
	if out.score != 100 {
		t.Errorf("score = %d, expected 100", out.score)
	}
	if !w.PendingRemoval(player.ID()) || !w.PendingRemoval(doomed.ID()) {
		t.Error("hit actors should be queued for removal")
	}
	if w.PendingRemoval(safe.ID()) {
		t.Error("actor outside the blast should survive")
	}
}

func TestDamageWithoutExplosions(t *testing.T) {
	w, _ := newArena(t, 5, 5)
	w.CreateEntity().Add(&ecs.Position{}).Add(&ecs.Player{})
	w.Update(0)

	out := &recordOutcome{}
	NewDamageSystem(out, 100).Update(w, 0.1)
	if len(out.overs) != 0 || out.score != 0 {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func newAI(t *testing.T, w *ecs.World, x, y float64, b ecs.Behavior) *ecs.Entity {
	t.Helper()
	return w.CreateEntity().
		Add(&ecs.Position{X: x, Y: y}).
		Add(&ecs.Velocity{}).
		Add(&ecs.AI{Behavior: b, ReactionTime: 1})
}

func TestAIWander(t *testing.T) {
	w, grid := newArena(t, 5, 5)
	grid.SetTile(2, 1, ecs.TileWall)
	grid.SetTile(1, 2, ecs.TileWall)
	grid.SetTile(3, 2, ecs.TileSoftBlock)
	e := newAI(t, w, 80, 80, ecs.BehaviorWander)
	w.Update(0)

	sys := NewAISystem(config.DefaultBomberConfig().AI, rand.New(rand.NewSource(1)), nil)
	sys.Update(w, 0.1)

	if v := e.Velocity(); v.DX != 0 || v.DY != 50 {
		t.Errorf("velocity = (%v, %v), expected the only open way (0, 50)", v.DX, v.DY)
	}
	if e.AI().Timer != 1 {
		t.Errorf("timer = %v, expected reset to 1", e.AI().Timer)
	}

	// not due yet: velocity untouched
	e.Velocity().DY = 7
	sys.Update(w, 0.5)
	if e.Velocity().DY != 7 {
		t.Error("agent re-decided before its reaction time")
	}

	grid.SetTile(2, 3, ecs.TileWall)
	sys.Update(w, 0.5)
	if v := e.Velocity(); v.DX != 0 || v.DY != 0 {
		t.Errorf("boxed in velocity = (%v, %v), expected zero", v.DX, v.DY)
	}
}

func TestAIChase(t *testing.T) {
	tests := []struct {
		name       string
		px, py     float64
		dx, dy     float64
		withPlayer bool
	}{
		{"horizontal dominant", 200, 40, 70, 0, true},
		{"vertical dominant", 60, 0, 0, -70, true},
		{"tie goes vertical", 80, 80, 0, 70, true},
		{"no target keeps velocity", 0, 0, 5, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newArena(t, 10, 10)
			e := newAI(t, w, 40, 40, ecs.BehaviorChase)
			e.Velocity().DX, e.Velocity().DY = 5, 5
			if tc.withPlayer {
				w.CreateEntity().Add(&ecs.Position{X: tc.px, Y: tc.py}).Add(&ecs.Player{})
			}
			w.Update(0)

			NewAISystem(config.DefaultBomberConfig().AI, rand.New(rand.NewSource(1)), nil).Update(w, 0.1)
			v := e.Velocity()
			if v.DX != tc.dx || v.DY != tc.dy {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", v.DX, v.DY, tc.dx, tc.dy)
			}
			if tc.withPlayer && (e.AI().TargetX != tc.px || e.AI().TargetY != tc.py) {
				t.Errorf("target = (%v, %v)", e.AI().TargetX, e.AI().TargetY)
			}
		})
	}
}

func TestAIFlee(t *testing.T) {
	w, grid := newArena(t, 6, 6)
	e := newAI(t, w, 80, 80, ecs.BehaviorFlee)
	w.CreateEntity().Add(&ecs.Position{X: 40, Y: 80}).Add(&ecs.Player{})
	w.Update(0)

	sys := NewAISystem(config.DefaultBomberConfig().AI, rand.New(rand.NewSource(1)), nil)
	sys.Update(w, 0.1)
	if v := e.Velocity(); v.DX != 60 || v.DY != 0 {
		t.Errorf("velocity = (%v, %v), expected away (60, 0)", v.DX, v.DY)
	}

	grid.SetTile(3, 2, ecs.TileWall)
	e.AI().Timer = 0
	sys.Update(w, 0.1)
	if v := e.Velocity(); v.DX != 0 || v.DY != 0 {
		t.Errorf("cornered velocity = (%v, %v), expected zero", v.DX, v.DY)
	}
}

func TestAIReactionScalesWithIntensity(t *testing.T) {
	cfg := config.DefaultBomberConfig().AI
	level := 1.0
	sys := NewAISystem(cfg, rand.New(rand.NewSource(1)), func() float64 { return level })

	ai := &ecs.AI{ReactionTime: 1}
	if got := sys.reaction(ai); got != 0.5 {
		t.Errorf("reaction at full intensity = %v, expected 0.5", got)
	}
	level = 0
	if got := sys.reaction(ai); got != 1 {
		t.Errorf("reaction at zero intensity = %v, expected 1", got)
	}
}

func TestParticleLifetimeAndCap(t *testing.T) {
	w := ecs.NewWorld()
	var spawned []*ecs.Entity
	for i := 0; i < 5; i++ {
		life := 1.0
		if i == 4 {
			life = 0.05
		}
		spawned = append(spawned, w.CreateEntity().
			Add(&ecs.Position{}).
			Add(&ecs.Velocity{DX: 10}).
			Add(&ecs.Particle{Lifetime: life, MaxLifetime: life}))
	}
	w.Update(0)

	NewParticleSystem(3).Update(w, 0.1)
	w.Update(0)

	left := w.EntitiesWith(ecs.KindParticle)
	if len(left) != 2 {
		t.Fatalf("particles = %d, expected 2 (two trimmed, one expired)", len(left))
	}
	if left[0].ID() != spawned[2].ID() || left[1].ID() != spawned[3].ID() {
		t.Errorf("survivors = %v, %v, expected the newest live ones", left[0].ID(), left[1].ID())
	}
	if x := left[0].Position().X; x != 1 {
		t.Errorf("particle x = %v, expected 1", x)
	}
}

func TestDirectorIntensityAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	w := ecs.NewWorld()
	d := NewDirector(config.DefaultBomberConfig(), rand.New(rand.NewSource(1)), logger)
	for i := 0; i < 25; i++ {
		d.Update(w, 1)
	}
	if n := strings.Count(buf.String(), "pacing"); n != 2 {
		t.Errorf("pacing log lines = %d, expected 2 in 25s", n)
	}

	for i := 0; i < 125; i++ {
		d.Update(w, 1)
	}
	if got := d.Intensity(); got != 0.5 {
		t.Errorf("Intensity() at 150s = %v, expected 0.5", got)
	}
	for i := 0; i < 200; i++ {
		d.Update(w, 1)
	}
	if got := d.Intensity(); got != 1 {
		t.Errorf("Intensity() after ramp = %v, expected 1", got)
	}
}

func TestDirectorReinforcements(t *testing.T) {
	cfg := config.DefaultBomberConfig()
	cfg.Director.Reinforcement = config.Reinforcement{Enabled: true, Threshold: 0, Every: 1, Max: 2, Behavior: "chase"}

	w, _ := newArena(t, 10, 10)
	d := NewDirector(cfg, rand.New(rand.NewSource(7)), nil)
	for i := 0; i < 5; i++ {
		d.Update(w, 1)
	}
	w.Update(0)

	if d.Reinforcements() != 2 {
		t.Errorf("Reinforcements() = %d, expected 2", d.Reinforcements())
	}
	agents := w.EntitiesWith(ecs.KindAI)
	if len(agents) != 2 || agents[0].AI().Behavior != ecs.BehaviorChase {
		t.Errorf("spawned agents = %d", len(agents))
	}
}
