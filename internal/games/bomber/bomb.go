package bomber

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// BombSystem places bombs, burns fuses, propagates blasts and expires explosions.
type BombSystem struct {
	cfg      config.BomberConfig
	controls core.Controls
	outcome  Outcome
	rng      *rand.Rand
}

// NewBombSystem creates the bomb stage. outcome and rng may be nil; without
// rng no particles are emitted.
func NewBombSystem(cfg config.BomberConfig, controls core.Controls, outcome Outcome, rng *rand.Rand) *BombSystem {
	return &BombSystem{cfg: cfg, controls: controls, outcome: outcome, rng: rng}
}

func (s *BombSystem) Name() string { return "Bomb" }

func (s *BombSystem) Update(w *ecs.World, dt float64) {
	grid := gridOf(w)
	if grid == nil {
		return
	}

	if s.controls != nil && s.controls.Held(core.ActionFire) {
		s.place(w, grid)
	}

	for _, e := range w.EntitiesWith(ecs.KindBomb, ecs.KindPosition) {
		b := e.Bomb()
		if b.Detonated {
			continue
		}
		b.Timer -= dt
		if b.Timer <= 0 {
			s.detonate(w, grid, e)
		}
	}

	for _, e := range w.EntitiesWith(ecs.KindExplosion) {
		ex := e.Explosion()
		ex.Timer -= dt
		if ex.Duration > 0 {
			ex.Stage = int(3 * (1 - ex.Timer/ex.Duration))
		}
		if ex.Timer <= 0 {
			w.DestroyEntity(e.ID())
		}
	}
}

// place drops one bomb per eligible player on its rounded cell. The action is
// level-triggered: holding fire keeps placing while capacity allows.
func (s *BombSystem) place(w *ecs.World, grid *ecs.Grid) {
	occupied := make(map[[2]int]bool)
	for _, e := range w.EntitiesWith(ecs.KindBomb, ecs.KindPosition) {
		x, y := roundCell(e.Position(), grid.TileSize)
		occupied[[2]int{x, y}] = true
	}

	for _, e := range w.EntitiesWith(ecs.KindPlayer, ecs.KindPosition) {
		p := e.Player()
		if p.BombsActive >= p.MaxBombs {
			continue
		}
		x, y := roundCell(e.Position(), grid.TileSize)
		if occupied[[2]int{x, y}] {
			continue
		}
		occupied[[2]int{x, y}] = true
		p.BombsActive++

		w.CreateEntity().
			Add(&ecs.Position{X: float64(x) * grid.TileSize, Y: float64(y) * grid.TileSize}).
			Add(&ecs.Bomb{
				Timer:    s.cfg.Bomb.Fuse,
				Range:    p.BombRange,
				Owner:    e.ID(),
				HasOwner: true,
			})
	}
}

// detonate spreads the blast, releases the owner's bomb slot and removes the bomb.
func (s *BombSystem) detonate(w *ecs.World, grid *ecs.Grid, e *ecs.Entity) {
	b := e.Bomb()
	b.Detonated = true
	cx, cy := roundCell(e.Position(), grid.TileSize)

	cells := Blast(grid, cx, cy, b.Range)
	broken := 0
	for _, c := range cells {
		if c.Broke {
			broken++
		}
		s.spawnExplosion(w, grid, c.X, c.Y)
	}
	if broken > 0 && s.outcome != nil {
		s.outcome.AddScore(broken * s.cfg.Scoring.SoftBlock)
	}

	if b.HasOwner {
		if owner, ok := w.Entity(b.Owner); ok {
			if p := owner.Player(); p != nil && p.BombsActive > 0 {
				p.BombsActive--
			}
		}
	}

	s.emitParticles(w, e.Position())
	w.DestroyEntity(e.ID())
}

// BlastCell is one cell reached by a detonation.
type BlastCell struct {
	X, Y  int
	Broke bool // a soft block was destroyed here
}

// Blast computes the cells reached from (cx, cy) and clears soft blocks it hits.
// Walls stop a ray before the wall; soft blocks are destroyed and stop the ray.
func Blast(grid *ecs.Grid, cx, cy, reach int) []BlastCell {
	cells := []BlastCell{{X: cx, Y: cy}}
	for _, d := range neighbours {
		for i := 1; i <= reach; i++ {
			x, y := cx+d[0]*i, cy+d[1]*i
			tile := grid.Tile(x, y)
			if tile == ecs.TileWall {
				break
			}
			if tile == ecs.TileSoftBlock {
				grid.SetTile(x, y, ecs.TileEmpty)
				cells = append(cells, BlastCell{X: x, Y: y, Broke: true})
				break
			}
			cells = append(cells, BlastCell{X: x, Y: y})
		}
	}
	return cells
}

func (s *BombSystem) spawnExplosion(w *ecs.World, grid *ecs.Grid, x, y int) {
	d := s.cfg.Bomb.ExplosionDuration
	w.CreateEntity().
		Add(&ecs.Position{X: float64(x) * grid.TileSize, Y: float64(y) * grid.TileSize}).
		Add(&ecs.Explosion{Timer: d, Duration: d})
}

var particleColors = [...]core.Color{core.ColorOrange, core.ColorYellow, core.ColorBrightRed, core.ColorBrightYellow}

func (s *BombSystem) emitParticles(w *ecs.World, at *ecs.Position) {
	pc := s.cfg.Particles
	if s.rng == nil || pc.Burst <= 0 {
		return
	}
	half := s.cfg.Grid.TileSize / 2
	for i := 0; i < pc.Burst; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := pc.Speed * (0.5 + s.rng.Float64())
		life := pc.Lifetime * (0.5 + s.rng.Float64()/2)
		w.CreateEntity().
			Add(&ecs.Position{X: at.X + half, Y: at.Y + half}).
			Add(&ecs.Velocity{DX: math.Cos(angle) * speed, DY: math.Sin(angle) * speed}).
			Add(&ecs.Particle{
				Lifetime:    life,
				MaxLifetime: life,
				Color:       particleColors[s.rng.Intn(len(particleColors))],
				Size:        1 + s.rng.Float64()*2,
				Fade:        true,
			})
	}
}
