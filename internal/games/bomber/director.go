package bomber

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// Director paces the match. Intensity ramps from the difficulty's initial
// level to 1 over the configured time and feeds AI reaction speed and
// optional reinforcements.
type Director struct {
	cfg        config.BomberConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	elapsed    float64
	intensity  float64
	spawnTimer float64
	spawned    int
}

// NewDirector creates a director for cfg.
func NewDirector(cfg config.BomberConfig, rng *rand.Rand, logger *log.Logger) *Director {
	d := &Director{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
		logger:     logger,
	}
	d.intensity = d.difficulty.At(0)
	return d
}

func (d *Director) Name() string { return "Director" }

// Intensity returns the current pacing level in [0, 1].
func (d *Director) Intensity() float64 { return d.intensity }

// Elapsed returns the simulated seconds seen by the director.
func (d *Director) Elapsed() float64 { return d.elapsed }

// Reinforcements returns how many extra agents have been spawned.
func (d *Director) Reinforcements() int { return d.spawned }

func (d *Director) Update(w *ecs.World, dt float64) {
	prev := d.elapsed
	d.elapsed += dt
	d.intensity = d.difficulty.At(d.elapsed)

	if every := d.cfg.Director.LogEvery; every > 0 && d.logger != nil {
		if math.Floor(d.elapsed/every) != math.Floor(prev/every) {
			d.logger.Debug("pacing", "intensity", math.Round(d.intensity*100)/100, "elapsed", math.Round(d.elapsed))
		}
	}

	d.reinforce(w, dt)
}

func (d *Director) reinforce(w *ecs.World, dt float64) {
	r := d.cfg.Director.Reinforcement
	if !r.Enabled || d.spawned >= r.Max || d.intensity < r.Threshold {
		return
	}
	d.spawnTimer += dt
	if d.spawnTimer < r.Every {
		return
	}

	grid := gridOf(w)
	if grid == nil {
		return
	}
	x, y, ok := d.spawnCell(w, grid)
	if !ok {
		return
	}
	d.spawnTimer = 0
	d.spawned++
	spawnEnemy(w, d.cfg, x, y, ecs.ParseBehavior(r.Behavior))
	if d.logger != nil {
		d.logger.Info("reinforcement", "x", x, "y", y, "behavior", r.Behavior)
	}
}

// spawnCell picks a random empty cell at least four cells from every player.
func (d *Director) spawnCell(w *ecs.World, grid *ecs.Grid) (int, int, bool) {
	players := w.EntitiesWith(ecs.KindPlayer, ecs.KindPosition)

	var free [][2]int
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.Tile(x, y) != ecs.TileEmpty {
				continue
			}
			far := true
			for _, p := range players {
				px, py := roundCell(p.Position(), grid.TileSize)
				if core.Abs(px-x)+core.Abs(py-y) < 4 {
					far = false
					break
				}
			}
			if far {
				free = append(free, [2]int{x, y})
			}
		}
	}
	if len(free) == 0 {
		return 0, 0, false
	}
	c := free[d.rng.Intn(len(free))]
	return c[0], c[1], true
}
