package bomber

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// neighbour offsets in decision order: up, down, left, right
var neighbours = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// AISystem re-decides each agent's velocity when its reaction timer runs out.
type AISystem struct {
	cfg       config.BomberAI
	rng       *rand.Rand
	intensity func() float64
}

// NewAISystem creates the AI stage. intensity may be nil.
func NewAISystem(cfg config.BomberAI, rng *rand.Rand, intensity func() float64) *AISystem {
	return &AISystem{cfg: cfg, rng: rng, intensity: intensity}
}

func (s *AISystem) Name() string { return "AI" }

// reaction returns the decision interval for an agent at the current intensity.
func (s *AISystem) reaction(ai *ecs.AI) float64 {
	if s.intensity == nil {
		return ai.ReactionTime
	}
	r := ai.ReactionTime * (1 - s.intensity()*s.cfg.ReactionScale)
	return math.Max(r, math.Min(s.cfg.MinReaction, ai.ReactionTime))
}

func (s *AISystem) Update(w *ecs.World, dt float64) {
	grid := gridOf(w)
	if grid == nil {
		return
	}

	var target *ecs.Position
	if p, ok := w.First(ecs.KindPlayer, ecs.KindPosition); ok {
		target = p.Position()
	}

	for _, e := range w.EntitiesWith(ecs.KindAI, ecs.KindPosition, ecs.KindVelocity) {
		ai := e.AI()
		ai.Timer -= dt
		if ai.Timer > 0 {
			continue
		}
		ai.Timer = s.reaction(ai)

		pos, vel := e.Position(), e.Velocity()
		switch ai.Behavior {
		case ecs.BehaviorWander:
			s.wander(grid, pos, vel)
		case ecs.BehaviorChase:
			if target != nil {
				ai.TargetX, ai.TargetY = target.X, target.Y
				s.chase(pos, vel, target)
			}
		case ecs.BehaviorFlee:
			if target != nil {
				ai.TargetX, ai.TargetY = target.X, target.Y
				s.flee(grid, pos, vel, target)
			}
		}
	}
}

// wander picks a uniformly random empty neighbour, or stops.
func (s *AISystem) wander(grid *ecs.Grid, pos *ecs.Position, vel *ecs.Velocity) {
	cx, cy := roundCell(pos, grid.TileSize)

	var open [4][2]int
	n := 0
	for _, d := range neighbours {
		if grid.Tile(cx+d[0], cy+d[1]) == ecs.TileEmpty {
			open[n] = d
			n++
		}
	}
	if n == 0 {
		vel.DX, vel.DY = 0, 0
		return
	}
	d := open[s.rng.Intn(n)]
	vel.DX = float64(d[0]) * s.cfg.WanderSpeed
	vel.DY = float64(d[1]) * s.cfg.WanderSpeed
}

// chase moves along the axis with the larger displacement; ties go vertical.
func (s *AISystem) chase(pos *ecs.Position, vel *ecs.Velocity, target *ecs.Position) {
	dx, dy := target.X-pos.X, target.Y-pos.Y
	if math.Abs(dx) > math.Abs(dy) {
		vel.DX, vel.DY = core.Sign(dx)*s.cfg.ChaseSpeed, 0
	} else {
		vel.DX, vel.DY = 0, core.Sign(dy)*s.cfg.ChaseSpeed
	}
}

// flee steps away from the target into an empty cell, preferring the
// dominant axis and falling back to the other one.
func (s *AISystem) flee(grid *ecs.Grid, pos *ecs.Position, vel *ecs.Velocity, target *ecs.Position) {
	cx, cy := roundCell(pos, grid.TileSize)
	dx, dy := pos.X-target.X, pos.Y-target.Y

	horizontal := [2]int{int(core.Sign(dx)), 0}
	vertical := [2]int{0, int(core.Sign(dy))}
	order := [2][2]int{vertical, horizontal}
	if math.Abs(dx) > math.Abs(dy) {
		order = [2][2]int{horizontal, vertical}
	}

	for _, d := range order {
		if d == [2]int{} {
			continue
		}
		if grid.Tile(cx+d[0], cy+d[1]) == ecs.TileEmpty {
			vel.DX = float64(d[0]) * s.cfg.FleeSpeed
			vel.DY = float64(d[1]) * s.cfg.FleeSpeed
			return
		}
	}
	vel.DX, vel.DY = 0, 0
}
