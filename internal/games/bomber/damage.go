package bomber

import (
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// DamageSystem kills actors standing in a blast cell.
type DamageSystem struct {
	outcome   Outcome
	killScore int
}

// NewDamageSystem creates the damage stage.
func NewDamageSystem(outcome Outcome, killScore int) *DamageSystem {
	return &DamageSystem{outcome: outcome, killScore: killScore}
}

func (s *DamageSystem) Name() string { return "Damage" }

func (s *DamageSystem) Update(w *ecs.World, _ float64) {
	explosions := w.EntitiesWith(ecs.KindExplosion, ecs.KindPosition)
	if len(explosions) == 0 {
		return
	}
	grid := gridOf(w)
	if grid == nil {
		return
	}

	danger := make(map[[2]int]bool, len(explosions))
	for _, e := range explosions {
		x, y := roundCell(e.Position(), grid.TileSize)
		danger[[2]int{x, y}] = true
	}

	hit := func(e *ecs.Entity) bool {
		x, y := centerCell(e.Position(), grid.TileSize)
		return danger[[2]int{x, y}]
	}

	for _, e := range w.EntitiesWith(ecs.KindPlayer, ecs.KindPosition) {
		if hit(e) && !w.PendingRemoval(e.ID()) {
			if s.outcome != nil {
				s.outcome.GameOver(false)
			}
			w.DestroyEntity(e.ID())
		}
	}
	for _, e := range w.EntitiesWith(ecs.KindAI, ecs.KindPosition) {
		if hit(e) && !w.PendingRemoval(e.ID()) {
			if s.outcome != nil {
				s.outcome.AddScore(s.killScore)
			}
			w.DestroyEntity(e.ID())
		}
	}
}
