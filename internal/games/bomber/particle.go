package bomber

import (
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// ParticleSystem integrates and expires particles, and trims the oldest
// ones when the live count exceeds the cap.
type ParticleSystem struct {
	max int
}

// NewParticleSystem creates the particle stage. max <= 0 disables the cap.
func NewParticleSystem(max int) *ParticleSystem {
	return &ParticleSystem{max: max}
}

func (s *ParticleSystem) Name() string { return "Particle" }

func (s *ParticleSystem) Update(w *ecs.World, dt float64) {
	particles := w.EntitiesWith(ecs.KindParticle, ecs.KindPosition, ecs.KindVelocity)

	excess := 0
	if s.max > 0 && len(particles) > s.max {
		excess = len(particles) - s.max
	}

	for i, e := range particles {
		if i < excess {
			w.DestroyEntity(e.ID())
			continue
		}
		p, pos, vel := e.Particle(), e.Position(), e.Velocity()
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			w.DestroyEntity(e.ID())
		}
	}
}
