package bomber

import (
	"math"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// MovementSystem turns held directions into player velocity and moves every
// actor against the grid, one axis at a time.
type MovementSystem struct {
	controls core.Controls
	hitbox   float64
}

// NewMovementSystem creates the movement stage.
func NewMovementSystem(controls core.Controls, hitbox float64) *MovementSystem {
	return &MovementSystem{controls: controls, hitbox: hitbox}
}

func (s *MovementSystem) Name() string { return "Movement" }

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	if s.controls != nil {
		for _, e := range w.EntitiesWith(ecs.KindPlayer, ecs.KindVelocity) {
			s.steer(e.Player().Speed, e.Velocity())
		}
	}

	grid := gridOf(w)
	for _, e := range w.EntitiesWith(ecs.KindPosition, ecs.KindVelocity) {
		if e.Has(ecs.KindParticle) {
			continue
		}
		pos, vel := e.Position(), e.Velocity()
		if vel.DX == 0 && vel.DY == 0 {
			continue
		}

		if nx := pos.X + vel.DX*dt; grid == nil || !s.blocked(grid, nx, pos.Y) {
			pos.X = nx
		}
		if ny := pos.Y + vel.DY*dt; grid == nil || !s.blocked(grid, pos.X, ny) {
			pos.Y = ny
		}
	}
}

// steer applies held directions in a fixed order, so with opposite
// directions held the later one (down, right) wins.
func (s *MovementSystem) steer(speed float64, vel *ecs.Velocity) {
	vel.DX, vel.DY = 0, 0
	if s.controls.Held(core.ActionUp) {
		vel.DY = -speed
	}
	if s.controls.Held(core.ActionDown) {
		vel.DY = speed
	}
	if s.controls.Held(core.ActionLeft) {
		vel.DX = -speed
	}
	if s.controls.Held(core.ActionRight) {
		vel.DX = speed
	}
}

// blocked samples the four corners of the hitbox at (x, y).
func (s *MovementSystem) blocked(grid *ecs.Grid, x, y float64) bool {
	t := grid.TileSize
	left := int(math.Floor(x / t))
	right := int(math.Floor((x + s.hitbox) / t))
	top := int(math.Floor(y / t))
	bottom := int(math.Floor((y + s.hitbox) / t))

	for _, c := range [4][2]int{{left, top}, {right, top}, {left, bottom}, {right, bottom}} {
		if !passable(grid.Tile(c[0], c[1])) {
			return true
		}
	}
	return false
}

func passable(t ecs.TileType) bool {
	return t == ecs.TileEmpty || t == ecs.TileBomb
}
