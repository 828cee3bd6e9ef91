package ecs

import "github.com/vovakirdan/bomber-legend/internal/core"

// Position is a world-space coordinate in pixels.
type Position struct {
	X, Y float64
}

// Velocity is a world-space speed in pixels per second.
type Velocity struct {
	DX, DY float64
}

// TileType is the content of one grid cell.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileWall
	TileSoftBlock
	TileBomb
)

func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileWall:
		return "Wall"
	case TileSoftBlock:
		return "SoftBlock"
	case TileBomb:
		return "Bomb"
	default:
		return "Unknown"
	}
}

// Grid is the tile map. Tiles are stored row-major, Width*Height long.
type Grid struct {
	Width, Height int
	TileSize      float64
	Tiles         []TileType
}

// NewGrid allocates an all-empty grid.
func NewGrid(width, height int, tileSize float64) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    make([]TileType, width*height),
	}
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Tile returns the tile at (x, y). Cells outside the grid read as walls.
func (g *Grid) Tile(x, y int) TileType {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y*g.Width+x]
}

// SetTile writes a tile; writes outside the grid are ignored.
func (g *Grid) SetTile(x, y int, t TileType) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y*g.Width+x] = t
}

// Behavior selects an AI decision rule.
type Behavior uint8

const (
	BehaviorWander Behavior = iota
	BehaviorChase
	BehaviorFlee
)

func (b Behavior) String() string {
	switch b {
	case BehaviorWander:
		return "wander"
	case BehaviorChase:
		return "chase"
	case BehaviorFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// ParseBehavior maps a config name to a Behavior, defaulting to wander.
func ParseBehavior(s string) Behavior {
	switch s {
	case "chase":
		return BehaviorChase
	case "flee":
		return BehaviorFlee
	default:
		return BehaviorWander
	}
}

// Player holds the bomb-placing stats of a controllable actor.
type Player struct {
	Speed       float64
	MaxBombs    int
	BombRange   int
	BombsActive int
}

// AI is a computer-controlled actor that re-decides every ReactionTime seconds.
type AI struct {
	Behavior     Behavior
	Timer        float64
	ReactionTime float64
	TargetX      float64
	TargetY      float64
}

// Bomb is a placed bomb. Owner is a weak reference resolved through World.Entity.
type Bomb struct {
	Timer     float64
	Range     int
	Owner     ID
	HasOwner  bool
	Detonated bool
}

// Explosion marks one blast cell for Timer seconds.
type Explosion struct {
	Timer    float64
	Duration float64
	Stage    int
}

// Particle is a short-lived visual effect.
type Particle struct {
	Lifetime    float64
	MaxLifetime float64
	Color       core.Color
	Size        float64
	Fade        bool
}

// Alpha returns the remaining life fraction, or 1 when the particle does not fade.
func (p *Particle) Alpha() float64 {
	if !p.Fade || p.MaxLifetime <= 0 {
		return 1
	}
	return core.Clamp(p.Lifetime/p.MaxLifetime, 0, 1)
}

func (*Position) Kind() Kind  { return KindPosition }
func (*Velocity) Kind() Kind  { return KindVelocity }
func (*Grid) Kind() Kind      { return KindGrid }
func (*Player) Kind() Kind    { return KindPlayer }
func (*AI) Kind() Kind        { return KindAI }
func (*Bomb) Kind() Kind      { return KindBomb }
func (*Explosion) Kind() Kind { return KindExplosion }
func (*Particle) Kind() Kind  { return KindParticle }
