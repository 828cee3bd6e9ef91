package bomber

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// Outcome receives gameplay results from the systems.
type Outcome interface {
	AddScore(points int)
	GameOver(won bool)
}

// gridOf returns the first committed grid, or nil.
func gridOf(w *ecs.World) *ecs.Grid {
	e, ok := w.First(ecs.KindGrid)
	if !ok {
		return nil
	}
	return e.Grid()
}

// roundCell snaps a world position to the nearest cell.
func roundCell(pos *ecs.Position, tile float64) (int, int) {
	return int(math.Round(pos.X / tile)), int(math.Round(pos.Y / tile))
}

// centerCell is the cell containing the center of a tile-sized actor.
func centerCell(pos *ecs.Position, tile float64) (int, int) {
	return int(math.Floor((pos.X + tile/2) / tile)), int(math.Floor((pos.Y + tile/2) / tile))
}

// buildClassicMap fills g with border walls, a pillar on every even/even cell,
// and soft blocks scattered with the given chance outside the clear zone
// around the player start.
func buildClassicMap(g *ecs.Grid, rng *rand.Rand, cfg config.BomberConfig) {
	clear := cfg.Grid.ClearRadius
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			switch {
			case x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1:
				g.SetTile(x, y, ecs.TileWall)
			case x%2 == 0 && y%2 == 0:
				g.SetTile(x, y, ecs.TileWall)
			case nearStart(x, y, cfg.Player.StartX, cfg.Player.StartY, clear):
				g.SetTile(x, y, ecs.TileEmpty)
			case rng.Float64() < cfg.Grid.SoftBlockChance:
				g.SetTile(x, y, ecs.TileSoftBlock)
			default:
				g.SetTile(x, y, ecs.TileEmpty)
			}
		}
	}

	// enemies spawn on open ground
	for _, en := range cfg.Enemies {
		if g.Tile(en.X, en.Y) == ecs.TileSoftBlock {
			g.SetTile(en.X, en.Y, ecs.TileEmpty)
		}
	}
}

func nearStart(x, y, sx, sy, radius int) bool {
	return core.Abs(x-sx) < radius && core.Abs(y-sy) < radius
}

// spawnGrid creates the grid entity.
func spawnGrid(w *ecs.World, rng *rand.Rand, cfg config.BomberConfig) *ecs.Grid {
	g := ecs.NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.TileSize)
	buildClassicMap(g, rng, cfg)
	w.CreateEntity().Add(g)
	return g
}

// spawnPlayer creates the controllable actor at its start cell.
func spawnPlayer(w *ecs.World, cfg config.BomberConfig) *ecs.Entity {
	tile := cfg.Grid.TileSize
	return w.CreateEntity().
		Add(&ecs.Position{X: float64(cfg.Player.StartX) * tile, Y: float64(cfg.Player.StartY) * tile}).
		Add(&ecs.Velocity{}).
		Add(&ecs.Player{
			Speed:     cfg.Player.Speed,
			MaxBombs:  cfg.Player.MaxBombs,
			BombRange: cfg.Player.BombRange,
		})
}

// spawnEnemy creates an AI actor at a cell.
func spawnEnemy(w *ecs.World, cfg config.BomberConfig, x, y int, behavior ecs.Behavior) *ecs.Entity {
	tile := cfg.Grid.TileSize
	return w.CreateEntity().
		Add(&ecs.Position{X: float64(x) * tile, Y: float64(y) * tile}).
		Add(&ecs.Velocity{}).
		Add(&ecs.AI{
			Behavior:     behavior,
			ReactionTime: cfg.AI.ReactionTime,
		})
}
