package bomber

import (
	"math"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/ecs"
)

// cellWidth is the number of terminal columns per grid cell; terminal cells
// are roughly twice as tall as wide.
const cellWidth = 2

var (
	wallCell   = core.Cell{Rune: '█', Color: core.ColorGray}
	softCell   = core.Cell{Rune: '▒', Color: core.ColorOrange}
	floorCell  = core.Cell{Rune: ' '}
	playerCell = core.Cell{Rune: '☻', Color: core.ColorBrightCyan}
	enemyCells = map[ecs.Behavior]core.Cell{
		ecs.BehaviorWander: {Rune: '◆', Color: core.ColorMagenta},
		ecs.BehaviorChase:  {Rune: '◆', Color: core.ColorBrightRed},
		ecs.BehaviorFlee:   {Rune: '◇', Color: core.ColorGreen},
	}
	explosionRunes = [...]rune{'✹', '✶', '·'}
)

// Renderer draws the world into a screen. It only reads the world.
type Renderer struct {
	fuse float64
}

// BoardSize returns the screen footprint of a grid.
func BoardSize(g *ecs.Grid) (int, int) {
	return g.Width * cellWidth, g.Height
}

// Draw renders the first grid and all visible entities with the board's
// top-left corner at (ox, oy).
func (r Renderer) Draw(w *ecs.World, dst *core.Screen, ox, oy int) {
	grid := gridOf(w)
	if grid == nil {
		return
	}
	tile := grid.TileSize

	put := func(cx, cy int, c core.Cell) {
		for i := 0; i < cellWidth; i++ {
			dst.SetCell(ox+cx*cellWidth+i, oy+cy, c)
		}
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			switch grid.Tile(x, y) {
			case ecs.TileWall:
				put(x, y, wallCell)
			case ecs.TileSoftBlock:
				put(x, y, softCell)
			default:
				put(x, y, floorCell)
			}
		}
	}

	for _, e := range w.EntitiesWith(ecs.KindBomb, ecs.KindPosition) {
		x, y := roundCell(e.Position(), tile)
		color := core.ColorRed
		if r.fuse > 0 && e.Bomb().Timer < r.fuse/3 && int(e.Bomb().Timer*10)%2 == 0 {
			color = core.ColorBrightYellow
		}
		dst.SetColor(ox+x*cellWidth, oy+y, '●', color)
	}

	for _, e := range w.EntitiesWith(ecs.KindExplosion, ecs.KindPosition) {
		x, y := roundCell(e.Position(), tile)
		stage := core.Clamp(e.Explosion().Stage, 0, len(explosionRunes)-1)
		put(x, y, core.Cell{Rune: explosionRunes[stage], Color: core.ColorBrightYellow})
	}

	for _, e := range w.EntitiesWith(ecs.KindAI, ecs.KindPosition) {
		x, y := centerCell(e.Position(), tile)
		dst.SetCell(ox+x*cellWidth, oy+y, enemyCells[e.AI().Behavior])
	}

	for _, e := range w.EntitiesWith(ecs.KindPlayer, ecs.KindPosition) {
		x, y := centerCell(e.Position(), tile)
		dst.SetCell(ox+x*cellWidth, oy+y, playerCell)
	}

	for _, e := range w.EntitiesWith(ecs.KindParticle, ecs.KindPosition) {
		p := e.Particle()
		pos := e.Position()
		sx := ox + int(math.Floor(pos.X/tile*cellWidth))
		sy := oy + int(math.Floor(pos.Y/tile))
		if sx < ox || sy < oy || sx >= ox+grid.Width*cellWidth || sy >= oy+grid.Height {
			continue
		}
		ch := '·'
		if p.Alpha() > 0.6 {
			ch = '*'
		}
		dst.SetColor(sx, sy, ch, p.Color)
	}
}
