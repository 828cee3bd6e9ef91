package racing

import (
	"github.com/vovakirdan/bomber-legend/internal/core"
)

var (
	skyCell    = core.Cell{Rune: ' '}
	grassRune  = '░'
	roadRune   = '▓'
	rumbleRune = '█'
	playerArt  = []string{" ▄██▄ ", "▐█▀▀█▌"}
	carColors  = []core.Color{core.ColorBrightYellow, core.ColorBrightBlue, core.ColorBrightMagenta, core.ColorCyan, core.ColorOrange}
)

// drawRoad fills the area below the horizon from the projected segments.
// Segments arrive near to far, so they are drawn in reverse and nearer road
// overwrites the rows it shares with the one behind it.
func drawRoad(dst *core.Screen, segs []ProjectedSegment, oy, h int) {
	w := dst.Width()
	for y := oy; y < oy+h; y++ {
		dst.DrawSpan(0, w-1, y, skyCell)
	}

	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		top, bottom := s.Far.Y, s.Near.Y
		for y := max(top, 0); y <= min(bottom, h-1); y++ {
			t := 1.0
			if bottom != top {
				t = float64(y-top) / float64(bottom-top)
			}
			cx := float64(s.Far.X) + float64(s.Near.X-s.Far.X)*t
			hw := float64(s.Far.W) + float64(s.Near.W-s.Far.W)*t
			rw := hw / 10

			row := oy + y
			c := s.Segment.Colors
			dst.DrawSpan(0, w-1, row, core.Cell{Rune: grassRune, Color: c.Grass})
			dst.DrawSpan(int(cx-hw-rw), int(cx+hw+rw), row, core.Cell{Rune: rumbleRune, Color: c.Rumble})
			dst.DrawSpan(int(cx-hw), int(cx+hw), row, core.Cell{Rune: roadRune, Color: c.Road})
		}
	}

	for i := len(segs) - 1; i >= 0; i-- {
		for _, pc := range segs[i].Cars {
			drawCar(dst, pc, oy, h)
		}
	}
}

func drawCar(dst *core.Screen, pc ProjectedCar, oy, h int) {
	if pc.Y < 0 || pc.Y >= h {
		return
	}
	// offset picks a stable color per lane
	color := carColors[int((pc.Car.Offset+1)*10)%len(carColors)]
	y := oy + pc.Y - 1
	switch {
	case pc.Scale*1000 > 1:
		dst.DrawTextColor(pc.X-1, y, "▄█▄", color)
	default:
		dst.SetColor(pc.X, y, '▪', color)
	}
}

func drawPlayer(dst *core.Screen, bottom int) {
	x := (dst.Width() - len([]rune(playerArt[0]))) / 2
	for i, line := range playerArt {
		dst.DrawTextColor(x, bottom-len(playerArt)+i, line, core.ColorBrightRed)
	}
}
