// Package core holds the pure types shared by the simulations and the host:
// geometry helpers, the cell screen, input actions and game state.
// Nothing here imports Bubble Tea.
package core

import (
	"cmp"
	"math"
)

// Rect is a cell-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Centered returns a w by h rectangle centered in an area of the given size.
func Centered(w, h, areaW, areaH int) Rect {
	return Rect{X: (areaW - w) / 2, Y: (areaH - h) / 2, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Clip returns the part of r that lies inside a w by h area.
func (r Rect) Clip(w, h int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.Right(), w), min(r.Bottom(), h)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Wrap maps v into [0, length). length must be positive.
func Wrap(v, length float64) float64 {
	v = math.Mod(v, length)
	if v < 0 {
		v += length
	}
	return v
}

// WrapInt is the integer counterpart of Wrap.
func WrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
