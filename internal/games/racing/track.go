package racing

import (
	"math"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
)

// Point is a world-space position on the road.
type Point struct {
	X, Y, Z float64
}

// SegmentColors is the palette for one road segment.
type SegmentColors struct {
	Road   core.Color
	Grass  core.Color
	Rumble core.Color
}

var (
	lightColors = SegmentColors{Road: core.ColorGray, Grass: core.ColorGreen, Rumble: core.ColorWhite}
	darkColors  = SegmentColors{Road: core.ColorDarkGray, Grass: core.ColorDarkGreen, Rumble: core.ColorRed}
)

// Segment is a slice of track between P1 and P2 with a constant curvature.
type Segment struct {
	Index  int
	P1, P2 Point
	Curve  float64
	Colors SegmentColors
}

// Track is a closed loop of equal-length segments.
type Track struct {
	segments      []Segment
	segmentLength float64
}

// NewTrack builds the road described by cfg.
func NewTrack(cfg config.RacingRoad) *Track {
	n := max(cfg.Segments, 1)
	rumble := max(cfg.RumbleLength, 1)

	t := &Track{
		segments:      make([]Segment, n),
		segmentLength: cfg.SegmentLength,
	}
	for i := range t.segments {
		colors := lightColors
		if (i/rumble)%2 == 1 {
			colors = darkColors
		}
		t.segments[i] = Segment{
			Index:  i,
			P1:     Point{Z: float64(i) * cfg.SegmentLength},
			P2:     Point{Z: float64(i+1) * cfg.SegmentLength},
			Curve:  curveAt(cfg.Curves, i),
			Colors: colors,
		}
	}
	return t
}

func curveAt(curves []config.Curve, i int) float64 {
	for _, c := range curves {
		if i > c.From && i < c.To {
			return c.Amount
		}
	}
	return 0
}

// Len returns the number of segments.
func (t *Track) Len() int { return len(t.segments) }

// SegmentLength returns the length of one segment.
func (t *Track) SegmentLength() float64 { return t.segmentLength }

// Length returns the length of one lap.
func (t *Track) Length() float64 { return float64(len(t.segments)) * t.segmentLength }

// Segment returns the segment at index i, wrapping around the loop.
func (t *Track) Segment(i int) *Segment {
	return &t.segments[core.WrapInt(i, len(t.segments))]
}

// FindSegment returns the segment containing distance z. Any z is accepted.
func (t *Track) FindSegment(z float64) *Segment {
	return t.Segment(int(math.Floor(z / t.segmentLength)))
}
