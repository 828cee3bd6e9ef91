package racing

import "math"

// Viewport is the drawing surface the road is projected onto.
type Viewport struct {
	Width, Height float64
}

// Edge is one projected edge of a segment: center X, Y and road half-width W.
type Edge struct {
	X, Y, W int
	Scale   float64
}

// ProjectedCar is a car placed on screen at ground level.
type ProjectedCar struct {
	Car   *Car
	X, Y  int
	Scale float64
}

// ProjectedSegment is a visible piece of road, ordered near to far.
type ProjectedSegment struct {
	Segment *Segment
	Near    Edge
	Far     Edge
	Cars    []ProjectedCar
}

// CameraDepth returns the projection distance for a field of view in degrees.
func CameraDepth(fov float64) float64 {
	return 1 / math.Tan((fov/2)*math.Pi/180)
}

// Project walks DrawDistance segments ahead of the player and returns the ones
// that survive clipping. Segments behind the camera or hidden behind a nearer
// crest are skipped.
func (s *Sim) Project(v Viewport) []ProjectedSegment {
	road := s.cfg.Road
	depth := CameraDepth(s.cfg.Camera.FOV)
	length := s.track.Length()
	segLen := s.track.SegmentLength()

	base := s.track.FindSegment(s.PlayerZ)
	basePercent := math.Mod(s.PlayerZ, segLen) / segLen

	byIndex := make(map[int][]int, len(s.Cars))
	for i, c := range s.Cars {
		idx := s.track.FindSegment(c.Z).Index
		byIndex[idx] = append(byIndex[idx], i)
	}

	cameraX := s.PlayerX * road.Width
	cameraY := s.cfg.Camera.Height
	halfW, halfH := v.Width/2, v.Height/2

	project := func(p Point, z, curveX float64) Edge {
		scale := depth / z
		return Edge{
			X:     int(math.Round(halfW + scale*(p.X-cameraX-curveX)*halfW)),
			Y:     int(math.Round(halfH - scale*(p.Y-cameraY)*halfH)),
			W:     int(math.Round(scale * road.Width * halfW)),
			Scale: scale,
		}
	}

	var out []ProjectedSegment
	x, dx := 0.0, -(base.Curve * basePercent)
	maxY := int(v.Height)

	for n := 0; n < min(road.DrawDistance, s.track.Len()); n++ {
		seg := s.track.Segment(base.Index + n)
		var loop float64
		if seg.Index < base.Index {
			loop = length
		}
		z1 := loop + seg.P1.Z - s.PlayerZ
		z2 := loop + seg.P2.Z - s.PlayerZ
		if z1 < 1 {
			continue
		}

		x += dx
		dx += seg.Curve

		near := project(seg.P1, z1, x)
		far := project(seg.P2, z2, x+dx)
		if far.Y >= maxY {
			continue
		}
		maxY = far.Y

		ps := ProjectedSegment{Segment: seg, Near: near, Far: far}
		for _, i := range byIndex[seg.Index] {
			c := &s.Cars[i]
			ps.Cars = append(ps.Cars, ProjectedCar{
				Car:   c,
				X:     int(math.Round(halfW + near.Scale*(c.Offset*road.Width-cameraX-x)*halfW)),
				Y:     near.Y,
				Scale: near.Scale,
			})
		}
		out = append(out, ps)
	}
	return out
}
