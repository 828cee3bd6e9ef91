package racing

import (
	"math/rand"

	"github.com/vovakirdan/bomber-legend/internal/config"
)

// Car is an AI opponent holding a fixed lane.
type Car struct {
	Z      float64 // distance along the lap, in [0, track length)
	Offset float64 // lateral position, road half-widths from center
	Speed  float64
	Laps   int // completed wraps of the lap
}

// spawnTraffic scatters cfg.Cars cars over the lap. Speeds are a random
// fraction of maxSpeed, scaled by speedScale.
func spawnTraffic(rng *rand.Rand, cfg config.RacingTraffic, length, maxSpeed, speedScale float64) []Car {
	cars := make([]Car, max(cfg.Cars, 0))
	for i := range cars {
		cars[i] = Car{
			Offset: rng.Float64()*2*cfg.LaneSpread - cfg.LaneSpread,
			Z:      rng.Float64() * length,
			Speed:  maxSpeed * (cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)) * speedScale,
		}
	}
	return cars
}

// Overlap reports whether two centered spans intersect. Each span is
// [x - w*percent/2, x + w*percent/2]; touching edges count as overlap.
func Overlap(x1, w1, x2, w2, percent float64) bool {
	half := percent / 2
	min1, max1 := x1-w1*half, x1+w1*half
	min2, max2 := x2-w2*half, x2+w2*half
	return !(max1 < min2 || min1 > max2)
}
