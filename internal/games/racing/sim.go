package racing

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
)

// Sim is the racing model: one player, a lap of track and AI traffic.
// It is advanced in fixed steps and has no notion of wall time.
type Sim struct {
	cfg   config.RacingConfig
	track *Track
	Cars  []Car

	PlayerX float64 // road half-widths from center; |x| > 1 is off road
	PlayerZ float64
	Speed   float64

	Lap      int // 1-based; exceeds the configured laps once finished
	LastLap  float64
	BestLap  float64
	clock    float64
	lapStart float64

	boost       float64
	cooldown    float64
	finished    bool
	finishPlace int

	trafficScale float64
}

// NewSim builds a race with traffic drawn from rng. speedScale multiplies
// traffic speeds and is how difficulty reaches the simulation.
func NewSim(cfg config.RacingConfig, rng *rand.Rand, speedScale float64) *Sim {
	track := NewTrack(cfg.Road)
	return &Sim{
		cfg:          cfg,
		track:        track,
		Cars:         spawnTraffic(rng, cfg.Traffic, track.Length(), cfg.Physics.MaxSpeed, speedScale),
		Lap:          1,
		trafficScale: speedScale,
	}
}

// TrafficScale returns the multiplier currently applied to traffic speeds.
func (s *Sim) TrafficScale() float64 { return s.trafficScale }

// SetTrafficScale rescales every car from the current multiplier to scale.
func (s *Sim) SetTrafficScale(scale float64) {
	if scale <= 0 || scale == s.trafficScale {
		return
	}
	ratio := scale / s.trafficScale
	for i := range s.Cars {
		s.Cars[i].Speed *= ratio
	}
	s.trafficScale = scale
}

// Track returns the road.
func (s *Sim) Track() *Track { return s.track }

// Finished reports whether the player has completed every lap.
func (s *Sim) Finished() bool { return s.finished }

// Elapsed returns simulated seconds since the start.
func (s *Sim) Elapsed() float64 { return s.clock }

// LapTime returns the running time of the current lap.
func (s *Sim) LapTime() float64 { return s.clock - s.lapStart }

// Boosting reports whether a boost is running.
func (s *Sim) Boosting() bool { return s.boost > 0 }

// BoostReady reports whether Fire would start a boost.
func (s *Sim) BoostReady() bool { return s.boost <= 0 && s.cooldown <= 0 && !s.finished }

// MaxSpeed is the top speed without boost.
func (s *Sim) MaxSpeed() float64 { return s.cfg.Physics.MaxSpeed }

// TotalCars counts the player and the traffic.
func (s *Sim) TotalCars() int { return len(s.Cars) + 1 }

// Place is 1 plus the number of cars further along the lap than the player.
// Laps are not taken into account.
func (s *Sim) Place() int {
	place := 1
	for _, c := range s.Cars {
		if c.Z > s.PlayerZ {
			place++
		}
	}
	return place
}

// Standing is the lap-aware position: cars are ranked by total distance
// covered, so lapped traffic counts as behind.
func (s *Sim) Standing() int {
	length := s.track.Length()
	player := float64(s.Lap-1)*length + s.PlayerZ
	place := 1
	for _, c := range s.Cars {
		if float64(c.Laps)*length+c.Z > player {
			place++
		}
	}
	return place
}

// FinishPlace returns the standing recorded when the last lap was completed.
func (s *Sim) FinishPlace() int { return s.finishPlace }

// Step advances the race by dt seconds using the held controls.
func (s *Sim) Step(dt float64, in core.Controls) {
	s.clock += dt
	if !s.finished {
		s.stepPlayer(dt, in)
	}
	length := s.track.Length()
	for i := range s.Cars {
		c := &s.Cars[i]
		c.Z += c.Speed * dt
		if c.Z >= length {
			c.Z -= length
			c.Laps++
		}
	}
	if !s.finished {
		s.collide()
	}
}

func (s *Sim) stepPlayer(dt float64, in core.Controls) {
	p := s.cfg.Physics
	length := s.track.Length()

	dx := dt * 2 * (s.Speed / p.MaxSpeed)
	s.PlayerZ += s.Speed * dt

	if in.Held(core.ActionLeft) {
		s.PlayerX -= dx
	}
	if in.Held(core.ActionRight) {
		s.PlayerX += dx
	}

	switch {
	case in.Held(core.ActionUp):
		s.Speed += p.Accel
	case in.Held(core.ActionDown):
		s.Speed += p.Braking
	default:
		s.Speed += p.Decel
	}

	if math.Abs(s.PlayerX) > 1 && s.Speed > p.OffRoadLimit {
		s.Speed += p.OffRoadDecel
	}

	if in.Held(core.ActionFire) && s.BoostReady() {
		s.boost = p.BoostDuration
	}
	top := p.MaxSpeed
	if s.boost > 0 {
		top += p.BoostHeadroom
	}
	s.PlayerX = core.Clamp(s.PlayerX, -p.LateralLimit, p.LateralLimit)
	s.Speed = core.Clamp(s.Speed, 0, top)

	for s.PlayerZ >= length {
		s.PlayerZ -= length
		s.completeLap()
		if s.finished {
			return
		}
	}
	if s.PlayerZ < 0 {
		s.PlayerZ += length
	}

	switch {
	case s.boost > 0:
		s.boost -= dt
		s.Speed = math.Min(s.Speed+p.BoostAccel*dt, p.MaxSpeed+p.BoostHeadroom)
		if s.boost <= 0 {
			s.cooldown = p.BoostCooldown
		}
	case s.cooldown > 0:
		s.cooldown -= dt
	}
}

func (s *Sim) completeLap() {
	s.Lap++
	s.LastLap = s.clock - s.lapStart
	if s.BestLap == 0 || s.LastLap < s.BestLap {
		s.BestLap = s.LastLap
	}
	s.lapStart = s.clock
	if s.Lap > s.cfg.Race.Laps {
		s.finished = true
		s.finishPlace = s.Standing()
		s.Speed = 0
		s.boost = 0
	}
}

// collide slows the player to a slower car's speed on contact and drops them
// behind it. The bump never moves the player back across the start line.
func (s *Sim) collide() {
	t := s.cfg.Traffic
	overlap := t.Overlap
	if overlap <= 0 {
		overlap = 1
	}
	seg := s.track.FindSegment(s.PlayerZ).Index
	for _, c := range s.Cars {
		if s.track.FindSegment(c.Z).Index != seg || s.Speed <= c.Speed {
			continue
		}
		if Overlap(s.PlayerX, t.PlayerWidth, c.Offset, t.CarWidth, overlap) {
			s.Speed = math.Min(s.Speed, c.Speed)
			s.PlayerZ = math.Max(c.Z-t.Bump, 0)
		}
	}
}

// Score rewards the finishing standing plus a bonus for a lap faster than par,
// where par is a lap at three quarters of top speed. Zero before the finish.
func (s *Sim) Score() int {
	if !s.finished {
		return 0
	}
	score := (s.TotalCars() + 2 - s.finishPlace) * 100
	if s.BestLap > 0 && s.cfg.Physics.MaxSpeed > 0 {
		par := s.track.Length() / (0.75 * s.cfg.Physics.MaxSpeed)
		score += int(math.Max(0, par-s.BestLap) * 100)
	}
	return score
}
