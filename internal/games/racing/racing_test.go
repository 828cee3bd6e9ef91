package racing

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/loop"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

const dt = 1.0 / 60.0

func emptyTrafficConfig() config.RacingConfig {
	cfg := config.DefaultRacingConfig()
	cfg.Traffic.Cars = 0
	return cfg
}

func newTestSim(cfg config.RacingConfig) *Sim {
	return NewSim(cfg, rand.New(rand.NewSource(1)), 1)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestTrackSegments(t *testing.T) {
	track := NewTrack(config.DefaultRacingConfig().Road)

	if track.Len() != 500 {
		t.Fatalf("Len() = %d, expected 500", track.Len())
	}
	if track.Length() != 100000 {
		t.Errorf("Length() = %v, expected 100000", track.Length())
	}

	seg := track.Segment(7)
	if seg.P1.Z != 1400 || seg.P2.Z != 1600 {
		t.Errorf("segment 7 spans %v..%v, expected 1400..1600", seg.P1.Z, seg.P2.Z)
	}

	curves := []struct {
		index    int
		expected float64
	}{
		{0, 0}, {50, 0}, {51, 2}, {149, 2}, {150, 0}, {201, -2}, {299, -2}, {300, 0}, {499, 0},
	}
	for _, tt := range curves {
		if got := track.Segment(tt.index).Curve; got != tt.expected {
			t.Errorf("segment %d curve = %v, expected %v", tt.index, got, tt.expected)
		}
	}

	if track.Segment(0).Colors != lightColors || track.Segment(2).Colors != lightColors {
		t.Error("segments 0-2 should use the light palette")
	}
	if track.Segment(3).Colors != darkColors || track.Segment(5).Colors != darkColors {
		t.Error("segments 3-5 should use the dark palette")
	}
	if track.Segment(6).Colors != lightColors {
		t.Error("segment 6 should use the light palette")
	}
}

func TestFindSegment(t *testing.T) {
	track := NewTrack(config.DefaultRacingConfig().Road)

	tests := []struct {
		z        float64
		expected int
	}{
		{0, 0},
		{199.9, 0},
		{200, 1},
		{99999, 499},
		{100010, 0},
		{-10, 499},
	}
	for _, tt := range tests {
		if got := track.FindSegment(tt.z).Index; got != tt.expected {
			t.Errorf("FindSegment(%v) = %d, expected %d", tt.z, got, tt.expected)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name               string
		x1, w1, x2, w2, pc float64
		expected           bool
	}{
		{"same lane", 0, 0.8, 0, 0.8, 1, true},
		{"partial", 0, 0.8, 0.5, 0.8, 1, true},
		{"apart", 0, 0.8, 1, 0.8, 1, false},
		{"touching", 0, 1, 1, 1, 1, true},
		{"narrowed by percent", 0, 1, 0.8, 1, 0.5, false},
		{"left side", -1, 0.8, 0, 0.8, 1, false},
		{"heavy overlap", 0, 1, 0.5, 1, 1, true},
		{"far apart", 0, 1, 5, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.x1, tt.w1, tt.x2, tt.w2, tt.pc); got != tt.expected {
				t.Errorf("Overlap() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSimAcceleration(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	up := core.NewInputFrame(core.ActionUp)

	s.Step(dt, up)
	if s.Speed != 100 || s.PlayerZ != 0 {
		t.Errorf("after one step speed=%v z=%v, expected 100 and 0", s.Speed, s.PlayerZ)
	}
	s.Step(dt, up)
	if !near(s.PlayerZ, 100*dt) {
		t.Errorf("PlayerZ = %v, expected %v", s.PlayerZ, 100*dt)
	}
	if s.Speed != 200 {
		t.Errorf("Speed = %v, expected 200", s.Speed)
	}

	s.Step(dt, core.NewInputFrame())
	if s.Speed != 150 {
		t.Errorf("coasting Speed = %v, expected 150", s.Speed)
	}
	s.Step(dt, core.NewInputFrame(core.ActionDown))
	if s.Speed != 0 {
		t.Errorf("braking Speed = %v, expected 0", s.Speed)
	}

	s.Speed = s.cfg.Physics.MaxSpeed
	s.Step(dt, up)
	if s.Speed != s.cfg.Physics.MaxSpeed {
		t.Errorf("Speed = %v, expected cap %v", s.Speed, s.cfg.Physics.MaxSpeed)
	}
}

func TestSimClampsOutOfRangeState(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		x      float64
		speedE float64
	}{
		{"above max speed", 20000, 0, 12000},
		{"negative speed", -500, 0, 0},
		{"far right", 6000, 10, 5950},
		{"far left", 6000, -10, 5950},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(emptyTrafficConfig())
			s.Speed = tt.speed
			s.PlayerX = tt.x

			s.Step(dt, core.NewInputFrame())
			if s.Speed != tt.speedE {
				t.Errorf("Speed = %v, expected %v", s.Speed, tt.speedE)
			}
			if s.PlayerX < -2 || s.PlayerX > 2 {
				t.Errorf("PlayerX = %v, expected within [-2, 2]", s.PlayerX)
			}
		})
	}
}

func TestSimCrossesStartLine(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	length := s.Track().Length()
	s.PlayerZ = length - 10
	s.Speed = 12000

	for i := 0; i < 5 && s.Lap == 1; i++ {
		s.Step(dt, core.NewInputFrame(core.ActionUp))
	}
	if s.Lap != 2 {
		t.Fatalf("Lap = %d, expected 2", s.Lap)
	}
	if s.PlayerZ < 0 || s.PlayerZ >= length {
		t.Errorf("PlayerZ = %v, expected within [0, %v)", s.PlayerZ, length)
	}
}

func TestSimSteeringAndOffRoad(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.Speed = 6000

	s.Step(dt, core.NewInputFrame(core.ActionLeft))
	if !near(s.PlayerX, -dt) {
		t.Errorf("PlayerX = %v, expected %v", s.PlayerX, -dt)
	}

	s.PlayerX = 1.5
	s.Speed = 11000
	s.Step(dt, core.NewInputFrame(core.ActionUp))
	if s.Speed != 10900 {
		t.Errorf("off-road Speed = %v, expected 10900", s.Speed)
	}

	s.PlayerX = 1.99
	s.Speed = 12000
	for i := 0; i < 10; i++ {
		s.Step(dt, core.NewInputFrame(core.ActionRight, core.ActionUp))
	}
	if s.PlayerX != 2 {
		t.Errorf("PlayerX = %v, expected clamp at 2", s.PlayerX)
	}
}

func TestSimLapAndFinish(t *testing.T) {
	cfg := emptyTrafficConfig()
	cfg.Race.Laps = 2
	s := newTestSim(cfg)
	length := s.Track().Length()

	s.PlayerZ = length - 1
	s.Speed = 12000
	s.Step(dt, core.NewInputFrame(core.ActionUp))
	if s.Lap != 2 {
		t.Fatalf("Lap = %d, expected 2", s.Lap)
	}
	if !near(s.PlayerZ, 199) {
		t.Errorf("PlayerZ = %v, expected 199", s.PlayerZ)
	}
	if !near(s.LastLap, dt) || !near(s.BestLap, dt) {
		t.Errorf("LastLap=%v BestLap=%v, expected %v", s.LastLap, s.BestLap, dt)
	}
	if s.Finished() {
		t.Fatal("should not be finished after lap 1 of 2")
	}

	s.PlayerZ = length - 1
	s.Step(dt, core.NewInputFrame(core.ActionUp))
	if !s.Finished() || s.Speed != 0 {
		t.Fatalf("finished=%v speed=%v, expected finished and stopped", s.Finished(), s.Speed)
	}
	if s.FinishPlace() != 1 {
		t.Errorf("FinishPlace() = %d, expected 1", s.FinishPlace())
	}

	lap := s.Lap
	for i := 0; i < 30; i++ {
		s.Step(dt, core.NewInputFrame(core.ActionUp))
	}
	if s.Lap != lap || s.Speed != 0 {
		t.Errorf("after finish lap=%d speed=%v, expected %d and 0", s.Lap, s.Speed, lap)
	}
	if s.Score() < 200 {
		t.Errorf("Score() = %d, expected at least 200", s.Score())
	}
}

func TestSimCollision(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		speed    float64
		expected bool
	}{
		{"same lane faster", 0, 9000, true},
		{"other lane", 1.0, 9000, false},
		{"slower than car", 0, 3000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(emptyTrafficConfig())
			s.Cars = []Car{{Z: 1000, Offset: tt.offset, Speed: 5000}}
			s.PlayerZ = 1000
			s.Speed = tt.speed

			s.Step(dt, core.NewInputFrame())

			carZ := 1000 + 5000*dt
			bumped := near(s.PlayerZ, carZ-100)
			if bumped != tt.expected {
				t.Errorf("bumped = %v (z=%v speed=%v), expected %v", bumped, s.PlayerZ, s.Speed, tt.expected)
			}
			if tt.expected && s.Speed != 5000 {
				t.Errorf("Speed = %v, expected the car's 5000", s.Speed)
			}
		})
	}
}

func TestSimCollisionOverlapSetting(t *testing.T) {
	tests := []struct {
		name     string
		overlap  float64
		expected bool
	}{
		{"full widths", 1, true},
		{"narrowed", 0.5, false},
		{"unset uses full widths", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyTrafficConfig()
			cfg.Traffic.Overlap = tt.overlap
			s := newTestSim(cfg)
			s.Cars = []Car{{Z: 1000, Offset: 0.6, Speed: 5000}}
			s.PlayerZ = 1000
			s.Speed = 9000

			s.Step(dt, core.NewInputFrame())

			if bumped := s.Speed == 5000; bumped != tt.expected {
				t.Errorf("bumped = %v (speed=%v), expected %v", bumped, s.Speed, tt.expected)
			}
		})
	}
}

func TestSimBumpStopsAtStartLine(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.Cars = []Car{{Z: 10, Speed: 3000}}
	s.PlayerZ = 0
	s.Speed = 9000

	s.Step(dt, core.NewInputFrame())
	if s.PlayerZ != 0 || s.Lap != 1 {
		t.Errorf("z=%v lap=%d, expected 0 and 1", s.PlayerZ, s.Lap)
	}
}

func TestSimTrafficWraps(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.Cars = []Car{{Z: s.Track().Length() - 10, Speed: 6000}}

	s.Step(dt, core.NewInputFrame())
	if !near(s.Cars[0].Z, 90) || s.Cars[0].Laps != 1 {
		t.Errorf("car z=%v laps=%d, expected 90 and 1", s.Cars[0].Z, s.Cars[0].Laps)
	}
}

func TestSimPlace(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.Cars = []Car{{Z: 500}, {Z: 1500}, {Z: 2500}}
	s.PlayerZ = 1000

	if got := s.Place(); got != 3 {
		t.Errorf("Place() = %d, expected 3", got)
	}
	if s.TotalCars() != 4 {
		t.Errorf("TotalCars() = %d, expected 4", s.TotalCars())
	}

	// a lap ahead of every car
	s.Lap = 2
	if got := s.Standing(); got != 1 {
		t.Errorf("Standing() = %d, expected 1", got)
	}
}

func TestSimBoost(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	p := s.cfg.Physics
	s.Speed = p.MaxSpeed
	in := core.NewInputFrame(core.ActionUp, core.ActionFire)

	s.Step(dt, in)
	if !s.Boosting() {
		t.Fatal("Fire should start a boost")
	}
	if s.Speed <= p.MaxSpeed {
		t.Errorf("boosted Speed = %v, expected above %v", s.Speed, p.MaxSpeed)
	}

	for i := 0; i < 130; i++ {
		s.Step(dt, in)
		if s.Speed > p.MaxSpeed+p.BoostHeadroom {
			t.Fatalf("Speed = %v exceeds boost cap", s.Speed)
		}
	}
	if s.Boosting() || s.BoostReady() {
		t.Errorf("boosting=%v ready=%v, expected cooldown", s.Boosting(), s.BoostReady())
	}
	if s.Speed != p.MaxSpeed {
		t.Errorf("Speed = %v, expected %v after boost", s.Speed, p.MaxSpeed)
	}
}

func TestTrafficSpawn(t *testing.T) {
	cfg := config.DefaultRacingConfig()
	s := NewSim(cfg, rand.New(rand.NewSource(7)), 1.25)

	if len(s.Cars) != 20 {
		t.Fatalf("cars = %d, expected 20", len(s.Cars))
	}
	for _, c := range s.Cars {
		if c.Offset < -0.4 || c.Offset > 0.4 {
			t.Errorf("car offset %v outside lane spread", c.Offset)
		}
		if c.Z < 0 || c.Z >= s.Track().Length() {
			t.Errorf("car z %v outside track", c.Z)
		}
		if c.Speed < 12000*0.5*1.25 || c.Speed > 12000*0.8*1.25 {
			t.Errorf("car speed %v outside scaled range", c.Speed)
		}
	}
}

func TestCameraDepth(t *testing.T) {
	if got := CameraDepth(90); !near(got, 1) {
		t.Errorf("CameraDepth(90) = %v, expected 1", got)
	}
}

func TestProject(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.Cars = []Car{{Z: 10*200 + 50}}
	view := Viewport{Width: 80, Height: 22}

	segs := s.Project(view)
	if len(segs) == 0 {
		t.Fatal("expected visible segments")
	}
	for _, ps := range segs {
		if ps.Segment.Index == 0 {
			t.Error("segment 0 is under the camera and should be skipped")
		}
	}

	prevY := int(view.Height)
	for _, ps := range segs {
		if ps.Far.Y >= prevY {
			t.Fatalf("segment %d far edge %d not above %d", ps.Segment.Index, ps.Far.Y, prevY)
		}
		if ps.Near.Y < ps.Far.Y {
			t.Errorf("segment %d near edge above far edge", ps.Segment.Index)
		}
		prevY = ps.Far.Y
	}

	var found bool
	for _, ps := range segs {
		for _, pc := range ps.Cars {
			found = true
			if ps.Segment.Index != 10 {
				t.Errorf("car projected in segment %d, expected 10", ps.Segment.Index)
			}
			if pc.X != 40 || pc.Y != ps.Near.Y {
				t.Errorf("car at (%d,%d), expected (40,%d)", pc.X, pc.Y, ps.Near.Y)
			}
		}
	}
	if !found {
		t.Error("car in segment 10 was not projected")
	}
}

func TestProjectLoopsPastFinish(t *testing.T) {
	s := newTestSim(emptyTrafficConfig())
	s.PlayerZ = s.Track().Length() - 1000

	segs := s.Project(Viewport{Width: 80, Height: 22})
	var looped bool
	for _, ps := range segs {
		if ps.Segment.Index == 0 {
			looped = true
		}
	}
	if !looped {
		t.Error("expected segments past the start line to be projected")
	}
}

func TestSetTrafficScale(t *testing.T) {
	s := newTestSim(config.DefaultRacingConfig())
	before := s.Cars[0].Speed

	s.SetTrafficScale(1.5)
	if !near(s.Cars[0].Speed, before*1.5) || s.TrafficScale() != 1.5 {
		t.Errorf("speed=%v scale=%v, expected %v and 1.5", s.Cars[0].Speed, s.TrafficScale(), before*1.5)
	}
	s.SetTrafficScale(1)
	if !near(s.Cars[0].Speed, before) {
		t.Errorf("speed = %v, expected the unscaled %v", s.Cars[0].Speed, before)
	}
	s.SetTrafficScale(0)
	if s.TrafficScale() != 1 {
		t.Error("non-positive scale should be ignored")
	}
}

func newTestGame(t *testing.T, cfg config.RacingConfig) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	g.SetClock(loop.NewStepClock(time.Unix(0, 0), time.Second/60))
	rc := core.DefaultConfig()
	rc.Seed = 3
	g.Reset(rc)
	return g
}

func TestGameRegistered(t *testing.T) {
	g, err := registry.Create("racing")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "racing" {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestGameRaceToFinish(t *testing.T) {
	cfg := emptyTrafficConfig()
	cfg.Race.Laps = 1
	g := newTestGame(t, cfg)

	up := core.NewInputFrame(core.ActionUp)
	var state core.GameState
	for i := 0; i < 2000 && !state.GameOver; i++ {
		state = g.Step(up).State
	}
	if !state.GameOver || !state.Won {
		t.Fatalf("state = %+v, expected a won race", state)
	}
	if state.Score <= 0 {
		t.Errorf("Score = %d, expected positive", state.Score)
	}

	g.Step(core.NewInputFrame(core.ActionRestart))
	if g.State().GameOver || g.Sim().Lap != 1 {
		t.Errorf("restart did not start a new race")
	}
}

func TestGameTrafficSpeedsUpByLap(t *testing.T) {
	g := newTestGame(t, config.DefaultRacingConfig())
	g.Step(core.NewInputFrame())
	if g.Sim().TrafficScale() != 1 {
		t.Fatalf("TrafficScale() = %v on the first lap, expected 1", g.Sim().TrafficScale())
	}

	g.Sim().Lap = 2
	g.Step(core.NewInputFrame())
	if !near(g.Sim().TrafficScale(), 1.125) {
		t.Errorf("TrafficScale() = %v after one lap, expected 1.125", g.Sim().TrafficScale())
	}

	g.Sim().Lap = 3
	g.Step(core.NewInputFrame())
	if !near(g.Sim().TrafficScale(), 1.25) {
		t.Errorf("TrafficScale() = %v after two laps, expected 1.25", g.Sim().TrafficScale())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, emptyTrafficConfig())
	up := core.NewInputFrame(core.ActionUp)
	g.Step(up)
	g.Step(up)

	g.Step(core.NewInputFrame(core.ActionPause))
	before := g.Sim().Elapsed()
	g.Step(up)
	if g.Sim().Elapsed() != before {
		t.Error("sim advanced while paused")
	}
	if !g.State().Paused {
		t.Error("expected paused")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, config.DefaultRacingConfig())
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame(core.ActionUp))
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Turbo Racer") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), roadRune) {
		t.Error("road not drawn")
	}
	if !strings.Contains(screen.String(), "▄██▄") {
		t.Error("player car not drawn")
	}
}
