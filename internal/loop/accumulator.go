// Package loop drives fixed-timestep simulations from variable frame times.
package loop

import (
	"sync"
	"time"
)

// epsilon absorbs float drift so n frames of exactly one step yield n steps.
const epsilon = 1e-9

// Clock reports the current time. Tests and headless runs inject their own.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// StepClock advances by a fixed interval every time it is read.
type StepClock struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration
}

// NewStepClock returns a clock starting at start that moves by interval per Now call.
func NewStepClock(start time.Time, interval time.Duration) *StepClock {
	return &StepClock{now: start, interval: interval}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.interval)
	return c.now
}

// Accumulator converts elapsed wall time into a whole number of fixed steps.
// Elapsed time per frame is capped at maxFrame so a stalled frame cannot
// trigger an unbounded burst of catch-up steps.
type Accumulator struct {
	step     float64
	maxFrame float64
	acc      float64
	last     time.Time
	started  bool
	steps    uint64
}

// NewAccumulator creates an accumulator. Non-positive values fall back to
// 1/60s steps and a 0.1s frame cap.
func NewAccumulator(step, maxFrame float64) *Accumulator {
	if step <= 0 {
		step = 1.0 / 60.0
	}
	if maxFrame <= 0 {
		maxFrame = 0.1
	}
	return &Accumulator{step: step, maxFrame: maxFrame}
}

// Step returns the fixed step in seconds.
func (a *Accumulator) Step() float64 { return a.step }

// Steps returns the total number of steps produced since the last Reset.
func (a *Accumulator) Steps() uint64 { return a.steps }

// Advance adds elapsed seconds (capped) and returns how many steps are due.
func (a *Accumulator) Advance(elapsed float64) int {
	if elapsed < 0 {
		elapsed = 0
	}
	a.acc += min(elapsed, a.maxFrame)

	n := 0
	for a.acc+epsilon >= a.step {
		a.acc -= a.step
		n++
	}
	if a.acc < 0 {
		a.acc = 0
	}
	a.steps += uint64(n)
	return n
}

// Frame advances by the time since the previous frame. The first frame only
// records its timestamp and yields no steps.
func (a *Accumulator) Frame(now time.Time) int {
	if !a.started {
		a.started = true
		a.last = now
		return 0
	}
	elapsed := now.Sub(a.last).Seconds()
	a.last = now
	return a.Advance(elapsed)
}

// Alpha is the fraction of a step left in the accumulator, for interpolation.
func (a *Accumulator) Alpha() float64 {
	return a.acc / a.step
}

// Reset drops accumulated time and forgets the previous frame.
func (a *Accumulator) Reset() {
	a.acc = 0
	a.started = false
	a.steps = 0
}
