package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bomber-legend/internal/loop"
)

func TestAccumulatorAdvance(t *testing.T) {
	acc := loop.NewAccumulator(0.25, 1.0)

	assert.Equal(t, 2, acc.Advance(0.5))
	assert.Equal(t, 0, acc.Advance(0.125))
	assert.InDelta(t, 0.5, acc.Alpha(), 1e-12)
	assert.Equal(t, 1, acc.Advance(0.125))
	assert.Equal(t, uint64(3), acc.Steps())
}

func TestAccumulatorCapsElapsed(t *testing.T) {
	acc := loop.NewAccumulator(0.25, 1.0)

	// a 5s stall is treated as 1s
	assert.Equal(t, 4, acc.Advance(5))
	assert.Equal(t, 0, acc.Advance(-1))
}

func TestAccumulatorSixtyHertz(t *testing.T) {
	acc := loop.NewAccumulator(1.0/60.0, 0.1)

	total := 0
	for i := 0; i < 60; i++ {
		total += acc.Advance(1.0 / 60.0)
	}
	assert.Equal(t, 60, total)

	// capped frame: 0.1s at 60Hz is six steps
	assert.Equal(t, 6, acc.Advance(0.5))
}

func TestAccumulatorDefaults(t *testing.T) {
	acc := loop.NewAccumulator(0, 0)
	assert.InDelta(t, 1.0/60.0, acc.Step(), 1e-12)
}

func TestAccumulatorFrame(t *testing.T) {
	acc := loop.NewAccumulator(0.25, 1.0)
	start := time.Unix(100, 0)

	assert.Equal(t, 0, acc.Frame(start), "first frame only records the time")
	assert.Equal(t, 2, acc.Frame(start.Add(500*time.Millisecond)))

	acc.Reset()
	assert.Equal(t, 0, acc.Frame(start.Add(10*time.Second)))
	assert.Equal(t, uint64(0), acc.Steps())
}

func TestStepClock(t *testing.T) {
	start := time.Unix(0, 0)
	c := loop.NewStepClock(start, time.Second)

	assert.Equal(t, start.Add(time.Second), c.Now())
	assert.Equal(t, start.Add(2*time.Second), c.Now())
}

func TestLoopRunFrames(t *testing.T) {
	var updates, renders int
	var dts []float64
	l := loop.New(loop.NewAccumulator(0.25, 1.0),
		func(dt float64) {
			updates++
			dts = append(dts, dt)
		},
		func(alpha float64) { renders++ },
	)

	err := l.Run(context.Background(), loop.Frames(time.Unix(0, 0), 250*time.Millisecond, 5))
	require.NoError(t, err)

	assert.Equal(t, 4, updates)
	assert.Equal(t, 5, renders)
	for _, dt := range dts {
		assert.Equal(t, 0.25, dt)
	}
}

func TestLoopRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loop.New(loop.NewAccumulator(0.25, 1.0), func(float64) {}, nil)
	err := l.Run(ctx, make(chan time.Time))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTickerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := loop.Ticker(ctx, time.Millisecond)

	<-frames
	cancel()
	for range frames {
	}
}
