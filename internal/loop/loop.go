package loop

import (
	"context"
	"time"
)

// Loop runs fixed updates for each received frame and renders once per frame.
type Loop struct {
	acc    *Accumulator
	update func(dt float64)
	render func(alpha float64)
}

// New creates a loop. render may be nil.
func New(acc *Accumulator, update func(dt float64), render func(alpha float64)) *Loop {
	return &Loop{acc: acc, update: update, render: render}
}

// Accumulator returns the loop's accumulator.
func (l *Loop) Accumulator() *Accumulator { return l.acc }

// Run consumes frame timestamps until frames is closed or ctx is done.
// It returns nil when frames closes and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context, frames <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			l.frame(now)
		}
	}
}

func (l *Loop) frame(now time.Time) {
	n := l.acc.Frame(now)
	for i := 0; i < n; i++ {
		l.update(l.acc.Step())
	}
	if l.render != nil {
		l.render(l.acc.Alpha())
	}
}

// Frames returns a closed-after-n channel of timestamps spaced by interval,
// starting at start. It is buffered so headless runs need no producer goroutine.
func Frames(start time.Time, interval time.Duration, n int) <-chan time.Time {
	ch := make(chan time.Time, n)
	for i := 0; i < n; i++ {
		ch <- start.Add(time.Duration(i) * interval)
	}
	close(ch)
	return ch
}

// Ticker returns a channel of wall-clock frames that stops when ctx is done.
func Ticker(ctx context.Context, interval time.Duration) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				select {
				case ch <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}
