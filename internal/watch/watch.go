// Package watch runs the repository check on a fixed interval. It polls
// rather than subscribing to filesystem events: a tick either finds pending
// changes and handles them or does nothing, and a failed tick never stops
// the loop.
package watch

import (
	"context"
	"time"
)

// minInterval is the floor for the polling interval; anything lower would
// hammer git for no benefit.
const minInterval = time.Second

// CycleFunc performs one watch iteration. Returning an error marks the
// cycle failed but does not stop the loop.
type CycleFunc func(ctx context.Context) error

// Loop polls a repository by running a cycle on every tick.
type Loop struct {
	interval time.Duration
	cycle    CycleFunc

	// OnError observes cycle failures. Optional.
	OnError func(error)
}

// New creates a loop that runs cycle every interval. Intervals under one
// second are raised to one second.
func New(interval time.Duration, cycle CycleFunc) *Loop {
	if interval < minInterval {
		interval = minInterval
	}
	return &Loop{interval: interval, cycle: cycle}
}

// Interval returns the effective polling interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// Run executes cycles until ctx is cancelled, starting with an immediate
// one. Cycle errors are reported to OnError and the loop continues; the
// only exit is cancellation, which returns ctx.Err.
func (l *Loop) Run(ctx context.Context) error {
	l.runCycle(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runCycle(ctx)
		}
	}
}

func (l *Loop) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := l.cycle(ctx); err != nil && l.OnError != nil {
		l.OnError(err)
	}
}
