// Package testutil provides deterministic stand-ins for the clock and the
// console so stopwatch sessions can be scripted in tests.
package testutil

import (
	"context"
	"sync"
	"time"
)

// ManualClock satisfies realtime.Clock without sleeping. It records every
// requested duration.
type ManualClock struct {
	mu     sync.Mutex
	sleeps []time.Duration

	// OnSleep, if set, runs after each recorded sleep with the 1-based
	// sleep count.
	OnSleep func(n int)
}

func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	hook := c.OnSleep
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return nil
}

// Sleeps returns a copy of the recorded durations.
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Total returns the sum of recorded durations.
func (c *ManualClock) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}
