package clock

import (
	"sync"
	"time"
)

// FakeClock is a manual Clock for tests. With a non-zero step every Now call
// moves the clock forward, so measured durations are deterministic.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start.UTC()}
}

// NewSteppingClock returns a FakeClock that advances by step after each read.
func NewSteppingClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: start.UTC(), step: step}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
