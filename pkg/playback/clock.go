package playback

import (
	"sync"
	"time"
)

// Clock maps elapsed playback time to the wall clock and supports pause and
// resume without drift. While playing, Now() is the frozen offset plus the
// time elapsed since the last reference instant; while paused it is the
// offset alone. The clock never runs backward.
type Clock struct {
	mu        sync.Mutex
	offset    time.Duration
	reference time.Time
	paused    bool
}

// NewClock returns a running clock starting at zero.
func NewClock() *Clock {
	return &Clock{reference: time.Now()}
}

// Now returns the current elapsed playback time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.offset
	}
	return c.offset + time.Since(c.reference)
}

// Pause freezes the clock at its current elapsed value. Pausing a paused
// clock is a no-op.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.offset += time.Since(c.reference)
	c.paused = true
}

// Resume restarts the clock from the frozen offset. Resuming a running
// clock is a no-op.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.reference = time.Now()
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Reset rewinds the clock to zero for a stream restart, keeping the
// current paused/playing mode.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
	c.reference = time.Now()
}
