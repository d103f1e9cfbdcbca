package core

import (
	"sync"
	"time"
)

// Clock reports the current time in milliseconds relative to an arbitrary
// origin. Only differences between readings are meaningful.
type Clock interface {
	Now() float64
}

// WallClock reads real time relative to the moment it was created.
type WallClock struct {
	origin time.Time
}

// NewWallClock returns a clock anchored at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// Now returns the milliseconds elapsed since the clock was created.
func (c *WallClock) Now() float64 {
	return float64(time.Since(c.origin)) / float64(time.Millisecond)
}

// ManualClock is advanced explicitly. It is used by tests and by headless
// batch runs that drive frames faster than real time.
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

// Now returns the current manual time.
func (c *ManualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by ms and returns the new reading.
// Negative steps are ignored.
func (c *ManualClock) Advance(ms float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > 0 {
		c.now += ms
	}
	return c.now
}

// Set jumps the clock to an absolute reading.
func (c *ManualClock) Set(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = ms
}
