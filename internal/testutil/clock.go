package testutil

import (
	"sync"
	"time"
)

// Epoch is the default start time for FakeClock.
var Epoch = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// FakeClock provides a thread-safe, manually driven wall clock for tests.
//
// Every call to Now returns the current time and then advances it by Step,
// so consecutive calls produce strictly increasing timestamps unless Step is
// zero. Set lets tests move time backwards to exercise clock skew.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFakeClock creates a clock starting at start that advances by step per call.
func NewFakeClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: start, step: step}
}

// Now returns the current fake time and advances the clock by its step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the current fake time without advancing.
func (c *FakeClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
