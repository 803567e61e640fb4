package sim

import (
	"sync/atomic"
	"time"
)

// ManualClock is a tick counter advanced explicitly by tests and replays
type ManualClock struct {
	now atomic.Uint32
}

// NewManualClock starts a clock at the given tick
func NewManualClock(start uint32) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

// Now returns the current tick
func (c *ManualClock) Now() uint32 {
	return c.now.Load()
}

// Advance moves the clock forward by d ticks, wrapping at 2^32
func (c *ManualClock) Advance(d uint32) uint32 {
	return c.now.Add(d)
}

// Set jumps the clock to a tick
func (c *ManualClock) Set(t uint32) {
	c.now.Store(t)
}

// MillisClock returns a clock counting wall-clock milliseconds since start,
// truncated to 32 bits like a board's millisecond counter.
// offset shifts the starting tick, which lets a run begin near the wrap point.
func MillisClock(start time.Time, offset uint32) func() uint32 {
	return func() uint32 {
		return offset + uint32(time.Since(start).Milliseconds())
	}
}
