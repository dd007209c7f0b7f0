package match

import "time"

// LogicalClock is a monotonic clock driven by simulation ticks instead
// of wall time, so headless runs keep reaction delays meaningful no
// matter how fast they step.
type LogicalClock struct {
	t  time.Duration
	dt time.Duration
}

// NewLogicalClock creates a clock advancing by dt per tick.
func NewLogicalClock(dt time.Duration) *LogicalClock {
	return &LogicalClock{dt: dt}
}

// Advance moves the clock forward one tick.
func (c *LogicalClock) Advance() {
	c.t += c.dt
}

// Now returns the accumulated logical time.
func (c *LogicalClock) Now() time.Duration {
	return c.t
}
