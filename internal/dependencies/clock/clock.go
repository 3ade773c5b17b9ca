package clock

import "time"

// Clock provides the current time so sessions and preferences can be tested deterministically
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t according to clk
func Since(clk Clock, t time.Time) time.Duration {
	return clk.Now().Sub(t)
}
