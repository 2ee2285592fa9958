package actor

import "time"

// Clock is a testable time source. Reducers must not read a Clock directly;
// runtimes stamp events with it instead.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }
