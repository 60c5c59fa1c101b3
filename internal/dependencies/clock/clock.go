// Package clock supplies wall time for token validation and event stamps.
package clock

import "time"

// Clock reports the current time. Mocked in tests.
type Clock interface {
	Now() time.Time
}

// System reads the host clock
type System struct{}

var _ Clock = System{}

// New returns the host clock
func New() System {
	return System{}
}

// Now returns the host time in UTC so event timestamps serialize with a Z offset
func (System) Now() time.Time {
	return time.Now().UTC()
}
