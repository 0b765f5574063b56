package estimator

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Elapsed break time is always measured against this clock at the moment a
// snapshot is received, never against server timestamps, so clock skew
// between server and client cannot bend a running estimate.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
