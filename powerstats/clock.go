package powerstats

import "time"

// Clock tells the current wall-clock time. It exists so that tests can
// substitute a controlled time source.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by the host time.
type SystemClock struct{}

// Now returns the current host time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
