package campaign

import "time"

// Clock is the injected time source used for deadline arithmetic and expiry
// checks. Production code uses SystemClock; tests inject a fixed or
// advanceable fake for deterministic deadline behavior.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }
