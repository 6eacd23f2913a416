package util

import "time"

// Clock reports the current instant. Components take one so tests can pin time.
type Clock func() time.Time

// NowUTC is the production Clock.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock that always reports ts.
func FixedClock(ts time.Time) Clock {
	return func() time.Time { return ts }
}
