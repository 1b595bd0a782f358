package clock

import "time"

// Clock abstracts time to keep plan generation and date math deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; calendar dates are local, not UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
