package services

import "time"

// Clock supplies the timestamps stamped on cost observations and state changes
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time {
	return f()
}

func orSystemClock(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
