package kpi

import (
	"time"

	"procurement/internal/model"
)

// Clock supplies the current time. Late and attention checks only use its
// calendar day.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Today returns the clock's current calendar day.
func Today(c Clock) time.Time {
	return model.DateOf(c.Now())
}
