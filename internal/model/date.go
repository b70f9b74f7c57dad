package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical text form of a Date.
const DateLayout = "2006-01-02"

// Layouts accepted when reading a date back, canonical first.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// Date is a calendar date kept exactly as it was entered or restored.
// Rows loaded from a backup may carry text that is not a date at all; the
// value is preserved and simply treated as absent by date comparisons.
type Date string

// NewDate formats t as a canonical Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Parse returns the calendar day held by d at midnight UTC. The second
// return value is false for empty or unparseable values.
func (d Date) Parse() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether no date was given.
func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// DateOf truncates t to its calendar day (in t's own location) and returns
// that day at midnight UTC so that days compare with Before/After/Equal.
func DateOf(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
