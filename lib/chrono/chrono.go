package chrono

import (
	"time"
)

// TimestampLayout is the layout of timestamps written to checkpoints and reports.
const TimestampLayout = "2006-01-02 15:04:05"

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (s StandardTime) Now() time.Time {
	return time.Now()
}

// FixedTime always returns the same instant, for tests.
type FixedTime struct {
	Time time.Time
}

func (f FixedTime) Now() time.Time {
	return f.Time
}

// Format formats a time with TimestampLayout.
func Format(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Parse parses a time formatted with TimestampLayout in the local timezone.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
