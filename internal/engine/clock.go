package engine

import "time"

const dateLayout = "2006-01-02"

// Clock supplies the current time to the engine. Status derivation never
// reads the system clock directly so it stays deterministic under test.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Today() time.Time { return DateOnly(time.Now()) }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

func (c FixedClock) Today() time.Time { return DateOnly(c.T) }

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a date-only time.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
