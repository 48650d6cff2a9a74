// Package clock resolves "now" to a civil date in Chilean time, the
// product's home region. Chile alternates between two fixed UTC offsets on
// fixed calendar dates, so the rule is a pair of month/day boundaries
// rather than a generic DST computation.
package clock

import (
	"time"

	"github.com/briolearn/brio/internal/civil"
)

// Chile runs on UTC-3 in summer and UTC-4 in winter. The winter offset
// applies from April 6 through September 6 inclusive; the summer offset
// applies the rest of the year.
const (
	summerOffsetHours = -3
	winterOffsetHours = -4
)

var (
	summerZone = time.FixedZone("America/Santiago", summerOffsetHours*60*60)
	winterZone = time.FixedZone("America/Santiago", winterOffsetHours*60*60)
)

// Clock resolves the current instant to Chilean civil time.
type Clock struct {
	// NowFunc supplies the reference instant. Tests and the --at flag
	// override it; the zero setup reads the host clock.
	NowFunc func() time.Time
}

// New returns a Clock backed by the host clock.
func New() *Clock {
	return &Clock{NowFunc: time.Now}
}

// Fixed returns a Clock pinned to the given instant.
func Fixed(t time.Time) *Clock {
	return &Clock{NowFunc: func() time.Time { return t }}
}

// Now returns the current instant shifted into the Chilean offset zone.
func (c *Clock) Now() time.Time {
	t := c.NowFunc().UTC()
	return t.In(zoneFor(t))
}

// Today returns the current civil date as perceived in Chile.
func (c *Clock) Today() civil.Date {
	return civil.DateOf(c.Now())
}

// zoneFor picks the offset zone for a UTC instant by its month and day.
func zoneFor(utc time.Time) *time.Location {
	if inWinterRange(utc.Month(), utc.Day()) {
		return winterZone
	}
	return summerZone
}

// inWinterRange reports whether month/day falls in the UTC-4 window,
// April 6 through September 6 inclusive.
func inWinterRange(m time.Month, d int) bool {
	switch {
	case m > time.April && m < time.September:
		return true
	case m == time.April:
		return d >= 6
	case m == time.September:
		return d <= 6
	default:
		return false
	}
}
