// Package calendar answers the date questions the streak engine asks:
// which week a date belongs to, whether a week is a school holiday, and
// whether crossing a term start owes the student a pass refill. All
// functions are pure lookups over a Config built once at startup.
package calendar

import (
	"time"

	"github.com/briolearn/brio/internal/civil"
)

// DateRange is an inclusive span of civil dates.
type DateRange struct {
	Start civil.Date
	End   civil.Date
}

// Contains reports whether d falls inside the range, ends included.
func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Config holds the school-calendar tables. Read-only after construction.
type Config struct {
	// Holidays are closed school periods during which streaks are protected.
	Holidays []DateRange
	// TermStarts are the dates that trigger vacation-pass replenishment,
	// in ascending order.
	TermStarts []civil.Date
}

// DefaultConfig returns the Chilean school calendar currently shipped with
// the product.
func DefaultConfig() Config {
	return Config{
		Holidays: []DateRange{
			{civil.MustDate("2026-01-01"), civil.MustDate("2026-02-28")}, // summer break
			{civil.MustDate("2026-06-29"), civil.MustDate("2026-07-12")}, // winter break
			{civil.MustDate("2026-09-14"), civil.MustDate("2026-09-20")}, // fiestas patrias
			{civil.MustDate("2026-12-14"), civil.MustDate("2027-02-28")}, // summer break
		},
		TermStarts: []civil.Date{
			civil.MustDate("2026-03-02"),
			civil.MustDate("2026-07-27"),
			civil.MustDate("2027-03-01"),
		},
	}
}

// Policy evaluates calendar questions against one Config.
type Policy struct {
	cfg Config
}

// NewPolicy builds a Policy over cfg.
func NewPolicy(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// WeekAnchor returns the Monday of the week containing d. Weeks run
// Monday through Sunday.
func WeekAnchor(d civil.Date) civil.Date {
	wd := int(d.Weekday())
	if wd == int(time.Sunday) {
		wd = 7
	}
	return d.AddDays(-(wd - 1))
}

// IsNewPeriod reports whether the stored anchor belongs to an earlier
// period than the current one. An absent stored anchor always counts as
// a new period.
func IsNewPeriod(stored, current civil.Date) bool {
	if stored.IsZero() {
		return true
	}
	return WeekAnchor(stored) != WeekAnchor(current)
}

// IsNewDay reports whether today differs from the last recorded date.
func IsNewDay(last, today civil.Date) bool {
	return last.IsZero() || last != today
}

// WasYesterday reports whether last is exactly the day before today.
func WasYesterday(last, today civil.Date) bool {
	if last.IsZero() {
		return false
	}
	return last.AddDays(1) == today
}

// IsHolidayWeek reports whether the week anchored at anchor falls inside
// any configured holiday period.
func (p *Policy) IsHolidayWeek(anchor civil.Date) bool {
	for _, r := range p.cfg.Holidays {
		if r.Contains(anchor) {
			return true
		}
	}
	return false
}

// TermReplenishmentDue returns the most recent term start that is on or
// before today and strictly after the last replenishment date. A student
// who skipped several terms gets one refill, anchored at the latest
// qualifying term start, not one per missed term.
func (p *Policy) TermReplenishmentDue(lastReplenish, today civil.Date) (civil.Date, bool) {
	var due civil.Date
	for _, start := range p.cfg.TermStarts {
		if start.After(today) {
			break
		}
		if lastReplenish.IsZero() || start.After(lastReplenish) {
			due = start
		}
	}
	return due, !due.IsZero()
}
