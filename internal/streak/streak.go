// Package streak holds the streak state machines: the weekly XP-goal model
// with vacation passes and holiday protection, and the daily activity
// chain. Both transitions are pure; the ledger owns persistence.
package streak

import "github.com/briolearn/brio/internal/civil"

const (
	// BaseWeeklyGoal is the XP goal for a student with no streak.
	BaseWeeklyGoal = 100
	// GoalIncrement is added to the goal per consecutive successful week.
	GoalIncrement = 25
	// MaxWeeklyGoal caps the goal; longer streaks hold here.
	MaxWeeklyGoal = 300

	// MaxPasses is the most vacation passes an account can hold.
	MaxPasses = 2
	// TermRefillPasses is the pass count set by a term replenishment.
	// Refills overwrite the balance, they do not add to it.
	TermRefillPasses = 2
)

// GoalForStreak returns the weekly XP goal for a given streak length.
// Non-decreasing: base + increment per week, held at the cap.
func GoalForStreak(streak int) int {
	if streak < 0 {
		streak = 0
	}
	goal := BaseWeeklyGoal + GoalIncrement*streak
	if goal > MaxWeeklyGoal {
		return MaxWeeklyGoal
	}
	return goal
}

// WeeklyState is the streak-relevant slice of an account at the moment a
// week rollover fires: the counters accumulated over the week just ended.
type WeeklyState struct {
	Streak        int
	Passes        int
	WeeklyXP      int
	LastReplenish civil.Date
}

// WeekFacts are the calendar's answers about the rollover.
type WeekFacts struct {
	// HolidayWeek is true when the week just ended was a school holiday.
	HolidayWeek bool
	// RefillDue is the term start owing a pass refill, zero if none.
	RefillDue civil.Date
}

// WeeklyResult is the account's streak state after the rollover, plus the
// flags the caller surfaces to the student.
type WeeklyResult struct {
	Streak        int
	Goal          int
	Passes        int
	LastReplenish civil.Date

	HolidayProtected bool
	PassConsumed     bool
	StreakReset      bool
}

// ApplyWeekly evaluates the week just ended and produces the state for the
// new week. The verdict consumes only passes held before any term refill:
// a refill landing in the rollover week restocks for future weeks but does
// not rescue the week being judged.
func ApplyWeekly(prev WeeklyState, facts WeekFacts) WeeklyResult {
	res := WeeklyResult{
		Streak:        prev.Streak,
		Passes:        prev.Passes,
		LastReplenish: prev.LastReplenish,
	}

	switch {
	case facts.HolidayWeek:
		res.HolidayProtected = true
	case prev.WeeklyXP >= GoalForStreak(prev.Streak):
		res.Streak++
	case prev.Passes > 0:
		res.Passes--
		res.PassConsumed = true
	default:
		res.Streak = 0
		res.StreakReset = true
	}

	if !facts.RefillDue.IsZero() {
		res.Passes = TermRefillPasses
		res.LastReplenish = facts.RefillDue
	}

	res.Goal = GoalForStreak(res.Streak)
	return res
}

// ApplyDaily advances the daily activity chain for a mission completed
// today. Multiple completions on the same day leave the chain unchanged.
func ApplyDaily(last, today civil.Date, current int) int {
	switch {
	case last.IsZero():
		return 1
	case last == today:
		return current
	case last.AddDays(1) == today:
		return current + 1
	default:
		return 1
	}
}
