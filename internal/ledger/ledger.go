// Package ledger orchestrates the read-modify-write cycle for mission
// completions: load counters, apply the calendar and streak transitions,
// add XP, recompute mastery, persist. Calls for the same account are
// serialized through a per-account lock so two near-simultaneous
// completions both accumulate instead of the second overwriting the
// first.
package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/briolearn/brio/internal/calendar"
	"github.com/briolearn/brio/internal/civil"
	"github.com/briolearn/brio/internal/clock"
	"github.com/briolearn/brio/internal/mastery"
	"github.com/briolearn/brio/internal/store"
	"github.com/briolearn/brio/internal/streak"
)

// Ledger is the single writer of Account and TopicProgress rows.
type Ledger struct {
	store  *store.Store
	clock  *clock.Clock
	policy *calendar.Policy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Ledger over the given collaborators.
func New(st *store.Store, ck *clock.Clock, policy *calendar.Policy) *Ledger {
	return &Ledger{
		store:  st,
		clock:  ck,
		policy: policy,
		locks:  make(map[string]*sync.Mutex),
	}
}

// accountLock returns the mutex serializing writes for one account.
func (l *Ledger) accountLock(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	return m
}

// RolloverOutcome reports what a week-boundary crossing did to the
// account. Applied is false when the stored anchor already matches the
// current week.
type RolloverOutcome struct {
	Applied          bool
	Initialized      bool // first-ever week, nothing to judge
	Streak           int
	Goal             int
	Passes           int
	HolidayProtected bool
	PassConsumed     bool
	StreakReset      bool
}

// CompletionResult is what ApplyMissionCompletion hands back to the
// calling layer for messaging.
type CompletionResult struct {
	Account     *store.Account
	Topic       *store.TopicProgress
	Rollover    RolloverOutcome
	Tier        mastery.Tier
	TierPct     int
	MasteredNow bool
}

// ApplyMissionCompletion credits xpDelta to the account and topic,
// running the weekly and daily transitions against the stored anchors
// first. The topic row is created on first contact; everything else must
// already exist.
func (l *Ledger) ApplyMissionCompletion(ctx context.Context, accountID, topicID string, xpDelta int) (*CompletionResult, error) {
	if xpDelta < 0 {
		return nil, ErrNegativeXP
	}

	lock := l.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	acc, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tp, err := l.store.GetTopicProgress(ctx, accountID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		tp = &store.TopicProgress{AccountID: accountID, TopicID: topicID}
	} else if err != nil {
		return nil, err
	}

	today := l.clock.Today()
	anchor := calendar.WeekAnchor(today)

	rollover, err := l.rollOverWeek(ctx, acc, today, anchor)
	if err != nil {
		return nil, err
	}

	// Daily transition. A new civil day also restarts the daily mission
	// counter the cap pre-check reads.
	if calendar.IsNewDay(acc.LastMissionDate, today) {
		acc.MissionsToday = 0
	}
	acc.DailyStreak = streak.ApplyDaily(acc.LastMissionDate, today, acc.DailyStreak)
	acc.LastMissionDate = today
	acc.MissionsToday++
	acc.MissionsWeek++

	// XP accrual.
	acc.TotalXP += xpDelta
	acc.WeeklyXP += xpDelta

	wasMastered := tp.Mastered
	if tp.WeekAnchor != anchor {
		// Fresh row, or a topic row the rollover reset hasn't touched yet.
		tp.WeeklyXP = 0
		tp.MissionsWeek = 0
		tp.WeekAnchor = anchor
	}
	tp.XP += xpDelta
	tp.WeeklyXP += xpDelta
	tp.MissionsWeek++
	tp.Mastered = mastery.IsMastered(tp.XP)

	if err := l.store.UpsertTopicProgress(ctx, tp); err != nil {
		return nil, err
	}
	if err := l.store.UpdateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return &CompletionResult{
		Account:     acc,
		Topic:       tp,
		Rollover:    rollover,
		Tier:        mastery.TierFor(tp.XP),
		TierPct:     mastery.ProgressWithinTier(tp.XP),
		MasteredNow: tp.Mastered && !wasMastered,
	}, nil
}

// EvaluateWeeklyRollover runs the week transition standalone, e.g. on
// dashboard load, so streak status is current without a completion.
func (l *Ledger) EvaluateWeeklyRollover(ctx context.Context, accountID string) (*RolloverOutcome, error) {
	lock := l.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	acc, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	today := l.clock.Today()
	anchor := calendar.WeekAnchor(today)

	rollover, err := l.rollOverWeek(ctx, acc, today, anchor)
	if err != nil {
		return nil, err
	}
	if rollover.Applied {
		if err := l.store.UpdateAccount(ctx, acc); err != nil {
			return nil, err
		}
	}
	return &rollover, nil
}

// rollOverWeek mutates acc in place when the stored week anchor is stale.
// Exactly one transition step is applied however many weeks were skipped;
// intervening fully-idle weeks are neither rewarded nor penalized. The
// caller persists acc.
func (l *Ledger) rollOverWeek(ctx context.Context, acc *store.Account, today, anchor civil.Date) (RolloverOutcome, error) {
	if !calendar.IsNewPeriod(acc.WeekAnchor, today) {
		return RolloverOutcome{
			Streak: acc.WeeklyStreak,
			Goal:   streak.GoalForStreak(acc.WeeklyStreak),
			Passes: acc.Passes,
		}, nil
	}

	out := RolloverOutcome{Applied: true}

	if acc.WeekAnchor.IsZero() {
		// First activity ever: anchor the week and take any pending term
		// refill, but there is no previous week to judge.
		out.Initialized = true
		if due, ok := l.policy.TermReplenishmentDue(acc.LastReplenish, today); ok {
			acc.Passes = streak.TermRefillPasses
			acc.LastReplenish = due
		}
	} else {
		facts := streak.WeekFacts{
			HolidayWeek: l.policy.IsHolidayWeek(acc.WeekAnchor),
		}
		if due, ok := l.policy.TermReplenishmentDue(acc.LastReplenish, today); ok {
			facts.RefillDue = due
		}
		res := streak.ApplyWeekly(streak.WeeklyState{
			Streak:        acc.WeeklyStreak,
			Passes:        acc.Passes,
			WeeklyXP:      acc.WeeklyXP,
			LastReplenish: acc.LastReplenish,
		}, facts)

		acc.WeeklyStreak = res.Streak
		acc.Passes = res.Passes
		acc.LastReplenish = res.LastReplenish
		out.HolidayProtected = res.HolidayProtected
		out.PassConsumed = res.PassConsumed
		out.StreakReset = res.StreakReset
	}

	acc.WeekAnchor = anchor
	acc.WeeklyXP = 0
	acc.MissionsWeek = 0
	acc.WeeklyGoal = streak.GoalForStreak(acc.WeeklyStreak)

	if err := l.store.ResetTopicWeeklyCounters(ctx, acc.ID, anchor); err != nil {
		return out, err
	}

	out.Streak = acc.WeeklyStreak
	out.Goal = acc.WeeklyGoal
	out.Passes = acc.Passes
	return out, nil
}

// OverrideTopicXP sets a topic's cumulative XP directly, bypassing the
// streak machinery but keeping the mastery flag and the weekly ≤
// cumulative invariant consistent. Admin surface.
func (l *Ledger) OverrideTopicXP(ctx context.Context, accountID, topicID string, newXP int) (*store.TopicProgress, error) {
	if newXP < 0 {
		return nil, ErrNegativeXP
	}

	lock := l.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	// The account must exist even though only the topic row changes.
	if _, err := l.store.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	tp, err := l.store.GetTopicProgress(ctx, accountID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		tp = &store.TopicProgress{AccountID: accountID, TopicID: topicID}
	} else if err != nil {
		return nil, err
	}

	tp.XP = newXP
	if tp.WeeklyXP > newXP {
		tp.WeeklyXP = newXP
	}
	tp.Mastered = mastery.IsMastered(newXP)

	if err := l.store.UpsertTopicProgress(ctx, tp); err != nil {
		return nil, err
	}
	return tp, nil
}

// CheckDailyCap reports whether the account may start another mission
// today. The calling layer runs this before ApplyMissionCompletion; the
// completion path never re-checks.
func (l *Ledger) CheckDailyCap(ctx context.Context, accountID string) error {
	acc, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	completedToday := acc.MissionsToday
	if calendar.IsNewDay(acc.LastMissionDate, l.clock.Today()) {
		completedToday = 0
	}
	if !streak.CanStartMission(completedToday, acc.Premium) {
		return &DailyCapError{Cap: streak.FreeDailyMissionCap}
	}
	return nil
}
