package ledger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briolearn/brio/internal/calendar"
	"github.com/briolearn/brio/internal/civil"
	"github.com/briolearn/brio/internal/clock"
	"github.com/briolearn/brio/internal/store"
	"github.com/briolearn/brio/internal/streak"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// at builds an instant that resolves to the given Chilean civil date.
// 15:00 UTC is midday in Chile under either seasonal offset.
func at(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse(civil.Layout, date)
	require.NoError(t, err)
	return d.Add(15 * time.Hour)
}

func ledgerAt(t *testing.T, st *store.Store, date string) *Ledger {
	t.Helper()
	return New(st, clock.Fixed(at(t, date)), calendar.NewPolicy(calendar.DefaultConfig()))
}

func TestFirstEverMission(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Sofía", false)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03") // Tuesday of the first school week
	res, err := l.ApplyMissionCompletion(ctx, acc.ID, "fractions", 40)
	require.NoError(t, err)

	require.Equal(t, 40, res.Topic.XP)
	require.False(t, res.Topic.Mastered)
	require.Equal(t, 40, res.Account.TotalXP)
	require.Equal(t, 1, res.Account.DailyStreak)
	require.Equal(t, 0, res.Account.WeeklyStreak)
	require.True(t, res.Rollover.Initialized)
	require.Equal(t, streak.BaseWeeklyGoal, res.Rollover.Goal)
	require.Equal(t, civil.MustDate("2026-03-02"), res.Account.WeekAnchor)
	require.Equal(t, civil.MustDate("2026-03-03"), res.Account.LastMissionDate)
}

func TestWeeklyGoalMetIncrementsStreak(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Mateo", false)
	require.NoError(t, err)

	// Week 1: earn exactly the base goal.
	l := ledgerAt(t, st, "2026-03-03")
	_, err = l.ApplyMissionCompletion(ctx, acc.ID, "reading", 60)
	require.NoError(t, err)
	_, err = l.ApplyMissionCompletion(ctx, acc.ID, "reading", 40)
	require.NoError(t, err)

	// First action of week 2 triggers the rollover lazily.
	l = ledgerAt(t, st, "2026-03-10")
	res, err := l.ApplyMissionCompletion(ctx, acc.ID, "reading", 10)
	require.NoError(t, err)

	require.True(t, res.Rollover.Applied)
	require.Equal(t, 1, res.Rollover.Streak)
	require.Equal(t, streak.GoalForStreak(1), res.Rollover.Goal)
	require.Greater(t, res.Rollover.Goal, streak.BaseWeeklyGoal)
	require.False(t, res.Rollover.StreakReset)

	// The new week's counters start from this completion only.
	require.Equal(t, 10, res.Account.WeeklyXP)
	require.Equal(t, 10, res.Topic.WeeklyXP)
	require.Equal(t, 110, res.Topic.XP)
}

func TestWeeklyMissConsumesPass(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Emilia", false)
	require.NoError(t, err)

	acc.WeeklyStreak = 5
	acc.Passes = 2
	acc.WeeklyXP = 10
	acc.WeekAnchor = civil.MustDate("2026-03-09")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	l := ledgerAt(t, st, "2026-03-17")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.True(t, out.Applied)
	require.True(t, out.PassConsumed)
	require.False(t, out.StreakReset)
	require.Equal(t, 5, out.Streak)
	require.Equal(t, 1, out.Passes)
}

func TestWeeklyMissNoPassesResetsToZero(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Tomás", false)
	require.NoError(t, err)

	acc.WeeklyStreak = 7
	acc.Passes = 0
	acc.WeeklyXP = 0
	acc.WeekAnchor = civil.MustDate("2026-03-09")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	l := ledgerAt(t, st, "2026-03-17")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.True(t, out.StreakReset)
	require.Equal(t, 0, out.Streak)
	require.Equal(t, streak.BaseWeeklyGoal, out.Goal)
}

func TestHolidayWeekProtectsStreak(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Isidora", false)
	require.NoError(t, err)

	// Winter break week with zero XP.
	acc.WeeklyStreak = 4
	acc.Passes = 1
	acc.WeeklyXP = 0
	acc.WeekAnchor = civil.MustDate("2026-06-29")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	l := ledgerAt(t, st, "2026-07-13")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.True(t, out.HolidayProtected)
	require.False(t, out.PassConsumed)
	require.False(t, out.StreakReset)
	require.Equal(t, 4, out.Streak)
	require.Equal(t, 1, out.Passes)
}

func TestTermReplenishmentExactlyOnce(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Agustín", false)
	require.NoError(t, err)

	acc.WeeklyStreak = 2
	acc.Passes = 0
	acc.WeeklyXP = 200 // goal met, so the verdict is clean
	acc.WeekAnchor = civil.MustDate("2026-07-20")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	// Rollover lands exactly on the term-start date.
	l := ledgerAt(t, st, "2026-07-27")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.Equal(t, streak.TermRefillPasses, out.Passes)
	require.Equal(t, 3, out.Streak)

	got, err := st.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, civil.MustDate("2026-07-27"), got.LastReplenish)

	// Same day, same stored anchor: no second rollover, no second refill.
	out, err = l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)
	require.False(t, out.Applied)
	require.Equal(t, streak.TermRefillPasses, out.Passes)
}

func TestRefillDoesNotRescueTheJudgedWeek(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Antonia", false)
	require.NoError(t, err)

	// Goal missed, no passes, and the term start lands in the rollover.
	acc.WeeklyStreak = 6
	acc.Passes = 0
	acc.WeeklyXP = 0
	acc.WeekAnchor = civil.MustDate("2026-07-20")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	l := ledgerAt(t, st, "2026-07-28")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.True(t, out.StreakReset)
	require.Equal(t, 0, out.Streak)
	require.Equal(t, streak.TermRefillPasses, out.Passes)
}

func TestDailyStreakTransitions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Joaquín", false)
	require.NoError(t, err)

	// Day 1.
	l := ledgerAt(t, st, "2026-03-03")
	res, err := l.ApplyMissionCompletion(ctx, acc.ID, "spelling", 20)
	require.NoError(t, err)
	require.Equal(t, 1, res.Account.DailyStreak)

	// Second mission same day: unchanged.
	res, err = l.ApplyMissionCompletion(ctx, acc.ID, "spelling", 20)
	require.NoError(t, err)
	require.Equal(t, 1, res.Account.DailyStreak)

	// Next day: chain grows.
	l = ledgerAt(t, st, "2026-03-04")
	res, err = l.ApplyMissionCompletion(ctx, acc.ID, "spelling", 20)
	require.NoError(t, err)
	require.Equal(t, 2, res.Account.DailyStreak)

	// Gap of 2+ days: back to 1 regardless of prior length.
	l = ledgerAt(t, st, "2026-03-07")
	res, err = l.ApplyMissionCompletion(ctx, acc.ID, "spelling", 20)
	require.NoError(t, err)
	require.Equal(t, 1, res.Account.DailyStreak)
}

func TestMultiWeekGapAppliesSingleTransition(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Valentina", false)
	require.NoError(t, err)

	acc.WeeklyStreak = 2
	acc.WeeklyXP = 200 // last active week met its goal
	acc.WeekAnchor = civil.MustDate("2026-03-02")
	acc.LastReplenish = civil.MustDate("2026-03-02")
	require.NoError(t, st.UpdateAccount(ctx, acc))

	// Five weeks later: one increment for the week that met its goal,
	// nothing for the idle weeks in between.
	l := ledgerAt(t, st, "2026-04-08")
	out, err := l.EvaluateWeeklyRollover(ctx, acc.ID)
	require.NoError(t, err)

	require.True(t, out.Applied)
	require.Equal(t, 3, out.Streak)

	got, err := st.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, civil.MustDate("2026-04-06"), got.WeekAnchor)
	require.Equal(t, 0, got.WeeklyXP)
}

func TestRolloverResetsTopicWeeklyCounters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Benjamín", false)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03")
	_, err = l.ApplyMissionCompletion(ctx, acc.ID, "geometry", 60)
	require.NoError(t, err)

	l = ledgerAt(t, st, "2026-03-10")
	res, err := l.ApplyMissionCompletion(ctx, acc.ID, "geometry", 30)
	require.NoError(t, err)

	require.Equal(t, 90, res.Topic.XP)
	require.Equal(t, 30, res.Topic.WeeklyXP)
	require.Equal(t, 1, res.Topic.MissionsWeek)
	require.Equal(t, 30, res.Account.WeeklyXP)

	// Invariant: weekly topic XP never exceeds cumulative topic XP.
	require.LessOrEqual(t, res.Topic.WeeklyXP, res.Topic.XP)
}

func TestConcurrentCompletionsBothAccumulate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Florencia", true)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.ApplyMissionCompletion(ctx, acc.ID, "mental-math", 10)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := st.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, workers*10, got.TotalXP)

	tp, err := st.GetTopicProgress(ctx, acc.ID, "mental-math")
	require.NoError(t, err)
	require.Equal(t, workers*10, tp.XP)
}

func TestNegativeDeltaRejectedWithoutWrite(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Martín", false)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03")
	_, err = l.ApplyMissionCompletion(ctx, acc.ID, "fractions", -5)
	require.ErrorIs(t, err, ErrNegativeXP)

	got, err := st.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.TotalXP)
	_, err = st.GetTopicProgress(ctx, acc.ID, "fractions")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnknownAccountSurfacesNotFound(t *testing.T) {
	st := openTestStore(t)
	l := ledgerAt(t, st, "2026-03-03")

	_, err := l.ApplyMissionCompletion(context.Background(), "missing", "fractions", 10)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = l.EvaluateWeeklyRollover(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOverrideTopicXP(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "Renata", false)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03")

	// Override creates the topic row if needed and recomputes mastery.
	tp, err := l.OverrideTopicXP(ctx, acc.ID, "reading", 800)
	require.NoError(t, err)
	require.Equal(t, 800, tp.XP)
	require.True(t, tp.Mastered)

	// Streak state is untouched by an override.
	got, err := st.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.TotalXP)
	require.Equal(t, 0, got.DailyStreak)

	// Overriding below the weekly counter clamps it to keep the invariant.
	_, err = l.ApplyMissionCompletion(ctx, acc.ID, "reading", 80)
	require.NoError(t, err)
	tp, err = l.OverrideTopicXP(ctx, acc.ID, "reading", 50)
	require.NoError(t, err)
	require.Equal(t, 50, tp.XP)
	require.LessOrEqual(t, tp.WeeklyXP, tp.XP)
	require.False(t, tp.Mastered)

	_, err = l.OverrideTopicXP(ctx, acc.ID, "reading", -1)
	require.ErrorIs(t, err, ErrNegativeXP)
}

func TestCheckDailyCap(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	free, err := st.CreateAccount(ctx, "Lucas", false)
	require.NoError(t, err)
	premium, err := st.CreateAccount(ctx, "Amanda", true)
	require.NoError(t, err)

	l := ledgerAt(t, st, "2026-03-03")

	for i := 0; i < streak.FreeDailyMissionCap; i++ {
		require.NoError(t, l.CheckDailyCap(ctx, free.ID))
		_, err = l.ApplyMissionCompletion(ctx, free.ID, "fractions", 10)
		require.NoError(t, err)
	}

	err = l.CheckDailyCap(ctx, free.ID)
	var capErr *DailyCapError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, streak.FreeDailyMissionCap, capErr.Cap)

	// A new civil day clears the block.
	l = ledgerAt(t, st, "2026-03-04")
	require.NoError(t, l.CheckDailyCap(ctx, free.ID))

	// Premium accounts never hit the cap.
	l = ledgerAt(t, st, "2026-03-03")
	for i := 0; i < streak.FreeDailyMissionCap+2; i++ {
		_, err = l.ApplyMissionCompletion(ctx, premium.ID, "fractions", 10)
		require.NoError(t, err)
	}
	require.NoError(t, l.CheckDailyCap(ctx, premium.ID))
}
