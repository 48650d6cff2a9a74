// Package badges evaluates award triggers against an account's current
// counters. Awards are recorded through an idempotent insert, so the
// check can run after every completion, on dashboard load, and under
// retries without double-awarding.
package badges

import "github.com/briolearn/brio/internal/store"

// Kind identifies what an award trigger measures.
type Kind string

const (
	KindWeeklyStreak   Kind = "weekly-streak"
	KindDailyStreak    Kind = "daily-streak"
	KindTotalXP        Kind = "total-xp"
	KindTopicsMastered Kind = "topics-mastered"
)

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindWeeklyStreak:
		return "Weekly Streak"
	case KindDailyStreak:
		return "Daily Streak"
	case KindTotalXP:
		return "Total XP"
	case KindTopicsMastered:
		return "Topics Mastered"
	default:
		return string(k)
	}
}

// Award describes one badge earned by the current check.
type Award struct {
	BadgeID string
	Name    string
	Kind    Kind
}

// counters is the snapshot a trigger evaluation reads.
type counters struct {
	weeklyStreak   int
	dailyStreak    int
	totalXP        int
	topicsMastered int
}

// met reports whether def's threshold is reached by the snapshot.
func (c counters) met(def store.BadgeDefinition) bool {
	switch Kind(def.Kind) {
	case KindWeeklyStreak:
		return c.weeklyStreak >= def.Threshold
	case KindDailyStreak:
		return c.dailyStreak >= def.Threshold
	case KindTotalXP:
		return c.totalXP >= def.Threshold
	case KindTopicsMastered:
		return c.topicsMastered >= def.Threshold
	default:
		return false
	}
}
