package store

import (
	"time"

	"github.com/briolearn/brio/internal/civil"
)

// Account is one student's progression counters. Created at signup with
// everything zero; mutated only through the ledger.
type Account struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Premium         bool       `db:"premium"`
	TotalXP         int        `db:"total_xp"`
	WeeklyXP        int        `db:"weekly_xp"`
	WeeklyStreak    int        `db:"weekly_streak"`
	WeeklyGoal      int        `db:"weekly_goal"`
	DailyStreak     int        `db:"daily_streak"`
	MissionsWeek    int        `db:"missions_week"`
	MissionsToday   int        `db:"missions_today"`
	Passes          int        `db:"passes"`
	LastMissionDate civil.Date `db:"last_mission_date"`
	WeekAnchor      civil.Date `db:"week_anchor"`
	LastReplenish   civil.Date `db:"last_replenish"`
	CreatedAt       time.Time  `db:"created_at"`
}

// TopicProgress is one (account, topic) pair, created lazily on the first
// XP award for that topic.
type TopicProgress struct {
	AccountID    string     `db:"account_id"`
	TopicID      string     `db:"topic_id"`
	XP           int        `db:"xp"`
	WeeklyXP     int        `db:"weekly_xp"`
	MissionsWeek int        `db:"missions_week"`
	WeekAnchor   civil.Date `db:"week_anchor"`
	Mastered     bool       `db:"mastered"`
}

// BadgeDefinition describes one award trigger from the seeded catalog.
type BadgeDefinition struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Threshold int    `db:"threshold"`
	Name      string `db:"name"`
}

// EarnedBadge is the immutable join record for an award. At most one row
// exists per (account, badge) pair.
type EarnedBadge struct {
	AccountID string    `db:"account_id"`
	BadgeID   string    `db:"badge_id"`
	EarnedAt  time.Time `db:"earned_at"`
}
