package store

// schemaDDL creates the four tables. Civil dates are TEXT in
// "YYYY-MM-DD" form, NULL when absent.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS accounts (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	premium            INTEGER NOT NULL DEFAULT 0,
	total_xp           INTEGER NOT NULL DEFAULT 0,
	weekly_xp          INTEGER NOT NULL DEFAULT 0,
	weekly_streak      INTEGER NOT NULL DEFAULT 0,
	weekly_goal        INTEGER NOT NULL DEFAULT 0,
	daily_streak       INTEGER NOT NULL DEFAULT 0,
	missions_week      INTEGER NOT NULL DEFAULT 0,
	missions_today     INTEGER NOT NULL DEFAULT 0,
	passes             INTEGER NOT NULL DEFAULT 0,
	last_mission_date  TEXT,
	week_anchor        TEXT,
	last_replenish     TEXT,
	created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS topic_progress (
	account_id     TEXT NOT NULL REFERENCES accounts(id),
	topic_id       TEXT NOT NULL,
	xp             INTEGER NOT NULL DEFAULT 0,
	weekly_xp      INTEGER NOT NULL DEFAULT 0,
	missions_week  INTEGER NOT NULL DEFAULT 0,
	week_anchor    TEXT,
	mastered       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (account_id, topic_id)
);

CREATE TABLE IF NOT EXISTS badges (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	threshold  INTEGER NOT NULL,
	name       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS earned_badges (
	account_id  TEXT NOT NULL REFERENCES accounts(id),
	badge_id    TEXT NOT NULL REFERENCES badges(id),
	earned_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (account_id, badge_id)
);

CREATE INDEX IF NOT EXISTS idx_topic_progress_account ON topic_progress(account_id);
CREATE INDEX IF NOT EXISTS idx_earned_badges_account ON earned_badges(account_id);
`
