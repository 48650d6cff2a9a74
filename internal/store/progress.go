package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/briolearn/brio/internal/civil"
)

// GetTopicProgress loads the progress row for one (account, topic) pair.
func (s *Store) GetTopicProgress(ctx context.Context, accountID, topicID string) (*TopicProgress, error) {
	var tp TopicProgress
	err := s.db.GetContext(ctx, &tp, `
		SELECT * FROM topic_progress
		WHERE account_id = ? AND topic_id = ?`, accountID, topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("topic %s for account %s: %w", topicID, accountID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic progress: %w", err)
	}
	return &tp, nil
}

// UpsertTopicProgress writes tp, inserting the row on first contact with
// a topic and replacing the counters afterwards. One code path serves
// both, keyed on (account_id, topic_id).
func (s *Store) UpsertTopicProgress(ctx context.Context, tp *TopicProgress) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO topic_progress (
			account_id, topic_id, xp, weekly_xp, missions_week, week_anchor, mastered
		) VALUES (
			:account_id, :topic_id, :xp, :weekly_xp, :missions_week, :week_anchor, :mastered
		)
		ON CONFLICT(account_id, topic_id) DO UPDATE SET
			xp            = excluded.xp,
			weekly_xp     = excluded.weekly_xp,
			missions_week = excluded.missions_week,
			week_anchor   = excluded.week_anchor,
			mastered      = excluded.mastered`, tp)
	if err != nil {
		return fmt.Errorf("upsert topic progress: %w", err)
	}
	return nil
}

// ListTopicProgress returns every topic row for an account, ordered by
// topic id.
func (s *Store) ListTopicProgress(ctx context.Context, accountID string) ([]TopicProgress, error) {
	var rows []TopicProgress
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM topic_progress
		WHERE account_id = ?
		ORDER BY topic_id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list topic progress: %w", err)
	}
	return rows, nil
}

// ResetTopicWeeklyCounters zeroes the weekly counters on every topic row
// for the account as part of a week rollover, re-anchoring them to the
// new week.
func (s *Store) ResetTopicWeeklyCounters(ctx context.Context, accountID string, anchor civil.Date) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE topic_progress SET
			weekly_xp = 0, missions_week = 0, week_anchor = ?
		WHERE account_id = ?`, anchor, accountID)
	if err != nil {
		return fmt.Errorf("reset topic weekly counters: %w", err)
	}
	return nil
}

// CountMasteredTopics returns how many topics the account has mastered.
func (s *Store) CountMasteredTopics(ctx context.Context, accountID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM topic_progress
		WHERE account_id = ? AND mastered = 1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("count mastered topics: %w", err)
	}
	return n, nil
}
