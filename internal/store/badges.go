package store

import (
	"context"
	"fmt"
)

// seededBadges is the shipped badge catalog. Definitions are keyed by a
// stable id so reseeding on every open is a no-op.
var seededBadges = []BadgeDefinition{
	{ID: "weekly-streak-4", Kind: "weekly-streak", Threshold: 4, Name: "Month of Momentum"},
	{ID: "weekly-streak-12", Kind: "weekly-streak", Threshold: 12, Name: "Term Champion"},
	{ID: "daily-streak-7", Kind: "daily-streak", Threshold: 7, Name: "Seven-Day Spark"},
	{ID: "daily-streak-30", Kind: "daily-streak", Threshold: 30, Name: "Thirty-Day Blaze"},
	{ID: "total-xp-1000", Kind: "total-xp", Threshold: 1000, Name: "Explorer"},
	{ID: "total-xp-5000", Kind: "total-xp", Threshold: 5000, Name: "Trailblazer"},
	{ID: "topics-mastered-1", Kind: "topics-mastered", Threshold: 1, Name: "First Mastery"},
	{ID: "topics-mastered-5", Kind: "topics-mastered", Threshold: 5, Name: "Subject Sage"},
}

func (s *Store) seedBadges(ctx context.Context) error {
	for _, b := range seededBadges {
		_, err := s.db.NamedExecContext(ctx, `
			INSERT INTO badges (id, kind, threshold, name)
			VALUES (:id, :kind, :threshold, :name)
			ON CONFLICT(id) DO NOTHING`, b)
		if err != nil {
			return fmt.Errorf("seed badge %s: %w", b.ID, err)
		}
	}
	return nil
}

// ListBadges returns the badge catalog.
func (s *Store) ListBadges(ctx context.Context) ([]BadgeDefinition, error) {
	var defs []BadgeDefinition
	err := s.db.SelectContext(ctx, &defs, `SELECT * FROM badges ORDER BY kind, threshold`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return defs, nil
}

// InsertEarnedBadge records an award. The primary key on
// (account_id, badge_id) makes retries no-ops; the return value reports
// whether this call actually inserted the row.
func (s *Store) InsertEarnedBadge(ctx context.Context, accountID, badgeID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO earned_badges (account_id, badge_id)
		VALUES (?, ?)
		ON CONFLICT(account_id, badge_id) DO NOTHING`, accountID, badgeID)
	if err != nil {
		return false, fmt.Errorf("insert earned badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert earned badge: %w", err)
	}
	return n > 0, nil
}

// ListEarnedBadges returns the badges an account has earned, oldest first.
func (s *Store) ListEarnedBadges(ctx context.Context, accountID string) ([]EarnedBadge, error) {
	var rows []EarnedBadge
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM earned_badges
		WHERE account_id = ?
		ORDER BY earned_at, badge_id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list earned badges: %w", err)
	}
	return rows, nil
}
