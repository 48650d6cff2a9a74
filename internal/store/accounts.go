package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateAccount inserts a fresh account with all counters zero and
// returns it.
func (s *Store) CreateAccount(ctx context.Context, name string, premium bool) (*Account, error) {
	acc := &Account{
		ID:        uuid.NewString(),
		Name:      name,
		Premium:   premium,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO accounts (id, name, premium, created_at)
		VALUES (:id, :name, :premium, :created_at)`, acc)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acc, nil
}

// GetAccount loads an account by id.
func (s *Store) GetAccount(ctx context.Context, id string) (*Account, error) {
	var acc Account
	err := s.db.GetContext(ctx, &acc, `SELECT * FROM accounts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acc, nil
}

// UpdateAccount writes every mutable counter of acc in one statement, so
// a failed write leaves the stored row untouched.
func (s *Store) UpdateAccount(ctx context.Context, acc *Account) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE accounts SET
			premium           = :premium,
			total_xp          = :total_xp,
			weekly_xp         = :weekly_xp,
			weekly_streak     = :weekly_streak,
			weekly_goal       = :weekly_goal,
			daily_streak      = :daily_streak,
			missions_week     = :missions_week,
			missions_today    = :missions_today,
			passes            = :passes,
			last_mission_date = :last_mission_date,
			week_anchor       = :week_anchor,
			last_replenish    = :last_replenish
		WHERE id = :id`, acc)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", acc.ID, ErrNotFound)
	}
	return nil
}

// ResetAccount zeroes every progression counter on the account and its
// topic rows while preserving identity. Earned badges are kept.
func (s *Store) ResetAccount(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reset account: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET
			total_xp = 0, weekly_xp = 0, weekly_streak = 0, weekly_goal = 0,
			daily_streak = 0, missions_week = 0, missions_today = 0,
			passes = 0, last_mission_date = NULL, week_anchor = NULL,
			last_replenish = NULL
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("reset account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE topic_progress SET
			xp = 0, weekly_xp = 0, missions_week = 0,
			week_anchor = NULL, mastered = 0
		WHERE account_id = ?`, id)
	if err != nil {
		return fmt.Errorf("reset topic progress: %w", err)
	}

	return tx.Commit()
}
