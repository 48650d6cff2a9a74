package badges

import (
	"context"
	"fmt"

	"github.com/briolearn/brio/internal/store"
)

// Service runs badge checks against the store.
type Service struct {
	store *store.Store
}

// NewService creates a badge service backed by st.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CheckAndAward evaluates every badge definition against the account's
// latest counters and records the ones newly crossed. It returns only
// the badges this call actually awarded; thresholds crossed earlier are
// silently skipped by the insert's conflict clause.
func (s *Service) CheckAndAward(ctx context.Context, accountID string) ([]Award, error) {
	acc, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	mastered, err := s.store.CountMasteredTopics(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snap := counters{
		weeklyStreak:   acc.WeeklyStreak,
		dailyStreak:    acc.DailyStreak,
		totalXP:        acc.TotalXP,
		topicsMastered: mastered,
	}

	defs, err := s.store.ListBadges(ctx)
	if err != nil {
		return nil, err
	}

	var awarded []Award
	for _, def := range defs {
		if !snap.met(def) {
			continue
		}
		inserted, err := s.store.InsertEarnedBadge(ctx, accountID, def.ID)
		if err != nil {
			return awarded, fmt.Errorf("award badge %s: %w", def.ID, err)
		}
		if inserted {
			awarded = append(awarded, Award{BadgeID: def.ID, Name: def.Name, Kind: Kind(def.Kind)})
		}
	}
	return awarded, nil
}
