package engine

import (
	"context"
	"fmt"

	"levelup/internal/storage"
)

// CompleteResult announces the deltas of a completion (or its undo) so
// the shell can report them; the core itself never notifies.
type CompleteResult struct {
	QuestID     string
	Title       string
	Date        string
	XPDelta     int
	CoinsDelta  int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Streak      int
	BestStreak  int
}

// Complete marks a quest done on today's date. A quest completes at
// most once per civil day; completing an already-completed quest
// returns ErrAlreadyCompleted, which callers treat as idempotent
// success. XP and coin awards are captured on the completion row at
// their current values.
func (s *Service) Complete(ctx context.Context, questID string) (*CompleteResult, error) {
	st, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := st.Level

	q, err := s.quests.Get(ctx, s.userID, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}

	today := s.clock.Today()
	existing, err := s.completions.Get(ctx, s.userID, questID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, questID)
	}

	countBefore, err := s.completions.CountOnDate(ctx, s.userID, today)
	if err != nil {
		return nil, err
	}

	coins := CoinsFor(q.XP)
	if err := s.completions.Insert(ctx, storage.Completion{
		UserID:       s.userID,
		QuestID:      questID,
		CompletedAt:  today,
		XPAwarded:    q.XP,
		CoinsAwarded: coins,
	}); err != nil {
		return nil, err
	}

	st.XP += q.XP
	st.Coins += coins
	st.Level = LevelOf(st.XP).Level

	// The rollover in getStats already counted today when yesterday was
	// productive (current_streak > 0 here). Otherwise the first
	// completion of the day is what makes today productive, so it
	// starts a streak of one.
	if countBefore == 0 && st.CurrentStreak == 0 {
		st.CurrentStreak = 1
		if st.BestStreak < 1 {
			st.BestStreak = 1
		}
	}

	if err := s.stats.Update(ctx, st); err != nil {
		return nil, err
	}

	return &CompleteResult{
		QuestID:     questID,
		Title:       q.Title,
		Date:        today,
		XPDelta:     q.XP,
		CoinsDelta:  coins,
		LevelBefore: levelBefore,
		LevelAfter:  st.Level,
		LevelUp:     st.Level > levelBefore,
		Streak:      st.CurrentStreak,
		BestStreak:  st.BestStreak,
	}, nil
}

// Uncomplete removes today's completion of a quest and reverses
// exactly the captured deltas. It never reverses a streak increment
// the completion caused, even if today's set becomes empty again.
func (s *Service) Uncomplete(ctx context.Context, questID string) (*CompleteResult, error) {
	st, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := st.Level

	q, err := s.quests.Get(ctx, s.userID, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}

	today := s.clock.Today()
	c, err := s.completions.Get(ctx, s.userID, questID, today)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotCompleted, questID)
	}

	if err := s.completions.Delete(ctx, s.userID, questID, today); err != nil {
		return nil, err
	}

	st.XP = clampNonNegative(st.XP - c.XPAwarded)
	st.Coins = clampNonNegative(st.Coins - c.CoinsAwarded)
	st.Level = LevelOf(st.XP).Level

	if err := s.stats.Update(ctx, st); err != nil {
		return nil, err
	}

	return &CompleteResult{
		QuestID:     questID,
		Title:       q.Title,
		Date:        today,
		XPDelta:     -c.XPAwarded,
		CoinsDelta:  -c.CoinsAwarded,
		LevelBefore: levelBefore,
		LevelAfter:  st.Level,
		LevelUp:     false,
		Streak:      st.CurrentStreak,
		BestStreak:  st.BestStreak,
	}, nil
}
