package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"levelup/internal/storage"
)

// StartTimer opens a focus session against a quest. Sessions are
// append-only rows; only one may be open at a time.
func (s *Service) StartTimer(ctx context.Context, questID string) (*storage.TimerSession, error) {
	q, err := s.quests.Get(ctx, s.userID, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}

	active, err := s.timers.Active(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, InvalidInputError{Field: "timer", Reason: "a focus session is already running"}
	}

	session := storage.TimerSession{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		QuestID:   questID,
		StartedAt: s.clock.Now(),
	}
	if err := s.timers.Insert(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// StopTimer closes the open focus session and records the elapsed
// seconds. Elapsed time never goes negative even if the wall clock
// stepped backwards between the two instants.
func (s *Service) StopTimer(ctx context.Context) (*storage.TimerSession, error) {
	active, err := s.timers.Active(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, InvalidInputError{Field: "timer", Reason: "no focus session is running"}
	}

	endedAt := s.clock.Now()
	elapsed := int(endedAt.Sub(active.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	if err := s.timers.Finish(ctx, active.ID, endedAt, elapsed); err != nil {
		return nil, err
	}

	active.EndedAt = &endedAt
	active.DurationSeconds = elapsed
	return active, nil
}

func (s *Service) TimerHistory(ctx context.Context) ([]storage.TimerSession, error) {
	return s.timers.ListByUser(ctx, s.userID)
}
