package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"levelup/internal/storage"
)

type AddQuestInput struct {
	Title    string
	Category Category
	XP       int
	Type     QuestType
}

func (s *Service) AddQuest(ctx context.Context, in AddQuestInput) (*storage.Quest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, InvalidInputError{Field: "title", Reason: "must not be empty"}
	}
	if !in.Category.IsValid() {
		return nil, InvalidInputError{Field: "category", Reason: fmt.Sprintf("unknown category %q", string(in.Category))}
	}
	if in.XP < MinQuestXP || in.XP > MaxQuestXP {
		return nil, InvalidInputError{Field: "xp", Reason: fmt.Sprintf("must be between %d and %d", MinQuestXP, MaxQuestXP)}
	}
	if !in.Type.IsValid() {
		return nil, InvalidInputError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", string(in.Type))}
	}

	q := storage.Quest{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		Title:     title,
		Category:  string(in.Category),
		XP:        in.XP,
		Type:      string(in.Type),
		CreatedAt: s.clock.Now(),
	}
	if err := s.quests.Insert(ctx, q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteResult reports what a quest deletion reversed.
type DeleteResult struct {
	QuestID     string
	Title       string
	Completions int
	XPRemoved   int
	CoinsLost   int
}

// DeleteQuest removes the quest and every completion row referencing
// it, then reverses the captured xp/coin awards from the totals. The
// completed set of any day thereby stays a subset of the user's quests.
func (s *Service) DeleteQuest(ctx context.Context, questID string) (*DeleteResult, error) {
	st, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	q, err := s.quests.Get(ctx, s.userID, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}

	xpSum, coinSum, err := s.completions.SumForQuest(ctx, s.userID, questID)
	if err != nil {
		return nil, err
	}
	history, err := s.completions.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	removed := 0
	for _, c := range history {
		if c.QuestID == questID {
			removed++
		}
	}

	if err := s.completions.DeleteByQuest(ctx, s.userID, questID); err != nil {
		return nil, err
	}
	if err := s.quests.Delete(ctx, s.userID, questID); err != nil {
		return nil, err
	}

	st.XP = clampNonNegative(st.XP - xpSum)
	st.Coins = clampNonNegative(st.Coins - coinSum)
	st.Level = LevelOf(st.XP).Level
	if err := s.stats.Update(ctx, st); err != nil {
		return nil, err
	}

	return &DeleteResult{
		QuestID:     questID,
		Title:       q.Title,
		Completions: removed,
		XPRemoved:   xpSum,
		CoinsLost:   coinSum,
	}, nil
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
