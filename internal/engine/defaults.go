package engine

import "context"

// DefaultQuests is the starter set seeded for a brand-new user, three
// per life domain.
func DefaultQuests() []AddQuestInput {
	return []AddQuestInput{
		{Title: "Move 20 minutes", Category: CategoryHealth, XP: 20, Type: QuestDaily},
		{Title: "8 glasses of water", Category: CategoryHealth, XP: 15, Type: QuestDaily},
		{Title: "Sleep 7+ hours", Category: CategoryHealth, XP: 25, Type: QuestDaily},
		{Title: "Track spending today", Category: CategoryWealth, XP: 15, Type: QuestDaily},
		{Title: "Learn a skill 30 min", Category: CategoryWealth, XP: 25, Type: QuestDaily},
		{Title: "Build income 30 min", Category: CategoryWealth, XP: 25, Type: QuestDaily},
		{Title: "Send 1 gratitude msg", Category: CategoryRelationships, XP: 15, Type: QuestDaily},
		{Title: "One deep conversation", Category: CategoryRelationships, XP: 25, Type: QuestDaily},
		{Title: "Kindness: no gossip", Category: CategoryRelationships, XP: 20, Type: QuestDaily},
	}
}

// Bootstrap prepares a user for first use: profile and stats rows, and
// the default quest set when the user has none yet.
func (s *Service) Bootstrap(ctx context.Context) error {
	if _, err := s.getStats(ctx); err != nil {
		return err
	}
	quests, err := s.quests.ListByUser(ctx, s.userID)
	if err != nil {
		return err
	}
	if len(quests) > 0 {
		return nil
	}
	for _, in := range DefaultQuests() {
		if _, err := s.AddQuest(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
