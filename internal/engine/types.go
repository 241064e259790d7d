package engine

import "strings"

type Category string

const (
	CategoryHealth        Category = "Health"
	CategoryWealth        Category = "Wealth"
	CategoryRelationships Category = "Relationships"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryWealth, CategoryRelationships:
		return true
	default:
		return false
	}
}

// ParseCategory parses user input to a Category, case-insensitively.
// Unrecognized input passes through and fails the IsValid check at the
// validation site.
func ParseCategory(input string) Category {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "health":
		return CategoryHealth
	case "wealth":
		return CategoryWealth
	case "relationships", "relationship":
		return CategoryRelationships
	default:
		return Category(strings.TrimSpace(input))
	}
}

type QuestType string

const (
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
	QuestOneoff QuestType = "oneoff"
)

func (t QuestType) IsValid() bool {
	switch t {
	case QuestDaily, QuestWeekly, QuestOneoff:
		return true
	default:
		return false
	}
}

func ParseQuestType(input string) QuestType {
	return QuestType(strings.ToLower(strings.TrimSpace(input)))
}

// Quest XP is frozen at creation and must stay inside this band.
const (
	MinQuestXP = 5
	MaxQuestXP = 200
)

type RedemptionStatus string

const (
	RedemptionPending    RedemptionStatus = "pending"
	RedemptionProcessing RedemptionStatus = "processing"
	RedemptionCompleted  RedemptionStatus = "completed"
	RedemptionRejected   RedemptionStatus = "rejected"
)

func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionPending, RedemptionProcessing, RedemptionCompleted, RedemptionRejected:
		return true
	default:
		return false
	}
}
