package storage

import "time"

type Profile struct {
	UserID      string
	DisplayName string
	Theme       string
	AvatarURL   string
}

// Stats is the running ledger total per user. Level is stored for
// display but always derived from XP before writes. LastActive is a
// civil date (YYYY-MM-DD) or empty when the user was never observed.
type Stats struct {
	UserID        string
	XP            int
	Coins         int
	Level         int
	CurrentStreak int
	BestStreak    int
	Vitality      int
	Mana          int
	LastActive    string
}

type Quest struct {
	ID        string
	UserID    string
	Title     string
	Category  string
	XP        int
	Type      string
	CreatedAt time.Time
}

type Completion struct {
	UserID       string
	QuestID      string
	CompletedAt  string // civil date
	XPAwarded    int
	CoinsAwarded int
}

type JournalEntry struct {
	UserID      string
	Date        string
	Notes       string
	Affirmation string
}

type TimerSession struct {
	ID              string
	UserID          string
	QuestID         string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int
}

type Redemption struct {
	ID            string
	UserID        string
	CoinsRedeemed int
	Amount        int
	Status        string
	CreatedAt     time.Time
}

// LeaderboardRow is one user's aggregate for the current civil week.
type LeaderboardRow struct {
	UserID      string
	DisplayName string
	AvatarURL   string
	WeeklyXP    int
}
