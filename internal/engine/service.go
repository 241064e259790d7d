// Package engine owns the progression and accounting core: the level
// curve, the streak evaluator, the per-day quest ledger, the weekly
// leaderboard, and the export/import of a user's whole game state.
//
// All mutation flows through the Service; callers (CLI, TUI, HTTP)
// only read results. Persistence is the sqlite repo layer underneath;
// its failures pass through wrapped and are never retried here.
package engine

import (
	"context"
	"database/sql"

	"levelup/internal/clock"
	"levelup/internal/storage"
)

// Redemption policy defaults: 100 coins convert to one unit of
// currency, and 500 coins is the smallest redeemable amount.
const (
	DefaultConversionRate = 100
	DefaultMinRedemption  = 500
)

type Service struct {
	db          *sql.DB
	clock       *clock.Clock
	userID      string
	profiles    *storage.ProfileRepo
	stats       *storage.StatsRepo
	quests      *storage.QuestRepo
	completions *storage.CompletionRepo
	journal     *storage.JournalRepo
	timers      *storage.TimerRepo
	redemptions *storage.RedemptionRepo

	conversionRate int
	minRedemption  int
}

func NewService(db *sql.DB, clk *clock.Clock) *Service {
	return &Service{
		db:             db,
		clock:          clk,
		userID:         storage.LocalUserID,
		profiles:       storage.NewProfileRepo(db),
		stats:          storage.NewStatsRepo(db),
		quests:         storage.NewQuestRepo(db),
		completions:    storage.NewCompletionRepo(db),
		journal:        storage.NewJournalRepo(db),
		timers:         storage.NewTimerRepo(db),
		redemptions:    storage.NewRedemptionRepo(db),
		conversionRate: DefaultConversionRate,
		minRedemption:  DefaultMinRedemption,
	}
}

// SetUser switches the user the service operates on. The default is
// the single local CLI user.
func (s *Service) SetUser(userID string) { s.userID = userID }

func (s *Service) UserID() string { return s.userID }

// SetRedemptionPolicy overrides the coin conversion rate and minimum
// redeemable amount, normally from config.
func (s *Service) SetRedemptionPolicy(conversionRate, minRedemption int) {
	if conversionRate > 0 {
		s.conversionRate = conversionRate
	}
	if minRedemption > 0 {
		s.minRedemption = minRedemption
	}
}

func (s *Service) Clock() *clock.Clock { return s.clock }

func (s *Service) ProfileRepo() *storage.ProfileRepo       { return s.profiles }
func (s *Service) QuestRepo() *storage.QuestRepo           { return s.quests }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) JournalRepo() *storage.JournalRepo       { return s.journal }
func (s *Service) TimerRepo() *storage.TimerRepo           { return s.timers }
func (s *Service) RedemptionRepo() *storage.RedemptionRepo { return s.redemptions }

// getStats loads (or creates) the user's totals, re-derives the stored
// level from XP, and applies any pending streak rollover. Every ledger
// operation observes "today" through this path, so the rollover runs
// at most once per calendar date.
func (s *Service) getStats(ctx context.Context) (*storage.Stats, error) {
	if _, err := s.profiles.GetOrCreate(ctx, s.userID); err != nil {
		return nil, err
	}
	st, err := s.stats.GetOrCreate(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	dirty := false
	if computed := LevelOf(st.XP).Level; st.Level != computed {
		st.Level = computed
		dirty = true
	}

	today := s.clock.Today()
	if st.LastActive != today {
		hadLast := false
		if st.LastActive != "" {
			n, err := s.completions.CountOnDate(ctx, s.userID, st.LastActive)
			if err != nil {
				return nil, err
			}
			hadLast = n > 0
		}
		next := AdvanceStreak(StreakState{
			LastActive: st.LastActive,
			Current:    st.CurrentStreak,
			Best:       st.BestStreak,
		}, today, func(string) bool { return hadLast })
		st.CurrentStreak = next.Current
		st.BestStreak = next.Best
		st.LastActive = next.LastActive
		dirty = true
	}

	if dirty {
		if err := s.stats.Update(ctx, st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Snapshot is the read surface handed to the shells: totals plus
// today's log.
type Snapshot struct {
	Profile        *storage.Profile
	Stats          *storage.Stats
	Level          LevelInfo
	Today          string
	TodayCompleted []string
	TodayJournal   *storage.JournalEntry
	Quests         []storage.Quest
}

func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	st, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	quests, err := s.quests.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	completed, err := s.completions.ListOnDate(ctx, s.userID, today)
	if err != nil {
		return nil, err
	}
	entry, err := s.journal.Get(ctx, s.userID, today)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Profile:        profile,
		Stats:          st,
		Level:          LevelOf(st.XP),
		Today:          today,
		TodayCompleted: completed,
		TodayJournal:   entry,
		Quests:         quests,
	}, nil
}
