package engine

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"levelup/internal/clock"
	"levelup/internal/storage"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "levelup.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// serviceOn pins the service's clock to noon UTC of the given civil
// date; successive calls against the same db simulate day rollovers.
func serviceOn(t *testing.T, db *sql.DB, date string) *Service {
	t.Helper()
	at, err := clock.ParseDate(date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	clk, err := clock.NewFixed("UTC", at.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("fixed clock: %v", err)
	}
	return NewService(db, clk)
}

func mustAddQuest(t *testing.T, svc *Service, title string, xp int) *storage.Quest {
	t.Helper()
	q, err := svc.AddQuest(context.Background(), AddQuestInput{
		Title:    title,
		Category: CategoryHealth,
		XP:       xp,
		Type:     QuestDaily,
	})
	if err != nil {
		t.Fatalf("add quest %q: %v", title, err)
	}
	return q
}

func mustComplete(t *testing.T, svc *Service, questID string) *CompleteResult {
	t.Helper()
	res, err := svc.Complete(context.Background(), questID)
	if err != nil {
		t.Fatalf("complete %s: %v", questID, err)
	}
	return res
}

func TestCompleteFirstOfDay(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Move 20 minutes", 20)

	res := mustComplete(t, svc, q.ID)
	if res.XPDelta != 20 || res.CoinsDelta != 10 {
		t.Fatalf("deltas = %d xp, %d coins, want 20 xp, 10 coins", res.XPDelta, res.CoinsDelta)
	}
	if res.LevelAfter != 1 || res.LevelUp {
		t.Fatalf("level = %d (up=%v), want 1 without level-up", res.LevelAfter, res.LevelUp)
	}
	if res.Streak != 1 || res.BestStreak != 1 {
		t.Fatalf("streak = %d/%d, want 1/1", res.Streak, res.BestStreak)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.XP != 20 || snap.Stats.Coins != 10 {
		t.Fatalf("totals = %d xp, %d coins, want 20, 10", snap.Stats.XP, snap.Stats.Coins)
	}
	if snap.Level.Progress != 0.20 {
		t.Fatalf("progress = %v, want 0.20", snap.Level.Progress)
	}
	if snap.Stats.LastActive != "2025-01-01" {
		t.Fatalf("last active = %q, want 2025-01-01", snap.Stats.LastActive)
	}
	if len(snap.TodayCompleted) != 1 || snap.TodayCompleted[0] != q.ID {
		t.Fatalf("today's completed set = %v, want [%s]", snap.TodayCompleted, q.ID)
	}
}

func TestCompleteCrossesLevel(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")

	st, err := svc.stats.GetOrCreate(ctx, svc.userID)
	if err != nil {
		t.Fatal(err)
	}
	st.XP = 99
	if err := svc.stats.Update(ctx, st); err != nil {
		t.Fatal(err)
	}

	q := mustAddQuest(t, svc, "8 glasses of water", 5)
	res := mustComplete(t, svc, q.ID)
	if !res.LevelUp || res.LevelBefore != 1 || res.LevelAfter != 2 {
		t.Fatalf("level transition %d → %d (up=%v), want 1 → 2", res.LevelBefore, res.LevelAfter, res.LevelUp)
	}
	if res.CoinsDelta != 3 {
		t.Fatalf("coins delta = %d, want 3", res.CoinsDelta)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.XP != 104 || snap.Level.Level != 2 {
		t.Fatalf("xp %d at level %d, want 104 at level 2", snap.Stats.XP, snap.Level.Level)
	}
	if snap.Level.CurrentLevelXP != 100 || snap.Level.NextLevelXP != 400 {
		t.Fatalf("level band = [%d, %d), want [100, 400)", snap.Level.CurrentLevelXP, snap.Level.NextLevelXP)
	}
}

func TestCompleteIsOncePerDay(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Track spending today", 15)

	mustComplete(t, svc, q.ID)
	if _, err := svc.Complete(ctx, q.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion err = %v, want ErrAlreadyCompleted", err)
	}

	st, err := svc.getStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.XP != 15 || st.Coins != 8 {
		t.Fatalf("totals changed on rejected completion: %d xp, %d coins", st.XP, st.Coins)
	}
}

func TestCompleteUnknownQuest(t *testing.T) {
	svc := serviceOn(t, testDB(t), "2025-01-01")
	if _, err := svc.Complete(context.Background(), "no-such-id"); !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("err = %v, want ErrQuestNotFound", err)
	}
}

func TestUncompleteReversesExactly(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "One deep conversation", 25)

	done := mustComplete(t, svc, q.ID)
	undone, err := svc.Uncomplete(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if undone.XPDelta != -done.XPDelta || undone.CoinsDelta != -done.CoinsDelta {
		t.Fatalf("undo deltas %d/%d do not mirror %d/%d",
			undone.XPDelta, undone.CoinsDelta, done.XPDelta, done.CoinsDelta)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.XP != 0 || snap.Stats.Coins != 0 {
		t.Fatalf("totals = %d xp, %d coins after undo, want 0, 0", snap.Stats.XP, snap.Stats.Coins)
	}
	if len(snap.TodayCompleted) != 0 {
		t.Fatalf("today's completed set = %v, want empty", snap.TodayCompleted)
	}
	// The streak increment the completion caused stays.
	if snap.Stats.CurrentStreak != 1 {
		t.Fatalf("streak = %d after undo, want 1", snap.Stats.CurrentStreak)
	}

	if _, err := svc.Uncomplete(ctx, q.ID); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("second undo err = %v, want ErrNotCompleted", err)
	}
}

func TestUncompleteNeverUnderflows(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Learn a skill 30 min", 25)
	mustComplete(t, svc, q.ID)

	// Spend the coins before undoing the completion that earned them.
	if _, err := svc.AdjustCoins(ctx, -13); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Uncomplete(ctx, q.ID); err != nil {
		t.Fatal(err)
	}
	st, err := svc.getStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Coins != 0 {
		t.Fatalf("coins = %d, want clamp at 0", st.Coins)
	}
}

func TestStreakGrowsOnConsecutiveDays(t *testing.T) {
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Sleep 7+ hours", 25)

	for i, date := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		day := serviceOn(t, db, date)
		res := mustComplete(t, day, q.ID)
		if res.Streak != i+1 {
			t.Fatalf("streak on %s = %d, want %d", date, res.Streak, i+1)
		}
	}

	// The fourth consecutive productive day continues the run.
	day4 := serviceOn(t, db, "2025-01-04")
	res := mustComplete(t, day4, q.ID)
	if res.Streak != 4 || res.BestStreak != 4 {
		t.Fatalf("streak = %d/%d, want 4/4", res.Streak, res.BestStreak)
	}
}

func TestStreakResetsAfterSkippedDay(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Build income 30 min", 25)

	for _, date := range []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"} {
		mustComplete(t, serviceOn(t, db, date), q.ID)
	}

	// Jan 6 passes with no activity at all; the reset happens lazily on
	// the first read of Jan 7.
	day7 := serviceOn(t, db, "2025-01-07")
	snap, err := day7.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.CurrentStreak != 0 {
		t.Fatalf("streak after gap = %d, want 0", snap.Stats.CurrentStreak)
	}
	if snap.Stats.BestStreak != 5 {
		t.Fatalf("best streak = %d, want 5 preserved", snap.Stats.BestStreak)
	}
	if snap.Stats.LastActive != "2025-01-07" {
		t.Fatalf("last active = %q, want 2025-01-07", snap.Stats.LastActive)
	}

	// Completing after the reset starts a fresh run of one.
	res := mustComplete(t, day7, q.ID)
	if res.Streak != 1 || res.BestStreak != 5 {
		t.Fatalf("streak = %d/%d after restart, want 1/5", res.Streak, res.BestStreak)
	}
}

func TestIdleDayBreaksStreakWithoutCompletion(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Move 20 minutes", 20)
	mustComplete(t, svc, q.ID)

	// Jan 2 the user opens the app but completes nothing.
	day2 := serviceOn(t, db, "2025-01-02")
	snap, err := day2.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.CurrentStreak != 2 {
		t.Fatalf("streak on day 2 = %d, want 2 (yesterday was productive)", snap.Stats.CurrentStreak)
	}

	// Jan 3: yesterday had no completion, so the run is over even
	// though the days are consecutive.
	day3 := serviceOn(t, db, "2025-01-03")
	snap, err = day3.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Stats.CurrentStreak != 0 {
		t.Fatalf("streak on day 3 = %d, want 0", snap.Stats.CurrentStreak)
	}
}

func TestDeleteQuestReversesHistory(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Send 1 gratitude msg", 20)
	keep := mustAddQuest(t, svc, "Kindness: no gossip", 20)

	mustComplete(t, svc, q.ID)
	mustComplete(t, svc, keep.ID)
	mustComplete(t, serviceOn(t, db, "2025-01-02"), q.ID)

	day2 := serviceOn(t, db, "2025-01-02")
	res, err := day2.DeleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Completions != 2 || res.XPRemoved != 40 || res.CoinsLost != 20 {
		t.Fatalf("delete reversed %d completions, %d xp, %d coins; want 2, 40, 20",
			res.Completions, res.XPRemoved, res.CoinsLost)
	}

	snap, err := day2.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Only the surviving quest's award remains.
	if snap.Stats.XP != 20 || snap.Stats.Coins != 10 {
		t.Fatalf("totals = %d xp, %d coins, want 20, 10", snap.Stats.XP, snap.Stats.Coins)
	}
	for _, id := range snap.TodayCompleted {
		if id == q.ID {
			t.Fatal("deleted quest still in today's completed set")
		}
	}
	if len(snap.Quests) != 1 || snap.Quests[0].ID != keep.ID {
		t.Fatalf("quests = %v, want only the kept quest", snap.Quests)
	}

	if _, err := day2.DeleteQuest(ctx, q.ID); !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("deleting twice err = %v, want ErrQuestNotFound", err)
	}
}

func TestAddQuestValidation(t *testing.T) {
	ctx := context.Background()
	svc := serviceOn(t, testDB(t), "2025-01-01")

	cases := []AddQuestInput{
		{Title: "   ", Category: CategoryHealth, XP: 20, Type: QuestDaily},
		{Title: "x", Category: Category("Chores"), XP: 20, Type: QuestDaily},
		{Title: "x", Category: CategoryHealth, XP: 4, Type: QuestDaily},
		{Title: "x", Category: CategoryHealth, XP: 201, Type: QuestDaily},
		{Title: "x", Category: CategoryHealth, XP: 20, Type: QuestType("hourly")},
	}
	for i, in := range cases {
		if _, err := svc.AddQuest(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}

	// Boundary values are accepted.
	mustAddQuest(t, svc, "min xp", MinQuestXP)
	mustAddQuest(t, svc, "max xp", MaxQuestXP)
}

func TestJournalUpsert(t *testing.T) {
	ctx := context.Background()
	svc := serviceOn(t, testDB(t), "2025-01-01")

	if err := svc.SaveJournal(ctx, "", "first draft", "I build daily"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SaveJournal(ctx, "2025-01-01", "final notes", "I build daily"); err != nil {
		t.Fatal(err)
	}

	view, err := svc.Day(ctx, "2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if view.Notes != "final notes" || view.Affirmation != "I build daily" {
		t.Fatalf("day = %q / %q, want the rewritten entry", view.Notes, view.Affirmation)
	}

	if err := svc.SaveJournal(ctx, "01-01-2025", "x", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date err = %v, want ErrInvalidInput", err)
	}
}

func TestHistoryMergesCompletionsAndJournal(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Move 20 minutes", 20)
	mustComplete(t, svc, q.ID)

	day2 := serviceOn(t, db, "2025-01-02")
	if err := day2.SaveJournal(ctx, "", "journal only", ""); err != nil {
		t.Fatal(err)
	}

	days, err := day2.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("history has %d days, want 2", len(days))
	}
	// Newest first.
	if days[0].Date != "2025-01-02" || days[1].Date != "2025-01-01" {
		t.Fatalf("history order = %s, %s; want 2025-01-02 then 2025-01-01", days[0].Date, days[1].Date)
	}
	if days[0].Notes != "journal only" || len(days[0].Completed) != 0 {
		t.Fatalf("day 2 = %+v, want journal entry with no completions", days[0])
	}
	if len(days[1].Completed) != 1 || days[1].Titles[q.ID] != "Move 20 minutes" {
		t.Fatalf("day 1 = %+v, want one titled completion", days[1])
	}
}

func TestTimerLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")
	q := mustAddQuest(t, svc, "Learn a skill 30 min", 25)

	if _, err := svc.StopTimer(ctx); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("stop without session err = %v, want ErrInvalidInput", err)
	}

	if _, err := svc.StartTimer(ctx, q.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartTimer(ctx, q.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("second start err = %v, want ErrInvalidInput", err)
	}

	// Stop 25 minutes later.
	at, _ := clock.ParseDate("2025-01-01")
	later, err := clock.NewFixed("UTC", at.Add(12*time.Hour+25*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	sess, err := NewService(db, later).StopTimer(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sess.DurationSeconds != 1500 {
		t.Fatalf("duration = %ds, want 1500", sess.DurationSeconds)
	}
	if sess.EndedAt == nil {
		t.Fatal("ended_at not set")
	}

	history, err := svc.TimerHistory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].QuestID != q.ID {
		t.Fatalf("history = %+v, want the one finished session", history)
	}
}

func TestTimerUnknownQuest(t *testing.T) {
	svc := serviceOn(t, testDB(t), "2025-01-01")
	if _, err := svc.StartTimer(context.Background(), "ghost"); !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("err = %v, want ErrQuestNotFound", err)
	}
}

func TestRedeemValidation(t *testing.T) {
	ctx := context.Background()
	svc := serviceOn(t, testDB(t), "2025-01-01")
	if _, err := svc.AdjustCoins(ctx, 1000); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Redeem(ctx, 100); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("below minimum err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Redeem(ctx, 550); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("non-multiple err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Redeem(ctx, 1500); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("over balance err = %v, want ErrInsufficientCoins", err)
	}

	red, err := svc.Redeem(ctx, 500)
	if err != nil {
		t.Fatal(err)
	}
	if red.CoinsRedeemed != 500 || red.Amount != 5 {
		t.Fatalf("redeemed %d coins for %d, want 500 for 5", red.CoinsRedeemed, red.Amount)
	}
	if red.Status != string(RedemptionPending) {
		t.Fatalf("status = %q, want pending", red.Status)
	}

	st, err := svc.getStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Coins != 500 {
		t.Fatalf("balance = %d, want 500", st.Coins)
	}

	history, err := svc.Redemptions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("redemption history has %d rows, want 1", len(history))
	}
}

func TestRedeemPolicyOverride(t *testing.T) {
	ctx := context.Background()
	svc := serviceOn(t, testDB(t), "2025-01-01")
	svc.SetRedemptionPolicy(10, 50)
	if _, err := svc.AdjustCoins(ctx, 60); err != nil {
		t.Fatal(err)
	}
	red, err := svc.Redeem(ctx, 50)
	if err != nil {
		t.Fatal(err)
	}
	if red.Amount != 5 {
		t.Fatalf("amount = %d at rate 10, want 5", red.Amount)
	}
}

func TestBootstrapSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := serviceOn(t, db, "2025-01-01")

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}

	quests, err := svc.quests.ListByUser(ctx, svc.userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(quests) != len(DefaultQuests()) {
		t.Fatalf("seeded %d quests, want %d exactly once", len(quests), len(DefaultQuests()))
	}
}

func TestWeeklyLeaderboard(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	// Three users all active on Wednesday 2025-01-01 (week Dec 30..Jan 5).
	weekly := map[string]int{"alice": 60, "bob": 40, "carol": 20}
	for _, user := range []string{"alice", "bob", "carol"} {
		svc := serviceOn(t, db, "2025-01-01")
		svc.SetUser(user)
		q := mustAddQuest(t, svc, "grind", weekly[user])
		mustComplete(t, svc, q.ID)
	}

	svc := serviceOn(t, db, "2025-01-01")
	svc.SetUser("bob")
	entries, me, err := svc.WeeklyLeaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("board has %d entries, want 3", len(entries))
	}
	if entries[0].UserID != "alice" || entries[0].Rank != 1 {
		t.Fatalf("top entry = %+v, want alice at rank 1", entries[0])
	}
	if me.UserID != "bob" || me.Rank != 2 || me.WeeklyXP != 40 {
		t.Fatalf("me = %+v, want bob at rank 2 with 40 xp", me)
	}

	// A user with no completions this week sits one past the board.
	ghost := serviceOn(t, db, "2025-01-01")
	ghost.SetUser("ghost")
	entries, me, err = ghost.WeeklyLeaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("board has %d entries, want 3 (ghost excluded)", len(entries))
	}
	if me.Rank != 4 || me.WeeklyXP != 0 || me.Tier != TierE {
		t.Fatalf("absent user = %+v, want rank 4, 0 xp, tier E", me)
	}
}

func TestWeeklyLeaderboardExcludesLastWeek(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	svc := serviceOn(t, db, "2024-12-29") // Sunday of the previous week
	q := mustAddQuest(t, svc, "old grind", 50)
	mustComplete(t, svc, q.ID)

	now := serviceOn(t, db, "2025-01-01")
	entries, _, err := now.WeeklyLeaderboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("board = %+v, want empty (activity was last week)", entries)
	}
}
