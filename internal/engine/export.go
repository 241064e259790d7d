package engine

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"levelup/internal/clock"
	"levelup/internal/storage"
)

// ExportDoc is the portable game-state document. The shape is stable:
// import accepts exactly what export produces.
type ExportDoc struct {
	Profile    ExportProfile        `json:"profile"`
	Quests     []ExportQuest        `json:"quests"`
	Log        map[string]ExportDay `json:"log"`
	LastActive string               `json:"lastActive"`
}

type ExportProfile struct {
	XP         int    `json:"xp"`
	Coins      int    `json:"coins"`
	Level      int    `json:"level"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"bestStreak"`
	Vitality   int    `json:"vitality"`
	Mana       int    `json:"mana"`
	Theme      string `json:"theme"`
}

type ExportQuest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	XP        int    `json:"xp"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type ExportDay struct {
	Completed   []string `json:"completed"`
	Notes       string   `json:"notes"`
	Affirmation string   `json:"affirmation"`
}

// Export serializes the user's whole observable state.
func (s *Service) Export(ctx context.Context) (*ExportDoc, error) {
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
	completions, err := s.completions.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journal.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	doc := &ExportDoc{
		Profile: ExportProfile{
			XP:         st.XP,
			Coins:      st.Coins,
			Level:      st.Level,
			Streak:     st.CurrentStreak,
			BestStreak: st.BestStreak,
			Vitality:   st.Vitality,
			Mana:       st.Mana,
			Theme:      profile.Theme,
		},
		Log:        map[string]ExportDay{},
		LastActive: st.LastActive,
	}
	for _, q := range quests {
		eq := ExportQuest{ID: q.ID, Title: q.Title, Category: q.Category, XP: q.XP, Type: q.Type}
		if !q.CreatedAt.IsZero() {
			eq.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339)
		}
		doc.Quests = append(doc.Quests, eq)
	}
	for _, c := range completions {
		day := doc.Log[c.CompletedAt]
		day.Completed = append(day.Completed, c.QuestID)
		doc.Log[c.CompletedAt] = day
	}
	for _, e := range entries {
		day := doc.Log[e.Date]
		day.Notes = e.Notes
		day.Affirmation = e.Affirmation
		doc.Log[e.Date] = day
	}
	return doc, nil
}

// Import replaces the user's state with a previously exported
// document. The document is validated in full first; the write is one
// transaction, so a failed import leaves the prior state untouched.
// Any malformed document fails with ErrImportInvalid.
func (s *Service) Import(ctx context.Context, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc ExportDoc
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrImportInvalid)
	}
	if err := validateImport(&doc); err != nil {
		return err
	}

	coinsByQuest := map[string]int{}
	xpByQuest := map[string]int{}
	for _, q := range doc.Quests {
		xpByQuest[q.ID] = q.XP
		coinsByQuest[q.ID] = CoinsFor(q.XP)
	}

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, table := range []string{"quests", "completions", "journal"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, s.userID); err != nil {
				return fmt.Errorf("import clear %s: %w", table, err)
			}
		}

		for i, q := range doc.Quests {
			createdAt, parseErr := time.Parse(time.RFC3339, q.CreatedAt)
			if q.CreatedAt == "" || parseErr != nil {
				// Synthesize increasing instants so ListByUser keeps
				// the document's quest order.
				createdAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO quests (id, user_id, title, category, xp, type, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, q.ID, s.userID, q.Title, q.Category, q.XP, q.Type, createdAt); err != nil {
				return fmt.Errorf("import quest: %w", err)
			}
		}

		dates := make([]string, 0, len(doc.Log))
		for d := range doc.Log {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			day := doc.Log[d]
			for _, qid := range day.Completed {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO completions (user_id, quest_id, completed_at, xp_awarded, coins_awarded)
					VALUES (?, ?, ?, ?, ?)
				`, s.userID, qid, d, xpByQuest[qid], coinsByQuest[qid]); err != nil {
					return fmt.Errorf("import completion: %w", err)
				}
			}
			if day.Notes != "" || day.Affirmation != "" {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO journal (user_id, date, notes, affirmation) VALUES (?, ?, ?, ?)
					ON CONFLICT(user_id, date) DO UPDATE SET notes = excluded.notes, affirmation = excluded.affirmation
				`, s.userID, d, day.Notes, day.Affirmation); err != nil {
					return fmt.Errorf("import journal: %w", err)
				}
			}
		}

		var lastActive interface{}
		if doc.LastActive != "" {
			lastActive = doc.LastActive
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stats (user_id, xp, coins, level, current_streak, best_streak, vitality, mana, last_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				xp = excluded.xp, coins = excluded.coins, level = excluded.level,
				current_streak = excluded.current_streak, best_streak = excluded.best_streak,
				vitality = excluded.vitality, mana = excluded.mana, last_active = excluded.last_active
		`, s.userID, doc.Profile.XP, doc.Profile.Coins, LevelOf(doc.Profile.XP).Level,
			doc.Profile.Streak, doc.Profile.BestStreak, doc.Profile.Vitality, doc.Profile.Mana, lastActive); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (user_id, theme) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET theme = excluded.theme
		`, s.userID, doc.Profile.Theme); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
		return nil
	})
}

func validateImport(doc *ExportDoc) error {
	fail := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrImportInvalid, fmt.Sprintf(format, args...))
	}

	p := doc.Profile
	if p.XP < 0 || p.Coins < 0 || p.Streak < 0 || p.BestStreak < p.Streak {
		return fail("profile totals out of range")
	}
	if p.Vitality < 0 || p.Vitality > 100 || p.Mana < 0 || p.Mana > 100 {
		return fail("vitality/mana out of range")
	}
	if p.Level != LevelOf(p.XP).Level {
		return fail("level %d inconsistent with xp %d", p.Level, p.XP)
	}
	if p.Theme != "light" && p.Theme != "dark" {
		return fail("unknown theme %q", p.Theme)
	}
	if doc.LastActive != "" && !clock.IsDate(doc.LastActive) {
		return fail("lastActive %q is not a date", doc.LastActive)
	}

	ids := map[string]bool{}
	for _, q := range doc.Quests {
		if q.ID == "" || q.Title == "" {
			return fail("quest with empty id or title")
		}
		if ids[q.ID] {
			return fail("duplicate quest id %s", q.ID)
		}
		ids[q.ID] = true
		if !Category(q.Category).IsValid() {
			return fail("quest %s: unknown category %q", q.ID, q.Category)
		}
		if !QuestType(q.Type).IsValid() {
			return fail("quest %s: unknown type %q", q.ID, q.Type)
		}
		if q.XP < MinQuestXP || q.XP > MaxQuestXP {
			return fail("quest %s: xp %d out of range", q.ID, q.XP)
		}
	}

	for date, day := range doc.Log {
		if !clock.IsDate(date) {
			return fail("log key %q is not a date", date)
		}
		seen := map[string]bool{}
		for _, qid := range day.Completed {
			if !ids[qid] {
				return fail("day %s references unknown quest %s", date, qid)
			}
			if seen[qid] {
				return fail("day %s lists quest %s twice", date, qid)
			}
			seen[qid] = true
		}
	}
	return nil
}
