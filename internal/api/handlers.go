package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"levelup/internal/engine"
)

// handleLeaderboard returns the current civil week's ranking. An
// optional ?me=<user> locates that user even when they are off the
// board.
// GET /api/leaderboard
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	svc := s.service(r.URL.Query().Get("me"))
	entries, me, err := svc.WeeklyLeaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []engine.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
		"me":      me,
	})
}

// handleStats returns a user's ledger totals and level placement.
// GET /api/stats/{user}
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	svc := s.service(userID)
	snap, err := svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	st := snap.Stats
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":          st.UserID,
		"xp":               st.XP,
		"coins":            st.Coins,
		"level":            snap.Level.Level,
		"current_level_xp": snap.Level.CurrentLevelXP,
		"next_level_xp":    snap.Level.NextLevelXP,
		"progress":         snap.Level.Progress,
		"current_streak":   st.CurrentStreak,
		"best_streak":      st.BestStreak,
		"vitality":         st.Vitality,
		"mana":             st.Mana,
		"last_active":      st.LastActive,
		"today":            snap.Today,
		"today_completed":  len(snap.TodayCompleted),
	})
}

// handleQuests returns a user's quest definitions.
// GET /api/quests/{user}
func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	svc := s.service(userID)
	quests, err := svc.QuestRepo().ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type questResponse struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		XP       int    `json:"xp"`
		Type     string `json:"type"`
	}
	out := make([]questResponse, 0, len(quests))
	for _, q := range quests {
		out = append(out, questResponse{ID: q.ID, Title: q.Title, Category: q.Category, XP: q.XP, Type: q.Type})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quests": out,
		"total":  len(out),
	})
}
