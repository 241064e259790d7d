package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"levelup/internal/clock"
	"levelup/internal/engine"
	"levelup/internal/storage"
)

func testHandler(t *testing.T) (http.Handler, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	at, err := clock.ParseDate("2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	clk, err := clock.NewFixed("UTC", at.Add(12*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	return NewServer(db, clk, nil).Handler(), engine.NewService(db, clk)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	h, _ := testHandler(t)
	rec := get(t, h, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("body = %v, want status ok", body)
	}
}

func TestStatsEndpoint(t *testing.T) {
	h, svc := testHandler(t)
	ctx := context.Background()
	svc.SetUser("alice")
	q, err := svc.AddQuest(ctx, engine.AddQuestInput{
		Title: "Move 20 minutes", Category: engine.CategoryHealth, XP: 20, Type: engine.QuestDaily,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, q.ID); err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/api/stats/alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		UserID         string  `json:"user_id"`
		XP             int     `json:"xp"`
		Coins          int     `json:"coins"`
		Level          int     `json:"level"`
		Progress       float64 `json:"progress"`
		CurrentStreak  int     `json:"current_streak"`
		Today          string  `json:"today"`
		TodayCompleted int     `json:"today_completed"`
	}
	decode(t, rec, &body)
	if body.UserID != "alice" || body.XP != 20 || body.Coins != 10 {
		t.Fatalf("body = %+v, want alice with 20 xp, 10 coins", body)
	}
	if body.Level != 1 || body.Progress != 0.20 {
		t.Fatalf("level %d progress %v, want level 1 at 0.20", body.Level, body.Progress)
	}
	if body.CurrentStreak != 1 || body.Today != "2025-01-01" || body.TodayCompleted != 1 {
		t.Fatalf("body = %+v, want streak 1 with one completion today", body)
	}
}

func TestQuestsEndpoint(t *testing.T) {
	h, svc := testHandler(t)
	svc.SetUser("alice")
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/api/quests/alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Quests []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"quests"`
		Total int `json:"total"`
	}
	decode(t, rec, &body)
	if body.Total != len(engine.DefaultQuests()) || len(body.Quests) != body.Total {
		t.Fatalf("total = %d with %d quests, want the seeded set", body.Total, len(body.Quests))
	}

	// A user with no quests gets an empty list, not null.
	rec = get(t, h, "/api/quests/nobody")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var raw map[string]json.RawMessage
	decode(t, rec, &raw)
	if string(raw["quests"]) != "[]" {
		t.Fatalf("quests = %s, want []", raw["quests"])
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	h, svc := testHandler(t)
	ctx := context.Background()

	for user, xp := range map[string]int{"alice": 40, "bob": 20} {
		svc.SetUser(user)
		q, err := svc.AddQuest(ctx, engine.AddQuestInput{
			Title: "grind", Category: engine.CategoryWealth, XP: xp, Type: engine.QuestDaily,
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Complete(ctx, q.ID); err != nil {
			t.Fatal(err)
		}
	}

	rec := get(t, h, "/api/leaderboard?me=bob")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Entries []engine.LeaderboardEntry `json:"entries"`
		Total   int                       `json:"total"`
		Me      engine.LeaderboardEntry   `json:"me"`
	}
	decode(t, rec, &body)
	if body.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Total)
	}
	if body.Entries[0].UserID != "alice" || body.Entries[0].Rank != 1 {
		t.Fatalf("top = %+v, want alice at rank 1", body.Entries[0])
	}
	if body.Me.UserID != "bob" || body.Me.Rank != 2 {
		t.Fatalf("me = %+v, want bob at rank 2", body.Me)
	}
}

func TestLeaderboardEmptyBoard(t *testing.T) {
	h, _ := testHandler(t)
	rec := get(t, h, "/api/leaderboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var raw map[string]json.RawMessage
	decode(t, rec, &raw)
	if string(raw["entries"]) != "[]" {
		t.Fatalf("entries = %s, want []", raw["entries"])
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := testHandler(t)
	if rec := get(t, h, "/api/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	h, _ := testHandler(t)
	get(t, h, "/health")
	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
