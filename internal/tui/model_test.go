package tui

import (
	"testing"

	"levelup/internal/engine"
	"levelup/internal/storage"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		value, total, width int
		want                string
	}{
		{0, 100, 10, "[----------]"},
		{50, 100, 10, "[#####-----]"},
		{100, 100, 10, "[##########]"},
		{150, 100, 10, "[##########]"}, // clamp above total
		{-5, 100, 10, "[----------]"},  // clamp below zero
		{1, 0, 5, "[#####]"},           // zero total treated as full
	}
	for _, tc := range cases {
		if got := progressBar(tc.value, tc.total, tc.width); got != tc.want {
			t.Errorf("progressBar(%d, %d, %d) = %q, want %q", tc.value, tc.total, tc.width, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Fatalf("padRight = %q, want %q", got, "ab   ")
	}
	if got := padRight("abcdef", 4); got != "abcd" {
		t.Fatalf("padRight truncation = %q, want %q", got, "abcd")
	}
	if got := padRight("ab", 0); got != "ab" {
		t.Fatalf("padRight zero width = %q, want %q", got, "ab")
	}
}

func TestQuestRowsGroupByCategoryOrder(t *testing.T) {
	m := boardModel{snap: &engine.Snapshot{
		Quests: []storage.Quest{
			{ID: "r1", Title: "call mom", Category: "Relationships"},
			{ID: "h1", Title: "run", Category: "Health"},
			{ID: "w1", Title: "budget", Category: "Wealth"},
			{ID: "h2", Title: "water", Category: "Health"},
		},
		TodayCompleted: []string{"w1"},
	}}

	rows := m.questRows()
	wantOrder := []string{"h1", "h2", "w1", "r1"}
	for i, id := range wantOrder {
		if rows[i].id != id {
			t.Fatalf("row order = %v, want Health, Wealth, Relationships keeping insertion order", rows)
		}
	}
	for _, row := range rows {
		if row.done != (row.id == "w1") {
			t.Fatalf("done flag wrong for %s", row.id)
		}
	}
}

func TestQuestRowsNilSnapshot(t *testing.T) {
	var m boardModel
	if rows := m.questRows(); rows != nil {
		t.Fatalf("rows = %v, want nil before first load", rows)
	}
}
