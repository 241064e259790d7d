package engine

import (
	"context"
	"sort"

	"levelup/internal/clock"
	"levelup/internal/storage"
)

// SaveJournal upserts the notes and affirmation for a date without
// touching that day's completions. An empty date means today.
func (s *Service) SaveJournal(ctx context.Context, date, notes, affirmation string) error {
	if _, err := s.getStats(ctx); err != nil {
		return err
	}
	if date == "" {
		date = s.clock.Today()
	}
	if !clock.IsDate(date) {
		return InvalidInputError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return s.journal.Upsert(ctx, storage.JournalEntry{
		UserID:      s.userID,
		Date:        date,
		Notes:       notes,
		Affirmation: affirmation,
	})
}

// DayView is one historical day: which quests were completed plus the
// journal fields. Quest titles are resolved where the quest still
// exists.
type DayView struct {
	Date        string
	Completed   []string
	Titles      map[string]string
	Notes       string
	Affirmation string
}

// Day returns the log for a single date.
func (s *Service) Day(ctx context.Context, date string) (*DayView, error) {
	if !clock.IsDate(date) {
		return nil, InvalidInputError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	completed, err := s.completions.ListOnDate(ctx, s.userID, date)
	if err != nil {
		return nil, err
	}
	entry, err := s.journal.Get(ctx, s.userID, date)
	if err != nil {
		return nil, err
	}

	view := &DayView{Date: date, Completed: completed, Titles: map[string]string{}}
	if entry != nil {
		view.Notes = entry.Notes
		view.Affirmation = entry.Affirmation
	}
	quests, err := s.quests.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	for _, q := range quests {
		view.Titles[q.ID] = q.Title
	}
	return view, nil
}

// History returns every logged day (any completion or journal entry),
// newest first.
func (s *Service) History(ctx context.Context) ([]DayView, error) {
	completions, err := s.completions.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journal.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	dates := map[string]bool{}
	for _, c := range completions {
		dates[c.CompletedAt] = true
	}
	for _, e := range entries {
		dates[e.Date] = true
	}

	ordered := make([]string, 0, len(dates))
	for d := range dates {
		ordered = append(ordered, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ordered)))

	out := make([]DayView, 0, len(ordered))
	for _, d := range ordered {
		v, err := s.Day(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
