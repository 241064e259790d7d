package engine

import "levelup/internal/clock"

// StreakState is the streak-bearing slice of a user's stats.
// LastActive is a civil date or empty for a user who has never been
// observed.
type StreakState struct {
	LastActive string
	Current    int
	Best       int
}

// AdvanceStreak evaluates a date rollover: given the state as of the
// last observed day and today's date, it returns the state for today.
// hadCompletion reports whether a given civil date has at least one
// quest completion.
//
// A streak counts consecutive productive days, so moving to the next
// calendar day extends it only when the previous active day actually
// had a completion; a skipped day or an idle day resets it to zero.
// Pure: called at most once per calendar date, on first observation
// after the rollover.
func AdvanceStreak(s StreakState, today string, hadCompletion func(date string) bool) StreakState {
	if s.LastActive == today {
		return s
	}

	next := StreakState{LastActive: today, Best: s.Best}
	if s.LastActive != "" && clock.DaysBetween(s.LastActive, today) == 1 && hadCompletion(s.LastActive) {
		next.Current = s.Current + 1
	}
	if next.Current > next.Best {
		next.Best = next.Current
	}
	return next
}
