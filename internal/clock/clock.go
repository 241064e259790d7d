// Package clock produces civil calendar dates in a fixed time zone.
// Streak transitions and "today's log" switch at local midnight in that
// zone, regardless of where the process runs, so every date-keyed
// component reads dates from here and never from the raw wall clock.
package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone is the civil zone the tracker keys days on.
const DefaultTimezone = "Asia/Kolkata"

// DateLayout is the canonical YYYY-MM-DD form used everywhere.
const DateLayout = "2006-01-02"

type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(timezone string) (*Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixed returns a clock pinned to a single instant. Test use.
func NewFixed(timezone string, at time.Time) (*Clock, error) {
	c, err := New(timezone)
	if err != nil {
		return nil, err
	}
	c.now = func() time.Time { return at }
	return c, nil
}

// Now returns the current instant converted to the configured zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current civil date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// WeekBounds returns the Monday..Sunday civil week containing today.
// The week closes at Sunday 23:59 local, so Sunday still belongs to the
// running week.
func (c *Clock) WeekBounds() (start, end string) {
	t := c.Now()
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// ParseDate validates and parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// IsDate reports whether s is a well-formed YYYY-MM-DD civil date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DaysBetween returns b - a in whole calendar days. Both arguments must
// be canonical civil dates; malformed input yields 0.
func DaysBetween(a, b string) int {
	ta, err := ParseDate(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// AddDays shifts a civil date by n calendar days.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
