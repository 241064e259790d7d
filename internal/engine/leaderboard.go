package engine

import (
	"context"
	"sort"

	"levelup/internal/storage"
)

type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierE Tier = "E"
)

// TierFor buckets a rank by percentile: top 10% A, top 30% B, top 60%
// C, top 85% D, the rest E.
func TierFor(rank, total int) Tier {
	if total <= 0 {
		return TierE
	}
	p := 100 * float64(rank) / float64(total)
	switch {
	case p <= 10:
		return TierA
	case p <= 30:
		return TierB
	case p <= 60:
		return TierC
	case p <= 85:
		return TierD
	default:
		return TierE
	}
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	WeeklyXP    int    `json:"weekly_xp"`
	Rank        int    `json:"rank"`
	Tier        Tier   `json:"tier"`
}

// RankWeekly turns raw weekly totals into a total ordering. Users with
// zero weekly XP are excluded; the rest sort by XP descending with ties
// broken by ascending user id. Ranks are competition style: equal XP
// shares a rank and the next distinct value skips past the tie block.
// Pure and deterministic.
func RankWeekly(rows []storage.LeaderboardRow) []LeaderboardEntry {
	var kept []storage.LeaderboardRow
	for _, r := range rows {
		if r.WeeklyXP > 0 {
			kept = append(kept, r)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].WeeklyXP != kept[j].WeeklyXP {
			return kept[i].WeeklyXP > kept[j].WeeklyXP
		}
		return kept[i].UserID < kept[j].UserID
	})

	total := len(kept)
	out := make([]LeaderboardEntry, 0, total)
	for i, r := range kept {
		rank := i + 1
		if i > 0 && r.WeeklyXP == kept[i-1].WeeklyXP {
			rank = out[i-1].Rank
		}
		out = append(out, LeaderboardEntry{
			UserID:      r.UserID,
			DisplayName: r.DisplayName,
			AvatarURL:   r.AvatarURL,
			WeeklyXP:    r.WeeklyXP,
			Rank:        rank,
			Tier:        TierFor(rank, total),
		})
	}
	return out
}

// WeeklyLeaderboard ranks every user active in the current civil week
// and locates the querying user: absent users rank one past the board
// with zero XP and tier E.
func (s *Service) WeeklyLeaderboard(ctx context.Context) ([]LeaderboardEntry, LeaderboardEntry, error) {
	start, end := s.clock.WeekBounds()
	rows, err := s.completions.WeeklyTotals(ctx, start, end)
	if err != nil {
		return nil, LeaderboardEntry{}, err
	}
	entries := RankWeekly(rows)

	for _, e := range entries {
		if e.UserID == s.userID {
			return entries, e, nil
		}
	}
	me := LeaderboardEntry{
		UserID: s.userID,
		Rank:   len(entries) + 1,
		Tier:   TierE,
	}
	if p, err := s.profiles.Get(ctx, s.userID); err == nil && p != nil {
		me.DisplayName = p.DisplayName
		me.AvatarURL = p.AvatarURL
	}
	return entries, me, nil
}
