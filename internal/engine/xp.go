package engine

import "math"

// Level thresholds are prefix sums of xpForLevel: the cumulative XP to
// reach level L is the sum of xpForLevel(k) for k < L. Level 1 spans
// [0, 100), level 2 spans [100, 400), level 3 spans [400, 1000).
func xpForLevel(level int) int {
	return 50 * level * (level + 1)
}

// LevelInfo describes where a total XP value sits on the level curve.
type LevelInfo struct {
	Level          int
	CurrentLevelXP int     // cumulative XP at which the current level begins
	NextLevelXP    int     // cumulative XP at which the next level begins
	Progress       float64 // position inside the current level, in [0, 1]
}

// LevelOf maps total XP to its level. Deterministic and total for
// xp >= 0; negative input is treated as 0 so the function never fails.
func LevelOf(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	level := 1
	floor := 0
	for xp >= floor+xpForLevel(level) {
		floor += xpForLevel(level)
		level++
	}

	ceil := floor + xpForLevel(level)
	progress := float64(xp-floor) / float64(ceil-floor)
	if progress > 1 {
		progress = 1
	}

	return LevelInfo{
		Level:          level,
		CurrentLevelXP: floor,
		NextLevelXP:    ceil,
		Progress:       progress,
	}
}

// CoinsFor converts a quest's XP into its coin reward:
// max(1, round(xp/2)) with halves rounded away from zero. Quest XP is
// never negative, so floor(x + 0.5) is exactly that rounding.
func CoinsFor(xp int) int {
	coins := int(math.Floor(float64(xp)/2 + 0.5))
	if coins < 1 {
		coins = 1
	}
	return coins
}
