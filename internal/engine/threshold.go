package engine

// PerLevelRequirement returns the points required to complete one
// specific level. The brackets are flat ranges with increasing
// per-level increments; the exact formula is load-bearing for
// save-game compatibility and must not drift between versions.
func PerLevelRequirement(level int) int {
	const base = 1000
	switch {
	case level <= 0:
		return 0
	case level <= 5:
		return base
	case level <= 10:
		return base + 150*(level-5)
	case level <= 25:
		return PerLevelRequirement(10) + 200*(level-10)
	case level <= 50:
		return PerLevelRequirement(25) + 250*(level-25)
	case level <= 100:
		return PerLevelRequirement(50) + 300*(level-50)
	case level <= 500:
		return PerLevelRequirement(100) + 400*(level-100)
	default:
		// Past level 500 the increment itself grows by 500 for every
		// further 100 levels.
		req := PerLevelRequirement(500)
		remaining := level - 500
		increment := 500
		for remaining > 0 {
			chunk := remaining
			if chunk > 100 {
				chunk = 100
			}
			req += chunk * increment
			remaining -= chunk
			increment += 500
		}
		return req
	}
}

// RequiredScore returns the cumulative score needed to finish the given
// level: the per-level requirements summed over levels 1..level, plus
// flat bonuses for perfect levels completed and consecutive-days-played
// streaks. Monotonically non-decreasing in the level number.
func RequiredScore(level, perfectLevels, dayStreak int) int {
	total := 0
	for l := 1; l <= level; l++ {
		total += PerLevelRequirement(l)
	}
	total += perfectLevels * perfectLevelBonus
	total += dayStreak * dayStreakBonus
	return total
}

// Flat additions on top of the cumulative sum.
const (
	perfectLevelBonus = 500
	dayStreakBonus    = 250
)
