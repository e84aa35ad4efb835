package engine

import "time"

// ScoringRules are the scoring constants. They are configuration, not
// hard-coded values: the documented defaults live in DefaultRules and
// the config package may override any of them.
type ScoringRules struct {
	PointsPerCell   int // base points per placed cell
	LinePoints      int // per cleared row/column
	MonochromeBonus int // cleared line sharing one color
	XPatternBonus   int // diagonal matching-color pattern
	XPatternRun     int // combined diagonal run length required
	PerfectBonus    int // board emptied with the perfect streak intact
	TouchThreshold  int // touching neighbors needed for the bonus
	TouchMultiplier int // bonus = multiplier * touch total
}

// UndoRules bound the undo mechanism.
type UndoRules struct {
	MaxDepth int           // snapshots kept; oldest evicted first
	Debounce time.Duration // minimum spacing between undos
}

// TimingRules shape the session's time-sensitive behavior.
type TimingRules struct {
	PlaceDebounce time.Duration // re-entrant mutation rejection window
	QuickPlace    time.Duration // placements faster than this count as quick
	BaseTimeLimit time.Duration // per-level budget in timed mode, pre-scaling
}

// DifficultyRules weight the adaptive model's skill score.
type DifficultyRules struct {
	PerfectWeight  float64
	ChainWeight    float64
	AvgScoreWeight float64
	MinMultiplier  float64
	MaxMultiplier  float64
}

// Rules bundles every engine tunable.
type Rules struct {
	Scoring    ScoringRules
	Undo       UndoRules
	Timing     TimingRules
	Difficulty DifficultyRules
}

// DefaultRules returns the documented default tuning.
func DefaultRules() Rules {
	return Rules{
		Scoring: ScoringRules{
			PointsPerCell:   10,
			LinePoints:      100,
			MonochromeBonus: 200,
			XPatternBonus:   250,
			XPatternRun:     10,
			PerfectBonus:    1000,
			TouchThreshold:  3,
			TouchMultiplier: 2,
		},
		Undo: UndoRules{
			MaxDepth: 5,
			Debounce: 100 * time.Millisecond,
		},
		Timing: TimingRules{
			PlaceDebounce: 100 * time.Millisecond,
			QuickPlace:    2 * time.Second,
			BaseTimeLimit: 120 * time.Second,
		},
		Difficulty: DifficultyRules{
			PerfectWeight:  0.5,
			ChainWeight:    0.3,
			AvgScoreWeight: 0.2,
			MinMultiplier:  0.1,
			MaxMultiplier:  10.0,
		},
	}
}
