package config

import (
	_ "embed"
)

//go:embed defaults/blocksmash.yaml
var defaultBlocksmashYAML []byte

// DefaultBlocksmashConfig returns the default block puzzle configuration.
func DefaultBlocksmashConfig() BlocksmashConfig {
	return BlocksmashConfig{
		Scoring: ScoringConfig{
			PointsPerCell:   10,
			LinePoints:      100,
			MonochromeBonus: 200,
			XPatternBonus:   250,
			XPatternRun:     10,
			PerfectBonus:    1000,
			TouchThreshold:  3,
			TouchMultiplier: 2,
		},
		Undo: UndoConfig{
			MaxDepth:   5,
			DebounceMS: 100,
		},
		Timing: TimingConfig{
			PlaceDebounceMS: 100,
			QuickPlaceMS:    2000,
			BaseTimeLimitS:  120,
		},
		Adaptive: AdaptiveConfig{
			Enabled:        true,
			PerfectWeight:  0.5,
			ChainWeight:    0.3,
			AvgScoreWeight: 0.2,
			MinMultiplier:  0.1,
			MaxMultiplier:  10.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocksmash":
		return defaultBlocksmashYAML
	default:
		return nil
	}
}
