// Package config provides YAML-based game configuration loading and
// difficulty presets for the block puzzle.
package config

import (
	"time"

	"github.com/vovakirdan/tui-blocksmash/internal/engine"
)

// BlocksmashConfig contains all tunables for the block puzzle.
type BlocksmashConfig struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Undo     UndoConfig     `yaml:"undo"`
	Timing   TimingConfig   `yaml:"timing"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`
}

// ScoringConfig defines the point values for every scoring source.
type ScoringConfig struct {
	PointsPerCell   int `yaml:"points_per_cell"`
	LinePoints      int `yaml:"line_points"`
	MonochromeBonus int `yaml:"monochrome_bonus"`
	XPatternBonus   int `yaml:"x_pattern_bonus"`
	XPatternRun     int `yaml:"x_pattern_run"`
	PerfectBonus    int `yaml:"perfect_bonus"`
	TouchThreshold  int `yaml:"touch_threshold"`
	TouchMultiplier int `yaml:"touch_multiplier"`
}

// UndoConfig bounds the undo mechanism.
type UndoConfig struct {
	MaxDepth   int `yaml:"max_depth"`
	DebounceMS int `yaml:"debounce_ms"`
}

// TimingConfig defines the time-sensitive windows.
type TimingConfig struct {
	PlaceDebounceMS int `yaml:"place_debounce_ms"`
	QuickPlaceMS    int `yaml:"quick_place_ms"`
	BaseTimeLimitS  int `yaml:"base_time_limit_s"`
}

// AdaptiveConfig weights the adaptive difficulty model. Disabling it
// pins every level to its bracket base values.
type AdaptiveConfig struct {
	Enabled        bool    `yaml:"enabled"`
	PerfectWeight  float64 `yaml:"perfect_weight"`
	ChainWeight    float64 `yaml:"chain_weight"`
	AvgScoreWeight float64 `yaml:"avg_score_weight"`
	MinMultiplier  float64 `yaml:"min_multiplier"`
	MaxMultiplier  float64 `yaml:"max_multiplier"`
}

// ToRules converts the loaded configuration into engine rules. A
// disabled adaptive section zeroes the skill weights so the model
// always reports neutral skill.
func (c BlocksmashConfig) ToRules() engine.Rules {
	rules := engine.Rules{
		Scoring: engine.ScoringRules{
			PointsPerCell:   c.Scoring.PointsPerCell,
			LinePoints:      c.Scoring.LinePoints,
			MonochromeBonus: c.Scoring.MonochromeBonus,
			XPatternBonus:   c.Scoring.XPatternBonus,
			XPatternRun:     c.Scoring.XPatternRun,
			PerfectBonus:    c.Scoring.PerfectBonus,
			TouchThreshold:  c.Scoring.TouchThreshold,
			TouchMultiplier: c.Scoring.TouchMultiplier,
		},
		Undo: engine.UndoRules{
			MaxDepth: c.Undo.MaxDepth,
			Debounce: time.Duration(c.Undo.DebounceMS) * time.Millisecond,
		},
		Timing: engine.TimingRules{
			PlaceDebounce: time.Duration(c.Timing.PlaceDebounceMS) * time.Millisecond,
			QuickPlace:    time.Duration(c.Timing.QuickPlaceMS) * time.Millisecond,
			BaseTimeLimit: time.Duration(c.Timing.BaseTimeLimitS) * time.Second,
		},
		Difficulty: engine.DifficultyRules{
			PerfectWeight:  c.Adaptive.PerfectWeight,
			ChainWeight:    c.Adaptive.ChainWeight,
			AvgScoreWeight: c.Adaptive.AvgScoreWeight,
			MinMultiplier:  c.Adaptive.MinMultiplier,
			MaxMultiplier:  c.Adaptive.MaxMultiplier,
		},
	}
	if !c.Adaptive.Enabled {
		rules.Difficulty.PerfectWeight = 0
		rules.Difficulty.ChainWeight = 0
		rules.Difficulty.AvgScoreWeight = 0
	}
	return rules
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ValidPreset returns true for a recognized preset name.
func ValidPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	default:
		return false
	}
}

// IsFixedPreset returns true if the preset disables adaptive tuning.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
