package engine

// SkillSample is the rolling player-performance statistic accumulated
// over one level and reset at level start. It feeds the adaptive model
// when the level completes.
type SkillSample struct {
	Mistakes        int     // rejected placements and undos
	Moves           int     // committed placements
	QuickPlacements int     // placements inside the quick-place window
	ColorMatchRatio float64 // placements touching at least one same-colored block
	ShapeSuccess    float64 // committed / attempted placements
	Chain           int     // best chain reached during the level
	ElapsedSeconds  float64
	Perfect         bool
}

// DifficultyProfile is the per-level tuning derived from recent player
// performance. All multipliers are clamped to the configured range.
type DifficultyProfile struct {
	TimeLimitMult  float64 // timed mode: scales the per-level budget
	ComplexityMult float64 // scales the required tray-fit count
	SpawnRate      float64 // pre-seeded obstacle cell rate on fresh grids
	ScoreReqMult   float64 // applied on top of the cumulative threshold
}

// DifficultyModel derives next-level profiles from completed-level
// samples via tiered base rules scaled by an overall skill score.
type DifficultyModel struct {
	rules DifficultyRules

	perfectLevels int
	bestChain     int
	totalScore    int
	levelsDone    int
}

// NewDifficultyModel creates a model with the given weighting rules.
func NewDifficultyModel(rules DifficultyRules) *DifficultyModel {
	return &DifficultyModel{rules: rules}
}

// Observe folds one completed level's sample and score into the rolling
// statistics.
func (m *DifficultyModel) Observe(sample SkillSample, levelScore int) {
	m.levelsDone++
	m.totalScore += levelScore
	if sample.Perfect {
		m.perfectLevels++
	}
	if sample.Chain > m.bestChain {
		m.bestChain = sample.Chain
	}
}

// PerfectLevels returns how many perfect levels have been observed.
func (m *DifficultyModel) PerfectLevels() int {
	return m.perfectLevels
}

// Stats exposes the rolling aggregates for snapshot export.
func (m *DifficultyModel) Stats() (perfectLevels, bestChain, totalScore, levelsDone int) {
	return m.perfectLevels, m.bestChain, m.totalScore, m.levelsDone
}

// RestoreDifficultyModel rebuilds a model from persisted aggregates.
func RestoreDifficultyModel(rules DifficultyRules, perfectLevels, bestChain, totalScore, levelsDone int) *DifficultyModel {
	return &DifficultyModel{
		rules:         rules,
		perfectLevels: perfectLevels,
		bestChain:     bestChain,
		totalScore:    totalScore,
		levelsDone:    levelsDone,
	}
}

// skillScore is a weighted combination of perfect-level count, best
// chain and average score per level, normalized to roughly [0, 1] for a
// typical player and left unclamped; ProfileFor clamps the final
// multipliers instead.
func (m *DifficultyModel) skillScore() float64 {
	if m.levelsDone == 0 {
		return 0
	}
	perfectRate := float64(m.perfectLevels) / float64(m.levelsDone)
	chain := float64(m.bestChain) / 10.0
	avgScore := float64(m.totalScore) / float64(m.levelsDone) / 5000.0

	return m.rules.PerfectWeight*perfectRate +
		m.rules.ChainWeight*chain +
		m.rules.AvgScoreWeight*avgScore
}

// ProfileFor derives the profile for the given (upcoming) level. Base
// values come from level-number brackets; the skill score then scales
// them, clamped to the configured multiplier range so thresholds cannot
// run away.
func (m *DifficultyModel) ProfileFor(level int) DifficultyProfile {
	var base DifficultyProfile
	switch {
	case level <= 5:
		base = DifficultyProfile{TimeLimitMult: 1.5, ComplexityMult: 0.8, SpawnRate: 0, ScoreReqMult: 1.0}
	case level <= 10:
		base = DifficultyProfile{TimeLimitMult: 1.3, ComplexityMult: 0.9, SpawnRate: 0.02, ScoreReqMult: 1.0}
	case level <= 25:
		base = DifficultyProfile{TimeLimitMult: 1.1, ComplexityMult: 1.0, SpawnRate: 0.04, ScoreReqMult: 1.05}
	case level <= 50:
		base = DifficultyProfile{TimeLimitMult: 1.0, ComplexityMult: 1.1, SpawnRate: 0.06, ScoreReqMult: 1.1}
	case level <= 100:
		base = DifficultyProfile{TimeLimitMult: 0.9, ComplexityMult: 1.2, SpawnRate: 0.08, ScoreReqMult: 1.15}
	default:
		base = DifficultyProfile{TimeLimitMult: 0.8, ComplexityMult: 1.3, SpawnRate: 0.1, ScoreReqMult: 1.25}
	}

	// A stronger player gets tighter time and higher requirements; a
	// weaker one gets the inverse. Skill 0 leaves the base untouched.
	skill := m.skillScore()
	scale := 1.0 + skill*0.5

	return DifficultyProfile{
		TimeLimitMult:  m.clamp(base.TimeLimitMult / scale),
		ComplexityMult: m.clamp(base.ComplexityMult * scale),
		SpawnRate:      clampFloat(base.SpawnRate*scale, 0, 0.5),
		ScoreReqMult:   m.clamp(base.ScoreReqMult * scale),
	}
}

func (m *DifficultyModel) clamp(v float64) float64 {
	return clampFloat(v, m.rules.MinMultiplier, m.rules.MaxMultiplier)
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
