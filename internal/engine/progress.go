package engine

import (
	"fmt"
	"time"
)

// GameProgress is the serializable save-slot snapshot: a copy of
// finalized state handed to asynchronous persistence. It never aliases
// live engine state.
type GameProgress struct {
	GridSize int      `json:"grid_size"`
	Grid     []string `json:"grid"` // row-major color tags, "none" for empty

	Tray  []PieceProgress `json:"tray"`
	Score int             `json:"score"`
	Level int             `json:"level"`
	Chain int             `json:"chain"`
	Mode  string          `json:"mode"`

	Perfect    bool     `json:"perfect"`
	UsedColors []string `json:"used_colors"`
	UsedShapes []string `json:"used_shapes"`

	Stats    StatsProgress  `json:"stats"`
	UndoTail []MoveProgress `json:"undo_tail"` // most recent moves, bounded

	HighScore int       `json:"high_score"`
	DayStreak int       `json:"day_streak"`
	SavedAt   time.Time `json:"saved_at"`
}

// PieceProgress is one persisted tray piece.
type PieceProgress struct {
	ID    int    `json:"id"`
	Shape string `json:"shape"`
	Color string `json:"color"`
}

// MoveProgress is one entry of the persisted undo tail.
type MoveProgress struct {
	PieceID int `json:"piece_id"`
	Row     int `json:"row"`
	Col     int `json:"col"`
}

// StatsProgress carries the per-level skill sample plus the adaptive
// model's rolling aggregates, enough to resume difficulty tuning.
type StatsProgress struct {
	Mistakes        int     `json:"mistakes"`
	Moves           int     `json:"moves"`
	QuickPlacements int     `json:"quick_placements"`
	PerfectLevels   int     `json:"perfect_levels"`
	BestChain       int     `json:"best_chain"`
	TotalScore      int     `json:"total_score"`
	LevelsDone      int     `json:"levels_done"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
}

// UndoTailLimit bounds the persisted undo tail.
const UndoTailLimit = 5

// ExportSnapshot builds a GameProgress copy of the current state.
func (s *Session) ExportSnapshot() GameProgress {
	grid := make([]string, 0, GridSize*GridSize)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			grid = append(grid, s.grid[r][c].String())
		}
	}

	tray := make([]PieceProgress, 0, s.tray.Len())
	for _, p := range s.tray.Pieces() {
		tray = append(tray, PieceProgress{ID: p.ID, Shape: p.Shape.Name, Color: p.Color.String()})
	}

	colors := make([]string, 0, len(s.usedColors))
	for c := range s.usedColors {
		colors = append(colors, c.String())
	}
	shapes := make([]string, 0, len(s.usedShapes))
	for name := range s.usedShapes {
		shapes = append(shapes, name)
	}

	tail := make([]MoveProgress, 0, UndoTailLimit)
	for _, m := range s.undo.Tail(UndoTailLimit) {
		tail = append(tail, MoveProgress{PieceID: m.PieceID, Row: m.At.Row, Col: m.At.Col})
	}

	perfectLevels, bestChain, totalScore, levelsDone := s.model.Stats()

	return GameProgress{
		GridSize:   GridSize,
		Grid:       grid,
		Tray:       tray,
		Score:      s.ledger.Total(),
		Level:      s.level,
		Chain:      s.chain,
		Mode:       string(s.mode),
		Perfect:    s.perfect,
		UsedColors: colors,
		UsedShapes: shapes,
		Stats: StatsProgress{
			Mistakes:        s.sample.Mistakes,
			Moves:           s.sample.Moves,
			QuickPlacements: s.sample.QuickPlacements,
			PerfectLevels:   perfectLevels,
			BestChain:       bestChain,
			TotalScore:      totalScore,
			LevelsDone:      levelsDone,
			ElapsedSeconds:  s.clock().Sub(s.levelStart).Seconds(),
		},
		UndoTail:  tail,
		HighScore: s.ledger.HighScore(),
		DayStreak: s.dayStreak,
		SavedAt:   s.clock(),
	}
}

// ImportSnapshot validates a snapshot against the engine invariants and
// applies it wholesale. A snapshot that fails validation is rejected
// with ErrInvalidProgress and nothing is applied; callers fall back to
// StartNewGame.
func (s *Session) ImportSnapshot(p GameProgress) error {
	grid, tray, err := validateProgress(p)
	if err != nil {
		return err
	}

	// Validation passed; apply everything.
	s.grid = grid
	s.tray.Replace(tray)
	s.seq = NewSequence(p.Level)
	// A crash between placement and refill can persist a short tray;
	// restore the exact-capacity invariant before play resumes.
	s.tray.Refill(s.seq, p.Level)
	s.ledger = NewLedger(p.HighScore)
	s.ledger.restoreTotal(p.Score)
	s.level = p.Level
	s.chain = p.Chain
	s.mode = Mode(p.Mode)
	s.perfect = p.Perfect
	s.dayStreak = p.DayStreak

	s.usedColors = make(map[BlockColor]bool)
	for _, tag := range p.UsedColors {
		c, _ := ColorFromTag(tag)
		s.usedColors[c] = true
	}
	s.usedShapes = make(map[string]bool)
	for _, name := range p.UsedShapes {
		s.usedShapes[name] = true
	}

	s.model = RestoreDifficultyModel(s.rules.Difficulty,
		p.Stats.PerfectLevels, p.Stats.BestChain, p.Stats.TotalScore, p.Stats.LevelsDone)
	s.profile = s.model.ProfileFor(s.level)
	s.undo.Clear()

	s.sample = SkillSample{
		Mistakes:        p.Stats.Mistakes,
		Moves:           p.Stats.Moves,
		QuickPlacements: p.Stats.QuickPlacements,
	}
	s.attempts = p.Stats.Moves + p.Stats.Mistakes
	s.colorMatches = 0
	s.havePlaced = false
	s.levelStart = s.clock().Add(-time.Duration(p.Stats.ElapsedSeconds * float64(time.Second)))

	if s.mode == ModeTimed {
		s.timeLeft = time.Duration(float64(s.rules.Timing.BaseTimeLimit) * s.profile.TimeLimitMult)
	}
	s.gameOverFired = false
	s.phase = PhasePlaying

	s.emit(StateChangedEvent{})
	return nil
}

// validateProgress checks every invariant before anything is applied.
func validateProgress(p GameProgress) (Grid, []Piece, error) {
	var grid Grid

	if p.GridSize != GridSize {
		return grid, nil, fmt.Errorf("%w: grid size %d, want %d", ErrInvalidProgress, p.GridSize, GridSize)
	}
	if len(p.Grid) != GridSize*GridSize {
		return grid, nil, fmt.Errorf("%w: %d grid cells, want %d", ErrInvalidProgress, len(p.Grid), GridSize*GridSize)
	}
	for i, tag := range p.Grid {
		c, ok := ColorFromTag(tag)
		if !ok {
			return grid, nil, fmt.Errorf("%w: unknown cell color %q", ErrInvalidProgress, tag)
		}
		grid[i/GridSize][i%GridSize] = c
	}

	if len(p.Tray) > TrayCapacity {
		return grid, nil, fmt.Errorf("%w: tray holds %d pieces, capacity %d", ErrInvalidProgress, len(p.Tray), TrayCapacity)
	}
	seenIDs := make(map[int]bool, len(p.Tray))
	tray := make([]Piece, 0, len(p.Tray))
	for _, pp := range p.Tray {
		if pp.ID <= 0 || seenIDs[pp.ID] {
			return grid, nil, fmt.Errorf("%w: bad piece id %d", ErrInvalidProgress, pp.ID)
		}
		seenIDs[pp.ID] = true
		shape, ok := ShapeByName(pp.Shape)
		if !ok {
			return grid, nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidProgress, pp.Shape)
		}
		color, ok := ColorFromTag(pp.Color)
		if !ok || color == ColorNone {
			return grid, nil, fmt.Errorf("%w: bad piece color %q", ErrInvalidProgress, pp.Color)
		}
		tray = append(tray, Piece{ID: pp.ID, Shape: shape, Color: color})
	}

	if p.Score < 0 {
		return grid, nil, fmt.Errorf("%w: negative score", ErrInvalidProgress)
	}
	if p.Level < 1 {
		return grid, nil, fmt.Errorf("%w: level %d", ErrInvalidProgress, p.Level)
	}
	if p.Chain < 0 {
		return grid, nil, fmt.Errorf("%w: negative chain", ErrInvalidProgress)
	}
	switch Mode(p.Mode) {
	case ModeClassic, ModeTimed:
	default:
		return grid, nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidProgress, p.Mode)
	}
	for _, tag := range p.UsedColors {
		if _, ok := ColorFromTag(tag); !ok {
			return grid, nil, fmt.Errorf("%w: unknown used color %q", ErrInvalidProgress, tag)
		}
	}
	if len(p.UndoTail) > UndoTailLimit {
		return grid, nil, fmt.Errorf("%w: undo tail of %d moves, limit %d", ErrInvalidProgress, len(p.UndoTail), UndoTailLimit)
	}
	if p.Stats.Mistakes < 0 || p.Stats.Moves < 0 || p.Stats.QuickPlacements < 0 ||
		p.Stats.PerfectLevels < 0 || p.Stats.LevelsDone < 0 {
		return grid, nil, fmt.Errorf("%w: negative statistics", ErrInvalidProgress)
	}

	return grid, tray, nil
}
