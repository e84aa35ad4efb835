package engine

import (
	"time"
)

// Phase is the session state machine position.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelComplete
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Mode selects the game variant.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeTimed   Mode = "timed"
)

// unlimitedQuota is the default when no provider is injected.
type unlimitedQuota struct{}

func (unlimitedQuota) Unlimited() bool { return true }
func (unlimitedQuota) Consume() bool   { return true }
func (unlimitedQuota) Credits() int    { return 0 }

// SessionConfig wires a session's collaborators. Zero values get
// sensible defaults: DefaultRules, classic mode, unlimited undo,
// time.Now as clock, events dropped.
type SessionConfig struct {
	Rules      Rules
	Mode       Mode
	Sink       EventSink
	Quota      UndoQuota
	Clock      func() time.Time
	StartLevel int
	DayStreak  int // consecutive days played, feeds the threshold bonus
}

// Session orchestrates the engine components and exposes the public
// operations. It exclusively owns the grid, tray, ledger and undo
// stack; collaborators only ever see copies and events.
//
// The session is single-threaded cooperative: every mutating operation
// runs to completion with no interleaving, and re-entrant mutations
// inside the debounce window are rejected with ErrBusy.
type Session struct {
	rules Rules
	mode  Mode
	sink  EventSink
	quota UndoQuota
	clock func() time.Time

	grid    Grid
	tray    *Tray
	ledger  *Ledger
	undo    *UndoStack
	seq     *Sequence
	model   *DifficultyModel
	profile DifficultyProfile

	level      int
	chain      int
	usedColors map[BlockColor]bool
	usedShapes map[string]bool
	perfect    bool
	phase      Phase
	dayStreak  int

	// Per-level skill accumulation.
	sample       SkillSample
	attempts     int
	colorMatches int
	levelStart   time.Time
	lastPlace    time.Time
	havePlaced   bool

	lastMutation  time.Time
	lastUndo      time.Time
	timeLeft      time.Duration
	gameOverFired bool
}

// NewSession creates a session and starts a new game at level 1 (or the
// configured start level).
func NewSession(cfg SessionConfig) *Session {
	if cfg.Rules == (Rules{}) {
		cfg.Rules = DefaultRules()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeClassic
	}
	if cfg.Quota == nil {
		cfg.Quota = unlimitedQuota{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.StartLevel < 1 {
		cfg.StartLevel = 1
	}

	s := &Session{
		rules:     cfg.Rules,
		mode:      cfg.Mode,
		sink:      cfg.Sink,
		quota:     cfg.Quota,
		clock:     cfg.Clock,
		dayStreak: cfg.DayStreak,
		level:     cfg.StartLevel,
	}
	s.startNewGame(cfg.StartLevel)
	return s
}

// Grid returns a copy of the board.
func (s *Session) Grid() Grid {
	return s.grid
}

// Tray returns a copy of the pending pieces.
func (s *Session) Tray() []Piece {
	return s.tray.Pieces()
}

// Score returns the running score.
func (s *Session) Score() int {
	return s.ledger.Total()
}

// HighScore returns the personal all-time watermark.
func (s *Session) HighScore() int {
	return s.ledger.HighScore()
}

// Level returns the current level number (1-based).
func (s *Session) Level() int {
	return s.level
}

// Chain returns the consecutive-clear counter.
func (s *Session) Chain() int {
	return s.chain
}

// Phase returns the state machine position.
func (s *Session) Phase() Phase {
	return s.phase
}

// Mode returns the game variant.
func (s *Session) Mode() Mode {
	return s.mode
}

// Profile returns the current level's difficulty profile.
func (s *Session) Profile() DifficultyProfile {
	return s.profile
}

// LevelEntries returns the current level's score breakdown.
func (s *Session) LevelEntries() []ScoreEntry {
	return s.ledger.LevelEntries()
}

// UndoDepth returns how many snapshots are available.
func (s *Session) UndoDepth() int {
	return s.undo.Len()
}

// UndoCredits returns the remaining consumable undo credits, or -1 when
// the unlimited entitlement is active.
func (s *Session) UndoCredits() int {
	if s.quota.Unlimited() {
		return -1
	}
	return s.quota.Credits()
}

// TimeLeft returns the remaining level time in timed mode.
func (s *Session) TimeLeft() time.Duration {
	return s.timeLeft
}

// TargetScore returns the cumulative score needed to complete the
// current level, including the difficulty profile's requirement
// multiplier and the perfect/streak flat bonuses.
func (s *Session) TargetScore() int {
	base := RequiredScore(s.level, s.model.PerfectLevels(), s.dayStreak)
	return int(float64(base) * s.profile.ScoreReqMult)
}

// TryPlace validates and atomically commits placing the identified tray
// piece with its anchor at the given position, then settles the board:
// scoring, line clears, tray refill, completion and game-over checks
// run strictly in that order before the call returns.
func (s *Session) TryPlace(pieceID int, at Position) (PlacementOutcome, error) {
	if s.phase != PhasePlaying {
		return PlacementOutcome{}, ErrNotPlaying
	}
	now := s.clock()
	if !s.lastMutation.IsZero() && now.Sub(s.lastMutation) < s.rules.Timing.PlaceDebounce {
		return PlacementOutcome{}, ErrBusy
	}

	s.attempts++
	piece, ok := s.tray.Get(pieceID)
	if !ok {
		s.sample.Mistakes++
		s.perfect = false
		return PlacementOutcome{}, ErrPieceNotInTray
	}
	if err := placementError(&s.grid, piece.Shape, at); err != nil {
		s.sample.Mistakes++
		s.perfect = false
		return PlacementOutcome{}, err
	}

	// Snapshot before mutation so undo restores the exact prior state.
	s.undo.Push(s.snapshot(Move{PieceID: pieceID, At: at}))

	outcome, err := CommitPlacement(&s.grid, s.tray, piece, at, s.rules.Scoring)
	if err != nil {
		// Unreachable after the pre-validation above; surface rather
		// than corrupt the undo history.
		s.undo.Pop()
		return PlacementOutcome{}, err
	}

	s.scorePlacement(piece, outcome, at)
	s.trackPlacement(piece, outcome, now)
	s.settle(outcome)

	// Threshold completion applies to any committed placement, cleared
	// lines or not; perfect completion is decided inside settle.
	if s.phase == PhasePlaying && s.ledger.Total() >= s.TargetScore() {
		s.completeLevel(false)
	}

	if s.phase == PhasePlaying {
		s.tray.Refill(s.seq, s.level)
		if !s.anyPlacementPossible() {
			s.fireGameOver()
		}
	}

	s.lastMutation = now
	s.emit(StateChangedEvent{})
	return outcome, nil
}

// scorePlacement records the base placement points and the touch bonus.
func (s *Session) scorePlacement(piece Piece, outcome PlacementOutcome, at Position) {
	points := piece.Shape.Cells() * s.rules.Scoring.PointsPerCell
	s.ledger.Add(s.level, ScorePlacement, points, describePoints("placed "+piece.Shape.Name, 1), 1)
	s.emit(ScoreDeltaEvent{Type: ScorePlacement, Points: points, At: at})

	if outcome.Bonus > 0 {
		s.ledger.Add(s.level, ScoreTouch, outcome.Bonus, describePoints("touching blocks", outcome.Touched), outcome.Touched)
		s.emit(ScoreDeltaEvent{Type: ScoreTouch, Points: outcome.Bonus, At: at})
	}
}

// trackPlacement folds the committed move into the skill sample.
func (s *Session) trackPlacement(piece Piece, outcome PlacementOutcome, now time.Time) {
	s.sample.Moves++
	s.usedColors[piece.Color] = true
	s.usedShapes[piece.Shape.Name] = true

	if s.havePlaced && now.Sub(s.lastPlace) <= s.rules.Timing.QuickPlace {
		s.sample.QuickPlacements++
	}
	s.lastPlace = now
	s.havePlaced = true

	if s.touchesSameColor(outcome.Cells, piece.Color) {
		s.colorMatches++
	}
}

// settle detects and clears full lines, applies clear bonuses, and runs
// the completion checks. Detection happens before the next placement
// can be validated, so no two full lines ever coexist post-settle.
func (s *Session) settle(outcome PlacementOutcome) {
	rows, cols := DetectClears(&s.grid)
	if len(rows)+len(cols) == 0 {
		s.chain = 0
		return
	}

	anchor := Position{
		Row: (outcome.RowMin + outcome.RowMax) / 2,
		Col: (outcome.ColMin + outcome.ColMax) / 2,
	}

	bonuses := EvaluateClears(&s.grid, rows, cols, s.rules.Scoring)
	positions := ClearedPositions(rows, cols)
	ApplyClears(&s.grid, rows, cols)

	s.chain++
	if s.chain > s.sample.Chain {
		s.sample.Chain = s.chain
	}

	s.ledger.Add(s.level, ScoreLineClear, bonuses.LinePoints, describePoints("line clear", bonuses.Lines), bonuses.Lines)
	s.emit(ScoreDeltaEvent{Type: ScoreLineClear, Points: bonuses.LinePoints, At: anchor})
	if bonuses.MonoPoints > 0 {
		s.ledger.Add(s.level, ScoreMonochrome, bonuses.MonoPoints, describePoints("monochrome line", bonuses.MonoLines), bonuses.MonoLines)
		s.emit(ScoreDeltaEvent{Type: ScoreMonochrome, Points: bonuses.MonoPoints, At: anchor})
	}
	if bonuses.XPattern {
		s.ledger.Add(s.level, ScoreXPattern, bonuses.XPoints, "x pattern", 1)
		s.emit(ScoreDeltaEvent{Type: ScoreXPattern, Points: bonuses.XPoints, At: anchor})
	}

	s.emit(LinesClearedEvent{Rows: rows, Cols: cols, Positions: positions})

	// Perfect level: the board is empty and neither an undo nor a
	// rejected placement broke the streak.
	if s.grid.IsEmpty() && s.perfect {
		s.ledger.Add(s.level, ScorePerfect, s.rules.Scoring.PerfectBonus, "perfect level", 1)
		s.emit(ScoreDeltaEvent{Type: ScorePerfect, Points: s.rules.Scoring.PerfectBonus, At: anchor})
		s.completeLevel(true)
	}
}

// completeLevel finalizes the skill sample, feeds the adaptive model
// and transitions to LevelComplete. The caller confirms to advance.
func (s *Session) completeLevel(perfect bool) {
	now := s.clock()
	s.sample.ElapsedSeconds = now.Sub(s.levelStart).Seconds()
	s.sample.Perfect = perfect
	if s.sample.Moves > 0 {
		s.sample.ColorMatchRatio = float64(s.colorMatches) / float64(s.sample.Moves)
	}
	if s.attempts > 0 {
		s.sample.ShapeSuccess = float64(s.sample.Moves) / float64(s.attempts)
	}

	s.model.Observe(s.sample, s.ledger.Total()-s.levelStartScoreTotal())
	s.undo.Clear()
	s.phase = PhaseLevelComplete
	s.emit(LevelCompleteEvent{Level: s.level, Perfect: perfect, Score: s.ledger.Total()})
}

func (s *Session) levelStartScoreTotal() int {
	total := 0
	for _, e := range s.ledger.LevelEntries() {
		total += e.Points
	}
	return s.ledger.Total() - total
}

// ConfirmLevelCompletion advances from LevelComplete into the next
// level: fresh grid (with difficulty-seeded obstacles), reseeded draw
// sequence, refilled tray, cleared undo history.
func (s *Session) ConfirmLevelCompletion() error {
	if s.phase != PhaseLevelComplete {
		return ErrNotPlaying
	}
	s.level++
	s.setupLevel()
	s.emit(StateChangedEvent{})
	return nil
}

// Undo rolls the session back exactly one placement. It is debounced
// against rapid-fire taps and gated by the undo quota; a rejected undo
// leaves the state untouched. A successful undo breaks the current
// level's perfect streak.
func (s *Session) Undo() error {
	if s.phase != PhasePlaying {
		return ErrNotPlaying
	}
	now := s.clock()
	if !s.lastUndo.IsZero() && now.Sub(s.lastUndo) < s.rules.Undo.Debounce {
		return ErrTooSoon
	}
	if s.undo.Len() == 0 {
		return ErrNothingToUndo
	}
	if !s.quota.Unlimited() && !s.quota.Consume() {
		return ErrQuotaExhausted
	}

	snap, _ := s.undo.Pop()
	s.grid = snap.Grid
	s.tray.Replace(snap.Tray)
	s.ledger = snap.Ledger
	s.level = snap.Level
	s.chain = snap.Chain
	s.usedColors = snap.UsedColors
	s.usedShapes = snap.UsedShapes
	s.perfect = false // undo breaks the perfect streak
	s.sample.Mistakes++

	s.lastUndo = now
	s.lastMutation = now
	s.emit(StateChangedEvent{})
	return nil
}

// WouldClearLines is a pure query for pre-placement hinting: the rows
// and columns that committing the identified piece at the anchor would
// clear. The live grid is never mutated.
func (s *Session) WouldClearLines(pieceID int, at Position) (rows, cols []int, err error) {
	piece, ok := s.tray.Get(pieceID)
	if !ok {
		return nil, nil, ErrPieceNotInTray
	}
	rows, cols = WouldClear(&s.grid, piece.Shape, piece.Color, at)
	return rows, cols, nil
}

// AdvanceClock drives the timed-mode countdown. External timers call in
// at tick boundaries; a paused timer simply stops calling.
func (s *Session) AdvanceClock(d time.Duration) {
	if s.mode != ModeTimed || s.phase != PhasePlaying {
		return
	}
	s.timeLeft -= d
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.fireGameOver()
		s.emit(StateChangedEvent{})
	}
}

// ResetGame reinitializes the session at level 1, preserving the
// personal high-score watermark.
func (s *Session) ResetGame() {
	s.startNewGame(1)
	s.emit(StateChangedEvent{})
}

// StartNewGame is the explicit restart out of GameOver.
func (s *Session) StartNewGame() {
	s.ResetGame()
}

func (s *Session) startNewGame(level int) {
	high := 0
	if s.ledger != nil {
		high = s.ledger.HighScore()
	}
	s.ledger = NewLedger(high)
	s.model = NewDifficultyModel(s.rules.Difficulty)
	if s.tray == nil {
		s.tray = NewTray()
	}
	if s.undo == nil {
		s.undo = NewUndoStack(s.rules.Undo.MaxDepth)
	}
	s.level = level
	s.setupLevel()
}

// setupLevel resets all per-level state: fresh reseeded sequence, new
// grid with difficulty-seeded obstacles, wholesale tray replacement.
func (s *Session) setupLevel() {
	s.profile = s.model.ProfileFor(s.level)
	s.seq = NewSequence(s.level)
	s.grid = Grid{}
	s.seedObstacles()

	s.tray.Replace(nil)
	s.tray.Refill(s.seq, s.level)
	s.undo.Clear()

	s.chain = 0
	s.perfect = true
	s.usedColors = make(map[BlockColor]bool)
	s.usedShapes = make(map[string]bool)
	s.ledger.ResetLevel()

	s.sample = SkillSample{}
	s.attempts = 0
	s.colorMatches = 0
	s.havePlaced = false
	s.levelStart = s.clock()

	if s.mode == ModeTimed {
		s.timeLeft = time.Duration(float64(s.rules.Timing.BaseTimeLimit) * s.profile.TimeLimitMult)
	}
	s.gameOverFired = false
	s.phase = PhasePlaying
}

// seedObstacles pre-fills cells in the top half of a fresh grid at the
// profile's spawn rate, capped so the board always stays playable.
func (s *Session) seedObstacles() {
	if s.profile.SpawnRate <= 0 {
		return
	}
	seeded := 0
	for r := 0; r < GridSize/2 && seeded < GridSize; r++ {
		for c := 0; c < GridSize && seeded < GridSize; c++ {
			if s.seq.Chance(s.profile.SpawnRate) {
				s.grid[r][c] = s.seq.PickColor()
				seeded++
			}
		}
	}
}

// anyPlacementPossible reports whether at least one tray piece fits
// somewhere on the board.
func (s *Session) anyPlacementPossible() bool {
	for _, p := range s.tray.Pieces() {
		for r := 0; r < GridSize; r++ {
			for c := 0; c < GridSize; c++ {
				if ValidatePlacement(&s.grid, p.Shape, Position{Row: r, Col: c}) {
					return true
				}
			}
		}
	}
	return false
}

// fireGameOver transitions to GameOver exactly once.
func (s *Session) fireGameOver() {
	if s.gameOverFired {
		return
	}
	s.gameOverFired = true
	s.phase = PhaseGameOver
	s.undo.Clear()
	s.emit(GameOverEvent{FinalScore: s.ledger.Total(), Level: s.level})
}

// snapshot captures the full prior state for the undo stack.
func (s *Session) snapshot(move Move) Snapshot {
	colors := make(map[BlockColor]bool, len(s.usedColors))
	for k, v := range s.usedColors {
		colors[k] = v
	}
	shapes := make(map[string]bool, len(s.usedShapes))
	for k, v := range s.usedShapes {
		shapes[k] = v
	}
	return Snapshot{
		Grid:       s.grid,
		Tray:       s.tray.Pieces(),
		Ledger:     s.ledger.Clone(),
		Level:      s.level,
		Chain:      s.chain,
		UsedColors: colors,
		UsedShapes: shapes,
		Perfect:    s.perfect,
		Move:       move,
	}
}

// touchesSameColor reports whether any placed cell has an orthogonal
// neighbor (outside the shape) of the same color. Runs post-commit,
// pre-clear.
func (s *Session) touchesSameColor(placed []Position, color BlockColor) bool {
	mine := make(map[Position]bool, len(placed))
	for _, p := range placed {
		mine[p] = true
	}
	dirs := [4]Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	for _, p := range placed {
		for _, d := range dirs {
			n := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if !InBounds(n.Row, n.Col) || mine[n] {
				continue
			}
			if s.grid[n.Row][n.Col] == color {
				return true
			}
		}
	}
	return false
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink(e)
	}
}
