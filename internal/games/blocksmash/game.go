// Package blocksmash adapts the block-puzzle engine to the platform's
// Game interface: it translates input actions into session operations,
// renders the board, tray and HUD, and surfaces engine events as
// transient status messages.
package blocksmash

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-blocksmash/internal/config"
	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/engine"
	"github.com/vovakirdan/tui-blocksmash/internal/registry"
)

// Grid layout on screen. Cells are two runes wide so the board reads
// roughly square in a terminal.
const (
	gridLeft   = 2
	gridTop    = 3
	cellWidth  = 2
	minScreenW = 50
	minScreenH = 22

	// How long a status flash stays visible, in ticks.
	statusTicks = 120
)

// Game implements the platform Game interface over an engine session.
type Game struct {
	mode    engine.Mode
	session *engine.Session

	cursor engine.Position
	slot   int // selected tray index
	tick   uint64

	screenW  int
	screenH  int
	tickRate int
	paused   bool
	tooSmall bool

	// Transient feedback driven by engine events and rejected inputs.
	status      string
	statusLeft  int
	flashRows   []int
	flashCols   []int
	flashLeft   int
	deltaPoints int
}

// Package-level variables for config/difficulty (like the other games'
// pattern); the menu and CLI set these before Reset runs.
var (
	configPath         string
	difficultyPreset   string
	selectedStartLevel int
	undoQuota          engine.UndoQuota
	resumeProgress     *engine.GameProgress
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy/normal/hard/fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level. 0 means start at level 1.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetUndoQuota injects the undo entitlement used by the next Reset.
// nil restores unlimited undo.
func SetUndoQuota(q engine.UndoQuota) {
	undoQuota = q
}

// SetResume hands a saved progress snapshot to the next Reset. The
// snapshot is consumed once; a rejected snapshot falls back to a fresh
// game.
func SetResume(p *engine.GameProgress) {
	resumeProgress = p
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: engine.ModeClassic}
}

// NewTimed creates a timed mode game.
func NewTimed() *Game {
	return &Game{mode: engine.ModeTimed}
}

func init() {
	registry.Register("blocksmash", func() registry.Game {
		return New()
	})
	registry.Register("blocksmash_timed", func() registry.Game {
		return NewTimed()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == engine.ModeTimed {
		return "blocksmash_timed"
	}
	return "blocksmash"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == engine.ModeTimed {
		return "Block Smash (Timed)"
	}
	return "Block Smash"
}

// Session exposes the underlying engine session so the platform can
// export progress snapshots for autosave.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	g.cursor = engine.Position{Row: engine.GridSize / 2, Col: engine.GridSize / 2}
	g.slot = 0
	g.status = ""
	g.statusLeft = 0
	g.flashRows = nil
	g.flashCols = nil
	g.flashLeft = 0

	rules := g.loadRules()
	g.session = engine.NewSession(engine.SessionConfig{
		Rules:      rules,
		Mode:       g.mode,
		Quota:      undoQuota,
		Sink:       g.onEvent,
		StartLevel: selectedStartLevel,
	})
	selectedStartLevel = 0

	if resumeProgress != nil {
		if err := g.session.ImportSnapshot(*resumeProgress); err != nil {
			g.flash("saved game was corrupt, starting fresh")
		}
		resumeProgress = nil
	}
}

// loadRules resolves the config chain and applies the selected preset.
func (g *Game) loadRules() engine.Rules {
	cfg, err := config.LoadBlocksmash(configPath)
	if err != nil {
		cfg = config.DefaultBlocksmashConfig()
		g.flash("config unreadable, using defaults")
	}
	if difficultyPreset != "" {
		config.ApplyBlocksmashPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	return cfg.ToRules()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.decayFlashes()

	if input.Has(core.ActionRestart) && g.session.Phase() == engine.PhaseGameOver {
		g.session.StartNewGame()
		g.cursor = engine.Position{Row: engine.GridSize / 2, Col: engine.GridSize / 2}
		g.slot = 0
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.session.Phase() {
	case engine.PhaseLevelComplete:
		if input.Has(core.ActionConfirm) || input.Has(core.ActionPlace) {
			if err := g.session.ConfirmLevelCompletion(); err == nil {
				g.cursor = engine.Position{Row: engine.GridSize / 2, Col: engine.GridSize / 2}
				g.slot = 0
			}
		}
	case engine.PhasePlaying:
		g.handlePlaying(input)
		if g.mode == engine.ModeTimed {
			g.session.AdvanceClock(time.Second / time.Duration(g.tickRate))
		}
	}

	return core.StepResult{State: g.State()}
}

// handlePlaying processes cursor, slot and mutation actions.
func (g *Game) handlePlaying(input core.InputFrame) {
	if input.Has(core.ActionUp) {
		g.cursor.Row = core.Max(g.cursor.Row-1, 0)
	}
	if input.Has(core.ActionDown) {
		g.cursor.Row = core.Min(g.cursor.Row+1, engine.GridSize-1)
	}
	if input.Has(core.ActionLeft) {
		g.cursor.Col = core.Max(g.cursor.Col-1, 0)
	}
	if input.Has(core.ActionRight) {
		g.cursor.Col = core.Min(g.cursor.Col+1, engine.GridSize-1)
	}

	tray := g.session.Tray()
	if len(tray) > 0 {
		g.slot = core.Clamp(g.slot, 0, len(tray)-1)
		switch {
		case input.Has(core.ActionSlot1):
			g.slot = 0
		case input.Has(core.ActionSlot2) && len(tray) > 1:
			g.slot = 1
		case input.Has(core.ActionSlot3) && len(tray) > 2:
			g.slot = 2
		case input.Has(core.ActionCycle):
			g.slot = (g.slot + 1) % len(tray)
		}
	}

	if input.Has(core.ActionPlace) || input.Has(core.ActionConfirm) {
		if piece, ok := g.selectedPiece(); ok {
			if _, err := g.session.TryPlace(piece.ID, g.cursor); err != nil {
				g.reportError(err)
			}
		}
	}
	if input.Has(core.ActionUndo) {
		if err := g.session.Undo(); err != nil {
			g.reportError(err)
		}
	}
}

// selectedPiece returns the tray piece under the current slot.
func (g *Game) selectedPiece() (engine.Piece, bool) {
	tray := g.session.Tray()
	if len(tray) == 0 {
		return engine.Piece{}, false
	}
	return tray[core.Clamp(g.slot, 0, len(tray)-1)], true
}

// reportError turns expected engine rejections into status text.
// Debounce rejections stay silent; a held key should not spam the HUD.
func (g *Game) reportError(err error) {
	switch {
	case errors.Is(err, engine.ErrBusy), errors.Is(err, engine.ErrTooSoon):
	case errors.Is(err, engine.ErrOutOfBounds), errors.Is(err, engine.ErrCellOccupied):
		g.flash("piece does not fit there")
	case errors.Is(err, engine.ErrNothingToUndo):
		g.flash("nothing to undo")
	case errors.Is(err, engine.ErrQuotaExhausted):
		g.flash("no undo credits left")
	case errors.Is(err, engine.ErrPieceNotInTray):
		g.flash("no piece selected")
	}
}

// onEvent is the session's event sink.
func (g *Game) onEvent(e engine.Event) {
	switch ev := e.(type) {
	case engine.ScoreDeltaEvent:
		g.deltaPoints += ev.Points
		g.statusLeft = statusTicks
	case engine.LinesClearedEvent:
		g.flashRows = ev.Rows
		g.flashCols = ev.Cols
		g.flashLeft = statusTicks / 4
	}
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.deltaPoints = 0
	g.statusLeft = statusTicks
}

func (g *Game) decayFlashes() {
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
			g.deltaPoints = 0
		}
	}
	if g.flashLeft > 0 {
		g.flashLeft--
		if g.flashLeft == 0 {
			g.flashRows = nil
			g.flashCols = nil
		}
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderGrid(dst)
	g.renderTray(dst)
	g.renderStatus(dst)

	switch g.session.Phase() {
	case engine.PhaseLevelComplete:
		g.renderOverlay(dst,
			fmt.Sprintf("Level %d complete!", g.session.Level()),
			"Press Enter to continue")
	case engine.PhaseGameOver:
		g.renderOverlay(dst,
			fmt.Sprintf("Game Over — Score: %d", g.session.Score()),
			"Press R to restart")
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	undo := "∞"
	if credits := g.session.UndoCredits(); credits >= 0 {
		undo = fmt.Sprintf("%d", credits)
	}
	hud := fmt.Sprintf(" %s — Score: %d/%d  Level: %d  Chain: %d  Undo: %s",
		g.Title(), g.session.Score(), g.session.TargetScore(),
		g.session.Level(), g.session.Chain(), undo)
	if g.mode == engine.ModeTimed {
		hud += fmt.Sprintf("  Time: %ds", int(g.session.TimeLeft().Seconds()))
	}
	dst.DrawText(0, 0, hud)
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// renderGrid draws the board, the ghost preview of the selected piece
// and the would-clear highlight.
func (g *Game) renderGrid(dst *core.Screen) {
	dst.DrawBox(core.Rect{
		X: gridLeft - 1,
		Y: gridTop - 1,
		W: engine.GridSize*cellWidth + 2,
		H: engine.GridSize + 2,
	})

	grid := g.session.Grid()
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize; c++ {
			x := gridLeft + c*cellWidth
			if grid[r][c] == engine.ColorNone {
				dst.SetCell(x, gridTop+r, '·', core.ColorGray)
				dst.Set(x+1, gridTop+r, ' ')
			} else {
				col := blockColor(grid[r][c])
				dst.SetCell(x, gridTop+r, '█', col)
				dst.SetCell(x+1, gridTop+r, '█', col)
			}
		}
	}

	g.renderGhost(dst, &grid)
	g.renderFlash(dst)
}

// renderGhost overlays the selected piece at the cursor. A placement
// that fits shows in the piece color; one that does not shows gray.
func (g *Game) renderGhost(dst *core.Screen, grid *engine.Grid) {
	if g.session.Phase() != engine.PhasePlaying {
		return
	}
	piece, ok := g.selectedPiece()
	if !ok {
		return
	}

	valid := engine.ValidatePlacement(grid, piece.Shape, g.cursor)
	ghostRune := '▒'
	ghostColor := blockColor(piece.Color)
	if !valid {
		ghostRune = '░'
		ghostColor = core.ColorGray
	}
	for _, off := range piece.Shape.Offsets {
		r, c := g.cursor.Row+off.DY, g.cursor.Col+off.DX
		if !engine.InBounds(r, c) {
			continue
		}
		x := gridLeft + c*cellWidth
		dst.SetCell(x, gridTop+r, ghostRune, ghostColor)
		dst.SetCell(x+1, gridTop+r, ghostRune, ghostColor)
	}

	if valid {
		rows, cols, err := g.session.WouldClearLines(piece.ID, g.cursor)
		if err != nil {
			return
		}
		g.highlightLines(dst, rows, cols, core.ColorBrightWhite)
	}
}

// renderFlash re-highlights the lines of the most recent clear.
func (g *Game) renderFlash(dst *core.Screen) {
	if g.flashLeft <= 0 {
		return
	}
	g.highlightLines(dst, g.flashRows, g.flashCols, core.ColorBrightYellow)
}

// highlightLines redraws whole rows and columns with a marker rune.
func (g *Game) highlightLines(dst *core.Screen, rows, cols []int, color core.Color) {
	mark := func(r, c int) {
		x := gridLeft + c*cellWidth
		dst.SetCell(x, gridTop+r, '▓', color)
		dst.SetCell(x+1, gridTop+r, '▓', color)
	}
	for _, r := range rows {
		for c := 0; c < engine.GridSize; c++ {
			mark(r, c)
		}
	}
	for _, c := range cols {
		for r := 0; r < engine.GridSize; r++ {
			mark(r, c)
		}
	}
}

// renderTray draws the pending pieces to the right of the board.
func (g *Game) renderTray(dst *core.Screen) {
	trayLeft := gridLeft + engine.GridSize*cellWidth + 6
	dst.DrawText(trayLeft, gridTop-1, "Tray")

	tray := g.session.Tray()
	y := gridTop
	for i, piece := range tray {
		marker := ' '
		if i == g.slot && g.session.Phase() == engine.PhasePlaying {
			marker = '>'
		}
		header := fmt.Sprintf("%c[%d] %s", marker, i+1, piece.Shape.Name)
		dst.DrawTextColored(trayLeft, y, header, blockColor(piece.Color))
		y++
		y += g.renderShape(dst, trayLeft+2, y, piece)
		y++ // blank separator row
	}
}

// renderShape draws a piece's cells and returns the rows used.
func (g *Game) renderShape(dst *core.Screen, x, y int, piece engine.Piece) int {
	color := blockColor(piece.Color)
	maxDY := 0
	for _, off := range piece.Shape.Offsets {
		dst.SetCell(x+off.DX*cellWidth, y+off.DY, '█', color)
		dst.SetCell(x+off.DX*cellWidth+1, y+off.DY, '█', color)
		if off.DY > maxDY {
			maxDY = off.DY
		}
	}
	return maxDY + 1
}

// renderStatus draws the transient feedback line under the board.
func (g *Game) renderStatus(dst *core.Screen) {
	if g.statusLeft <= 0 {
		return
	}
	y := gridTop + engine.GridSize + 2
	if g.status != "" {
		dst.DrawTextColored(gridLeft-1, y, g.status, core.ColorBrightRed)
		return
	}
	if g.deltaPoints > 0 {
		dst.DrawTextColored(gridLeft-1, y, fmt.Sprintf("+%d points", g.deltaPoints), core.ColorBrightGreen)
	}
}

// renderOverlay draws a centered boxed message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := core.Rect{
		X: (w - maxLen - 4) / 2,
		Y: (h - 5) / 2,
		W: maxLen + 4,
		H: 5,
	}
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == engine.PhaseGameOver,
		Paused:   g.paused,
	}
}

// blockColor maps an engine block color to a screen color.
func blockColor(c engine.BlockColor) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorBlue:
		return core.ColorBlue
	case engine.ColorGreen:
		return core.ColorGreen
	case engine.ColorYellow:
		return core.ColorYellow
	case engine.ColorPurple:
		return core.ColorMagenta
	case engine.ColorOrange:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d, Level: %d, Phase: %s\n",
		g.tick, g.session.Score(), g.session.Level(), g.session.Phase()))
	b.WriteString(fmt.Sprintf("Cursor: (%d, %d), Slot: %d\n", g.cursor.Row, g.cursor.Col, g.slot))
	for _, p := range g.session.Tray() {
		b.WriteString(fmt.Sprintf("Tray #%d: %s %s\n", p.ID, p.Shape.Name, p.Color))
	}
	b.WriteString(fmt.Sprintf("Paused: %v\n", g.paused))
	return b.String()
}
