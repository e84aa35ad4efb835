package blocksmash

import "github.com/vovakirdan/tui-blocksmash/internal/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying       GameStateType = "playing"
	StateLevelComplete GameStateType = "level_complete"
	StateGameOver      GameStateType = "game_over"
	StatePaused        GameStateType = "paused"
	StatePausedSmall   GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string // "classic" or "timed"
	Score       int
	Level       int
	Chain       int
	TrayLen     int
	CursorRow   int
	CursorCol   int
	Slot        int
	UndoDepth   int
	UndoCredits int
	Occupied    int // occupied cells on the board
	State       GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Phase() == engine.PhaseGameOver:
		state = StateGameOver
	case g.session.Phase() == engine.PhaseLevelComplete:
		state = StateLevelComplete
	case g.paused:
		state = StatePaused
	}

	occupied := 0
	grid := g.session.Grid()
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize; c++ {
			if cell, err := grid.CellAt(r, c); err == nil && cell != engine.ColorNone {
				occupied++
			}
		}
	}

	return Snapshot{
		Tick:        g.tick,
		Mode:        string(g.mode),
		Score:       g.session.Score(),
		Level:       g.session.Level(),
		Chain:       g.session.Chain(),
		TrayLen:     len(g.session.Tray()),
		CursorRow:   g.cursor.Row,
		CursorCol:   g.cursor.Col,
		Slot:        g.slot,
		UndoDepth:   g.session.UndoDepth(),
		UndoCredits: g.session.UndoCredits(),
		Occupied:    occupied,
		State:       state,
	}
}
