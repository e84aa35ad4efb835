package blocksmash

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/engine"
	"github.com/vovakirdan/tui-blocksmash/internal/registry"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.DefaultConfig())
	return g
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"blocksmash", "blocksmash_timed"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestIDAndTitle(t *testing.T) {
	if got := New().ID(); got != "blocksmash" {
		t.Errorf("ID() = %q", got)
	}
	if got := NewTimed().ID(); got != "blocksmash_timed" {
		t.Errorf("timed ID() = %q", got)
	}
	if got := NewTimed().Title(); !strings.Contains(got, "Timed") {
		t.Errorf("timed Title() = %q", got)
	}
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t)

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("initial state = %+v", state)
	}
	if g.session.Level() != 1 {
		t.Errorf("Level() = %d, want 1", g.session.Level())
	}
	if got := len(g.session.Tray()); got != engine.TrayCapacity {
		t.Errorf("tray holds %d pieces, want %d", got, engine.TrayCapacity)
	}
	center := engine.GridSize / 2
	if g.cursor.Row != center || g.cursor.Col != center {
		t.Errorf("cursor = %+v, want centered", g.cursor)
	}
}

func TestCursorClampsToBoard(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < engine.GridSize+3; i++ {
		g.Step(frame(core.ActionLeft, core.ActionUp))
	}
	if g.cursor.Row != 0 || g.cursor.Col != 0 {
		t.Errorf("cursor = %+v, want top-left", g.cursor)
	}

	for i := 0; i < engine.GridSize+3; i++ {
		g.Step(frame(core.ActionRight, core.ActionDown))
	}
	if g.cursor.Row != engine.GridSize-1 || g.cursor.Col != engine.GridSize-1 {
		t.Errorf("cursor = %+v, want bottom-right", g.cursor)
	}
}

func TestSlotSelection(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionSlot3))
	if g.slot != 2 {
		t.Errorf("slot = %d after Slot3, want 2", g.slot)
	}
	g.Step(frame(core.ActionCycle))
	if g.slot != 0 {
		t.Errorf("slot = %d after cycling past the end, want 0", g.slot)
	}
	g.Step(frame(core.ActionSlot2))
	if g.slot != 1 {
		t.Errorf("slot = %d after Slot2, want 1", g.slot)
	}
}

func TestPlaceThroughStep(t *testing.T) {
	g := newTestGame(t)

	// Level 1 starts on an empty board and every catalog shape anchors
	// at its top-left cell, so the origin always fits.
	g.cursor = engine.Position{Row: 0, Col: 0}
	g.Step(frame(core.ActionPlace))

	if got := g.State().Score; got <= 0 {
		t.Fatalf("Score = %d after placement, want > 0", got)
	}
	if got := len(g.session.Tray()); got != engine.TrayCapacity {
		t.Errorf("tray holds %d pieces after refill, want %d", got, engine.TrayCapacity)
	}
	if g.session.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", g.session.UndoDepth())
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.cursor = engine.Position{Row: 0, Col: 0}
	g.Step(frame(core.ActionPlace))
	if g.State().Score != 0 {
		t.Error("placement should be ignored while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should toggle off")
	}
}

func TestTimedModeRunsOutAndRestarts(t *testing.T) {
	g := NewTimed()
	g.Reset(core.DefaultConfig())

	// Drive empty ticks until the countdown expires.
	for i := 0; i < 60*600 && !g.State().GameOver; i++ {
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatal("timed game should end when the clock runs out")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("restart should begin a new game")
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d after restart, want 0", g.State().Score)
	}
}

func TestReportError(t *testing.T) {
	g := newTestGame(t)

	g.reportError(engine.ErrCellOccupied)
	if g.status == "" {
		t.Error("occupied-cell rejection should flash a status")
	}

	g.status = ""
	g.statusLeft = 0
	g.reportError(engine.ErrBusy)
	if g.status != "" {
		t.Error("debounce rejection should stay silent")
	}
}

func TestRenderSmoke(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Block Smash") || !strings.Contains(hud, "Score") {
		t.Errorf("HUD = %q", hud)
	}
	if got := screen.Get(gridLeft-1, gridTop-1); got != '┌' {
		t.Errorf("grid box corner = %q, want ┌", got)
	}
	if !strings.Contains(screen.String(), "Tray") {
		t.Error("tray panel missing from render")
	}
}

func TestRenderGhostPreview(t *testing.T) {
	g := newTestGame(t)
	// The board is empty at level 1 and every shape anchors top-left,
	// so the ghost at the origin is always a valid placement.
	g.cursor = engine.Position{Row: 0, Col: 0}
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for r := 0; r < engine.GridSize; r++ {
		for c := 0; c < engine.GridSize*cellWidth; c++ {
			if screen.Get(gridLeft+c, gridTop+r) == '▒' {
				found = true
			}
		}
	}
	if !found {
		t.Error("valid ghost preview not rendered")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60})

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("small screens should show the resize hint")
	}
}

func TestBlockColorMapping(t *testing.T) {
	cases := map[engine.BlockColor]core.Color{
		engine.ColorRed:    core.ColorRed,
		engine.ColorBlue:   core.ColorBlue,
		engine.ColorGreen:  core.ColorGreen,
		engine.ColorYellow: core.ColorYellow,
		engine.ColorPurple: core.ColorMagenta,
		engine.ColorOrange: core.ColorOrange,
		engine.ColorNone:   core.ColorDefault,
	}
	for in, want := range cases {
		if got := blockColor(in); got != want {
			t.Errorf("blockColor(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestResumeFromSnapshot(t *testing.T) {
	donor := newTestGame(t)
	donor.cursor = engine.Position{Row: 0, Col: 0}
	donor.Step(frame(core.ActionPlace))
	snap := donor.session.ExportSnapshot()

	SetResume(&snap)
	g := New()
	g.Reset(core.DefaultConfig())

	if g.State().Score != snap.Score {
		t.Errorf("resumed Score = %d, want %d", g.State().Score, snap.Score)
	}
	if resumeProgress != nil {
		t.Error("resume snapshot should be consumed by Reset")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games stepped with the same inputs should produce identical snapshots.
	cfg := core.DefaultConfig()

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	for i := 0; i < 30; i++ {
		input := core.NewInputFrame()
		switch i {
		case 5:
			input.Set(core.ActionUp)
		case 10:
			input.Set(core.ActionLeft)
		case 15:
			input.Set(core.ActionPlace)
		case 20:
			input.Set(core.ActionCycle)
		}
		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if snap1 != snap2 {
		t.Errorf("snapshot mismatch:\n  %+v\n  %+v", snap1, snap2)
	}
	if snap1.Tick != 30 {
		t.Errorf("Tick = %d, want 30", snap1.Tick)
	}
}
